// Package views holds the HTML templates compiled into the binary.
package views

import "embed"

//go:embed layouts partials auth dashboard public errors
var FS embed.FS
