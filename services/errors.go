package services

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// persistenceMessage renders a store error for the user: the message, then
// " - <detail>" when the database supplied one.
func persistenceMessage(err error) string {
	if err == nil {
		return ""
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Detail != "" {
			return pgErr.Message + " - " + pgErr.Detail
		}
		return pgErr.Message
	}
	return err.Error()
}
