package navigation

import "net/http"

// MenuItem is an entry of the top navigation bar.
type MenuItem struct {
	Label  string
	Path   string
	Method string
	Active bool
}

// IsForm reports whether the item must be rendered as a form button.
func (m MenuItem) IsForm() bool {
	return m.Method == http.MethodPost
}

// MenuItems computes the navigation bar from the session state and the
// current route. It has no other inputs.
func MenuItems(hasSession bool, currentPath string) []MenuItem {
	var items []MenuItem
	if hasSession {
		items = []MenuItem{
			{Label: "Dashboard", Path: "/dashboard", Method: http.MethodGet},
			{Label: "Mes formulaires", Path: "/dashboard#forms", Method: http.MethodGet},
			{Label: "Déconnexion", Path: "/logout", Method: http.MethodPost},
		}
	} else {
		items = []MenuItem{
			{Label: "Se connecter", Path: "/login", Method: http.MethodGet},
			{Label: "S'inscrire", Path: "/signup", Method: http.MethodGet},
		}
	}
	for i := range items {
		items[i].Active = items[i].Method == http.MethodGet && items[i].Path == currentPath
	}
	return items
}
