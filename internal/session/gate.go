package session

import "net/http"

// Visibility describes which authoring surfaces the page should show. The two
// flags are mutually exclusive in live mode; local mode never shows a login
// form.
type Visibility struct {
	ShowLogin   bool `json:"showLogin"`
	ShowConsole bool `json:"showConsole"`
}

// Gate decides authoring-UI visibility. This is a UI gate only: write
// authorization is enforced at the store/auth boundary, never here.
type Gate interface {
	Visibility(r *http.Request) Visibility
	Authorized(r *http.Request) bool
}
