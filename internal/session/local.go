package session

import (
	"crypto/subtle"
	"net/http"
	"time"
)

const (
	// AdminParam is the query parameter carrying the unlock passphrase. It is
	// consumed (stripped from the visible address) immediately on match.
	AdminParam = "admin"

	unlockCookie = "updates_admin"
)

// LocalGate implements the local-flag strategy for the static backend: a
// passphrase in the admin query parameter sets a persistent unlock cookie.
// This is obfuscation only: anyone who can read the deployment config can
// read the token, so it toggles visibility and nothing else.
type LocalGate struct {
	token string
}

func NewLocalGate(token string) *LocalGate {
	return &LocalGate{token: token}
}

// Consume checks the request for a matching admin parameter. On match it sets
// the unlock cookie and redirects to the same URL with the parameter stripped,
// reporting true so the caller stops handling the request.
func (g *LocalGate) Consume(w http.ResponseWriter, r *http.Request) bool {
	params := r.URL.Query()
	supplied := params.Get(AdminParam)
	if supplied == "" || g.token == "" {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(supplied), []byte(g.token)) != 1 {
		return false
	}

	http.SetCookie(w, &http.Cookie{
		Name:     unlockCookie,
		Value:    "true",
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	params.Del(AdminParam)
	stripped := *r.URL
	stripped.RawQuery = params.Encode()
	http.Redirect(w, r, stripped.String(), http.StatusSeeOther)
	return true
}

func (g *LocalGate) Unlocked(r *http.Request) bool {
	cookie, err := r.Cookie(unlockCookie)
	return err == nil && cookie.Value == "true"
}

func (g *LocalGate) Visibility(r *http.Request) Visibility {
	return Visibility{ShowConsole: g.Unlocked(r)}
}

func (g *LocalGate) Authorized(r *http.Request) bool {
	return g.Unlocked(r)
}
