package session

import (
	"net/http"
	"strings"
	"sync"
)

const (
	EventSignedIn  = "SIGNED_IN"
	EventSignedOut = "SIGNED_OUT"
)

// AuthEvent is one auth state-change notification. Session carries the
// session token and is empty when signed out.
type AuthEvent struct {
	Event   string
	Session string
}

// LiveGate implements the live-session strategy: it reacts to every auth
// state-change notification by toggling login-form and authoring-console
// visibility to be mutually exclusive and session-presence-driven. Events can
// arrive at any time, including before the initial feed load completes, and
// applying the same event twice is safe.
type LiveGate struct {
	validate func(token string) error
	onSignIn func()

	mu  sync.Mutex
	vis Visibility
}

// NewLiveGate builds a gate that validates bearer tokens with validate and
// triggers onSignIn (the feed reload hook) on each signed-in notification.
func NewLiveGate(validate func(token string) error, onSignIn func()) *LiveGate {
	return &LiveGate{
		validate: validate,
		onSignIn: onSignIn,
		vis:      Visibility{ShowLogin: true},
	}
}

// Listen consumes auth events until the channel closes.
func (g *LiveGate) Listen(events <-chan AuthEvent) {
	go func() {
		for event := range events {
			g.Apply(event)
		}
	}()
}

// Apply is idempotent: visibility depends only on session presence, not on
// how many notifications carried it.
func (g *LiveGate) Apply(event AuthEvent) {
	hasSession := event.Session != ""

	g.mu.Lock()
	g.vis = Visibility{ShowLogin: !hasSession, ShowConsole: hasSession}
	g.mu.Unlock()

	if event.Event == EventSignedIn && hasSession && g.onSignIn != nil {
		g.onSignIn()
	}
}

func (g *LiveGate) Visibility(_ *http.Request) Visibility {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.vis
}

// Authorized checks the request's bearer token against the auth service. The
// visibility state above is advisory; this is the check the write path uses.
func (g *LiveGate) Authorized(r *http.Request) bool {
	token := BearerToken(r)
	if token == "" || g.validate == nil {
		return false
	}
	return g.validate(token) == nil
}

// BearerToken extracts the token from an "Authorization: Bearer ..." header.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
