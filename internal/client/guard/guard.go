// Package guard decides whether a protected view may render, must show a
// progress indicator, or has to redirect to the login view. The decision is
// a pure projection of the session state.
package guard

import (
	"github.com/dmitrijs2005/lifemgmt/internal/client/session"
	"github.com/dmitrijs2005/lifemgmt/internal/common"
)

// Outcome is what a protected view does for the current session.
type Outcome int

const (
	Loading Outcome = iota
	Authenticated
	Unauthenticated
)

func (o Outcome) String() string {
	switch o {
	case Loading:
		return "loading"
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// LoadingMessage is shown while authentication is being verified.
const LoadingMessage = "Verifying authentication..."

// Decision is what a protected view should do for a given state.
type Decision struct {
	Outcome    Outcome
	RedirectTo string
	// Replace asks the navigator to replace the current history entry so the
	// user cannot navigate back into the guarded view.
	Replace bool
	Message string
}

// Evaluate maps st onto a Decision. Loading wins regardless of
// IsAuthenticated.
func Evaluate(st session.State) Decision {
	switch {
	case st.IsLoading:
		return Decision{Outcome: Loading, Message: LoadingMessage}
	case st.IsAuthenticated:
		return Decision{Outcome: Authenticated}
	default:
		return Decision{Outcome: Unauthenticated, RedirectTo: common.LoginViewPath, Replace: true}
	}
}

// Navigator moves the client to another view.
type Navigator interface {
	Navigate(path string, replace bool)
}

// Guard applies Evaluate to a live store and performs the redirect.
type Guard struct {
	store *session.Store
	nav   Navigator
}

// New returns a Guard over store. A nil nav disables the redirect.
func New(store *session.Store, nav Navigator) *Guard {
	return &Guard{store: store, nav: nav}
}

// Enter evaluates the current state for a view being opened.
func (g *Guard) Enter() Decision {
	return g.apply(g.store.Snapshot())
}

// Watch re-evaluates on every state change while active reports true (a nil
// active means always) and reports each decision to fn, which may be nil.
// Call the returned func to stop watching.
func (g *Guard) Watch(active func() bool, fn func(Decision)) (stop func()) {
	return g.store.Subscribe(func(st session.State) {
		if active != nil && !active() {
			return
		}
		d := g.apply(st)
		if fn != nil {
			fn(d)
		}
	})
}

func (g *Guard) apply(st session.State) Decision {
	d := Evaluate(st)
	if d.Outcome == Unauthenticated && g.nav != nil {
		g.nav.Navigate(d.RedirectTo, d.Replace)
	}
	return d
}
