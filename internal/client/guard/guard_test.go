package guard

import (
	"testing"

	"github.com/dmitrijs2005/lifemgmt/internal/client/models"
	"github.com/dmitrijs2005/lifemgmt/internal/client/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type navCall struct {
	path    string
	replace bool
}

type fakeNav struct{ calls []navCall }

func (f *fakeNav) Navigate(path string, replace bool) {
	f.calls = append(f.calls, navCall{path, replace})
}

func TestEvaluate_AllStates(t *testing.T) {
	user := &models.User{ID: "1"}
	tests := []struct {
		name string
		st   session.State
		want Decision
	}{
		{
			name: "loading while unauthenticated",
			st:   session.State{IsLoading: true},
			want: Decision{Outcome: Loading, Message: LoadingMessage},
		},
		{
			name: "loading while authenticated",
			st:   session.State{IsLoading: true, IsAuthenticated: true, User: user},
			want: Decision{Outcome: Loading, Message: LoadingMessage},
		},
		{
			name: "authenticated",
			st:   session.State{IsAuthenticated: true, User: user},
			want: Decision{Outcome: Authenticated},
		},
		{
			name: "unauthenticated",
			st:   session.State{},
			want: Decision{Outcome: Unauthenticated, RedirectTo: "/login", Replace: true},
		},
		{
			name: "unauthenticated with error",
			st:   session.State{Error: "Login failed"},
			want: Decision{Outcome: Unauthenticated, RedirectTo: "/login", Replace: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.st))
		})
	}
}

func TestEvaluate_RedirectIffNotLoadingAndNotAuthenticated(t *testing.T) {
	for _, loading := range []bool{false, true} {
		for _, authed := range []bool{false, true} {
			st := session.State{IsLoading: loading, IsAuthenticated: authed}
			if authed {
				st.User = &models.User{ID: "1"}
			}
			d := Evaluate(st)
			assert.Equal(t, !loading && !authed, d.RedirectTo == "/login", "loading=%v authed=%v", loading, authed)
		}
	}
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "authenticated", Authenticated.String())
	assert.Equal(t, "unauthenticated", Unauthenticated.String())
	assert.Equal(t, "unknown", Outcome(42).String())
}

func TestGuard_EnterRedirects(t *testing.T) {
	store := session.NewStore()
	nav := &fakeNav{}
	g := New(store, nav)

	d := g.Enter()
	assert.Equal(t, Unauthenticated, d.Outcome)
	assert.Equal(t, []navCall{{"/login", true}}, nav.calls)

	store.Succeed(store.Begin(), models.User{ID: "1"})
	d = g.Enter()
	assert.Equal(t, Authenticated, d.Outcome)
	assert.Len(t, nav.calls, 1)
}

func TestGuard_WatchFollowsTransitions(t *testing.T) {
	store := session.NewStore()
	nav := &fakeNav{}
	g := New(store, nav)

	var outcomes []Outcome
	stop := g.Watch(nil, func(d Decision) { outcomes = append(outcomes, d.Outcome) })

	a := store.Begin()
	store.Succeed(a, models.User{ID: "1"})
	store.Clear(store.Supersede())

	require.Equal(t, []Outcome{Loading, Authenticated, Unauthenticated}, outcomes)
	assert.Equal(t, []navCall{{"/login", true}}, nav.calls)

	stop()
	store.Begin()
	assert.Len(t, outcomes, 3)
}

func TestGuard_WatchOnlyWhileActive(t *testing.T) {
	store := session.NewStore()
	nav := &fakeNav{}
	g := New(store, nav)

	protected := false
	var outcomes []Outcome
	t.Cleanup(g.Watch(func() bool { return protected }, func(d Decision) {
		outcomes = append(outcomes, d.Outcome)
	}))

	store.Clear(store.Supersede())
	assert.Empty(t, outcomes)
	assert.Empty(t, nav.calls, "no redirect away from a public view")

	protected = true
	store.Clear(store.Supersede())
	assert.Equal(t, []Outcome{Unauthenticated}, outcomes)
	assert.Equal(t, []navCall{{"/login", true}}, nav.calls)
}
