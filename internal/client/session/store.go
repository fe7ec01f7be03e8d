// Package session holds the client-side authentication state and the only
// transitions allowed to change it.
//
// Every transition runs under the store mutex, so observers always see a
// whole State. Overlapping operations are ordered by a monotonically
// increasing attempt counter: a completion may write terminal state only
// while its attempt is still the latest one initiated. Completions of
// superseded attempts are dropped and report false.
package session

import (
	"sync"

	"github.com/dmitrijs2005/lifemgmt/internal/client/models"
)

// State is a snapshot of the authentication session.
// IsAuthenticated implies User != nil. An empty Error means no error.
type State struct {
	User            *models.User
	IsAuthenticated bool
	IsLoading       bool
	Error           string
}

// Attempt identifies one initiated auth operation.
type Attempt uint64

// Store owns the session State.
type Store struct {
	mu      sync.Mutex
	state   State
	attempt Attempt

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(State)
}

// NewStore returns a store in the initial, unauthenticated state.
func NewStore() *Store {
	return &Store{subs: make(map[int]func(State))}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyState()
}

// Latest returns the most recently initiated attempt.
func (s *Store) Latest() Attempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempt
}

// Begin starts a login or register attempt: sets IsLoading, clears Error
// and returns the new attempt number.
func (s *Store) Begin() Attempt {
	return s.start(func(st *State) {
		st.IsLoading = true
		st.Error = ""
	})
}

// Supersede starts an attempt without touching the visible state. Any
// attempt initiated earlier can no longer complete.
func (s *Store) Supersede() Attempt {
	return s.start(nil)
}

// Succeed records a successful authentication for attempt a.
func (s *Store) Succeed(a Attempt, user models.User) bool {
	return s.complete(a, func(st *State) {
		u := user
		*st = State{User: &u, IsAuthenticated: true}
	})
}

// Fail records a failed authentication for attempt a.
func (s *Store) Fail(a Attempt, message string) bool {
	return s.complete(a, func(st *State) {
		*st = State{Error: message}
	})
}

// Clear resets the session to its initial state on behalf of attempt a.
func (s *Store) Clear(a Attempt) bool {
	return s.complete(a, func(st *State) {
		*st = State{}
	})
}

// Invalidate returns to the initial state on behalf of attempt a and starts
// a new attempt, so a's own pending side effects see it as stale.
// It does nothing unless a is the latest attempt.
func (s *Store) Invalidate(a Attempt) bool {
	s.mu.Lock()
	if a != s.attempt {
		s.mu.Unlock()
		return false
	}
	s.attempt++
	s.state = State{}
	st := s.copyState()
	s.mu.Unlock()

	s.publish(st)
	return true
}

// Subscribe registers fn to be called with the new state after every
// applied transition. The returned func removes the subscription.
// fn runs outside the store lock and may read the store.
func (s *Store) Subscribe(fn func(State)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) start(mutate func(*State)) Attempt {
	s.mu.Lock()
	s.attempt++
	a := s.attempt
	changed := mutate != nil
	if changed {
		mutate(&s.state)
	}
	st := s.copyState()
	s.mu.Unlock()

	if changed {
		s.publish(st)
	}
	return a
}

func (s *Store) complete(a Attempt, mutate func(*State)) bool {
	s.mu.Lock()
	if a != s.attempt {
		s.mu.Unlock()
		return false
	}
	mutate(&s.state)
	st := s.copyState()
	s.mu.Unlock()

	s.publish(st)
	return true
}

func (s *Store) copyState() State {
	st := s.state
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}

func (s *Store) publish(st State) {
	s.subMu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(st)
	}
}
