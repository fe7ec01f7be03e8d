package session

import (
	"sync"
	"testing"

	"github.com/dmitrijs2005/lifemgmt/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_InitialState(t *testing.T) {
	s := NewStore()
	assert.Equal(t, State{}, s.Snapshot())
	assert.Equal(t, Attempt(0), s.Latest())
}

func TestStore_BeginSucceed(t *testing.T) {
	s := NewStore()
	s.Fail(s.Begin(), "old error")

	a := s.Begin()
	st := s.Snapshot()
	assert.True(t, st.IsLoading)
	assert.Empty(t, st.Error, "Begin clears the previous error")

	require.True(t, s.Succeed(a, models.User{ID: "1", FirstName: "A"}))
	st = s.Snapshot()
	require.NotNil(t, st.User)
	assert.Equal(t, "1", st.User.ID)
	assert.True(t, st.IsAuthenticated)
	assert.False(t, st.IsLoading)
	assert.Empty(t, st.Error)
}

func TestStore_Fail(t *testing.T) {
	s := NewStore()
	a := s.Begin()
	require.True(t, s.Fail(a, "Login failed"))
	assert.Equal(t, State{Error: "Login failed"}, s.Snapshot())
}

func TestStore_FailAfterSuccessDropsUser(t *testing.T) {
	s := NewStore()
	s.Succeed(s.Begin(), models.User{ID: "1"})
	s.Fail(s.Begin(), "nope")

	st := s.Snapshot()
	assert.Nil(t, st.User)
	assert.False(t, st.IsAuthenticated)
}

func TestStore_Clear(t *testing.T) {
	s := NewStore()
	s.Succeed(s.Begin(), models.User{ID: "1"})
	require.True(t, s.Clear(s.Supersede()))
	assert.Equal(t, State{}, s.Snapshot())
}

func TestStore_StaleCompletionIsDropped(t *testing.T) {
	s := NewStore()
	slow := s.Begin()
	fresh := s.Begin()

	require.True(t, s.Succeed(fresh, models.User{ID: "fresh"}))
	assert.False(t, s.Fail(slow, "late failure"))
	assert.False(t, s.Succeed(slow, models.User{ID: "slow"}))

	st := s.Snapshot()
	assert.Equal(t, "fresh", st.User.ID)
	assert.Empty(t, st.Error)
}

func TestStore_SupersedeKeepsVisibleState(t *testing.T) {
	s := NewStore()
	login := s.Begin()
	logout := s.Supersede()

	assert.True(t, s.Snapshot().IsLoading, "supersede does not touch the state")
	assert.False(t, s.Succeed(login, models.User{ID: "1"}))
	require.True(t, s.Clear(logout))
	assert.Equal(t, State{}, s.Snapshot())
}

func TestStore_Invalidate(t *testing.T) {
	s := NewStore()
	login := s.Begin()
	require.True(t, s.Succeed(login, models.User{ID: "1"}))

	require.True(t, s.Invalidate(login))
	assert.Equal(t, State{}, s.Snapshot())
	assert.NotEqual(t, login, s.Latest(), "invalidation starts a new attempt")
	assert.False(t, s.Clear(login))
}

func TestStore_InvalidateStaleAttempt(t *testing.T) {
	s := NewStore()
	old := s.Latest()
	fresh := s.Begin()

	assert.False(t, s.Invalidate(old))
	assert.True(t, s.Snapshot().IsLoading)
	assert.Equal(t, fresh, s.Latest())
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	s := NewStore()
	s.Succeed(s.Begin(), models.User{ID: "1", FirstName: "A"})

	st := s.Snapshot()
	st.User.FirstName = "mutated"
	assert.Equal(t, "A", s.Snapshot().User.FirstName)
}

func TestStore_Subscribe(t *testing.T) {
	s := NewStore()
	var seen []State
	cancel := s.Subscribe(func(st State) { seen = append(seen, st) })

	a := s.Begin()
	s.Supersede()
	s.Succeed(a, models.User{ID: "1"})
	s.Clear(s.Latest())

	require.Len(t, seen, 2)
	assert.True(t, seen[0].IsLoading)
	assert.Equal(t, State{}, seen[1])

	cancel()
	s.Begin()
	assert.Len(t, seen, 2)
}

func TestStore_ConcurrentAttempts_LastInitiatedWins(t *testing.T) {
	s := NewStore()
	const n = 50

	attempts := make([]Attempt, n)
	for i := range attempts {
		attempts[i] = s.Begin()
	}

	var wg sync.WaitGroup
	applied := make([]bool, n)
	for i := range attempts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			applied[i] = s.Succeed(attempts[i], models.User{ID: "u"})
		}(i)
	}
	wg.Wait()

	for i, ok := range applied {
		assert.Equal(t, i == n-1, ok, "attempt %d", i)
	}
	assert.True(t, s.Snapshot().IsAuthenticated)
}
