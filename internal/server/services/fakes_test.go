package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/lifemgmt/internal/common"
	"github.com/dmitrijs2005/lifemgmt/internal/dbx"
	"github.com/dmitrijs2005/lifemgmt/internal/server/config"
	"github.com/dmitrijs2005/lifemgmt/internal/server/models"
	"github.com/dmitrijs2005/lifemgmt/internal/server/repositories/resettokens"
	"github.com/dmitrijs2005/lifemgmt/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/lifemgmt/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

// memStore backs the in-memory repositories. Transactions are not
// simulated; sqlmock only checks that Begin/Commit/Rollback happen.
type memStore struct {
	mu       sync.Mutex
	users    map[string]*models.User
	sessions map[string]*models.Session
	resets   map[string]*models.ResetToken

	createUserErr    error
	createSessionErr error
	findSessionErr   error
	updatePassErr    error
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[string]*models.User{},
		sessions: map[string]*models.Session{},
		resets:   map[string]*models.ResetToken{},
	}
}

type fakeManager struct{ s *memStore }

func (m fakeManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m fakeManager) Users(dbx.DBTX) users.Repository             { return fakeUsers{m.s} }
func (m fakeManager) Sessions(dbx.DBTX) sessions.Repository       { return fakeSessions{m.s} }
func (m fakeManager) ResetTokens(dbx.DBTX) resettokens.Repository { return fakeResets{m.s} }

type fakeUsers struct{ s *memStore }

func (r fakeUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.createUserErr != nil {
		return nil, r.s.createUserErr
	}
	for _, e := range r.s.users {
		if e.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	c := *u
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	r.s.users[u.ID] = &c
	return &c, nil
}

func (r fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *u
	return &c, nil
}

func (r fakeUsers) UpdatePassword(_ context.Context, id string, hash, salt []byte) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.updatePassErr != nil {
		return r.s.updatePassErr
	}
	u, ok := r.s.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.PasswordHash, u.Salt = hash, salt
	return nil
}

type fakeSessions struct{ s *memStore }

func (r fakeSessions) Create(_ context.Context, s *models.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.createSessionErr != nil {
		return r.s.createSessionErr
	}
	c := *s
	r.s.sessions[s.ID] = &c
	return nil
}

func (r fakeSessions) Find(_ context.Context, id string) (*models.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.findSessionErr != nil {
		return nil, r.s.findSessionErr
	}
	s, ok := r.s.sessions[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *s
	return &c, nil
}

func (r fakeSessions) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.sessions, id)
	return nil
}

func (r fakeSessions) DeleteByUser(_ context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, s := range r.s.sessions {
		if s.UserID == userID {
			delete(r.s.sessions, id)
		}
	}
	return nil
}

type fakeResets struct{ s *memStore }

func (r fakeResets) Create(_ context.Context, t *models.ResetToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *t
	r.s.resets[t.TokenHash] = &c
	return nil
}

func (r fakeResets) Find(_ context.Context, hash string) (*models.ResetToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.resets[hash]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *t
	return &c, nil
}

func (r fakeResets) DeleteByUser(_ context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for h, t := range r.s.resets {
		if t.UserID == userID {
			delete(r.s.resets, h)
		}
	}
	return nil
}

func newTestService(t *testing.T) (*UserService, *memStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{
		SecretKey:                  "k",
		TokenValidityDuration:      time.Hour,
		ResetTokenValidityDuration: 30 * time.Minute,
	}
	store := newMemStore()
	return NewUserService(db, fakeManager{store}, cfg), store, mock
}
