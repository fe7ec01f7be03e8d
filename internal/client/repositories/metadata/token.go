package metadata

import "context"

const sessionTokenKey = "session_token"

// TokenStore keeps the bearer session token across client restarts.
type TokenStore struct {
	repo Repository
}

func NewTokenStore(repo Repository) *TokenStore {
	return &TokenStore{repo: repo}
}

// LoadToken returns the saved token or "" when none is stored.
func (s *TokenStore) LoadToken(ctx context.Context) (string, error) {
	b, err := s.repo.Get(ctx, sessionTokenKey)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *TokenStore) SaveToken(ctx context.Context, token string) error {
	return s.repo.Set(ctx, sessionTokenKey, []byte(token))
}

func (s *TokenStore) ClearToken(ctx context.Context) error {
	return s.repo.Delete(ctx, sessionTokenKey)
}
