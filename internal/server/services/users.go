// Package services holds the Credential Store's business logic.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/lifemgmt/internal/common"
	"github.com/dmitrijs2005/lifemgmt/internal/cryptox"
	"github.com/dmitrijs2005/lifemgmt/internal/dbx"
	"github.com/dmitrijs2005/lifemgmt/internal/server/auth"
	"github.com/dmitrijs2005/lifemgmt/internal/server/config"
	"github.com/dmitrijs2005/lifemgmt/internal/server/models"
	"github.com/dmitrijs2005/lifemgmt/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const resetTokenSize = 32

// RegisterInput carries a validated sign-up request.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User  *models.User
	Token string
}

type UserService struct {
	db                 *sql.DB
	repomanager        repomanager.RepositoryManager
	jwtSecret          []byte
	tokenValidity      time.Duration
	resetTokenValidity time.Duration

	now   func() time.Time
	newID func() string
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                 db,
		repomanager:        m,
		jwtSecret:          []byte(cfg.SecretKey),
		tokenValidity:      cfg.TokenValidityDuration,
		resetTokenValidity: cfg.ResetTokenValidityDuration,
		now:                time.Now,
		newID:              uuid.NewString,
	}
}

// NormalizeEmail is applied to every e-mail before it is stored or looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account and opens its first session in one
// transaction. A taken e-mail yields common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	hash, salt := cryptox.HashPassword([]byte(in.Password))

	user := &models.User{
		ID:           s.newID(),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        NormalizeEmail(in.Email),
		PasswordHash: hash,
		Salt:         salt,
	}

	var session *models.Session
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repomanager.Users(tx).Create(ctx, user)
		if err != nil {
			return err
		}
		user = created

		session, err = s.openSession(ctx, tx, user.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	return s.issue(user, session)
}

// Login checks credentials and opens a new session. Unknown e-mail and wrong
// password both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if !cryptox.VerifyPassword([]byte(password), user.Salt, user.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}

	session, err := s.openSession(ctx, s.db, user.ID)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	return s.issue(user, session)
}

// Logout revokes the session. Revoking an already revoked session succeeds.
func (s *UserService) Logout(ctx context.Context, sessionID string) error {
	if err := s.repomanager.Sessions(s.db).Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Authenticate resolves a bearer token to its user and session ID. Any
// token that is malformed, expired, revoked or orphaned yields an error
// matching common.ErrorUnauthorized.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, string, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}

	session, err := s.repomanager.Sessions(s.db).Find(ctx, claims.SessionID())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", fmt.Errorf("%w: session revoked", common.ErrorUnauthorized)
		}
		return nil, "", fmt.Errorf("authenticate: %w", err)
	}
	if session.UserID != claims.UserID() || !session.ExpiresAt.After(s.now()) {
		return nil, "", fmt.Errorf("%w: session invalid", common.ErrorUnauthorized)
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", fmt.Errorf("%w: user gone", common.ErrorUnauthorized)
		}
		return nil, "", fmt.Errorf("authenticate: %w", err)
	}

	return user, session.ID, nil
}

// ForgotPassword issues a reset token for the account registered under
// email and returns it. An unknown e-mail returns "" and no error, so
// callers cannot tell accounts apart.
func (s *UserService) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("forgot password: %w", err)
	}

	token, err := common.MakeRandHexString(resetTokenSize)
	if err != nil {
		return "", fmt.Errorf("forgot password: %w", err)
	}

	err = s.repomanager.ResetTokens(s.db).Create(ctx, &models.ResetToken{
		TokenHash: cryptox.HashToken(token),
		UserID:    user.ID,
		ExpiresAt: s.now().Add(s.resetTokenValidity),
	})
	if err != nil {
		return "", fmt.Errorf("forgot password: %w", err)
	}

	return token, nil
}

// ResetPassword sets a new password for the owner of token. It consumes
// every pending reset of that user and revokes all their sessions.
// Unknown tokens yield common.ErrInvalidToken, stale ones
// common.ErrResetTokenExpired.
func (s *UserService) ResetPassword(ctx context.Context, token, password string) error {
	rt, err := s.repomanager.ResetTokens(s.db).Find(ctx, cryptox.HashToken(token))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrInvalidToken
		}
		return fmt.Errorf("reset password: %w", err)
	}
	if !rt.ExpiresAt.After(s.now()) {
		return common.ErrResetTokenExpired
	}

	hash, salt := cryptox.HashPassword([]byte(password))

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).UpdatePassword(ctx, rt.UserID, hash, salt); err != nil {
			return err
		}
		if err := s.repomanager.ResetTokens(tx).DeleteByUser(ctx, rt.UserID); err != nil {
			return err
		}
		return s.repomanager.Sessions(tx).DeleteByUser(ctx, rt.UserID)
	})
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	return nil
}

func (s *UserService) openSession(ctx context.Context, db dbx.DBTX, userID string) (*models.Session, error) {
	session := &models.Session{
		ID:        s.newID(),
		UserID:    userID,
		ExpiresAt: s.now().Add(s.tokenValidity),
	}
	if err := s.repomanager.Sessions(db).Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

func (s *UserService) issue(user *models.User, session *models.Session) (*AuthResult, error) {
	token, err := auth.GenerateToken(user.ID, session.ID, s.jwtSecret, session.ExpiresAt)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &AuthResult{User: user, Token: token}, nil
}
