// Package services contains application services for the lifemgmt client.
// This file defines the authentication controller: login, register, logout,
// token verification, password reset and session restore.
package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/lifemgmt/internal/client/client"
	"github.com/dmitrijs2005/lifemgmt/internal/client/guard"
	"github.com/dmitrijs2005/lifemgmt/internal/client/models"
	"github.com/dmitrijs2005/lifemgmt/internal/client/notify"
	"github.com/dmitrijs2005/lifemgmt/internal/client/session"
	"github.com/dmitrijs2005/lifemgmt/internal/common"
	"github.com/dmitrijs2005/lifemgmt/internal/logging"
)

// Messages shown to the user. The fallbacks apply whenever a failure carries
// no server-supplied message, including transport failures.
const (
	MsgLoginSuccess    = "Successfully logged in!"
	MsgLoginFailed     = "Login failed"
	MsgRegisterSuccess = "Registration successful!"
	MsgRegisterFailed  = "Registration failed"
	MsgLogoutSuccess   = "Successfully logged out"
	MsgForgotFailed    = "Failed to send reset email"
	MsgResetFailed     = "Failed to reset password"
	MsgSessionExpired  = "Session expired, please log in again"
)

// TokenStore persists the session token between runs.
type TokenStore interface {
	LoadToken(ctx context.Context) (string, error)
	SaveToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

// AuthService drives the session lifecycle.
//
// Contract:
//   - Login / Register: authenticate against the Credential Store and, when
//     still the latest attempt, update the session, emit one notification and
//     (on success) navigate to the default view.
//   - Logout: always ends in the initial session state and navigates to the
//     login view; a failed remote call is logged but never reported.
//   - VerifyToken: true iff the Credential Store accepts the token.
//   - Restore / Revalidate: pick up a stored session and drop it once the
//     server stops accepting it.
//
// All methods honor context cancellation/timeouts.
type AuthService interface {
	Login(ctx context.Context, credentials models.Credentials)
	Register(ctx context.Context, data models.RegistrationData)
	Logout(ctx context.Context)
	VerifyToken(ctx context.Context, token string) bool
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, password string) (string, error)
	Restore(ctx context.Context)
	Revalidate(ctx context.Context) bool
	Session() session.State
	Close(ctx context.Context) error
}

// authService is the concrete AuthService. It is the only writer of store.
type authService struct {
	client   client.Client
	store    *session.Store
	notifier notify.Notifier
	nav      guard.Navigator
	tokens   TokenStore
	logger   logging.Logger
}

// NewAuthService wires the controller. tokens may be nil, in which case the
// session lives only as long as the process.
func NewAuthService(c client.Client, store *session.Store, notifier notify.Notifier,
	nav guard.Navigator, tokens TokenStore, logger logging.Logger) AuthService {
	return &authService{
		client:   c,
		store:    store,
		notifier: notifier,
		nav:      nav,
		tokens:   tokens,
		logger:   logger.With("service", "auth"),
	}
}

func (a *authService) Session() session.State {
	return a.store.Snapshot()
}

func (a *authService) Login(ctx context.Context, credentials models.Credentials) {
	attempt := a.store.Begin()
	resp, err := a.client.Login(ctx, credentials)
	a.finishAuth(ctx, attempt, "login", resp, err, MsgLoginSuccess, MsgLoginFailed)
}

func (a *authService) Register(ctx context.Context, data models.RegistrationData) {
	attempt := a.store.Begin()
	resp, err := a.client.Register(ctx, data)
	a.finishAuth(ctx, attempt, "register", resp, err, MsgRegisterSuccess, MsgRegisterFailed)
}

// finishAuth applies the outcome of a login or register attempt.
func (a *authService) finishAuth(ctx context.Context, attempt session.Attempt, op string,
	resp *models.AuthResponse, err error, okMsg, fallback string) {

	log := a.logger.With("op", op, "attempt", uint64(attempt))

	if err != nil {
		msg := messageOr(err, fallback)
		if !a.store.Fail(attempt, msg) {
			log.Debug(ctx, "stale completion discarded", "error", err)
			return
		}
		log.Warn(ctx, "authentication failed", "error", err)
		a.notifier.Notify(models.NotificationError, msg)
		return
	}

	// The token goes in first: subscribers of the authenticated state may
	// already issue requests with it.
	prev := a.client.Token()
	a.client.SetToken(resp.Token)
	if !a.store.Succeed(attempt, resp.User) {
		if a.client.Token() == resp.Token {
			a.client.SetToken(prev)
		}
		log.Debug(ctx, "stale completion discarded")
		return
	}
	if a.store.Latest() != attempt {
		log.Debug(ctx, "session invalidated before completion")
		return
	}
	a.saveToken(ctx, resp.Token)

	log.Info(ctx, "authenticated", "user_id", resp.User.ID)
	a.notifier.Notify(models.NotificationSuccess, okMsg)
	a.nav.Navigate(common.DefaultViewPath, false)
}

func (a *authService) Logout(ctx context.Context) {
	attempt := a.store.Supersede()
	err := a.client.Logout(ctx)

	if !a.store.Clear(attempt) {
		a.logger.Debug(ctx, "stale logout discarded", "attempt", uint64(attempt))
		return
	}
	a.client.SetToken("")
	a.forgetToken(ctx)

	if err != nil {
		a.logger.Warn(ctx, "remote logout failed, local session cleared anyway", "error", err)
	} else {
		a.notifier.Notify(models.NotificationSuccess, MsgLogoutSuccess)
	}
	a.nav.Navigate(common.LoginViewPath, false)
}

func (a *authService) VerifyToken(ctx context.Context, token string) bool {
	if err := a.client.VerifyToken(ctx, token); err != nil {
		a.logger.Debug(ctx, "token rejected", "error", err)
		return false
	}
	return true
}

func (a *authService) ForgotPassword(ctx context.Context, email string) (string, error) {
	msg, err := a.client.ForgotPassword(ctx, models.ForgotPasswordData{Email: email})
	if err != nil {
		return "", errors.New(messageOr(err, MsgForgotFailed))
	}
	return msg, nil
}

func (a *authService) ResetPassword(ctx context.Context, token, password string) (string, error) {
	msg, err := a.client.ResetPassword(ctx, models.ResetPasswordData{Token: token, Password: password})
	if err != nil {
		return "", errors.New(messageOr(err, MsgResetFailed))
	}
	return msg, nil
}

// Restore re-establishes a session from the stored token, if any. It emits
// no notification and no navigation.
func (a *authService) Restore(ctx context.Context) {
	if a.tokens == nil {
		return
	}
	token, err := a.tokens.LoadToken(ctx)
	if err != nil {
		a.logger.Warn(ctx, "cannot read stored session token", "error", err)
		return
	}
	if token == "" {
		return
	}

	attempt := a.store.Begin()
	a.client.SetToken(token)

	user, err := a.client.CurrentUser(ctx)
	if err != nil {
		if a.store.Clear(attempt) {
			a.client.SetToken("")
			if !errors.Is(err, client.ErrUnavailable) {
				a.forgetToken(ctx)
			}
			a.logger.Info(ctx, "stored session not restored", "error", err)
		}
		return
	}
	if a.store.Succeed(attempt, *user) {
		a.logger.Info(ctx, "session restored", "user_id", user.ID)
	}
}

// Revalidate checks the held token while a session is active and resets the
// session when the Credential Store no longer accepts it. It reports whether
// the session is still valid.
func (a *authService) Revalidate(ctx context.Context) bool {
	st := a.store.Snapshot()
	if !st.IsAuthenticated || st.IsLoading {
		return st.IsAuthenticated
	}

	attempt := a.store.Latest()
	token := a.client.Token()
	err := a.client.VerifyToken(ctx, token)
	if err == nil {
		return true
	}
	if !errors.Is(err, client.ErrUnauthorized) {
		// Unreachable server says nothing about the token.
		a.logger.Debug(ctx, "session check skipped", "error", err)
		return true
	}
	if !a.store.Invalidate(attempt) {
		return a.store.Snapshot().IsAuthenticated
	}

	if a.client.Token() == token {
		a.client.SetToken("")
	}
	a.forgetToken(ctx)
	a.logger.Info(ctx, "session invalidated by server")
	a.notifier.Notify(models.NotificationWarning, MsgSessionExpired)
	a.nav.Navigate(common.LoginViewPath, true)
	return false
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

func (a *authService) saveToken(ctx context.Context, token string) {
	if a.tokens == nil {
		return
	}
	if err := a.tokens.SaveToken(ctx, token); err != nil {
		a.logger.Warn(ctx, "cannot persist session token", "error", err)
	}
}

func (a *authService) forgetToken(ctx context.Context) {
	if a.tokens == nil {
		return
	}
	if err := a.tokens.ClearToken(ctx); err != nil {
		a.logger.Warn(ctx, "cannot remove stored session token", "error", err)
	}
}

// messageOr prefers the server-supplied message and falls back otherwise.
func messageOr(err error, fallback string) string {
	if msg := client.MessageOf(err); msg != "" {
		return msg
	}
	return fallback
}
