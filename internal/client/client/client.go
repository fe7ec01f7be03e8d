package client

import (
	"context"

	"github.com/dmitrijs2005/lifemgmt/internal/client/models"
)

// Client is the transport contract towards the Credential Store.
//
// Calls that need a session attach the bearer token set with SetToken.
// Non-2xx answers come back as *RemoteError, transport failures as
// ErrUnavailable.
type Client interface {
	Login(ctx context.Context, credentials models.Credentials) (*models.AuthResponse, error)
	Register(ctx context.Context, data models.RegistrationData) (*models.AuthResponse, error)
	Logout(ctx context.Context) error
	ForgotPassword(ctx context.Context, data models.ForgotPasswordData) (string, error)
	ResetPassword(ctx context.Context, data models.ResetPasswordData) (string, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	VerifyToken(ctx context.Context, token string) error

	SetToken(token string)
	Token() string
	Close() error
}
