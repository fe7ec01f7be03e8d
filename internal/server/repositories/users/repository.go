// Package users declares the server-side repository contract for accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/lifemgmt/internal/server/models"
)

// Repository stores user accounts. Lookups of missing users return
// common.ErrorNotFound; Create of a taken email returns
// common.ErrorAlreadyExists.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdatePassword(ctx context.Context, id string, hash, salt []byte) error
}
