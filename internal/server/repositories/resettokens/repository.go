// Package resettokens declares the repository contract for pending
// password resets.
package resettokens

import (
	"context"

	"github.com/dmitrijs2005/lifemgmt/internal/server/models"
)

// Repository stores reset tokens keyed by their hash.
type Repository interface {
	Create(ctx context.Context, t *models.ResetToken) error
	// Find returns the token with the given hash or common.ErrorNotFound.
	Find(ctx context.Context, tokenHash string) (*models.ResetToken, error)
	// DeleteByUser drops every pending reset of userID.
	DeleteByUser(ctx context.Context, userID string) error
}
