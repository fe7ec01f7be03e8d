// Package sessions declares the repository contract for issued sessions.
package sessions

import (
	"context"

	"github.com/dmitrijs2005/lifemgmt/internal/server/models"
)

// Repository stores the sessions backing bearer tokens.
type Repository interface {
	// Create stores s; ID, UserID and ExpiresAt must be set.
	Create(ctx context.Context, s *models.Session) error

	// Find returns the session with the given id or common.ErrorNotFound.
	Find(ctx context.Context, id string) (*models.Session, error)

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	// DeleteByUser revokes every session of userID.
	DeleteByUser(ctx context.Context, userID string) error
}
