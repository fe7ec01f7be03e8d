// Package middleware holds the fiber middleware of the HTTP API.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/lifemgmt/internal/common"
	"github.com/dmitrijs2005/lifemgmt/internal/logging"
	"github.com/dmitrijs2005/lifemgmt/internal/server/http/presenter"
	"github.com/dmitrijs2005/lifemgmt/internal/server/models"
	"github.com/gofiber/fiber/v2"
)

// Keys of the values the auth middleware stores in fiber locals.
const (
	UserKey      = "user"
	SessionIDKey = "sessionId"
)

// Authenticator resolves a bearer token to its user and session.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, string, error)
}

// NewAuthMiddleware rejects requests without a valid "Bearer <token>"
// header. On success it stores the user and session ID in c.Locals.
func NewAuthMiddleware(a Authenticator, logger logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(common.AuthorizationHeaderName))
		if !ok {
			return presenter.Error(c, http.StatusUnauthorized, "Authentication required")
		}

		user, sessionID, err := a.Authenticate(c.UserContext(), token)
		if err != nil {
			if errors.Is(err, common.ErrorUnauthorized) {
				return presenter.Error(c, http.StatusUnauthorized, "Invalid or expired token")
			}
			logger.Error(c.UserContext(), "authenticate failed", "error", err)
			return presenter.Error(c, http.StatusInternalServerError, "Internal server error")
		}

		c.Locals(UserKey, user)
		c.Locals(SessionIDKey, sessionID)
		return c.Next()
	}
}

// CurrentUser returns the user stored by the auth middleware.
func CurrentUser(c *fiber.Ctx) *models.User {
	u, _ := c.Locals(UserKey).(*models.User)
	return u
}

// CurrentSessionID returns the session ID stored by the auth middleware.
func CurrentSessionID(c *fiber.Ctx) string {
	s, _ := c.Locals(SessionIDKey).(string)
	return s
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
