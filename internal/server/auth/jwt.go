// Package auth issues and parses the Credential Store's bearer tokens
// (HS256 JWTs whose subject is the user ID and whose jti is the session ID).
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/lifemgmt/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the standard claims carried by a session token.
type Claims struct {
	jwt.RegisteredClaims
}

// UserID returns the token subject.
func (c *Claims) UserID() string { return c.Subject }

// SessionID returns the token ID.
func (c *Claims) SessionID() string { return c.ID }

// GenerateToken signs a token for userID bound to sessionID that expires at
// expiresAt.
func GenerateToken(userID, sessionID string, secretKey []byte, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        sessionID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	s, err := token.SignedString(secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

// ParseToken validates tokenString and returns its claims. Expired tokens
// yield common.ErrTokenExpired; anything else that fails validation yields
// common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" || claims.ID == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
