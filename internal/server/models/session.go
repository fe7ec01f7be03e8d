package models

import "time"

// Session backs one issued bearer token; the token's jti is the session ID.
// Deleting the row revokes the token before it expires.
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// ResetToken is a pending password reset. Only the SHA-256 of the token
// handed to the user is stored.
type ResetToken struct {
	TokenHash string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
