// Package models holds the Credential Store's persistent records.
package models

import "time"

// User is an account. PasswordHash is argon2id(password, Salt).
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash []byte
	Salt         []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
