// Package cryptox holds the password and token hashing used by the
// Credential Store.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"github.com/dmitrijs2005/lifemgmt/internal/common"
	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of a freshly generated password salt.
const SaltSize = 16

// DeriveKey stretches password with salt using Argon2id.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// HashPassword derives a hash for password under a new random salt.
func HashPassword(password []byte) (hash, salt []byte) {
	salt = common.GenerateRandByteArray(SaltSize)
	return DeriveKey(password, salt), salt
}

// VerifyPassword reports whether password matches hash under salt.
// The comparison runs in constant time.
func VerifyPassword(password, salt, hash []byte) bool {
	candidate := DeriveKey(password, salt)
	defer common.WipeByteArray(candidate)
	return subtle.ConstantTimeCompare(candidate, hash) == 1
}

// HashToken returns the hex SHA-256 of an opaque token. Only hashes of
// reset tokens are stored.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
