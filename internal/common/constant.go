// Package common contains shared constants and sentinel errors used across
// lifemgmt components.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer session token.
const AuthorizationHeaderName = "Authorization"

// BearerScheme prefixes the session token inside the Authorization header.
const BearerScheme = "Bearer"

// Default client-side navigation targets.
const (
	DefaultViewPath = "/"
	LoginViewPath   = "/login"
)
