// Package models holds the client-side data types exchanged with the
// Credential Store and kept in the local session.
package models

// User is the identity record owned by the Credential Store. The client keeps
// a read-only copy for the lifetime of a session.
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// DisplayName renders "First Last", falling back to the e-mail.
func (u *User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Email
	}
}

// Credentials is the login input. Never persisted.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegistrationData is the sign-up input. Never persisted.
type RegistrationData struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// AuthResponse is the success payload of login and register.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type ForgotPasswordData struct {
	Email string `json:"email"`
}

type ResetPasswordData struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// MessageResponse is the `{message}` body returned by the password endpoints
// and by failed requests.
type MessageResponse struct {
	Message string `json:"message"`
}
