package presenter

import (
	"time"

	"github.com/dmitrijs2005/lifemgmt/internal/server/models"
)

// User is the public view of an account.
type User struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResponse answers login and register.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

func NewUser(u *models.User) User {
	return User{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
