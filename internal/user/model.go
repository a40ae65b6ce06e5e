package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/redmonkez12/user-api/internal/auth"
)

type User struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Hash       string    `json:"-"` // Never expose the password hash in JSON
	Role       auth.Role `json:"role"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Identity returns the token claims for this user
func (u *User) Identity() auth.Identity {
	return auth.Identity{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		IsVerified: u.IsVerified,
	}
}
