package auth

import "github.com/google/uuid"

// Role is the coarse privilege tier embedded in token claims
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Identity is the set of claims carried by both token classes.
// Authorization decisions use these claims as-is; they may be briefly
// stale relative to storage, which is acceptable given the short
// access token lifetime.
type Identity struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	IsVerified bool      `json:"isVerified"`
}

// IsAdmin reports whether the identity holds the ADMIN role
func (i *Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Account is the identity plus the stored credential hash, as looked up
// by the authentication flow.
type Account struct {
	Identity
	PasswordHash string
}
