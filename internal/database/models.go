package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the database model for the users table
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID         uuid.UUID `bun:"id,pk,type:uuid"`
	Name       string    `bun:"name,notnull"`
	Email      string    `bun:"email,notnull,unique"`
	Hash       string    `bun:"hash,notnull"`
	Role       string    `bun:"role,notnull,default:'USER'"`
	IsVerified bool      `bun:"is_verified,notnull,default:false"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt  time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// RefreshToken is the database model for the tokens table.
// Row existence is what makes a refresh token valid; only a digest
// of the token string is stored.
type RefreshToken struct {
	bun.BaseModel `bun:"table:tokens,alias:t"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	TokenHash string    `bun:"token_hash,notnull,unique"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}
