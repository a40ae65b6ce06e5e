package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// SeedAdmin provisions the bootstrap admin account if it does not exist yet.
// The password hash is computed by the caller so this package stays free of
// any hashing dependency.
func SeedAdmin(ctx context.Context, db *bun.DB, passwordHash string) error {
	admin := &User{
		ID:         uuid.New(),
		Name:       "Admin",
		Email:      "admin@email.com",
		Hash:       passwordHash,
		Role:       "ADMIN",
		IsVerified: true,
	}

	_, err := db.NewInsert().
		Model(admin).
		On("CONFLICT (email) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	return nil
}
