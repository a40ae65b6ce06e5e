package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/user-api/internal/database"
)

// PostgresRepository persists refresh token records in the tokens table
type PostgresRepository struct {
	db *bun.DB
}

func NewPostgresRepository(db *bun.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a refresh token record
func (r *PostgresRepository) Create(ctx context.Context, token string) error {
	dbToken := &database.RefreshToken{
		ID:        uuid.New(),
		TokenHash: hashToken(token),
	}

	_, err := r.db.NewInsert().
		Model(dbToken).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}

	return nil
}

// Exists reports whether a record for the token is present
func (r *PostgresRepository) Exists(ctx context.Context, token string) (bool, error) {
	count, err := r.db.NewSelect().
		Model((*database.RefreshToken)(nil)).
		Where("token_hash = ?", hashToken(token)).
		Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to look up refresh token: %w", err)
	}

	return count > 0, nil
}

// Delete removes the record for the token. Idempotent: deleting a
// non-existent record succeeds.
func (r *PostgresRepository) Delete(ctx context.Context, token string) error {
	_, err := r.db.NewDelete().
		Model((*database.RefreshToken)(nil)).
		Where("token_hash = ?", hashToken(token)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}

	return nil
}
