package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/user-api/internal/auth"
	"github.com/redmonkez12/user-api/internal/database"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// OrderNameAsc sorts a listing by name, ascending
const OrderNameAsc = "nameASC"

// ListFilter narrows and orders a user listing. Filters compose
// conjunctively; a nil/zero field means no constraint on that dimension.
type ListFilter struct {
	Before *time.Time // created strictly before
	After  *time.Time // created strictly after
	Order  string     // OrderNameAsc, or empty for insertion order
	Limit  int
	Offset int
}

// Repository handles user data persistence
type Repository interface {
	Create(ctx context.Context, u *User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	List(ctx context.Context, filter ListFilter) ([]*User, error)
	UpdateName(ctx context.Context, id uuid.UUID, name string) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PostgresRepository is the bun-backed Repository implementation
type PostgresRepository struct {
	db *bun.DB
}

func NewPostgresRepository(db *bun.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new user. A unique-constraint violation on email is
// reported as ErrDuplicateEmail, same as the pre-insert check.
func (r *PostgresRepository) Create(ctx context.Context, u *User) (*User, error) {
	dbUser := &database.User{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Hash:       u.Hash,
		Role:       string(u.Role),
		IsVerified: u.IsVerified,
	}

	_, err := r.db.NewInsert().
		Model(dbUser).
		Returning("*").
		Exec(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// GetByEmail retrieves a user by email
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	dbUser := new(database.User)
	err := r.db.NewSelect().
		Model(dbUser).
		Where("email = ?", email).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// GetByID retrieves a user by ID
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	dbUser := new(database.User)
	err := r.db.NewSelect().
		Model(dbUser).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// List retrieves users matching the filter
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]*User, error) {
	var dbUsers []*database.User

	q := r.db.NewSelect().Model(&dbUsers)

	if filter.Before != nil {
		q = q.Where("created_at < ?", *filter.Before)
	}
	if filter.After != nil {
		q = q.Where("created_at > ?", *filter.After)
	}

	switch filter.Order {
	case OrderNameAsc:
		q = q.Order("name ASC")
	default:
		// Insertion order when no ordering is requested
		q = q.Order("created_at ASC")
	}

	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*User, 0, len(dbUsers))
	for _, dbUser := range dbUsers {
		users = append(users, mapDBUserToModel(dbUser))
	}

	return users, nil
}

// UpdateName updates a user's name and returns the updated record
func (r *PostgresRepository) UpdateName(ctx context.Context, id uuid.UUID, name string) (*User, error) {
	dbUser := new(database.User)
	result, err := r.db.NewUpdate().
		Model(dbUser).
		Set("name = ?", name).
		Set("updated_at = NOW()").
		Where("id = ?", id).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	return mapDBUserToModel(dbUser), nil
}

// Delete removes a user by ID
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.NewDelete().
		Model((*database.User)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// mapDBUserToModel converts database model to domain model
func mapDBUserToModel(dbu *database.User) *User {
	return &User{
		ID:         dbu.ID,
		Name:       dbu.Name,
		Email:      dbu.Email,
		Hash:       dbu.Hash,
		Role:       auth.Role(dbu.Role),
		IsVerified: dbu.IsVerified,
		CreatedAt:  dbu.CreatedAt,
		UpdatedAt:  dbu.UpdatedAt,
	}
}
