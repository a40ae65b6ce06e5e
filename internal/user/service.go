package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/redmonkez12/user-api/internal/auth"
	"github.com/redmonkez12/user-api/internal/logging"
)

var (
	ErrNameRequired     = errors.New("name is required")
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordRequired = errors.New("password is required")
)

// UpdatePatch carries the mutable fields of a user. Only the name is
// mutable in the current scope; unknown patch fields are silently ignored
// rather than rejected.
type UpdatePatch struct {
	Name *string `json:"name"`
}

// Service implements the user directory operations
type Service struct {
	repo   Repository
	hasher *auth.Hasher
	logger *logging.Logger
}

func NewService(repo Repository, hasher *auth.Hasher, logger *logging.Logger) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		logger: logger,
	}
}

// Create registers a new user. The email must not be taken; the password
// is hashed before it reaches storage and the raw value is never logged.
func (s *Service) Create(ctx context.Context, name, email, password string) (*User, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if email == "" {
		return nil, ErrEmailRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	// Pre-check for a friendlier conflict path; the unique constraint
	// still catches concurrent inserts at Create below
	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrDuplicateEmail
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, &User{
		ID:    uuid.New(),
		Name:  name,
		Email: email,
		Hash:  hash,
		Role:  auth.RoleUser,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	s.logger.Info("user created", "user_id", created.ID)

	return created, nil
}

// Get retrieves a user by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves users matching the filter
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*User, error) {
	return s.repo.List(ctx, filter)
}

// Update applies a patch to a user. Only the name is applied; a patch
// without a name leaves the record untouched and returns it as-is.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch UpdatePatch) (*User, error) {
	if patch.Name == nil {
		return s.repo.GetByID(ctx, id)
	}

	return s.repo.UpdateName(ctx, id, *patch.Name)
}

// Delete removes a user by ID
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// AccountByEmail implements auth.AccountSource for the authentication flow
func (s *Service) AccountByEmail(ctx context.Context, email string) (*auth.Account, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, auth.ErrAccountNotFound
		}
		return nil, err
	}

	return &auth.Account{
		Identity:     u.Identity(),
		PasswordHash: u.Hash,
	}, nil
}
