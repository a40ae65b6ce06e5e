package user

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/user-api/internal/auth"
	"github.com/redmonkez12/user-api/internal/logging"
)

// memoryRepository is an in-memory Repository for service and handler tests
type memoryRepository struct {
	users map[uuid.UUID]*User
	now   time.Time
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		users: make(map[uuid.UUID]*User),
		now:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *memoryRepository) Create(_ context.Context, u *User) (*User, error) {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return nil, ErrDuplicateEmail
		}
	}

	// Deterministic, strictly increasing creation times
	r.now = r.now.Add(time.Minute)
	stored := *u
	stored.CreatedAt = r.now
	stored.UpdatedAt = r.now
	r.users[u.ID] = &stored

	out := stored
	return &out, nil
}

func (r *memoryRepository) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range r.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *u
	return &out, nil
}

func (r *memoryRepository) List(_ context.Context, filter ListFilter) ([]*User, error) {
	matched := make([]*User, 0, len(r.users))
	for _, u := range r.users {
		if filter.Before != nil && !u.CreatedAt.Before(*filter.Before) {
			continue
		}
		if filter.After != nil && !u.CreatedAt.After(*filter.After) {
			continue
		}
		out := *u
		matched = append(matched, &out)
	}

	sort.Slice(matched, func(i, j int) bool {
		if filter.Order == OrderNameAsc {
			return matched[i].Name < matched[j].Name
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return []*User{}, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}

	return matched, nil
}

func (r *memoryRepository) UpdateName(_ context.Context, id uuid.UUID, name string) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	u.Name = name
	u.UpdatedAt = r.now
	out := *u
	return &out, nil
}

func (r *memoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func newTestService() *Service {
	return NewService(newMemoryRepository(), auth.NewHasher(), logging.NewLogger(true))
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("validation", func(t *testing.T) {
		service := newTestService()

		_, err := service.Create(ctx, "", "jane@example.com", "pw")
		assert.ErrorIs(t, err, ErrNameRequired)

		_, err = service.Create(ctx, "Jane", "", "pw")
		assert.ErrorIs(t, err, ErrEmailRequired)

		_, err = service.Create(ctx, "Jane", "jane@example.com", "")
		assert.ErrorIs(t, err, ErrPasswordRequired)
	})

	t.Run("success", func(t *testing.T) {
		service := newTestService()

		created, err := service.Create(ctx, "Jane", "jane@example.com", "secret-password")
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.Equal(t, "Jane", created.Name)
		assert.Equal(t, auth.RoleUser, created.Role)
		assert.False(t, created.IsVerified)

		// The stored credential is a hash, never the raw password
		assert.NotEqual(t, "secret-password", created.Hash)
		assert.True(t, auth.NewHasher().Verify("secret-password", created.Hash))
	})

	t.Run("duplicate email", func(t *testing.T) {
		service := newTestService()

		_, err := service.Create(ctx, "Jane", "jane@example.com", "pw1")
		require.NoError(t, err)

		_, err = service.Create(ctx, "Other Jane", "jane@example.com", "pw2")
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	service := newTestService()

	created, err := service.Create(ctx, "Jane", "jane@example.com", "pw")
	require.NoError(t, err)

	t.Run("renames", func(t *testing.T) {
		name := "Jane Smith"
		updated, err := service.Update(ctx, created.ID, UpdatePatch{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Jane Smith", updated.Name)
	})

	t.Run("empty patch leaves the record untouched", func(t *testing.T) {
		updated, err := service.Update(ctx, created.ID, UpdatePatch{})
		require.NoError(t, err)
		assert.Equal(t, "Jane Smith", updated.Name)
	})

	t.Run("unknown user", func(t *testing.T) {
		name := "Nobody"
		_, err := service.Update(ctx, uuid.New(), UpdatePatch{Name: &name})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	service := newTestService()

	created, err := service.Create(ctx, "Jane", "jane@example.com", "pw")
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, created.ID))

	_, err = service.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, service.Delete(ctx, created.ID), ErrNotFound)
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	service := newTestService()

	for _, name := range []string{"Charlie", "Alice", "Bob"} {
		_, err := service.Create(ctx, name, name+"@example.com", "pw")
		require.NoError(t, err)
	}

	t.Run("default order is creation time", func(t *testing.T) {
		users, err := service.List(ctx, ListFilter{})
		require.NoError(t, err)
		require.Len(t, users, 3)
		assert.Equal(t, "Charlie", users[0].Name)
		assert.Equal(t, "Alice", users[1].Name)
		assert.Equal(t, "Bob", users[2].Name)
	})

	t.Run("name ascending with pagination", func(t *testing.T) {
		users, err := service.List(ctx, ListFilter{Order: OrderNameAsc, Limit: 2, Offset: 1})
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "Bob", users[0].Name)
		assert.Equal(t, "Charlie", users[1].Name)
	})

	t.Run("created-at bounds are strict", func(t *testing.T) {
		all, err := service.List(ctx, ListFilter{})
		require.NoError(t, err)
		cutoff := all[1].CreatedAt

		before, err := service.List(ctx, ListFilter{Before: &cutoff})
		require.NoError(t, err)
		require.Len(t, before, 1)
		assert.Equal(t, "Charlie", before[0].Name)

		after, err := service.List(ctx, ListFilter{After: &cutoff})
		require.NoError(t, err)
		require.Len(t, after, 1)
		assert.Equal(t, "Bob", after[0].Name)
	})
}

func TestService_AccountByEmail(t *testing.T) {
	ctx := context.Background()
	service := newTestService()

	created, err := service.Create(ctx, "Jane", "jane@example.com", "secret-password")
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		account, err := service.AccountByEmail(ctx, "jane@example.com")
		require.NoError(t, err)
		assert.Equal(t, created.ID, account.ID)
		assert.Equal(t, created.Hash, account.PasswordHash)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := service.AccountByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, auth.ErrAccountNotFound)
	})
}
