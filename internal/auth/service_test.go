package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/user-api/internal/logging"
)

// memoryTokenStore is an in-memory RefreshTokenRepository for tests
type memoryTokenStore struct {
	records map[string]struct{}
}

func newMemoryTokenStore() *memoryTokenStore {
	return &memoryTokenStore{records: make(map[string]struct{})}
}

func (s *memoryTokenStore) Create(_ context.Context, token string) error {
	s.records[hashToken(token)] = struct{}{}
	return nil
}

func (s *memoryTokenStore) Exists(_ context.Context, token string) (bool, error) {
	_, ok := s.records[hashToken(token)]
	return ok, nil
}

func (s *memoryTokenStore) Delete(_ context.Context, token string) error {
	delete(s.records, hashToken(token))
	return nil
}

// fakeAccountSource serves accounts from a map keyed by email
type fakeAccountSource struct {
	accounts map[string]*Account
}

func (f *fakeAccountSource) AccountByEmail(_ context.Context, email string) (*Account, error) {
	account, ok := f.accounts[email]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return account, nil
}

func newTestService(t *testing.T, password string) (*Service, *Identity) {
	t.Helper()

	hasher := NewHasher()
	hash, err := hasher.Hash(password)
	require.NoError(t, err)

	identity := testIdentity()
	accounts := &fakeAccountSource{accounts: map[string]*Account{
		identity.Email: {Identity: *identity, PasswordHash: hash},
	}}

	service := NewService(accounts, hasher, newTestTokenService(t), logging.NewLogger(true))
	return service, identity
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	service, identity := newTestService(t, "secret-password")

	t.Run("missing email", func(t *testing.T) {
		_, err := service.Login(ctx, "", "secret-password")
		assert.ErrorIs(t, err, ErrEmailRequired)
	})

	t.Run("missing password", func(t *testing.T) {
		_, err := service.Login(ctx, identity.Email, "")
		assert.ErrorIs(t, err, ErrPasswordRequired)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := service.Login(ctx, "nobody@example.com", "secret-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Login(ctx, identity.Email, "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("success issues both tokens", func(t *testing.T) {
		pair, err := service.Login(ctx, identity.Email, "secret-password")
		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)

		decoded, err := service.tokens.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, identity.ID, decoded.ID)

		exists, err := service.tokens.RefreshTokenExists(ctx, pair.RefreshToken)
		require.NoError(t, err)
		assert.True(t, exists)
	})
}

func TestService_Refresh(t *testing.T) {
	ctx := context.Background()
	service, identity := newTestService(t, "secret-password")

	pair, err := service.Login(ctx, identity.Email, "secret-password")
	require.NoError(t, err)

	t.Run("missing token", func(t *testing.T) {
		_, err := service.Refresh(ctx, "")
		assert.ErrorIs(t, err, ErrRefreshTokenRequired)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := service.Refresh(ctx, "not-a-token")
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})

	t.Run("valid token mints a new access token", func(t *testing.T) {
		accessToken, err := service.Refresh(ctx, pair.RefreshToken)
		require.NoError(t, err)

		decoded, err := service.tokens.ValidateAccessToken(accessToken)
		require.NoError(t, err)
		assert.Equal(t, identity.ID, decoded.ID)
	})

	t.Run("refresh token is not rotated", func(t *testing.T) {
		_, err := service.Refresh(ctx, pair.RefreshToken)
		require.NoError(t, err)

		// Still honored on a subsequent refresh
		_, err = service.Refresh(ctx, pair.RefreshToken)
		assert.NoError(t, err)
	})

	t.Run("revoked token is rejected despite valid signature", func(t *testing.T) {
		require.NoError(t, service.Logout(ctx, pair.RefreshToken))

		_, err := service.Refresh(ctx, pair.RefreshToken)
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})
}

func TestService_Logout(t *testing.T) {
	ctx := context.Background()
	service, identity := newTestService(t, "secret-password")

	pair, err := service.Login(ctx, identity.Email, "secret-password")
	require.NoError(t, err)

	t.Run("missing token", func(t *testing.T) {
		assert.ErrorIs(t, service.Logout(ctx, ""), ErrRefreshTokenRequired)
	})

	t.Run("garbage token", func(t *testing.T) {
		assert.ErrorIs(t, service.Logout(ctx, "not-a-token"), ErrInvalidRefreshToken)
	})

	t.Run("revokes the record", func(t *testing.T) {
		require.NoError(t, service.Logout(ctx, pair.RefreshToken))

		exists, err := service.tokens.RefreshTokenExists(ctx, pair.RefreshToken)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("idempotent for an already-revoked token", func(t *testing.T) {
		assert.NoError(t, service.Logout(ctx, pair.RefreshToken))
	})
}
