package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/redmonkez12/user-api/internal/logging"
)

// AccountSource is the slice of the user directory the authentication
// flow needs: credential lookup by email.
type AccountSource interface {
	AccountByEmail(ctx context.Context, email string) (*Account, error)
}

// TokenPair is the response of a successful login
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Service implements the authentication flow: login, token refresh, logout
type Service struct {
	accounts AccountSource
	hasher   *Hasher
	tokens   *TokenService
	logger   *logging.Logger
}

func NewService(accounts AccountSource, hasher *Hasher, tokens *TokenService, logger *logging.Logger) *Service {
	return &Service{
		accounts: accounts,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

// Login verifies the credentials and issues both tokens, persisting the
// refresh token record. Unknown email and wrong password both return
// ErrInvalidCredentials so the response does not leak which field was wrong.
func (s *Service) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	account, err := s.accounts.AccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokens.IssueAccessToken(&account.Identity)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.tokens.IssueRefreshToken(ctx, &account.Identity)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", "user_id", account.ID)

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh mints a new access token from a refresh token. The token must
// verify AND its persisted record must still exist; a well-signed token
// whose record was deleted is rejected. The refresh token is not rotated.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", ErrRefreshTokenRequired
	}

	identity, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	exists, err := s.tokens.RefreshTokenExists(ctx, refreshToken)
	if err != nil {
		return "", fmt.Errorf("failed to check refresh token record: %w", err)
	}
	if !exists {
		return "", ErrInvalidRefreshToken
	}

	return s.tokens.IssueAccessToken(identity)
}

// Logout revokes the refresh token by deleting its record
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return ErrRefreshTokenRequired
	}

	identity, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return ErrInvalidRefreshToken
	}

	if err := s.tokens.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	s.logger.Info("user logged out", "user_id", identity.ID)

	return nil
}
