package auth

import (
	"context"
	"fmt"
)

// TokenService issues and validates the two token classes. Access tokens
// are stateless: validity is signature plus expiry. Refresh tokens carry
// no expiry and are additionally gated by a persisted record.
type TokenService struct {
	access  TokenCodec
	refresh TokenCodec
	records RefreshTokenRepository
}

func NewTokenService(access, refresh TokenCodec, records RefreshTokenRepository) *TokenService {
	return &TokenService{
		access:  access,
		refresh: refresh,
		records: records,
	}
}

// IssueAccessToken produces a signed, short-lived access token
func (s *TokenService) IssueAccessToken(identity *Identity) (string, error) {
	token, err := s.access.Encode(identity)
	if err != nil {
		return "", fmt.Errorf("failed to issue access token: %w", err)
	}
	return token, nil
}

// IssueRefreshToken produces a signed refresh token and persists its record
// as part of the login transaction. The token is not honored without the record.
func (s *TokenService) IssueRefreshToken(ctx context.Context, identity *Identity) (string, error) {
	token, err := s.refresh.Encode(identity)
	if err != nil {
		return "", fmt.Errorf("failed to issue refresh token: %w", err)
	}

	if err := s.records.Create(ctx, token); err != nil {
		return "", fmt.Errorf("failed to persist refresh token record: %w", err)
	}

	return token, nil
}

// ValidateAccessToken verifies signature and expiry.
// Returns ErrTokenInvalid or ErrTokenExpired.
func (s *TokenService) ValidateAccessToken(token string) (*Identity, error) {
	return s.access.Decode(token)
}

// ValidateRefreshToken verifies the signature only. Refresh tokens carry
// no expiry; the persisted-record check is a separate, explicit step done
// via RefreshTokenExists by the authentication flow.
func (s *TokenService) ValidateRefreshToken(token string) (*Identity, error) {
	return s.refresh.Decode(token)
}

// RefreshTokenExists reports whether the revocation record for the token
// is still present
func (s *TokenService) RefreshTokenExists(ctx context.Context, token string) (bool, error) {
	return s.records.Exists(ctx, token)
}

// RevokeRefreshToken deletes the persisted record. Idempotent: revoking a
// non-existent record is not an error at this layer.
func (s *TokenService) RevokeRefreshToken(ctx context.Context, token string) error {
	return s.records.Delete(ctx, token)
}
