package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
)

// RefreshTokenRepository stores refresh token records. Record existence is
// the revocation mechanism: a well-signed refresh token with no matching
// record is invalid, and deleting the record revokes the token permanently.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token string) error
	Exists(ctx context.Context, token string) (bool, error)
	// Delete removes the record; deleting a non-existent record is not an error
	Delete(ctx context.Context, token string) error
}

// hashToken returns the sha256 digest used as the stored token key,
// so raw token strings never reach storage
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
