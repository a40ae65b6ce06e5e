package auth

import (
	"fmt"
	"time"

	"github.com/redmonkez12/user-api/internal/config"
)

// TokenCodec signs and verifies one class of token. A codec constructed
// with a positive TTL stamps and enforces expiry; a zero TTL produces
// tokens without an expiry claim and skips the expiry check on decode.
// Implementations include PasetoCodec (PASETO v4.local) and JWTCodec (HS256).
type TokenCodec interface {
	Encode(identity *Identity) (string, error)
	Decode(token string) (*Identity, error)
}

// NewCodec builds a token codec for the configured implementation
func NewCodec(name string, secret []byte, ttl time.Duration) (TokenCodec, error) {
	switch name {
	case config.CodecPaseto:
		return NewPasetoCodec(secret, ttl)
	case config.CodecJWT:
		return NewJWTCodec(secret, ttl), nil
	default:
		return nil, fmt.Errorf("unknown token codec %q", name)
	}
}

// Claim keys shared by both codec implementations
const (
	claimUserID     = "user_id"
	claimName       = "name"
	claimEmail      = "email"
	claimRole       = "role"
	claimIsVerified = "is_verified"
)
