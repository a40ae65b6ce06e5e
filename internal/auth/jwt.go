package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// jwtClaims carries the identity claims plus the registered set
type jwtClaims struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`
	jwt.RegisteredClaims
}

// JWTCodec signs tokens as JWT with HMAC-SHA256
type JWTCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTCodec(secret []byte, ttl time.Duration) *JWTCodec {
	return &JWTCodec{
		secret: secret,
		ttl:    ttl,
	}
}

// Encode generates a new HS256 token carrying the identity claims
func (c *JWTCodec) Encode(identity *Identity) (string, error) {
	now := time.Now()

	claims := jwtClaims{
		Name:       identity.Name,
		Email:      identity.Email,
		Role:       string(identity.Role),
		IsVerified: identity.IsVerified,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  identity.ID.String(),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if c.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(c.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(c.secret)
}

// Decode validates an HS256 token and returns the identity claims
func (c *JWTCodec) Decode(tokenStr string) (*Identity, error) {
	claims := &jwtClaims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	return &Identity{
		ID:         id,
		Name:       claims.Name,
		Email:      claims.Email,
		Role:       Role(claims.Role),
		IsVerified: claims.IsVerified,
	}, nil
}
