package auth

import "errors"

var (
	// ErrTokenInvalid covers bad signatures, malformed tokens and tokens
	// signed with the wrong key
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenExpired is returned for structurally valid but expired tokens.
	// Callers map both token errors to 401, the distinction exists for tests.
	ErrTokenExpired = errors.New("token has expired")

	ErrEmailRequired        = errors.New("email is required")
	ErrPasswordRequired     = errors.New("password is required")
	ErrInvalidCredentials   = errors.New("incorrect email or password")
	ErrRefreshTokenRequired = errors.New("refresh token is required")
	// ErrInvalidRefreshToken is returned when a refresh token fails signature
	// verification or has no matching persisted record
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrAccountNotFound is returned by AccountSource implementations when
	// no account matches the given email
	ErrAccountNotFound = errors.New("account not found")

	// ErrForbidden is returned when a valid identity lacks the privilege
	// required by the operation's policy
	ErrForbidden = errors.New("forbidden")
)
