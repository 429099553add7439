package auth

import "errors"

var (
	ErrValidation     = errors.New("invalid input")
	ErrDuplicateEmail = errors.New("user with this email already exists")
	ErrWeakPassword   = errors.New("password must be at least 6 characters")

	// ErrInvalidCredentials deliberately covers both unknown email and
	// wrong password so callers cannot tell which part failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")

	// ErrInvalidToken and ErrInvalidRefreshToken collapse every
	// verification failure (signature, expiry, revocation, missing or
	// inactive owner) into one opaque answer.
	ErrInvalidToken        = errors.New("invalid token")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	ErrCredentialNotFound = errors.New("credential not found")
	ErrUserNotFound       = errors.New("user not found")
)
