package auth

import "errors"

// Terminal authentication errors. Handlers map these onto HTTP status codes;
// none are retried internally.
var (
	// ErrDuplicateUser is returned when a username is already registered.
	ErrDuplicateUser = errors.New("user with this username already exists")

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password so callers cannot enumerate registered usernames.
	ErrInvalidCredentials = errors.New("incorrect username or password")

	// ErrInvalidToken is returned for malformed tokens and signature
	// mismatches.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned for well-signed tokens past their expiry.
	ErrExpiredToken = errors.New("token has expired")

	// ErrUnknownSubject is returned when a valid token references an account
	// that no longer exists.
	ErrUnknownSubject = errors.New("account for token subject not found")
)
