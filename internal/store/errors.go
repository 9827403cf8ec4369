package store

import "errors"

// Sentinel errors surfaced by the credential store and session manager.
// All of them are recoverable; callers map them to API responses.
var (
	// ErrAlreadyExists is returned when registering a taken username.
	ErrAlreadyExists = errors.New("username already exists")
	// ErrInvalidCredentials is returned for a wrong password or unknown
	// username on login and password change.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden is returned for mutations the authorization policy rejects.
	ErrForbidden = errors.New("operation forbidden")
	// ErrNotFound is returned when the target record is absent.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned for empty or malformed input values.
	ErrInvalidInput = errors.New("invalid input")
)
