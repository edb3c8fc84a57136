package domain

import "errors"

// Sentinel errors for client operations
var (
	// ErrSessionExpired indicates the refresh flow failed and the user must
	// sign in again
	ErrSessionExpired = errors.New("session expired")

	// ErrUnauthorized indicates the backend rejected the credentials
	ErrUnauthorized = errors.New("authentication failed")

	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = errors.New("resource not found")

	// ErrServerOffline indicates the backend is unreachable
	ErrServerOffline = errors.New("server is unreachable")
)
