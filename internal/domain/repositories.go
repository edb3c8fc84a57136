package domain

// TokenStore persists the session token pair. Tokens are opaque strings;
// expiry is enforced by the backend rejecting the access token.
type TokenStore interface {
	// Tokens returns the stored pair; empty strings when absent.
	Tokens() (access, refresh string)

	// Save replaces the stored pair.
	Save(access, refresh string) error

	// Clear removes both tokens.
	Clear() error
}
