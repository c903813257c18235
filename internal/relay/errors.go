package relay

import "errors"

var (
	ErrInvalidMethod   = errors.New("relay: method not allowed")
	ErrMissingField    = errors.New("relay: missing fields")
	ErrInvalidEmail    = errors.New("relay: invalid email")
	ErrProviderFailure = errors.New("relay: provider failure")
	ErrNotConfigured   = errors.New("relay: not configured")
)
