package constants

import "time"

const (
	ExternalAPITimeout = 10 * time.Second
	AuthTimeout        = 30 * time.Second
	RequestTimeout     = 60 * time.Second
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	// Tokens are refreshed when less than this much validity remains.
	TokenExpiryMargin = 2 * time.Minute

	// Fallback spartan token lifetime when the issuing endpoint
	// returns no parseable expiry.
	DefaultTokenLifetime = 3 * time.Hour
)

const (
	// How long the authenticate command waits for the browser redirect.
	AuthorizationCodeTimeout = 5 * time.Minute
)
