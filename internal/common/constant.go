package common

const (
	// DefaultCookieName is the cookie carrying the access token when the
	// configuration does not name one.
	DefaultCookieName = "ufind_token"

	// DefaultPageSize and MaxPageSize bound item listings.
	DefaultPageSize = 20
	MaxPageSize     = 100
)
