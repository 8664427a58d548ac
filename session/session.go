package session

import "time"

// Session is the provider-issued credential bundle representing an
// authenticated user. It is owned by the identity-provider client; this
// library only reads it.
type Session struct {
	AccessToken  string    // Bearer token presented to resource servers (JWT or opaque)
	RefreshToken string    // Token exchanged with the provider for a new session
	ExpiresAt    time.Time // When the access token expires; zero means the provider did not say
}
