package session

import "context"

// Provider is the narrow interface onto the identity-provider client.
// Implementations perform the actual network calls to obtain, refresh,
// and revoke sessions.
type Provider interface {
	// CurrentSession returns the session the provider client currently
	// holds, or nil when no user is signed in.
	CurrentSession(ctx context.Context) (*Session, error)

	// RefreshSession obtains a fresh session from the provider.
	RefreshSession(ctx context.Context) (*Session, error)

	// SignOut revokes the current session with the provider.
	SignOut(ctx context.Context) error
}
