package session

import "errors"

var (
	NoSessionErr     = errors.New("no session")
	NoExpiryClaimErr = errors.New("token has no expiry claim")
	NilProviderErr   = errors.New("provider is required")
)
