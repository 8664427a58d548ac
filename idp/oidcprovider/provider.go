// Package oidcprovider adapts a standard OIDC identity provider to the
// session.Provider interface. The initial authorization flow happens
// outside this library; the adapter is seeded with the resulting token and
// from then on handles refresh and revocation.
package oidcprovider

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"

	"github.com/jrsteele09/go-session-lifecycle/session"
)

// Config holds the provider connection settings.
type Config struct {
	IssuerURL    string
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string // Defaults to openid, profile, email
}

// Provider implements session.Provider on top of golang.org/x/oauth2 and
// go-oidc. Endpoints come from the issuer's discovery document.
type Provider struct {
	oidcProvider *oidc.Provider
	oauthConfig  *oauth2.Config
	verifier     *oidc.IDTokenVerifier
	httpClient   *http.Client

	lock  sync.RWMutex
	token *oauth2.Token
}

var _ session.Provider = (*Provider)(nil)

// New discovers the issuer and builds a Provider.
func New(ctx context.Context, cfg Config) (*Provider, error) {
	if cfg.IssuerURL == "" {
		return nil, errors.New("[oidcprovider.New] issuer URL is required")
	}
	if cfg.ClientID == "" {
		return nil, errors.New("[oidcprovider.New] client ID is required")
	}

	oidcProvider, err := oidc.NewProvider(ctx, cfg.IssuerURL)
	if err != nil {
		return nil, errors.Wrap(err, "[oidcprovider.New] oidc.NewProvider")
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{oidc.ScopeOpenID, "profile", "email"}
	}

	return &Provider{
		oidcProvider: oidcProvider,
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     oidcProvider.Endpoint(),
			Scopes:       scopes,
		},
		verifier:   oidcProvider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
		httpClient: http.DefaultClient,
	}, nil
}

// SetToken seeds the provider with the token obtained from the initial
// authorization flow.
func (p *Provider) SetToken(token *oauth2.Token) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.token = token
}

// CurrentSession returns the session for the held token, or nil when no
// user is signed in.
func (p *Provider) CurrentSession(_ context.Context) (*session.Session, error) {
	p.lock.RLock()
	defer p.lock.RUnlock()
	if p.token == nil {
		return nil, nil
	}
	return p.toSession(p.token), nil
}

// RefreshSession exchanges the refresh token for a fresh token via the
// standard oauth2 token source and verifies any ID token that comes back.
func (p *Provider) RefreshSession(ctx context.Context) (*session.Session, error) {
	p.lock.RLock()
	token := p.token
	p.lock.RUnlock()
	if token == nil || token.RefreshToken == "" {
		return nil, session.NoSessionErr
	}

	// Callers come here because the session is inside the refresh
	// threshold, so force a refresh even though the cached access token
	// has not expired yet.
	stale := *token
	stale.Expiry = time.Now().Add(-time.Minute)

	fresh, err := p.oauthConfig.TokenSource(ctx, &stale).Token()
	if err != nil {
		return nil, errors.Wrap(err, "[Provider.RefreshSession] TokenSource")
	}

	if rawIDToken, ok := fresh.Extra("id_token").(string); ok && rawIDToken != "" {
		if _, err := p.verifier.Verify(ctx, rawIDToken); err != nil {
			return nil, errors.Wrap(err, "[Provider.RefreshSession] ID token verification")
		}
	}

	p.lock.Lock()
	p.token = fresh
	p.lock.Unlock()
	return p.toSession(fresh), nil
}

// SignOut drops the held token and revokes the refresh token when the
// issuer advertises an RFC 7009 revocation endpoint.
func (p *Provider) SignOut(ctx context.Context) error {
	p.lock.Lock()
	token := p.token
	p.token = nil
	p.lock.Unlock()
	if token == nil || token.RefreshToken == "" {
		return nil
	}

	var claims struct {
		RevocationEndpoint string `json:"revocation_endpoint"`
	}
	if err := p.oidcProvider.Claims(&claims); err != nil || claims.RevocationEndpoint == "" {
		return nil
	}

	form := url.Values{}
	form.Set("token", token.RefreshToken)
	form.Set("token_type_hint", "refresh_token")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, claims.RevocationEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return errors.Wrap(err, "[Provider.SignOut] NewRequestWithContext")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(p.oauthConfig.ClientID, p.oauthConfig.ClientSecret)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "[Provider.SignOut] revocation request")
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Errorf("[Provider.SignOut] revocation returned %s", resp.Status)
	}
	return nil
}

func (p *Provider) toSession(token *oauth2.Token) *session.Session {
	expiresAt := token.Expiry
	if expiresAt.IsZero() {
		// Some providers omit expires_in; fall back to the JWT exp claim.
		if exp, err := session.ExpiryFromToken(token.AccessToken); err == nil {
			expiresAt = exp
		}
	}
	return &session.Session{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    expiresAt,
	}
}
