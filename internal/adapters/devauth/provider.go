// Package devauth provides a config-driven AuthProvider for local development.
package devauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"time"

	domainauth "github.com/target/invoice-dashboard/internal/domain/auth"
	"github.com/target/invoice-dashboard/internal/ports"
)

const defaultSessionDuration = 8 * time.Hour

// Config controls the dev auth provider behavior.
// UserID and Email are required.
type Config struct {
	UserID          string
	Name            string
	Email           string
	Groups          []string
	SessionDuration time.Duration
	CallbackPath    string // default /auth/callback
}

// Provider short-circuits the OAuth flow by redirecting straight back to our
// own callback with locally generated state. Exchange ignores the code and
// returns the configured identity.
type Provider struct {
	identity        domainauth.Identity
	sessionDuration time.Duration
	callbackPath    string
	now             func() time.Time
}

// NewProvider constructs a dev auth provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.UserID == "" {
		return nil, errors.New("dev auth: UserID is required")
	}
	if cfg.Email == "" {
		return nil, errors.New("dev auth: Email is required")
	}
	dur := cfg.SessionDuration
	if dur <= 0 {
		dur = defaultSessionDuration
	}
	cb := cfg.CallbackPath
	if cb == "" {
		cb = "/auth/callback"
	}
	return &Provider{
		identity: domainauth.Identity{
			UserID: cfg.UserID,
			Name:   cfg.Name,
			Email:  cfg.Email,
			Groups: append([]string(nil), cfg.Groups...),
		},
		sessionDuration: dur,
		callbackPath:    cb,
		now:             time.Now,
	}, nil
}

// Begin returns a local callback URL and random state and nonce.
func (p *Provider) Begin(_ context.Context, _ ports.BeginInput) (string, string, string, error) {
	state, err := randomString(24)
	if err != nil {
		return "", "", "", fmt.Errorf("generate state: %w", err)
	}
	nonce, err := randomString(24)
	if err != nil {
		return "", "", "", fmt.Errorf("generate nonce: %w", err)
	}
	q := url.Values{}
	q.Set("code", "dev")
	q.Set("state", state)
	return p.callbackPath + "?" + q.Encode(), state, nonce, nil
}

// Exchange returns the configured identity with a fresh expiry.
func (p *Provider) Exchange(_ context.Context, _ ports.ExchangeInput) (domainauth.Identity, error) {
	id := p.identity
	id.Groups = append([]string(nil), p.identity.Groups...)
	id.ExpiresAt = p.now().Add(p.sessionDuration)
	return id, nil
}

func randomString(n int) (string, error) {
	if n <= 0 {
		return "", nil
	}
	b := make([]byte, (n*3+3)/4+1)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b)[:n], nil
}
