// Package oidc implements ports.AuthProvider against an OpenID Connect issuer.
package oidc

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	domainauth "github.com/target/invoice-dashboard/internal/domain/auth"
	"github.com/target/invoice-dashboard/internal/ports"
)

const (
	stateLength        = 32
	defaultTokenTTL    = time.Hour
	wellKnownSuffix    = "/.well-known/openid-configuration"
	defaultHTTPTimeout = 30 * time.Second
)

// ProviderConfig holds the client registration and issuer location.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scope        string
	DiscoveryURL string
	HTTPClient   *http.Client
}

// DiscoveryDocument is the subset of the issuer metadata we rely on.
type DiscoveryDocument struct {
	Issuer                string `json:"issuer"`
	AuthorizationEndpoint string `json:"authorization_endpoint"`
	TokenEndpoint         string `json:"token_endpoint"`
	UserinfoEndpoint      string `json:"userinfo_endpoint"`
	JwksURI               string `json:"jwks_uri"`
}

// Provider runs the authorization code flow and verifies ID tokens.
type Provider struct {
	config     *oauth2.Config
	httpClient *http.Client
	issuer     *gooidc.Provider
	verifier   *gooidc.IDTokenVerifier
}

// NewProvider fetches the issuer metadata once and prepares the oauth2 client.
func NewProvider(ctx context.Context, cfg ProviderConfig) (*Provider, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	ctx = gooidc.ClientContext(ctx, client)

	issuerURL := strings.TrimSuffix(strings.TrimSuffix(cfg.DiscoveryURL, "/"), wellKnownSuffix)
	op, err := gooidc.NewProvider(ctx, issuerURL)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery: %w", err)
	}

	return &Provider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       strings.Fields(cfg.Scope),
			Endpoint:     op.Endpoint(),
		},
		httpClient: client,
		issuer:     op,
		verifier:   op.Verifier(&gooidc.Config{ClientID: cfg.ClientID}),
	}, nil
}

func (c ProviderConfig) validate() error {
	switch {
	case c.ClientID == "":
		return errors.New("client ID is required")
	case c.ClientSecret == "":
		return errors.New("client secret is required")
	case c.RedirectURL == "":
		return errors.New("redirect URL is required")
	case c.DiscoveryURL == "":
		return errors.New("discovery URL is required")
	}
	return nil
}

// Begin builds the issuer authorization URL. The caller keeps state and nonce
// in short-lived cookies and hands them back to Exchange.
func (p *Provider) Begin(_ context.Context, in ports.BeginInput) (string, string, string, error) {
	if in.RedirectURL == "" {
		return "", "", "", errors.New("redirect URL is required")
	}
	state, err := randomString(stateLength)
	if err != nil {
		return "", "", "", fmt.Errorf("generate state: %w", err)
	}
	nonce, err := randomString(stateLength)
	if err != nil {
		return "", "", "", fmt.Errorf("generate nonce: %w", err)
	}
	authURL := p.config.AuthCodeURL(state, gooidc.Nonce(nonce))
	return authURL, state, nonce, nil
}

// Exchange trades the code for tokens and resolves the identity from the ID
// token, falling back to the userinfo endpoint for missing claims.
func (p *Provider) Exchange(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error) {
	switch {
	case in.Code == "":
		return domainauth.Identity{}, errors.New("authorization code is required")
	case in.State == "":
		return domainauth.Identity{}, errors.New("state is required")
	case in.Nonce == "":
		return domainauth.Identity{}, errors.New("nonce is required")
	}

	ctx = gooidc.ClientContext(ctx, p.httpClient)
	tok, err := p.config.Exchange(ctx, in.Code)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("exchange code: %w", err)
	}

	var c claims
	if slices.Contains(p.config.Scopes, gooidc.ScopeOpenID) {
		c, err = p.idTokenClaims(ctx, tok, in.Nonce)
		if err != nil {
			return domainauth.Identity{}, err
		}
	}
	if c.Subject == "" || c.Email == "" {
		info, uiErr := p.userInfoClaims(ctx, tok)
		if uiErr != nil {
			return domainauth.Identity{}, uiErr
		}
		c = c.merge(info)
	}

	expires := tok.Expiry
	if expires.IsZero() {
		expires = time.Now().Add(defaultTokenTTL)
	}
	return c.identity(expires), nil
}

func (p *Provider) idTokenClaims(ctx context.Context, tok *oauth2.Token, nonce string) (claims, error) {
	raw, ok := tok.Extra("id_token").(string)
	if !ok || raw == "" {
		return claims{}, errors.New("token response has no id_token")
	}
	idTok, err := p.verifier.Verify(ctx, raw)
	if err != nil {
		return claims{}, fmt.Errorf("verify id_token: %w", err)
	}
	if idTok.Nonce != nonce {
		return claims{}, errors.New("id_token nonce mismatch")
	}
	var c claims
	if err := idTok.Claims(&c); err != nil {
		return claims{}, fmt.Errorf("decode id_token claims: %w", err)
	}
	return c, nil
}

func (p *Provider) userInfoClaims(ctx context.Context, tok *oauth2.Token) (claims, error) {
	info, err := p.issuer.UserInfo(ctx, oauth2.StaticTokenSource(tok))
	if err != nil {
		return claims{}, fmt.Errorf("fetch userinfo: %w", err)
	}
	var c claims
	if err := info.Claims(&c); err != nil {
		return claims{}, fmt.Errorf("decode userinfo: %w", err)
	}
	return c, nil
}

// claims covers the standard profile claims plus the common "groups" claim.
type claims struct {
	Subject           string   `json:"sub"`
	PreferredUsername string   `json:"preferred_username"`
	Name              string   `json:"name"`
	GivenName         string   `json:"given_name"`
	FamilyName        string   `json:"family_name"`
	Email             string   `json:"email"`
	Groups            []string `json:"groups"`
}

// merge fills empty fields of c from other.
func (c claims) merge(other claims) claims {
	c.Subject = firstNonEmpty(c.Subject, other.Subject)
	c.PreferredUsername = firstNonEmpty(c.PreferredUsername, other.PreferredUsername)
	c.Name = firstNonEmpty(c.Name, other.Name)
	c.GivenName = firstNonEmpty(c.GivenName, other.GivenName)
	c.FamilyName = firstNonEmpty(c.FamilyName, other.FamilyName)
	c.Email = firstNonEmpty(c.Email, other.Email)
	if len(c.Groups) == 0 {
		c.Groups = other.Groups
	}
	return c
}

func (c claims) identity(expires time.Time) domainauth.Identity {
	name := c.Name
	if name == "" {
		name = strings.TrimSpace(c.GivenName + " " + c.FamilyName)
	}
	return domainauth.Identity{
		UserID:    firstNonEmpty(c.PreferredUsername, c.Subject),
		Name:      name,
		Email:     c.Email,
		Groups:    c.Groups,
		ExpiresAt: expires,
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// randomString returns a URL-safe random string of exactly n characters.
func randomString(n int) (string, error) {
	if n <= 0 {
		return "", nil
	}
	b := make([]byte, (n*3)/4+2)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b)[:n], nil
}
