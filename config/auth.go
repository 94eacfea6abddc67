package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeOAuth uses OAuth/OIDC for authentication.
	AuthModeOAuth AuthMode = "oauth"
	// AuthModeMock uses mock/dev authentication (for development only).
	AuthModeMock AuthMode = "mock"
)

const (
	minSessionTTL = 5 * time.Minute
	maxSessionTTL = 7 * 24 * time.Hour
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "oauth", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oauth, mock)", v)
	}
}

// OAuthConfig contains OAuth/OIDC configuration.
type OAuthConfig struct {
	ClientID     string `env:"CLIENT_ID"     envDefault:"invoice-dashboard"`
	ClientSecret string `env:"CLIENT_SECRET" envDefault:"invoice-dashboard"`
	RedirectURL  string `env:"REDIRECT_URL"  envDefault:"http://localhost:8080/auth/callback"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile email groups"`
	DiscoveryURL string `env:"DISCOVERY_URL"`
}

// DevAuthConfig controls mock/dev authentication identity.
// Used when AUTH_MODE=mock for development and testing.
type DevAuthConfig struct {
	UserID string   `env:"USER_ID" envDefault:"dev-user"`
	Name   string   `env:"NAME"    envDefault:"Dev User"`
	Email  string   `env:"EMAIL"   envDefault:"dev@example.com"`
	Groups []string `env:"GROUPS"  envDefault:"admins"          envSeparator:";"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which authentication provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"oauth"`

	// OAuth configuration (used when Mode=oauth).
	OAuth OAuthConfig `envPrefix:"OAUTH_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// AdminGroup is the IdP group granted the admin role.
	AdminGroup string `env:"ADMIN_GROUP"`

	// UserGroup is the IdP group granted the user role. Empty means every
	// authenticated identity is a user.
	UserGroup string `env:"USER_GROUP"`

	// SessionTTL bounds dev sessions; OIDC sessions follow the ID token expiry.
	SessionTTL time.Duration `env:"AUTH_SESSION_TTL" envDefault:"8h"`
}

// Sanitize clamps the session lifetime.
func (a *AuthConfig) Sanitize() {
	if a.SessionTTL < minSessionTTL {
		a.SessionTTL = minSessionTTL
	}
	if a.SessionTTL > maxSessionTTL {
		a.SessionTTL = maxSessionTTL
	}
}
