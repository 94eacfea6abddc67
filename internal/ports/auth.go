// Package ports defines interfaces (hexagonal ports) for the dashboard's collaborators.
// Implementations live in internal/adapters and internal/data; orchestration in internal/service.
package ports

import (
	"context"

	domainauth "github.com/target/invoice-dashboard/internal/domain/auth"
)

// SessionStore holds the sessions behind the session_id cookie (Redis or memory).
// The route guard only asks whether Get succeeds: any error, including a
// missing or expired session, means the visitor is treated as logged out.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// AuthProvider is the identity provider behind /auth/login and /auth/callback
// (OIDC in production, devauth locally).
type AuthProvider interface {
	// Begin returns the URL the browser is sent to, plus the state and nonce
	// the login handler stores in short-lived cookies.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)

	// Exchange trades the callback code for an identity. The callback handler
	// has already matched state against its cookie; providers that issue ID
	// tokens check the nonce.
	Exchange(ctx context.Context, in ExchangeInput) (domainauth.Identity, error)
}

// BeginInput carries the page to land on once the login completes.
type BeginInput struct {
	RedirectURL string
}

// ExchangeInput is what the callback hands back: the code from the query
// string and the state and nonce read from cookies.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// RoleMapper turns provider groups into the role stored on the session.
type RoleMapper interface {
	Map(groups []string) domainauth.Role
}
