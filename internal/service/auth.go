package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/target/invoice-dashboard/internal/domain/auth"
	"github.com/target/invoice-dashboard/internal/ports"
)

// ErrSessionExpired is returned by GetSession for sessions past their expiry.
var ErrSessionExpired = errors.New("session expired")

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Provider ports.AuthProvider
	Sessions ports.SessionStore
	Roles    ports.RoleMapper
	// Now defaults to time.Now.
	Now func() time.Time
}

// AuthService coordinates the identity provider, role mapping, and session persistence.
type AuthService struct {
	provider ports.AuthProvider
	sessions ports.SessionStore
	roles    ports.RoleMapper
	now      func() time.Time
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		provider: opts.Provider,
		sessions: opts.Sessions,
		roles:    opts.Roles,
		now:      now,
	}
}

// BeginLoginResult carries the provider URL plus the values the caller must
// hand back to CompleteLogin.
type BeginLoginResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginLogin starts the provider flow for a user who should land on redirectURL.
func (s *AuthService) BeginLogin(ctx context.Context, redirectURL string) (*BeginLoginResult, error) {
	if redirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}
	authURL, state, nonce, err := s.provider.Begin(ctx, ports.BeginInput{RedirectURL: redirectURL})
	if err != nil {
		return nil, fmt.Errorf("begin auth flow: %w", err)
	}
	return &BeginLoginResult{AuthURL: authURL, State: state, Nonce: nonce}, nil
}

// CompleteLoginInput groups parameters for completing a login flow.
type CompleteLoginInput struct {
	Code  string
	State string
	Nonce string
}

// CompleteLogin exchanges the code for an identity and persists a new session.
func (s *AuthService) CompleteLogin(ctx context.Context, in CompleteLoginInput) (domainauth.Session, error) {
	switch {
	case in.Code == "":
		return domainauth.Session{}, errors.New("authorization code is required")
	case in.State == "":
		return domainauth.Session{}, errors.New("state parameter is required")
	case in.Nonce == "":
		return domainauth.Session{}, errors.New("nonce parameter is required")
	}

	id, err := s.provider.Exchange(ctx, ports.ExchangeInput{Code: in.Code, State: in.State, Nonce: in.Nonce})
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("exchange authorization code: %w", err)
	}

	sess := domainauth.Session{
		ID:        uuid.NewString(),
		UserID:    id.UserID,
		Name:      id.Name,
		Email:     id.Email,
		Role:      s.roles.Map(id.Groups),
		ExpiresAt: id.ExpiresAt,
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return domainauth.Session{}, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

// GetSession loads a live session. Expired sessions are deleted and reported
// as ErrSessionExpired.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (domainauth.Session, error) {
	if sessionID == "" {
		return domainauth.Session{}, errors.New("session ID is required")
	}
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("get session: %w", err)
	}
	if sess.Expired(s.now()) {
		if delErr := s.sessions.Delete(ctx, sessionID); delErr != nil {
			return domainauth.Session{}, errors.Join(ErrSessionExpired, fmt.Errorf("delete session: %w", delErr))
		}
		return domainauth.Session{}, ErrSessionExpired
	}
	return sess, nil
}

// Logout removes a session. An empty ID is a no-op.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
