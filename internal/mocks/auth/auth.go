// Package auth contains hand-written test doubles for the auth ports.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	domainauth "github.com/target/invoice-dashboard/internal/domain/auth"
	"github.com/target/invoice-dashboard/internal/ports"
)

var (
	_ ports.AuthProvider = (*MockAuthProvider)(nil)
	_ ports.SessionStore = (*FailingSessionStore)(nil)
)

// ErrStoreUnavailable is returned by FailingSessionStore.
var ErrStoreUnavailable = errors.New("session store unavailable")

// MockAuthProvider simulates an identity provider with deterministic
// state and nonce values ("state-1", "nonce-1", ...).
type MockAuthProvider struct {
	BeginFunc    func(ctx context.Context, in ports.BeginInput) (authURL, state, nonce string, err error)
	ExchangeFunc func(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error)

	AuthURL     string
	DefaultUser domainauth.Identity

	calls atomic.Int64
}

// NewMockAuthProvider returns a provider that authenticates a single user.
func NewMockAuthProvider() *MockAuthProvider {
	return &MockAuthProvider{
		AuthURL:     "https://mock-idp/authorize",
		DefaultUser: DefaultIdentity(),
	}
}

// DefaultIdentity is the identity returned when none is configured.
func DefaultIdentity() domainauth.Identity {
	return domainauth.Identity{
		UserID: "mock-user-1",
		Name:   "Mock User",
		Email:  "mock.user@example.com",
		Groups: []string{"users"},
	}
}

func (m *MockAuthProvider) Begin(ctx context.Context, in ports.BeginInput) (string, string, string, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx, in)
	}
	n := m.calls.Add(1)
	authURL := m.AuthURL
	if authURL == "" {
		authURL = "https://mock-idp/authorize"
	}
	return authURL, fmt.Sprintf("state-%d", n), fmt.Sprintf("nonce-%d", n), nil
}

func (m *MockAuthProvider) Exchange(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, in)
	}
	id := m.DefaultUser
	if id.UserID == "" {
		id = DefaultIdentity()
	}
	id.ExpiresAt = time.Now().Add(time.Hour)
	return id, nil
}

// FailingSessionStore fails every call, standing in for an unreachable backend.
type FailingSessionStore struct {
	Err error
}

func (f FailingSessionStore) err() error {
	if f.Err != nil {
		return f.Err
	}
	return ErrStoreUnavailable
}

func (f FailingSessionStore) Save(context.Context, domainauth.Session) error { return f.err() }

func (f FailingSessionStore) Get(context.Context, string) (domainauth.Session, error) {
	return domainauth.Session{}, f.err()
}

func (f FailingSessionStore) Delete(context.Context, string) error { return f.err() }
