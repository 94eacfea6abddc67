package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/invoice-dashboard/internal/adapters/authroles"
	"github.com/target/invoice-dashboard/internal/adapters/memory"
	domainauth "github.com/target/invoice-dashboard/internal/domain/auth"
	mockauth "github.com/target/invoice-dashboard/internal/mocks/auth"
	"github.com/target/invoice-dashboard/internal/ports"
)

// stubSessionStore lets tests inject store failures.
type stubSessionStore struct {
	saveFunc   func(context.Context, domainauth.Session) error
	getFunc    func(context.Context, string) (domainauth.Session, error)
	deleteFunc func(context.Context, string) error
}

func (m *stubSessionStore) Save(ctx context.Context, sess domainauth.Session) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, sess)
	}
	return nil
}

func (m *stubSessionStore) Get(ctx context.Context, id string) (domainauth.Session, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return domainauth.Session{}, nil
}

func (m *stubSessionStore) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func newTestAuthService(sessions ports.SessionStore) *AuthService {
	return NewAuthService(AuthServiceOptions{
		Provider: mockauth.NewMockAuthProvider(),
		Sessions: sessions,
		Roles:    authroles.StaticRoleMapper{AdminGroup: "admins"},
	})
}

func TestAuthService_BeginLogin(t *testing.T) {
	svc := newTestAuthService(memory.NewSessionStore())

	res, err := svc.BeginLogin(context.Background(), "/dashboard")
	require.NoError(t, err)
	assert.Equal(t, "https://mock-idp/authorize", res.AuthURL)
	assert.Equal(t, "state-1", res.State)
	assert.Equal(t, "nonce-1", res.Nonce)

	_, err = svc.BeginLogin(context.Background(), "")
	assert.EqualError(t, err, "redirect URL is required")
}

func TestAuthService_BeginLogin_ProviderError(t *testing.T) {
	svc := NewAuthService(AuthServiceOptions{
		Provider: &mockauth.MockAuthProvider{
			BeginFunc: func(context.Context, ports.BeginInput) (string, string, string, error) {
				return "", "", "", errors.New("idp down")
			},
		},
		Sessions: memory.NewSessionStore(),
		Roles:    authroles.StaticRoleMapper{},
	})

	_, err := svc.BeginLogin(context.Background(), "/dashboard")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "idp down")
}

func TestAuthService_CompleteLoginPersistsSession(t *testing.T) {
	store := memory.NewSessionStore()
	svc := newTestAuthService(store)
	ctx := context.Background()

	sess, err := svc.CompleteLogin(ctx, CompleteLoginInput{Code: "c", State: "s", Nonce: "n"})
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, "mock-user-1", sess.UserID)
	assert.Equal(t, "Mock User", sess.Name)
	assert.Equal(t, domainauth.RoleUser, sess.Role)

	stored, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, stored.UserID)

	again, err := svc.CompleteLogin(ctx, CompleteLoginInput{Code: "c", State: "s", Nonce: "n"})
	require.NoError(t, err)
	assert.NotEqual(t, sess.ID, again.ID)
}

func TestAuthService_CompleteLogin_Validation(t *testing.T) {
	svc := newTestAuthService(memory.NewSessionStore())
	tests := []struct {
		name string
		in   CompleteLoginInput
		msg  string
	}{
		{"missing code", CompleteLoginInput{State: "s", Nonce: "n"}, "authorization code is required"},
		{"missing state", CompleteLoginInput{Code: "c", Nonce: "n"}, "state parameter is required"},
		{"missing nonce", CompleteLoginInput{Code: "c", State: "s"}, "nonce parameter is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CompleteLogin(context.Background(), tt.in)
			assert.EqualError(t, err, tt.msg)
		})
	}
}

func TestAuthService_CompleteLogin_SaveError(t *testing.T) {
	svc := newTestAuthService(&stubSessionStore{
		saveFunc: func(context.Context, domainauth.Session) error { return errors.New("redis down") },
	})

	_, err := svc.CompleteLogin(context.Background(), CompleteLoginInput{Code: "c", State: "s", Nonce: "n"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save session")
}

func TestAuthService_GetSession(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	live := domainauth.Session{ID: "live", UserID: "u", ExpiresAt: now.Add(time.Hour)}
	stale := domainauth.Session{ID: "stale", UserID: "u", ExpiresAt: now.Add(-time.Minute)}

	var deleted []string
	store := &stubSessionStore{
		getFunc: func(_ context.Context, id string) (domainauth.Session, error) {
			switch id {
			case "live":
				return live, nil
			case "stale":
				return stale, nil
			}
			return domainauth.Session{}, memory.ErrSessionNotFound
		},
		deleteFunc: func(_ context.Context, id string) error {
			deleted = append(deleted, id)
			return nil
		},
	}
	svc := NewAuthService(AuthServiceOptions{
		Provider: mockauth.NewMockAuthProvider(),
		Sessions: store,
		Roles:    authroles.StaticRoleMapper{},
		Now:      func() time.Time { return now },
	})
	ctx := context.Background()

	got, err := svc.GetSession(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, live, got)

	_, err = svc.GetSession(ctx, "stale")
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, []string{"stale"}, deleted)

	_, err = svc.GetSession(ctx, "missing")
	assert.ErrorIs(t, err, memory.ErrSessionNotFound)

	_, err = svc.GetSession(ctx, "")
	assert.Error(t, err)
}

func TestAuthService_Logout(t *testing.T) {
	store := memory.NewSessionStore()
	svc := newTestAuthService(store)
	ctx := context.Background()

	sess, err := svc.CompleteLogin(ctx, CompleteLoginInput{Code: "c", State: "s", Nonce: "n"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, sess.ID))
	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, memory.ErrSessionNotFound)

	assert.NoError(t, svc.Logout(ctx, ""))
}

func TestAuthService_LogoutStoreError(t *testing.T) {
	svc := newTestAuthService(mockauth.FailingSessionStore{})

	err := svc.Logout(context.Background(), "abc")
	assert.ErrorIs(t, err, mockauth.ErrStoreUnavailable)
}
