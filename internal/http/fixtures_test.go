package httpx

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/target/invoice-dashboard/internal/adapters/authroles"
	"github.com/target/invoice-dashboard/internal/adapters/memory"
	domainauth "github.com/target/invoice-dashboard/internal/domain/auth"
	"github.com/target/invoice-dashboard/internal/domain/invoice"
	mockauth "github.com/target/invoice-dashboard/internal/mocks/auth"
	"github.com/target/invoice-dashboard/internal/ports"
	"github.com/target/invoice-dashboard/internal/service"
)

// authFixture wires a real AuthService to in-memory doubles.
type authFixture struct {
	Provider *mockauth.MockAuthProvider
	Store    ports.SessionStore
	Svc      *service.AuthService
}

func newAuthFixture(t *testing.T, store ports.SessionStore) *authFixture {
	t.Helper()
	if store == nil {
		store = memory.NewSessionStore()
	}
	provider := mockauth.NewMockAuthProvider()
	return &authFixture{
		Provider: provider,
		Store:    store,
		Svc: service.NewAuthService(service.AuthServiceOptions{
			Provider: provider,
			Sessions: store,
			Roles:    authroles.StaticRoleMapper{},
		}),
	}
}

// login stores a session directly and returns its cookie.
func (f *authFixture) login(t *testing.T) *http.Cookie {
	t.Helper()
	sess := domainauth.Session{
		ID:        "sess-" + t.Name(),
		UserID:    "user-1",
		Name:      "Test User",
		Email:     "test@example.com",
		Role:      domainauth.RoleUser,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, f.Store.Save(context.Background(), sess))
	return &http.Cookie{Name: SessionCookieName, Value: sess.ID}
}

func testCustomers() []invoice.Customer {
	return []invoice.Customer{
		{ID: "c-alice", Name: "Alice"},
		{ID: "c-bob", Name: "Bob"},
	}
}

// okHandler records that it ran and whether a session was attached.
type okHandler struct {
	called  bool
	session *domainauth.Session
}

func (h *okHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.called = true
	h.session = GetSessionFromContext(r.Context())
	w.WriteHeader(http.StatusOK)
}
