package httpx

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func csrfTestHandler() (http.Handler, *string) {
	var seen string
	h := CSRFProtection(CSRFConfig{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetCSRFToken(r)
		w.WriteHeader(http.StatusOK)
	}))
	return h, &seen
}

func findCookie(t *testing.T, rr *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	res := rr.Result()
	t.Cleanup(func() { _ = res.Body.Close() })
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestCSRFProtection_IssuesTokenOnGet(t *testing.T) {
	h, seen := csrfTestHandler()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/dashboard/invoices/create", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	c := findCookie(t, rr, DefaultCSRFCookieName)
	require.NotNil(t, c)
	assert.NotEmpty(t, c.Value)
	assert.Equal(t, c.Value, *seen)
	assert.False(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	assert.False(t, c.Secure)
}

func TestCSRFProtection_ReusesExistingCookie(t *testing.T) {
	h, seen := csrfTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: "existing"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Nil(t, findCookie(t, rr, DefaultCSRFCookieName))
	assert.Equal(t, "existing", *seen)
}

func TestCSRFProtection_SecureCookie(t *testing.T) {
	tests := map[string]func(*http.Request){
		"tls":             func(r *http.Request) { r.TLS = &tls.ConnectionState{} },
		"forwarded proto": func(r *http.Request) { r.Header.Set("X-Forwarded-Proto", "http, https") },
	}
	for name, setup := range tests {
		t.Run(name, func(t *testing.T) {
			h, _ := csrfTestHandler()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			setup(req)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			c := findCookie(t, rr, DefaultCSRFCookieName)
			require.NotNil(t, c)
			assert.True(t, c.Secure)
		})
	}
}

func TestCSRFProtection_PostValidation(t *testing.T) {
	form := url.Values{"csrf_token": {"tok"}, "amount": {"10"}}.Encode()

	tests := []struct {
		name   string
		cookie string
		header string
		body   string
		ctype  string
		accept string
		want   int
	}{
		{name: "no cookie no token", want: http.StatusForbidden},
		{name: "header matches", cookie: "tok", header: "tok", want: http.StatusOK},
		{name: "header mismatch", cookie: "tok", header: "other", want: http.StatusForbidden},
		{name: "form field matches", cookie: "tok", body: form, ctype: "application/x-www-form-urlencoded", want: http.StatusOK},
		{name: "form field ignored for json body", cookie: "tok", body: form, ctype: "application/json", want: http.StatusForbidden},
		{name: "mismatch in form", cookie: "other", body: form, ctype: "application/x-www-form-urlencoded", want: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := csrfTestHandler()
			req := httptest.NewRequest(http.MethodPost, PathInvoiceCreate, strings.NewReader(tt.body))
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: tt.cookie})
			}
			if tt.header != "" {
				req.Header.Set(DefaultCSRFHeaderName, tt.header)
			}
			if tt.ctype != "" {
				req.Header.Set("Content-Type", tt.ctype)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			assert.Equal(t, tt.want, rr.Code)
		})
	}
}

func TestCSRFProtection_APIFailureIsJSON(t *testing.T) {
	h, _ := csrfTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/api/invoices", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.JSONEq(t, `{"error":"csrf_failed","message":"CSRF token validation failed"}`, rr.Body.String())
}

func TestCSRFProtection_SafeMethodsExempt(t *testing.T) {
	for _, m := range []string{http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace} {
		h, _ := csrfTestHandler()
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(m, "/", nil))
		assert.Equal(t, http.StatusOK, rr.Code, m)
	}
}

func TestGetCSRFToken_NoToken(t *testing.T) {
	assert.Empty(t, GetCSRFToken(httptest.NewRequest(http.MethodGet, "/", nil)))
}
