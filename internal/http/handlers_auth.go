package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/target/invoice-dashboard/internal/domain/auth"
	"github.com/target/invoice-dashboard/internal/domain/guard"
	"github.com/target/invoice-dashboard/internal/service"
)

const oauthCookieMaxAge = 10 * 60

// AuthServiceInterface defines the auth operations the HTTP layer needs.
type AuthServiceInterface interface {
	SessionLookup
	BeginLogin(ctx context.Context, redirectURL string) (*service.BeginLoginResult, error)
	CompleteLogin(ctx context.Context, input service.CompleteLoginInput) (domainauth.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

var _ AuthServiceInterface = (*service.AuthService)(nil)

// AuthHandlers provides HTTP handlers for the login, callback and logout endpoints.
type AuthHandlers struct {
	Svc          AuthServiceInterface
	Policy       guard.Policy
	CookieDomain string
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Login starts the provider flow.
// GET /auth/login?redirect_uri=<optional_redirect>.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	redirectURI := h.postLoginTarget(r.URL.Query().Get("redirect_uri"))

	result, err := h.Svc.BeginLogin(r.Context(), redirectURI)
	if err != nil {
		h.logger().ErrorContext(r.Context(), "begin login failed", slog.Any("error", err))
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "login_failed", Err: err})
		return
	}

	h.setCookie(w, r, oauthStateCookieName, result.State, oauthCookieMaxAge)
	h.setCookie(w, r, oauthNonceCookieName, result.Nonce, oauthCookieMaxAge)
	h.setCookie(w, r, postLoginRedirectCookie, redirectURI, oauthCookieMaxAge)

	http.Redirect(w, r, result.AuthURL, http.StatusFound)
}

// Callback completes the provider flow and starts a session.
// GET /auth/callback?code=<code>&state=<state>.
func (h *AuthHandlers) Callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if providerErr := q.Get("error"); providerErr != "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "provider_error",
			Err:     errors.New(strings.TrimSpace(providerErr + " " + q.Get("error_description"))),
		})
		return
	}

	code, state := q.Get("code"), q.Get("state")
	switch {
	case code == "":
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "missing_code", Err: errors.New("authorization code is required")})
		return
	case state == "":
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "missing_state", Err: errors.New("state parameter is required")})
		return
	}

	stateCookie, err := r.Cookie(oauthStateCookieName)
	if err != nil || stateCookie.Value != state {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_state", Err: errors.New("invalid or missing state parameter")})
		return
	}
	nonceCookie, err := r.Cookie(oauthNonceCookieName)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "missing_nonce", Err: errors.New("missing nonce parameter")})
		return
	}

	session, err := h.Svc.CompleteLogin(r.Context(), service.CompleteLoginInput{
		Code:  code,
		State: state,
		Nonce: nonceCookie.Value,
	})
	if err != nil {
		h.logger().WarnContext(r.Context(), "login completion failed", slog.Any("error", err))
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "login_completion_failed", Err: err})
		return
	}

	h.setCookie(w, r, SessionCookieName, session.ID, int(time.Until(session.ExpiresAt).Seconds()))
	h.clearCookie(w, r, oauthStateCookieName)
	h.clearCookie(w, r, oauthNonceCookieName)

	target := h.Policy.HomePath()
	if c, cookieErr := r.Cookie(postLoginRedirectCookie); cookieErr == nil {
		target = h.postLoginTarget(c.Value)
		h.clearCookie(w, r, postLoginRedirectCookie)
	}

	h.logger().InfoContext(r.Context(), "user logged in",
		slog.String("user_id", session.UserID),
		slog.String("role", string(session.Role)),
	)
	http.Redirect(w, r, target, http.StatusFound)
}

// Logout ends the session and returns the user to the sign-in page.
// POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(SessionCookieName); err == nil {
		if logoutErr := h.Svc.Logout(r.Context(), c.Value); logoutErr != nil {
			h.logger().WarnContext(r.Context(), "logout failed", slog.Any("error", logoutErr))
		}
	}
	h.clearCookie(w, r, SessionCookieName)

	if IsHTMX(r) {
		HTMX(w).Navigate(PathLogin)
		return
	}
	http.Redirect(w, r, PathLogin, http.StatusSeeOther)
}

// Status reports whether the caller holds a live session.
// GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(SessionCookieName)
	if err != nil {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	session, err := h.Svc.GetSession(r.Context(), c.Value)
	if err != nil {
		h.clearCookie(w, r, SessionCookieName)
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user": map[string]any{
			"id":    session.UserID,
			"name":  session.DisplayName(),
			"email": session.Email,
			"role":  session.Role,
		},
		"expires_at": session.ExpiresAt,
	})
}

// postLoginTarget keeps a requested destination only when it is a same-origin
// path inside the protected tree; anything else lands on the dashboard root.
func (h *AuthHandlers) postLoginTarget(candidate string) string {
	home := h.Policy.HomePath()
	if candidate == "" {
		return home
	}
	safe := safeRedirectPath(candidate)
	u, err := url.Parse(safe)
	if err != nil || !h.Policy.IsProtected(u.Path) {
		return home
	}
	return safe
}

func (h *AuthHandlers) setCookie(w http.ResponseWriter, r *http.Request, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

// clearCookie expires a cookie, mirroring the attributes used when it was set.
func (h *AuthHandlers) clearCookie(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

// safeRedirectPath ensures the redirect is a same-origin relative path
// starting with "/". Returns "/" when invalid.
func safeRedirectPath(candidate string) string {
	if candidate == "" {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	return candidate
}
