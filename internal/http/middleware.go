package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"
	"time"

	domainauth "github.com/target/invoice-dashboard/internal/domain/auth"
	"github.com/target/invoice-dashboard/internal/domain/guard"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &respWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// browserRequestKey is an unexported context key type for browser request detection.
type browserRequestKey struct{}

// BrowserDetection returns a middleware that detects browser requests vs API requests.
// Downstream handlers use IsBrowserRequest to choose between HTML and JSON responses.
func BrowserDetection() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), browserRequestKey{}, isBrowserRequest(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IsBrowserRequest returns true if the current request is from a browser.
func IsBrowserRequest(r *http.Request) bool {
	if isBrowser, ok := r.Context().Value(browserRequestKey{}).(bool); ok {
		return isBrowser
	}
	return isBrowserRequest(r)
}

// isBrowserRequest determines if a request is from a browser based on:
// 1. Path prefix - API routes start with /api/
// 2. Accept header - browsers typically accept text/html
// 3. HTMX requests are considered browser requests.
func isBrowserRequest(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") || strings.HasPrefix(r.URL.Path, "/static/") {
		return false
	}
	if IsHTMX(r) {
		return true
	}
	accept := r.Header.Get("Accept")
	if accept == "" {
		return true
	}
	return strings.Contains(accept, "text/html")
}

// SessionLookup resolves a session cookie value to a live session.
type SessionLookup interface {
	GetSession(ctx context.Context, sessionID string) (domainauth.Session, error)
}

// RouteGuardConfig configures the RouteGuard middleware.
type RouteGuardConfig struct {
	Sessions SessionLookup
	Policy   guard.Policy
	// SignInPath is where denied requests are sent. Defaults to PathLogin.
	SignInPath string
	Logger     *slog.Logger
}

// RouteGuard returns a middleware that gates every request through the guard policy.
// A missing cookie, an unknown session, or a session store failure all count as
// "not logged in". Allowed requests carry the session (if any) in their context.
func RouteGuard(cfg RouteGuardConfig) func(http.Handler) http.Handler {
	if cfg.SignInPath == "" {
		cfg.SignInPath = PathLogin
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isGuardExempt(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			session := sessionFromRequest(r, cfg.Sessions, cfg.Logger)
			decision := cfg.Policy.Decide(session != nil, r.URL.Path)
			cfg.Logger.DebugContext(r.Context(), "route guard",
				slog.String("path", r.URL.Path),
				slog.Bool("logged_in", session != nil),
				slog.String("decision", decision.String()),
			)

			switch decision.Kind {
			case guard.Deny:
				denyRequest(w, r, cfg.SignInPath)
			case guard.Redirect:
				redirectRequest(w, r, decision.Target)
			default:
				next.ServeHTTP(w, r.WithContext(SetSessionInContext(r.Context(), session)))
			}
		})
	}
}

// isGuardExempt lists infrastructure routes reachable in both states.
func isGuardExempt(path string) bool {
	return strings.HasPrefix(path, "/static/") ||
		path == "/healthz" ||
		strings.HasPrefix(path, "/auth/")
}

// sessionFromRequest reads the session cookie and resolves it. Any failure yields nil.
func sessionFromRequest(r *http.Request, lookup SessionLookup, logger *slog.Logger) *domainauth.Session {
	if lookup == nil {
		return nil
	}
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	session, err := lookup.GetSession(r.Context(), cookie.Value)
	if err != nil {
		logger.DebugContext(r.Context(), "session lookup failed", slog.Any("error", err))
		return nil
	}
	return &session
}

// denyRequest sends an anonymous user to the sign-in page with the original
// destination in callbackUrl. API clients get a 401 instead.
func denyRequest(w http.ResponseWriter, r *http.Request, signInPath string) {
	target := signInURL(signInPath, redirectPathForRequest(r))
	switch {
	case IsHTMX(r):
		HTMX(w).Navigate(target)
	case !IsBrowserRequest(r):
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
	default:
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}

func redirectRequest(w http.ResponseWriter, r *http.Request, target string) {
	if IsHTMX(r) {
		HTMX(w).Navigate(target)
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func signInURL(signInPath, callback string) string {
	u := url.URL{Path: signInPath}
	q := url.Values{}
	q.Set(CallbackURLParam, callback)
	u.RawQuery = q.Encode()
	return u.String()
}

// redirectPathForRequest picks the page the user was trying to reach. For
// HTMX requests that is the page in the address bar, not the fragment URL.
func redirectPathForRequest(r *http.Request) string {
	if IsHTMX(r) {
		if current := safeRedirectFromURL(r.Header.Get("Hx-Current-Url")); current != "" {
			return current
		}
	}
	return safeRedirectPath(r.URL.RequestURI())
}

func safeRedirectFromURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	// Reject scheme-relative or host-only references.
	if u.Host != "" && !u.IsAbs() {
		return ""
	}
	if u.IsAbs() {
		return safeRedirectPath(u.RequestURI())
	}
	return safeRedirectPath(raw)
}
