package httpx

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	dashboard "github.com/target/invoice-dashboard"
	"github.com/target/invoice-dashboard/internal/domain/guard"
	"github.com/target/invoice-dashboard/internal/domain/invoice"
)

// InvoiceService is everything the dashboard routes need from the invoice service.
type InvoiceService interface {
	InvoiceReadService
	CreateInvoice(ctx context.Context, in invoice.CreateInput) invoice.ActionResult
}

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth     AuthServiceInterface
	Invoices InvoiceService
	Policy   guard.Policy
	// SignInPath overrides the page denied requests are sent to.
	SignInPath   string
	CookieDomain string
	// TemplateFS overrides template discovery; tests point it at the source tree.
	TemplateFS   fs.FS
	HealthChecks map[string]HealthCheck
	IsDev        bool         // Development mode: templates and static files from disk
	Logger       *slog.Logger // Logger for template and HTTP errors (optional)
}

// NewRouter creates the HTTP router wrapped in browser detection, the route
// guard and CSRF protection.
func NewRouter(services RouterServices) (http.Handler, error) {
	if services.Auth == nil {
		return nil, errors.New("auth service is required")
	}
	if services.Invoices == nil {
		return nil, errors.New("invoice service is required")
	}
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS(services),
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create template renderer: %w", err)
	}

	ui := &UIHandlers{T: tr, InvoiceSvc: services.Invoices, IsDev: services.IsDev, Logger: logger}
	form := &InvoiceFormHandlers{UI: ui, Action: services.Invoices.CreateInvoice}
	auth := &AuthHandlers{
		Svc:          services.Auth,
		Policy:       services.Policy,
		CookieDomain: services.CookieDomain,
		Logger:       logger,
	}
	health := &HealthHandler{Checks: services.HealthChecks, Logger: logger}

	mux := http.NewServeMux()
	mux.Handle("GET /healthz", health)
	mux.Handle("HEAD /healthz", health)
	mux.Handle("GET /static/", staticHandler(services.IsDev, logger))
	registerAuthRoutes(mux, auth)
	registerUIRoutes(mux, ui, form)

	var h http.Handler = mux
	h = CSRFProtection(CSRFConfig{CookieDomain: services.CookieDomain, Logger: logger})(h)
	h = RouteGuard(RouteGuardConfig{
		Sessions:   services.Auth,
		Policy:     services.Policy,
		SignInPath: services.SignInPath,
		Logger:     logger,
	})(h)
	return BrowserDetection()(h), nil
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("GET "+PathAuthLogin, h.Login)
	mux.HandleFunc("GET "+PathAuthCallback, h.Callback)
	mux.HandleFunc("POST "+PathAuthLogout, h.Logout)
	mux.HandleFunc("GET /auth/status", h.Status)
}

func registerUIRoutes(mux *http.ServeMux, h *UIHandlers, form *InvoiceFormHandlers) {
	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("GET "+PathLogin, h.Login)
	mux.HandleFunc("GET "+PathDashboard, h.Dashboard)
	mux.HandleFunc("GET "+PathInvoices, h.Invoices)
	mux.HandleFunc("GET "+PathInvoiceCreate, form.New)
	mux.HandleFunc("POST "+PathInvoiceCreate, form.Create)
	mux.HandleFunc("/", h.NotFound)
}

// templateFS picks templates from disk in dev mode and from the embedded copy otherwise.
func templateFS(services RouterServices) fs.FS {
	if services.TemplateFS != nil {
		return services.TemplateFS
	}
	if services.IsDev {
		return os.DirFS(TemplatePathFromRoot)
	}
	sub, err := fs.Sub(dashboard.TemplateFS, TemplatePathFromRoot)
	if err != nil {
		return os.DirFS(TemplatePathFromRoot)
	}
	return sub
}

// staticHandler serves /static/* from disk in dev mode and from the embedded FS otherwise.
func staticHandler(isDev bool, logger *slog.Logger) http.Handler {
	if isDev {
		return staticWithCacheHeaders(isDev, http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static"))))
	}
	sub, err := fs.Sub(dashboard.StaticFS, "frontend/static")
	if err != nil {
		logger.Error("failed to create sub-filesystem for static assets", slog.Any("error", err))
		return staticWithCacheHeaders(isDev, http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static"))))
	}
	return staticWithCacheHeaders(isDev, http.StripPrefix("/static/", http.FileServer(http.FS(sub))))
}

func staticWithCacheHeaders(isDev bool, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isDev {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		} else {
			w.Header().Set("Cache-Control", "public, max-age=3600")
		}
		next.ServeHTTP(w, r)
	})
}
