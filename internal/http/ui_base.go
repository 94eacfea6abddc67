package httpx

import (
	"context"
	"html"
	"log/slog"
	"net/http"

	"github.com/target/invoice-dashboard/internal/domain/invoice"
	"github.com/target/invoice-dashboard/internal/http/ui/viewmodel"
	"github.com/target/invoice-dashboard/internal/service"
)

// InvoiceReadService is the read side the dashboard pages need.
type InvoiceReadService interface {
	ListCustomers(ctx context.Context) ([]invoice.Customer, error)
	ListInvoices(ctx context.Context, limit int) ([]invoice.Summary, error)
	Overview(ctx context.Context) (service.Overview, error)
}

var _ InvoiceReadService = (*service.InvoiceService)(nil)

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T          *TemplateRenderer
	InvoiceSvc InvoiceReadService
	IsDev      bool // Development mode flag for enhanced error reporting
	Logger     *slog.Logger
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

// buildLayout constructs shared layout metadata from the request/session context.
func buildLayout(r *http.Request, meta PageMeta) viewmodel.Layout {
	layout := viewmodel.Layout{
		Title:       meta.Title,
		PageTitle:   meta.PageTitle,
		CurrentPage: meta.CurrentPage,
		CSRFToken:   GetCSRFToken(r),
	}

	if session := GetSessionFromContext(r.Context()); session != nil {
		layout.IsAuthenticated = true
		layout.User = &viewmodel.User{
			Name:  session.DisplayName(),
			Email: session.Email,
			Role:  string(session.Role),
		}
		layout.Nav = viewmodel.DashboardNav(meta.CurrentPage)
	}

	return layout
}

// basePageData constructs the common page data map with user context.
func basePageData(r *http.Request, meta PageMeta) map[string]any {
	layout := buildLayout(r, meta)
	data := map[string]any{
		"Title":           layout.Title,
		"PageTitle":       layout.PageTitle,
		"CurrentPage":     layout.CurrentPage,
		"IsAuthenticated": layout.IsAuthenticated,
		"Nav":             layout.Nav,
	}
	if layout.CSRFToken != "" {
		data["CSRFToken"] = layout.CSRFToken
	}
	if layout.User != nil {
		data["User"] = layout.User
	}
	return data
}

// PageSpec defines metadata and an optional fetch for page-specific data.
type PageSpec struct {
	Meta  PageMeta
	Fetch func(ctx context.Context, data map[string]any) error
}

// Page builds base data, optionally fetches content data, and renders.
// A failed fetch still renders the page with an error banner.
func (h *UIHandlers) Page(w http.ResponseWriter, r *http.Request, spec PageSpec) {
	data := basePageData(r, spec.Meta)
	if spec.Fetch != nil {
		if err := spec.Fetch(r.Context(), data); err != nil {
			h.logger().ErrorContext(r.Context(), "page data fetch failed",
				slog.String("page", spec.Meta.CurrentPage),
				slog.Any("error", err),
			)
			markPageError(data)
		}
	}
	h.renderDashboardPage(w, r, data)
}

// renderDashboardPage renders the full layout, or for htmx the content plus
// a <title> and an out-of-band header title.
func (h *UIHandlers) renderDashboardPage(w http.ResponseWriter, r *http.Request, data map[string]any) {
	if !WantsPartial(r) {
		if err := h.T.RenderFull(w, r, data); err != nil {
			h.logAndRenderTemplateError(w, r, err, "full page render")
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	SetHXTrigger(w, "nav:activate", map[string]string{"path": r.URL.Path})

	title, _ := data["Title"].(string)
	pageTitle, _ := data["PageTitle"].(string)
	currentPage, _ := data["CurrentPage"].(string)

	if _, err := w.Write([]byte(`<title>` + html.EscapeString(title) + `</title>`)); err != nil {
		h.logger().Error("failed to write partial document title", "error", err)
		return
	}
	if _, err := w.Write([]byte(`<h1 id="header-title" class="header-title" hx-swap-oob="outerHTML">` +
		html.EscapeString(pageTitle) + `</h1>`)); err != nil {
		h.logger().Error("failed to write partial header title", "error", err)
		return
	}
	if err := h.T.ExecuteTemplate(w, ContentTemplateFor(currentPage), data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "partial content render")
	}
}

func markPageError(data map[string]any) {
	data["Error"] = true
	if _, ok := data["ErrorMessage"]; ok {
		return
	}
	data["ErrorMessage"] = "An unexpected error occurred. Please try again."
}

// logAndRenderTemplateError logs template errors and renders them in dev mode.
func (h *UIHandlers) logAndRenderTemplateError(w http.ResponseWriter, r *http.Request, err error, where string) {
	h.logger().Error("template rendering failed",
		"error", err,
		"context", where,
		"path", r.URL.Path,
		"method", r.Method,
	)

	if !h.IsDev {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	body := `<div class="template-error"><h2>Template Rendering Error</h2>` +
		`<p><strong>Context:</strong> ` + html.EscapeString(where) + `</p>` +
		`<p><strong>Path:</strong> ` + html.EscapeString(r.URL.Path) + `</p>` +
		`<pre>` + html.EscapeString(err.Error()) + `</pre></div>`
	if _, writeErr := w.Write([]byte(body)); writeErr != nil {
		h.logger().Error("failed to write template error response", "error", writeErr)
	}
}
