package httpx

// CurrentPage constants define the page identifiers used in templates and navigation.
const (
	PageHome          = "home"
	PageLogin         = "login"
	PageDashboard     = "dashboard"
	PageInvoices      = "invoices"
	PageInvoiceCreate = "invoice-create"
)

// Route paths shared by handlers, middleware and templates.
const (
	PathLogin         = "/login"
	PathAuthLogin     = "/auth/login"
	PathAuthCallback  = "/auth/callback"
	PathAuthLogout    = "/auth/logout"
	PathDashboard     = "/dashboard"
	PathInvoices      = "/dashboard/invoices"
	PathInvoiceCreate = "/dashboard/invoices/create"
)

// Cookie names.
const (
	SessionCookieName       = "session_id"
	oauthStateCookieName    = "oauth_state"
	oauthNonceCookieName    = "oauth_nonce"
	postLoginRedirectCookie = "post_login_redirect"
)

// CallbackURLParam is the query parameter the sign-in page reads to know where
// the user was headed before being denied.
const CallbackURLParam = "callbackUrl"

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
)

// Content templates are defined once and reused to avoid per-call allocations.
//
//nolint:gochecknoglobals // static read-only lookup for templates
var contentTemplates = map[string]string{
	PageHome:          "home-content",
	PageLogin:         "login-content",
	PageDashboard:     "dashboard-content",
	PageInvoices:      "invoices-content",
	PageInvoiceCreate: "invoice-create-content",
}

// ContentTemplateMap returns the mapping from CurrentPage to template name.
func ContentTemplateMap() map[string]string { return contentTemplates }

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to home-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := ContentTemplateMap()[currentPage]; ok {
		return name
	}
	return "home-content"
}
