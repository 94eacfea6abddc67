package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

// InvoiceListLimit bounds the invoices table.
const InvoiceListLimit = 50

var errNotFound = errors.New("resource not found")

// Home renders the public landing page.
func (h *UIHandlers) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.NotFound(w, r)
		return
	}
	h.Page(w, r, PageSpec{Meta: PageMeta{Title: "Acme Invoices", PageTitle: "Welcome", CurrentPage: PageHome}})
}

// Login renders the sign-in page. The callbackUrl query parameter set by the
// route guard is forwarded to the provider flow.
func (h *UIHandlers) Login(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Log in | Acme Invoices", PageTitle: "Log in", CurrentPage: PageLogin},
		Fetch: func(_ context.Context, data map[string]any) error {
			callback := r.URL.Query().Get(CallbackURLParam)
			data["CallbackURL"] = callback
			data["LoginURL"] = loginURL(callback)
			return nil
		},
	})
}

func loginURL(callback string) string {
	if callback == "" {
		return PathAuthLogin
	}
	q := url.Values{}
	q.Set("redirect_uri", callback)
	return PathAuthLogin + "?" + q.Encode()
}

// Dashboard renders the overview: invoice totals and the latest invoices.
func (h *UIHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Dashboard | Acme Invoices", PageTitle: "Dashboard", CurrentPage: PageDashboard},
		Fetch: func(ctx context.Context, data map[string]any) error {
			overview, err := h.InvoiceSvc.Overview(ctx)
			if err != nil {
				return err
			}
			data["Totals"] = overview.Totals
			data["Recent"] = overview.Recent
			return nil
		},
	})
}

// Invoices renders the invoices table.
func (h *UIHandlers) Invoices(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Invoices | Acme Invoices", PageTitle: "Invoices", CurrentPage: PageInvoices},
		Fetch: func(ctx context.Context, data map[string]any) error {
			rows, err := h.InvoiceSvc.ListInvoices(ctx, InvoiceListLimit)
			if err != nil {
				return err
			}
			data["Invoices"] = rows
			data["CreateURL"] = PathInvoiceCreate
			return nil
		},
	})
}

// NotFound renders a plain 404 for browsers and a JSON 404 otherwise.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if !IsBrowserRequest(r) {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: errNotFound})
		return
	}
	http.Error(w, "404 page not found", http.StatusNotFound)
}
