package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/target/invoice-dashboard/internal/domain/invoice"
	"github.com/target/invoice-dashboard/internal/http/ui/invoiceform"
)

const invoiceFormTemplate = "invoice-form"

// InvoiceFormHandlers serves the create-invoice page and its submit endpoint.
type InvoiceFormHandlers struct {
	UI     *UIHandlers
	Action invoiceform.Action

	// inflight collapses identical submissions from one session into a single action call.
	inflight singleflight.Group

	mu sync.Mutex
	// forms holds the state holder of each session with a submission in flight.
	forms map[string]*invoiceform.Form
}

var createInvoiceMeta = PageMeta{
	Title:       "Create Invoice | Acme Invoices",
	PageTitle:   "Create Invoice",
	CurrentPage: PageInvoiceCreate,
}

// New renders an empty form.
// GET /dashboard/invoices/create.
func (h *InvoiceFormHandlers) New(w http.ResponseWriter, r *http.Request) {
	h.UI.Page(w, r, PageSpec{
		Meta: createInvoiceMeta,
		Fetch: func(ctx context.Context, data map[string]any) error {
			customers, err := h.UI.InvoiceSvc.ListCustomers(ctx)
			view := h.view(r, customers, invoice.FormState{})
			data["Form"] = view
			return err
		},
	})
}

// Create submits the form values to the action. Success navigates to the
// invoices list; anything else re-renders the form with the returned state.
// POST /dashboard/invoices/create.
func (h *InvoiceFormHandlers) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: err})
		return
	}
	in := invoice.CreateInput{
		CustomerID: r.PostFormValue(string(invoice.FieldCustomerID)),
		Amount:     r.PostFormValue(string(invoice.FieldAmount)),
		Status:     r.PostFormValue(string(invoice.FieldStatus)),
	}

	result, err := h.submit(r, in)
	if err != nil {
		h.UI.logger().WarnContext(r.Context(), "invoice submission rejected", slog.Any("error", err))
		if errors.Is(err, invoiceform.ErrSubmissionPending) {
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "submission_pending", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "submission_failed", Err: err})
		return
	}

	if result.Succeeded() {
		if IsHTMX(r) {
			HTMX(w).Redirect(result.RedirectTo)
			return
		}
		http.Redirect(w, r, result.RedirectTo, http.StatusSeeOther)
		return
	}

	customers, listErr := h.UI.InvoiceSvc.ListCustomers(r.Context())
	if listErr != nil {
		h.UI.logger().ErrorContext(r.Context(), "list customers failed", slog.Any("error", listErr))
	}
	view := h.view(r, customers, result.State)

	if IsHTMX(r) {
		if renderErr := h.UI.T.RenderNamed(w, invoiceFormTemplate, view); renderErr != nil {
			h.UI.logAndRenderTemplateError(w, r, renderErr, "invoice form render")
		}
		return
	}

	data := basePageData(r, createInvoiceMeta)
	data["Form"] = view
	h.UI.renderDashboardPage(w, r, data)
}

// submit runs at most one action per session at a time. A repeated POST with
// the same values while the first is pending waits for and shares its result;
// a POST with different values is rejected by the session's form with
// invoiceform.ErrSubmissionPending. The action is detached from request
// cancellation so a disconnecting client cannot abort a half-finished create.
func (h *InvoiceFormHandlers) submit(r *http.Request, in invoice.CreateInput) (invoice.ActionResult, error) {
	key := submissionKey(r)
	ctx := context.WithoutCancel(r.Context())

	v, err, shared := h.inflight.Do(dedupeKey(key, in), func() (any, error) {
		form := h.formFor(key)
		defer h.releaseForm(key, form)
		return form.Submit(ctx, in)
	})
	if shared {
		h.UI.logger().DebugContext(r.Context(), "duplicate invoice submission collapsed", slog.String("key", key))
	}
	if err != nil {
		return invoice.ActionResult{}, err
	}
	res, ok := v.(invoice.ActionResult)
	if !ok {
		return invoice.ActionResult{}, errors.New("unexpected submission result")
	}
	return res, nil
}

func (h *InvoiceFormHandlers) formFor(key string) *invoiceform.Form {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.forms == nil {
		h.forms = make(map[string]*invoiceform.Form)
	}
	form, ok := h.forms[key]
	if !ok {
		form = invoiceform.New(h.Action, invoice.FormState{})
		h.forms[key] = form
	}
	return form
}

// releaseForm drops the session's form once nothing is pending on it.
func (h *InvoiceFormHandlers) releaseForm(key string, form *invoiceform.Form) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.forms[key] == form && !form.Pending() {
		delete(h.forms, key)
	}
}

// dedupeKey scopes singleflight to one session and one set of submitted values.
func dedupeKey(key string, in invoice.CreateInput) string {
	return strings.Join([]string{key, in.CustomerID, in.Amount, in.Status}, "\x00")
}

// submissionKey identifies the submitter. The guard only lets sessions through,
// so the fallback covers handlers mounted without it.
func submissionKey(r *http.Request) string {
	if s := GetSessionFromContext(r.Context()); s != nil {
		return "session:" + s.ID
	}
	if c, err := r.Cookie(DefaultCSRFCookieName); err == nil && c.Value != "" {
		return "csrf:" + c.Value
	}
	return "remote:" + r.RemoteAddr
}

func (h *InvoiceFormHandlers) view(r *http.Request, customers []invoice.Customer, state invoice.FormState) invoiceform.View {
	v := invoiceform.NewView(customers, state)
	v.CSRFToken = GetCSRFToken(r)
	return v
}
