package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/target/invoice-dashboard/internal/domain/invoice"
	"github.com/target/invoice-dashboard/internal/ports"
)

// Messages returned to the invoice form.
const (
	MsgSelectCustomer = "Please select a customer."
	MsgPositiveAmount = "Please enter an amount greater than $0."
	MsgSelectStatus   = "Please select an invoice status."
	MsgMissingFields  = "Missing Fields. Failed to Create Invoice."
	MsgDatabaseError  = "Database Error: Failed to Create Invoice."
)

const (
	// DefaultInvoicesPath is where a successful create navigates to.
	DefaultInvoicesPath = "/dashboard/invoices"
	// RecentInvoiceLimit bounds the overview's latest-invoices list.
	RecentInvoiceLimit = 5
)

// fieldMessages holds the single message each field reports, whatever rule failed.
var fieldMessages = map[invoice.Field]string{
	invoice.FieldCustomerID: MsgSelectCustomer,
	invoice.FieldAmount:     MsgPositiveAmount,
	invoice.FieldStatus:     MsgSelectStatus,
}

// createInvoiceRequest is the validated shape of a form submission.
type createInvoiceRequest struct {
	CustomerID string `form:"customerId" validate:"required"`
	Amount     string `form:"amount"     validate:"positive_amount"`
	Status     string `form:"status"     validate:"required,oneof=pending paid"`
}

// InvoiceServiceOptions groups dependencies for InvoiceService.
type InvoiceServiceOptions struct {
	Customers ports.CustomerSource
	Invoices  ports.InvoiceRepository
	Logger    *slog.Logger
	// Now defaults to time.Now; only its UTC date is stored.
	Now func() time.Time
	// SuccessPath defaults to DefaultInvoicesPath.
	SuccessPath string
}

// InvoiceService implements the create-invoice action and the dashboard queries.
type InvoiceService struct {
	customers   ports.CustomerSource
	invoices    ports.InvoiceRepository
	logger      *slog.Logger
	now         func() time.Time
	successPath string
	validate    *validator.Validate
}

// NewInvoiceService constructs an InvoiceService.
func NewInvoiceService(opts InvoiceServiceOptions) *InvoiceService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	success := opts.SuccessPath
	if success == "" {
		success = DefaultInvoicesPath
	}
	return &InvoiceService{
		customers:   opts.Customers,
		invoices:    opts.Invoices,
		logger:      logger.With("component", "invoice_service"),
		now:         now,
		successPath: success,
		validate:    newFormValidator(),
	}
}

func newFormValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("positive_amount", func(fl validator.FieldLevel) bool {
		d, err := invoice.ParseAmount(fl.Field().String())
		return err == nil && invoice.AmountInRange(d)
	})
	return v
}

// CreateInvoice validates the submitted values and persists an invoice.
// Failures never surface as Go errors: they are described by the returned
// FormState. On success the result carries the redirect target and an empty state.
func (s *InvoiceService) CreateInvoice(ctx context.Context, in invoice.CreateInput) invoice.ActionResult {
	req := createInvoiceRequest{
		CustomerID: strings.TrimSpace(in.CustomerID),
		Amount:     strings.TrimSpace(in.Amount),
		Status:     strings.TrimSpace(in.Status),
	}

	if fieldErrs := s.validateRequest(req); len(fieldErrs) > 0 {
		return invoice.ActionResult{State: invoice.NewFormState(MsgMissingFields, fieldErrs)}
	}

	if _, err := s.customers.GetCustomer(ctx, req.CustomerID); err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			return invoice.ActionResult{State: invoice.NewFormState(MsgMissingFields, map[invoice.Field][]string{
				invoice.FieldCustomerID: {MsgSelectCustomer},
			})}
		}
		s.logger.ErrorContext(ctx, "lookup customer failed", "customer_id", req.CustomerID, "error", err)
		return invoice.ActionResult{State: invoice.NewFormState(MsgDatabaseError, nil)}
	}

	// Validated above, so the parse cannot fail.
	amount, _ := invoice.ParseAmount(req.Amount)
	y, m, d := s.now().UTC().Date()
	created, err := s.invoices.CreateInvoice(ctx, invoice.Invoice{
		CustomerID:  req.CustomerID,
		AmountCents: invoice.ToCents(amount),
		Status:      invoice.Status(req.Status),
		Date:        time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "create invoice failed", "customer_id", req.CustomerID, "error", err)
		return invoice.ActionResult{State: invoice.NewFormState(MsgDatabaseError, nil)}
	}

	s.logger.InfoContext(ctx, "invoice created",
		"invoice_id", created.ID,
		"customer_id", created.CustomerID,
		"amount_cents", created.AmountCents,
		"status", created.Status,
	)
	return invoice.ActionResult{RedirectTo: s.successPath}
}

func (s *InvoiceService) validateRequest(req createInvoiceRequest) map[invoice.Field][]string {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Only reachable for a non-struct argument.
		return map[invoice.Field][]string{invoice.FieldCustomerID: {MsgSelectCustomer}}
	}
	out := make(map[invoice.Field][]string, len(verrs))
	for _, fe := range verrs {
		f := invoice.Field(fe.Field())
		if len(out[f]) > 0 {
			continue
		}
		out[f] = []string{fieldMessages[f]}
	}
	return out
}

// ListCustomers returns the customers offered by the form picker.
func (s *InvoiceService) ListCustomers(ctx context.Context) ([]invoice.Customer, error) {
	customers, err := s.customers.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

// ListInvoices returns up to limit invoices, newest first.
func (s *InvoiceService) ListInvoices(ctx context.Context, limit int) ([]invoice.Summary, error) {
	rows, err := s.invoices.ListInvoices(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return rows, nil
}

// Overview is the dashboard landing page data.
type Overview struct {
	Totals invoice.Totals
	Recent []invoice.Summary
}

// Overview loads the totals and the latest invoices concurrently.
func (s *InvoiceService) Overview(ctx context.Context) (Overview, error) {
	var out Overview
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := s.invoices.Totals(gctx)
		if err != nil {
			return fmt.Errorf("invoice totals: %w", err)
		}
		out.Totals = t
		return nil
	})
	g.Go(func() error {
		rows, err := s.invoices.ListInvoices(gctx, RecentInvoiceLimit)
		if err != nil {
			return fmt.Errorf("recent invoices: %w", err)
		}
		out.Recent = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}
	return out, nil
}
