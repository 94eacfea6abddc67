package ports

import (
	"context"

	"github.com/target/invoice-dashboard/internal/domain/invoice"
)

// CustomerSource supplies read-only customer reference data.
type CustomerSource interface {
	// ListCustomers returns all customers ordered by name.
	ListCustomers(ctx context.Context) ([]invoice.Customer, error)
	// GetCustomer returns invoice.ErrNotFound when id is unknown.
	GetCustomer(ctx context.Context, id string) (invoice.Customer, error)
}

// InvoiceRepository persists invoices and serves list/overview queries.
type InvoiceRepository interface {
	CreateInvoice(ctx context.Context, inv invoice.Invoice) (invoice.Invoice, error)
	ListInvoices(ctx context.Context, limit int) ([]invoice.Summary, error)
	Totals(ctx context.Context) (invoice.Totals, error)
}
