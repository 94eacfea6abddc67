package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/target/invoice-dashboard/internal/adapters/memory"
	"github.com/target/invoice-dashboard/internal/data"
	"github.com/target/invoice-dashboard/internal/devseed"
	"github.com/target/invoice-dashboard/internal/ports"
	"github.com/target/invoice-dashboard/internal/service"
)

// InvoiceConfig contains dependencies for the invoice service.
type InvoiceConfig struct {
	// DB selects the Postgres repositories; nil keeps everything in memory.
	DB *sql.DB
	// Seed loads the demo customers.
	Seed   bool
	Logger *slog.Logger
}

// BuildInvoiceService wires the create-invoice action and dashboard queries
// to Postgres or to the in-memory store.
func BuildInvoiceService(ctx context.Context, cfg InvoiceConfig) (*service.InvoiceService, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var (
		customers ports.CustomerSource
		invoices  ports.InvoiceRepository
	)
	if cfg.DB != nil {
		customerRepo := data.NewCustomerRepo(cfg.DB)
		if cfg.Seed {
			if err := devseed.Run(ctx, customerRepo, logger); err != nil {
				return nil, fmt.Errorf("seed customers: %w", err)
			}
		}
		customers = customerRepo
		invoices = data.NewInvoiceRepo(cfg.DB)
	} else {
		logger.Warn("database not configured; invoices are kept in memory and lost on restart")
		store := memory.NewStore()
		if cfg.Seed {
			store = memory.NewStore(devseed.Customers()...)
		}
		customers = store
		invoices = store
	}

	return service.NewInvoiceService(service.InvoiceServiceOptions{
		Customers: customers,
		Invoices:  invoices,
		Logger:    logger,
	}), nil
}
