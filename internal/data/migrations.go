package data

import (
	"context"
	"database/sql"

	"github.com/target/invoice-dashboard/internal/migrate"
)

// RunMigrations applies the customers and invoices schema by delegating to the migrate package.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrate.Run(ctx, db)
}
