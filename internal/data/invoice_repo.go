package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/target/invoice-dashboard/internal/data/pgxutil"
	"github.com/target/invoice-dashboard/internal/domain/invoice"
)

const defaultInvoiceListLimit = 50

// InvoiceRepo stores invoices in Postgres.
type InvoiceRepo struct {
	DB    *sql.DB
	newID func() string
}

// NewInvoiceRepo creates an InvoiceRepo that assigns random UUIDs.
func NewInvoiceRepo(db *sql.DB) *InvoiceRepo {
	return &InvoiceRepo{DB: db, newID: uuid.NewString}
}

// CreateInvoice inserts inv. An unknown customer yields invoice.ErrNotFound.
func (r *InvoiceRepo) CreateInvoice(ctx context.Context, inv invoice.Invoice) (invoice.Invoice, error) {
	if inv.CustomerID == "" {
		return invoice.Invoice{}, errors.New("customer ID is required")
	}
	if inv.ID == "" {
		inv.ID = r.newID()
	}

	var out invoice.Invoice
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO invoices (id, customer_id, amount, status, date)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id::text AS id, customer_id, amount, status, date`,
			inv.ID, inv.CustomerID, inv.AmountCents, string(inv.Status), inv.Date,
		)
		if err != nil {
			return err
		}
		out, err = pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[invoice.Invoice])
		return err
	})
	if err != nil {
		return invoice.Invoice{}, fmt.Errorf("create invoice: %w", mapErr(err))
	}
	return out, nil
}

// ListInvoices returns up to limit invoices joined with customer names, newest first.
func (r *InvoiceRepo) ListInvoices(ctx context.Context, limit int) ([]invoice.Summary, error) {
	if limit <= 0 {
		limit = defaultInvoiceListLimit
	}
	var out []invoice.Summary
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT i.id::text AS id, i.customer_id, i.amount, i.status, i.date,
			       c.name AS customer_name
			FROM invoices i
			JOIN customers c ON c.id = i.customer_id
			ORDER BY i.date DESC, i.id
			LIMIT $1`, limit)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[invoice.Summary])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return out, nil
}

// Totals sums invoice amounts by status. Sums saturate at the bigint maximum.
func (r *InvoiceRepo) Totals(ctx context.Context) (invoice.Totals, error) {
	var out invoice.Totals
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, `
			SELECT count(*),
			       least(coalesce(sum(amount) FILTER (WHERE status = 'paid'), 0), 9223372036854775807)::bigint,
			       least(coalesce(sum(amount) FILTER (WHERE status = 'pending'), 0), 9223372036854775807)::bigint
			FROM invoices`).Scan(&out.Count, &out.PaidCents, &out.PendingCents)
	})
	if err != nil {
		return invoice.Totals{}, fmt.Errorf("invoice totals: %w", err)
	}
	return out, nil
}
