// Package data implements the Postgres-backed repositories.
package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/target/invoice-dashboard/internal/data/pgxutil"
	"github.com/target/invoice-dashboard/internal/domain/invoice"
)

// CustomerRepo reads customers from Postgres.
type CustomerRepo struct {
	DB *sql.DB
}

// NewCustomerRepo creates a CustomerRepo.
func NewCustomerRepo(db *sql.DB) *CustomerRepo {
	return &CustomerRepo{DB: db}
}

// ListCustomers returns all customers ordered by name.
func (r *CustomerRepo) ListCustomers(ctx context.Context) ([]invoice.Customer, error) {
	var out []invoice.Customer
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT id, name FROM customers ORDER BY lower(name), id`)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[invoice.Customer])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return out, nil
}

// GetCustomer returns invoice.ErrNotFound when id is unknown.
func (r *CustomerRepo) GetCustomer(ctx context.Context, id string) (invoice.Customer, error) {
	var out invoice.Customer
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT id, name FROM customers WHERE id = $1`, id)
		if err != nil {
			return err
		}
		out, err = pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[invoice.Customer])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return invoice.Customer{}, invoice.ErrNotFound
		}
		return invoice.Customer{}, fmt.Errorf("get customer: %w", err)
	}
	return out, nil
}

// UpsertCustomers inserts or renames customers in one transaction.
func (r *CustomerRepo) UpsertCustomers(ctx context.Context, customers []invoice.Customer) error {
	if len(customers) == 0 {
		return nil
	}
	err := pgxutil.WithPgxTx(ctx, r.DB, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, c := range customers {
			batch.Queue(`
				INSERT INTO customers (id, name) VALUES ($1, $2)
				ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`, c.ID, c.Name)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return fmt.Errorf("upsert customers: %w", err)
	}
	return nil
}
