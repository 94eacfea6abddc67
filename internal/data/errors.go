package data

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/target/invoice-dashboard/internal/domain/invoice"
)

// ErrInvalidInvoice is returned when the database rejects an invoice row
// through a check constraint.
var ErrInvalidInvoice = errors.New("invoice violates a table constraint")

// mapErr translates driver errors into domain sentinels, wrapping the original.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return invoice.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgerrcode.ForeignKeyViolation:
		return errors.Join(invoice.ErrNotFound, err)
	case pgerrcode.CheckViolation, pgerrcode.NotNullViolation:
		return errors.Join(ErrInvalidInvoice, err)
	}
	return err
}
