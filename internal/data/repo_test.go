package data

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/invoice-dashboard/internal/domain/invoice"
	"github.com/target/invoice-dashboard/internal/testutil"
)

func seedCustomers(t *testing.T, repo *CustomerRepo) {
	t.Helper()
	require.NoError(t, repo.UpsertCustomers(context.Background(), []invoice.Customer{
		{ID: "c2", Name: "bob"},
		{ID: "c1", Name: "Alice"},
	}))
}

func TestCustomerRepo_ListAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewCustomerRepo(db)
	seedCustomers(t, repo)
	ctx := context.Background()

	got, err := repo.ListCustomers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []invoice.Customer{{ID: "c1", Name: "Alice"}, {ID: "c2", Name: "bob"}}, got)

	c, err := repo.GetCustomer(ctx, "c2")
	require.NoError(t, err)
	assert.Equal(t, "bob", c.Name)

	_, err = repo.GetCustomer(ctx, "nope")
	assert.ErrorIs(t, err, invoice.ErrNotFound)
}

func TestCustomerRepo_UpsertRenames(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewCustomerRepo(db)
	seedCustomers(t, repo)
	ctx := context.Background()

	require.NoError(t, repo.UpsertCustomers(ctx, []invoice.Customer{{ID: "c1", Name: "Alicia"}}))
	c, err := repo.GetCustomer(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Alicia", c.Name)
}

func TestInvoiceRepo_CreateListTotals(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedCustomers(t, NewCustomerRepo(db))
	repo := NewInvoiceRepo(db)
	ctx := context.Background()

	day1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	created, err := repo.CreateInvoice(ctx, invoice.Invoice{
		CustomerID: "c1", AmountCents: 1500, Status: invoice.StatusPaid, Date: day1,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, int64(1500), created.AmountCents)

	_, err = repo.CreateInvoice(ctx, invoice.Invoice{
		CustomerID: "c2", AmountCents: 250, Status: invoice.StatusPending, Date: day2,
	})
	require.NoError(t, err)

	rows, err := repo.ListInvoices(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "bob", rows[0].CustomerName)
	assert.Equal(t, "Alice", rows[1].CustomerName)
	assert.True(t, rows[0].Date.Equal(day2))

	limited, err := repo.ListInvoices(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	totals, err := repo.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, invoice.Totals{Count: 2, PaidCents: 1500, PendingCents: 250}, totals)
}

func TestInvoiceRepo_UnknownCustomer(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewInvoiceRepo(db)

	_, err := repo.CreateInvoice(context.Background(), invoice.Invoice{
		CustomerID: "ghost", AmountCents: 100, Status: invoice.StatusPaid, Date: time.Now().UTC(),
	})
	assert.ErrorIs(t, err, invoice.ErrNotFound)
}

func TestInvoiceRepo_RejectsNonPositiveAmount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedCustomers(t, NewCustomerRepo(db))
	repo := NewInvoiceRepo(db)

	_, err := repo.CreateInvoice(context.Background(), invoice.Invoice{
		CustomerID: "c1", AmountCents: 0, Status: invoice.StatusPaid, Date: time.Now().UTC(),
	})
	assert.ErrorIs(t, err, ErrInvalidInvoice)
}

func TestMapErr(t *testing.T) {
	assert.NoError(t, mapErr(nil))
	assert.ErrorIs(t, mapErr(pgx.ErrNoRows), invoice.ErrNotFound)

	fk := &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}
	assert.ErrorIs(t, mapErr(fk), invoice.ErrNotFound)
	assert.ErrorIs(t, mapErr(fk), fk)

	check := &pgconn.PgError{Code: pgerrcode.CheckViolation}
	assert.ErrorIs(t, mapErr(check), ErrInvalidInvoice)

	other := errors.New("other")
	assert.Equal(t, other, mapErr(other))
}

func TestInvoiceRepo_RejectsAmountAboveMaximum(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedCustomers(t, NewCustomerRepo(db))
	repo := NewInvoiceRepo(db)

	_, err := repo.CreateInvoice(context.Background(), invoice.Invoice{
		CustomerID: "c1", AmountCents: invoice.MaxAmountCents + 1, Status: invoice.StatusPaid, Date: time.Now().UTC(),
	})
	assert.ErrorIs(t, err, ErrInvalidInvoice)
}
