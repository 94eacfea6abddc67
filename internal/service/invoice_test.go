package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/target/invoice-dashboard/internal/domain/invoice"
	"github.com/target/invoice-dashboard/internal/mocks"
)

var fixedNow = time.Date(2024, 3, 9, 23, 30, 0, 0, time.FixedZone("EST", -5*3600))

type invoiceFixture struct {
	customers *mocks.MockCustomerSource
	invoices  *mocks.MockInvoiceRepository
	svc       *InvoiceService
}

func newInvoiceFixture(t *testing.T) invoiceFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := invoiceFixture{
		customers: mocks.NewMockCustomerSource(ctrl),
		invoices:  mocks.NewMockInvoiceRepository(ctrl),
	}
	f.svc = NewInvoiceService(InvoiceServiceOptions{
		Customers: f.customers,
		Invoices:  f.invoices,
		Now:       func() time.Time { return fixedNow },
	})
	return f
}

func TestInvoiceService_CreateInvoice_Success(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()

	f.customers.EXPECT().GetCustomer(gomock.Any(), "c1").Return(invoice.Customer{ID: "c1", Name: "Alice"}, nil)
	f.invoices.EXPECT().CreateInvoice(gomock.Any(), invoice.Invoice{
		CustomerID:  "c1",
		AmountCents: 12346,
		Status:      invoice.StatusPaid,
		Date:        time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	}).Return(invoice.Invoice{ID: "inv-1", CustomerID: "c1", AmountCents: 12346}, nil)

	res := f.svc.CreateInvoice(ctx, invoice.CreateInput{CustomerID: "c1", Amount: "123.455", Status: "paid"})

	assert.True(t, res.Succeeded())
	assert.Equal(t, DefaultInvoicesPath, res.RedirectTo)
	assert.True(t, res.State.IsEmpty())
}

func TestInvoiceService_CreateInvoice_MaximumAmount(t *testing.T) {
	f := newInvoiceFixture(t)

	f.customers.EXPECT().GetCustomer(gomock.Any(), "c1").Return(invoice.Customer{ID: "c1"}, nil)
	f.invoices.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inv invoice.Invoice) (invoice.Invoice, error) {
			assert.Equal(t, invoice.MaxAmountCents, inv.AmountCents)
			return inv, nil
		})

	res := f.svc.CreateInvoice(context.Background(), invoice.CreateInput{CustomerID: "c1", Amount: "1000000000", Status: "pending"})

	assert.True(t, res.Succeeded())
}

func TestInvoiceService_CreateInvoice_AllFieldsMissing(t *testing.T) {
	f := newInvoiceFixture(t)

	res := f.svc.CreateInvoice(context.Background(), invoice.CreateInput{})

	require.False(t, res.Succeeded())
	assert.Equal(t, MsgMissingFields, res.State.Message)
	assert.Equal(t, []string{MsgSelectCustomer}, res.State.FieldErrors(invoice.FieldCustomerID))
	assert.Equal(t, []string{MsgPositiveAmount}, res.State.FieldErrors(invoice.FieldAmount))
	assert.Equal(t, []string{MsgSelectStatus}, res.State.FieldErrors(invoice.FieldStatus))
}

func TestInvoiceService_CreateInvoice_FieldRules(t *testing.T) {
	tests := []struct {
		name  string
		in    invoice.CreateInput
		field invoice.Field
		msg   string
	}{
		{"zero amount", invoice.CreateInput{CustomerID: "c1", Amount: "0", Status: "paid"}, invoice.FieldAmount, MsgPositiveAmount},
		{"negative amount", invoice.CreateInput{CustomerID: "c1", Amount: "-5", Status: "paid"}, invoice.FieldAmount, MsgPositiveAmount},
		{"not a number", invoice.CreateInput{CustomerID: "c1", Amount: "abc", Status: "paid"}, invoice.FieldAmount, MsgPositiveAmount},
		{"rounds to zero cents", invoice.CreateInput{CustomerID: "c1", Amount: "0.004", Status: "paid"}, invoice.FieldAmount, MsgPositiveAmount},
		{"above the maximum", invoice.CreateInput{CustomerID: "c1", Amount: "1000000000.01", Status: "paid"}, invoice.FieldAmount, MsgPositiveAmount},
		{"exponent overflowing cents", invoice.CreateInput{CustomerID: "c1", Amount: "1e17", Status: "paid"}, invoice.FieldAmount, MsgPositiveAmount},
		{"just past int64 cents", invoice.CreateInput{CustomerID: "c1", Amount: "92233720368547758.08", Status: "paid"}, invoice.FieldAmount, MsgPositiveAmount},
		{"unknown status", invoice.CreateInput{CustomerID: "c1", Amount: "5", Status: "overdue"}, invoice.FieldStatus, MsgSelectStatus},
		{"blank customer", invoice.CreateInput{CustomerID: "  ", Amount: "5", Status: "pending"}, invoice.FieldCustomerID, MsgSelectCustomer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newInvoiceFixture(t)

			res := f.svc.CreateInvoice(context.Background(), tt.in)

			require.False(t, res.Succeeded())
			assert.Equal(t, MsgMissingFields, res.State.Message)
			assert.Equal(t, []string{tt.msg}, res.State.FieldErrors(tt.field))
			assert.Len(t, res.State.Errors, 1)
		})
	}
}

func TestInvoiceService_CreateInvoice_UnknownCustomer(t *testing.T) {
	f := newInvoiceFixture(t)
	f.customers.EXPECT().GetCustomer(gomock.Any(), "ghost").Return(invoice.Customer{}, invoice.ErrNotFound)

	res := f.svc.CreateInvoice(context.Background(), invoice.CreateInput{CustomerID: "ghost", Amount: "10", Status: "pending"})

	assert.Equal(t, MsgMissingFields, res.State.Message)
	assert.Equal(t, []string{MsgSelectCustomer}, res.State.FieldErrors(invoice.FieldCustomerID))
}

func TestInvoiceService_CreateInvoice_RepositoryError(t *testing.T) {
	f := newInvoiceFixture(t)
	f.customers.EXPECT().GetCustomer(gomock.Any(), "c1").Return(invoice.Customer{ID: "c1"}, nil)
	f.invoices.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).Return(invoice.Invoice{}, errors.New("connection reset"))

	res := f.svc.CreateInvoice(context.Background(), invoice.CreateInput{CustomerID: "c1", Amount: "10", Status: "pending"})

	require.False(t, res.Succeeded())
	assert.Equal(t, MsgDatabaseError, res.State.Message)
	assert.Empty(t, res.State.Errors)
}

func TestInvoiceService_CreateInvoice_CustomerLookupError(t *testing.T) {
	f := newInvoiceFixture(t)
	f.customers.EXPECT().GetCustomer(gomock.Any(), "c1").Return(invoice.Customer{}, errors.New("timeout"))

	res := f.svc.CreateInvoice(context.Background(), invoice.CreateInput{CustomerID: "c1", Amount: "10", Status: "pending"})

	assert.Equal(t, MsgDatabaseError, res.State.Message)
	assert.Empty(t, res.State.Errors)
}

func TestInvoiceService_ListCustomers(t *testing.T) {
	f := newInvoiceFixture(t)
	want := []invoice.Customer{{ID: "a", Name: "Alice"}, {ID: "b", Name: "Bob"}}
	f.customers.EXPECT().ListCustomers(gomock.Any()).Return(want, nil)

	got, err := f.svc.ListCustomers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestInvoiceService_ListCustomers_Error(t *testing.T) {
	f := newInvoiceFixture(t)
	boom := errors.New("boom")
	f.customers.EXPECT().ListCustomers(gomock.Any()).Return(nil, boom)

	_, err := f.svc.ListCustomers(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestInvoiceService_Overview(t *testing.T) {
	f := newInvoiceFixture(t)
	totals := invoice.Totals{Count: 2, PaidCents: 1000, PendingCents: 250}
	recent := []invoice.Summary{{CustomerName: "Alice"}}
	f.invoices.EXPECT().Totals(gomock.Any()).Return(totals, nil)
	f.invoices.EXPECT().ListInvoices(gomock.Any(), RecentInvoiceLimit).Return(recent, nil)

	ov, err := f.svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, totals, ov.Totals)
	assert.Equal(t, recent, ov.Recent)
}

func TestInvoiceService_Overview_Error(t *testing.T) {
	f := newInvoiceFixture(t)
	boom := errors.New("boom")
	f.invoices.EXPECT().Totals(gomock.Any()).Return(invoice.Totals{}, boom)
	f.invoices.EXPECT().ListInvoices(gomock.Any(), RecentInvoiceLimit).Return(nil, nil).AnyTimes()

	_, err := f.svc.Overview(context.Background())
	assert.ErrorIs(t, err, boom)
}
