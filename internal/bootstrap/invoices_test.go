package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/invoice-dashboard/internal/devseed"
	"github.com/target/invoice-dashboard/internal/domain/invoice"
)

func TestBuildInvoiceService_MemorySeeded(t *testing.T) {
	svc, err := BuildInvoiceService(context.Background(), InvoiceConfig{Seed: true, Logger: discardLogger()})
	require.NoError(t, err)

	customers, err := svc.ListCustomers(context.Background())
	require.NoError(t, err)
	assert.Len(t, customers, len(devseed.Customers()))

	res := svc.CreateInvoice(context.Background(), invoice.CreateInput{
		CustomerID: devseed.Customers()[0].ID,
		Amount:     "12.5",
		Status:     string(invoice.StatusPaid),
	})
	assert.True(t, res.Succeeded())

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1250), overview.Totals.PaidCents)
}

func TestBuildInvoiceService_MemoryUnseeded(t *testing.T) {
	svc, err := BuildInvoiceService(context.Background(), InvoiceConfig{Logger: discardLogger()})
	require.NoError(t, err)

	customers, err := svc.ListCustomers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, customers)
}
