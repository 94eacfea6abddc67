package invoiceform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/invoice-dashboard/internal/domain/invoice"
)

func TestNewView_PlaceholderFirst(t *testing.T) {
	v := NewView([]invoice.Customer{{ID: "c1", Name: "Alice"}}, invoice.FormState{})

	require.Len(t, v.CustomerOptions, 2)
	assert.Equal(t, Option{Value: "", Label: PlaceholderLabel, Disabled: true, Selected: true}, v.CustomerOptions[0])
	assert.Equal(t, Option{Value: "c1", Label: "Alice"}, v.CustomerOptions[1])
}

func TestNewView_NoCustomers(t *testing.T) {
	v := NewView(nil, invoice.FormState{})

	require.Len(t, v.CustomerOptions, 1)
	assert.Equal(t, PlaceholderLabel, v.CustomerOptions[0].Label)
}

func TestNewView_PreservesCustomerOrder(t *testing.T) {
	v := NewView([]invoice.Customer{{ID: "z", Name: "Zed"}, {ID: "a", Name: "Amy"}}, invoice.FormState{})

	assert.Equal(t, "z", v.CustomerOptions[1].Value)
	assert.Equal(t, "a", v.CustomerOptions[2].Value)
}

func TestNewView_EmptyStateHasNoErrors(t *testing.T) {
	v := NewView(nil, invoice.FormState{})

	for _, f := range []FieldView{v.CustomerID, v.Amount, v.Status} {
		assert.False(t, f.HasErrors(), f.Name)
		assert.Empty(t, f.DescribedBy(), f.Name)
	}
	assert.Empty(t, v.Message)
	assert.Equal(t, CancelURL, v.CancelURL)
	assert.Equal(t, ActionURL, v.ActionURL)
}

func TestNewView_FieldErrors(t *testing.T) {
	state := invoice.NewFormState("Missing Fields. Failed to Create Invoice.", map[invoice.Field][]string{
		invoice.FieldAmount: {"first", "second"},
	})

	v := NewView(nil, state)

	assert.Equal(t, "amount", v.Amount.Name)
	assert.Equal(t, "amount-error", v.Amount.ErrorID())
	assert.Equal(t, "amount-error", v.Amount.DescribedBy())
	assert.Equal(t, []string{"first", "second"}, v.Amount.Errors)
	assert.False(t, v.CustomerID.HasErrors())
	assert.False(t, v.Status.HasErrors())
	assert.Equal(t, "Missing Fields. Failed to Create Invoice.", v.Message)
}

func TestNewView_StatusOptions(t *testing.T) {
	v := NewView(nil, invoice.FormState{})

	require.Len(t, v.StatusOptions, 2)
	assert.Equal(t, "pending", v.StatusOptions[0].Value)
	assert.Equal(t, "paid", v.StatusOptions[1].Value)
}
