package invoiceform

import (
	"github.com/target/invoice-dashboard/internal/domain/invoice"
)

const (
	// PlaceholderLabel is the text of the empty, disabled customer option.
	PlaceholderLabel = "Select a customer"
	// CancelURL is where the cancel link points.
	CancelURL = "/dashboard/invoices"
	// ActionURL is the form's POST target.
	ActionURL = "/dashboard/invoices/create"
)

// Option is one entry in the customer select.
type Option struct {
	Value    string
	Label    string
	Disabled bool
	Selected bool
}

// StatusOption is one radio in the status group.
type StatusOption struct {
	Value string
	Label string
}

// FieldView carries a control's name and the errors rendered beneath it.
type FieldView struct {
	Name   string
	Errors []string
}

// ErrorID is the id of the element holding the field's errors.
func (f FieldView) ErrorID() string { return f.Name + "-error" }

// HasErrors reports whether the field has messages to show.
func (f FieldView) HasErrors() bool { return len(f.Errors) > 0 }

// DescribedBy is the aria-describedby value for the control; empty when the
// field has no errors so the attribute is omitted.
func (f FieldView) DescribedBy() string {
	if !f.HasErrors() {
		return ""
	}
	return f.ErrorID()
}

// View is the template data for the create-invoice form.
type View struct {
	ActionURL string
	CancelURL string
	CSRFToken string

	CustomerOptions []Option
	StatusOptions   []StatusOption

	CustomerID FieldView
	Amount     FieldView
	Status     FieldView

	// Message is the top-level outcome text; empty renders nothing.
	Message string
}

// NewView builds the form view from the customer list and current state.
// Customers are rendered in the order given.
func NewView(customers []invoice.Customer, state invoice.FormState) View {
	opts := make([]Option, 0, len(customers)+1)
	opts = append(opts, Option{Value: "", Label: PlaceholderLabel, Disabled: true, Selected: true})
	for _, c := range customers {
		opts = append(opts, Option{Value: c.ID, Label: c.Name})
	}

	return View{
		ActionURL:       ActionURL,
		CancelURL:       CancelURL,
		CustomerOptions: opts,
		StatusOptions: []StatusOption{
			{Value: string(invoice.StatusPending), Label: "Pending"},
			{Value: string(invoice.StatusPaid), Label: "Paid"},
		},
		CustomerID: fieldView(invoice.FieldCustomerID, state),
		Amount:     fieldView(invoice.FieldAmount, state),
		Status:     fieldView(invoice.FieldStatus, state),
		Message:    state.Message,
	}
}

func fieldView(f invoice.Field, state invoice.FormState) FieldView {
	return FieldView{Name: string(f), Errors: state.FieldErrors(f)}
}
