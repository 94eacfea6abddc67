// Package invoice defines the invoice domain types and the form state exchanged
// between the create-invoice form and its server action.
package invoice

import (
	"errors"
	"time"
)

// ErrNotFound is returned by sources when a customer or invoice does not exist.
var ErrNotFound = errors.New("not found")

// Field names a form control. Only the three constants below are valid.
type Field string

const (
	FieldCustomerID Field = "customerId"
	FieldAmount     Field = "amount"
	FieldStatus     Field = "status"
)

// Fields returns the form fields in display order.
func Fields() []Field {
	return []Field{FieldCustomerID, FieldAmount, FieldStatus}
}

// Valid reports whether f is one of the known form fields.
func (f Field) Valid() bool {
	switch f {
	case FieldCustomerID, FieldAmount, FieldStatus:
		return true
	default:
		return false
	}
}

// Status is the payment status of an invoice.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusPaid
}

// Customer is read-only reference data rendered in the customer picker.
type Customer struct {
	ID   string `json:"id"   db:"id"`
	Name string `json:"name" db:"name"`
}

// Invoice is a persisted invoice. Amounts are stored in cents.
type Invoice struct {
	ID          string    `json:"id"           db:"id"`
	CustomerID  string    `json:"customer_id"  db:"customer_id"`
	AmountCents int64     `json:"amount_cents" db:"amount"`
	Status      Status    `json:"status"       db:"status"`
	Date        time.Time `json:"date"         db:"date"`
}

// Summary is an invoice row joined with its customer's name for list views.
type Summary struct {
	Invoice
	CustomerName string `json:"customer_name" db:"customer_name"`
}

// Totals aggregates invoice amounts by status, in cents.
type Totals struct {
	Count        int   `db:"count"`
	PaidCents    int64 `db:"paid"`
	PendingCents int64 `db:"pending"`
}

// CreateInput carries the raw submitted form values.
type CreateInput struct {
	CustomerID string
	Amount     string
	Status     string
}

// FormState is the result of a form submission used to re-render the form.
// It is replaced wholesale after every submission and never mutated in place.
type FormState struct {
	Message string
	Errors  map[Field][]string
}

// NewFormState builds a FormState, dropping unknown field keys and empty error lists.
// The error slices are copied so the caller cannot mutate the state afterwards.
func NewFormState(message string, errs map[Field][]string) FormState {
	st := FormState{Message: message}
	for _, f := range Fields() {
		msgs := errs[f]
		if len(msgs) == 0 {
			continue
		}
		if st.Errors == nil {
			st.Errors = make(map[Field][]string, len(errs))
		}
		st.Errors[f] = append([]string(nil), msgs...)
	}
	return st
}

// FieldErrors returns the error messages for f in the order they were reported.
func (s FormState) FieldErrors(f Field) []string {
	return s.Errors[f]
}

// HasFieldErrors reports whether f has at least one error.
func (s FormState) HasFieldErrors(f Field) bool {
	return len(s.Errors[f]) > 0
}

// IsEmpty reports whether the state carries nothing to display.
func (s FormState) IsEmpty() bool {
	return s.Message == "" && len(s.Errors) == 0
}

// ActionResult is what the create action returns: either a redirect target
// on success, or a FormState describing what went wrong.
type ActionResult struct {
	State      FormState
	RedirectTo string
}

// Succeeded reports whether the action asked to navigate away from the form.
func (r ActionResult) Succeeded() bool {
	return r.RedirectTo != ""
}
