// Package invoiceform holds the create-invoice form state and its view model.
package invoiceform

import (
	"context"
	"errors"
	"sync"

	"github.com/target/invoice-dashboard/internal/domain/invoice"
)

// ErrSubmissionPending is returned by Submit while an earlier submission is
// still waiting for its action to resolve.
var ErrSubmissionPending = errors.New("invoice form: submission already pending")

// Action is the server-side create-invoice action the form submits to.
type Action func(ctx context.Context, in invoice.CreateInput) invoice.ActionResult

// Form holds the current FormState and whether a submission is in flight.
// The state is only ever replaced, never edited in place.
type Form struct {
	action Action

	mu      sync.Mutex
	state   invoice.FormState
	pending bool
}

// New returns a form bound to action, starting from initial.
func New(action Action, initial invoice.FormState) *Form {
	return &Form{action: action, state: initial}
}

// State returns the current state.
func (f *Form) State() invoice.FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Pending reports whether a submission is awaiting its result.
func (f *Form) Pending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending
}

// Submit sends the values to the action exactly once and replaces the state
// with the returned one. A concurrent call fails fast with ErrSubmissionPending
// and does not reach the action.
func (f *Form) Submit(ctx context.Context, in invoice.CreateInput) (invoice.ActionResult, error) {
	f.mu.Lock()
	if f.pending {
		f.mu.Unlock()
		return invoice.ActionResult{}, ErrSubmissionPending
	}
	f.pending = true
	f.mu.Unlock()

	var res invoice.ActionResult
	defer func() {
		f.mu.Lock()
		f.state = res.State
		f.pending = false
		f.mu.Unlock()
	}()

	res = f.action(ctx, in)
	return res, nil
}
