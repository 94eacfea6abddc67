// Package devseed loads the demo customer list used in development and demos.
package devseed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/target/invoice-dashboard/internal/domain/invoice"
)

// CustomerWriter persists customers idempotently.
type CustomerWriter interface {
	UpsertCustomers(ctx context.Context, customers []invoice.Customer) error
}

// Customers returns the demo customers. IDs are stable so repeated seeding
// updates rather than duplicates.
func Customers() []invoice.Customer {
	return []invoice.Customer{
		{ID: "3958dc9e-712f-4377-85e9-fec4b6a6442a", Name: "Delba de Oliveira"},
		{ID: "3958dc9e-742f-4377-85e9-fec4b6a6442a", Name: "Lee Robinson"},
		{ID: "3958dc9e-737f-4377-85e9-fec4b6a6442a", Name: "Hector Simpson"},
		{ID: "50ca3e18-62cd-11ee-8c99-0242ac120002", Name: "Steven Tey"},
		{ID: "3958dc9e-787f-4377-85e9-fec4b6a6442a", Name: "Steph Dietz"},
		{ID: "76d65c26-f784-44a2-ac19-586678f7c2f2", Name: "Michael Novotny"},
		{ID: "d6e15727-9fe1-4961-8c5b-ea44a9bd81aa", Name: "Evil Rabbit"},
		{ID: "126eed9c-c90c-4ef6-a4a8-fcf7408d3c66", Name: "Emil Kowalski"},
		{ID: "cc27c14a-0acf-4f4a-a6c9-d45682c144b9", Name: "Amy Burns"},
		{ID: "13d07535-c59e-4157-a011-f8d2ef4e0cbb", Name: "Balazs Orban"},
	}
}

// Run upserts the demo customers through w.
func Run(ctx context.Context, w CustomerWriter, logger *slog.Logger) error {
	if w == nil {
		return errors.New("devseed: customer writer is required")
	}
	customers := Customers()
	if err := w.UpsertCustomers(ctx, customers); err != nil {
		return fmt.Errorf("seed customers: %w", err)
	}
	if logger != nil {
		logger.InfoContext(ctx, "seeded demo customers", "count", len(customers))
	}
	return nil
}
