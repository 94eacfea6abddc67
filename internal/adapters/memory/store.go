package memory

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/target/invoice-dashboard/internal/domain/invoice"
)

// Store is an in-memory customer source and invoice repository.
type Store struct {
	mu        sync.RWMutex
	customers map[string]invoice.Customer
	invoices  []invoice.Invoice
}

// NewStore creates a store seeded with the given customers.
func NewStore(customers ...invoice.Customer) *Store {
	s := &Store{customers: make(map[string]invoice.Customer, len(customers))}
	for _, c := range customers {
		s.customers[c.ID] = c
	}
	return s
}

// ListCustomers returns all customers ordered by name, then ID.
func (s *Store) ListCustomers(_ context.Context) ([]invoice.Customer, error) {
	s.mu.RLock()
	out := make([]invoice.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		out = append(out, c)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		ni, nj := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if ni != nj {
			return ni < nj
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) GetCustomer(_ context.Context, id string) (invoice.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.customers[id]
	if !ok {
		return invoice.Customer{}, invoice.ErrNotFound
	}
	return c, nil
}

// CreateInvoice stores inv, assigning an ID when it has none.
func (s *Store) CreateInvoice(_ context.Context, inv invoice.Invoice) (invoice.Invoice, error) {
	if inv.CustomerID == "" {
		return invoice.Invoice{}, errors.New("customer ID is required")
	}
	if inv.AmountCents <= 0 || inv.AmountCents > invoice.MaxAmountCents {
		return invoice.Invoice{}, fmt.Errorf("%w: %d cents", invoice.ErrInvalidAmount, inv.AmountCents)
	}
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.customers[inv.CustomerID]; !ok {
		return invoice.Invoice{}, invoice.ErrNotFound
	}
	s.invoices = append(s.invoices, inv)
	return inv, nil
}

// ListInvoices returns up to limit invoices, newest first.
func (s *Store) ListInvoices(_ context.Context, limit int) ([]invoice.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]invoice.Summary, 0, len(s.invoices))
	for i := len(s.invoices) - 1; i >= 0; i-- {
		inv := s.invoices[i]
		out = append(out, invoice.Summary{Invoice: inv, CustomerName: s.customers[inv.CustomerID].Name})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Totals sums amounts by status. Sums saturate at math.MaxInt64 cents.
func (s *Store) Totals(_ context.Context) (invoice.Totals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t := invoice.Totals{Count: len(s.invoices)}
	for _, inv := range s.invoices {
		switch inv.Status {
		case invoice.StatusPaid:
			t.PaidCents = addCents(t.PaidCents, inv.AmountCents)
		case invoice.StatusPending:
			t.PendingCents = addCents(t.PendingCents, inv.AmountCents)
		}
	}
	return t, nil
}

// addCents adds two non-negative amounts, clamping at math.MaxInt64.
func addCents(a, b int64) int64 {
	if b > math.MaxInt64-a {
		return math.MaxInt64
	}
	return a + b
}
