// Package mocks holds gomock doubles for the repository ports.
//
// Regenerate after changing an interface:
//
//	go generate ./internal/mocks
package mocks

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=invoice_repository_mock.go github.com/target/invoice-dashboard/internal/ports InvoiceRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=customer_source_mock.go github.com/target/invoice-dashboard/internal/ports CustomerSource
