package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/dkm94/invoice-dashboard/internal/core/domain"
	"github.com/dkm94/invoice-dashboard/internal/core/validation"
	"github.com/google/uuid"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockCommands struct {
	createFn func(ctx context.Context, fields validation.Fields) domain.Outcome
	updateFn func(ctx context.Context, id string, fields validation.Fields) domain.Outcome
	deleteFn func(ctx context.Context, id string) domain.Outcome
}

func (m *mockCommands) Create(ctx context.Context, fields validation.Fields) domain.Outcome {
	return m.createFn(ctx, fields)
}

func (m *mockCommands) Update(ctx context.Context, id string, fields validation.Fields) domain.Outcome {
	return m.updateFn(ctx, id, fields)
}

func (m *mockCommands) Delete(ctx context.Context, id string) domain.Outcome {
	return m.deleteFn(ctx, id)
}

type mockQueries struct {
	mu    sync.Mutex
	calls int

	filteredFn  func(ctx context.Context, query string, page int) ([]*domain.InvoiceRow, error)
	pagesFn     func(ctx context.Context, query string) (int, error)
	byIDFn      func(ctx context.Context, id string) (*domain.Invoice, error)
	customersFn func(ctx context.Context) ([]*domain.Customer, error)
	summaryFn   func(ctx context.Context) (*domain.Summary, error)
}

func (m *mockQueries) hit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
}

func (m *mockQueries) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *mockQueries) FilteredInvoices(ctx context.Context, query string, page int) ([]*domain.InvoiceRow, error) {
	m.hit()
	return m.filteredFn(ctx, query, page)
}

func (m *mockQueries) InvoicePages(ctx context.Context, query string) (int, error) {
	m.hit()
	return m.pagesFn(ctx, query)
}

func (m *mockQueries) InvoiceByID(ctx context.Context, id string) (*domain.Invoice, error) {
	m.hit()
	return m.byIDFn(ctx, id)
}

func (m *mockQueries) Customers(ctx context.Context) ([]*domain.Customer, error) {
	m.hit()
	return m.customersFn(ctx)
}

func (m *mockQueries) Summary(ctx context.Context) (*domain.Summary, error) {
	m.hit()
	return m.summaryFn(ctx)
}

type mockAuth struct {
	signInFn  func(ctx context.Context, creds domain.Credentials) (*domain.Session, error)
	signedOut []uuid.UUID
}

func (m *mockAuth) SignIn(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	return m.signInFn(ctx, creds)
}

func (m *mockAuth) SignOut(ctx context.Context, id uuid.UUID) error {
	m.signedOut = append(m.signedOut, id)
	return nil
}

type mockHealth struct {
	err error
}

func (m *mockHealth) Ping(ctx context.Context) error {
	return m.err
}

// stubInvoiceRepository lets handler tests drive the real command service.
type stubInvoiceRepository struct {
	created []*domain.Invoice
	fail    bool
}

func (s *stubInvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	if s.fail {
		return errors.New("connection refused")
	}
	invoice.ID = uuid.NewString()
	s.created = append(s.created, invoice)
	return nil
}

func (s *stubInvoiceRepository) Update(ctx context.Context, invoice *domain.Invoice) error {
	return nil
}

func (s *stubInvoiceRepository) Delete(ctx context.Context, id string) (int64, error) {
	return 0, nil
}

func (s *stubInvoiceRepository) FindByID(ctx context.Context, id string) (*domain.Invoice, error) {
	return nil, domain.NewInvoiceNotFoundError(id)
}

func (s *stubInvoiceRepository) FindFiltered(ctx context.Context, query string, limit, offset int) ([]*domain.InvoiceRow, error) {
	return nil, nil
}

func (s *stubInvoiceRepository) CountFiltered(ctx context.Context, query string) (int64, error) {
	return 0, nil
}

func (s *stubInvoiceRepository) Summary(ctx context.Context) (*domain.Summary, error) {
	return &domain.Summary{}, nil
}

type resolverFunc func(ctx context.Context, id uuid.UUID) (*domain.Session, error)

func (f resolverFunc) Resolve(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	return f(ctx, id)
}
