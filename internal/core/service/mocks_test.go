package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/dkm94/invoice-dashboard/internal/core/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockInvoiceRepository
type MockInvoiceRepository struct {
	mu       sync.Mutex
	invoices map[string]*domain.Invoice
	calls    map[string]int

	CreateFn        func(ctx context.Context, invoice *domain.Invoice) error
	UpdateFn        func(ctx context.Context, invoice *domain.Invoice) error
	DeleteFn        func(ctx context.Context, id string) (int64, error)
	FindFilteredFn  func(ctx context.Context, query string, limit, offset int) ([]*domain.InvoiceRow, error)
	CountFilteredFn func(ctx context.Context, query string) (int64, error)
	SummaryFn       func(ctx context.Context) (*domain.Summary, error)
}

func NewMockInvoiceRepository() *MockInvoiceRepository {
	return &MockInvoiceRepository{
		invoices: make(map[string]*domain.Invoice),
		calls:    make(map[string]int),
	}
}

func (m *MockInvoiceRepository) inc(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[method]++
}

func (m *MockInvoiceRepository) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *MockInvoiceRepository) Get(id string) (*domain.Invoice, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.invoices[id]
	return inv, ok
}

func (m *MockInvoiceRepository) Put(inv *domain.Invoice) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invoices[inv.ID] = inv
}

func (m *MockInvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	m.inc("Create")
	if m.CreateFn != nil {
		return m.CreateFn(ctx, invoice)
	}
	invoice.ID = uuid.NewString()
	m.Put(invoice)
	return nil
}

// Update mirrors the SQL statement: only customer, amount and status change.
func (m *MockInvoiceRepository) Update(ctx context.Context, invoice *domain.Invoice) error {
	m.inc("Update")
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, invoice)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.invoices[invoice.ID]; ok {
		existing.CustomerID = invoice.CustomerID
		existing.AmountCents = invoice.AmountCents
		existing.Status = invoice.Status
	}
	return nil
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, id string) (int64, error) {
	m.inc("Delete")
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.invoices[id]; !ok {
		return 0, nil
	}
	delete(m.invoices, id)
	return 1, nil
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id string) (*domain.Invoice, error) {
	m.inc("FindByID")
	if inv, ok := m.Get(id); ok {
		return inv, nil
	}
	return nil, domain.NewInvoiceNotFoundError(id)
}

func (m *MockInvoiceRepository) FindFiltered(ctx context.Context, query string, limit, offset int) ([]*domain.InvoiceRow, error) {
	m.inc("FindFiltered")
	if m.FindFilteredFn != nil {
		return m.FindFilteredFn(ctx, query, limit, offset)
	}
	return nil, nil
}

func (m *MockInvoiceRepository) CountFiltered(ctx context.Context, query string) (int64, error) {
	m.inc("CountFiltered")
	if m.CountFilteredFn != nil {
		return m.CountFilteredFn(ctx, query)
	}
	return 0, nil
}

func (m *MockInvoiceRepository) Summary(ctx context.Context) (*domain.Summary, error) {
	if m.SummaryFn != nil {
		return m.SummaryFn(ctx)
	}
	return &domain.Summary{}, nil
}

// MockCustomerRepository
type MockCustomerRepository struct {
	FindAllFn func(ctx context.Context) ([]*domain.Customer, error)
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	return nil
}

func (m *MockCustomerRepository) FindAll(ctx context.Context) ([]*domain.Customer, error) {
	if m.FindAllFn != nil {
		return m.FindAllFn(ctx)
	}
	return nil, nil
}

// MockUserRepository
type MockUserRepository struct {
	mu    sync.Mutex
	users map[string]*domain.User
	calls int

	FindByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	CreateFn      func(ctx context.Context, user *domain.User) error
}

func NewMockUserRepository(users ...*domain.User) *MockUserRepository {
	m := &MockUserRepository{users: make(map[string]*domain.User)}
	for _, u := range users {
		m.users[u.Email] = u
	}
	return m
}

func (m *MockUserRepository) Lookups() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user.ID = uuid.NewString()
	m.users[user.Email] = user
	return nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.FindByEmailFn != nil {
		return m.FindByEmailFn(ctx, email)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

// MockSessionRepository
type MockSessionRepository struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*domain.Session

	CreateFn func(ctx context.Context, session *domain.Session) error
}

func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{sessions: make(map[uuid.UUID]*domain.Session)}
}

func (m *MockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, session)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = session
	return nil
}

func (m *MockSessionRepository) FindActive(ctx context.Context, id uuid.UUID, now time.Time) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok || s.IsExpired(now) {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

func (m *MockSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, s := range m.sessions {
		if s.IsExpired(now) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

// MockViewInvalidator
type MockViewInvalidator struct {
	mock.Mock
}

func (m *MockViewInvalidator) Invalidate(path string) {
	m.Called(path)
}

// plainHasher stores passwords with a marker prefix so tests can tell hashes
// from plaintext without paying for bcrypt.
type plainHasher struct{}

func (plainHasher) Hash(plaintext string) (string, error) {
	return "hashed:" + plaintext, nil
}

func (plainHasher) Compare(hash, plaintext string) bool {
	return hash == "hashed:"+plaintext
}
