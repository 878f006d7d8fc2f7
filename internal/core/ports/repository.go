package ports

import (
	"context"
	"time"

	"github.com/dkm94/invoice-dashboard/internal/core/domain"
	"github.com/google/uuid"
)

// InvoiceRepository is the persistence gateway for invoices. Every statement
// binds its arguments; none is assembled from user input.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) error
	Update(ctx context.Context, invoice *domain.Invoice) error
	// Delete reports how many rows the statement removed.
	Delete(ctx context.Context, id string) (int64, error)

	FindByID(ctx context.Context, id string) (*domain.Invoice, error)
	FindFiltered(ctx context.Context, query string, limit, offset int) ([]*domain.InvoiceRow, error)
	CountFiltered(ctx context.Context, query string) (int64, error)
	Summary(ctx context.Context) (*domain.Summary, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	FindAll(ctx context.Context) ([]*domain.Customer, error)
}

// UserRepository returns domain.ErrUserNotFound when no user has the email
// and domain.ErrDuplicateEmail when Create reuses one.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// SessionRepository returns domain.ErrSessionNotFound for unknown or expired ids.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	FindActive(ctx context.Context, id uuid.UUID, now time.Time) (*domain.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
