package testhelpers

import (
	"context"
	"testing"

	"github.com/dkm94/invoice-dashboard/internal/adapters/postgres"
	"github.com/dkm94/invoice-dashboard/internal/core/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// CreateCustomer stores a customer with a unique email and returns it.
func CreateCustomer(t *testing.T, ctx context.Context, db *postgres.DB, name string) *domain.Customer {
	t.Helper()

	c := &domain.Customer{
		Name:     name,
		Email:    uuid.NewString() + "@example.com",
		ImageURL: "/customers/placeholder.png",
	}
	require.NoError(t, postgres.NewCustomerRepository(db).Create(ctx, c))
	require.NotEmpty(t, c.ID)
	return c
}

// CreateInvoice stores an invoice for customerID and returns it.
func CreateInvoice(
	t *testing.T,
	ctx context.Context,
	db *postgres.DB,
	customerID string,
	cents int64,
	status domain.InvoiceStatus,
	date string,
) *domain.Invoice {
	t.Helper()

	inv := &domain.Invoice{
		CustomerID:  customerID,
		AmountCents: cents,
		Status:      status,
		Date:        date,
	}
	require.NoError(t, postgres.NewInvoiceRepository(db).Create(ctx, inv))
	require.NotEmpty(t, inv.ID)
	return inv
}

// CreateUser stores a user whose password column holds hash.
func CreateUser(t *testing.T, ctx context.Context, db *postgres.DB, email, hash string) *domain.User {
	t.Helper()

	u := &domain.User{
		Name:     "Test User",
		Email:    email,
		Password: hash,
	}
	require.NoError(t, postgres.NewUserRepository(db).Create(ctx, u))
	return u
}
