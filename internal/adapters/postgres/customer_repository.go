package postgres

import (
	"context"
	"fmt"

	"github.com/dkm94/invoice-dashboard/internal/core/domain"
	"github.com/dkm94/invoice-dashboard/internal/core/ports"
	"github.com/jackc/pgx/v5"
)

type CustomerRepository struct {
	q Executor
}

func NewCustomerRepository(db *DB) ports.CustomerRepository {
	return &CustomerRepository{q: db.Pool}
}

// Create inserts customer, keeping customer.ID when it is set.
func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers (id, name, email, image_url)
			  VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4)
			  RETURNING id::text`

	err := r.q.QueryRow(ctx, query, c.ID, c.Name, c.Email, c.ImageURL).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (r *CustomerRepository) FindAll(ctx context.Context) ([]*domain.Customer, error) {
	query := `
			SELECT id::text, name, email, image_url
			FROM customers
			ORDER BY name ASC
			`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}

	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Customer, error) {
		var c domain.Customer
		err := row.Scan(&c.ID, &c.Name, &c.Email, &c.ImageURL)
		return &c, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan customers: %w", err)
	}
	return results, nil
}
