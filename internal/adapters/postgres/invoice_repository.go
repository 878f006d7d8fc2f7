package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dkm94/invoice-dashboard/internal/core/domain"
	"github.com/dkm94/invoice-dashboard/internal/core/ports"
	"github.com/jackc/pgx/v5"
)

type InvoiceRepository struct {
	q Executor
}

func NewInvoiceRepository(db *DB) ports.InvoiceRepository {
	return &InvoiceRepository{q: db.Pool}
}

// Create inserts invoice. The id is generated by the database and written
// back to invoice.ID.
func (r *InvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	date, err := time.Parse(domain.DateLayout, invoice.Date)
	if err != nil {
		return fmt.Errorf("invalid invoice date %q: %w", invoice.Date, err)
	}

	query := `INSERT INTO invoices (customer_id, amount, status, date)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id::text`

	err = r.q.QueryRow(ctx, query,
		invoice.CustomerID,
		invoice.AmountCents,
		string(invoice.Status),
		date,
	).Scan(&invoice.ID)
	if err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return nil
}

// Update rewrites customer, amount and status. An id that matches no row is
// not an error.
func (r *InvoiceRepository) Update(ctx context.Context, invoice *domain.Invoice) error {
	query := `UPDATE invoices
			  SET customer_id = $1, amount = $2, status = $3
			  WHERE id = $4`

	_, err := r.q.Exec(ctx, query,
		invoice.CustomerID,
		invoice.AmountCents,
		string(invoice.Status),
		invoice.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepository) Delete(ctx context.Context, id string) (int64, error) {
	cmdTag, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete invoice: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}

func (r *InvoiceRepository) FindByID(ctx context.Context, id string) (*domain.Invoice, error) {
	query := `
			SELECT id::text, customer_id::text, amount, status, date
			FROM invoices
			WHERE id = $1
			`

	var (
		inv    domain.Invoice
		status string
		date   time.Time
	)
	err := r.q.QueryRow(ctx, query, id).Scan(
		&inv.ID,
		&inv.CustomerID,
		&inv.AmountCents,
		&status,
		&date,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewInvoiceNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to scan invoice: %w", err)
	}

	inv.Status = domain.InvoiceStatus(status)
	inv.Date = date.Format(domain.DateLayout)
	return &inv, nil
}

const filterClause = `
			FROM invoices
			JOIN customers ON invoices.customer_id = customers.id
			WHERE customers.name ILIKE $1
				OR customers.email ILIKE $1
				OR invoices.amount::text ILIKE $1
				OR invoices.date::text ILIKE $1
				OR invoices.status ILIKE $1
`

// FindFiltered searches invoices by customer name or email, amount, date and
// status, newest first.
func (r *InvoiceRepository) FindFiltered(ctx context.Context, query string, limit, offset int) ([]*domain.InvoiceRow, error) {
	sql := `
			SELECT invoices.id::text, invoices.customer_id::text,
				customers.name, customers.email, customers.image_url,
				invoices.amount, invoices.status, invoices.date` + filterClause + `
			ORDER BY invoices.date DESC, invoices.id
			LIMIT $2 OFFSET $3
			`

	rows, err := r.q.Query(ctx, sql, likePattern(query), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query filtered invoices: %w", err)
	}

	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.InvoiceRow, error) {
		var (
			inv    domain.InvoiceRow
			status string
			date   time.Time
		)
		err := row.Scan(
			&inv.ID,
			&inv.CustomerID,
			&inv.Name,
			&inv.Email,
			&inv.ImageURL,
			&inv.AmountCents,
			&status,
			&date,
		)
		inv.Status = domain.InvoiceStatus(status)
		inv.Date = date.Format(domain.DateLayout)
		return &inv, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan invoices: %w", err)
	}
	return results, nil
}

func (r *InvoiceRepository) CountFiltered(ctx context.Context, query string) (int64, error) {
	var count int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*)`+filterClause, likePattern(query)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count invoices: %w", err)
	}
	return count, nil
}

func (r *InvoiceRepository) Summary(ctx context.Context) (*domain.Summary, error) {
	query := `
			SELECT
				(SELECT COUNT(*) FROM invoices),
				(SELECT COUNT(*) FROM customers),
				COALESCE((SELECT SUM(amount) FROM invoices WHERE status = 'paid'), 0),
				COALESCE((SELECT SUM(amount) FROM invoices WHERE status = 'pending'), 0)
			`

	var s domain.Summary
	err := r.q.QueryRow(ctx, query).Scan(
		&s.InvoiceCount,
		&s.CustomerCount,
		&s.PaidCents,
		&s.PendingCents,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch summary: %w", err)
	}
	return &s, nil
}

func likePattern(query string) string {
	return "%" + query + "%"
}
