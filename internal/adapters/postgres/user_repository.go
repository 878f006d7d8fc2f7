package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkm94/invoice-dashboard/internal/core/domain"
	"github.com/dkm94/invoice-dashboard/internal/core/ports"
	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	q Executor
}

func NewUserRepository(db *DB) ports.UserRepository {
	return &UserRepository{q: db.Pool}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (name, email, password)
			  VALUES ($1, $2, $3)
			  RETURNING id::text`

	err := r.q.QueryRow(ctx, query, u.Name, u.Email, u.Password).Scan(&u.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateEmail, u.Email)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id::text, name, email, password FROM users WHERE email = $1`

	var u domain.User
	err := r.q.QueryRow(ctx, query, email).Scan(&u.ID, &u.Name, &u.Email, &u.Password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}
