package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dkm94/invoice-dashboard/internal/core/domain"
	"github.com/dkm94/invoice-dashboard/internal/core/ports"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type SessionRepository struct {
	q Executor
}

func NewSessionRepository(db *DB) ports.SessionRepository {
	return &SessionRepository{q: db.Pool}
}

func (r *SessionRepository) Create(ctx context.Context, s *domain.Session) error {
	query := `INSERT INTO sessions (id, user_id, created_at, expires_at)
			  VALUES ($1, $2, $3, $4)`

	_, err := r.q.Exec(ctx, query, s.ID, s.UserID, s.CreatedAt, s.ExpiresAt)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// FindActive returns the session with id if it expires after now.
func (r *SessionRepository) FindActive(ctx context.Context, id uuid.UUID, now time.Time) (*domain.Session, error) {
	query := `
			SELECT sessions.id, sessions.user_id::text, users.email, users.name,
				sessions.created_at, sessions.expires_at
			FROM sessions
			JOIN users ON users.id = sessions.user_id
			WHERE sessions.id = $1 AND sessions.expires_at > $2
			`

	var s domain.Session
	err := r.q.QueryRow(ctx, query, id, now).Scan(
		&s.ID,
		&s.UserID,
		&s.Email,
		&s.Name,
		&s.CreatedAt,
		&s.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to scan session: %w", err)
	}
	return &s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	cmdTag, err := r.q.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
