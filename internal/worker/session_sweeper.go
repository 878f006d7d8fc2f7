package worker

import (
	"context"
	"log/slog"
	"time"
)

// ExpiredSessionDeleter removes every session that expired at or before now.
type ExpiredSessionDeleter interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// SessionSweeper periodically deletes expired login sessions so the sessions
// table does not grow without bound. Expired sessions are already rejected
// on lookup; sweeping only reclaims space.
type SessionSweeper struct {
	sessions ExpiredSessionDeleter
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

func NewSessionSweeper(
	sessions ExpiredSessionDeleter,
	interval time.Duration,
	logger *slog.Logger,
) *SessionSweeper {
	return &SessionSweeper{
		sessions: sessions,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Start sweeps once immediately, then every interval until ctx is done.
func (w *SessionSweeper) Start(ctx context.Context) {
	w.logger.Info("session sweeper started", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	if err := w.sweep(ctx); err != nil {
		w.logger.Error("session sweep failed", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("session sweeper stopping")
			return
		case <-ticker.C:
			if err := w.sweep(ctx); err != nil {
				w.logger.Error("session sweep failed", "error", err)
			}
		}
	}
}

func (w *SessionSweeper) sweep(ctx context.Context) error {
	deleted, err := w.sessions.DeleteExpired(ctx, w.now())
	if err != nil {
		return err
	}

	if deleted > 0 {
		w.logger.Info("deleted expired sessions", "count", deleted)
	}
	return nil
}
