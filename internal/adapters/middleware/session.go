package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dkm94/invoice-dashboard/internal/core/domain"
	"github.com/dkm94/invoice-dashboard/internal/core/gate"
	"github.com/google/uuid"
)

type SessionResolver interface {
	Resolve(ctx context.Context, id uuid.UUID) (*domain.Session, error)
}

type sessionKey struct{}

// SessionFromContext returns the session resolved for the request, if any.
func SessionFromContext(ctx context.Context) (*domain.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*domain.Session)
	return s, ok
}

// Session resolves the session cookie and applies the authorization gate.
// A cookie that is missing, malformed, unknown or expired leaves the request
// anonymous, and so does a store failure while resolving it.
func Session(resolver SessionResolver, cookieName string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var state gate.SessionState

			if session := resolve(r, resolver, cookieName, logger); session != nil {
				state = gate.SessionState{Authenticated: true, UserID: session.UserID}
				r = r.WithContext(context.WithValue(r.Context(), sessionKey{}, session))
			}

			decision := gate.Decide(state, r.URL.Path)
			if decision != gate.Allow {
				logger.Debug("request redirected by gate",
					"path", r.URL.Path,
					"decision", decision.String(),
				)
				http.Redirect(w, r, decision.Location(), http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func resolve(r *http.Request, resolver SessionResolver, cookieName string, logger *slog.Logger) *domain.Session {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return nil
	}

	id, err := uuid.Parse(c.Value)
	if err != nil {
		return nil
	}

	session, err := resolver.Resolve(r.Context(), id)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			logger.Error("failed to resolve session", "error", err)
		}
		return nil
	}
	return session
}
