package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dkm94/invoice-dashboard/internal/core/domain"
	"github.com/dkm94/invoice-dashboard/internal/core/ports"
	"github.com/dkm94/invoice-dashboard/internal/core/validation"
	"github.com/google/uuid"
)

// AuthService verifies credentials and manages login sessions.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionRepository
	hasher   ports.PasswordHasher
	ttl      time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

func NewAuthService(
	users ports.UserRepository,
	sessions ports.SessionRepository,
	hasher ports.PasswordHasher,
	ttl time.Duration,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

// Authenticate returns the user owning creds.
//
// Malformed input, an unknown email and a wrong password all yield an error
// matching domain.ErrInvalidCredentials; malformed input never reaches the
// store. Any other error means the user lookup itself failed and the attempt
// must be aborted.
func (s *AuthService) Authenticate(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	if err := validation.ValidateCredentials(creds); err != nil {
		s.logger.Info("invalid credentials", "reason", "malformed")
		return nil, domain.NewInvalidCredentialsError()
	}

	user, err := s.users.FindByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Info("invalid credentials", "reason", "unknown_email")
			return nil, domain.NewInvalidCredentialsError()
		}
		s.logger.Error("failed to fetch user", "error", err)
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	if !s.hasher.Compare(user.Password, creds.Password) {
		s.logger.Info("invalid credentials", "reason", "password_mismatch", "user_id", user.ID)
		return nil, domain.NewInvalidCredentialsError()
	}

	return user, nil
}

// SignIn authenticates creds and opens a session for the user.
func (s *AuthService) SignIn(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	user, err := s.Authenticate(ctx, creds)
	if err != nil {
		return nil, err
	}

	session := domain.NewSession(user, s.now(), s.ttl)
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info("user signed in", "user_id", user.ID, "session_expires_at", session.ExpiresAt)
	return session, nil
}

// Resolve returns the live session with id, or domain.ErrSessionNotFound.
func (s *AuthService) Resolve(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	return s.sessions.FindActive(ctx, id, s.now())
}

func (s *AuthService) SignOut(ctx context.Context, id uuid.UUID) error {
	if err := s.sessions.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Register stores a new user with a hashed password.
func (s *AuthService) Register(ctx context.Context, name string, creds domain.Credentials) (*domain.User, error) {
	if err := validation.ValidateCredentials(creds); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(creds.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:     name,
		Email:    creds.Email,
		Password: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}
