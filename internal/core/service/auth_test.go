package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dkm94/invoice-dashboard/internal/core/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var registered = &domain.User{
	ID:       "u-1",
	Name:     "User",
	Email:    "user@nextmail.com",
	Password: "hashed:123456",
}

func newTestAuthService(users *MockUserRepository, sessions *MockSessionRepository) *AuthService {
	s := NewAuthService(users, sessions, plainHasher{}, time.Hour, discardLogger())
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestAuthService_Authenticate_Success(t *testing.T) {
	users := NewMockUserRepository(registered)
	s := newTestAuthService(users, NewMockSessionRepository())

	user, err := s.Authenticate(context.Background(), domain.Credentials{
		Email:    "user@nextmail.com",
		Password: "123456",
	})

	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
	assert.Equal(t, 1, users.Lookups())
}

func TestAuthService_Authenticate_WrongPassword(t *testing.T) {
	s := newTestAuthService(NewMockUserRepository(registered), NewMockSessionRepository())

	user, err := s.Authenticate(context.Background(), domain.Credentials{
		Email:    "user@nextmail.com",
		Password: "1234567",
	})

	assert.Nil(t, user)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidCredentials))
}

func TestAuthService_Authenticate_UnknownEmail(t *testing.T) {
	s := newTestAuthService(NewMockUserRepository(registered), NewMockSessionRepository())

	user, err := s.Authenticate(context.Background(), domain.Credentials{
		Email:    "nobody@nextmail.com",
		Password: "123456",
	})

	assert.Nil(t, user)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.NotErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAuthService_Authenticate_MalformedInputSkipsLookup(t *testing.T) {
	tests := []struct {
		name  string
		creds domain.Credentials
	}{
		{"malformed email", domain.Credentials{Email: "not-an-email", Password: "123456"}},
		{"empty email", domain.Credentials{Email: "", Password: "123456"}},
		{"short password", domain.Credentials{Email: "user@nextmail.com", Password: "12345"}},
		{"empty password", domain.Credentials{Email: "user@nextmail.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := NewMockUserRepository(registered)
			s := newTestAuthService(users, NewMockSessionRepository())

			_, err := s.Authenticate(context.Background(), tt.creds)

			assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
			assert.Zero(t, users.Lookups())
		})
	}
}

func TestAuthService_Authenticate_LookupFailurePropagates(t *testing.T) {
	storeErr := errors.New("connection reset by peer")
	users := NewMockUserRepository()
	users.FindByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
		return nil, storeErr
	}
	s := newTestAuthService(users, NewMockSessionRepository())

	user, err := s.Authenticate(context.Background(), domain.Credentials{
		Email:    "user@nextmail.com",
		Password: "123456",
	})

	assert.Nil(t, user)
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_SignIn_CreatesSession(t *testing.T) {
	sessions := NewMockSessionRepository()
	s := newTestAuthService(NewMockUserRepository(registered), sessions)

	session, err := s.SignIn(context.Background(), domain.Credentials{
		Email:    "user@nextmail.com",
		Password: "123456",
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, session.ID)
	assert.Equal(t, "u-1", session.UserID)
	assert.Equal(t, fixedNow.Add(time.Hour), session.ExpiresAt)

	resolved, err := s.Resolve(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, resolved.ID)
}

func TestAuthService_SignIn_FailureCreatesNoSession(t *testing.T) {
	sessions := NewMockSessionRepository()
	created := 0
	sessions.CreateFn = func(ctx context.Context, session *domain.Session) error {
		created++
		return nil
	}
	s := newTestAuthService(NewMockUserRepository(registered), sessions)

	_, err := s.SignIn(context.Background(), domain.Credentials{
		Email:    "user@nextmail.com",
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Zero(t, created)
}

func TestAuthService_SignIn_SessionStoreFailure(t *testing.T) {
	sessions := NewMockSessionRepository()
	sessions.CreateFn = func(ctx context.Context, session *domain.Session) error {
		return errors.New("disk full")
	}
	s := newTestAuthService(NewMockUserRepository(registered), sessions)

	_, err := s.SignIn(context.Background(), domain.Credentials{
		Email:    "user@nextmail.com",
		Password: "123456",
	})

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Resolve_ExpiredSession(t *testing.T) {
	sessions := NewMockSessionRepository()
	s := newTestAuthService(NewMockUserRepository(registered), sessions)

	session, err := s.SignIn(context.Background(), domain.Credentials{
		Email:    "user@nextmail.com",
		Password: "123456",
	})
	require.NoError(t, err)

	s.now = func() time.Time { return fixedNow.Add(2 * time.Hour) }

	_, err = s.Resolve(context.Background(), session.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestAuthService_SignOut(t *testing.T) {
	sessions := NewMockSessionRepository()
	s := newTestAuthService(NewMockUserRepository(registered), sessions)

	session, err := s.SignIn(context.Background(), domain.Credentials{
		Email:    "user@nextmail.com",
		Password: "123456",
	})
	require.NoError(t, err)

	require.NoError(t, s.SignOut(context.Background(), session.ID))

	_, err = s.Resolve(context.Background(), session.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestAuthService_Register_HashesPassword(t *testing.T) {
	users := NewMockUserRepository()
	s := newTestAuthService(users, NewMockSessionRepository())

	user, err := s.Register(context.Background(), "Ada", domain.Credentials{
		Email:    "ada@nextmail.com",
		Password: "s3cret!",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "hashed:s3cret!", user.Password)

	signedIn, err := s.Authenticate(context.Background(), domain.Credentials{
		Email:    "ada@nextmail.com",
		Password: "s3cret!",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, signedIn.ID)
}

func TestAuthService_Register_RejectsShortPassword(t *testing.T) {
	users := NewMockUserRepository()
	s := newTestAuthService(users, NewMockSessionRepository())

	_, err := s.Register(context.Background(), "Ada", domain.Credentials{
		Email:    "ada@nextmail.com",
		Password: "123",
	})

	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidInput))
}
