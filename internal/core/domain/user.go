package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a dashboard operator. Password holds the bcrypt hash, never the
// plaintext.
type User struct {
	ID       string
	Name     string
	Email    string
	Password string
}

// Credentials is a login submission.
type Credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// Session binds a browser cookie to an authenticated user.
type Session struct {
	ID        uuid.UUID
	UserID    string
	Email     string
	Name      string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// NewSession opens a session for user valid for ttl from now.
func NewSession(user *User, now time.Time, ttl time.Duration) *Session {
	return &Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
