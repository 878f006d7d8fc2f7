package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business logic error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeInvoiceNotFound    = "INVOICE_NOT_FOUND"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeInvalidInput       = "INVALID_INPUT"
)

var (
	ErrInvoiceNotFound    = errors.New("invoice not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrSessionNotFound    = errors.New("session not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateEmail     = errors.New("email already registered")
)

func NewInvoiceNotFoundError(id string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvoiceNotFound,
		Message: fmt.Sprintf("invoice %s not found", id),
		Err:     ErrInvoiceNotFound,
	}
}

func NewInvalidInputError(field string, err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidInput,
		Message: fmt.Sprintf("invalid %s", field),
		Err:     err,
	}
}

func NewInvalidCredentialsError() *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidCredentials,
		Message: "Invalid credentials.",
		Err:     ErrInvalidCredentials,
	}
}

// IsErrorCode reports whether err carries a DomainError with the given code.
func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == code
}
