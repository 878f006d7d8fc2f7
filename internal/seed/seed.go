// Package seed loads dashboard fixtures from YAML and writes them through the
// repositories.
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dkm94/invoice-dashboard/internal/core/domain"
	"github.com/dkm94/invoice-dashboard/internal/core/ports"
	"github.com/go-playground/validator"
	"gopkg.in/yaml.v3"
)

type File struct {
	Users     []User     `yaml:"users" validate:"dive"`
	Customers []Customer `yaml:"customers" validate:"dive"`
	Invoices  []Invoice  `yaml:"invoices" validate:"dive"`
}

type User struct {
	Name     string `yaml:"name" validate:"required"`
	Email    string `yaml:"email" validate:"required,email"`
	Password string `yaml:"password" validate:"required,min=6"`
}

type Customer struct {
	ID       string `yaml:"id" validate:"omitempty,uuid"`
	Name     string `yaml:"name" validate:"required"`
	Email    string `yaml:"email" validate:"required,email"`
	ImageURL string `yaml:"image_url"`
}

type Invoice struct {
	CustomerID  string `yaml:"customer_id" validate:"required,uuid"`
	AmountCents int64  `yaml:"amount_cents" validate:"gt=0"`
	Status      string `yaml:"status" validate:"oneof=pending paid"`
	Date        string `yaml:"date" validate:"required"`
}

var validate = validator.New()

// Load reads and validates a seed file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(bytes.NewReader(data))
}

// Parse decodes a seed document, rejecting unknown fields.
func Parse(r io.Reader) (*File, error) {
	var f File
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validate.Struct(f); err != nil {
		return nil, fmt.Errorf("invalid seed file: %w", err)
	}
	for i, inv := range f.Invoices {
		if _, err := time.Parse(domain.DateLayout, inv.Date); err != nil {
			return nil, fmt.Errorf("invalid seed file: invoices[%d].date %q: %w", i, inv.Date, err)
		}
	}

	return &f, nil
}

type Result struct {
	Users     int
	Customers int
	Invoices  int
	Skipped   int
}

type Seeder struct {
	users     ports.UserRepository
	customers ports.CustomerRepository
	invoices  ports.InvoiceRepository
	hasher    ports.PasswordHasher
	logger    *slog.Logger
}

func NewSeeder(
	users ports.UserRepository,
	customers ports.CustomerRepository,
	invoices ports.InvoiceRepository,
	hasher ports.PasswordHasher,
	logger *slog.Logger,
) *Seeder {
	return &Seeder{
		users:     users,
		customers: customers,
		invoices:  invoices,
		hasher:    hasher,
		logger:    logger,
	}
}

// Seed inserts users, then customers, then invoices. Users whose email is
// already registered are skipped; any other failure stops the run.
func (s *Seeder) Seed(ctx context.Context, f *File) (Result, error) {
	var res Result

	for _, u := range f.Users {
		hash, err := s.hasher.Hash(u.Password)
		if err != nil {
			return res, err
		}

		err = s.users.Create(ctx, &domain.User{Name: u.Name, Email: u.Email, Password: hash})
		if errors.Is(err, domain.ErrDuplicateEmail) {
			s.logger.Info("user already exists, skipping", "email", u.Email)
			res.Skipped++
			continue
		}
		if err != nil {
			return res, fmt.Errorf("seed user %s: %w", u.Email, err)
		}
		res.Users++
	}

	for _, c := range f.Customers {
		err := s.customers.Create(ctx, &domain.Customer{
			ID:       c.ID,
			Name:     c.Name,
			Email:    c.Email,
			ImageURL: c.ImageURL,
		})
		if err != nil {
			return res, fmt.Errorf("seed customer %s: %w", c.Name, err)
		}
		res.Customers++
	}

	for i, inv := range f.Invoices {
		err := s.invoices.Create(ctx, &domain.Invoice{
			CustomerID:  inv.CustomerID,
			AmountCents: inv.AmountCents,
			Status:      domain.InvoiceStatus(inv.Status),
			Date:        inv.Date,
		})
		if err != nil {
			return res, fmt.Errorf("seed invoice %d: %w", i, err)
		}
		res.Invoices++
	}

	s.logger.Info("seed complete",
		"users", res.Users,
		"customers", res.Customers,
		"invoices", res.Invoices,
		"skipped", res.Skipped,
	)
	return res, nil
}
