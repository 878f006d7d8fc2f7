package service

import (
	"context"
	"fmt"
	"math"

	"github.com/dkm94/invoice-dashboard/internal/core/domain"
	"github.com/dkm94/invoice-dashboard/internal/core/ports"
)

// ItemsPerPage is the page size of the invoice list.
const ItemsPerPage = 6

// MaxPage bounds requested pages so the computed OFFSET cannot overflow.
const MaxPage = math.MaxInt32

type QueryService struct {
	invoices  ports.InvoiceRepository
	customers ports.CustomerRepository
}

func NewQueryService(invoices ports.InvoiceRepository, customers ports.CustomerRepository) *QueryService {
	return &QueryService{
		invoices:  invoices,
		customers: customers,
	}
}

// FilteredInvoices returns one page of invoices matching query. Pages start at 1.
func (s *QueryService) FilteredInvoices(ctx context.Context, query string, page int) ([]*domain.InvoiceRow, error) {
	page = min(max(page, 1), MaxPage)
	offset := (page - 1) * ItemsPerPage

	rows, err := s.invoices.FindFiltered(ctx, query, ItemsPerPage, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch invoices: %w", err)
	}
	return rows, nil
}

// InvoicePages returns how many pages FilteredInvoices has for query.
func (s *QueryService) InvoicePages(ctx context.Context, query string) (int, error) {
	count, err := s.invoices.CountFiltered(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to count invoices: %w", err)
	}
	return int((count + ItemsPerPage - 1) / ItemsPerPage), nil
}

func (s *QueryService) InvoiceByID(ctx context.Context, id string) (*domain.Invoice, error) {
	return s.invoices.FindByID(ctx, id)
}

func (s *QueryService) Customers(ctx context.Context) ([]*domain.Customer, error) {
	customers, err := s.customers.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch customers: %w", err)
	}
	return customers, nil
}

func (s *QueryService) Summary(ctx context.Context) (*domain.Summary, error) {
	summary, err := s.invoices.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch card data: %w", err)
	}
	return summary, nil
}
