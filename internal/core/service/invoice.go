package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/dkm94/invoice-dashboard/internal/core/domain"
	"github.com/dkm94/invoice-dashboard/internal/core/ports"
	"github.com/dkm94/invoice-dashboard/internal/core/validation"
)

const (
	MsgCreateInvalid = "Missing Fields. Failed to Create Invoice."
	// MsgUpdateInvalid keeps the create wording; forms already match on it.
	MsgUpdateInvalid = MsgCreateInvalid

	MsgCreateFailed = "Database Error: Failed to Create Invoice."
	MsgUpdateFailed = "Database Error: Failed to Update Invoice."
	MsgDeleteFailed = "Database Error: Failed to Delete Invoice."

	MsgDeleted = "Invoice deleted successfully"
)

// InvoiceService runs the invoice commands: validate, persist, invalidate the
// list view, then navigate back to it. It holds no per-request state and is
// safe for concurrent use.
type InvoiceService struct {
	repo   ports.InvoiceRepository
	views  ports.ViewInvalidator
	logger *slog.Logger
	now    func() time.Time
}

func NewInvoiceService(repo ports.InvoiceRepository, views ports.ViewInvalidator, logger *slog.Logger) *InvoiceService {
	return &InvoiceService{
		repo:   repo,
		views:  views,
		logger: logger,
		now:    time.Now,
	}
}

// Create validates fields and inserts a new invoice dated today.
func (s *InvoiceService) Create(ctx context.Context, fields validation.Fields) domain.Outcome {
	in, errs := validation.ParseInvoice(fields)
	if errs != nil {
		return domain.ValidationFailed(errs, MsgCreateInvalid)
	}

	invoice := domain.NewInvoice(in, s.now())

	if err := s.repo.Create(ctx, invoice); err != nil {
		s.logger.Error("failed to create invoice",
			"customer_id", invoice.CustomerID,
			"error", err,
		)
		return domain.PersistenceFailed(MsgCreateFailed)
	}

	return s.refreshList()
}

// Update overwrites customer, amount and status of invoice id. The invoice
// date is left as it was.
func (s *InvoiceService) Update(ctx context.Context, id string, fields validation.Fields) domain.Outcome {
	in, errs := validation.ParseInvoice(fields)
	if errs != nil {
		return domain.ValidationFailed(errs, MsgUpdateInvalid)
	}

	invoice := &domain.Invoice{
		ID:          id,
		CustomerID:  in.CustomerID,
		AmountCents: domain.ToCents(in.Amount),
		Status:      in.Status,
	}

	if err := s.repo.Update(ctx, invoice); err != nil {
		s.logger.Error("failed to update invoice",
			"invoice_id", id,
			"error", err,
		)
		return domain.PersistenceFailed(MsgUpdateFailed)
	}

	return s.refreshList()
}

// Delete removes invoice id. It does not navigate; the caller stays on the
// list it deleted from. Deleting an id that matches no row succeeds.
func (s *InvoiceService) Delete(ctx context.Context, id string) domain.Outcome {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete invoice",
			"invoice_id", id,
			"error", err,
		)
		return domain.PersistenceFailed(MsgDeleteFailed)
	}
	if n == 0 {
		s.logger.Warn("delete matched no invoice", "invoice_id", id)
	}

	s.views.Invalidate(domain.InvoicesPath)
	return domain.Succeeded(MsgDeleted)
}

func (s *InvoiceService) refreshList() domain.Outcome {
	s.views.Invalidate(domain.InvoicesPath)
	return domain.RedirectTo(domain.InvoicesPath)
}
