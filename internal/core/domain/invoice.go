// Package domain holds the invoice dashboard entities and the values that
// flow between the command services and the presentation layer.
package domain

import (
	"time"
)

// InvoiceStatus is the payment state of an invoice.
type InvoiceStatus string

const (
	StatusPending InvoiceStatus = "pending"
	StatusPaid    InvoiceStatus = "paid"
)

// InvoiceStatuses lists every accepted status value.
var InvoiceStatuses = []InvoiceStatus{StatusPending, StatusPaid}

// DateLayout is the calendar date format stored on invoices.
const DateLayout = "2006-01-02"

// InvoicesPath is the list view that every invoice mutation invalidates.
const InvoicesPath = "/dashboard/invoices"

// Invoice is the only mutable record of the dashboard. ID and Date are
// assigned by the system on creation; Date is never rewritten afterwards.
type Invoice struct {
	ID          string
	CustomerID  string
	AmountCents int64
	Status      InvoiceStatus
	Date        string
}

// InvoiceInput is a validated invoice form.
type InvoiceInput struct {
	CustomerID string
	Amount     float64
	Status     InvoiceStatus
}

// NewInvoice builds an unsaved invoice dated on the given day.
func NewInvoice(in InvoiceInput, now time.Time) *Invoice {
	return &Invoice{
		CustomerID:  in.CustomerID,
		AmountCents: ToCents(in.Amount),
		Status:      in.Status,
		Date:        now.UTC().Format(DateLayout),
	}
}

// InvoiceRow is an invoice joined with the customer it bills, as shown in the
// list view.
type InvoiceRow struct {
	ID          string
	CustomerID  string
	Name        string
	Email       string
	ImageURL    string
	AmountCents int64
	Status      InvoiceStatus
	Date        string
}

// Customer is a billable party. Customers are only read by the dashboard.
type Customer struct {
	ID       string
	Name     string
	Email    string
	ImageURL string
}

// Summary aggregates the dashboard cards.
type Summary struct {
	InvoiceCount  int64
	CustomerCount int64
	PaidCents     int64
	PendingCents  int64
}
