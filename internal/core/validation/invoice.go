package validation

import (
	"github.com/dkm94/invoice-dashboard/internal/core/domain"
)

const (
	FieldCustomerID = "customerId"
	FieldAmount     = "amount"
	FieldStatus     = "status"
)

// InvoiceFields are the form fields read for both create and update. id and
// date are system assigned and never taken from the form.
var InvoiceFields = []string{FieldCustomerID, FieldAmount, FieldStatus}

const (
	MsgSelectCustomer = "Please select a customer."
	MsgAmountPositive = "Please enter an amount greater than $0."
	MsgSelectStatus   = "Please select an invoice status."
)

var (
	customerRule = NonEmptyString(MsgSelectCustomer)
	amountRule   = DollarAmount(MsgAmountPositive)
	statusRule   = OneOf(MsgSelectStatus, domain.InvoiceStatuses...)
)

// ParseInvoice validates an invoice form. It returns the typed input when
// every field passes, otherwise the messages of every failing field.
func ParseInvoice(fields Fields) (domain.InvoiceInput, domain.FieldErrors) {
	errs := domain.FieldErrors{}

	in := domain.InvoiceInput{
		CustomerID: field(errs, fields, FieldCustomerID, customerRule),
		Amount:     field(errs, fields, FieldAmount, amountRule),
		Status:     field(errs, fields, FieldStatus, statusRule),
	}

	if len(errs) > 0 {
		return domain.InvoiceInput{}, errs
	}
	return in, nil
}

// ValidateCredentials checks the shape of a login submission.
func ValidateCredentials(c domain.Credentials) error {
	if err := validate.Struct(c); err != nil {
		return domain.NewInvalidInputError("credentials", err)
	}
	return nil
}
