package domain

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MaxAmountCents is the largest amount the invoices.amount INT column holds.
const MaxAmountCents = math.MaxInt32

// ToCents converts a decimal dollar amount to integer minor units, rounding
// half away from zero so 0.29 becomes 29 rather than 28.
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FromCents is the inverse of ToCents, used to prefill edit forms.
func FromCents(cents int64) float64 {
	return float64(cents) / 100
}

var usd = message.NewPrinter(language.AmericanEnglish)

// FormatCents renders minor units as US dollars with digit grouping.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return usd.Sprintf("%s$%.2f", sign, FromCents(cents))
}
