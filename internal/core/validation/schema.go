// Package validation turns raw form submissions into typed domain input.
//
// Each field is checked by its own Parser, independently of the others, and
// every failure is collected; a form never stops at its first bad field.
package validation

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/dkm94/invoice-dashboard/internal/core/domain"
	"github.com/go-playground/validator"
)

var validate = validator.New()

// Fields holds raw submitted values by field name. A key that is absent was
// not submitted at all, which is distinct from an empty value.
type Fields map[string]string

// FieldsFromValues keeps the first value of each named field that is present
// in values.
func FieldsFromValues(values url.Values, names ...string) Fields {
	fields := make(Fields, len(names))
	for _, name := range names {
		if v, ok := values[name]; ok && len(v) > 0 {
			fields[name] = v[0]
		}
	}
	return fields
}

// Result is either a parsed value or the message explaining the rejection.
type Result[T any] struct {
	Value   T
	Message string
}

func (r Result[T]) OK() bool { return r.Message == "" }

func accept[T any](v T) Result[T] { return Result[T]{Value: v} }

func reject[T any](message string) Result[T] { return Result[T]{Message: message} }

// Parser checks one raw field. present is false when the field was missing
// from the submission.
type Parser[T any] func(raw string, present bool) Result[T]

// NonEmptyString accepts any submitted, non-empty value.
func NonEmptyString(message string) Parser[string] {
	return func(raw string, present bool) Result[string] {
		if !present || validate.Var(raw, "required") != nil {
			return reject[string](message)
		}
		return accept(raw)
	}
}

// PositiveNumber coerces the value to a finite float and requires it to be
// strictly greater than zero.
func PositiveNumber(message string) Parser[float64] {
	return func(raw string, present bool) Result[float64] {
		if !present {
			return reject[float64](message)
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return reject[float64](message)
		}
		if validate.Var(n, "gt=0") != nil {
			return reject[float64](message)
		}
		return accept(n)
	}
}

// DollarAmount is PositiveNumber restricted to amounts that round to at
// least one cent and fit the stored cents column.
func DollarAmount(message string) Parser[float64] {
	positive := PositiveNumber(message)
	return func(raw string, present bool) Result[float64] {
		r := positive(raw, present)
		if !r.OK() {
			return r
		}
		cents := math.Round(r.Value * 100)
		if cents < 1 || cents > domain.MaxAmountCents {
			return reject[float64](message)
		}
		return r
	}
}

// OneOf accepts exactly one of the allowed values.
func OneOf[T ~string](message string, allowed ...T) Parser[T] {
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	tag := "oneof=" + strings.Join(names, " ")

	return func(raw string, present bool) Result[T] {
		if !present || validate.Var(raw, tag) != nil {
			return reject[T](message)
		}
		return accept(T(raw))
	}
}

// field runs p on the named value and records a rejection under name.
func field[T any](errs domain.FieldErrors, fields Fields, name string, p Parser[T]) T {
	raw, present := fields[name]
	r := p(raw, present)
	if !r.OK() {
		errs.Add(name, r.Message)
	}
	return r.Value
}
