package domain

// FieldErrors maps a form field name to its messages, in rule order.
type FieldErrors map[string][]string

func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

// FormState is what a failed command hands back to the form that submitted it.
type FormState struct {
	Errors  FieldErrors `json:"errors,omitempty"`
	Message string      `json:"message,omitempty"`
}

// OutcomeKind discriminates the result of an invoice command.
type OutcomeKind int

const (
	// OutcomeSuccess completed without navigation; State.Message describes it.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeValidationFailure rejected the form; nothing was persisted.
	OutcomeValidationFailure
	// OutcomePersistenceFailure reached the store and failed there.
	OutcomePersistenceFailure
	// OutcomeRedirect completed and the client must navigate to Location.
	OutcomeRedirect
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeValidationFailure:
		return "validation_failure"
	case OutcomePersistenceFailure:
		return "persistence_failure"
	case OutcomeRedirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Outcome is returned by every invoice command. Failures never escape as Go
// errors; they are carried here so the caller can render them.
type Outcome struct {
	Kind     OutcomeKind
	State    FormState
	Location string
}

func Succeeded(message string) Outcome {
	return Outcome{Kind: OutcomeSuccess, State: FormState{Message: message}}
}

func ValidationFailed(errs FieldErrors, message string) Outcome {
	return Outcome{Kind: OutcomeValidationFailure, State: FormState{Errors: errs, Message: message}}
}

func PersistenceFailed(message string) Outcome {
	return Outcome{Kind: OutcomePersistenceFailure, State: FormState{Message: message}}
}

func RedirectTo(location string) Outcome {
	return Outcome{Kind: OutcomeRedirect, Location: location}
}

// Failed reports whether the outcome should be rendered as an error.
func (o Outcome) Failed() bool {
	return o.Kind == OutcomeValidationFailure || o.Kind == OutcomePersistenceFailure
}
