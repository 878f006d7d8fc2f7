package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dkm94/invoice-dashboard/internal/adapters/middleware"
	"github.com/dkm94/invoice-dashboard/internal/core/domain"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondWithJSON(w http.ResponseWriter, status int, data interface{}) {
	response := APIResponse{
		Success: status >= 200 && status < 300,
	}

	if response.Success {
		response.Data = data
	} else {
		if apiErr, ok := data.(*APIError); ok {
			response.Error = apiErr
		}
	}

	writeJSON(w, status, response)
}

// respondWithError maps err to a status. Errors that are not domain errors
// are reported generically; their detail stays in the logs.
func respondWithError(w http.ResponseWriter, err error) {
	var domainErr *domain.DomainError
	code := "INTERNAL_ERROR"
	message := "internal server error"
	status := http.StatusInternalServerError

	if errors.As(err, &domainErr) {
		code = domainErr.Code
		message = domainErr.Message

		switch domainErr.Code {
		case domain.ErrCodeInvoiceNotFound:
			status = http.StatusNotFound
		case domain.ErrCodeInvalidCredentials:
			status = http.StatusUnauthorized
		default:
			status = http.StatusBadRequest
		}
	}

	respondWithJSON(w, status, &APIError{
		Code:    code,
		Message: message,
	})
}

// respondWithState writes the form state a failed or message-only command
// hands back to its form.
func respondWithState(w http.ResponseWriter, status int, state domain.FormState) {
	writeJSON(w, status, state)
}

// respondWithOutcome logs and renders a command outcome. Redirects use 303
// so the browser follows them with a GET.
func (h *DashboardHandler) respondWithOutcome(w http.ResponseWriter, r *http.Request, command string, o domain.Outcome) {
	attrs := []any{"command", command, "outcome", o.Kind.String()}
	if session, ok := middleware.SessionFromContext(r.Context()); ok {
		attrs = append(attrs, "user_id", session.UserID)
	}
	if o.Failed() {
		h.logger.Warn("invoice command rejected", attrs...)
	} else {
		h.logger.Info("invoice command completed", attrs...)
	}


	switch o.Kind {
	case domain.OutcomeRedirect:
		http.Redirect(w, r, o.Location, http.StatusSeeOther)
	case domain.OutcomeValidationFailure:
		respondWithState(w, http.StatusUnprocessableEntity, o.State)
	case domain.OutcomePersistenceFailure:
		respondWithState(w, http.StatusInternalServerError, o.State)
	default:
		respondWithState(w, http.StatusOK, o.State)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeRawJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
