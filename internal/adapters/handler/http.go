package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dkm94/invoice-dashboard/internal/core/domain"
	"github.com/dkm94/invoice-dashboard/internal/core/validation"
	"github.com/google/uuid"
)

type InvoiceCommands interface {
	Create(ctx context.Context, fields validation.Fields) domain.Outcome
	Update(ctx context.Context, id string, fields validation.Fields) domain.Outcome
	Delete(ctx context.Context, id string) domain.Outcome
}

type InvoiceQueries interface {
	FilteredInvoices(ctx context.Context, query string, page int) ([]*domain.InvoiceRow, error)
	InvoicePages(ctx context.Context, query string) (int, error)
	InvoiceByID(ctx context.Context, id string) (*domain.Invoice, error)
	Customers(ctx context.Context) ([]*domain.Customer, error)
	Summary(ctx context.Context) (*domain.Summary, error)
}

type Authenticator interface {
	SignIn(ctx context.Context, creds domain.Credentials) (*domain.Session, error)
	SignOut(ctx context.Context, id uuid.UUID) error
}

// ViewStore holds rendered read responses. Writes invalidate it through the
// command service, not through the handler.
//
// Get also returns the path's generation; Set refuses a body built against a
// generation that an invalidation has since replaced.
type ViewStore interface {
	Get(path, key string) ([]byte, uint64, bool)
	Set(path, key string, gen uint64, body []byte) bool
}

type HealthChecker interface {
	Ping(ctx context.Context) error
}

// CookieConfig describes the session cookie issued on login.
type CookieConfig struct {
	Name   string
	Secure bool
}

type DashboardHandler struct {
	commands InvoiceCommands
	queries  InvoiceQueries
	auth     Authenticator
	views    ViewStore
	health   HealthChecker
	cookie   CookieConfig
	logger   *slog.Logger
}

func NewDashboardHandler(
	commands InvoiceCommands,
	queries InvoiceQueries,
	auth Authenticator,
	views ViewStore,
	health HealthChecker,
	cookie CookieConfig,
	logger *slog.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		commands: commands,
		queries:  queries,
		auth:     auth,
		views:    views,
		health:   health,
		cookie:   cookie,
		logger:   logger,
	}
}

func (h *DashboardHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.HandleHealth)

	mux.HandleFunc("POST /login", h.HandleLogin)
	mux.HandleFunc("POST /logout", h.HandleLogout)

	mux.HandleFunc("GET /dashboard", h.HandleSummary)
	mux.HandleFunc("GET /dashboard/customers", h.HandleCustomers)
	mux.HandleFunc("GET /dashboard/invoices", h.HandleListInvoices)
	mux.HandleFunc("GET /dashboard/invoices/pages", h.HandleInvoicePages)
	mux.HandleFunc("GET /dashboard/invoices/{id}", h.HandleGetInvoice)

	mux.HandleFunc("POST /dashboard/invoices", h.HandleCreateInvoice)
	mux.HandleFunc("PUT /dashboard/invoices/{id}", h.HandleUpdateInvoice)
	mux.HandleFunc("DELETE /dashboard/invoices/{id}", h.HandleDeleteInvoice)
	// HTML forms can only POST.
	mux.HandleFunc("POST /dashboard/invoices/{id}/edit", h.HandleUpdateInvoice)
	mux.HandleFunc("POST /dashboard/invoices/{id}/delete", h.HandleDeleteInvoice)

	mux.HandleFunc("GET /swagger/doc.json", h.HandleSwaggerDoc)
	mux.HandleFunc("GET /openapi.json", h.HandleOpenAPI)
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// HandleHealth reports whether the database answers
// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  APIResponse{data=HealthResponse}
// @Failure      503  {object}  APIResponse
// @Router       /health [get]
func (h *DashboardHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.health.Ping(ctx); err != nil {
		h.logger.Error("health check failed", "error", err)
		respondWithJSON(w, http.StatusServiceUnavailable, &APIError{
			Code:    "UNAVAILABLE",
			Message: "database unreachable",
		})
		return
	}
	respondWithJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}
