package handler

import (
	"net/http"

	"github.com/dkm94/invoice-dashboard/internal/core/domain"
)

type SummaryResponse struct {
	NumberOfInvoices     int64  `json:"number_of_invoices" example:"13"`
	NumberOfCustomers    int64  `json:"number_of_customers" example:"6"`
	TotalPaidInvoices    string `json:"total_paid_invoices" example:"$1,500.00"`
	TotalPendingInvoices string `json:"total_pending_invoices" example:"$45.00"`
}

type CustomerOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// HandleSummary returns the dashboard cards
// @Summary      Dashboard summary
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  APIResponse{data=SummaryResponse}
// @Failure      500  {object}  APIResponse
// @Router       /dashboard [get]
func (h *DashboardHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	s, err := h.queries.Summary(r.Context())
	if err != nil {
		h.logger.Error("failed to load summary", "error", err)
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, SummaryResponse{
		NumberOfInvoices:     s.InvoiceCount,
		NumberOfCustomers:    s.CustomerCount,
		TotalPaidInvoices:    domain.FormatCents(s.PaidCents),
		TotalPendingInvoices: domain.FormatCents(s.PendingCents),
	})
}

// HandleCustomers lists the customers an invoice can bill
// @Summary      List customers
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  APIResponse{data=[]CustomerOption}
// @Failure      500  {object}  APIResponse
// @Router       /dashboard/customers [get]
func (h *DashboardHandler) HandleCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.queries.Customers(r.Context())
	if err != nil {
		h.logger.Error("failed to load customers", "error", err)
		respondWithError(w, err)
		return
	}

	options := make([]CustomerOption, 0, len(customers))
	for _, c := range customers {
		options = append(options, CustomerOption{ID: c.ID, Name: c.Name})
	}
	respondWithJSON(w, http.StatusOK, options)
}
