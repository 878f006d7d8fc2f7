package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dkm94/invoice-dashboard/internal/core/domain"
	"github.com/dkm94/invoice-dashboard/internal/core/validation"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
)

// InvoiceForm documents the fields read from create and update submissions.
type InvoiceForm struct {
	CustomerID string `json:"customerId" example:"3958dc9e-712f-4377-85e9-fec4b6a6442a"`
	Amount     string `json:"amount" example:"45.00"`
	Status     string `json:"status" enums:"pending,paid" example:"pending"`
}

// HandleCreateInvoice creates an invoice from a form submission
// @Summary      Create an invoice
// @Description  Validates the form, stores the invoice dated today and redirects to the invoice list.
// @Tags         invoices
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        customerId  formData  string  true  "Customer id"
// @Param        amount      formData  string  true  "Amount in dollars"
// @Param        status      formData  string  true  "Invoice status"  Enums(pending, paid)
// @Success      303  "Redirect to /dashboard/invoices"
// @Failure      422  {object}  domain.FormState  "Validation failure"
// @Failure      500  {object}  domain.FormState  "Database error"
// @Router       /dashboard/invoices [post]
func (h *DashboardHandler) HandleCreateInvoice(w http.ResponseWriter, r *http.Request) {
	fields, ok := h.parseInvoiceForm(w, r)
	if !ok {
		return
	}
	h.respondWithOutcome(w, r, "create", h.commands.Create(r.Context(), fields))
}

// HandleUpdateInvoice overwrites customer, amount and status of an invoice
// @Summary      Update an invoice
// @Description  The invoice date is never changed.
// @Tags         invoices
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        id          path      string  true  "Invoice id"  Format(uuid)
// @Param        customerId  formData  string  true  "Customer id"
// @Param        amount      formData  string  true  "Amount in dollars"
// @Param        status      formData  string  true  "Invoice status"  Enums(pending, paid)
// @Success      303  "Redirect to /dashboard/invoices"
// @Failure      400  {object}  APIResponse       "Malformed id"
// @Failure      422  {object}  domain.FormState  "Validation failure"
// @Failure      500  {object}  domain.FormState  "Database error"
// @Router       /dashboard/invoices/{id} [put]
func (h *DashboardHandler) HandleUpdateInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := bindInvoiceID(w, r)
	if !ok {
		return
	}
	fields, ok := h.parseInvoiceForm(w, r)
	if !ok {
		return
	}
	h.respondWithOutcome(w, r, "update", h.commands.Update(r.Context(), id, fields))
}

// HandleDeleteInvoice removes an invoice
// @Summary      Delete an invoice
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "Invoice id"  Format(uuid)
// @Success      200  {object}  domain.FormState  "Invoice deleted successfully"
// @Failure      400  {object}  APIResponse       "Malformed id"
// @Failure      500  {object}  domain.FormState  "Database error"
// @Router       /dashboard/invoices/{id} [delete]
func (h *DashboardHandler) HandleDeleteInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := bindInvoiceID(w, r)
	if !ok {
		return
	}
	h.respondWithOutcome(w, r, "delete", h.commands.Delete(r.Context(), id))
}

func (h *DashboardHandler) parseInvoiceForm(w http.ResponseWriter, r *http.Request) (validation.Fields, bool) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, domain.NewInvalidInputError("form", err))
		return nil, false
	}
	return validation.FieldsFromValues(r.PostForm, validation.InvoiceFields...), true
}

func bindInvoiceID(w http.ResponseWriter, r *http.Request) (string, bool) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithLocation("simple", false, "id", runtime.ParamLocationPath, r.PathValue("id"), &id)
	if err != nil {
		respondWithError(w, domain.NewInvalidInputError("id", err))
		return "", false
	}
	return id.String(), true
}

type InvoiceView struct {
	ID          string `json:"id"`
	CustomerID  string `json:"customer_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	ImageURL    string `json:"image_url"`
	Amount      string `json:"amount" example:"$45.00"`
	AmountCents int64  `json:"amount_cents" example:"4500"`
	Status      string `json:"status" example:"pending"`
	Date        string `json:"date" example:"2024-06-15"`
}

type InvoiceListResponse struct {
	Query    string        `json:"query"`
	Page     int           `json:"page"`
	Invoices []InvoiceView `json:"invoices"`
}

type InvoicePagesResponse struct {
	Query      string `json:"query"`
	TotalPages int    `json:"total_pages"`
}

// InvoiceFormResponse prefills the edit form. Amount is in dollars.
type InvoiceFormResponse struct {
	ID         string  `json:"id"`
	CustomerID string  `json:"customer_id"`
	Amount     float64 `json:"amount" example:"45"`
	Status     string  `json:"status"`
	Date       string  `json:"date"`
}

// HandleListInvoices returns one page of invoices matching a search query
// @Summary      Search invoices
// @Tags         invoices
// @Produce      json
// @Param        query  query     string  false  "Matches customer name or email, amount, date and status"
// @Param        page   query     int     false  "Page number, starting at 1"
// @Success      200    {object}  APIResponse{data=InvoiceListResponse}
// @Failure      500    {object}  APIResponse
// @Router       /dashboard/invoices [get]
func (h *DashboardHandler) HandleListInvoices(w http.ResponseWriter, r *http.Request) {
	query, page := searchParams(r.URL.Query())
	key := url.Values{"query": {query}, "page": {strconv.Itoa(page)}}.Encode()

	h.serveCached(w, r, domain.InvoicesPath, key, func(ctx context.Context) (any, error) {
		rows, err := h.queries.FilteredInvoices(ctx, query, page)
		if err != nil {
			return nil, err
		}

		views := make([]InvoiceView, 0, len(rows))
		for _, row := range rows {
			views = append(views, InvoiceView{
				ID:          row.ID,
				CustomerID:  row.CustomerID,
				Name:        row.Name,
				Email:       row.Email,
				ImageURL:    row.ImageURL,
				Amount:      domain.FormatCents(row.AmountCents),
				AmountCents: row.AmountCents,
				Status:      string(row.Status),
				Date:        row.Date,
			})
		}
		return InvoiceListResponse{Query: query, Page: page, Invoices: views}, nil
	})
}

// HandleInvoicePages returns the page count of a search query
// @Summary      Count invoice pages
// @Tags         invoices
// @Produce      json
// @Param        query  query     string  false  "Search query"
// @Success      200    {object}  APIResponse{data=InvoicePagesResponse}
// @Failure      500    {object}  APIResponse
// @Router       /dashboard/invoices/pages [get]
func (h *DashboardHandler) HandleInvoicePages(w http.ResponseWriter, r *http.Request) {
	query, _ := searchParams(r.URL.Query())
	key := url.Values{"query": {query}}.Encode()

	h.serveCached(w, r, domain.InvoicesPath+"/pages", key, func(ctx context.Context) (any, error) {
		pages, err := h.queries.InvoicePages(ctx, query)
		if err != nil {
			return nil, err
		}
		return InvoicePagesResponse{Query: query, TotalPages: pages}, nil
	})
}

// HandleGetInvoice returns the invoice to edit
// @Summary      Get an invoice
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "Invoice id"  Format(uuid)
// @Success      200  {object}  APIResponse{data=InvoiceFormResponse}
// @Failure      400  {object}  APIResponse
// @Failure      404  {object}  APIResponse
// @Router       /dashboard/invoices/{id} [get]
func (h *DashboardHandler) HandleGetInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := bindInvoiceID(w, r)
	if !ok {
		return
	}

	h.serveCached(w, r, domain.InvoicesPath+"/"+id, "", func(ctx context.Context) (any, error) {
		inv, err := h.queries.InvoiceByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return InvoiceFormResponse{
			ID:         inv.ID,
			CustomerID: inv.CustomerID,
			Amount:     domain.FromCents(inv.AmountCents),
			Status:     string(inv.Status),
			Date:       inv.Date,
		}, nil
	})
}

// serveCached answers from the view cache when it can, otherwise builds the
// payload and stores the rendered body. Failures are never cached.
func (h *DashboardHandler) serveCached(
	w http.ResponseWriter,
	r *http.Request,
	path, key string,
	build func(ctx context.Context) (any, error),
) {
	body, gen, ok := h.views.Get(path, key)
	if ok {
		w.Header().Set("X-Cache", "HIT")
		writeRawJSON(w, http.StatusOK, body)
		return
	}

	data, err := build(r.Context())
	if err != nil {
		h.logger.Error("failed to load view", "path", path, "error", err)
		respondWithError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(APIResponse{Success: true, Data: data}); err != nil {
		h.logger.Error("failed to encode view", "path", path, "error", err)
		respondWithError(w, err)
		return
	}

	if !h.views.Set(path, key, gen, buf.Bytes()) {
		h.logger.Debug("view invalidated during build, not cached", "path", path)
	}
	w.Header().Set("X-Cache", "MISS")
	writeRawJSON(w, http.StatusOK, buf.Bytes())
}

func searchParams(q url.Values) (string, int) {
	query := strings.TrimSpace(q.Get("query"))
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	return query, page
}
