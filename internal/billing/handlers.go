package billing

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/smartdukaan/backend-dukaan/internal/common"
)

// Handler exposes the billing endpoints.
type Handler struct {
	Svc *Service
}

// Routes mounts the billing endpoints on a router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Post("/{id}/pay", h.MarkPaid)
	r.Post("/{id}/void", h.Void)
	r.Get("/{id}/share", h.Share)
}

// Create prices and persists a new bill.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in CreateInput
	if err := common.DecodeJSON(r, &in); err != nil {
		common.WriteError(w, err)
		return
	}
	invoice, err := h.Svc.Create(r.Context(), in)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSONData(w, http.StatusCreated, invoice)
}

// List returns a page of invoices with optional filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, perPage := common.ParsePagination(r, 20)
	filter := ListFilter{
		Status:      q.Get("status"),
		PaymentMode: q.Get("payment_mode"),
		CustomerID:  q.Get("customer_id"),
		Page:        page,
		PerPage:     perPage,
	}
	if raw := q.Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			common.WriteError(w, common.BadRequest("invalid from date"))
			return
		}
		filter.From = from
	}
	if raw := q.Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			common.WriteError(w, common.BadRequest("invalid to date"))
			return
		}
		filter.To = to
	}
	invoices, total, err := h.Svc.List(r.Context(), filter)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data": invoices,
		"pagination": common.Pagination{
			Page:       page,
			PerPage:    perPage,
			TotalItems: int(total),
		},
	})
}

// Get returns one invoice with its items.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.Svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, invoice)
}

// MarkPaid settles an unpaid invoice.
func (h *Handler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.Svc.MarkPaid(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, invoice)
}

// Void cancels an invoice.
func (h *Handler) Void(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.Svc.Void(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, invoice)
}

// Share returns the WhatsApp receipt and UPI payment payload for an invoice.
func (h *Handler) Share(w http.ResponseWriter, r *http.Request) {
	links, err := h.Svc.Share(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, links)
}
