package customer

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smartdukaan/backend-dukaan/internal/common"
)

// Handler exposes customer and credit-book endpoints.
type Handler struct {
	Svc *Service
}

// Routes mounts the customer endpoints on a router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/credit", h.CreditBook)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/credit/settle", h.SettleCredit)
	r.Get("/{id}/reminder", h.Reminder)
}

// List returns a page of customers, optionally filtered by name or phone.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, perPage := common.ParsePagination(r, 20)
	customers, total, err := h.Svc.List(r.Context(), r.URL.Query().Get("q"), page, perPage)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data": customers,
		"pagination": common.Pagination{
			Page:       page,
			PerPage:    perPage,
			TotalItems: int(total),
		},
	})
}

// Create adds a customer.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := common.DecodeJSON(r, &in); err != nil {
		common.WriteError(w, err)
		return
	}
	customer, err := h.Svc.Create(r.Context(), in)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSONData(w, http.StatusCreated, customer)
}

// Get returns a single customer.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	customer, err := h.Svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, customer)
}

// Update replaces a customer's details.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := common.DecodeJSON(r, &in); err != nil {
		common.WriteError(w, err)
		return
	}
	customer, err := h.Svc.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, customer)
}

// Delete removes a customer without outstanding credit.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		common.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreditBook lists customers who owe money, largest balance first.
func (h *Handler) CreditBook(w http.ResponseWriter, r *http.Request) {
	customers, err := h.Svc.CreditBook(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, customers)
}

// SettleCredit records a repayment. An empty body or zero amount clears the
// whole balance.
func (h *Handler) SettleCredit(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Amount float64 `json:"amount"`
	}
	if r.ContentLength > 0 {
		if err := common.DecodeJSON(r, &in); err != nil {
			common.WriteError(w, err)
			return
		}
	}
	customer, err := h.Svc.SettleCredit(r.Context(), chi.URLParam(r, "id"), in.Amount)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, customer)
}

// Reminder returns a WhatsApp link nudging the customer about their balance.
func (h *Handler) Reminder(w http.ResponseWriter, r *http.Request) {
	link, err := h.Svc.Reminder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, map[string]string{"whatsapp_url": link})
}
