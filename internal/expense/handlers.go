package expense

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/smartdukaan/backend-dukaan/internal/common"
)

// Handler exposes expense endpoints.
type Handler struct {
	Svc *Service
}

// Routes mounts the expense endpoints on a router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Delete("/{id}", h.Delete)
}

// Create records an expense.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := common.DecodeJSON(r, &in); err != nil {
		common.WriteError(w, err)
		return
	}
	expense, err := h.Svc.Create(r.Context(), in)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSONData(w, http.StatusCreated, expense)
}

// List returns expenses for an optional date range with the period total.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var from, to time.Time
	if raw := q.Get("from"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			common.WriteError(w, common.BadRequest("invalid from date"))
			return
		}
		from = parsed
	}
	if raw := q.Get("to"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			common.WriteError(w, common.BadRequest("invalid to date"))
			return
		}
		to = parsed
	}
	page, perPage := common.ParsePagination(r, 20)
	expenses, count, total, err := h.Svc.List(r.Context(), from, to, page, perPage)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data":  expenses,
		"total": total,
		"pagination": common.Pagination{
			Page:       page,
			PerPage:    perPage,
			TotalItems: int(count),
		},
	})
}

// Delete removes an expense.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		common.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
