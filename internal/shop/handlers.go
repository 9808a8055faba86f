package shop

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smartdukaan/backend-dukaan/internal/common"
)

// Handler exposes the shop profile endpoints.
type Handler struct {
	Svc *Service
}

// Routes mounts the profile endpoints on a router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.Get)
	r.Put("/", h.Update)
}

// Get returns the shop profile.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Svc.Get(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, profile)
}

// Update saves the shop profile.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := common.DecodeJSON(r, &in); err != nil {
		common.WriteError(w, err)
		return
	}
	profile, err := h.Svc.Update(r.Context(), in)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, profile)
}
