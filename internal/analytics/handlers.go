package analytics

import (
	"net/http"

	"github.com/smartdukaan/backend-dukaan/internal/common"
)

// Handler exposes the dashboard endpoint.
type Handler struct {
	Svc *Service
}

// Dashboard returns aggregated stats for the requested period.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Svc.Dashboard(r.Context(), Period(r.URL.Query().Get("period")))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, stats)
}
