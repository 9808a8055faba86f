package report

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/smartdukaan/backend-dukaan/internal/common"
)

// Handler exposes report and export endpoints.
type Handler struct {
	Svc      *Service
	Exporter *Exporter
}

// Routes mounts the report endpoints on a router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/gst", h.GST)
	r.Get("/export/products.csv", h.ExportProducts)
	r.Get("/export/invoices.csv", h.ExportInvoices)
	r.Get("/export/customers.csv", h.ExportCustomers)
	r.Get("/export/expenses.csv", h.ExportExpenses)
	r.Get("/backup.json", h.Backup)
}

// GST returns the monthly GST summary. Defaults to the current month.
func (h *Handler) GST(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	month := common.AtoiDefault(r.URL.Query().Get("month"), int(now.Month()))
	year := common.AtoiDefault(r.URL.Query().Get("year"), now.Year())
	report, err := h.Svc.Monthly(r.Context(), month, year)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, report)
}

func csvHeaders(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}

// ExportProducts streams the catalog as CSV.
func (h *Handler) ExportProducts(w http.ResponseWriter, r *http.Request) {
	csvHeaders(w, "products.csv")
	if err := h.Exporter.ProductsCSV(r.Context(), w); err != nil {
		common.WriteError(w, err)
	}
}

// ExportInvoices streams invoices as CSV, optionally bounded by from/to dates.
func (h *Handler) ExportInvoices(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseRange(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	csvHeaders(w, "invoices.csv")
	if err := h.Exporter.InvoicesCSV(r.Context(), w, from, to); err != nil {
		common.WriteError(w, err)
	}
}

// ExportCustomers streams the credit book as CSV.
func (h *Handler) ExportCustomers(w http.ResponseWriter, r *http.Request) {
	csvHeaders(w, "customers.csv")
	if err := h.Exporter.CustomersCSV(r.Context(), w); err != nil {
		common.WriteError(w, err)
	}
}

// ExportExpenses streams expenses as CSV, optionally bounded by from/to dates.
func (h *Handler) ExportExpenses(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseRange(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	csvHeaders(w, "expenses.csv")
	if err := h.Exporter.ExpensesCSV(r.Context(), w, from, to); err != nil {
		common.WriteError(w, err)
	}
}

// Backup streams the full JSON backup.
func (h *Handler) Backup(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="smartdukaan-backup.json"`)
	if err := h.Exporter.Backup(r.Context(), w); err != nil {
		common.WriteError(w, err)
	}
}

func parseRange(r *http.Request) (from, to time.Time, err error) {
	q := r.URL.Query()
	if raw := q.Get("from"); raw != "" {
		from, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, common.BadRequest("invalid from date")
		}
	}
	if raw := q.Get("to"); raw != "" {
		to, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, common.BadRequest("invalid to date")
		}
	}
	return from, to, nil
}
