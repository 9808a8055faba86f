// Package report builds the monthly GST filing summary and data exports.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smartdukaan/backend-dukaan/internal/common"
	"github.com/smartdukaan/backend-dukaan/internal/gst"
	"github.com/smartdukaan/backend-dukaan/internal/obs"
	"github.com/smartdukaan/backend-dukaan/internal/store"
)

// Lines defines the invoice-line access the report needs.
type Lines interface {
	ListInvoiceLinesBetween(ctx context.Context, from, to time.Time) ([]store.InvoiceLine, error)
}

// Service assembles cached GST reports from stored invoice lines.
type Service struct {
	Q   Lines
	R   *redis.Client
	TTL time.Duration
}

// GSTReport is the monthly summary grouped by statutory rate band.
type GSTReport struct {
	Month        int                    `json:"month"`
	Year         int                    `json:"year"`
	Breakdown    map[int]gst.RateBucket `json:"breakdown"`
	TotalTaxable float64                `json:"total_taxable"`
	TotalGST     float64                `json:"total_gst"`
	InvoiceCount int                    `json:"invoice_count"`
	DroppedLines int                    `json:"dropped_lines,omitempty"`
}

// Monthly builds the GST report for a calendar month. Results are cached
// because the shopkeeper opens the report screen repeatedly while filing.
func (s *Service) Monthly(ctx context.Context, month, year int) (GSTReport, error) {
	if month < 1 || month > 12 {
		return GSTReport{}, common.BadRequest("month must be between 1 and 12")
	}
	if year < 2000 || year > 2100 {
		return GSTReport{}, common.BadRequest("invalid year")
	}

	key := fmt.Sprintf("report:gst:%d:%02d", year, month)
	if s.R != nil && s.TTL > 0 {
		if data, err := s.R.Get(ctx, key).Bytes(); err == nil {
			var cached GSTReport
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 1, 0)
	lines, err := s.Q.ListInvoiceLinesBetween(ctx, from, to)
	if err != nil {
		if obs.GSTReportsTotal != nil {
			obs.GSTReportsTotal.WithLabelValues("error").Inc()
		}
		return GSTReport{}, err
	}

	invoices := groupByInvoice(lines)
	tax := gst.BuildTaxReport(invoices)
	report := GSTReport{
		Month:        month,
		Year:         year,
		Breakdown:    tax.Breakdown,
		TotalTaxable: tax.TotalTaxable,
		TotalGST:     tax.TotalGST,
		InvoiceCount: len(invoices),
		DroppedLines: tax.DroppedLines,
	}

	if s.R != nil && s.TTL > 0 {
		if data, err := json.Marshal(report); err == nil {
			_ = s.R.Set(ctx, key, data, s.TTL).Err()
		}
	}
	if obs.GSTReportsTotal != nil {
		obs.GSTReportsTotal.WithLabelValues("ok").Inc()
	}
	return report, nil
}

// groupByInvoice folds flat rows back into per-invoice line sets, relying on
// the query's invoice ordering.
func groupByInvoice(lines []store.InvoiceLine) []gst.ReportInvoice {
	invoices := make([]gst.ReportInvoice, 0)
	lastID := ""
	for _, line := range lines {
		if line.InvoiceID != lastID {
			invoices = append(invoices, gst.ReportInvoice{})
			lastID = line.InvoiceID
		}
		idx := len(invoices) - 1
		invoices[idx].Lines = append(invoices[idx].Lines, gst.ReportLine{
			BaseTotal:   line.BaseTotal,
			TaxAmount:   line.GSTAmount,
			RatePercent: line.GSTRate,
		})
	}
	return invoices
}
