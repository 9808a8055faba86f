package gst

import "math"

// StatutoryBands are the five GST rate slabs used for government reporting.
var StatutoryBands = []int{0, 5, 12, 18, 28}

// LineItem is one product line in a cart or invoice.
type LineItem struct {
	Name        string  `json:"name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	RatePercent float64 `json:"gst_rate"`
}

// PricedLine carries the derived amounts for a line item. The input items
// are never mutated; callers needing the per-line figures use this parallel
// structure instead.
type PricedLine struct {
	LineItem
	BaseTotal float64 `json:"base_total"`
	TaxAmount float64 `json:"gst_amount"`
	LineTotal float64 `json:"total"`
}

// Totals aggregates an invoice. GrandTotal is always exactly
// Subtotal + TaxTotal; no rounding happens during aggregation.
type Totals struct {
	Subtotal   float64 `json:"subtotal"`
	TaxTotal   float64 `json:"gst_total"`
	GrandTotal float64 `json:"grand_total"`
}

// LineTax is the tax breakdown for a single amount at a single rate.
type LineTax struct {
	BaseAmount  float64 `json:"base_amount"`
	RatePercent float64 `json:"gst_rate"`
	TaxAmount   float64 `json:"gst_amount"`
	Total       float64 `json:"total"`
}

// ComputeLineTax applies ratePercent to baseAmount. A NaN rate is treated as
// zero. Results are not rounded here; rounding is a display concern and
// rounding per line would drift the invoice totals.
func ComputeLineTax(baseAmount, ratePercent float64) LineTax {
	if math.IsNaN(ratePercent) {
		ratePercent = 0
	}
	tax := baseAmount * ratePercent / 100
	return LineTax{
		BaseAmount:  baseAmount,
		RatePercent: ratePercent,
		TaxAmount:   tax,
		Total:       baseAmount + tax,
	}
}

// Aggregate folds line items into invoice totals and returns the per-line
// derived amounts alongside. An empty or nil slice yields zero totals.
func Aggregate(items []LineItem) (Totals, []PricedLine) {
	var totals Totals
	priced := make([]PricedLine, 0, len(items))
	for _, item := range items {
		base := item.UnitPrice * float64(item.Quantity)
		lt := ComputeLineTax(base, item.RatePercent)
		totals.Subtotal += base
		totals.TaxTotal += lt.TaxAmount
		priced = append(priced, PricedLine{
			LineItem:  item,
			BaseTotal: base,
			TaxAmount: lt.TaxAmount,
			LineTotal: lt.Total,
		})
	}
	totals.GrandTotal = totals.Subtotal + totals.TaxTotal
	return totals, priced
}

// ReportLine is a persisted invoice line as seen by the tax report: the
// derived amounts were computed at checkout and stored with the item.
type ReportLine struct {
	BaseTotal   float64
	TaxAmount   float64
	RatePercent float64
}

// ReportInvoice is one invoice within the reporting period.
type ReportInvoice struct {
	Lines []ReportLine
}

// RateBucket accumulates amounts for one statutory band.
type RateBucket struct {
	TaxableAmount float64 `json:"taxable"`
	TaxCollected  float64 `json:"gst"`
}

// TaxReport is the periodic GST liability summary. Lines whose rate falls
// outside the statutory bands contribute nothing to any bucket; DroppedLines
// counts them so the gap is visible to callers.
type TaxReport struct {
	Breakdown    map[int]RateBucket `json:"breakdown"`
	TotalTaxable float64            `json:"total_taxable"`
	TotalGST     float64            `json:"total_gst"`
	DroppedLines int                `json:"dropped_lines"`
}

// BuildTaxReport buckets every line of every invoice by its GST rate across
// the five statutory bands. Callers filter invoices to the reporting period
// beforehand; no date handling happens here.
func BuildTaxReport(invoices []ReportInvoice) TaxReport {
	report := TaxReport{Breakdown: make(map[int]RateBucket, len(StatutoryBands))}
	for _, band := range StatutoryBands {
		report.Breakdown[band] = RateBucket{}
	}
	for _, inv := range invoices {
		for _, line := range inv.Lines {
			band, ok := bandFor(line.RatePercent)
			if !ok {
				report.DroppedLines++
				continue
			}
			bucket := report.Breakdown[band]
			bucket.TaxableAmount += line.BaseTotal
			bucket.TaxCollected += line.TaxAmount
			report.Breakdown[band] = bucket
		}
	}
	for _, bucket := range report.Breakdown {
		report.TotalTaxable += bucket.TaxableAmount
		report.TotalGST += bucket.TaxCollected
	}
	return report
}

func bandFor(ratePercent float64) (int, bool) {
	for _, band := range StatutoryBands {
		if ratePercent == float64(band) {
			return band, true
		}
	}
	return 0, false
}
