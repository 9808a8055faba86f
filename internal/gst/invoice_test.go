package gst

import "testing"

func TestComputeLineTax(t *testing.T) {
	lt := ComputeLineTax(200, 18)
	if lt.TaxAmount != 36 {
		t.Fatalf("expected tax 36, got %v", lt.TaxAmount)
	}
	if lt.Total != 236 {
		t.Fatalf("expected total 236, got %v", lt.Total)
	}
}

func TestComputeLineTaxZeroRate(t *testing.T) {
	lt := ComputeLineTax(150, 0)
	if lt.TaxAmount != 0 || lt.Total != 150 {
		t.Fatalf("expected no tax at 0%%, got %+v", lt)
	}
}

func TestAggregateEmpty(t *testing.T) {
	totals, priced := Aggregate(nil)
	if totals.Subtotal != 0 || totals.TaxTotal != 0 || totals.GrandTotal != 0 {
		t.Fatalf("expected zero totals, got %+v", totals)
	}
	if len(priced) != 0 {
		t.Fatalf("expected no priced lines, got %d", len(priced))
	}
}

func TestAggregateTotals(t *testing.T) {
	items := []LineItem{
		{Name: "Toor Dal", UnitPrice: 120, Quantity: 2, RatePercent: 0},
		{Name: "Bath Soap", UnitPrice: 50, Quantity: 2, RatePercent: 18},
		{Name: "Ghee", UnitPrice: 400, Quantity: 1, RatePercent: 5},
	}
	totals, priced := Aggregate(items)
	if totals.Subtotal != 240+100+400 {
		t.Fatalf("unexpected subtotal %v", totals.Subtotal)
	}
	if totals.TaxTotal != 18+20 {
		t.Fatalf("unexpected tax total %v", totals.TaxTotal)
	}
	if totals.GrandTotal != totals.Subtotal+totals.TaxTotal {
		t.Fatalf("grand total drifted: %+v", totals)
	}
	if len(priced) != 3 {
		t.Fatalf("expected 3 priced lines, got %d", len(priced))
	}
	if priced[1].BaseTotal != 100 || priced[1].LineTotal != priced[1].BaseTotal+priced[1].TaxAmount {
		t.Fatalf("unexpected priced line %+v", priced[1])
	}
	// Input must not be mutated.
	if items[1].UnitPrice != 50 || items[1].Quantity != 2 {
		t.Fatalf("input mutated: %+v", items[1])
	}
}

func TestAggregateAdditivity(t *testing.T) {
	items := []LineItem{
		{UnitPrice: 33.33, Quantity: 3, RatePercent: 12},
		{UnitPrice: 9.99, Quantity: 7, RatePercent: 5},
		{UnitPrice: 0.05, Quantity: 13, RatePercent: 28},
	}
	totals, _ := Aggregate(items)
	if totals.GrandTotal != totals.Subtotal+totals.TaxTotal {
		t.Fatalf("grand != subtotal + tax: %+v", totals)
	}
}

func TestBuildTaxReport(t *testing.T) {
	invoices := []ReportInvoice{
		{Lines: []ReportLine{{BaseTotal: 100, TaxAmount: 5, RatePercent: 5}}},
		{Lines: []ReportLine{{BaseTotal: 200, TaxAmount: 36, RatePercent: 18}}},
	}
	report := BuildTaxReport(invoices)
	if got := report.Breakdown[5]; got.TaxableAmount != 100 || got.TaxCollected != 5 {
		t.Fatalf("unexpected 5%% bucket %+v", got)
	}
	if got := report.Breakdown[18]; got.TaxableAmount != 200 || got.TaxCollected != 36 {
		t.Fatalf("unexpected 18%% bucket %+v", got)
	}
	if report.TotalGST != 41 {
		t.Fatalf("expected total GST 41, got %v", report.TotalGST)
	}
	if report.TotalTaxable != 300 {
		t.Fatalf("expected total taxable 300, got %v", report.TotalTaxable)
	}
	if len(report.Breakdown) != len(StatutoryBands) {
		t.Fatalf("expected all statutory buckets present, got %d", len(report.Breakdown))
	}
}

func TestBuildTaxReportDropsOffBandRates(t *testing.T) {
	invoices := []ReportInvoice{
		{Lines: []ReportLine{
			{BaseTotal: 100, TaxAmount: 5, RatePercent: 5},
			{BaseTotal: 50, TaxAmount: 3.5, RatePercent: 7}, // no 7% slab
		}},
	}
	report := BuildTaxReport(invoices)
	if report.TotalTaxable != 100 || report.TotalGST != 5 {
		t.Fatalf("off-band line leaked into totals: %+v", report)
	}
	if report.DroppedLines != 1 {
		t.Fatalf("expected 1 dropped line, got %d", report.DroppedLines)
	}
}

func TestBuildTaxReportEmpty(t *testing.T) {
	report := BuildTaxReport(nil)
	if report.TotalTaxable != 0 || report.TotalGST != 0 || report.DroppedLines != 0 {
		t.Fatalf("expected zeroed report, got %+v", report)
	}
	for _, band := range StatutoryBands {
		if _, ok := report.Breakdown[band]; !ok {
			t.Fatalf("missing bucket for %d%%", band)
		}
	}
}
