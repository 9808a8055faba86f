package report

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/smartdukaan/backend-dukaan/internal/store"
)

type stubLines struct {
	lines []store.InvoiceLine
	calls int
}

func (s *stubLines) ListInvoiceLinesBetween(ctx context.Context, from, to time.Time) ([]store.InvoiceLine, error) {
	s.calls++
	return s.lines, nil
}

func TestMonthlyBucketsByRate(t *testing.T) {
	stub := &stubLines{lines: []store.InvoiceLine{
		{InvoiceID: "a", BaseTotal: 100, GSTAmount: 5, GSTRate: 5},
		{InvoiceID: "a", BaseTotal: 200, GSTAmount: 36, GSTRate: 18},
		{InvoiceID: "b", BaseTotal: 50, GSTAmount: 0, GSTRate: 0},
	}}
	svc := &Service{Q: stub}

	report, err := svc.Monthly(context.Background(), 7, 2026)
	if err != nil {
		t.Fatalf("monthly: %v", err)
	}
	if report.InvoiceCount != 2 {
		t.Fatalf("expected 2 invoices, got %d", report.InvoiceCount)
	}
	if report.TotalTaxable != 350 || report.TotalGST != 41 {
		t.Fatalf("unexpected totals %v / %v", report.TotalTaxable, report.TotalGST)
	}
	if b := report.Breakdown[18]; b.TaxableAmount != 200 || b.TaxCollected != 36 {
		t.Fatalf("unexpected 18%% bucket %+v", b)
	}
	if b := report.Breakdown[0]; b.TaxableAmount != 50 || b.TaxCollected != 0 {
		t.Fatalf("unexpected 0%% bucket %+v", b)
	}
	if report.DroppedLines != 0 {
		t.Fatalf("expected no dropped lines, got %d", report.DroppedLines)
	}
}

func TestMonthlyDropsOffBandRates(t *testing.T) {
	stub := &stubLines{lines: []store.InvoiceLine{
		{InvoiceID: "a", BaseTotal: 100, GSTAmount: 7, GSTRate: 7},
		{InvoiceID: "a", BaseTotal: 100, GSTAmount: 5, GSTRate: 5},
	}}
	svc := &Service{Q: stub}

	report, err := svc.Monthly(context.Background(), 1, 2026)
	if err != nil {
		t.Fatalf("monthly: %v", err)
	}
	if report.DroppedLines != 1 {
		t.Fatalf("expected 1 dropped line, got %d", report.DroppedLines)
	}
	if report.TotalTaxable != 100 || report.TotalGST != 5 {
		t.Fatalf("unexpected totals %v / %v", report.TotalTaxable, report.TotalGST)
	}
}

func TestMonthlyUsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	stub := &stubLines{lines: []store.InvoiceLine{
		{InvoiceID: "a", BaseTotal: 100, GSTAmount: 18, GSTRate: 18},
	}}
	svc := &Service{Q: stub, R: client, TTL: time.Minute}

	first, err := svc.Monthly(context.Background(), 3, 2026)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := svc.Monthly(context.Background(), 3, 2026)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if stub.calls != 1 {
		t.Fatalf("expected cached second call, queries ran %d times", stub.calls)
	}
	if first.TotalGST != second.TotalGST || second.TotalGST != 18 {
		t.Fatalf("cache returned different totals: %v vs %v", first.TotalGST, second.TotalGST)
	}
}

func TestMonthlyRejectsBadPeriod(t *testing.T) {
	svc := &Service{Q: &stubLines{}}
	if _, err := svc.Monthly(context.Background(), 0, 2026); err == nil {
		t.Fatal("expected error for month 0")
	}
	if _, err := svc.Monthly(context.Background(), 13, 2026); err == nil {
		t.Fatal("expected error for month 13")
	}
	if _, err := svc.Monthly(context.Background(), 5, 1800); err == nil {
		t.Fatal("expected error for implausible year")
	}
}
