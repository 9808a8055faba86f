package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/smartdukaan/backend-dukaan/internal/store"
)

type stubQuerier struct {
	summary  store.SalesSummary
	modes    []store.PaymentModeTotal
	top      []store.ProductSales
	expenses float64
	calls    int

	from time.Time
	to   time.Time
}

func (s *stubQuerier) SalesSummaryBetween(ctx context.Context, from, to time.Time) (store.SalesSummary, error) {
	s.calls++
	s.from, s.to = from, to
	return s.summary, nil
}

func (s *stubQuerier) PaymentModeTotalsBetween(ctx context.Context, from, to time.Time) ([]store.PaymentModeTotal, error) {
	return s.modes, nil
}

func (s *stubQuerier) TopProductsBetween(ctx context.Context, from, to time.Time, limit int) ([]store.ProductSales, error) {
	if limit != 5 {
		return nil, nil
	}
	return s.top, nil
}

func (s *stubQuerier) SumExpensesBetween(ctx context.Context, from, to time.Time) (float64, error) {
	return s.expenses, nil
}

func fixedNow() time.Time {
	// A Wednesday.
	return time.Date(2026, 7, 15, 14, 30, 0, 0, time.UTC)
}

func TestDashboardComputesDerivedFields(t *testing.T) {
	stub := &stubQuerier{
		summary: store.SalesSummary{
			TotalSales:   1000,
			TotalGST:     90,
			PaidAmount:   800,
			UnpaidAmount: 200,
			BillCount:    4,
		},
		modes:    []store.PaymentModeTotal{{Mode: "cash", Amount: 600, Count: 3}, {Mode: "upi", Amount: 400, Count: 1}},
		top:      []store.ProductSales{{Name: "Milk (Fresh/Toned)", Quantity: 20, Revenue: 500}},
		expenses: 250,
	}
	svc := &Service{Q: stub, Now: fixedNow}

	stats, err := svc.Dashboard(context.Background(), PeriodToday)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if stats.NetProfit != 750 {
		t.Fatalf("expected net profit 750, got %v", stats.NetProfit)
	}
	if stats.AverageBill != 250 {
		t.Fatalf("expected average bill 250, got %v", stats.AverageBill)
	}
	if len(stats.PaymentModes) != 2 || stats.PaymentModes[0].Mode != "cash" {
		t.Fatalf("unexpected payment modes %+v", stats.PaymentModes)
	}
	if len(stats.TopProducts) != 1 {
		t.Fatalf("unexpected top products %+v", stats.TopProducts)
	}
}

func TestDashboardPeriodRanges(t *testing.T) {
	stub := &stubQuerier{}
	svc := &Service{Q: stub, Now: fixedNow}

	cases := []struct {
		period Period
		from   time.Time
		to     time.Time
	}{
		{PeriodToday, time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC), time.Date(2026, 7, 16, 0, 0, 0, 0, time.UTC)},
		{PeriodWeek, time.Date(2026, 7, 13, 0, 0, 0, 0, time.UTC), time.Date(2026, 7, 16, 0, 0, 0, 0, time.UTC)},
		{PeriodMonth, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 7, 16, 0, 0, 0, 0, time.UTC)},
		{PeriodYear, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 7, 16, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		if _, err := svc.Dashboard(context.Background(), tc.period); err != nil {
			t.Fatalf("%s: %v", tc.period, err)
		}
		if !stub.from.Equal(tc.from) || !stub.to.Equal(tc.to) {
			t.Fatalf("%s: got range %v..%v want %v..%v", tc.period, stub.from, stub.to, tc.from, tc.to)
		}
	}
}

func TestDashboardUsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	stub := &stubQuerier{summary: store.SalesSummary{TotalSales: 500, BillCount: 1}}
	svc := &Service{Q: stub, R: client, TTL: time.Minute, Now: fixedNow}

	first, err := svc.Dashboard(context.Background(), PeriodToday)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := svc.Dashboard(context.Background(), PeriodToday)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if stub.calls != 1 {
		t.Fatalf("expected cached second call, queries ran %d times", stub.calls)
	}
	if first.TotalSales != second.TotalSales {
		t.Fatalf("cache returned different totals: %v vs %v", first.TotalSales, second.TotalSales)
	}
}

func TestDashboardRejectsUnknownPeriod(t *testing.T) {
	svc := &Service{Q: &stubQuerier{}, Now: fixedNow}
	if _, err := svc.Dashboard(context.Background(), "quarter"); err != nil {
		return
	}
	t.Fatal("expected error for unknown period")
}
