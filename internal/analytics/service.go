// Package analytics serves the dashboard numbers the shopkeeper checks all
// day, cached briefly so the POS stays snappy.
package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smartdukaan/backend-dukaan/internal/common"
	"github.com/smartdukaan/backend-dukaan/internal/store"
)

// Querier defines the database access required for dashboard stats.
type Querier interface {
	SalesSummaryBetween(ctx context.Context, from, to time.Time) (store.SalesSummary, error)
	PaymentModeTotalsBetween(ctx context.Context, from, to time.Time) ([]store.PaymentModeTotal, error)
	TopProductsBetween(ctx context.Context, from, to time.Time, limit int) ([]store.ProductSales, error)
	SumExpensesBetween(ctx context.Context, from, to time.Time) (float64, error)
}

// Service provides cached access to dashboard aggregates.
type Service struct {
	Q   Querier
	R   *redis.Client
	TTL time.Duration
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Period selects the dashboard window.
type Period string

// Supported dashboard periods.
const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// Stats is the dashboard payload for one period.
type Stats struct {
	Period       Period                   `json:"period"`
	From         time.Time                `json:"from"`
	To           time.Time                `json:"to"`
	TotalSales   float64                  `json:"total_sales"`
	TotalGST     float64                  `json:"total_gst"`
	PaidAmount   float64                  `json:"paid_amount"`
	UnpaidAmount float64                  `json:"unpaid_amount"`
	Expenses     float64                  `json:"expenses"`
	NetProfit    float64                  `json:"net_profit"`
	BillCount    int64                    `json:"bill_count"`
	AverageBill  float64                  `json:"average_bill"`
	PaymentModes []store.PaymentModeTotal `json:"payment_modes"`
	TopProducts  []store.ProductSales     `json:"top_products"`
}

// rangeFor computes [from, to) for a period anchored at now. Weeks start on
// Monday, matching how shopkeepers tally.
func rangeFor(period Period, now time.Time) (time.Time, time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch period {
	case PeriodWeek:
		weekday := int(today.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		start := today.AddDate(0, 0, -(weekday - 1))
		return start, today.AddDate(0, 0, 1)
	case PeriodMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, today.AddDate(0, 0, 1)
	case PeriodYear:
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		return start, today.AddDate(0, 0, 1)
	default:
		return today, today.AddDate(0, 0, 1)
	}
}

// Dashboard assembles the stats for a period, serving from cache when fresh.
func (s *Service) Dashboard(ctx context.Context, period Period) (Stats, error) {
	switch period {
	case PeriodToday, PeriodWeek, PeriodMonth, PeriodYear:
	case "":
		period = PeriodToday
	default:
		return Stats{}, common.BadRequest("period must be today, week, month or year")
	}

	now := s.now()
	from, to := rangeFor(period, now)

	key := fmt.Sprintf("analytics:dash:%s:%s", period, from.Format("2006-01-02"))
	if s.R != nil && s.TTL > 0 {
		if data, err := s.R.Get(ctx, key).Bytes(); err == nil {
			var cached Stats
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	summary, err := s.Q.SalesSummaryBetween(ctx, from, to)
	if err != nil {
		return Stats{}, err
	}
	modes, err := s.Q.PaymentModeTotalsBetween(ctx, from, to)
	if err != nil {
		return Stats{}, err
	}
	top, err := s.Q.TopProductsBetween(ctx, from, to, 5)
	if err != nil {
		return Stats{}, err
	}
	expenses, err := s.Q.SumExpensesBetween(ctx, from, to)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{
		Period:       period,
		From:         from,
		To:           to,
		TotalSales:   summary.TotalSales,
		TotalGST:     summary.TotalGST,
		PaidAmount:   summary.PaidAmount,
		UnpaidAmount: summary.UnpaidAmount,
		Expenses:     expenses,
		NetProfit:    summary.TotalSales - expenses,
		BillCount:    summary.BillCount,
		PaymentModes: modes,
		TopProducts:  top,
	}
	if summary.BillCount > 0 {
		stats.AverageBill = summary.TotalSales / float64(summary.BillCount)
	}

	if s.R != nil && s.TTL > 0 {
		if data, err := json.Marshal(stats); err == nil {
			_ = s.R.Set(ctx, key, data, s.TTL).Err()
		}
	}
	return stats, nil
}
