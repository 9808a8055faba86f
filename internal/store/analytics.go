package store

import (
	"context"
	"time"
)

// SalesSummary aggregates non-void invoices for a period.
type SalesSummary struct {
	TotalSales   float64
	TotalGST     float64
	PaidAmount   float64
	UnpaidAmount float64
	BillCount    int64
}

// PaymentModeTotal is billed revenue attributed to one payment mode.
type PaymentModeTotal struct {
	Mode   string
	Amount float64
	Count  int64
}

// ProductSales ranks a product by revenue over a period.
type ProductSales struct {
	Name     string
	Quantity int64
	Revenue  float64
}

// SalesSummaryBetween aggregates invoices created in [from, to). Void
// invoices are excluded throughout.
func (s *Store) SalesSummaryBetween(ctx context.Context, from, to time.Time) (SalesSummary, error) {
	var sum SalesSummary
	err := s.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(grand_total), 0),
		       COALESCE(SUM(gst_total), 0),
		       COALESCE(SUM(grand_total) FILTER (WHERE status = $3), 0),
		       COALESCE(SUM(grand_total) FILTER (WHERE status = $4), 0),
		       COUNT(*)
		FROM invoices
		WHERE status <> $5
		  AND created_at >= $1
		  AND created_at < $2`,
		from, to, StatusPaid, StatusUnpaid, StatusVoid).
		Scan(&sum.TotalSales, &sum.TotalGST, &sum.PaidAmount, &sum.UnpaidAmount, &sum.BillCount)
	return sum, err
}

// PaymentModeTotalsBetween breaks billed revenue down by payment mode.
func (s *Store) PaymentModeTotalsBetween(ctx context.Context, from, to time.Time) ([]PaymentModeTotal, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT payment_mode, COALESCE(SUM(grand_total), 0), COUNT(*)
		FROM invoices
		WHERE status <> $3
		  AND created_at >= $1
		  AND created_at < $2
		GROUP BY payment_mode
		ORDER BY 2 DESC`,
		from, to, StatusVoid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make([]PaymentModeTotal, 0)
	for rows.Next() {
		var t PaymentModeTotal
		if err := rows.Scan(&t.Mode, &t.Amount, &t.Count); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// TopProductsBetween returns the best sellers by revenue for a period.
func (s *Store) TopProductsBetween(ctx context.Context, from, to time.Time, limit int) ([]ProductSales, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT ii.name, SUM(ii.quantity), SUM(ii.total)
		FROM invoice_items ii
		JOIN invoices i ON i.id = ii.invoice_id
		WHERE i.status <> $4
		  AND i.created_at >= $1
		  AND i.created_at < $2
		GROUP BY ii.name
		ORDER BY SUM(ii.total) DESC
		LIMIT $3`,
		from, to, limit, StatusVoid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]ProductSales, 0)
	for rows.Next() {
		var p ProductSales
		if err := rows.Scan(&p.Name, &p.Quantity, &p.Revenue); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
