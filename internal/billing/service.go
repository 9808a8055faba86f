package billing

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/smartdukaan/backend-dukaan/internal/common"
	"github.com/smartdukaan/backend-dukaan/internal/gst"
	"github.com/smartdukaan/backend-dukaan/internal/obs"
	"github.com/smartdukaan/backend-dukaan/internal/store"
)

// Store is the slice of the persistence layer billing depends on. The
// tx-taking methods run inside one BeginTx transaction per operation.
type Store interface {
	BeginTx(ctx context.Context) (pgx.Tx, error)
	GetCustomer(ctx context.Context, id string) (store.Customer, error)
	GetProduct(ctx context.Context, id string) (store.Product, error)
	GetInvoice(ctx context.Context, id string) (store.Invoice, error)
	GetVendor(ctx context.Context) (store.Vendor, error)
	ListInvoices(ctx context.Context, f store.InvoiceFilter) ([]store.Invoice, error)
	CountInvoices(ctx context.Context, f store.InvoiceFilter) (int64, error)
	NextInvoiceSeq(ctx context.Context, tx pgx.Tx, year int) (int, error)
	InsertInvoice(ctx context.Context, tx pgx.Tx, in store.InvoiceInput) (store.Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, tx pgx.Tx, id, status string) (store.Invoice, error)
	AdjustProductStock(ctx context.Context, tx pgx.Tx, id string, delta float64) error
	AdjustCustomerCredit(ctx context.Context, tx pgx.Tx, id string, delta float64) (float64, error)
}

// Service orchestrates invoice creation and lifecycle.
type Service struct {
	Store    Store
	Resolver gst.Resolver
	Now      func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// LineInput is one row of the bill as entered at the counter. GSTRate is
// optional: when nil it is taken from the referenced product, or resolved
// from the item name.
type LineInput struct {
	ProductID string   `json:"product_id,omitempty"`
	Name      string   `json:"name"`
	UnitPrice float64  `json:"unit_price"`
	Quantity  int      `json:"quantity"`
	GSTRate   *float64 `json:"gst_rate,omitempty"`
}

// CreateInput captures a new bill.
type CreateInput struct {
	CustomerID   string      `json:"customer_id,omitempty"`
	CustomerName string      `json:"customer_name,omitempty"`
	PaymentMode  string      `json:"payment_mode"`
	Notes        string      `json:"notes,omitempty"`
	Items        []LineInput `json:"items"`
}

// Invoice is the API representation of a bill.
type Invoice struct {
	ID           string    `json:"id"`
	Number       string    `json:"number"`
	CustomerID   string    `json:"customer_id,omitempty"`
	CustomerName string    `json:"customer_name,omitempty"`
	Subtotal     float64   `json:"subtotal"`
	GSTTotal     float64   `json:"gst_total"`
	GrandTotal   float64   `json:"grand_total"`
	PaymentMode  string    `json:"payment_mode"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	Items        []Item    `json:"items,omitempty"`
}

// Item is a billed line with its computed amounts.
type Item struct {
	ProductID string  `json:"product_id,omitempty"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	GSTRate   float64 `json:"gst_rate"`
	BaseTotal float64 `json:"base_total"`
	GSTAmount float64 `json:"gst_amount"`
	Total     float64 `json:"total"`
}

// ListFilter narrows invoice listings.
type ListFilter struct {
	Status      string
	PaymentMode string
	CustomerID  string
	From        time.Time
	To          time.Time
	Page        int
	PerPage     int
}

func validMode(mode string) bool {
	switch mode {
	case store.PaymentCash, store.PaymentUPI, store.PaymentCard, store.PaymentCredit:
		return true
	}
	return false
}

func convertInvoice(inv store.Invoice) Invoice {
	out := Invoice{
		ID:           inv.ID,
		Number:       inv.Number,
		CustomerID:   inv.CustomerID,
		CustomerName: inv.CustomerName,
		Subtotal:     inv.Subtotal,
		GSTTotal:     inv.GSTTotal,
		GrandTotal:   inv.GrandTotal,
		PaymentMode:  inv.PaymentMode,
		Status:       inv.Status,
		Notes:        inv.Notes,
		CreatedAt:    inv.CreatedAt,
	}
	for _, item := range inv.Items {
		out.Items = append(out.Items, Item{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			GSTRate:   item.GSTRate,
			BaseTotal: item.BaseTotal,
			GSTAmount: item.GSTAmount,
			Total:     item.Total,
		})
	}
	return out
}

// Create prices the bill, assigns the next invoice number and persists
// everything atomically. Credit sales start unpaid and raise the customer's
// credit balance; every other mode is settled on the spot.
func (s *Service) Create(ctx context.Context, in CreateInput) (Invoice, error) {
	if len(in.Items) == 0 {
		return Invoice{}, common.BadRequest("at least one item is required")
	}
	if !validMode(in.PaymentMode) {
		return Invoice{}, common.BadRequest("payment_mode must be cash, upi, card or credit")
	}
	if in.PaymentMode == store.PaymentCredit && in.CustomerID == "" {
		return Invoice{}, common.BadRequest("credit sales require a customer")
	}

	customerName := strings.TrimSpace(in.CustomerName)
	if in.CustomerID != "" {
		customer, err := s.Store.GetCustomer(ctx, in.CustomerID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return Invoice{}, common.NotFound("customer not found")
			}
			return Invoice{}, err
		}
		customerName = customer.Name
	}

	lines := make([]gst.LineItem, 0, len(in.Items))
	productIDs := make([]string, 0, len(in.Items))
	for i := range in.Items {
		item := &in.Items[i]
		item.Name = strings.TrimSpace(item.Name)
		if item.Quantity <= 0 {
			return Invoice{}, common.BadRequest("quantity must be positive")
		}
		if item.UnitPrice < 0 {
			return Invoice{}, common.BadRequest("unit_price must not be negative")
		}

		var product store.Product
		if item.ProductID != "" {
			p, err := s.Store.GetProduct(ctx, item.ProductID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return Invoice{}, common.NotFound("product not found: " + item.ProductID)
				}
				return Invoice{}, err
			}
			product = p
			if item.Name == "" {
				item.Name = p.Name
			}
			if item.UnitPrice == 0 {
				item.UnitPrice = p.SellingPrice
			}
		}
		if item.Name == "" {
			return Invoice{}, common.BadRequest("item name is required")
		}

		rate := 0.0
		switch {
		case item.GSTRate != nil:
			rate = *item.GSTRate
		case product.ID != "":
			rate = product.GSTRate
		default:
			rate = s.Resolver.Rate(gst.CategoryUnknown, item.Name)
		}
		if rate < 0 || rate > 40 {
			return Invoice{}, common.BadRequest("gst_rate must be between 0 and 40")
		}

		lines = append(lines, gst.LineItem{
			Name:        item.Name,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			RatePercent: rate,
		})
		productIDs = append(productIDs, item.ProductID)
	}

	totals, priced := gst.Aggregate(lines)

	status := store.StatusPaid
	if in.PaymentMode == store.PaymentCredit {
		status = store.StatusUnpaid
	}

	storeItems := make([]store.InvoiceItem, 0, len(priced))
	for i, line := range priced {
		storeItems = append(storeItems, store.InvoiceItem{
			ProductID: productIDs[i],
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			GSTRate:   line.RatePercent,
			BaseTotal: line.BaseTotal,
			GSTAmount: line.TaxAmount,
			Total:     line.LineTotal,
		})
	}

	tx, err := s.Store.BeginTx(ctx)
	if err != nil {
		return Invoice{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	year := s.now().Year()
	seq, err := s.Store.NextInvoiceSeq(ctx, tx, year)
	if err != nil {
		return Invoice{}, err
	}

	inv, err := s.Store.InsertInvoice(ctx, tx, store.InvoiceInput{
		Number:       FormatInvoiceNumber(year, seq),
		CustomerID:   in.CustomerID,
		CustomerName: customerName,
		Subtotal:     totals.Subtotal,
		GSTTotal:     totals.TaxTotal,
		GrandTotal:   totals.GrandTotal,
		PaymentMode:  in.PaymentMode,
		Status:       status,
		Notes:        in.Notes,
		Items:        storeItems,
	})
	if err != nil {
		return Invoice{}, err
	}

	for _, item := range storeItems {
		if item.ProductID == "" {
			continue
		}
		if err := s.Store.AdjustProductStock(ctx, tx, item.ProductID, -float64(item.Quantity)); err != nil {
			return Invoice{}, err
		}
	}

	if in.PaymentMode == store.PaymentCredit {
		if _, err := s.Store.AdjustCustomerCredit(ctx, tx, in.CustomerID, totals.GrandTotal); err != nil {
			return Invoice{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Invoice{}, err
	}

	if obs.InvoicesCreatedTotal != nil {
		obs.InvoicesCreatedTotal.WithLabelValues(in.PaymentMode).Inc()
		obs.InvoiceGrandTotal.WithLabelValues(in.PaymentMode).Add(totals.GrandTotal)
	}
	return convertInvoice(inv), nil
}

// Get fetches an invoice with its items.
func (s *Service) Get(ctx context.Context, id string) (Invoice, error) {
	inv, err := s.Store.GetInvoice(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Invoice{}, common.NotFound("invoice not found")
		}
		return Invoice{}, err
	}
	return convertInvoice(inv), nil
}

// List returns a page of invoices and the total matching count.
func (s *Service) List(ctx context.Context, f ListFilter) ([]Invoice, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PerPage <= 0 {
		f.PerPage = 20
	}
	filter := store.InvoiceFilter{
		Status:      f.Status,
		PaymentMode: f.PaymentMode,
		CustomerID:  f.CustomerID,
		From:        f.From,
		To:          f.To,
		Limit:       f.PerPage,
		Offset:      (f.Page - 1) * f.PerPage,
	}
	rows, err := s.Store.ListInvoices(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Store.CountInvoices(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	invoices := make([]Invoice, 0, len(rows))
	for _, row := range rows {
		invoices = append(invoices, convertInvoice(row))
	}
	return invoices, total, nil
}

// MarkPaid settles an unpaid invoice. For credit sales the customer's
// balance is reduced by the invoice total.
func (s *Service) MarkPaid(ctx context.Context, id string) (Invoice, error) {
	inv, err := s.Store.GetInvoice(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Invoice{}, common.NotFound("invoice not found")
		}
		return Invoice{}, err
	}
	if inv.Status != store.StatusUnpaid {
		return Invoice{}, common.BadRequest("only unpaid invoices can be marked paid")
	}

	tx, err := s.Store.BeginTx(ctx)
	if err != nil {
		return Invoice{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	updated, err := s.Store.UpdateInvoiceStatus(ctx, tx, id, store.StatusPaid)
	if err != nil {
		return Invoice{}, err
	}
	if inv.PaymentMode == store.PaymentCredit && inv.CustomerID != "" {
		if _, err := s.Store.AdjustCustomerCredit(ctx, tx, inv.CustomerID, -inv.GrandTotal); err != nil {
			return Invoice{}, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return Invoice{}, err
	}

	if obs.CreditSettlementsTotal != nil && inv.PaymentMode == store.PaymentCredit {
		obs.CreditSettlementsTotal.Inc()
	}
	updated.Items = inv.Items
	return convertInvoice(updated), nil
}

// Void cancels an invoice, restoring stock and rolling back any outstanding
// credit it added.
func (s *Service) Void(ctx context.Context, id string) (Invoice, error) {
	inv, err := s.Store.GetInvoice(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Invoice{}, common.NotFound("invoice not found")
		}
		return Invoice{}, err
	}
	if inv.Status == store.StatusVoid {
		return Invoice{}, common.BadRequest("invoice is already void")
	}

	tx, err := s.Store.BeginTx(ctx)
	if err != nil {
		return Invoice{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	updated, err := s.Store.UpdateInvoiceStatus(ctx, tx, id, store.StatusVoid)
	if err != nil {
		return Invoice{}, err
	}
	for _, item := range inv.Items {
		if item.ProductID == "" {
			continue
		}
		if err := s.Store.AdjustProductStock(ctx, tx, item.ProductID, float64(item.Quantity)); err != nil {
			return Invoice{}, err
		}
	}
	if inv.PaymentMode == store.PaymentCredit && inv.Status == store.StatusUnpaid && inv.CustomerID != "" {
		if _, err := s.Store.AdjustCustomerCredit(ctx, tx, inv.CustomerID, -inv.GrandTotal); err != nil {
			return Invoice{}, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return Invoice{}, err
	}

	updated.Items = inv.Items
	return convertInvoice(updated), nil
}
