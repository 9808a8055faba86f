package report

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/smartdukaan/backend-dukaan/internal/obs"
	"github.com/smartdukaan/backend-dukaan/internal/store"
)

// Source is the slice of the persistence layer exports read from.
type Source interface {
	ListProducts(ctx context.Context, search string, limit, offset int) ([]store.Product, error)
	ListCustomers(ctx context.Context, search string, limit, offset int) ([]store.Customer, error)
	ListInvoices(ctx context.Context, f store.InvoiceFilter) ([]store.Invoice, error)
	ListAllInvoiceItems(ctx context.Context) (map[string][]store.InvoiceItem, error)
	ListExpenses(ctx context.Context, from, to time.Time, limit, offset int) ([]store.Expense, error)
}

// Exporter streams shop data as CSV or a full JSON backup.
type Exporter struct {
	Store Source
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func countExport(entity string) {
	if obs.ExportsTotal != nil {
		obs.ExportsTotal.WithLabelValues(entity).Inc()
	}
}

// ProductsCSV writes the full catalog.
func (e *Exporter) ProductsCSV(ctx context.Context, w io.Writer) error {
	products, err := e.Store.ListProducts(ctx, "", 100000, 0)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"sku", "name", "name_hindi", "category", "unit", "cost_price", "selling_price", "gst_rate", "stock"}); err != nil {
		return err
	}
	for _, p := range products {
		record := []string{p.SKU, p.Name, p.NameHindi, p.Category, p.Unit,
			money(p.CostPrice), money(p.SellingPrice),
			strconv.FormatFloat(p.GSTRate, 'f', -1, 64),
			strconv.FormatFloat(p.Stock, 'f', -1, 64)}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	countExport("products")
	return cw.Error()
}

// InvoicesCSV writes invoices in [from, to). Zero bounds are open-ended.
func (e *Exporter) InvoicesCSV(ctx context.Context, w io.Writer, from, to time.Time) error {
	invoices, err := e.Store.ListInvoices(ctx, store.InvoiceFilter{From: from, To: to, Limit: 100000})
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"number", "date", "customer", "subtotal", "gst_total", "grand_total", "payment_mode", "status"}); err != nil {
		return err
	}
	for _, inv := range invoices {
		record := []string{inv.Number, inv.CreatedAt.Format("2006-01-02"), inv.CustomerName,
			money(inv.Subtotal), money(inv.GSTTotal), money(inv.GrandTotal),
			inv.PaymentMode, inv.Status}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	countExport("invoices")
	return cw.Error()
}

// CustomersCSV writes the credit book.
func (e *Exporter) CustomersCSV(ctx context.Context, w io.Writer) error {
	customers, err := e.Store.ListCustomers(ctx, "", 100000, 0)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "phone", "address", "credit_balance"}); err != nil {
		return err
	}
	for _, c := range customers {
		if err := cw.Write([]string{c.Name, c.Phone, c.Address, money(c.CreditBalance)}); err != nil {
			return err
		}
	}
	cw.Flush()
	countExport("customers")
	return cw.Error()
}

// ExpensesCSV writes expenses in [from, to).
func (e *Exporter) ExpensesCSV(ctx context.Context, w io.Writer, from, to time.Time) error {
	expenses, err := e.Store.ListExpenses(ctx, from, to, 100000, 0)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "category", "amount", "note"}); err != nil {
		return err
	}
	for _, exp := range expenses {
		if err := cw.Write([]string{exp.SpentOn.Format("2006-01-02"), exp.Category, money(exp.Amount), exp.Note}); err != nil {
			return err
		}
	}
	cw.Flush()
	countExport("expenses")
	return cw.Error()
}

// Backup writes every entity as one JSON document, for off-device safekeeping.
func (e *Exporter) Backup(ctx context.Context, w io.Writer) error {
	products, err := e.Store.ListProducts(ctx, "", 100000, 0)
	if err != nil {
		return err
	}
	customers, err := e.Store.ListCustomers(ctx, "", 100000, 0)
	if err != nil {
		return err
	}
	invoices, err := e.Store.ListInvoices(ctx, store.InvoiceFilter{Limit: 100000})
	if err != nil {
		return err
	}
	// Listings omit line items; fold them back in so the backup restores
	// complete invoices.
	itemsByInvoice, err := e.Store.ListAllInvoiceItems(ctx)
	if err != nil {
		return err
	}
	for i := range invoices {
		invoices[i].Items = itemsByInvoice[invoices[i].ID]
	}
	expenses, err := e.Store.ListExpenses(ctx, time.Time{}, time.Time{}, 100000, 0)
	if err != nil {
		return err
	}
	backup := map[string]any{
		"exported_at": time.Now().UTC(),
		"products":    products,
		"customers":   customers,
		"invoices":    invoices,
		"expenses":    expenses,
	}
	countExport("backup")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(backup)
}
