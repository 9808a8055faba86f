package report

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/smartdukaan/backend-dukaan/internal/store"
)

type stubSource struct {
	products  []store.Product
	customers []store.Customer
	invoices  []store.Invoice
	items     map[string][]store.InvoiceItem
	expenses  []store.Expense
}

func (s *stubSource) ListProducts(ctx context.Context, search string, limit, offset int) ([]store.Product, error) {
	return s.products, nil
}

func (s *stubSource) ListCustomers(ctx context.Context, search string, limit, offset int) ([]store.Customer, error) {
	return s.customers, nil
}

func (s *stubSource) ListInvoices(ctx context.Context, f store.InvoiceFilter) ([]store.Invoice, error) {
	return s.invoices, nil
}

func (s *stubSource) ListAllInvoiceItems(ctx context.Context) (map[string][]store.InvoiceItem, error) {
	return s.items, nil
}

func (s *stubSource) ListExpenses(ctx context.Context, from, to time.Time, limit, offset int) ([]store.Expense, error) {
	return s.expenses, nil
}

func TestBackupEmbedsInvoiceItems(t *testing.T) {
	src := &stubSource{
		invoices: []store.Invoice{
			{ID: "inv-1", Number: "INV-2026-0001", GrandTotal: 236},
			{ID: "inv-2", Number: "INV-2026-0002", GrandTotal: 50},
		},
		items: map[string][]store.InvoiceItem{
			"inv-1": {
				{Name: "Toor Dal 1kg", UnitPrice: 100, Quantity: 2, GSTRate: 18, BaseTotal: 200, GSTAmount: 36, Total: 236},
			},
		},
	}
	var buf bytes.Buffer
	if err := (&Exporter{Store: src}).Backup(context.Background(), &buf); err != nil {
		t.Fatalf("backup failed: %v", err)
	}

	var payload struct {
		Invoices []store.Invoice `json:"invoices"`
	}
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("backup is not valid JSON: %v", err)
	}
	if len(payload.Invoices) != 2 {
		t.Fatalf("expected 2 invoices, got %d", len(payload.Invoices))
	}
	if len(payload.Invoices[0].Items) != 1 {
		t.Fatalf("expected invoice items in the backup, got %+v", payload.Invoices[0])
	}
	if payload.Invoices[0].Items[0].Name != "Toor Dal 1kg" {
		t.Fatalf("unexpected item: %+v", payload.Invoices[0].Items[0])
	}
	if payload.Invoices[1].Items != nil {
		t.Fatalf("expected no items for the second invoice, got %+v", payload.Invoices[1].Items)
	}
}

func TestInvoicesCSVFormatsMoney(t *testing.T) {
	src := &stubSource{
		invoices: []store.Invoice{
			{Number: "INV-2026-0001", CustomerName: "Ramesh", Subtotal: 200, GSTTotal: 36,
				GrandTotal: 236, PaymentMode: "cash", Status: "paid",
				CreatedAt: time.Date(2026, 7, 15, 10, 0, 0, 0, time.UTC)},
		},
	}
	var buf bytes.Buffer
	if err := (&Exporter{Store: src}).InvoicesCSV(context.Background(), &buf, time.Time{}, time.Time{}); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %q", buf.String())
	}
	if lines[1] != "INV-2026-0001,2026-07-15,Ramesh,200.00,36.00,236.00,cash,paid" {
		t.Fatalf("unexpected row: %q", lines[1])
	}
}
