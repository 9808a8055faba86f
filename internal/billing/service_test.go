package billing

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/smartdukaan/backend-dukaan/internal/common"
	"github.com/smartdukaan/backend-dukaan/internal/gst"
	"github.com/smartdukaan/backend-dukaan/internal/store"
)

// fakeTx satisfies pgx.Tx for the methods the service calls; everything else
// panics via the nil embedded interface.
type fakeTx struct{ pgx.Tx }

func (fakeTx) Commit(context.Context) error   { return nil }
func (fakeTx) Rollback(context.Context) error { return nil }

type stubStore struct {
	customers map[string]store.Customer
	products  map[string]store.Product
	invoices  map[string]store.Invoice

	seq       int
	inserted  *store.InvoiceInput
	stockAdj  map[string]float64
	creditAdj map[string]float64
}

func newStubStore() *stubStore {
	return &stubStore{
		customers: map[string]store.Customer{},
		products:  map[string]store.Product{},
		invoices:  map[string]store.Invoice{},
		stockAdj:  map[string]float64{},
		creditAdj: map[string]float64{},
	}
}

func (s *stubStore) BeginTx(ctx context.Context) (pgx.Tx, error) { return fakeTx{}, nil }

func (s *stubStore) GetCustomer(ctx context.Context, id string) (store.Customer, error) {
	c, ok := s.customers[id]
	if !ok {
		return store.Customer{}, store.ErrNotFound
	}
	return c, nil
}

func (s *stubStore) GetProduct(ctx context.Context, id string) (store.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return store.Product{}, store.ErrNotFound
	}
	return p, nil
}

func (s *stubStore) GetInvoice(ctx context.Context, id string) (store.Invoice, error) {
	inv, ok := s.invoices[id]
	if !ok {
		return store.Invoice{}, store.ErrNotFound
	}
	return inv, nil
}

func (s *stubStore) GetVendor(ctx context.Context) (store.Vendor, error) {
	return store.Vendor{}, store.ErrNotFound
}

func (s *stubStore) ListInvoices(ctx context.Context, f store.InvoiceFilter) ([]store.Invoice, error) {
	return nil, nil
}

func (s *stubStore) CountInvoices(ctx context.Context, f store.InvoiceFilter) (int64, error) {
	return 0, nil
}

func (s *stubStore) NextInvoiceSeq(ctx context.Context, tx pgx.Tx, year int) (int, error) {
	s.seq++
	return s.seq, nil
}

func (s *stubStore) InsertInvoice(ctx context.Context, tx pgx.Tx, in store.InvoiceInput) (store.Invoice, error) {
	s.inserted = &in
	inv := store.Invoice{
		ID:           "inv-1",
		Number:       in.Number,
		CustomerID:   in.CustomerID,
		CustomerName: in.CustomerName,
		Subtotal:     in.Subtotal,
		GSTTotal:     in.GSTTotal,
		GrandTotal:   in.GrandTotal,
		PaymentMode:  in.PaymentMode,
		Status:       in.Status,
		Items:        in.Items,
	}
	s.invoices[inv.ID] = inv
	return inv, nil
}

func (s *stubStore) UpdateInvoiceStatus(ctx context.Context, tx pgx.Tx, id, status string) (store.Invoice, error) {
	inv, ok := s.invoices[id]
	if !ok {
		return store.Invoice{}, store.ErrNotFound
	}
	inv.Status = status
	s.invoices[id] = inv
	return inv, nil
}

func (s *stubStore) AdjustProductStock(ctx context.Context, tx pgx.Tx, id string, delta float64) error {
	s.stockAdj[id] += delta
	return nil
}

func (s *stubStore) AdjustCustomerCredit(ctx context.Context, tx pgx.Tx, id string, delta float64) (float64, error) {
	s.creditAdj[id] += delta
	c := s.customers[id]
	c.CreditBalance += delta
	s.customers[id] = c
	return c.CreditBalance, nil
}

func fixedNow() time.Time {
	return time.Date(2026, time.July, 15, 12, 0, 0, 0, time.UTC)
}

func newService(st *stubStore) *Service {
	return &Service{Store: st, Resolver: gst.DefaultResolver(), Now: fixedNow}
}

func TestCreateCreditSale(t *testing.T) {
	st := newStubStore()
	st.customers["c1"] = store.Customer{ID: "c1", Name: "Ramesh"}
	svc := newService(st)

	rate := 18.0
	inv, err := svc.Create(context.Background(), CreateInput{
		CustomerID:  "c1",
		PaymentMode: store.PaymentCredit,
		Items:       []LineInput{{Name: "Toor Dal 1kg", UnitPrice: 100, Quantity: 2, GSTRate: &rate}},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if inv.Number != "INV-2026-0001" {
		t.Fatalf("expected first number of the year, got %q", inv.Number)
	}
	if inv.Status != store.StatusUnpaid {
		t.Fatalf("credit sale must start unpaid, got %q", inv.Status)
	}
	if inv.Subtotal != 200 || inv.GSTTotal != 36 || inv.GrandTotal != 236 {
		t.Fatalf("unexpected totals: %+v", inv)
	}
	if got := st.creditAdj["c1"]; got != 236 {
		t.Fatalf("expected customer credit raised by 236, got %v", got)
	}
	if inv.CustomerName != "Ramesh" {
		t.Fatalf("expected customer name from the record, got %q", inv.CustomerName)
	}
}

func TestCreateCashSaleUsesProductDefaults(t *testing.T) {
	st := newStubStore()
	st.products["p1"] = store.Product{ID: "p1", Name: "Amul Milk 500ml", SellingPrice: 25, GSTRate: 0}
	svc := newService(st)

	inv, err := svc.Create(context.Background(), CreateInput{
		PaymentMode: store.PaymentCash,
		Items:       []LineInput{{ProductID: "p1", Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if inv.Status != store.StatusPaid {
		t.Fatalf("cash sale must be paid on the spot, got %q", inv.Status)
	}
	if len(inv.Items) != 1 || inv.Items[0].Name != "Amul Milk 500ml" || inv.Items[0].UnitPrice != 25 {
		t.Fatalf("expected name and price from the product, got %+v", inv.Items)
	}
	if inv.GrandTotal != 75 {
		t.Fatalf("expected 75 at rate 0, got %v", inv.GrandTotal)
	}
	if got := st.stockAdj["p1"]; got != -3 {
		t.Fatalf("expected stock reduced by 3, got %v", got)
	}
	if len(st.creditAdj) != 0 {
		t.Fatalf("cash sale must not touch credit, got %v", st.creditAdj)
	}
}

func TestCreateCreditRequiresCustomer(t *testing.T) {
	svc := newService(newStubStore())
	_, err := svc.Create(context.Background(), CreateInput{
		PaymentMode: store.PaymentCredit,
		Items:       []LineInput{{Name: "Toor Dal", UnitPrice: 100, Quantity: 1}},
	})
	if err == nil || !common.IsAppError(err) {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestMarkPaidSettlesCredit(t *testing.T) {
	st := newStubStore()
	st.customers["c1"] = store.Customer{ID: "c1", Name: "Ramesh", CreditBalance: 236}
	st.invoices["inv-1"] = store.Invoice{
		ID: "inv-1", CustomerID: "c1", GrandTotal: 236,
		PaymentMode: store.PaymentCredit, Status: store.StatusUnpaid,
	}
	svc := newService(st)

	inv, err := svc.MarkPaid(context.Background(), "inv-1")
	if err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}
	if inv.Status != store.StatusPaid {
		t.Fatalf("expected paid, got %q", inv.Status)
	}
	if got := st.creditAdj["c1"]; got != -236 {
		t.Fatalf("expected credit reduced by the invoice total, got %v", got)
	}
}

func TestMarkPaidRejectsSettledInvoice(t *testing.T) {
	st := newStubStore()
	st.invoices["inv-1"] = store.Invoice{ID: "inv-1", PaymentMode: store.PaymentCash, Status: store.StatusPaid}
	svc := newService(st)

	if _, err := svc.MarkPaid(context.Background(), "inv-1"); err == nil || !common.IsAppError(err) {
		t.Fatalf("expected bad request for a paid invoice, got %v", err)
	}
}

func TestVoidRestoresStockAndCredit(t *testing.T) {
	st := newStubStore()
	st.customers["c1"] = store.Customer{ID: "c1", Name: "Ramesh", CreditBalance: 236}
	st.invoices["inv-1"] = store.Invoice{
		ID: "inv-1", CustomerID: "c1", GrandTotal: 236,
		PaymentMode: store.PaymentCredit, Status: store.StatusUnpaid,
		Items: []store.InvoiceItem{{ProductID: "p1", Name: "Toor Dal 1kg", Quantity: 2}},
	}
	svc := newService(st)

	inv, err := svc.Void(context.Background(), "inv-1")
	if err != nil {
		t.Fatalf("void failed: %v", err)
	}
	if inv.Status != store.StatusVoid {
		t.Fatalf("expected void, got %q", inv.Status)
	}
	if got := st.stockAdj["p1"]; got != 2 {
		t.Fatalf("expected stock restored by 2, got %v", got)
	}
	if got := st.creditAdj["c1"]; got != -236 {
		t.Fatalf("expected unpaid credit rolled back, got %v", got)
	}
}

func TestVoidPaidCashLeavesCreditAlone(t *testing.T) {
	st := newStubStore()
	st.invoices["inv-1"] = store.Invoice{
		ID: "inv-1", GrandTotal: 75,
		PaymentMode: store.PaymentCash, Status: store.StatusPaid,
		Items: []store.InvoiceItem{{ProductID: "p1", Name: "Amul Milk 500ml", Quantity: 3}},
	}
	svc := newService(st)

	if _, err := svc.Void(context.Background(), "inv-1"); err != nil {
		t.Fatalf("void failed: %v", err)
	}
	if got := st.stockAdj["p1"]; got != 3 {
		t.Fatalf("expected stock restored by 3, got %v", got)
	}
	if len(st.creditAdj) != 0 {
		t.Fatalf("cash void must not touch credit, got %v", st.creditAdj)
	}
}
