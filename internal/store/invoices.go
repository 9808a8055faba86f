package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// Invoice payment modes and statuses as persisted.
const (
	PaymentCash   = "cash"
	PaymentUPI    = "upi"
	PaymentCard   = "card"
	PaymentCredit = "credit"

	StatusPaid   = "paid"
	StatusUnpaid = "unpaid"
	StatusVoid   = "void"
)

// Invoice is a finalised bill.
type Invoice struct {
	ID           string
	Number       string
	CustomerID   string
	CustomerName string
	Subtotal     float64
	GSTTotal     float64
	GrandTotal   float64
	PaymentMode  string
	Status       string
	Notes        string
	CreatedAt    time.Time
	Items        []InvoiceItem
}

// InvoiceItem is a stored line with its computed amounts.
type InvoiceItem struct {
	ID        string
	ProductID string
	Name      string
	UnitPrice float64
	Quantity  int
	GSTRate   float64
	BaseTotal float64
	GSTAmount float64
	Total     float64
}

// InvoiceInput captures a bill ready to persist. Amounts are computed by the
// caller; the store writes them verbatim.
type InvoiceInput struct {
	Number       string
	CustomerID   string
	CustomerName string
	Subtotal     float64
	GSTTotal     float64
	GrandTotal   float64
	PaymentMode  string
	Status       string
	Notes        string
	Items        []InvoiceItem
}

// InvoiceFilter narrows invoice listings.
type InvoiceFilter struct {
	Status      string
	PaymentMode string
	CustomerID  string
	From        time.Time
	To          time.Time
	Limit       int
	Offset      int
}

const invoiceColumns = `id, number, customer_id, customer_name, subtotal, gst_total, grand_total, payment_mode, status, notes, created_at`

func scanInvoice(row pgx.Row) (Invoice, error) {
	var (
		inv        Invoice
		id         pgtype.UUID
		customerID pgtype.UUID
		notes      pgtype.Text
		createdAt  pgtype.Timestamptz
	)
	err := row.Scan(&id, &inv.Number, &customerID, &inv.CustomerName,
		&inv.Subtotal, &inv.GSTTotal, &inv.GrandTotal,
		&inv.PaymentMode, &inv.Status, &notes, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Invoice{}, ErrNotFound
		}
		return Invoice{}, err
	}
	inv.ID = uuidString(id)
	inv.CustomerID = uuidString(customerID)
	inv.Notes = textToString(notes)
	inv.CreatedAt = timeFromPG(createdAt)
	return inv, nil
}

// Advisory lock class for invoice numbering, paired with the year.
const invoiceNumberLockClass = 4201

// NextInvoiceSeq returns the next per-year invoice sequence number. A
// transaction-scoped advisory lock on the year serialises concurrent
// checkouts, so two transactions cannot draw the same sequence.
func (s *Store) NextInvoiceSeq(ctx context.Context, tx pgx.Tx, year int) (int, error) {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, invoiceNumberLockClass, year); err != nil {
		return 0, err
	}
	var max pgtype.Int4
	err := tx.QueryRow(ctx, `
		SELECT MAX(CAST(SPLIT_PART(number, '-', 3) AS INTEGER))
		FROM invoices
		WHERE number LIKE 'INV-' || $1::text || '-%'`,
		year).Scan(&max)
	if err != nil {
		return 0, err
	}
	if !max.Valid {
		return 1, nil
	}
	return int(max.Int32) + 1, nil
}

// InsertInvoice writes an invoice and its items inside the given transaction.
func (s *Store) InsertInvoice(ctx context.Context, tx pgx.Tx, in InvoiceInput) (Invoice, error) {
	var customerID any
	if in.CustomerID != "" {
		uid, err := toUUID(in.CustomerID)
		if err != nil {
			return Invoice{}, ErrNotFound
		}
		customerID = uid
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO invoices (number, customer_id, customer_name, subtotal, gst_total, grand_total, payment_mode, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+invoiceColumns,
		in.Number, customerID, in.CustomerName,
		in.Subtotal, in.GSTTotal, in.GrandTotal,
		in.PaymentMode, in.Status, toText(in.Notes))
	inv, err := scanInvoice(row)
	if err != nil {
		return Invoice{}, err
	}

	invoiceID, err := toUUID(inv.ID)
	if err != nil {
		return Invoice{}, err
	}
	for _, item := range in.Items {
		var productID any
		if item.ProductID != "" {
			pid, err := toUUID(item.ProductID)
			if err != nil {
				return Invoice{}, ErrNotFound
			}
			productID = pid
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO invoice_items (invoice_id, product_id, name, unit_price, quantity, gst_rate, base_total, gst_amount, total)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			invoiceID, productID, item.Name, item.UnitPrice, item.Quantity,
			item.GSTRate, item.BaseTotal, item.GSTAmount, item.Total)
		if err != nil {
			return Invoice{}, err
		}
	}
	inv.Items = in.Items
	return inv, nil
}

// GetInvoice fetches an invoice with its items.
func (s *Store) GetInvoice(ctx context.Context, id string) (Invoice, error) {
	uid, err := toUUID(id)
	if err != nil {
		return Invoice{}, ErrNotFound
	}
	row := s.Pool.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, uid)
	inv, err := scanInvoice(row)
	if err != nil {
		return Invoice{}, err
	}
	inv.Items, err = s.listInvoiceItems(ctx, uid)
	if err != nil {
		return Invoice{}, err
	}
	return inv, nil
}

func (s *Store) listInvoiceItems(ctx context.Context, invoiceID pgtype.UUID) ([]InvoiceItem, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, product_id, name, unit_price, quantity, gst_rate, base_total, gst_amount, total
		FROM invoice_items
		WHERE invoice_id = $1
		ORDER BY id`,
		invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]InvoiceItem, 0)
	for rows.Next() {
		var (
			item      InvoiceItem
			id        pgtype.UUID
			productID pgtype.UUID
		)
		err := rows.Scan(&id, &productID, &item.Name, &item.UnitPrice, &item.Quantity,
			&item.GSTRate, &item.BaseTotal, &item.GSTAmount, &item.Total)
		if err != nil {
			return nil, err
		}
		item.ID = uuidString(id)
		item.ProductID = uuidString(productID)
		items = append(items, item)
	}
	return items, rows.Err()
}

// ListAllInvoiceItems returns every stored line item keyed by invoice id,
// for backup payloads that embed items without an N+1 scan.
func (s *Store) ListAllInvoiceItems(ctx context.Context) (map[string][]InvoiceItem, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT invoice_id, id, product_id, name, unit_price, quantity, gst_rate, base_total, gst_amount, total
		FROM invoice_items
		ORDER BY invoice_id, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[string][]InvoiceItem)
	for rows.Next() {
		var (
			item      InvoiceItem
			invoiceID pgtype.UUID
			id        pgtype.UUID
			productID pgtype.UUID
		)
		err := rows.Scan(&invoiceID, &id, &productID, &item.Name, &item.UnitPrice, &item.Quantity,
			&item.GSTRate, &item.BaseTotal, &item.GSTAmount, &item.Total)
		if err != nil {
			return nil, err
		}
		item.ID = uuidString(id)
		item.ProductID = uuidString(productID)
		key := uuidString(invoiceID)
		items[key] = append(items[key], item)
	}
	return items, rows.Err()
}

// ListInvoices returns invoices without items, newest first.
func (s *Store) ListInvoices(ctx context.Context, f InvoiceFilter) ([]Invoice, error) {
	var customerID any
	if f.CustomerID != "" {
		uid, err := toUUID(f.CustomerID)
		if err != nil {
			return []Invoice{}, nil
		}
		customerID = uid
	}
	rows, err := s.Pool.Query(ctx, `
		SELECT `+invoiceColumns+`
		FROM invoices
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR payment_mode = $2)
		  AND ($3::uuid IS NULL OR customer_id = $3)
		  AND ($4::timestamptz IS NULL OR created_at >= $4)
		  AND ($5::timestamptz IS NULL OR created_at < $5)
		ORDER BY created_at DESC
		LIMIT $6 OFFSET $7`,
		f.Status, f.PaymentMode, customerID, nullableTime(f.From), nullableTime(f.To), f.Limit, f.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invoices := make([]Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// CountInvoices returns the number of invoices matching the filter.
func (s *Store) CountInvoices(ctx context.Context, f InvoiceFilter) (int64, error) {
	var customerID any
	if f.CustomerID != "" {
		uid, err := toUUID(f.CustomerID)
		if err != nil {
			return 0, nil
		}
		customerID = uid
	}
	var total int64
	err := s.Pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM invoices
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR payment_mode = $2)
		  AND ($3::uuid IS NULL OR customer_id = $3)
		  AND ($4::timestamptz IS NULL OR created_at >= $4)
		  AND ($5::timestamptz IS NULL OR created_at < $5)`,
		f.Status, f.PaymentMode, customerID, nullableTime(f.From), nullableTime(f.To)).Scan(&total)
	return total, err
}

// UpdateInvoiceStatus flips an invoice's status inside the transaction and
// returns the updated row without items.
func (s *Store) UpdateInvoiceStatus(ctx context.Context, tx pgx.Tx, id, status string) (Invoice, error) {
	uid, err := toUUID(id)
	if err != nil {
		return Invoice{}, ErrNotFound
	}
	row := tx.QueryRow(ctx, `
		UPDATE invoices
		SET status = $2
		WHERE id = $1
		RETURNING `+invoiceColumns,
		uid, status)
	return scanInvoice(row)
}

// InvoiceLine is a flattened line for tax reporting.
type InvoiceLine struct {
	InvoiceID string
	BaseTotal float64
	GSTAmount float64
	GSTRate   float64
}

// ListInvoiceLinesBetween returns the lines of all non-void invoices created
// in [from, to), ordered by invoice.
func (s *Store) ListInvoiceLinesBetween(ctx context.Context, from, to time.Time) ([]InvoiceLine, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT ii.invoice_id, ii.base_total, ii.gst_amount, ii.gst_rate
		FROM invoice_items ii
		JOIN invoices i ON i.id = ii.invoice_id
		WHERE i.status <> $1
		  AND i.created_at >= $2
		  AND i.created_at < $3
		ORDER BY ii.invoice_id, ii.id`,
		StatusVoid, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]InvoiceLine, 0)
	for rows.Next() {
		var (
			line InvoiceLine
			id   pgtype.UUID
		)
		if err := rows.Scan(&id, &line.BaseTotal, &line.GSTAmount, &line.GSTRate); err != nil {
			return nil, err
		}
		line.InvoiceID = uuidString(id)
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
