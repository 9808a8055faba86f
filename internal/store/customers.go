package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// Customer is a credit-book entry for a repeat buyer.
type Customer struct {
	ID            string
	Name          string
	Phone         string
	Address       string
	CreditBalance float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CustomerInput captures fields for inserts and updates.
type CustomerInput struct {
	Name    string
	Phone   string
	Address string
}

const customerColumns = `id, name, phone, address, credit_balance, created_at, updated_at`

func scanCustomer(row pgx.Row) (Customer, error) {
	var (
		c         Customer
		id        pgtype.UUID
		phone     pgtype.Text
		address   pgtype.Text
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	err := row.Scan(&id, &c.Name, &phone, &address, &c.CreditBalance, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Customer{}, ErrNotFound
		}
		return Customer{}, err
	}
	c.ID = uuidString(id)
	c.Phone = textToString(phone)
	c.Address = textToString(address)
	c.CreatedAt = timeFromPG(createdAt)
	c.UpdatedAt = timeFromPG(updatedAt)
	return c, nil
}

// CreateCustomer inserts a customer and returns the stored row.
func (s *Store) CreateCustomer(ctx context.Context, in CustomerInput) (Customer, error) {
	row := s.Pool.QueryRow(ctx, `
		INSERT INTO customers (name, phone, address)
		VALUES ($1, $2, $3)
		RETURNING `+customerColumns,
		in.Name, toText(in.Phone), toText(in.Address))
	return scanCustomer(row)
}

// GetCustomer fetches a customer by id.
func (s *Store) GetCustomer(ctx context.Context, id string) (Customer, error) {
	uid, err := toUUID(id)
	if err != nil {
		return Customer{}, ErrNotFound
	}
	row := s.Pool.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, uid)
	return scanCustomer(row)
}

// ListCustomers returns customers matching an optional name or phone search.
func (s *Store) ListCustomers(ctx context.Context, search string, limit, offset int) ([]Customer, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE $1 = ''
		   OR name ILIKE '%' || $1 || '%'
		   OR COALESCE(phone, '') LIKE '%' || $1 || '%'
		ORDER BY name ASC
		LIMIT $2 OFFSET $3`,
		search, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// CountCustomers returns the number of customers matching the search term.
func (s *Store) CountCustomers(ctx context.Context, search string) (int64, error) {
	var total int64
	err := s.Pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM customers
		WHERE $1 = ''
		   OR name ILIKE '%' || $1 || '%'
		   OR COALESCE(phone, '') LIKE '%' || $1 || '%'`,
		search).Scan(&total)
	return total, err
}

// ListCustomersWithCredit returns customers carrying an outstanding balance,
// largest debt first.
func (s *Store) ListCustomersWithCredit(ctx context.Context) ([]Customer, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE credit_balance > 0
		ORDER BY credit_balance DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// UpdateCustomer overwrites a customer's mutable fields.
func (s *Store) UpdateCustomer(ctx context.Context, id string, in CustomerInput) (Customer, error) {
	uid, err := toUUID(id)
	if err != nil {
		return Customer{}, ErrNotFound
	}
	row := s.Pool.QueryRow(ctx, `
		UPDATE customers
		SET name = $2, phone = $3, address = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING `+customerColumns,
		uid, in.Name, toText(in.Phone), toText(in.Address))
	return scanCustomer(row)
}

// DeleteCustomer removes a customer. Invoices keep the customer name they
// were issued with, so deletion does not rewrite history.
func (s *Store) DeleteCustomer(ctx context.Context, id string) error {
	uid, err := toUUID(id)
	if err != nil {
		return ErrNotFound
	}
	tag, err := s.Pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, uid)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustCustomerCredit applies a delta to the credit balance inside a
// transaction, clamping at zero. Returns the new balance.
func (s *Store) AdjustCustomerCredit(ctx context.Context, tx pgx.Tx, id string, delta float64) (float64, error) {
	uid, err := toUUID(id)
	if err != nil {
		return 0, ErrNotFound
	}
	var balance float64
	err = tx.QueryRow(ctx, `
		UPDATE customers
		SET credit_balance = GREATEST(credit_balance + $2, 0), updated_at = NOW()
		WHERE id = $1
		RETURNING credit_balance`,
		uid, delta).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return balance, nil
}
