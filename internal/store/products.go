package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("store: not found")

// Product is a catalog row.
type Product struct {
	ID           string
	SKU          string
	Name         string
	NameHindi    string
	Category     string
	Unit         string
	CostPrice    float64
	SellingPrice float64
	GSTRate      float64
	Stock        float64
	LowStockAt   float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProductInput captures fields for inserts and updates.
type ProductInput struct {
	SKU          string
	Name         string
	NameHindi    string
	Category     string
	Unit         string
	CostPrice    float64
	SellingPrice float64
	GSTRate      float64
	Stock        float64
	LowStockAt   float64
}

const productColumns = `id, sku, name, name_hindi, category, unit, cost_price, selling_price, gst_rate, stock, low_stock_at, created_at, updated_at`

func scanProduct(row pgx.Row) (Product, error) {
	var (
		p         Product
		id        pgtype.UUID
		nameHindi pgtype.Text
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	err := row.Scan(&id, &p.SKU, &p.Name, &nameHindi, &p.Category, &p.Unit,
		&p.CostPrice, &p.SellingPrice, &p.GSTRate, &p.Stock, &p.LowStockAt,
		&createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	p.ID = uuidString(id)
	p.NameHindi = textToString(nameHindi)
	p.CreatedAt = timeFromPG(createdAt)
	p.UpdatedAt = timeFromPG(updatedAt)
	return p, nil
}

// CreateProduct inserts a product and returns the stored row.
func (s *Store) CreateProduct(ctx context.Context, in ProductInput) (Product, error) {
	row := s.Pool.QueryRow(ctx, `
		INSERT INTO products (sku, name, name_hindi, category, unit, cost_price, selling_price, gst_rate, stock, low_stock_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+productColumns,
		in.SKU, in.Name, toText(in.NameHindi), in.Category, in.Unit,
		in.CostPrice, in.SellingPrice, in.GSTRate, in.Stock, in.LowStockAt)
	return scanProduct(row)
}

// GetProduct fetches a product by id.
func (s *Store) GetProduct(ctx context.Context, id string) (Product, error) {
	uid, err := toUUID(id)
	if err != nil {
		return Product{}, ErrNotFound
	}
	row := s.Pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, uid)
	return scanProduct(row)
}

// GetProductBySKU fetches a product by its SKU.
func (s *Store) GetProductBySKU(ctx context.Context, sku string) (Product, error) {
	row := s.Pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE sku = $1`, sku)
	return scanProduct(row)
}

// ListProducts returns products matching an optional search term, newest first.
// The search matches name, Hindi name, SKU and category, case-insensitively.
func (s *Store) ListProducts(ctx context.Context, search string, limit, offset int) ([]Product, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE $1 = ''
		   OR name ILIKE '%' || $1 || '%'
		   OR COALESCE(name_hindi, '') ILIKE '%' || $1 || '%'
		   OR sku ILIKE '%' || $1 || '%'
		   OR category ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		search, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// CountProducts returns the number of products matching the search term.
func (s *Store) CountProducts(ctx context.Context, search string) (int64, error) {
	var total int64
	err := s.Pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM products
		WHERE $1 = ''
		   OR name ILIKE '%' || $1 || '%'
		   OR COALESCE(name_hindi, '') ILIKE '%' || $1 || '%'
		   OR sku ILIKE '%' || $1 || '%'
		   OR category ILIKE '%' || $1 || '%'`,
		search).Scan(&total)
	return total, err
}

// UpdateProduct overwrites a product's mutable fields.
func (s *Store) UpdateProduct(ctx context.Context, id string, in ProductInput) (Product, error) {
	uid, err := toUUID(id)
	if err != nil {
		return Product{}, ErrNotFound
	}
	row := s.Pool.QueryRow(ctx, `
		UPDATE products
		SET sku = $2, name = $3, name_hindi = $4, category = $5, unit = $6,
		    cost_price = $7, selling_price = $8, gst_rate = $9, stock = $10,
		    low_stock_at = $11, updated_at = NOW()
		WHERE id = $1
		RETURNING `+productColumns,
		uid, in.SKU, in.Name, toText(in.NameHindi), in.Category, in.Unit,
		in.CostPrice, in.SellingPrice, in.GSTRate, in.Stock, in.LowStockAt)
	return scanProduct(row)
}

// AdjustProductStock applies a delta to the stock level, clamping at zero.
func (s *Store) AdjustProductStock(ctx context.Context, tx pgx.Tx, id string, delta float64) error {
	uid, err := toUUID(id)
	if err != nil {
		return ErrNotFound
	}
	tag, err := tx.Exec(ctx, `
		UPDATE products
		SET stock = GREATEST(stock + $2, 0), updated_at = NOW()
		WHERE id = $1`,
		uid, delta)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProduct removes a product.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	uid, err := toUUID(id)
	if err != nil {
		return ErrNotFound
	}
	tag, err := s.Pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, uid)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListLowStockProducts returns products at or below their low-stock threshold.
func (s *Store) ListLowStockProducts(ctx context.Context) ([]Product, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE low_stock_at > 0 AND stock <= low_stock_at
		ORDER BY stock ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
