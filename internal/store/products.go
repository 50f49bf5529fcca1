package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aldeenj/veilflow/internal/model"
)

const productColumns = `id, name, price, category, fabric, sku, created_at, updated_at`

// AddProduct persists a new product, assigning its id and timestamps.
// The SKU must already be generated. Fields are written as given; callers
// validate first so no partial or invalid product ever lands in the store.
func AddProduct(ctx context.Context, db *sql.DB, p *model.Product) (*model.Product, error) {
	p.ID = uuid.NewString()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := db.ExecContext(ctx,
		`INSERT INTO products (id, name, price, category, fabric, sku, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Price.String(), p.Category, p.Fabric, p.SKU, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("adding product: %w", err)
	}

	return GetProduct(ctx, db, p.ID)
}

// GetProduct returns a product by ID, or nil if it doesn't exist.
func GetProduct(ctx context.Context, db *sql.DB, id string) (*model.Product, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ?`, id,
	)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting product: %w", err)
	}
	return p, nil
}

// ListProducts returns all products in creation order.
func ListProducts(ctx context.Context, db *sql.DB) ([]model.Product, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// SearchProducts returns products whose name or SKU contains the query,
// case-insensitively, in creation order.
func SearchProducts(ctx context.Context, db *sql.DB, query string) ([]model.Product, error) {
	pattern := "%" + query + "%"
	rows, err := db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE name LIKE ? OR sku LIKE ? ORDER BY rowid`,
		pattern, pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("searching products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// ProductsCreatedBetween returns products created in [start, end].
func ProductsCreatedBetween(ctx context.Context, db *sql.DB, start, end time.Time) ([]model.Product, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE created_at >= ? AND created_at <= ? ORDER BY rowid`,
		start.UTC(), end.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("listing products by date: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// ProductsThisMonth returns products created in the current calendar month.
func ProductsThisMonth(ctx context.Context, db *sql.DB) ([]model.Product, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return ProductsCreatedBetween(ctx, db, start, end)
}

// CountProducts returns the total number of products.
func CountProducts(ctx context.Context, db *sql.DB) (int64, error) {
	var count int64
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting products: %w", err)
	}
	return count, nil
}

// UpdateProduct updates a product's editable fields. The SKU and creation
// time are immutable; updated_at is bumped. Returns the updated product,
// or nil if the id doesn't exist.
func UpdateProduct(ctx context.Context, db *sql.DB, id, name string, price decimal.Decimal, category, fabric string) (*model.Product, error) {
	_, err := db.ExecContext(ctx,
		`UPDATE products SET name = ?, price = ?, category = ?, fabric = ?, updated_at = ?
		 WHERE id = ?`,
		name, price.String(), category, fabric, time.Now().UTC(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating product: %w", err)
	}
	return GetProduct(ctx, db, id)
}

// DeleteProduct removes a product. The sequence counter behind its SKU is
// never decremented or reused.
func DeleteProduct(ctx context.Context, db *sql.DB, id string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*model.Product, error) {
	p := &model.Product{}
	var price string
	err := row.Scan(&p.ID, &p.Name, &price, &p.Category, &p.Fabric, &p.SKU, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("parsing stored price %q: %w", price, err)
	}
	return p, nil
}

func scanProducts(rows *sql.Rows) ([]model.Product, error) {
	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}
