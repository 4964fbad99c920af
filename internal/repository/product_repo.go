package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"kiosco/internal/mapper"
	"kiosco/internal/model"
	"kiosco/internal/storage"
)

// searchLimit caps search results: the UI renders a short pick list, not a
// paginated catalog.
const searchLimit = 25

// ProductRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete SQLite
// implementation, enabling clean unit testing via stubs.
type ProductRepository interface {
	Search(ctx context.Context, query string) ([]model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	Create(ctx context.Context, p model.Product) error
	Update(ctx context.Context, p model.Product) error
}

type productRepo struct{ h *storage.Handle }

func NewProductRepository(h *storage.Handle) ProductRepository { return &productRepo{h: h} }

// Search matches the name as a substring (case sensitivity follows the
// store's collation) or the barcode exactly. No match is an empty slice,
// never an error.
func (r *productRepo) Search(ctx context.Context, query string) ([]model.Product, error) {
	var rows []mapper.ProductRow
	err := r.h.Do(ctx, func(db *sqlx.DB) error {
		return db.SelectContext(ctx, &rows,
			`SELECT * FROM products WHERE name LIKE ? OR barcode = ? LIMIT ?`,
			"%"+query+"%", query, searchLimit)
	})
	if err != nil {
		return nil, err
	}
	return productDomains(rows), nil
}

func (r *productRepo) List(ctx context.Context) ([]model.Product, error) {
	var rows []mapper.ProductRow
	err := r.h.Do(ctx, func(db *sqlx.DB) error {
		return db.SelectContext(ctx, &rows, `SELECT * FROM products`)
	})
	if err != nil {
		return nil, err
	}
	return productDomains(rows), nil
}

// Create inserts a new product; the id is generated and the timestamps are
// server-set, so both are ignored on the way in.
func (r *productRepo) Create(ctx context.Context, p model.Product) error {
	return r.h.Do(ctx, func(db *sqlx.DB) error {
		_, err := db.ExecContext(ctx,
			`INSERT INTO products (name, description, barcode, cost_cents, price_cents, stock)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			p.Name, p.Description, p.Barcode,
			mapper.ToCents(p.Cost), mapper.ToCents(p.Price), p.Stock)
		return err
	})
}

// Update overwrites every mutable field of the row keyed by id. No
// optimistic-concurrency check; an unknown id affects zero rows and is not
// an error.
func (r *productRepo) Update(ctx context.Context, p model.Product) error {
	return r.h.Do(ctx, func(db *sqlx.DB) error {
		_, err := db.ExecContext(ctx,
			`UPDATE products
			 SET name = ?, description = ?, barcode = ?, cost_cents = ?,
			     price_cents = ?, stock = ?, updated_at = CURRENT_TIMESTAMP
			 WHERE id = ?`,
			p.Name, p.Description, p.Barcode,
			mapper.ToCents(p.Cost), mapper.ToCents(p.Price), p.Stock, p.ID)
		return err
	})
}

func productDomains(rows []mapper.ProductRow) []model.Product {
	products := make([]model.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.Domain())
	}
	return products
}
