package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"kiosco/internal/mapper"
	"kiosco/internal/model"
	"kiosco/internal/storage"
)

// ErrNotFound is returned when a lookup by id matches no invoice.
var ErrNotFound = errors.New("invoice not found")

// InvoiceRepository defines the data access contract for invoices and their
// line items.
type InvoiceRepository interface {
	List(ctx context.Context) ([]model.Invoice, error)
	FindByID(ctx context.Context, id int64) (model.Invoice, error)
	ListLines(ctx context.Context) ([]model.InvoiceLine, error)
	// Create persists the invoice header, then best-effort per line: stock
	// decrement and line insert. It succeeds once the header insert succeeds;
	// linesFailed counts the line inserts that did not persist.
	Create(ctx context.Context, inv model.Invoice) (id int64, linesFailed int, err error)
}

type invoiceRepo struct{ h *storage.Handle }

func NewInvoiceRepository(h *storage.Handle) InvoiceRepository { return &invoiceRepo{h: h} }

// listQuery aggregates each invoice's lines, each carrying its product
// snapshot, in a single grouped join. The JSON payload carries raw cents
// straight from the joined rows; the mapper converts them on decode.
const listQuery = `
	SELECT
		i.id,
		i.total_cents,
		JSON_GROUP_ARRAY(
			JSON_OBJECT(
				'id', l.id,
				'name', l.name,
				'quantity', l.quantity,
				'price_cents', l.price_cents,
				'product', JSON_OBJECT(
					'id', p.id, 'name', p.name, 'description', p.description,
					'barcode', p.barcode, 'price_cents', p.price_cents,
					'cost_cents', p.cost_cents, 'stock', p.stock,
					'created_at', p.created_at, 'updated_at', p.updated_at
				),
				'created_at', l.created_at,
				'updated_at', l.updated_at
			)
		) AS invoice_lines,
		i.created_at,
		i.updated_at
	FROM invoices i
	LEFT JOIN invoice_lines l ON l.invoice_id = i.id
	LEFT JOIN products p ON p.id = l.product_id
	GROUP BY i.id`

func (r *invoiceRepo) List(ctx context.Context) ([]model.Invoice, error) {
	var rows []mapper.InvoiceRow
	err := r.h.Do(ctx, func(db *sqlx.DB) error {
		return db.SelectContext(ctx, &rows, listQuery)
	})
	if err != nil {
		return nil, err
	}
	invoices := make([]model.Invoice, 0, len(rows))
	for _, row := range rows {
		invoices = append(invoices, row.Domain())
	}
	return invoices, nil
}

func (r *invoiceRepo) FindByID(ctx context.Context, id int64) (model.Invoice, error) {
	var row mapper.InvoiceRow
	err := r.h.Do(ctx, func(db *sqlx.DB) error {
		return db.GetContext(ctx, &row, listQuery+` HAVING i.id = ?`, id)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return model.Invoice{}, ErrNotFound
	}
	if err != nil {
		return model.Invoice{}, err
	}
	return row.Domain(), nil
}

// ListLines returns every line with its parent invoice and product embedded
// as JSON_OBJECT aggregates.
func (r *invoiceRepo) ListLines(ctx context.Context) ([]model.InvoiceLine, error) {
	var rows []mapper.LineRow
	err := r.h.Do(ctx, func(db *sqlx.DB) error {
		return db.SelectContext(ctx, &rows, `
			SELECT
				l.id,
				l.name,
				l.quantity,
				l.price_cents,
				JSON_OBJECT(
					'id', i.id, 'total_cents', i.total_cents,
					'created_at', i.created_at, 'updated_at', i.updated_at
				) AS invoice,
				JSON_OBJECT(
					'id', p.id, 'name', p.name, 'description', p.description,
					'barcode', p.barcode, 'price_cents', p.price_cents,
					'cost_cents', p.cost_cents, 'stock', p.stock,
					'created_at', p.created_at, 'updated_at', p.updated_at
				) AS product,
				l.created_at,
				l.updated_at
			FROM invoice_lines l
			LEFT JOIN invoices i ON i.id = l.invoice_id
			LEFT JOIN products p ON p.id = l.product_id`)
	})
	if err != nil {
		return nil, err
	}
	lines := make([]model.InvoiceLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, row.Domain())
	}
	return lines, nil
}

// Create runs the whole three-phase sequence under one lock acquisition.
// There is deliberately no transaction around it: a per-line failure is
// logged and skipped, leaving the rest of the lines and the header in
// place. The caller learns about skips through linesFailed.
func (r *invoiceRepo) Create(ctx context.Context, inv model.Invoice) (int64, int, error) {
	var id int64
	var linesFailed int

	err := r.h.Do(ctx, func(db *sqlx.DB) error {
		res, err := db.ExecContext(ctx,
			`INSERT INTO invoices (total_cents) VALUES (?)`,
			mapper.ToCents(inv.Total))
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		if err != nil {
			return err
		}

		for _, line := range inv.Lines {
			var productID *int64
			if line.Product != nil {
				pid := line.Product.ID
				productID = &pid

				if _, err := db.ExecContext(ctx,
					`UPDATE products
					 SET stock = stock - ?, updated_at = CURRENT_TIMESTAMP
					 WHERE id = ?`,
					line.Quantity, pid); err != nil {
					// Stock may drift; the line is still recorded.
					log.Error().Err(err).
						Int64("invoice_id", id).
						Int64("product_id", pid).
						Msg("failed to decrement product stock")
				}
			}

			if _, err := db.ExecContext(ctx,
				`INSERT INTO invoice_lines (name, quantity, price_cents, product_id, invoice_id)
				 VALUES (?, ?, ?, ?, ?)`,
				line.Name, line.Quantity, mapper.ToCents(line.Price), productID, id); err != nil {
				linesFailed++
				log.Error().Err(err).
					Int64("invoice_id", id).
					Str("line", line.Name).
					Msg("failed to insert invoice line")
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return id, linesFailed, nil
}
