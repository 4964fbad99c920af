// Package mapper translates between stored rows (relational, integer cents)
// and domain objects (nested, decimal currency). Currency conversion must be
// exact for any value representable to 2 decimal places, which is why rows
// never carry floats: cents travel as int64 end to end and only become
// decimal.Decimal at the domain boundary.
package mapper

import (
	"database/sql"

	"github.com/shopspring/decimal"

	"kiosco/internal/model"
)

var hundred = decimal.NewFromInt(100)

// FromCents converts integer minor units to decimal currency. Exact: 1010
// cents is 10.1, never 10.099999....
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// ToCents converts decimal currency to integer minor units, truncating
// toward zero: 19.995 stores as 1999. Truncation (not rounding) is the
// established behavior of this store and is pinned by tests.
func ToCents(d decimal.Decimal) int64 {
	return d.Mul(hundred).IntPart()
}

// ProductRow is the flat products row as stored.
type ProductRow struct {
	ID          int64          `db:"id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	Barcode     string         `db:"barcode"`
	PriceCents  int64          `db:"price_cents"`
	CostCents   int64          `db:"cost_cents"`
	Stock       int64          `db:"stock"`
	CreatedAt   string         `db:"created_at"`
	UpdatedAt   string         `db:"updated_at"`
}

// Domain converts the stored row to its domain object.
func (r ProductRow) Domain() model.Product {
	p := model.Product{
		ID:        r.ID,
		Name:      r.Name,
		Barcode:   r.Barcode,
		Price:     FromCents(r.PriceCents),
		Cost:      FromCents(r.CostCents),
		Stock:     r.Stock,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.Description.Valid {
		desc := r.Description.String
		p.Description = &desc
	}
	return p
}

// InvoiceRow is an invoices row from the aggregating query: Lines holds the
// JSON_GROUP_ARRAY payload, or NULL in the shapes that do not aggregate.
type InvoiceRow struct {
	ID         int64          `db:"id"`
	TotalCents int64          `db:"total_cents"`
	Lines      sql.NullString `db:"invoice_lines"`
	CreatedAt  string         `db:"created_at"`
	UpdatedAt  string         `db:"updated_at"`
}

// Domain converts the row, decoding the aggregated line payload when present.
// An absent or malformed payload yields Lines == nil ("not loaded"); a valid
// payload whose only entry is the phantom row of a LEFT JOIN with no matches
// yields an empty, non-nil slice.
func (r InvoiceRow) Domain() model.Invoice {
	inv := model.Invoice{
		ID:        r.ID,
		Total:     FromCents(r.TotalCents),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.Lines.Valid {
		if lines, ok := ParseLines([]byte(r.Lines.String)); ok {
			inv.Lines = lines
		}
	}
	return inv
}

// LineRow is an invoice_lines row from the line-listing query shape, where
// the parent invoice and the product arrive as JSON_OBJECT columns.
type LineRow struct {
	ID         int64          `db:"id"`
	Name       string         `db:"name"`
	Quantity   int64          `db:"quantity"`
	PriceCents int64          `db:"price_cents"`
	Invoice    sql.NullString `db:"invoice"`
	Product    sql.NullString `db:"product"`
	CreatedAt  string         `db:"created_at"`
	UpdatedAt  string         `db:"updated_at"`
}

// Domain converts the row; both embedded aggregates decode fault-tolerantly.
func (r LineRow) Domain() model.InvoiceLine {
	line := model.InvoiceLine{
		ID:        r.ID,
		Name:      r.Name,
		Quantity:  r.Quantity,
		Price:     FromCents(r.PriceCents),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.Invoice.Valid {
		line.Invoice = ParseInvoiceRef([]byte(r.Invoice.String))
	}
	if r.Product.Valid {
		line.Product = ParseProductRef([]byte(r.Product.String))
	}
	return line
}
