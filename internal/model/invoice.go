package model

import (
	"github.com/shopspring/decimal"
)

// Invoice aggregates its line items. Lines is nil when the lines were not
// loaded by the query that produced the invoice; an invoice that was loaded
// with its lines and has none carries an empty, non-nil slice.
type Invoice struct {
	ID        int64           `json:"id"`
	Total     decimal.Decimal `json:"total"`
	Lines     []InvoiceLine   `json:"lines"`
	CreatedAt string          `json:"created_at,omitempty"`
	UpdatedAt string          `json:"updated_at,omitempty"`
}

// InvoiceLine snapshots the name and unit price at the time of sale, so it
// stays meaningful even if the catalog product changes or disappears.
// Invoice and Product are optional back-references populated only by the
// query shapes that join them.
type InvoiceLine struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Invoice   *Invoice        `json:"invoice,omitempty"`
	Product   *Product        `json:"product,omitempty"`
	CreatedAt string          `json:"created_at,omitempty"`
	UpdatedAt string          `json:"updated_at,omitempty"`
}
