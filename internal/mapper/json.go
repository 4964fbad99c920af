package mapper

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"kiosco/internal/model"
)

// Payload structs for the JSON aggregates produced by the query layer
// (JSON_OBJECT / JSON_GROUP_ARRAY). Every field is a pointer: a LEFT JOIN
// with no match emits an object whose values are all JSON null, and the
// difference between "absent" and "present with zero value" matters here.
// Money fields carry raw integer cents, exactly as stored in the rows the
// query aggregated.

type productPayload struct {
	ID          *int64  `json:"id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Barcode     *string `json:"barcode"`
	PriceCents  *int64  `json:"price_cents"`
	CostCents   *int64  `json:"cost_cents"`
	Stock       *int64  `json:"stock"`
	CreatedAt   *string `json:"created_at"`
	UpdatedAt   *string `json:"updated_at"`
}

type invoicePayload struct {
	ID         *int64  `json:"id"`
	TotalCents *int64  `json:"total_cents"`
	CreatedAt  *string `json:"created_at"`
	UpdatedAt  *string `json:"updated_at"`
}

type linePayload struct {
	ID         *int64          `json:"id"`
	Name       *string         `json:"name"`
	Quantity   *int64          `json:"quantity"`
	PriceCents *int64          `json:"price_cents"`
	Product    *productPayload `json:"product"`
	CreatedAt  *string         `json:"created_at"`
	UpdatedAt  *string         `json:"updated_at"`
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func num(n *int64) int64 {
	if n == nil {
		return 0
	}
	return *n
}

func (p *productPayload) domain() *model.Product {
	if p == nil || p.ID == nil {
		// Phantom object from a LEFT JOIN with no product (or a deleted one).
		return nil
	}
	prod := &model.Product{
		ID:        *p.ID,
		Name:      str(p.Name),
		Barcode:   str(p.Barcode),
		Price:     FromCents(num(p.PriceCents)),
		Cost:      FromCents(num(p.CostCents)),
		Stock:     num(p.Stock),
		CreatedAt: str(p.CreatedAt),
		UpdatedAt: str(p.UpdatedAt),
	}
	if p.Description != nil {
		desc := *p.Description
		prod.Description = &desc
	}
	return prod
}

// ParseProductRef decodes a JSON_OBJECT product aggregate. Malformed data or
// a null id yields nil ("absent"), never an error: a line must stay readable
// even when its product reference cannot be reconstructed.
func ParseProductRef(data []byte) *model.Product {
	var p productPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Debug().Err(err).Msg("malformed product aggregate")
		return nil
	}
	return p.domain()
}

// ParseInvoiceRef decodes a JSON_OBJECT invoice aggregate with the same
// present/absent/malformed→absent semantics as ParseProductRef.
func ParseInvoiceRef(data []byte) *model.Invoice {
	var p invoicePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Debug().Err(err).Msg("malformed invoice aggregate")
		return nil
	}
	if p.ID == nil {
		return nil
	}
	return &model.Invoice{
		ID:        *p.ID,
		Total:     FromCents(num(p.TotalCents)),
		CreatedAt: str(p.CreatedAt),
		UpdatedAt: str(p.UpdatedAt),
	}
}

// ParseLines decodes a JSON_GROUP_ARRAY of line aggregates. The second
// return is false when the payload is malformed ("lines not loaded").
// Phantom entries — the all-null object a LEFT JOIN emits for an invoice
// with no lines — are discarded, so a zero-line invoice decodes to an
// empty, non-nil slice rather than one fake line.
func ParseLines(data []byte) ([]model.InvoiceLine, bool) {
	var payload []linePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		log.Debug().Err(err).Msg("malformed line aggregate")
		return nil, false
	}
	lines := make([]model.InvoiceLine, 0, len(payload))
	for _, lp := range payload {
		if lp.ID == nil {
			continue
		}
		lines = append(lines, model.InvoiceLine{
			ID:        *lp.ID,
			Name:      str(lp.Name),
			Quantity:  num(lp.Quantity),
			Price:     FromCents(num(lp.PriceCents)),
			Product:   lp.Product.domain(),
			CreatedAt: str(lp.CreatedAt),
			UpdatedAt: str(lp.UpdatedAt),
		})
	}
	return lines, true
}
