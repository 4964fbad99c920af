package model

import (
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Price and Cost are decimal currency at the
// domain boundary; storage keeps them as integer cents (see internal/mapper).
// Stock is not guaranteed non-negative: a sale may drive it below zero.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name" validate:"required"`
	Description *string         `json:"description,omitempty"`
	Barcode     string          `json:"barcode" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	Stock       int64           `json:"stock"`
	CreatedAt   string          `json:"created_at,omitempty"`
	UpdatedAt   string          `json:"updated_at,omitempty"`
}
