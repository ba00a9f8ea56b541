package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body for POST /api/products.
// UnitPrice is the primary price field; Price is a legacy alias kept so data
// written under the previous field name still parses. When both are present
// UnitPrice wins.
type CreateProductRequest struct {
	Name              string          `json:"name"`
	Code              string          `json:"code"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	Price             decimal.Decimal `json:"price"` // legacy alias for unit_price
	StockQuantity     decimal.Decimal `json:"stock_quantity"`
	UnitOfMeasurement string          `json:"unit_of_measurement"`
	TaxRate           decimal.Decimal `json:"tax_rate"`
}

// EffectiveUnitPrice coalesces the primary field with the legacy alias.
func (r CreateProductRequest) EffectiveUnitPrice() decimal.Decimal {
	if r.UnitPrice.GreaterThan(decimal.Zero) {
		return r.UnitPrice
	}
	return r.Price
}

// UpdateProductRequest body for PUT /api/products/:id. Same alias rule as create.
type UpdateProductRequest struct {
	Name              string          `json:"name"`
	Code              string          `json:"code"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	Price             decimal.Decimal `json:"price"` // legacy alias for unit_price
	StockQuantity     decimal.Decimal `json:"stock_quantity"`
	UnitOfMeasurement string          `json:"unit_of_measurement"`
	TaxRate           decimal.Decimal `json:"tax_rate"`
}

// EffectiveUnitPrice coalesces the primary field with the legacy alias.
func (r UpdateProductRequest) EffectiveUnitPrice() decimal.Decimal {
	if r.UnitPrice.GreaterThan(decimal.Zero) {
		return r.UnitPrice
	}
	return r.Price
}

// ProductResponse product in API responses. SerialNo is the derived display
// order (dense 1..N by creation time), recomputed on every listing.
type ProductResponse struct {
	ID                string          `json:"id"`
	SerialNo          int             `json:"sno"`
	Name              string          `json:"name"`
	Code              string          `json:"code"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	StockQuantity     decimal.Decimal `json:"stock_quantity"`
	UnitOfMeasurement string          `json:"unit_of_measurement"`
	TaxRate           decimal.Decimal `json:"tax_rate"`
	CreatedAt         time.Time       `json:"created_at"`
}
