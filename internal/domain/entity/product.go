package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry.
// SerialNo is a display-order attribute derived at list time (products sorted by
// CreatedAt, numbered densely from 1). It is never persisted; the database has no
// serial column, so the creation timestamp stays the single source of truth.
type Product struct {
	ID                string
	Name              string
	Code              string // catalog code, unique
	UnitPrice         decimal.Decimal
	StockQuantity     decimal.Decimal
	UnitOfMeasurement string
	TaxRate           decimal.Decimal
	SerialNo          int // derived, see above
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
