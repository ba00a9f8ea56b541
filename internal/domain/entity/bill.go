package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Discount types, valid for both item-level and bill-level discounts.
const (
	DiscountFixed      = "fixed"
	DiscountPercentage = "percentage"
)

// Payment modes.
const (
	PaymentCash   = "CASH"
	PaymentOnline = "ONLINE"
	PaymentCard   = "CARD"
)

// BillItem is one line of a bill. Product fields are an owned snapshot captured
// at add time, so historical bills stay stable when the catalog changes later.
// Derived fields (Subtotal, DiscountAmount, Total) are recomputed from scratch on
// every draft mutation; DiscountAmount never exceeds Subtotal.
type BillItem struct {
	ProductID      string
	ProductName    string
	ProductCode    string
	Quantity       int64
	UnitPrice      decimal.Decimal // captured at add time, decoupled from the live catalog price
	DiscountType   string          // DiscountFixed | DiscountPercentage
	DiscountValue  decimal.Decimal // >=0; <=100 when percentage
	Subtotal       decimal.Decimal // derived: UnitPrice * Quantity
	DiscountAmount decimal.Decimal // derived
	Total          decimal.Decimal // derived: Subtotal - DiscountAmount
}

// Bill is a customer bill. While drafted it is mutated through the billing
// session; once finalized it is persisted and immutable.
type Bill struct {
	ID                string
	BillNumber        string
	Customer          Customer // owned snapshot
	Items             []BillItem
	BillDiscountType  string
	BillDiscountValue decimal.Decimal
	Subtotal          decimal.Decimal // derived: sum of item subtotals
	TotalDiscount     decimal.Decimal // derived: item discounts + bill discount amount
	Total             decimal.Decimal // derived, floored at zero
	Note              string
	PaymentMode       string
	CreatedAt         time.Time
}
