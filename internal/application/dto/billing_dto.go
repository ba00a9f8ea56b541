package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InitBillRequest body for POST /api/billing/draft.
type InitBillRequest struct {
	CustomerID string `json:"customer_id"`
}

// BillItemRequest body for adding or replacing a draft item. UnitPrice is
// optional; when zero the catalog price at add time is captured.
type BillItemRequest struct {
	ProductID     string          `json:"product_id"`
	Quantity      int64           `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	DiscountType  string          `json:"discount_type"`  // fixed | percentage
	DiscountValue decimal.Decimal `json:"discount_value"` // >=0; <=100 when percentage
}

// BillDiscountRequest body for PUT /api/billing/draft/discount.
type BillDiscountRequest struct {
	DiscountType  string          `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
}

// FinalizeBillRequest body for POST /api/billing/draft/finalize.
type FinalizeBillRequest struct {
	Note        string `json:"note"`
	PaymentMode string `json:"payment_mode"` // CASH | ONLINE | CARD, defaults to CASH
}

// BillItemResponse one bill line in API responses.
type BillItemResponse struct {
	ProductID      string          `json:"product_id"`
	ProductName    string          `json:"product_name"`
	ProductCode    string          `json:"product_code"`
	Quantity       int64           `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	DiscountType   string          `json:"discount_type,omitempty"`
	DiscountValue  decimal.Decimal `json:"discount_value"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Total          decimal.Decimal `json:"total"`
}

// BillResponse a draft or finalized bill in API responses.
type BillResponse struct {
	ID                string             `json:"id"`
	BillNumber        string             `json:"bill_number"`
	Customer          CustomerResponse   `json:"customer"`
	Items             []BillItemResponse `json:"items"`
	BillDiscountType  string             `json:"bill_discount_type,omitempty"`
	BillDiscountValue decimal.Decimal    `json:"bill_discount_value"`
	Subtotal          decimal.Decimal    `json:"subtotal"`
	TotalDiscount     decimal.Decimal    `json:"total_discount"`
	Total             decimal.Decimal    `json:"total"`
	Note              string             `json:"note,omitempty"`
	PaymentMode       string             `json:"payment_mode,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
}
