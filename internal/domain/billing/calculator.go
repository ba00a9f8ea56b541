// Package billing holds the pure domain services of the billing core: the
// money/discount calculator and the amount-in-words converter. Both are
// deterministic, stateless and never fail on well-formed input; input
// validation is a precondition handled by callers.
package billing

import (
	"github.com/shopspring/decimal"

	"github.com/billmint/billmint-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// ItemSubtotal returns unitPrice * quantity.
func ItemSubtotal(unitPrice decimal.Decimal, quantity int64) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(quantity))
}

// ItemDiscount returns the discount amount for one line.
// Fixed discounts are clamped to the subtotal (a line can never go negative);
// percentage discounts are capped at 100%.
func ItemDiscount(subtotal decimal.Decimal, discountType string, value decimal.Decimal) decimal.Decimal {
	if value.LessThanOrEqual(decimal.Zero) || subtotal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	switch discountType {
	case entity.DiscountFixed:
		return decimal.Min(value, subtotal)
	case entity.DiscountPercentage:
		return subtotal.Mul(decimal.Min(value, hundred)).Div(hundred)
	}
	return decimal.Zero
}

// ItemTotal returns subtotal - discountAmount.
func ItemTotal(subtotal, discountAmount decimal.Decimal) decimal.Decimal {
	return subtotal.Sub(discountAmount)
}

// ComputeItem fills the derived fields of an item (Subtotal, DiscountAmount,
// Total) from its quantity, unit price and discount parameters.
func ComputeItem(item entity.BillItem) entity.BillItem {
	item.Subtotal = ItemSubtotal(item.UnitPrice, item.Quantity)
	item.DiscountAmount = ItemDiscount(item.Subtotal, item.DiscountType, item.DiscountValue)
	item.Total = ItemTotal(item.Subtotal, item.DiscountAmount)
	return item
}

// Totals are the derived bill-level amounts.
type Totals struct {
	Subtotal           decimal.Decimal
	ItemDiscounts      decimal.Decimal
	BillDiscountAmount decimal.Decimal
	TotalDiscount      decimal.Decimal
	Total              decimal.Decimal
}

// BillTotals recomputes all derived bill amounts from scratch.
//
// The ordering is load-bearing: item discounts apply first, then the
// bill-level discount applies to the post-item-discount base. This keeps a
// fixed bill discount from stacking beyond the remaining balance. The base is
// clamped at zero (item discounts are individually capped, so a negative base
// only happens on a construction bug; the bill discount must still clamp to
// zero, never go negative), and the grand total is floored at zero.
func BillTotals(items []entity.BillItem, billDiscountType string, billDiscountValue decimal.Decimal) Totals {
	var subtotal, itemDiscounts decimal.Decimal
	for _, item := range items {
		subtotal = subtotal.Add(item.Subtotal)
		itemDiscounts = itemDiscounts.Add(item.DiscountAmount)
	}

	base := subtotal.Sub(itemDiscounts)
	if base.IsNegative() {
		base = decimal.Zero
	}

	var billDiscount decimal.Decimal
	if billDiscountValue.GreaterThan(decimal.Zero) {
		switch billDiscountType {
		case entity.DiscountFixed:
			billDiscount = decimal.Min(billDiscountValue, base)
		case entity.DiscountPercentage:
			billDiscount = base.Mul(decimal.Min(billDiscountValue, hundred)).Div(hundred)
		}
	}

	totalDiscount := itemDiscounts.Add(billDiscount)
	total := subtotal.Sub(totalDiscount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Totals{
		Subtotal:           subtotal,
		ItemDiscounts:      itemDiscounts,
		BillDiscountAmount: billDiscount,
		TotalDiscount:      totalDiscount,
		Total:              total,
	}
}
