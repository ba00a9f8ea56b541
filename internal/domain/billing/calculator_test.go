package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billmint/billmint-api/internal/domain/billing"
	"github.com/billmint/billmint-api/internal/domain/entity"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func item(qty int64, price int64, discType string, discValue int64) entity.BillItem {
	return billing.ComputeItem(entity.BillItem{
		Quantity:      qty,
		UnitPrice:     d(price),
		DiscountType:  discType,
		DiscountValue: d(discValue),
	})
}

func TestItemSubtotal(t *testing.T) {
	assert.True(t, billing.ItemSubtotal(d(100), 3).Equal(d(300)))
	assert.True(t, billing.ItemSubtotal(decimal.NewFromFloat(12.50), 4).Equal(d(50)))
}

func TestItemDiscount_FixedClampedToSubtotal(t *testing.T) {
	// A fixed discount can never push a line below zero.
	assert.True(t, billing.ItemDiscount(d(300), entity.DiscountFixed, d(50)).Equal(d(50)))
	assert.True(t, billing.ItemDiscount(d(300), entity.DiscountFixed, d(500)).Equal(d(300)))
	assert.True(t, billing.ItemDiscount(d(300), entity.DiscountFixed, d(0)).Equal(d(0)))
}

func TestItemDiscount_PercentageCappedAt100(t *testing.T) {
	assert.True(t, billing.ItemDiscount(d(200), entity.DiscountPercentage, d(10)).Equal(d(20)))
	assert.True(t, billing.ItemDiscount(d(200), entity.DiscountPercentage, d(150)).Equal(d(200)))
}

func TestItemDiscount_PercentageMonotonic(t *testing.T) {
	prev := decimal.Zero
	for v := int64(0); v <= 120; v += 5 {
		cur := billing.ItemDiscount(d(1000), entity.DiscountPercentage, d(v))
		assert.True(t, cur.GreaterThanOrEqual(prev),
			"discount must be non-decreasing in the percentage value")
		prev = cur
	}
}

// TestBillTotals_FixedItemDiscount is the reference scenario: one item,
// qty=3, unitPrice=100, fixed discount 50.
func TestBillTotals_FixedItemDiscount(t *testing.T) {
	it := item(3, 100, entity.DiscountFixed, 50)
	require.True(t, it.Subtotal.Equal(d(300)))
	require.True(t, it.DiscountAmount.Equal(d(50)))
	require.True(t, it.Total.Equal(d(250)))

	totals := billing.BillTotals([]entity.BillItem{it}, "", decimal.Zero)
	assert.True(t, totals.Subtotal.Equal(d(300)))
	assert.True(t, totals.TotalDiscount.Equal(d(50)))
	assert.True(t, totals.Total.Equal(d(250)))
}

// TestBillTotals_BillPercentageOnRemainingBase: the bill-level discount applies
// to the post-item-discount base (300-50=250), not the raw subtotal.
func TestBillTotals_BillPercentageOnRemainingBase(t *testing.T) {
	it := item(3, 100, entity.DiscountFixed, 50)

	totals := billing.BillTotals([]entity.BillItem{it}, entity.DiscountPercentage, d(10))
	assert.True(t, totals.BillDiscountAmount.Equal(d(25)), "10%% of 250, got %s", totals.BillDiscountAmount)
	assert.True(t, totals.TotalDiscount.Equal(d(75)))
	assert.True(t, totals.Total.Equal(d(225)))
}

func TestBillTotals_FixedBillDiscountClampedToBase(t *testing.T) {
	it := item(2, 100, "", 0)

	totals := billing.BillTotals([]entity.BillItem{it}, entity.DiscountFixed, d(1000))
	assert.True(t, totals.BillDiscountAmount.Equal(d(200)))
	assert.True(t, totals.Total.Equal(d(0)), "grand total floors at zero")
}

func TestBillTotals_NegativeBaseClampsToZero(t *testing.T) {
	// Item discounts are individually capped, so a discount above the subtotal
	// only happens on a construction bug. The bill discount must still clamp
	// to zero, never go negative.
	broken := entity.BillItem{
		Quantity:       1,
		UnitPrice:      d(100),
		Subtotal:       d(100),
		DiscountAmount: d(150), // deliberately inconsistent
		Total:          d(-50),
	}
	totals := billing.BillTotals([]entity.BillItem{broken}, entity.DiscountFixed, d(40))
	assert.True(t, totals.BillDiscountAmount.Equal(d(0)))
	assert.True(t, totals.Total.GreaterThanOrEqual(decimal.Zero))
}

func TestBillTotals_ZeroOrNegativeBillDiscountIgnored(t *testing.T) {
	it := item(1, 100, "", 0)
	for _, v := range []int64{0, -10} {
		totals := billing.BillTotals([]entity.BillItem{it}, entity.DiscountFixed, d(v))
		assert.True(t, totals.BillDiscountAmount.Equal(d(0)))
		assert.True(t, totals.Total.Equal(d(100)))
	}
}

func TestBillTotals_MultipleItems(t *testing.T) {
	items := []entity.BillItem{
		item(2, 150, entity.DiscountPercentage, 10), // 300, -30 -> 270
		item(1, 500, entity.DiscountFixed, 100),     // 500, -100 -> 400
		item(4, 25, "", 0),                          // 100
	}
	totals := billing.BillTotals(items, entity.DiscountFixed, d(70))
	assert.True(t, totals.Subtotal.Equal(d(900)))
	assert.True(t, totals.ItemDiscounts.Equal(d(130)))
	assert.True(t, totals.BillDiscountAmount.Equal(d(70)))
	assert.True(t, totals.TotalDiscount.Equal(d(200)))
	assert.True(t, totals.Total.Equal(d(700)))
}

// TestBillTotals_Idempotent: the same input always yields the same output; the
// calculator keeps no hidden accumulator state.
func TestBillTotals_Idempotent(t *testing.T) {
	items := []entity.BillItem{
		item(3, 100, entity.DiscountFixed, 50),
		item(2, 75, entity.DiscountPercentage, 20),
	}
	first := billing.BillTotals(items, entity.DiscountPercentage, d(5))
	second := billing.BillTotals(items, entity.DiscountPercentage, d(5))

	assert.True(t, first.Subtotal.Equal(second.Subtotal))
	assert.True(t, first.TotalDiscount.Equal(second.TotalDiscount))
	assert.True(t, first.Total.Equal(second.Total))
}

func TestBillTotals_TotalNeverNegative(t *testing.T) {
	cases := []struct {
		discType  string
		discValue int64
	}{
		{entity.DiscountFixed, 0},
		{entity.DiscountFixed, 99999},
		{entity.DiscountPercentage, 100},
		{entity.DiscountPercentage, 500},
	}
	items := []entity.BillItem{item(3, 40, entity.DiscountPercentage, 100)}
	for _, tc := range cases {
		totals := billing.BillTotals(items, tc.discType, d(tc.discValue))
		assert.True(t, totals.Total.GreaterThanOrEqual(decimal.Zero),
			"total must never be negative (%s %d)", tc.discType, tc.discValue)
		if diff := totals.Subtotal.Sub(totals.TotalDiscount); !diff.IsNegative() {
			assert.True(t, totals.Total.Equal(diff))
		}
	}
}
