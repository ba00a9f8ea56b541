package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billmint/billmint-api/internal/domain"
	"github.com/billmint/billmint-api/internal/domain/entity"
)

func sampleBusiness() *entity.Business {
	return &entity.Business{
		ID:            "biz-1",
		Name:          "Sharma Traders",
		AddressLine1:  "12 MG Road",
		City:          "Pune",
		State:         "Maharashtra",
		Pincode:       "411001",
		GSTIN:         "27ABCDE1234F1Z5",
		Phone:         "+91 98765 43210",
		Email:         "billing@sharmatraders.in",
		BankName:      "State Bank of India",
		AccountNumber: "32198765401234",
		IFSC:          "SBIN0001234",
		Branch:        "Pune Main",
	}
}

func sampleBill() *entity.Bill {
	item := entity.BillItem{
		ProductID:      "p-1",
		ProductName:    "Copper Wire 2.5mm",
		ProductCode:    "CW-25",
		Quantity:       3,
		UnitPrice:      decimal.NewFromInt(100),
		DiscountType:   entity.DiscountFixed,
		DiscountValue:  decimal.NewFromInt(50),
		Subtotal:       decimal.NewFromInt(300),
		DiscountAmount: decimal.NewFromInt(50),
		Total:          decimal.NewFromInt(250),
	}
	return &entity.Bill{
		ID:         "b-1",
		BillNumber: "INV-1756500000",
		Customer: entity.Customer{
			Name:    "Ravi Kumar",
			Phone:   "+91 91234 56789",
			Address: "45 FC Road, Pune",
		},
		Items:             []entity.BillItem{item},
		BillDiscountType:  entity.DiscountPercentage,
		BillDiscountValue: decimal.NewFromInt(10),
		Subtotal:          decimal.NewFromInt(300),
		TotalDiscount:     decimal.NewFromInt(75),
		Total:             decimal.NewFromInt(225),
		PaymentMode:       entity.PaymentCash,
		CreatedAt:         time.Date(2026, 8, 30, 11, 0, 0, 0, time.UTC),
	}
}

func TestGenerateInvoicePDF(t *testing.T) {
	g := NewInvoiceRenderer(Options{TaxRatePercent: 18})

	out, err := g.GenerateInvoicePDF(context.Background(), sampleBill(), sampleBusiness())
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestGenerateInvoicePDFRejectsBadInput(t *testing.T) {
	g := NewInvoiceRenderer(Options{})

	tests := []struct {
		name     string
		bill     *entity.Bill
		business *entity.Business
	}{
		{"nil bill", nil, sampleBusiness()},
		{"nil business", sampleBill(), nil},
		{"empty items", func() *entity.Bill {
			b := sampleBill()
			b.Items = nil
			return b
		}(), sampleBusiness()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := g.GenerateInvoicePDF(context.Background(), tt.bill, tt.business)
			assert.ErrorIs(t, err, domain.ErrRenderInput)
			assert.Nil(t, out)
		})
	}
}

func TestGenerateInvoicePDFOptionalFieldsBlank(t *testing.T) {
	g := NewInvoiceRenderer(Options{})

	bill := sampleBill()
	bill.Customer.Email = ""
	bill.Customer.GSTIN = ""
	bill.TotalDiscount = decimal.Zero // no discount row
	biz := sampleBusiness()
	biz.GSTIN = ""
	biz.BankName = ""

	out, err := g.GenerateInvoicePDF(context.Background(), bill, biz)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestRendererDefaults(t *testing.T) {
	g := NewInvoiceRenderer(Options{})
	assert.Equal(t, 18, g.opts.TaxRatePercent)
	assert.Equal(t, "INR", g.opts.CurrencyCode)
	// cp1252-safe default; the rupee sign needs a Unicode font.
	assert.Equal(t, "Rs.", g.opts.CurrencySymbol)
}

func TestComputeTax(t *testing.T) {
	tests := []struct {
		total   string
		rate    int
		taxable string
		half    string
		tax     string
	}{
		{"225", 18, "190.68", "17.16", "34.32"},
		{"118", 18, "100.00", "9.00", "18.00"},
		{"105", 5, "100.00", "2.50", "5.00"},
		{"999.99", 18, "847.45", "76.27", "152.54"},
		{"0", 18, "0.00", "0.00", "0.00"},
	}
	for _, tt := range tests {
		got := computeTax(decimal.RequireFromString(tt.total), tt.rate)
		assert.Equal(t, tt.taxable, got.taxable.StringFixed(2), "taxable for %s @ %d%%", tt.total, tt.rate)
		assert.Equal(t, tt.half, got.half.StringFixed(2), "half for %s @ %d%%", tt.total, tt.rate)
		assert.Equal(t, tt.tax, got.total.StringFixed(2), "tax for %s @ %d%%", tt.total, tt.rate)
	}
}

func TestFormatCurrencyIndianGrouping(t *testing.T) {
	g := NewInvoiceRenderer(Options{})

	tests := []struct {
		in   string
		want string
	}{
		{"0", "Rs.0.00"},
		{"950", "Rs.950.00"},
		{"1234.5", "Rs.1,234.50"},
		{"100000", "Rs.1,00,000.00"},
		{"12345678.9", "Rs.1,23,45,678.90"},
	}
	for _, tt := range tests {
		v, err := decimal.NewFromString(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, g.formatCurrency(v), "input %s", tt.in)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefghi…", truncate("abcdefghijkl", 10))
	long := "A Very Long Product Name That Exceeds The Column Budget"
	got := truncate(long, nameCharBudget)
	assert.Len(t, []rune(got), nameCharBudget)
	assert.Equal(t, "…", string([]rune(got)[nameCharBudget-1:]))
}

func TestJoinNonEmpty(t *testing.T) {
	assert.Equal(t, "Pune, Maharashtra", joinNonEmpty("Pune", "", "Maharashtra"))
	assert.Equal(t, "", joinNonEmpty("", ""))
}
