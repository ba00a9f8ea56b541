package xmlexport

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billmint/billmint-api/internal/domain"
	"github.com/billmint/billmint-api/internal/domain/entity"
)

func exportFixtures() (*entity.Bill, *entity.Business) {
	bill := &entity.Bill{
		ID:         "b-1",
		BillNumber: "INV-1756500000",
		Customer:   entity.Customer{Name: "Ravi Kumar", Phone: "+91 91234 56789"},
		Items: []entity.BillItem{
			{
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
			},
			{
				ProductID:   "p-2",
				ProductName: "Switch Board",
				ProductCode: "SB-01",
				Quantity:    1,
				UnitPrice:   decimal.NewFromInt(80),
				Subtotal:    decimal.NewFromInt(80),
				Total:       decimal.NewFromInt(80),
			},
		},
		Subtotal:      decimal.NewFromInt(380),
		TotalDiscount: decimal.NewFromInt(50),
		Total:         decimal.NewFromInt(330),
		PaymentMode:   entity.PaymentCash,
		CreatedAt:     time.Date(2026, 8, 30, 11, 0, 0, 0, time.UTC),
	}
	business := &entity.Business{
		Name:  "Sharma Traders",
		GSTIN: "27ABCDE1234F1Z5",
		City:  "Pune",
	}
	return bill, business
}

func TestExportInvoiceXML(t *testing.T) {
	bill, business := exportFixtures()

	out, err := NewInvoiceXML().ExportInvoiceXML(bill, business)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))

	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "Invoice", root.Tag)
	assert.Equal(t, "INV-1756500000", root.SelectAttrValue("number", ""))
	assert.Equal(t, "2026-08-30", root.SelectAttrValue("issuedAt", ""))

	assert.Equal(t, "Sharma Traders", root.FindElement("Seller/Name").Text())
	assert.Equal(t, "Ravi Kumar", root.FindElement("Buyer/Name").Text())

	items := root.FindElements("Items/Item")
	require.Len(t, items, 2)
	assert.Equal(t, "Copper Wire 2.5mm", items[0].FindElement("Name").Text())
	assert.Equal(t, "100.00", items[0].FindElement("UnitPrice").Text())
	assert.Equal(t, "50.00", items[0].FindElement("Discount/Amount").Text())
	// Undiscounted line carries no Discount element.
	assert.Nil(t, items[1].FindElement("Discount"))

	assert.Equal(t, "380.00", root.FindElement("Totals/Subtotal").Text())
	assert.Equal(t, "330.00", root.FindElement("Totals/GrandTotal").Text())
	assert.Equal(t, entity.PaymentCash, root.FindElement("Payment/Mode").Text())
}

func TestExportInvoiceXMLRejectsBadInput(t *testing.T) {
	bill, business := exportFixtures()

	_, err := NewInvoiceXML().ExportInvoiceXML(nil, business)
	assert.ErrorIs(t, err, domain.ErrRenderInput)

	_, err = NewInvoiceXML().ExportInvoiceXML(bill, nil)
	assert.ErrorIs(t, err, domain.ErrRenderInput)

	bill.Items = nil
	_, err = NewInvoiceXML().ExportInvoiceXML(bill, business)
	assert.ErrorIs(t, err, domain.ErrRenderInput)
}
