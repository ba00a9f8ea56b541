// Package xmlexport serializes finalized bills into a structured XML document
// suitable for handing off to accounting software.
package xmlexport

import (
	"strconv"

	"github.com/beevik/etree"

	appbilling "github.com/billmint/billmint-api/internal/application/billing"
	"github.com/billmint/billmint-api/internal/domain"
	"github.com/billmint/billmint-api/internal/domain/entity"
)

var _ appbilling.InvoiceXMLExporter = (*InvoiceXML)(nil)

// InvoiceXML implements billing.InvoiceXMLExporter using etree.
type InvoiceXML struct{}

func NewInvoiceXML() *InvoiceXML {
	return &InvoiceXML{}
}

// ExportInvoiceXML builds the invoice document. Monetary values are emitted
// with two decimals as attribute-free element text; element order is fixed.
func (e *InvoiceXML) ExportInvoiceXML(bill *entity.Bill, business *entity.Business) ([]byte, error) {
	if bill == nil || business == nil || len(bill.Items) == 0 {
		return nil, domain.ErrRenderInput
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("Invoice")
	root.CreateAttr("number", bill.BillNumber)
	root.CreateAttr("issuedAt", bill.CreatedAt.Format("2006-01-02"))

	seller := root.CreateElement("Seller")
	seller.CreateElement("Name").SetText(business.Name)
	seller.CreateElement("GSTIN").SetText(business.GSTIN)
	addr := seller.CreateElement("Address")
	addr.CreateElement("Line1").SetText(business.AddressLine1)
	addr.CreateElement("Line2").SetText(business.AddressLine2)
	addr.CreateElement("City").SetText(business.City)
	addr.CreateElement("State").SetText(business.State)
	addr.CreateElement("Pincode").SetText(business.Pincode)

	buyer := root.CreateElement("Buyer")
	buyer.CreateElement("Name").SetText(bill.Customer.Name)
	buyer.CreateElement("Phone").SetText(bill.Customer.Phone)
	buyer.CreateElement("Email").SetText(bill.Customer.Email)
	buyer.CreateElement("GSTIN").SetText(bill.Customer.GSTIN)
	buyer.CreateElement("Address").SetText(bill.Customer.Address)

	items := root.CreateElement("Items")
	for i, it := range bill.Items {
		item := items.CreateElement("Item")
		item.CreateAttr("line", strconv.Itoa(i+1))
		item.CreateElement("Name").SetText(it.ProductName)
		item.CreateElement("Code").SetText(it.ProductCode)
		item.CreateElement("Quantity").SetText(strconv.FormatInt(it.Quantity, 10))
		item.CreateElement("UnitPrice").SetText(it.UnitPrice.StringFixed(2))
		if it.DiscountValue.IsPositive() {
			d := item.CreateElement("Discount")
			d.CreateAttr("type", it.DiscountType)
			d.CreateElement("Value").SetText(it.DiscountValue.StringFixed(2))
			d.CreateElement("Amount").SetText(it.DiscountAmount.StringFixed(2))
		}
		item.CreateElement("Amount").SetText(it.Total.StringFixed(2))
	}

	totals := root.CreateElement("Totals")
	totals.CreateElement("Subtotal").SetText(bill.Subtotal.StringFixed(2))
	totals.CreateElement("Discount").SetText(bill.TotalDiscount.StringFixed(2))
	totals.CreateElement("GrandTotal").SetText(bill.Total.StringFixed(2))

	payment := root.CreateElement("Payment")
	payment.CreateElement("Mode").SetText(bill.PaymentMode)

	if bill.Note != "" {
		root.CreateElement("Note").SetText(bill.Note)
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}
