// Package pdf renders the printable Tax Invoice for a finalized bill.
//
// A4 page layout, top to bottom:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                        TAX INVOICE                          │
//	│  ISSUER: name + address + GSTIN   │  Invoice No. / Date /   │
//	│          + contact                │  Payment / dispatch     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BUYER (CONSIGNEE): name, address, phone, email, GSTIN      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: S.No | Description | Code | Qty | Rate | Amount     │
//	│  DISCOUNT row (only when > 0) / GRAND TOTAL row             │
//	│  Amount in words                                            │
//	│  TAX TABLE: Taxable Value | CGST | SGST | Total Tax         │
//	│  Tax amount in words                                        │
//	│  BANK DETAILS      │      Authorised Signatory              │
//	│  Footer disclaimer                                          │
//	└─────────────────────────────────────────────────────────────┘
//
// Every position advances a running vertical cursor by fixed row heights; the
// item table is padded with empty bordered rows up to a minimum count so short
// bills keep the same visual height.
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	appbilling "github.com/billmint/billmint-api/internal/application/billing"
	"github.com/billmint/billmint-api/internal/domain"
	domainbilling "github.com/billmint/billmint-api/internal/domain/billing"
	"github.com/billmint/billmint-api/internal/domain/entity"
)

// ── Palette ───────────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Layout constants. Positions are additive; changing these changes the
// placement of everything below.
const (
	minItemRows    = 8  // item table is padded with empty rows up to this count
	nameCharBudget = 34 // product names truncate past this with an ellipsis
)

var cellBorder = &props.Cell{BorderType: border.Full, BorderColor: colorGray, BorderThickness: 0.2}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appbilling.InvoicePDFGenerator = (*InvoiceRenderer)(nil)

// Options rendering configuration.
type Options struct {
	TaxRatePercent int    // synthetic GST rate for the tax breakdown table
	CurrencyCode   string // "INR"
	CurrencySymbol string // "Rs." unless a Unicode-capable font is configured
}

// InvoiceRenderer implements billing.InvoicePDFGenerator using Maroto v2.
type InvoiceRenderer struct {
	opts    Options
	printer *message.Printer // en-IN digit grouping for the grand total
}

// NewInvoiceRenderer builds the renderer.
func NewInvoiceRenderer(opts Options) *InvoiceRenderer {
	if opts.TaxRatePercent <= 0 {
		opts.TaxRatePercent = 18
	}
	if opts.CurrencyCode == "" {
		opts.CurrencyCode = "INR"
	}
	if opts.CurrencySymbol == "" {
		// The core helvetica font is cp1252; "₹" (U+20B9) has no glyph there
		// and would degrade in the emitted document.
		opts.CurrencySymbol = "Rs."
	}
	return &InvoiceRenderer{
		opts:    opts,
		printer: message.NewPrinter(language.MustParse("en-IN")),
	}
}

// GenerateInvoicePDF renders the Tax Invoice and returns its bytes.
// A nil bill, nil issuer or empty item list is rejected up front; a document
// is never partially emitted. Missing optional fields render as blanks.
func (g *InvoiceRenderer) GenerateInvoicePDF(_ context.Context, bill *entity.Bill, business *entity.Business) ([]byte, error) {
	if bill == nil || business == nil || len(bill.Items) == 0 {
		return nil, domain.ErrRenderInput
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Tax Invoice "+bill.BillNumber, true).
		WithAuthor(business.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow())
	m.AddRows(g.headerRow(bill, business))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(buyerRow(bill.Customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range itemRows(bill.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	if discountRow, ok := g.discountRow(bill); ok {
		m.AddRows(discountRow)
	}
	m.AddRows(g.totalRow(bill))
	m.AddRows(g.amountWordsRow(bill.Total))

	m.AddRows(line.NewRow(2))
	taxTotal := g.addTaxRows(m, bill.Total)
	m.AddRows(g.taxWordsRow(taxTotal))

	m.AddRows(line.NewRow(2))
	m.AddRows(bankAndSignatureRow(business))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Sections ──────────────────────────────────────────────────────────────────

func titleRow() core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New("TAX INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Center, Color: colorPrimary, Top: 1,
			}),
		),
	)
}

// headerRow: issuer identity (left) and invoice metadata label/value pairs
// (right). The dispatch fields are fixed placeholders: the data model carries
// no shipping metadata, but the printed form reserves the rows.
func (g *InvoiceRenderer) headerRow(bill *entity.Bill, business *entity.Business) core.Row {
	meta := func(label, value string, top float64) []core.Component {
		return []core.Component{
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Top: top}),
			text.New(value, props.Text{Size: 8, Top: top, Left: 28, Color: colorGray}),
		}
	}

	left := col.New(7).Add(
		text.New(business.Name, props.Text{Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1}),
		text.New(joinNonEmpty(business.AddressLine1, business.AddressLine2), props.Text{Size: 8, Top: 8, Color: colorGray}),
		text.New(joinNonEmpty(business.City, business.State, business.Pincode), props.Text{Size: 8, Top: 12, Color: colorGray}),
		text.New("GSTIN: "+nonEmpty(business.GSTIN, "—"), props.Text{Size: 8, Top: 16}),
		text.New(fmt.Sprintf("Phone: %s   |   Email: %s",
			nonEmpty(business.Phone, "—"), nonEmpty(business.Email, "—"),
		), props.Text{Size: 8, Top: 20, Color: colorGray}),
	)

	rightComponents := meta("Invoice No.", bill.BillNumber, 1)
	rightComponents = append(rightComponents, meta("Dated", bill.CreatedAt.Format("02/01/2006"), 5)...)
	rightComponents = append(rightComponents, meta("Payment Mode", nonEmpty(bill.PaymentMode, entity.PaymentCash), 9)...)
	rightComponents = append(rightComponents, meta("Dispatched Through", "—", 13)...)
	rightComponents = append(rightComponents, meta("Destination", "—", 17)...)
	rightComponents = append(rightComponents, meta("Vehicle No.", "—", 21)...)
	right := col.New(5).WithStyle(cellBorder).Add(rightComponents...)

	return row.New(26).Add(left, right)
}

// buyerRow: consignee block. Fixed height; content past the box is clipped,
// not wrapped.
func buyerRow(customer entity.Customer) core.Row {
	return row.New(18).Add(
		col.New(12).Add(
			text.New("BUYER (CONSIGNEE)", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(customer.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
			text.New(customer.Address, props.Text{Size: 8, Top: 10, Color: colorGray}),
			text.New(fmt.Sprintf("Phone: %s   |   Email: %s   |   GSTIN: %s",
				nonEmpty(customer.Phone, "—"),
				nonEmpty(customer.Email, "—"),
				nonEmpty(customer.GSTIN, "—"),
			), props.Text{Size: 8, Top: 14, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).WithStyle(cellBorder).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("S.No", 1, align.Center),
		h("Description of Goods", 4, align.Left),
		h("Code", 2, align.Center),
		h("Qty", 1, align.Center),
		h("Rate", 2, align.Right),
		h("Amount", 2, align.Right),
	)
}

// itemRows: one row per bill item, padded with empty bordered rows up to
// minItemRows so short bills keep a consistent table height.
func itemRows(items []entity.BillItem) []core.Row {
	count := len(items)
	if count < minItemRows {
		count = minItemRows
	}
	result := make([]core.Row, 0, count)

	cell := func(value string, size int, a align.Type) core.Col {
		return col.New(size).WithStyle(cellBorder).Add(text.New(value, props.Text{
			Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}

	for i, item := range items {
		amount := item.Total
		if amount.IsZero() {
			// Fallback for rows stored before derived totals existed.
			amount = item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity))
		}
		result = append(result, row.New(7).Add(
			cell(fmt.Sprintf("%d", i+1), 1, align.Center),
			cell(truncate(item.ProductName, nameCharBudget), 4, align.Left),
			cell(item.ProductCode, 2, align.Center),
			cell(fmt.Sprintf("%d", item.Quantity), 1, align.Center),
			cell(item.UnitPrice.StringFixed(2), 2, align.Right),
			cell(amount.StringFixed(2), 2, align.Right),
		))
	}

	for i := len(items); i < count; i++ {
		result = append(result, row.New(7).Add(
			cell("", 1, align.Center),
			cell("", 4, align.Left),
			cell("", 2, align.Center),
			cell("", 1, align.Center),
			cell("", 2, align.Right),
			cell("", 2, align.Right),
		))
	}
	return result
}

// discountRow is emitted only when the combined discount is above zero. For
// percentage bill discounts the rate shows in parentheses.
func (g *InvoiceRenderer) discountRow(bill *entity.Bill) (core.Row, bool) {
	if !bill.TotalDiscount.GreaterThan(decimal.Zero) {
		return nil, false
	}
	label := "Discount"
	if bill.BillDiscountType == entity.DiscountPercentage && bill.BillDiscountValue.GreaterThan(decimal.Zero) {
		label = fmt.Sprintf("Discount (%s%%)", bill.BillDiscountValue.StringFixed(0))
	}
	return row.New(7).Add(
		col.New(8).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1, Right: 2,
		})),
		col.New(4).Add(text.New("- "+bill.TotalDiscount.StringFixed(2), props.Text{
			Size: 9, Align: align.Right, Top: 1, Right: 1,
		})),
	), true
}

func (g *InvoiceRenderer) totalRow(bill *entity.Bill) core.Row {
	return row.New(9).Add(
		col.New(8).Add(text.New("GRAND TOTAL", props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 1, Right: 2,
		})),
		col.New(4).Add(text.New(g.formatCurrency(bill.Total), props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 1, Right: 1,
		})),
	)
}

func (g *InvoiceRenderer) amountWordsRow(total decimal.Decimal) core.Row {
	words := domainbilling.AmountInWords(total.IntPart())
	return row.New(7).Add(
		col.New(12).Add(text.New(
			fmt.Sprintf("Amount in words: %s %s Only", g.opts.CurrencyCode, words),
			props.Text{Size: 8, Style: fontstyle.Italic, Top: 1},
		)),
	)
}

// taxBreakdown is the synthetic GST split shown in the breakdown table.
type taxBreakdown struct {
	taxable decimal.Decimal // total minus the reverse-calculated tax
	half    decimal.Decimal // one CGST or SGST half
	total   decimal.Decimal // full tax amount
}

// computeTax reverse-calculates the tax for a tax-inclusive grand total,
// tax = total × rate / (100 + rate), split into equal CGST and SGST halves.
// The rate is a configuration constant, not derived from per-item tax fields.
func computeTax(total decimal.Decimal, ratePercent int) taxBreakdown {
	rate := decimal.NewFromInt(int64(ratePercent))
	taxTotal := total.Mul(rate).Div(decimal.NewFromInt(100).Add(rate)).Round(2)
	return taxBreakdown{
		taxable: total.Sub(taxTotal),
		half:    taxTotal.Div(decimal.NewFromInt(2)).Round(2),
		total:   taxTotal,
	}
}

// addTaxRows emits the tax breakdown table and returns the tax total.
func (g *InvoiceRenderer) addTaxRows(m core.Maroto, total decimal.Decimal) decimal.Decimal {
	tax := computeTax(total, g.opts.TaxRatePercent)
	halfRate := decimal.NewFromInt(int64(g.opts.TaxRatePercent)).Div(decimal.NewFromInt(2))

	h := func(label string, size int) core.Col {
		return col.New(size).WithStyle(cellBorder).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Center, Color: colorPrimary, Top: 2,
		}))
	}
	v := func(value string, size int) core.Col {
		return col.New(size).WithStyle(cellBorder).Add(text.New(value, props.Text{
			Size: 8, Align: align.Center, Top: 1,
		}))
	}

	m.AddRows(row.New(8).Add(
		h("Taxable Value", 3),
		h(fmt.Sprintf("CGST @ %s%%", halfRate.StringFixed(1)), 3),
		h(fmt.Sprintf("SGST @ %s%%", halfRate.StringFixed(1)), 3),
		h("Total Tax", 3),
	))
	m.AddRows(row.New(7).Add(
		v(tax.taxable.StringFixed(2), 3),
		v(tax.half.StringFixed(2), 3),
		v(tax.half.StringFixed(2), 3),
		v(tax.total.StringFixed(2), 3),
	))
	return tax.total
}

func (g *InvoiceRenderer) taxWordsRow(taxTotal decimal.Decimal) core.Row {
	words := domainbilling.AmountInWords(taxTotal.IntPart())
	return row.New(7).Add(
		col.New(12).Add(text.New(
			fmt.Sprintf("Tax amount in words: %s %s Only", g.opts.CurrencyCode, words),
			props.Text{Size: 8, Style: fontstyle.Italic, Top: 1},
		)),
	)
}

func bankAndSignatureRow(business *entity.Business) core.Row {
	return row.New(24).Add(
		col.New(7).Add(
			text.New("BANK DETAILS", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New("Bank: "+nonEmpty(business.BankName, "—"), props.Text{Size: 8, Top: 6, Color: colorGray}),
			text.New("A/C No: "+nonEmpty(business.AccountNumber, "—"), props.Text{Size: 8, Top: 10, Color: colorGray}),
			text.New(fmt.Sprintf("IFSC: %s   |   Branch: %s",
				nonEmpty(business.IFSC, "—"), nonEmpty(business.Branch, "—"),
			), props.Text{Size: 8, Top: 14, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("for "+business.Name, props.Text{Size: 8, Align: align.Right, Top: 6}),
			text.New("Authorised Signatory", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 18,
			}),
		),
	)
}

func footerRow() core.Row {
	return row.New(8).Add(
		col.New(12).Add(text.New(
			"This is a computer generated invoice. Goods once sold will not be taken back. Subject to local jurisdiction.",
			props.Text{Size: 6.5, Align: align.Center, Color: colorGray, Top: 3},
		)),
	)
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func joinNonEmpty(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += p
	}
	return out
}

// truncate cuts s past max runes and appends an ellipsis marker.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// formatCurrency renders the grand total with the currency glyph and en-IN
// digit grouping (1,00,000.00), always two decimals.
func (g *InvoiceRenderer) formatCurrency(v decimal.Decimal) string {
	f, _ := v.Round(2).Float64()
	return g.printer.Sprintf("%s%v", g.opts.CurrencySymbol,
		number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
