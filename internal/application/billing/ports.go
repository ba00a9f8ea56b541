package billing

import (
	"context"

	"github.com/billmint/billmint-api/internal/domain/entity"
	"github.com/billmint/billmint-api/internal/domain/repository"
)

// BillingTxRunner runs a function inside a transaction with a tx-bound bill
// repository. Finalize uses it so the bill header and its item snapshots are
// persisted atomically.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(billRepo repository.BillRepository) error) error
}

// InvoicePDFGenerator renders a finalized bill plus the issuer profile into a
// fixed-layout Tax Invoice document.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, bill *entity.Bill, business *entity.Business) ([]byte, error)
}

// InvoiceXMLExporter serializes a finalized bill plus the issuer profile into
// an XML document.
type InvoiceXMLExporter interface {
	ExportInvoiceXML(bill *entity.Bill, business *entity.Business) ([]byte, error)
}
