package billing

import (
	"context"
	"fmt"

	"github.com/billmint/billmint-api/internal/domain"
	"github.com/billmint/billmint-api/internal/domain/entity"
	"github.com/billmint/billmint-api/internal/domain/repository"
)

// InvoiceUseCase turns a finalized bill into its exportable documents (PDF and
// XML) using the issuer profile on record.
type InvoiceUseCase struct {
	billRepo     repository.BillRepository
	businessRepo repository.BusinessRepository
	pdfGenerator InvoicePDFGenerator
	xmlExporter  InvoiceXMLExporter
}

// NewInvoiceUseCase builds the use case with all its dependencies.
func NewInvoiceUseCase(
	billRepo repository.BillRepository,
	businessRepo repository.BusinessRepository,
	pdfGenerator InvoicePDFGenerator,
	xmlExporter InvoiceXMLExporter,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		billRepo:     billRepo,
		businessRepo: businessRepo,
		pdfGenerator: pdfGenerator,
		xmlExporter:  xmlExporter,
	}
}

// DownloadInvoicePDF loads the bill and issuer profile and renders the Tax
// Invoice PDF.
//
// Returns:
//   - (pdfBytes, filename, nil)  on success
//   - domain.ErrNotFound         if the bill does not exist
//   - domain.ErrRenderInput      if the issuer profile is missing or the bill
//     has no items (never partially emits a document)
func (uc *InvoiceUseCase) DownloadInvoicePDF(ctx context.Context, billID string) (pdfBytes []byte, filename string, err error) {
	bill, business, err := uc.load(billID)
	if err != nil {
		return nil, "", err
	}

	pdfBytes, err = uc.pdfGenerator.GenerateInvoicePDF(ctx, bill, business)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generation failed: %w", err)
	}

	// Deterministic name: Invoice_<billNumber>_<isoDate>.pdf
	filename = fmt.Sprintf("Invoice_%s_%s.pdf", bill.BillNumber, bill.CreatedAt.Format("2006-01-02"))
	return pdfBytes, filename, nil
}

// DownloadInvoiceXML loads the bill and issuer profile and serializes the
// invoice XML.
func (uc *InvoiceUseCase) DownloadInvoiceXML(billID string) (xmlBytes []byte, filename string, err error) {
	bill, business, err := uc.load(billID)
	if err != nil {
		return nil, "", err
	}

	xmlBytes, err = uc.xmlExporter.ExportInvoiceXML(bill, business)
	if err != nil {
		return nil, "", fmt.Errorf("xml: export failed: %w", err)
	}

	filename = fmt.Sprintf("Invoice_%s_%s.xml", bill.BillNumber, bill.CreatedAt.Format("2006-01-02"))
	return xmlBytes, filename, nil
}

func (uc *InvoiceUseCase) load(billID string) (*entity.Bill, *entity.Business, error) {
	b, err := uc.billRepo.GetByID(billID)
	if err != nil {
		return nil, nil, fmt.Errorf("load bill: %w", err)
	}
	if b == nil {
		return nil, nil, domain.ErrNotFound
	}
	profile, err := uc.businessRepo.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("load business profile: %w", err)
	}
	if profile == nil {
		return nil, nil, fmt.Errorf("%w: business profile not configured", domain.ErrRenderInput)
	}
	return b, profile, nil
}
