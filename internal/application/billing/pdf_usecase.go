package billing

import (
	"context"
	"fmt"

	"github.com/kmwaura/malipo-api/internal/domain"
	"github.com/kmwaura/malipo-api/internal/domain/repository"
)

// PDFUseCase produces the printable projection of an invoice. It reads
// already-computed state and never mutates the model.
type PDFUseCase struct {
	invoiceRepo repository.InvoiceRepository
	companyRepo repository.CompanyRepository
	generator   InvoicePDFGenerator
}

// NewPDFUseCase builds the use case.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{invoiceRepo: invoiceRepo, companyRepo: companyRepo, generator: generator}
}

// DownloadInvoicePDF loads the invoice, its items and the company header
// and renders the PDF. Returns the bytes plus a suggested filename.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, actor Actor, invoiceID string) ([]byte, string, error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: load invoice: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}
	if err := authorizeInvoiceRead(actor, inv); err != nil {
		return nil, "", err
	}
	items, err := uc.invoiceRepo.GetItemsByInvoiceID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: load items: %w", err)
	}
	company, err := uc.companyRepo.GetByID(inv.CompanyID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: load company: %w", err)
	}
	if company == nil {
		return nil, "", domain.ErrNotFound
	}

	pdfBytes, err := uc.generator.GenerateInvoicePDF(ctx, inv, company, items)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: render: %w", err)
	}
	return pdfBytes, fmt.Sprintf("%s.pdf", inv.InvoiceNo), nil
}
