package billing

import (
	"context"

	"github.com/kmwaura/malipo-api/internal/domain/entity"
	"github.com/kmwaura/malipo-api/internal/domain/repository"
)

// InvoicingTxRunner runs fn with invoice and sequence repositories bound to
// one transaction: number generation and invoice+item inserts commit or
// roll back together.
type InvoicingTxRunner interface {
	RunInvoicing(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		seqRepo repository.InvoiceSequenceRepository,
	) error) error
}

// LedgerTxRunner runs fn with invoice and payment repositories bound to one
// transaction. Every operation that changes a payment's status, or edits an
// invoice with payments attached, goes through here so the aggregate
// recompute commits atomically with the change.
type LedgerTxRunner interface {
	RunLedger(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error) error
}

// InvoicePDFGenerator renders the printable projection of an invoice.
// Pure output: never mutates the model.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice, company *entity.Company, items []*entity.InvoiceItem) ([]byte, error)
}

// Config carries the billing knobs from app configuration.
type Config struct {
	DefaultPrefix string // invoice number prefix when the request has none
	DueDays       int    // due date offset applied when the request has none
	CurrencyLabel string // e.g. "KES"
}
