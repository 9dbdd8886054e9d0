package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kmwaura/malipo-api/internal/domain/entity"
)

// InvoiceFilter narrows ListByCompany results. Zero values mean "no filter".
type InvoiceFilter struct {
	ClientID      string
	Status        string
	PaymentStatus string
	Limit         int
	Offset        int
}

// InvoiceRepository is the persistence port for Invoice and its items.
// Implementations must be usable with a pool or an open transaction.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateItem(item *entity.InvoiceItem) error
	GetByID(id string) (*entity.Invoice, error)
	// GetByIDForUpdate loads the invoice with a row lock so concurrent
	// approvals against the same invoice serialize. Only meaningful inside
	// a transaction.
	GetByIDForUpdate(id string) (*entity.Invoice, error)
	GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error)
	ListByCompany(companyID string, f InvoiceFilter) ([]*entity.Invoice, error)
	// Update rewrites header fields and the computed totals.
	Update(invoice *entity.Invoice) error
	// UpdateAggregates rewrites only the ledger-derived columns.
	UpdateAggregates(id string, totalPaid, balanceDue decimal.Decimal, paymentStatus, status string, updatedAt time.Time) error
	// ReplaceItems deletes the invoice's item set and inserts the new one.
	ReplaceItems(invoiceID string, items []*entity.InvoiceItem) error
	// Delete removes the invoice and (via FK cascade) its items. Hard
	// delete, reserved for erroneous invoices.
	Delete(id string) error
}
