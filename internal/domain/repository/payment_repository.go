package repository

import (
	"github.com/shopspring/decimal"

	"github.com/kmwaura/malipo-api/internal/domain/entity"
)

// PaymentRepository is the persistence port for the payment ledger.
// Implementations must be usable with a pool or an open transaction.
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	GetByID(id string) (*entity.Payment, error)
	// GetByIDForUpdate loads the payment with a row lock so two concurrent
	// decisions on the same payment serialize. Only meaningful inside a
	// transaction.
	GetByIDForUpdate(id string) (*entity.Payment, error)
	ListByInvoice(invoiceID string) ([]*entity.Payment, error)
	ListByClient(clientID string, limit, offset int) ([]*entity.Payment, error)
	// SumApprovedByInvoice returns Σ amount_paid of approved payments.
	// Pending and rejected payments never contribute.
	SumApprovedByInvoice(invoiceID string) (decimal.Decimal, error)
	// PendingAmountsByInvoice returns the amounts of payments still pending.
	PendingAmountsByInvoice(invoiceID string) ([]decimal.Decimal, error)
	// UpdateDecision persists an approve/reject outcome: status, notes,
	// approver and decision timestamp.
	UpdateDecision(payment *entity.Payment) error
}
