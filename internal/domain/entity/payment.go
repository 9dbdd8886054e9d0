package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment decision states. Pending is the only non-terminal state: once a
// payment is approved or rejected the decision is append-only.
const (
	PaymentPending  = "pending"
	PaymentApproved = "approved"
	PaymentRejected = "rejected"
)

// Accepted payment methods.
const (
	MethodBankTransfer = "bank_transfer"
	MethodMpesa        = "mpesa"
	MethodCash         = "cash"
	MethodCheque       = "cheque"
	MethodOther        = "other"
)

// ValidPaymentMethod reports whether m is one of the accepted methods.
func ValidPaymentMethod(m string) bool {
	switch m {
	case MethodBankTransfer, MethodMpesa, MethodCash, MethodCheque, MethodOther:
		return true
	}
	return false
}

// Payment is a client-submitted payment against an invoice. Retained for
// audit even if the invoice is later edited; only approved payments count
// toward the invoice aggregates.
type Payment struct {
	ID            string
	InvoiceID     string
	AmountPaid    decimal.Decimal
	PaymentDate   time.Time
	Method        string // see Method* constants
	Reference     string // free text, required
	ProofURL      string // optional stored object reference
	Status        string // pending | approved | rejected
	ApprovalNotes string // required when rejecting
	ApprovedBy    string // admin user id, set on decision
	ApprovedAt    *time.Time
	SubmittedBy   string // client id
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
