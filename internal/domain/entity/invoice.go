package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Legacy invoice status flag (kept for list views and filters).
const (
	InvoiceStatusUnpaid  = "unpaid"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusOverdue = "overdue"
)

// Payment status derived from the payment ledger. Never set directly by
// callers; recomputed inside the same transaction as any ledger change.
const (
	PaymentStatusNotStarted          = "not_started"
	PaymentStatusPartial             = "partial"
	PaymentStatusPaidPendingApproval = "paid_pending_approval"
	PaymentStatusFullyPaid           = "fully_paid"
	PaymentStatusOverpaid            = "overpaid" // grand total fell below approved payments after an edit
)

// Invoice is the billing document header.
//
// Subtotal/VATTotal/GrandTotal are derived from the item set; TotalPaid and
// BalanceDue are derived from approved payments only. The Client* snapshot
// fields are captured at creation so historical invoices stay stable even if
// the client record changes later.
type Invoice struct {
	ID            string
	CompanyID     string
	ClientID      *string // nil when the invoice was issued to a free-text client
	Prefix        string
	InvoiceNo     string // unique per company, e.g. "INV-2026-0042"
	DateIssued    time.Time
	DueDate       time.Time
	Status        string // unpaid | paid | overdue
	PaymentStatus string // see PaymentStatus* constants
	Subtotal      decimal.Decimal
	VATTotal      decimal.Decimal
	GrandTotal    decimal.Decimal
	TotalPaid     decimal.Decimal
	BalanceDue    decimal.Decimal
	CurrencyLabel string

	// Client snapshot at creation time.
	ClientName     string
	ClientEmail    string
	ClientPhone    string
	BillingAddress string

	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
