package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kmwaura/malipo-api/internal/domain/entity"
)

// Aggregates is the ledger-derived slice of an invoice. TotalPaid counts
// approved payments only; pending and rejected payments contribute zero.
type Aggregates struct {
	TotalPaid     decimal.Decimal
	BalanceDue    decimal.Decimal // max(0, grand_total - total_paid)
	PaymentStatus string
}

// DeriveAggregates recomputes TotalPaid/BalanceDue/PaymentStatus from the
// grand total, the sum of approved payments and the amounts of payments
// still pending.
//
// paid_pending_approval means: nothing approved yet, but a pending payment
// exists whose amount would not overshoot the grand total if approved. The
// caller must evaluate this inside the same transaction that changed the
// ledger, otherwise the condition races with concurrent approvals.
func DeriveAggregates(grandTotal, approvedTotal decimal.Decimal, pendingAmounts []decimal.Decimal) Aggregates {
	balance := grandTotal.Sub(approvedTotal)
	if balance.IsNegative() {
		balance = decimal.Zero
	}

	var status string
	switch {
	case approvedTotal.GreaterThan(grandTotal):
		// An invoice edit dropped the grand total below money already
		// approved. Surfaced explicitly, never hidden by the clamp above.
		status = entity.PaymentStatusOverpaid
	case approvedTotal.Equal(grandTotal) && approvedTotal.IsPositive():
		status = entity.PaymentStatusFullyPaid
	case approvedTotal.IsPositive():
		status = entity.PaymentStatusPartial
	case hasCoveringPending(grandTotal, pendingAmounts):
		status = entity.PaymentStatusPaidPendingApproval
	default:
		status = entity.PaymentStatusNotStarted
	}

	return Aggregates{TotalPaid: approvedTotal, BalanceDue: balance, PaymentStatus: status}
}

// hasCoveringPending reports whether any pending payment could be approved
// without exceeding the balance (which equals grandTotal when nothing is
// approved yet).
func hasCoveringPending(balance decimal.Decimal, pendingAmounts []decimal.Decimal) bool {
	for _, amount := range pendingAmounts {
		if amount.IsPositive() && amount.LessThanOrEqual(balance) {
			return true
		}
	}
	return false
}

// DeriveStatus maps the ledger view onto the legacy unpaid/paid/overdue
// flag: paid once nothing is owed, overdue when the due date has passed
// with money still outstanding.
func DeriveStatus(paymentStatus string, dueDate, now time.Time) string {
	switch paymentStatus {
	case entity.PaymentStatusFullyPaid, entity.PaymentStatusOverpaid:
		return entity.InvoiceStatusPaid
	}
	if now.After(dueDate) {
		return entity.InvoiceStatusOverdue
	}
	return entity.InvoiceStatusUnpaid
}
