// Package scoring derives the 0-100 client engagement score used on agent
// dashboards. Advisory only: nothing here feeds back into invoice or
// payment lifecycle decisions.
package scoring

import (
	"time"

	"github.com/kmwaura/malipo-api/internal/domain/entity"
)

// ClientActivity is the read-only rollup of a client's invoicing history.
type ClientActivity struct {
	ApprovalStatus string // "" when the client has no onboarding status
	InvoiceCount   int
	FullyPaidCount int
	LastInvoiceAt  *time.Time
	LastPaymentAt  *time.Time // latest approved or pending payment
}

// Score breakdown:
//
//	+20 onboarding approved
//	+30 has at least one invoice
//	+30 has at least one fully paid invoice
//	+20 all invoices fully paid (requires at least one)
//
// Capped at 100 by construction.
func Score(a ClientActivity) int {
	score := 0
	if a.ApprovalStatus == entity.ClientApprovalApproved {
		score += 20
	}
	if a.InvoiceCount > 0 {
		score += 30
	}
	if a.FullyPaidCount > 0 {
		score += 30
	}
	if a.InvoiceCount > 0 && a.FullyPaidCount == a.InvoiceCount {
		score += 20
	}
	return score
}

// LastActivity returns the most recent of the client's invoice and payment
// timestamps, or nil when there is no activity at all.
func LastActivity(a ClientActivity) *time.Time {
	latest := a.LastInvoiceAt
	if a.LastPaymentAt != nil && (latest == nil || a.LastPaymentAt.After(*latest)) {
		latest = a.LastPaymentAt
	}
	return latest
}
