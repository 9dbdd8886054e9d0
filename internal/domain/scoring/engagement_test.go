package scoring_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kmwaura/malipo-api/internal/domain/entity"
	"github.com/kmwaura/malipo-api/internal/domain/scoring"
)

func TestScore_PerfectClient(t *testing.T) {
	a := scoring.ClientActivity{
		ApprovalStatus: entity.ClientApprovalApproved,
		InvoiceCount:   3,
		FullyPaidCount: 3,
	}
	assert.Equal(t, 100, scoring.Score(a))
}

func TestScore_NoActivity(t *testing.T) {
	assert.Equal(t, 0, scoring.Score(scoring.ClientActivity{}))
}

func TestScore_ApprovedOnly(t *testing.T) {
	a := scoring.ClientActivity{ApprovalStatus: entity.ClientApprovalApproved}
	assert.Equal(t, 20, scoring.Score(a))
}

func TestScore_InvoicedNotPaid(t *testing.T) {
	a := scoring.ClientActivity{
		ApprovalStatus: entity.ClientApprovalApproved,
		InvoiceCount:   2,
	}
	assert.Equal(t, 50, scoring.Score(a))
}

func TestScore_SomePaidSomeNot(t *testing.T) {
	// Approved (20) + has invoices (30) + has a fully paid one (30), but the
	// all-paid bonus is withheld.
	a := scoring.ClientActivity{
		ApprovalStatus: entity.ClientApprovalApproved,
		InvoiceCount:   4,
		FullyPaidCount: 2,
	}
	assert.Equal(t, 80, scoring.Score(a))
}

func TestScore_PendingClientWithHistory(t *testing.T) {
	// No onboarding bonus while approval is pending.
	a := scoring.ClientActivity{
		ApprovalStatus: entity.ClientApprovalPending,
		InvoiceCount:   1,
		FullyPaidCount: 1,
	}
	assert.Equal(t, 80, scoring.Score(a))
}

func TestLastActivity(t *testing.T) {
	older := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)

	assert.Nil(t, scoring.LastActivity(scoring.ClientActivity{}))

	got := scoring.LastActivity(scoring.ClientActivity{LastInvoiceAt: &older})
	assert.Equal(t, &older, got)

	got = scoring.LastActivity(scoring.ClientActivity{LastInvoiceAt: &older, LastPaymentAt: &newer})
	assert.Equal(t, &newer, got)

	got = scoring.LastActivity(scoring.ClientActivity{LastInvoiceAt: &newer, LastPaymentAt: &older})
	assert.Equal(t, &newer, got)
}
