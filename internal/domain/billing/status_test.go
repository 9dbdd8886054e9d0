package billing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/kmwaura/malipo-api/internal/domain/billing"
	"github.com/kmwaura/malipo-api/internal/domain/entity"
)

func TestDeriveAggregates_NotStarted(t *testing.T) {
	agg := billing.DeriveAggregates(d("2320"), decimal.Zero, nil)

	assert.Equal(t, entity.PaymentStatusNotStarted, agg.PaymentStatus)
	assert.True(t, agg.TotalPaid.IsZero())
	assert.True(t, d("2320").Equal(agg.BalanceDue))
}

func TestDeriveAggregates_Partial(t *testing.T) {
	agg := billing.DeriveAggregates(d("2320"), d("1000"), nil)

	assert.Equal(t, entity.PaymentStatusPartial, agg.PaymentStatus)
	assert.True(t, d("1320").Equal(agg.BalanceDue))
}

func TestDeriveAggregates_FullyPaid(t *testing.T) {
	agg := billing.DeriveAggregates(d("2320"), d("2320"), nil)

	assert.Equal(t, entity.PaymentStatusFullyPaid, agg.PaymentStatus)
	assert.True(t, agg.BalanceDue.IsZero())
}

func TestDeriveAggregates_OverpaidAfterEdit(t *testing.T) {
	// The invoice was edited down below money already approved. The balance
	// clamps at zero but the status says so out loud.
	agg := billing.DeriveAggregates(d("800"), d("1000"), nil)

	assert.Equal(t, entity.PaymentStatusOverpaid, agg.PaymentStatus)
	assert.True(t, agg.BalanceDue.IsZero(), "balance clamps at zero, got %s", agg.BalanceDue)
	assert.True(t, d("1000").Equal(agg.TotalPaid))
}

func TestDeriveAggregates_PaidPendingApproval(t *testing.T) {
	// Nothing approved, one pending payment covering the full total.
	agg := billing.DeriveAggregates(d("2320"), decimal.Zero, []decimal.Decimal{d("2320")})

	assert.Equal(t, entity.PaymentStatusPaidPendingApproval, agg.PaymentStatus)
	assert.True(t, d("2320").Equal(agg.BalanceDue), "pending money is not yet paid")
}

func TestDeriveAggregates_SmallPendingAlsoCounts(t *testing.T) {
	// Any pending payment that would not overshoot the balance qualifies.
	agg := billing.DeriveAggregates(d("2320"), decimal.Zero, []decimal.Decimal{d("500")})

	assert.Equal(t, entity.PaymentStatusPaidPendingApproval, agg.PaymentStatus)
}

func TestDeriveAggregates_OvershootingPendingIgnored(t *testing.T) {
	agg := billing.DeriveAggregates(d("2320"), decimal.Zero, []decimal.Decimal{d("5000")})

	assert.Equal(t, entity.PaymentStatusNotStarted, agg.PaymentStatus)
}

func TestDeriveAggregates_PartialWinsOverPending(t *testing.T) {
	// Once something is approved, pending payments no longer drive status.
	agg := billing.DeriveAggregates(d("2320"), d("1000"), []decimal.Decimal{d("1320")})

	assert.Equal(t, entity.PaymentStatusPartial, agg.PaymentStatus)
}

func TestDeriveStatus(t *testing.T) {
	due := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	before := due.AddDate(0, 0, -1)
	after := due.AddDate(0, 0, 1)

	assert.Equal(t, entity.InvoiceStatusPaid, billing.DeriveStatus(entity.PaymentStatusFullyPaid, due, after))
	assert.Equal(t, entity.InvoiceStatusPaid, billing.DeriveStatus(entity.PaymentStatusOverpaid, due, after))
	assert.Equal(t, entity.InvoiceStatusOverdue, billing.DeriveStatus(entity.PaymentStatusPartial, due, after))
	assert.Equal(t, entity.InvoiceStatusUnpaid, billing.DeriveStatus(entity.PaymentStatusPartial, due, before))
	assert.Equal(t, entity.InvoiceStatusUnpaid, billing.DeriveStatus(entity.PaymentStatusNotStarted, due, before))
}
