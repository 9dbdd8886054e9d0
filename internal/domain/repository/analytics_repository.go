package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kmwaura/malipo-api/internal/domain/scoring"
)

// ClientActivityRow is a scoring rollup joined with client identity, as
// queried for agent funnel views.
type ClientActivityRow struct {
	ClientID       string
	ClientName     string
	ApprovalStatus string
	Activity       scoring.ClientActivity
}

// BillingSummary are the admin dashboard KPIs for a date range.
type BillingSummary struct {
	InvoiceCount     int
	InvoicedTotal    decimal.Decimal // Σ grand_total
	CollectedTotal   decimal.Decimal // Σ approved payments
	OutstandingTotal decimal.Decimal // Σ balance_due
	OverdueCount     int
	PendingPayments  int // payments awaiting an approval decision
}

// AnalyticsRepository defines the read-only reporting queries.
// Implementations never modify data.
type AnalyticsRepository interface {
	// GetClientActivity returns the scoring inputs for a single client.
	GetClientActivity(ctx context.Context, companyID, clientID string) (scoring.ClientActivity, error)

	// ListClientActivityByAgent returns the rollups for every client the
	// agent onboarded, feeding the funnel view.
	ListClientActivityByAgent(ctx context.Context, companyID, agentID string) ([]ClientActivityRow, error)

	// GetBillingSummary aggregates invoices and payments issued in the
	// period. Uses COALESCE so an empty period yields zeros, not NULLs.
	GetBillingSummary(ctx context.Context, companyID string, startDate, endDate time.Time) (BillingSummary, error)
}
