package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kmwaura/malipo-api/internal/domain/repository"
	"github.com/kmwaura/malipo-api/internal/domain/scoring"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo runs the read-only reporting queries: billing KPIs,
// engagement rollups and the agent onboarding funnel.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository builds the analytics adapter.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetClientActivity returns the scoring inputs for one client.
// A fully paid invoice is payment_status fully_paid or overpaid; the last
// payment timestamp counts approved and pending submissions, not rejected.
// The payments join multiplies invoice rows, so the invoice counts must be
// DISTINCT over i.id.
func (r *AnalyticsRepo) GetClientActivity(
	ctx context.Context,
	companyID, clientID string,
) (scoring.ClientActivity, error) {
	const query = `
	SELECT
	    COALESCE(c.approval_status, '')                                      AS approval_status,
	    COUNT(DISTINCT i.id)                                                 AS invoice_count,
	    COUNT(DISTINCT i.id) FILTER
	        (WHERE i.payment_status IN ('fully_paid', 'overpaid'))           AS fully_paid_count,
	    MAX(i.date_issued)                                                   AS last_invoice_at,
	    MAX(p.created_at) FILTER (WHERE p.status IN ('approved', 'pending')) AS last_payment_at
	FROM clients c
	LEFT JOIN invoices i ON i.client_id = c.id
	LEFT JOIN payments p ON p.invoice_id = i.id
	WHERE c.company_id = $1 AND c.id = $2
	GROUP BY c.id, c.approval_status`

	var a scoring.ClientActivity
	err := r.pool.QueryRow(ctx, query, companyID, clientID).Scan(
		&a.ApprovalStatus, &a.InvoiceCount, &a.FullyPaidCount,
		&a.LastInvoiceAt, &a.LastPaymentAt,
	)
	if err != nil {
		if isNoRows(err) {
			return scoring.ClientActivity{}, nil
		}
		return scoring.ClientActivity{}, fmt.Errorf("analytics.GetClientActivity: %w", err)
	}
	return a, nil
}

// ListClientActivityByAgent returns the rollups for every client the agent
// onboarded, feeding the funnel view.
func (r *AnalyticsRepo) ListClientActivityByAgent(
	ctx context.Context,
	companyID, agentID string,
) ([]repository.ClientActivityRow, error) {
	const query = `
	SELECT
	    c.id                                                                 AS client_id,
	    c.name                                                               AS client_name,
	    COALESCE(c.approval_status, '')                                      AS approval_status,
	    COUNT(DISTINCT i.id)                                                 AS invoice_count,
	    COUNT(DISTINCT i.id) FILTER
	        (WHERE i.payment_status IN ('fully_paid', 'overpaid'))           AS fully_paid_count,
	    MAX(i.date_issued)                                                   AS last_invoice_at,
	    MAX(p.created_at) FILTER (WHERE p.status IN ('approved', 'pending')) AS last_payment_at
	FROM clients c
	LEFT JOIN invoices i ON i.client_id = c.id
	LEFT JOIN payments p ON p.invoice_id = i.id
	WHERE c.company_id = $1 AND c.agent_id = $2
	GROUP BY c.id, c.name, c.approval_status
	ORDER BY c.created_at DESC`

	rows, err := r.pool.Query(ctx, query, companyID, agentID)
	if err != nil {
		return nil, fmt.Errorf("analytics.ListClientActivityByAgent: %w", err)
	}
	defer rows.Close()

	var results []repository.ClientActivityRow
	for rows.Next() {
		var row repository.ClientActivityRow
		if err := rows.Scan(
			&row.ClientID,
			&row.ClientName,
			&row.ApprovalStatus,
			&row.Activity.InvoiceCount,
			&row.Activity.FullyPaidCount,
			&row.Activity.LastInvoiceAt,
			&row.Activity.LastPaymentAt,
		); err != nil {
			return nil, fmt.Errorf("analytics.ListClientActivityByAgent scan: %w", err)
		}
		row.Activity.ApprovalStatus = row.ApprovalStatus
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetBillingSummary aggregates invoices issued and payments decided in the
// period. Uses COALESCE so an empty period yields zeros, not NULLs.
func (r *AnalyticsRepo) GetBillingSummary(
	ctx context.Context,
	companyID string,
	startDate, endDate time.Time,
) (repository.BillingSummary, error) {
	const invoiceQuery = `
	SELECT
	    COUNT(i.id)                                                AS invoice_count,
	    COALESCE(SUM(i.grand_total),  0)                           AS invoiced_total,
	    COALESCE(SUM(i.balance_due),  0)                           AS outstanding_total,
	    COUNT(i.id) FILTER (WHERE i.status = 'overdue')            AS overdue_count
	FROM invoices i
	WHERE i.company_id = $1
	  AND i.date_issued BETWEEN $2 AND $3`

	const paymentQuery = `
	SELECT
	    COALESCE(SUM(p.amount_paid) FILTER (WHERE p.status = 'approved'
	        AND p.approved_at BETWEEN $2 AND $3), 0)               AS collected_total,
	    COUNT(p.id) FILTER (WHERE p.status = 'pending')            AS pending_payments
	FROM payments p
	JOIN invoices i ON i.id = p.invoice_id
	WHERE i.company_id = $1`

	var s repository.BillingSummary
	err := r.pool.QueryRow(ctx, invoiceQuery, companyID, startDate, endDate).Scan(
		&s.InvoiceCount, &s.InvoicedTotal, &s.OutstandingTotal, &s.OverdueCount,
	)
	if err != nil {
		return repository.BillingSummary{}, fmt.Errorf("analytics.GetBillingSummary invoices: %w", err)
	}
	err = r.pool.QueryRow(ctx, paymentQuery, companyID, startDate, endDate).Scan(
		&s.CollectedTotal, &s.PendingPayments,
	)
	if err != nil {
		return repository.BillingSummary{}, fmt.Errorf("analytics.GetBillingSummary payments: %w", err)
	}
	return s, nil
}
