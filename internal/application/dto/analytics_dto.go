package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO is the response of GET /api/dashboard/summary:
// month-to-date billing KPIs plus today's collections.
type DashboardSummaryDTO struct {
	TodayCollected   decimal.Decimal `json:"today_collected"`
	MonthInvoiced    decimal.Decimal `json:"month_invoiced"`
	MonthCollected   decimal.Decimal `json:"month_collected"`
	MonthOutstanding decimal.Decimal `json:"month_outstanding"`
	InvoiceCount     int             `json:"invoice_count"`
	OverdueCount     int             `json:"overdue_count"`
	PendingPayments  int             `json:"pending_payments"`
	DateLabel        string          `json:"date_label"` // e.g. "August 2026"
}

// EngagementDTO is the response of GET /api/clients/:id/engagement.
type EngagementDTO struct {
	ClientID       string `json:"client_id"`
	Score          int    `json:"score"` // 0-100
	InvoiceCount   int    `json:"invoice_count"`
	FullyPaidCount int    `json:"fully_paid_count"`
	LastActivity   string `json:"last_activity,omitempty"`
}

// AgentFunnelDTO is one client row in GET /api/agents/:id/funnel.
type AgentFunnelDTO struct {
	ClientID       string `json:"client_id"`
	ClientName     string `json:"client_name"`
	ApprovalStatus string `json:"approval_status,omitempty"`
	Score          int    `json:"score"`
	InvoiceCount   int    `json:"invoice_count"`
	LastActivity   string `json:"last_activity,omitempty"`
}
