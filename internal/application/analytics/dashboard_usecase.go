// Package analytics contains the reporting use cases: the admin billing
// dashboard, per-client engagement and the agent onboarding funnel.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/kmwaura/malipo-api/internal/application/dto"
	"github.com/kmwaura/malipo-api/internal/domain"
	"github.com/kmwaura/malipo-api/internal/domain/repository"
	"github.com/kmwaura/malipo-api/internal/domain/scoring"
)

// DashboardUseCase builds the financial summary for today and the running
// month.
//
// Data source: AnalyticsRepository (read-only queries). It never touches the
// invoice tables directly; everything is delegated to the repository.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	clientRepo    repository.ClientRepository
	agentRepo     repository.FieldAgentRepository
}

// NewDashboardUseCase builds the use case.
func NewDashboardUseCase(
	analyticsRepo repository.AnalyticsRepository,
	clientRepo repository.ClientRepository,
	agentRepo repository.FieldAgentRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		analyticsRepo: analyticsRepo,
		clientRepo:    clientRepo,
		agentRepo:     agentRepo,
	}
}

// GetSummary builds the DashboardSummaryDTO for the company.
//
// Two parallel queries:
//  1. GetBillingSummary(today) → TodayCollected
//  2. GetBillingSummary(month) → invoiced, collected, outstanding, counts
func (uc *DashboardUseCase) GetSummary(ctx context.Context, companyID string) (*dto.DashboardSummaryDTO, error) {
	now := time.Now()

	// Today: 00:00:00.000 to 23:59:59.999
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)

	// Running month: the 1st at 00:00 through today at 23:59:59
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := todayEnd

	type summaryResult struct {
		summary repository.BillingSummary
		err     error
	}

	todayCh := make(chan summaryResult, 1)
	monthCh := make(chan summaryResult, 1)

	go func() {
		s, err := uc.analyticsRepo.GetBillingSummary(ctx, companyID, todayStart, todayEnd)
		todayCh <- summaryResult{s, err}
	}()
	go func() {
		s, err := uc.analyticsRepo.GetBillingSummary(ctx, companyID, monthStart, monthEnd)
		monthCh <- summaryResult{s, err}
	}()

	today := <-todayCh
	month := <-monthCh

	if today.err != nil {
		return nil, fmt.Errorf("dashboard: today metrics: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: month metrics: %w", month.err)
	}

	return &dto.DashboardSummaryDTO{
		TodayCollected:   today.summary.CollectedTotal.Round(2),
		MonthInvoiced:    month.summary.InvoicedTotal.Round(2),
		MonthCollected:   month.summary.CollectedTotal.Round(2),
		MonthOutstanding: month.summary.OutstandingTotal.Round(2),
		InvoiceCount:     month.summary.InvoiceCount,
		OverdueCount:     month.summary.OverdueCount,
		PendingPayments:  month.summary.PendingPayments,
		DateLabel:        monthLabel(now),
	}, nil
}

// GetEngagement returns the 0-100 engagement score for one client.
func (uc *DashboardUseCase) GetEngagement(ctx context.Context, companyID, clientID string) (*dto.EngagementDTO, error) {
	client, err := uc.clientRepo.GetByID(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if client.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	activity, err := uc.analyticsRepo.GetClientActivity(ctx, companyID, clientID)
	if err != nil {
		return nil, fmt.Errorf("engagement: client activity: %w", err)
	}

	out := &dto.EngagementDTO{
		ClientID:       clientID,
		Score:          scoring.Score(activity),
		InvoiceCount:   activity.InvoiceCount,
		FullyPaidCount: activity.FullyPaidCount,
	}
	if last := scoring.LastActivity(activity); last != nil {
		out.LastActivity = last.Format(time.RFC3339)
	}
	return out, nil
}

// GetAgentFunnel returns one row per client the agent onboarded, with
// approval state and engagement score.
func (uc *DashboardUseCase) GetAgentFunnel(ctx context.Context, companyID, agentID string) ([]dto.AgentFunnelDTO, error) {
	agent, err := uc.agentRepo.GetByID(agentID)
	if err != nil {
		return nil, err
	}
	if agent == nil {
		return nil, domain.ErrNotFound
	}
	if agent.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	rows, err := uc.analyticsRepo.ListClientActivityByAgent(ctx, companyID, agentID)
	if err != nil {
		return nil, fmt.Errorf("agent funnel: %w", err)
	}

	out := make([]dto.AgentFunnelDTO, 0, len(rows))
	for _, r := range rows {
		row := dto.AgentFunnelDTO{
			ClientID:       r.ClientID,
			ClientName:     r.ClientName,
			ApprovalStatus: r.ApprovalStatus,
			Score:          scoring.Score(r.Activity),
			InvoiceCount:   r.Activity.InvoiceCount,
		}
		if last := scoring.LastActivity(r.Activity); last != nil {
			row.LastActivity = last.Format(time.RFC3339)
		}
		out = append(out, row)
	}
	return out, nil
}

// monthLabel returns a readable month label, e.g. "August 2026".
func monthLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", t.Month().String(), t.Year())
}
