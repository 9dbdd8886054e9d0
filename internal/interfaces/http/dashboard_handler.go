package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/kmwaura/malipo-api/internal/application/analytics"
	"github.com/kmwaura/malipo-api/internal/application/dto"
)

// DashboardHandler serves the console dashboard endpoints.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler builds the handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary returns today's and the current month's billing rollup.
// GET /api/dashboard/summary
//
// Response: DashboardSummaryDTO (invoiced/collected/outstanding amounts,
// overdue and pending counters, month_label). No parameters; the date
// windows are computed server-side.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code: "UNAUTHORIZED", Message: "company_id missing from token",
		})
	}

	summary, err := h.uc.GetSummary(c.Context(), companyID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}

	return c.JSON(summary)
}
