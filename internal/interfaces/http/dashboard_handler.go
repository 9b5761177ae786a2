package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/pipeline-crm/internal/application/analytics"
)

// DashboardHandler serves the dashboard summary and the daily report.
type DashboardHandler struct {
	dashboard *appanalytics.DashboardUseCase
	reports   *appanalytics.ReportsUseCase
}

// NewDashboardHandler builds the handler.
func NewDashboardHandler(dashboard *appanalytics.DashboardUseCase, reports *appanalytics.ReportsUseCase) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, reports: reports}
}

// GetSummary returns pipeline totals, conversion rate, stage counts and the follow-ups due
// today and tomorrow.
// GET /api/dashboard/summary
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.dashboard.GetSummary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

// DailyReport lists the customers contacted and the stage changes of one day.
// GET /api/reports/daily?date=YYYY-MM-DD (default today)
func (h *DashboardHandler) DailyReport(c *fiber.Ctx) error {
	day, err := h.reports.ParseDay(c.Query("date"))
	if err != nil {
		return writeError(c, err)
	}
	report, err := h.reports.Daily(c.Context(), day)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(report)
}
