package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/pipeline-crm/internal/application/analytics"
	"github.com/jhoicas/pipeline-crm/internal/application/auth"
	"github.com/jhoicas/pipeline-crm/internal/application/crm"
	"github.com/jhoicas/pipeline-crm/internal/application/transfer"
	"github.com/jhoicas/pipeline-crm/internal/application/usecase"
	"github.com/jhoicas/pipeline-crm/pkg/logger"
)

// RouterDeps holds what the router needs.
type RouterDeps struct {
	CustomerUC  *crm.CustomerUseCase
	QuotationUC *crm.QuotationUseCase
	TransferUC  *transfer.UseCase
	DashboardUC *appanalytics.DashboardUseCase
	ReportsUC   *appanalytics.ReportsUseCase
	AIUC        *usecase.AIUseCase
	AuthUC      *auth.AuthUseCase
	Events      *crm.EventBus
	Log         *logger.Logger
	JWTSecret   string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Everything else needs a Bearer token for the operator account
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireRole(auth.RoleAdmin))

	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)
	customers.Put("/:id/stage", customerHandler.ChangeStage)
	customers.Post("/:id/notes", customerHandler.AddNote)

	quotationHandler := NewQuotationHandler(deps.QuotationUC)
	protected.Get("/quotations/next-number", quotationHandler.NextNumber)
	customers.Get("/:id/quotations", quotationHandler.List)
	customers.Post("/:id/quotations", quotationHandler.Create)
	customers.Put("/:id/quotations/:qid", quotationHandler.Update)
	customers.Post("/:id/quotations/:qid/confirm", quotationHandler.Confirm)
	customers.Get("/:id/quotations/:qid/pdf", quotationHandler.PDF)

	aiHandler := NewAIHandler(deps.AIUC)
	customers.Post("/:id/follow-up-suggestion", aiHandler.SuggestFollowUp)

	transferHandler := NewTransferHandler(deps.TransferUC)
	protected.Post("/import", transferHandler.Import)
	protected.Get("/export", transferHandler.Export)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.ReportsUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)
	protected.Get("/reports/daily", dashboardHandler.DailyReport)

	eventsHandler := NewEventsHandler(deps.Events, deps.Log)
	protected.Get("/events", eventsHandler.Stream)
}
