package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/pipeline-crm/internal/application/analytics"
	"github.com/jhoicas/pipeline-crm/internal/application/auth"
	"github.com/jhoicas/pipeline-crm/internal/application/crm"
	"github.com/jhoicas/pipeline-crm/internal/application/ports"
	"github.com/jhoicas/pipeline-crm/internal/application/transfer"
	"github.com/jhoicas/pipeline-crm/internal/application/usecase"
	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/ledger"
	"github.com/jhoicas/pipeline-crm/internal/domain/lifecycle"
	"github.com/jhoicas/pipeline-crm/internal/domain/repository"
	infraai "github.com/jhoicas/pipeline-crm/internal/infrastructure/ai"
	"github.com/jhoicas/pipeline-crm/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/pipeline-crm/internal/infrastructure/pdf"
	"github.com/jhoicas/pipeline-crm/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/pipeline-crm/internal/interfaces/http"
	"github.com/jhoicas/pipeline-crm/pkg/config"
	"github.com/jhoicas/pipeline-crm/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load config: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("starting")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx := context.Background()
	clock := domain.SystemClock{}

	repo, closeStore := openStore(ctx, cfg, log)
	defer closeStore()

	if cfg.Store.SeedDemo {
		seedDemo(ctx, repo, clock.Now(), log)
	}

	numbers := ledger.NewNumberGenerator(cfg.CRM.QuotationPrefix)
	engine := lifecycle.NewEngine(clock, lifecycle.WithNumbers(numbers))
	bus := crm.NewEventBus(crm.DefaultEventBuffer, log)
	writer := crm.NewWriter(repo, engine, bus, log)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	customerUC := crm.NewCustomerUseCase(writer, cfg.CRM.FollowUpDays)
	quotationUC := crm.NewQuotationUseCase(writer, numbers, pdfGenerator, companyProfile(cfg.Company))
	transferUC := transfer.NewUseCase(writer, customerUC, pdfGenerator)
	dashboardUC := analytics.NewDashboardUseCase(repo, clock, cfg.CRM.FollowUpDays)
	reportsUC := analytics.NewReportsUseCase(repo, clock)
	aiUC := usecase.NewAIUseCase(newSuggester(cfg.AI, cfg.Company.Name, log), repo, log)

	passwordHash := cfg.Auth.PasswordHash
	if passwordHash == "" {
		passwordHash, err = auth.HashPassword("admin")
		if err != nil {
			log.Fatal().Err(err).Msg("hash default password")
		}
		log.Warn().Str("username", cfg.Auth.Username).Msg("AUTH_PASSWORD_HASH not set, using default password")
	}
	authUC := auth.NewAuthUseCase(
		auth.Credentials{Username: cfg.Auth.Username, PasswordHash: passwordHash},
		auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: 0, // SSE streams stay open
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Pipeline CRM API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CustomerUC:  customerUC,
		QuotationUC: quotationUC,
		TransferUC:  transferUC,
		DashboardUC: dashboardUC,
		ReportsUC:   reportsUC,
		AIUC:        aiUC,
		AuthUC:      authUC,
		Events:      bus,
		Log:         log,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("http server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	bus.Close()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("stopped")
}

// openStore returns the configured customer repository and its cleanup func.
func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.CustomerRepository, func()) {
	if cfg.Store.Driver != "postgres" {
		return memory.NewCustomerRepo(), func() {}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		log.Fatal().Err(err).Msg("apply migrations")
	}
	return postgres.NewCustomerRepository(pool), pool.Close
}

// seedDemo loads the demo customers when the store is empty.
func seedDemo(ctx context.Context, repo repository.CustomerRepository, now time.Time, log *logger.Logger) {
	existing, err := repo.List(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("check store before seeding")
	}
	if len(existing) > 0 {
		return
	}
	demo := memory.DemoCustomers(now)
	if err := repo.CreateMany(ctx, demo); err != nil {
		log.Fatal().Err(err).Msg("seed demo customers")
	}
	log.Info().Int("customers", len(demo)).Msg("demo customers loaded")
}

// newSuggester picks the follow-up provider. A nil result makes every suggestion fall back.
func newSuggester(cfg config.AIConfig, company string, log *logger.Logger) ports.FollowUpSuggester {
	switch cfg.Provider {
	case "anthropic":
		if cfg.AnthropicAPIKey != "" {
			return infraai.NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicModel, company)
		}
	case "gemini":
		if cfg.GeminiAPIKey != "" {
			return infraai.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel, company)
		}
	case "openai":
		if cfg.OpenAIAPIKey != "" {
			return infraai.NewOpenAIService(cfg.OpenAIAPIKey, cfg.OpenAIModel, company)
		}
	case "", "none":
		return nil
	default:
		log.Warn().Str("provider", cfg.Provider).Msg("unknown AI_PROVIDER, suggestions disabled")
		return nil
	}
	log.Warn().Str("provider", cfg.Provider).Msg("AI provider selected without an API key, suggestions disabled")
	return nil
}

func companyProfile(c config.CompanyConfig) ports.CompanyProfile {
	return ports.CompanyProfile{
		Name:          c.Name,
		Tagline:       c.Tagline,
		Address:       c.Address,
		GSTIN:         c.GSTIN,
		Contact:       c.Contact,
		BankName:      c.BankName,
		AccountName:   c.Name,
		AccountNumber: c.AccountNumber,
		IFSC:          c.IFSC,
		Terms:         c.Terms,
	}
}
