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

	appanalytics "github.com/kmwaura/malipo-api/internal/application/analytics"
	"github.com/kmwaura/malipo-api/internal/application/auth"
	"github.com/kmwaura/malipo-api/internal/application/billing"
	"github.com/kmwaura/malipo-api/internal/application/clients"
	"github.com/kmwaura/malipo-api/internal/application/companies"
	"github.com/kmwaura/malipo-api/internal/application/documents"
	"github.com/kmwaura/malipo-api/internal/application/ports"
	infraai "github.com/kmwaura/malipo-api/internal/infrastructure/ai"
	"github.com/kmwaura/malipo-api/internal/infrastructure/notify"
	infrapdf "github.com/kmwaura/malipo-api/internal/infrastructure/pdf"
	"github.com/kmwaura/malipo-api/internal/infrastructure/postgres"
	"github.com/kmwaura/malipo-api/internal/infrastructure/storage"
	httpRouter "github.com/kmwaura/malipo-api/internal/interfaces/http"
	"github.com/kmwaura/malipo-api/pkg/config"
	"github.com/kmwaura/malipo-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	agentRepo := postgres.NewFieldAgentRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	objectStore := storage.NewSupabaseStorage(cfg.Storage.BaseURL, cfg.Storage.Bucket, cfg.Storage.ServiceKey)
	events := notify.NewLogPublisher(log.Zerolog())

	// Classifier stays nil without an API key; document uploads then skip
	// the category suggestion.
	var classifier ports.DocumentClassifier
	if cfg.AI.AnthropicAPIKey != "" {
		classifier = infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel)
	}

	companyUC := companies.NewCompanyUseCase(companyRepo)
	clientUC := clients.NewClientUseCase(clientRepo, agentRepo, events)
	documentUC := documents.NewDocumentUseCase(documentRepo, clientRepo, objectStore, classifier, events, log.Zerolog())
	invoiceUC := billing.NewInvoiceUseCase(txRunner, txRunner, invoiceRepo, clientRepo, events, billing.Config{
		DefaultPrefix: cfg.Billing.DefaultPrefix,
		DueDays:       cfg.Billing.DueDays,
		CurrencyLabel: cfg.Billing.CurrencyLabel,
	})
	paymentUC := billing.NewPaymentUseCase(txRunner, invoiceRepo, paymentRepo, objectStore, events)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	pdfUC := billing.NewPDFUseCase(invoiceRepo, companyRepo, pdfGenerator)

	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, clientRepo, agentRepo)
	authUC := auth.NewAuthUseCase(userRepo, companyRepo, clientRepo, agentRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI locally: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Malipo API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:   companyUC,
		AuthUC:      authUC,
		ClientUC:    clientUC,
		DocumentUC:  documentUC,
		InvoiceUC:   invoiceUC,
		PaymentUC:   paymentUC,
		PDFUC:       pdfUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
