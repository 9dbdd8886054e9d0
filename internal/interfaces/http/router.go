package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/kmwaura/malipo-api/internal/application/analytics"
	"github.com/kmwaura/malipo-api/internal/application/auth"
	"github.com/kmwaura/malipo-api/internal/application/billing"
	"github.com/kmwaura/malipo-api/internal/application/clients"
	"github.com/kmwaura/malipo-api/internal/application/companies"
	"github.com/kmwaura/malipo-api/internal/application/documents"
)

// RouterDeps are the dependencies for the router.
type RouterDeps struct {
	CompanyUC   *companies.CompanyUseCase
	AuthUC      *auth.AuthUseCase
	ClientUC    *clients.ClientUseCase
	DocumentUC  *documents.DocumentUseCase
	InvoiceUC   *billing.InvoiceUseCase
	PaymentUC   *billing.PaymentUseCase
	PDFUC       *billing.PDFUseCase
	DashboardUC *appanalytics.DashboardUseCase
	JWTSecret   string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Company onboarding is public; everything else needs a Bearer token.
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	api.Post("/companies", companyHandler.Create)

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole("admin")
	staffOnly := RequireRole("admin", "agent")
	selfOrStaff := RequireSelf()

	companiesGroup := protected.Group("/companies")
	companiesGroup.Get("/:id", companyHandler.GetByID)
	companiesGroup.Put("/:id", adminOnly, companyHandler.Update)

	// Clients (protected)
	clientsGroup := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC, deps.DashboardUC)
	documentHandler := NewDocumentHandler(deps.DocumentUC)
	clientsGroup.Post("/", staffOnly, clientHandler.Create)
	clientsGroup.Get("/", staffOnly, clientHandler.List)
	clientsGroup.Get("/:id", selfOrStaff, clientHandler.GetByID)
	clientsGroup.Put("/:id", staffOnly, clientHandler.Update)
	clientsGroup.Post("/:id/approve", adminOnly, clientHandler.Approve)
	clientsGroup.Post("/:id/reject", adminOnly, clientHandler.Reject)
	clientsGroup.Delete("/:id", adminOnly, clientHandler.Deactivate)
	clientsGroup.Get("/:id/engagement", selfOrStaff, clientHandler.GetEngagement)
	clientsGroup.Post("/:id/documents", selfOrStaff, documentHandler.Submit)
	clientsGroup.Get("/:id/documents", selfOrStaff, documentHandler.ListByClient)

	// Documents (protected, admin)
	documentsGroup := protected.Group("/documents", adminOnly)
	documentsGroup.Get("/", documentHandler.List)
	documentsGroup.Get("/:id", documentHandler.GetByID)
	documentsGroup.Post("/:id/review", documentHandler.Review)

	// Field agents (protected, admin)
	agentsGroup := protected.Group("/agents", adminOnly)
	agentHandler := NewAgentHandler(deps.ClientUC, deps.DashboardUC)
	agentsGroup.Post("/", agentHandler.Create)
	agentsGroup.Get("/", agentHandler.List)
	agentsGroup.Get("/:id/funnel", agentHandler.GetFunnel)

	// Invoices (protected)
	invoicesGroup := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PDFUC)
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	invoicesGroup.Post("/", adminOnly, invoiceHandler.Create)
	invoicesGroup.Get("/", invoiceHandler.List)
	invoicesGroup.Get("/:id", invoiceHandler.GetByID)
	invoicesGroup.Put("/:id", adminOnly, invoiceHandler.Update)
	invoicesGroup.Delete("/:id", adminOnly, invoiceHandler.Delete)
	invoicesGroup.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoicesGroup.Post("/:id/payments", paymentHandler.Submit)
	invoicesGroup.Get("/:id/payments", paymentHandler.ListByInvoice)

	// Payment decisions (protected, admin)
	paymentsGroup := protected.Group("/payments", adminOnly)
	paymentsGroup.Post("/:id/approve", paymentHandler.Approve)
	paymentsGroup.Post("/:id/reject", paymentHandler.Reject)

	// Dashboard (protected, admin)
	dashboardGroup := protected.Group("/dashboard", adminOnly)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboardGroup.Get("/summary", dashboardHandler.GetSummary)
}
