package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Rental-api/internal/application/analytics"
	"github.com/jhoicas/Rental-api/internal/application/auth"
	"github.com/jhoicas/Rental-api/internal/application/billing"
	"github.com/jhoicas/Rental-api/internal/application/usecase"
	"github.com/jhoicas/Rental-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	BuildingUC    *usecase.BuildingUseCase
	RoomUC        *usecase.RoomUseCase
	ContractUC    *usecase.ContractUseCase
	ServiceUC     *usecase.ServiceUseCase
	DraftUC       *billing.DraftUseCase
	CreateInvoice *billing.CreateInvoiceUseCase
	PDFUC         *billing.PDFUseCase
	DashboardUC   *appanalytics.DashboardUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)
	authGroup.Put("/password", AuthMiddleware(deps.JWTSecret), authHandler.ChangePassword)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)
	staff := RequireRole(entity.RoleAdmin, entity.RoleOperator)

	protected.Get("/services", NewServiceHandler(deps.ServiceUC).List)

	buildings := protected.Group("/buildings")
	buildingHandler := NewBuildingHandler(deps.BuildingUC)
	buildings.Get("/", buildingHandler.List)
	buildings.Post("/", adminOnly, buildingHandler.Create)
	buildings.Get("/:id", buildingHandler.GetByID)
	buildings.Put("/:id", adminOnly, buildingHandler.Update)

	rooms := protected.Group("/rooms")
	roomHandler := NewRoomHandler(deps.RoomUC)
	rooms.Get("/", roomHandler.List)
	rooms.Post("/", adminOnly, roomHandler.Create)
	rooms.Get("/:id", roomHandler.GetByID)
	rooms.Patch("/:id/status", staff, roomHandler.UpdateStatus)
	rooms.Get("/:id/lookup", roomHandler.Lookup)

	contracts := protected.Group("/contracts")
	contractHandler := NewContractHandler(deps.ContractUC)
	contracts.Get("/", contractHandler.List)
	contracts.Post("/", adminOnly, contractHandler.Create)
	contracts.Get("/:id", contractHandler.GetByID)
	contracts.Post("/:id/terminate", adminOnly, contractHandler.Terminate)

	registerInvoiceRoutes(protected, NewInvoiceHandler(deps.DraftUC, deps.CreateInvoice, deps.PDFUC), staff)

	protected.Get("/dashboard/summary", NewDashboardHandler(deps.DashboardUC).GetSummary)
}

// registerInvoiceRoutes rutas de facturación; emitir exige rol de staff.
func registerInvoiceRoutes(r fiber.Router, h *InvoiceHandler, staff fiber.Handler) {
	invoices := r.Group("/invoices")
	invoices.Post("/draft", h.Draft)
	invoices.Post("/preview", h.Preview)
	invoices.Post("/", staff, h.Create)
	invoices.Get("/", h.List)
	invoices.Get("/:id", h.GetByID)
	invoices.Get("/:id/pdf", h.PDF)
}
