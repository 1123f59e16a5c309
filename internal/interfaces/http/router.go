package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Panneaux-api/internal/application/auth"
	"github.com/jhoicas/Panneaux-api/internal/application/billing"
	"github.com/jhoicas/Panneaux-api/internal/application/usecase"
	"github.com/jhoicas/Panneaux-api/internal/domain/entity"
	"github.com/jhoicas/Panneaux-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC   *usecase.CompanyUseCase
	UserUC      *usecase.UserUseCase
	AuthUC      *auth.AuthUseCase
	TaxRateUC   *usecase.TaxRateUseCase
	CalculateUC *billing.CalculateUseCase
	DocumentUC  *billing.DocumentUseCase
	PDFUC       *billing.PDFUseCase
	LessorUC    *usecase.LessorUseCase
	Modules     moduleChecker
	JWTSecret   string
	Log         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies: alta y consulta públicas; la configuración fiscal solo para admin.
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id/tax-settings",
		AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin), companyHandler.UpdateTaxSettings)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/users/me", authHandler.Me)

	// Tax rates: lectura para todos, escritura para admin y comptable.
	taxRates := protected.Group("/tax-rates")
	taxRateHandler := NewTaxRateHandler(deps.TaxRateUC)
	writeRates := RequireRole(entity.RoleAdmin, entity.RoleComptable)
	taxRates.Get("/", taxRateHandler.List)
	taxRates.Post("/", writeRates, taxRateHandler.Create)
	taxRates.Delete("/:id", writeRates, taxRateHandler.Delete)

	// Calculations (sin persistencia)
	calcHandler := NewCalculationHandler(deps.CalculateUC)
	protected.Post("/calculations", calcHandler.Calculate)

	// Documents (módulo billing)
	documents := protected.Group("/documents", RequireModule(entity.ModuleBilling, deps.Modules, deps.Log))
	documentHandler := NewDocumentHandler(deps.DocumentUC, deps.PDFUC)
	documents.Post("/", documentHandler.Create)
	documents.Get("/", documentHandler.List)
	documents.Get("/:id", documentHandler.GetByID)
	documents.Get("/:id/pdf", documentHandler.DownloadPDF)

	// Lessors (módulo billboards)
	lessors := protected.Group("/lessors", RequireModule(entity.ModuleBillboards, deps.Modules, deps.Log))
	lessorHandler := NewLessorHandler(deps.LessorUC)
	lessors.Post("/", lessorHandler.Create)
	lessors.Get("/", lessorHandler.List)
	lessors.Delete("/:id", lessorHandler.Delete)
}
