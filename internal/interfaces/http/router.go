package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/verdeflow/trazo-api/internal/application/auth"
	"github.com/verdeflow/trazo-api/internal/application/batches"
	"github.com/verdeflow/trazo-api/internal/application/trace"
	"github.com/verdeflow/trazo-api/internal/application/usecase"
	"github.com/verdeflow/trazo-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	CompanyUC    *usecase.CompanyUseCase
	FacilityUC   *usecase.FacilityUseCase
	CultivarUC   *usecase.CultivarUseCase
	OrderUC      *usecase.ProductionOrderUseCase
	LifecycleUC  *batches.LifecycleUseCase
	TraceSheetUC *trace.SheetUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (público: el registro de empresa antecede al primer usuario)
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Facilities + areas (protegido; crear requiere admin)
	facilities := protected.Group("/facilities")
	facilityHandler := NewFacilityHandler(deps.FacilityUC)
	facilities.Post("/", RequireRole(entity.RoleAdmin), facilityHandler.Create)
	facilities.Get("/", facilityHandler.List)
	facilities.Get("/:id", facilityHandler.GetByID)
	facilities.Post("/:id/areas", RequireRole(entity.RoleAdmin), facilityHandler.CreateArea)
	facilities.Get("/:id/areas", facilityHandler.ListAreas)

	// Cultivars + catálogo (protegido)
	cultivars := protected.Group("/cultivars")
	cultivarHandler := NewCultivarHandler(deps.CultivarUC)
	cultivars.Post("/", cultivarHandler.Create)
	cultivars.Get("/", cultivarHandler.List)
	cultivars.Get("/:id", cultivarHandler.GetByID)
	protected.Get("/crop-types", cultivarHandler.ListCropTypes)

	// Production orders (protegido)
	orders := protected.Group("/production-orders")
	orderHandler := NewProductionOrderHandler(deps.OrderUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)

	// Batches: el motor de ciclo de vida (protegido)
	batchGroup := protected.Group("/batches")
	batchHandler := NewBatchHandler(deps.LifecycleUC, deps.TraceSheetUC)
	batchGroup.Post("/", batchHandler.Create)
	batchGroup.Get("/", batchHandler.List)
	batchGroup.Get("/:id", batchHandler.GetByID)
	batchGroup.Post("/:id/move", batchHandler.Move)
	batchGroup.Post("/:id/losses", batchHandler.RecordLoss)
	batchGroup.Post("/:id/split", batchHandler.Split)
	batchGroup.Post("/:id/merge", batchHandler.Merge)
	batchGroup.Post("/:id/harvest", batchHandler.Harvest)
	batchGroup.Post("/:id/archive", batchHandler.Archive)
	batchGroup.Post("/:id/phase", batchHandler.UpdatePhase)
	batchGroup.Get("/:id/activities", batchHandler.History)
	batchGroup.Get("/:id/children", batchHandler.Children)
	batchGroup.Get("/:id/lineage", batchHandler.Lineage)
	batchGroup.Get("/:id/trace-sheet", batchHandler.TraceSheet)
}
