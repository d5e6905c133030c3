package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Inventario-dental-api/internal/application/analytics"
	"github.com/jhoicas/Inventario-dental-api/internal/application/inventory"
	"github.com/jhoicas/Inventario-dental-api/internal/application/report"
	"github.com/jhoicas/Inventario-dental-api/internal/application/usecase"
	"github.com/jhoicas/Inventario-dental-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-dental-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LedgerUC    *inventory.LedgerUseCase
	SupplyUC    *usecase.SupplyUseCase
	DashboardUC *appanalytics.DashboardUseCase
	ReportUC    *report.ReportUseCase
	DB          Pinger
	ServiceName string
	JWTSecret   string // vacío = rutas de escritura sin autenticación
	Log         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	// guard exige token con alguno de los roles; sin secreto configurado no agrega nada.
	guard := func(roles ...string) []fiber.Handler {
		if deps.JWTSecret == "" {
			return nil
		}
		return []fiber.Handler{AuthMiddleware(deps.JWTSecret), RequireRole(roles...)}
	}
	with := func(h fiber.Handler, roles ...string) []fiber.Handler {
		return append(guard(roles...), h)
	}

	healthHandler := NewHealthHandler(deps.DB, deps.ServiceName, log)
	app.Get("/health", healthHandler.Live)

	api := app.Group("/api")
	api.Get("/health/db", healthHandler.DB)

	// Movimientos de stock (ledger)
	movementHandler := NewStockMovementHandler(deps.LedgerUC, log)
	api.Post("/stock-movements", with(movementHandler.Create, entity.RoleAdmin, entity.RoleAsistente)...)
	api.Get("/stock-movements", movementHandler.List)

	// Catálogo de insumos: rutas fijas antes de /:id
	supplyHandler := NewSupplyHandler(deps.SupplyUC, deps.ReportUC, log)
	supplies := api.Group("/supplies")
	supplies.Get("/", supplyHandler.List)
	supplies.Get("/search", supplyHandler.Search)
	supplies.Get("/report.pdf", supplyHandler.Report)
	supplies.Get("/code/:code", supplyHandler.GetByCode)
	supplies.Get("/:id/movements", movementHandler.ListBySupply)
	supplies.Get("/:id", supplyHandler.GetByID)
	supplies.Post("/", with(supplyHandler.Create, entity.RoleAdmin)...)
	supplies.Put("/:id", with(supplyHandler.Update, entity.RoleAdmin)...)
	supplies.Delete("/:id", with(supplyHandler.Delete, entity.RoleAdmin)...)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, log)
	api.Get("/dashboard/summary", dashboardHandler.GetSummary)
}
