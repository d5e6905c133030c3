package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	_ "github.com/jhoicas/Inventario-dental-api/docs"
	appanalytics "github.com/jhoicas/Inventario-dental-api/internal/application/analytics"
	"github.com/jhoicas/Inventario-dental-api/internal/application/inventory"
	"github.com/jhoicas/Inventario-dental-api/internal/application/report"
	"github.com/jhoicas/Inventario-dental-api/internal/application/usecase"
	"github.com/jhoicas/Inventario-dental-api/internal/domain/repository"
	"github.com/jhoicas/Inventario-dental-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Inventario-dental-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-dental-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Inventario-dental-api/internal/interfaces/http"
	"github.com/jhoicas/Inventario-dental-api/pkg/config"
	"github.com/jhoicas/Inventario-dental-api/pkg/logger"
)

// storeWithPing almacén transaccional que además responde al health check.
type storeWithPing interface {
	repository.Store
	httpRouter.Pinger
}

// @title        Inventario Dental API
// @version      1.0
// @description  Catálogo de insumos y libro de movimientos de stock de la clínica.
// @BasePath     /
// @securityDefinitions.apikey Bearer
// @in           header
// @name         Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.StoreDriver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var store storeWithPing
	switch cfg.App.StoreDriver {
	case config.StoreDriverMemory:
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		store = memory.NewStore()
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		store = postgres.NewStore(pool)
	}

	ledgerUC := inventory.NewLedgerUseCase(store, inventory.Config{
		TxTimeout:    cfg.Ledger.TxTimeout,
		MaxRetries:   cfg.Ledger.MaxRetries,
		RetryBackoff: cfg.Ledger.RetryBackoff,
	}, log)
	supplyUC := usecase.NewSupplyUseCase(store, ledgerUC, log)
	dashboardUC := appanalytics.NewDashboardUseCase(store.Supplies())

	// PDF: reporte de existencias
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	reportUC := report.NewReportUseCase(store.Supplies(), pdfGenerator, cfg.App.ClinicName)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.HTTP.CORSAllowOrigins}))
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Dental API",
	}))

	if !cfg.JWT.Enabled() {
		log.Warn().Msg("JWT_SECRET vacío: rutas de escritura sin autenticación")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		LedgerUC:    ledgerUC,
		SupplyUC:    supplyUC,
		DashboardUC: dashboardUC,
		ReportUC:    reportUC,
		DB:          store,
		ServiceName: cfg.App.Name,
		JWTSecret:   cfg.JWT.Secret,
		Log:         log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
