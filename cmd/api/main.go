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

	"github.com/verdeflow/trazo-api/internal/application/auth"
	"github.com/verdeflow/trazo-api/internal/application/batches"
	"github.com/verdeflow/trazo-api/internal/application/trace"
	"github.com/verdeflow/trazo-api/internal/application/usecase"
	infrapdf "github.com/verdeflow/trazo-api/internal/infrastructure/pdf"
	"github.com/verdeflow/trazo-api/internal/infrastructure/postgres"
	httpRouter "github.com/verdeflow/trazo-api/internal/interfaces/http"
	"github.com/verdeflow/trazo-api/pkg/config"
	"github.com/verdeflow/trazo-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios atados al pool (lecturas y operaciones de una sola fila).
	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	facilityRepo := postgres.NewFacilityRepository(pool)
	areaRepo := postgres.NewAreaRepository(pool)
	cropTypeRepo := postgres.NewCropTypeRepository(pool)
	cultivarRepo := postgres.NewCultivarRepository(pool)
	orderRepo := postgres.NewProductionOrderRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	activityRepo := postgres.NewActivityRepository(pool)
	movementRepo := postgres.NewBatchMovementRepository(pool)
	lossRepo := postgres.NewBatchLossRepository(pool)
	harvestRepo := postgres.NewBatchHarvestRepository(pool)

	// El motor de lotes ejecuta cada operación dentro de una transacción.
	txRunner := postgres.NewTxRunner(pool)
	lifecycleUC := batches.NewLifecycleUseCase(
		txRunner, batchRepo, facilityRepo, areaRepo,
		cropTypeRepo, cultivarRepo, orderRepo, activityRepo,
	)

	// Hoja de trazabilidad en PDF.
	sheetGenerator := infrapdf.NewMarotoSheetGenerator()
	traceSheetUC := trace.NewSheetUseCase(
		batchRepo, cultivarRepo, cropTypeRepo, facilityRepo, areaRepo,
		movementRepo, lossRepo, harvestRepo, activityRepo, sheetGenerator,
	)

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	facilityUC := usecase.NewFacilityUseCase(facilityRepo, areaRepo)
	cultivarUC := usecase.NewCultivarUseCase(cultivarRepo, cropTypeRepo)
	orderUC := usecase.NewProductionOrderUseCase(orderRepo, cropTypeRepo, cultivarRepo)
	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
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

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Trazo API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		CompanyUC:    companyUC,
		FacilityUC:   facilityUC,
		CultivarUC:   cultivarUC,
		OrderUC:      orderUC,
		LifecycleUC:  lifecycleUC,
		TraceSheetUC: traceSheetUC,
		JWTSecret:    cfg.JWT.Secret,
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
