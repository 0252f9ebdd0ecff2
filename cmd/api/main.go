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
	appanalytics "github.com/jhoicas/trace-warehouse/internal/application/analytics"
	"github.com/jhoicas/trace-warehouse/internal/application/auth"
	"github.com/jhoicas/trace-warehouse/internal/application/inventory"
	"github.com/jhoicas/trace-warehouse/internal/domain/warehouse"
	infrapdf "github.com/jhoicas/trace-warehouse/internal/infrastructure/pdf"
	"github.com/jhoicas/trace-warehouse/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/trace-warehouse/internal/interfaces/http"
	"github.com/jhoicas/trace-warehouse/pkg/config"
	"github.com/jhoicas/trace-warehouse/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
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

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("aplicar esquema")
	}

	userRepo := postgres.NewUserRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	zones := warehouse.ZoneTable{
		Zones: []warehouse.ZoneCapacity{
			{Name: "Zone A", Max: cfg.Warehouse.ZoneAMax},
			{Name: "Zone B", Max: cfg.Warehouse.ZoneBMax},
			{Name: "Zone C", Max: cfg.Warehouse.ZoneCMax},
			{Name: "Zone D", Max: cfg.Warehouse.ZoneDMax},
		},
		Default: warehouse.ZoneCapacity{Name: "General", Max: cfg.Warehouse.DefaultZoneMax},
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	stockUC := inventory.NewStockUseCase(stockRepo)
	applyUC := inventory.NewApplyMovementUseCase(txRunner)
	metricsUC := appanalytics.NewMetricsUseCase(txRunner, zones, cfg.Warehouse.TotalCapacity)
	historyUC := appanalytics.NewHistoryUseCase(movementRepo)
	exportUC := appanalytics.NewExportUseCase(txRunner, movementRepo, infrapdf.NewSnapshotReportGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Trace Warehouse API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		StockUC:   stockUC,
		ApplyUC:   applyUC,
		MetricsUC: metricsUC,
		HistoryUC: historyUC,
		ExportUC:  exportUC,
		JWTSecret: cfg.JWT.Secret,
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
