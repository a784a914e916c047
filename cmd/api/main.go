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
	"github.com/itmco/inventory-api/internal/application/auth"
	"github.com/itmco/inventory-api/internal/application/backup"
	"github.com/itmco/inventory-api/internal/application/issuance"
	"github.com/itmco/inventory-api/internal/application/reports"
	"github.com/itmco/inventory-api/internal/application/stock"
	"github.com/itmco/inventory-api/internal/application/usecase"
	infrapdf "github.com/itmco/inventory-api/internal/infrastructure/pdf"
	"github.com/itmco/inventory-api/internal/infrastructure/postgres"
	httpRouter "github.com/itmco/inventory-api/internal/interfaces/http"
	"github.com/itmco/inventory-api/pkg/config"
	"github.com/itmco/inventory-api/pkg/logger"
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

	productRepo := postgres.NewProductRepository(pool)
	stockEntryRepo := postgres.NewStockEntryRepository(pool)
	issuanceRepo := postgres.NewIssuanceRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	historyRepo := postgres.NewBackupHistoryRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	gateway := postgres.NewTableGateway(pool)

	ledgerUC := stock.NewLedgerUseCase(productRepo, stockEntryRepo)
	issuanceUC := issuance.NewUseCase(productRepo, issuanceRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	settingsUC := usecase.NewSettingsUseCase(gateway)

	engine := backup.NewEngine(gateway, historyRepo, log)
	restorer := backup.NewRestorer(gateway, log)
	scheduler := backup.NewScheduler(engine, historyRepo, backup.SchedulerConfig{
		Interval:       time.Duration(cfg.Backup.IntervalHours) * time.Hour,
		RetentionCount: cfg.Backup.RetentionCount,
		RetentionAge:   time.Duration(cfg.Backup.RetentionDays) * 24 * time.Hour,
		DefaultTables:  cfg.Backup.DefaultTables,
	}, log)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	reportUC := reports.NewReportUseCase(analyticsRepo, pdfGenerator)

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
		Title:    "ITMCO Inventory API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:    productUC,
		WarehouseUC:  warehouseUC,
		SettingsUC:   settingsUC,
		LedgerUC:     ledgerUC,
		IssuanceUC:   issuanceUC,
		AuthUC:       authUC,
		ReportUC:     reportUC,
		Engine:       engine,
		Restorer:     restorer,
		Scheduler:    scheduler,
		History:      historyRepo,
		JWTSecret:    cfg.JWT.Secret,
		BackupSecret: cfg.Backup.SharedSecret,
		BackupTables: cfg.Backup.DefaultTables,
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
