package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/itmco/inventory-api/internal/application/auth"
	"github.com/itmco/inventory-api/internal/application/backup"
	"github.com/itmco/inventory-api/internal/application/issuance"
	"github.com/itmco/inventory-api/internal/application/reports"
	"github.com/itmco/inventory-api/internal/application/stock"
	"github.com/itmco/inventory-api/internal/application/usecase"
	"github.com/itmco/inventory-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC    *usecase.ProductUseCase
	WarehouseUC  *usecase.WarehouseUseCase
	SettingsUC   *usecase.SettingsUseCase
	LedgerUC     *stock.LedgerUseCase
	IssuanceUC   *issuance.UseCase
	AuthUC       *auth.AuthUseCase
	ReportUC     *reports.ReportUseCase
	Engine       *backup.Engine
	Restorer     *backup.Restorer
	Scheduler    *backup.Scheduler
	History      repository.BackupHistoryRepository
	JWTSecret    string
	BackupSecret string
	BackupTables []string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC)
	productHandler := NewProductHandler(deps.ProductUC)
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	stockHandler := NewStockHandler(deps.LedgerUC)
	issuanceHandler := NewIssuanceHandler(deps.IssuanceUC)
	reportHandler := NewReportHandler(deps.ReportUC)
	backupHandler := NewBackupHandler(deps.Engine, deps.Restorer, deps.Scheduler, deps.History, deps.BackupSecret, deps.BackupTables)

	// Auth (login público; registro solo admin)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), RequireRole("admin"), authHandler.Register)

	// Trigger programado de respaldos: público, autenticado por secreto compartido.
	api.Get("/backups/scheduled", backupHandler.Scheduled)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	products.Post("/", RequireRole("admin", "bodeguero"), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", RequireRole("admin", "bodeguero"), productHandler.Update)
	products.Delete("/:id", RequireRole("admin"), productHandler.Delete)

	// Stock ledger (protegido)
	protected.Post("/stock/entries", RequireRole("admin", "bodeguero"), stockHandler.RecordEntry)
	products.Get("/:id/stock/history", stockHandler.History)
	products.Get("/:id/stock/summary", stockHandler.Summary)
	products.Get("/:id/issuances", issuanceHandler.ListByProduct)

	// Issuances (protegido)
	issuances := protected.Group("/issuances")
	issuances.Post("/", RequireRole("admin", "bodeguero"), issuanceHandler.Create)
	issuances.Get("/", issuanceHandler.List)

	// Warehouses (protegido)
	warehouses := protected.Group("/warehouses")
	warehouses.Post("/", RequireRole("admin", "bodeguero"), warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", RequireRole("admin", "bodeguero"), warehouseHandler.Update)
	warehouses.Delete("/:id", RequireRole("admin"), warehouseHandler.Delete)

	// Users (solo admin)
	protected.Get("/users", RequireRole("admin"), authHandler.ListUsers)

	// Settings (lectura para todos; escritura solo admin)
	settings := protected.Group("/settings")
	settings.Get("/", settingsHandler.Get)
	settings.Put("/", RequireRole("admin"), settingsHandler.Update)

	// Reports (protegido)
	reportsGroup := protected.Group("/reports")
	reportsGroup.Get("/inventory", reportHandler.Inventory)
	reportsGroup.Get("/inventory/pdf", reportHandler.InventoryPDF)

	// Backups (solo admin)
	backups := protected.Group("/backups", RequireRole("admin"))
	backups.Post("/", backupHandler.Create)
	backups.Get("/history", backupHandler.History)
	backups.Get("/download", backupHandler.Download)
	backups.Post("/restore", backupHandler.Restore)
}
