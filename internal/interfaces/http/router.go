package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gametech-stock/internal/application/auth"
	appinv "github.com/jhoicas/gametech-stock/internal/application/inventory"
	"github.com/jhoicas/gametech-stock/internal/domain/entity"
	"github.com/jhoicas/gametech-stock/internal/infrastructure/export"
	"github.com/jhoicas/gametech-stock/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Session *appinv.Session
	AuthUC  *auth.AuthUseCase
	CSV     *export.CSVExporter
	PDF     StockReportGenerator
	Tokens  *jwt.Signer
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.Tokens))
	protected.Get("/auth/me", authHandler.Me)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.Session)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/critical", productHandler.Critical)
	products.Get("/:code", productHandler.GetByCode)
	products.Get("/:code/movements", productHandler.Movements)

	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Session)
	invGroup.Post("/stock-in", inventoryHandler.StockIn)
	invGroup.Post("/stock-out", inventoryHandler.StockOut)
	invGroup.Post("/adjustments", RequireRole(entity.RoleAdmin, entity.RoleOperator), inventoryHandler.Adjustment)
	invGroup.Get("/movements", inventoryHandler.Movements)
	invGroup.Get("/snapshot", inventoryHandler.Snapshot)
	invGroup.Get("/replenishment-list", inventoryHandler.GetReplenishmentList)

	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.Session)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Post("/reload", RequireRole(entity.RoleAdmin), warehouseHandler.Reload)

	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.Session, deps.CSV, deps.PDF)
	reports.Get("/products.csv", reportHandler.ProductsCSV)
	reports.Get("/movements.csv", reportHandler.MovementsCSV)
	reports.Get("/stock.pdf", reportHandler.StockPDF)
}
