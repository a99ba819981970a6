package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pedidos-api/internal/application/auth"
	"github.com/jhoicas/pedidos-api/internal/application/inventory"
	"github.com/jhoicas/pedidos-api/internal/application/orders"
	"github.com/jhoicas/pedidos-api/internal/application/usecase"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/xmlexport"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	WarehouseUC *usecase.WarehouseUseCase
	ProductUC   *usecase.ProductUseCase
	OrderCrud   *orders.CrudUseCase
	Lifecycle   *orders.LifecycleUseCase
	OrderPDF    *orders.PDFUseCase
	Movements   *inventory.MovementsUseCase
	AdjustStock *inventory.AdjustStockUseCase
	Exporter    *xmlexport.MovementExporter
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Warehouses (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)
	warehouses.Delete("/:id", warehouseHandler.Delete)
	warehouses.Get("/:id/stocks", warehouseHandler.Stocks)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Orders (protegido): CRUD + ciclo de vida + hoja imprimible
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderCrud, deps.Lifecycle, deps.OrderPDF)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Put("/:id", orderHandler.Update)
	ordersGroup.Delete("/:id", orderHandler.Delete)
	ordersGroup.Post("/:id/complete", orderHandler.Complete)
	ordersGroup.Post("/:id/cancel", orderHandler.Cancel)
	ordersGroup.Post("/:id/restore", orderHandler.Restore)
	ordersGroup.Get("/:id/pdf", orderHandler.PDF)

	// Stocks (protegido): log de movimientos, export y ajuste manual
	stocks := protected.Group("/stocks")
	movementHandler := NewMovementHandler(deps.Movements, deps.AdjustStock, deps.Exporter)
	stocks.Get("/movements", movementHandler.List)
	stocks.Get("/movements/export", movementHandler.ExportXML)
	stocks.Get("/:id/movements", movementHandler.History)
	stocks.Post("/adjust", RequireRole(entity.RoleAdmin), movementHandler.Adjust)
}
