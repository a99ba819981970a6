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

	_ "github.com/jhoicas/pedidos-api/docs"
	"github.com/jhoicas/pedidos-api/internal/application/auth"
	"github.com/jhoicas/pedidos-api/internal/application/inventory"
	"github.com/jhoicas/pedidos-api/internal/application/orders"
	"github.com/jhoicas/pedidos-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/pedidos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/xmlexport"
	httpRouter "github.com/jhoicas/pedidos-api/internal/interfaces/http"
	"github.com/jhoicas/pedidos-api/pkg/config"
	"github.com/jhoicas/pedidos-api/pkg/logger"
)

// @title                      Pedidos API
// @version                    1.0
// @description                API de pedidos con ledger transaccional de stock y log inmutable de movimientos.
// @BasePath                   /
// @securityDefinitions.apikey Bearer
// @in                         header
// @name                       Authorization
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

	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo, stockRepo)
	productUC := usecase.NewProductUseCase(productRepo)

	orderCrudUC := orders.NewCrudUseCase(txRunner, orderRepo, warehouseRepo, productRepo)
	lifecycleUC := orders.NewLifecycleUseCase(txRunner, warehouseRepo)

	pdfGenerator := infrapdf.NewMarotoOrderPDFGenerator()
	orderPDFUC := orders.NewPDFUseCase(orderRepo, warehouseRepo, pdfGenerator)

	movementsUC := inventory.NewMovementsUseCase(movementRepo)
	adjustUC := inventory.NewAdjustStockUseCase(txRunner, productRepo, warehouseRepo)
	exporter := xmlexport.NewMovementExporter()

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
		Title:    "Pedidos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		WarehouseUC: warehouseUC,
		ProductUC:   productUC,
		OrderCrud:   orderCrudUC,
		Lifecycle:   lifecycleUC,
		OrderPDF:    orderPDFUC,
		Movements:   movementsUC,
		AdjustStock: adjustUC,
		Exporter:    exporter,
		JWTSecret:   cfg.JWT.Secret,
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
