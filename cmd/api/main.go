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
	"github.com/invoteam/invo-api/internal/application/access"
	"github.com/invoteam/invo-api/internal/application/achievements"
	"github.com/invoteam/invo-api/internal/application/auth"
	"github.com/invoteam/invo-api/internal/application/inventory"
	"github.com/invoteam/invo-api/internal/application/orders"
	"github.com/invoteam/invo-api/internal/application/usecase"
	"github.com/invoteam/invo-api/internal/infrastructure/payments"
	"github.com/invoteam/invo-api/internal/infrastructure/postgres"
	httpRouter "github.com/invoteam/invo-api/internal/interfaces/http"
	"github.com/invoteam/invo-api/pkg/config"
	"github.com/invoteam/invo-api/pkg/logger"
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

	accountRepo := postgres.NewAccountRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	salesRepo := postgres.NewSalesOrderRepository(pool)
	purchaseRepo := postgres.NewPurchaseOrderRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	achievementRepo := postgres.NewAchievementRepository(pool)
	licenseRepo := postgres.NewLicenseKeyRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	evaluator := achievements.NewEvaluator(achievementRepo, salesRepo, purchaseRepo, productRepo)
	stockService := inventory.NewStockService(txRunner, cfg.Inventory.AllowNegativeStock)
	movementUC := inventory.NewMovementUseCase(movementRepo, productRepo)
	orderEngine := orders.NewEngine(txRunner, stockService, customerRepo, supplierRepo, salesRepo, purchaseRepo, evaluator, log)

	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, evaluator, log)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	dashboardUC := usecase.NewDashboardUseCase(productRepo, salesRepo, purchaseRepo, achievementRepo, statsRepo, evaluator)
	accountUC := usecase.NewAccountUseCase(accountRepo, txRunner)
	adminUC := usecase.NewAdminUseCase(accountRepo, txRunner)

	gate := access.NewGate(licenseRepo)
	licenseUC := access.NewLicenseUseCase(licenseRepo, accountRepo)
	mpClient := payments.NewMercadoPagoClient(cfg.Payments.MercadoPagoBaseURL, cfg.Payments.MercadoPagoAccessToken)
	webhookUC := access.NewWebhookUseCase(licenseUC, mpClient, log)

	authUC := auth.NewAuthUseCase(accountRepo, auth.JWTConfig{
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
		Title:    "Invo API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:              authUC,
		ProductUC:           productUC,
		CategoryUC:          categoryUC,
		CustomerUC:          customerUC,
		SupplierUC:          supplierUC,
		DashboardUC:         dashboardUC,
		AccountUC:           accountUC,
		AdminUC:             adminUC,
		OrderEngine:         orderEngine,
		StockService:        stockService,
		MovementUC:          movementUC,
		Evaluator:           evaluator,
		LicenseUC:           licenseUC,
		WebhookUC:           webhookUC,
		Gate:                gate,
		JWTSecret:           cfg.JWT.Secret,
		StripeWebhookSecret: cfg.Payments.StripeWebhookSecret,
		Log:                 log,
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
