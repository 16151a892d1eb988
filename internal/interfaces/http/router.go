package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/invoteam/invo-api/internal/application/access"
	"github.com/invoteam/invo-api/internal/application/achievements"
	"github.com/invoteam/invo-api/internal/application/auth"
	"github.com/invoteam/invo-api/internal/application/inventory"
	"github.com/invoteam/invo-api/internal/application/orders"
	"github.com/invoteam/invo-api/internal/application/usecase"
	"github.com/invoteam/invo-api/internal/domain/entity"
	"github.com/invoteam/invo-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC              *auth.AuthUseCase
	ProductUC           *usecase.ProductUseCase
	CategoryUC          *usecase.CategoryUseCase
	CustomerUC          *usecase.CustomerUseCase
	SupplierUC          *usecase.SupplierUseCase
	DashboardUC         *usecase.DashboardUseCase
	AccountUC           *usecase.AccountUseCase
	AdminUC             *usecase.AdminUseCase
	OrderEngine         *orders.Engine
	StockService        *inventory.StockService
	MovementUC          *inventory.MovementUseCase
	Evaluator           *achievements.Evaluator
	LicenseUC           *access.LicenseUseCase
	WebhookUC           *access.WebhookUseCase
	Gate                *access.Gate
	JWTSecret           string
	StripeWebhookSecret string
	Log                 *logger.Logger
}

// Router registra las rutas de la API. Las rutas de negocio llevan auth +
// licencia activa; las de licencia solo auth (una cuenta sin licencia debe
// poder canjear); los webhooks son públicos.
func Router(app *fiber.App, deps RouterDeps) {
	// Webhooks de pago (público; Stripe autentica por firma, MP por consulta)
	webhookHandler := NewWebhookHandler(deps.WebhookUC, deps.StripeWebhookSecret, deps.Log)
	webhooks := app.Group("/webhooks")
	webhooks.Post("/stripe", webhookHandler.Stripe)
	webhooks.Post("/mercadopago", webhookHandler.MercadoPago)

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Recuperar clave por email (público: el comprador aún no tiene cuenta)
	licenseHandler := NewLicenseHandler(deps.LicenseUC, deps.Gate)
	api.Post("/license/retrieve", licenseHandler.Retrieve)

	// Rutas autenticadas sin exigir licencia
	authed := api.Group("/", AuthMiddleware(deps.JWTSecret))
	authed.Post("/license/redeem", licenseHandler.Redeem)
	authed.Get("/license/current", licenseHandler.Current)
	authed.Get("/license/access", licenseHandler.Access)

	// Admin (claves de licencia y administración de cuentas)
	admin := authed.Group("/admin", RequireRole(entity.RoleAdmin))
	admin.Post("/keys", licenseHandler.IssueKey)
	admin.Get("/keys", licenseHandler.ListKeys)
	adminHandler := NewAdminHandler(deps.AdminUC)
	admin.Get("/users", adminHandler.ListAccounts)
	admin.Put("/users/:id", adminHandler.UpdateAccount)
	admin.Delete("/users/:id", adminHandler.DeleteAccount)
	admin.Post("/users/:id/reset-parties", adminHandler.ResetParties)

	// El dashboard y las preferencias son accesibles sin licencia: basta con
	// estar autenticado. Registrados antes del grupo con licencia para no
	// quedar bajo su middleware.
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.Evaluator)
	authed.Get("/dashboard", dashboardHandler.Dashboard)
	authed.Get("/stats", dashboardHandler.Stats)
	authed.Get("/achievements", dashboardHandler.Achievements)

	settingsHandler := NewSettingsHandler(deps.AccountUC)
	authed.Get("/settings", settingsHandler.Get)
	authed.Put("/settings", settingsHandler.Update)

	// Rutas de negocio (auth + licencia activa)
	protected := authed.Group("/", RequirePaidAccess(deps.Gate))

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.StockService)
	inventoryHandler := NewInventoryHandler(deps.StockService, deps.MovementUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/export", productHandler.ExportCSV)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Post("/:id/increment", productHandler.Increment)
	products.Post("/:id/decrement", productHandler.Decrement)
	products.Post("/:id/adjust", inventoryHandler.Adjust)
	products.Get("/:id/movements", inventoryHandler.ListByProduct)

	protected.Get("/inventory/movements", inventoryHandler.ListByAccount)

	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)

	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Post("/bulk", customerHandler.CreateBulk)
	customers.Get("/", customerHandler.List)

	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Post("/bulk", supplierHandler.CreateBulk)
	suppliers.Get("/", supplierHandler.List)

	// Reinicio de clientes y proveedores de la cuenta propia
	protected.Post("/parties/reset", settingsHandler.ResetParties)

	orderHandler := NewOrderHandler(deps.OrderEngine)
	sales := protected.Group("/sales")
	sales.Post("/", orderHandler.CreateSale)
	sales.Get("/", orderHandler.ListSales)
	sales.Get("/:id", orderHandler.GetSale)
	sales.Post("/:id/finish", orderHandler.FinishSale)

	purchases := protected.Group("/purchases")
	purchases.Post("/", orderHandler.CreatePurchase)
	purchases.Get("/", orderHandler.ListPurchases)
	purchases.Get("/:id", orderHandler.GetPurchase)
	purchases.Post("/:id/finish", orderHandler.FinishPurchase)
}
