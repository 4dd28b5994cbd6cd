package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dukahub/duka-api/internal/config"
	domainRepo "github.com/dukahub/duka-api/internal/domain/repository"
	"github.com/dukahub/duka-api/internal/presentation/http/handler"
	"github.com/dukahub/duka-api/internal/presentation/http/middleware"
	"github.com/dukahub/duka-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth          *handler.AuthHandler
	Shop          *handler.ShopHandler
	Product       *handler.ProductHandler
	Stock         *handler.StockHandler
	Sale          *handler.SaleHandler
	SalesReturn   *handler.SalesReturnHandler
	PurchaseOrder *handler.PurchaseOrderHandler
	Expense       *handler.ExpenseHandler
	Customer      *handler.CustomerHandler
	Supplier      *handler.SupplierHandler
	Dashboard     *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager     *utils.JWTManager
	Cfg            *config.Config
	Logger         *logrus.Logger
	MembershipRepo domainRepo.ShopMembershipRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Authenticated routes without a shop context: profile-level shop
		// management.
		authed := v1.Group("")
		authed.Use(middleware.AuthMiddleware(deps.JWTManager))
		registerShopRoutes(authed, h)

		// Shop-scoped routes: everything below requires a valid X-Shop-ID the
		// caller is a member of.
		scoped := authed.Group("")
		scoped.Use(middleware.ShopMiddleware(deps.MembershipRepo))

		rateLimiter := middleware.NewShopRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		scoped.Use(rateLimiter.Middleware())

		registerShopScopedRoutes(scoped, h)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerShopRoutes(authed *gin.RouterGroup, h *Handlers) {
	authed.POST("/auth/logout", h.Auth.Logout)

	shops := authed.Group("/shops")
	{
		shops.POST("", h.Shop.Register)
		shops.GET("", h.Shop.List)
		shops.GET("/:id", h.Shop.Get)
		shops.PUT("/:id/settings", h.Shop.UpdateSettings)
		shops.POST("/:id/members", h.Shop.AddMember)
		shops.DELETE("/:id/members/:userId", h.Shop.RemoveMember)
	}
}

func registerShopScopedRoutes(scoped *gin.RouterGroup, h *Handlers) {
	// Products, categories and units
	products := scoped.Group("/products")
	{
		products.POST("", h.Product.Create)
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}
	categories := scoped.Group("/categories")
	{
		categories.POST("", h.Product.CreateCategory)
		categories.GET("", h.Product.ListCategories)
	}
	units := scoped.Group("/units")
	{
		units.POST("", h.Product.CreateUnit)
		units.GET("", h.Product.ListUnits)
	}

	// Stock ledger
	stock := scoped.Group("/stock")
	{
		stock.GET("", h.Stock.ListStock)
		stock.GET("/low", h.Stock.LowStock)
		stock.GET("/:productId", h.Stock.GetStock)
		stock.POST("/movements", h.Stock.CreateMovement)
		stock.GET("/movements", h.Stock.ListMovements)
	}

	// Sales and payments
	sales := scoped.Group("/sales")
	{
		sales.POST("", h.Sale.Create)
		sales.GET("", h.Sale.List)
		sales.GET("/:id", h.Sale.Get)
		sales.POST("/:id/payments", h.Sale.CreatePayment)
	}
	scoped.GET("/payments", h.Sale.ListPayments)

	// Sales returns
	returns := scoped.Group("/sales-returns")
	{
		returns.POST("", h.SalesReturn.Create)
		returns.GET("", h.SalesReturn.List)
		returns.GET("/:id", h.SalesReturn.Get)
		returns.PATCH("/:id/status", h.SalesReturn.UpdateStatus)
	}

	// Purchase orders
	purchaseOrders := scoped.Group("/purchase-orders")
	{
		purchaseOrders.POST("", h.PurchaseOrder.Create)
		purchaseOrders.GET("", h.PurchaseOrder.List)
		purchaseOrders.GET("/:id", h.PurchaseOrder.Get)
		purchaseOrders.PATCH("/:id/status", h.PurchaseOrder.UpdateStatus)
		purchaseOrders.POST("/:id/receive", h.PurchaseOrder.Receive)
		purchaseOrders.DELETE("/:id", h.PurchaseOrder.Delete)
	}

	// Expenses
	expenses := scoped.Group("/expenses")
	{
		expenses.POST("", h.Expense.Create)
		expenses.GET("", h.Expense.List)
		expenses.GET("/:id", h.Expense.Get)
		expenses.POST("/:id/payments", h.Expense.CreatePayment)
		expenses.POST("/:id/cancel", h.Expense.Cancel)
	}
	expenseCategories := scoped.Group("/expense-categories")
	{
		expenseCategories.POST("", h.Expense.CreateCategory)
		expenseCategories.GET("", h.Expense.ListCategories)
	}

	// Customers
	customers := scoped.Group("/customers")
	{
		customers.POST("", h.Customer.Create)
		customers.GET("", h.Customer.List)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}

	// Suppliers
	suppliers := scoped.Group("/suppliers")
	{
		suppliers.POST("", h.Supplier.Create)
		suppliers.GET("", h.Supplier.List)
		suppliers.GET("/:id", h.Supplier.Get)
		suppliers.PUT("/:id", h.Supplier.Update)
		suppliers.DELETE("/:id", h.Supplier.Delete)
	}

	// Dashboard
	dashboard := scoped.Group("/dashboard")
	{
		dashboard.GET("/summary", h.Dashboard.Summary)
		dashboard.GET("/top-products", h.Dashboard.TopProducts)
		dashboard.GET("/top-customers", h.Dashboard.TopCustomers)
		dashboard.GET("/daily-sales", h.Dashboard.DailySales)
	}
}
