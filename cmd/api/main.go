package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dukahub/duka-api/internal/application/service"
	"github.com/dukahub/duka-api/internal/config"
	"github.com/dukahub/duka-api/internal/infrastructure/database"
	"github.com/dukahub/duka-api/internal/infrastructure/repository"
	"github.com/dukahub/duka-api/internal/presentation/http/handler"
	"github.com/dukahub/duka-api/internal/presentation/http/routes"
	"github.com/dukahub/duka-api/pkg/sequence"
	"github.com/dukahub/duka-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if cfg.App.Debug {
		log.SetLevel(logrus.DebugLevel)
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	shopRepo := repository.NewShopRepository(db)
	membershipRepo := repository.NewShopMembershipRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	unitRepo := repository.NewUnitRepository(db)
	stockRepo := repository.NewStockRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	saleItemRepo := repository.NewSaleItemRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	returnRepo := repository.NewSalesReturnRepository(db)
	poRepo := repository.NewPurchaseOrderRepository(db)
	poItemRepo := repository.NewPurchaseOrderItemRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	expenseCategoryRepo := repository.NewExpenseCategoryRepository(db)
	expensePaymentRepo := repository.NewExpensePaymentRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	transactor := repository.NewTransactor(db)

	// Document number generator
	numbers := sequence.NewGenerator()

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	shopService := service.NewShopService(shopRepo, membershipRepo, userRepo, transactor)
	productService := service.NewProductService(productRepo, categoryRepo, unitRepo, stockRepo, movementRepo, transactor)
	stockService := service.NewStockService(stockRepo, movementRepo, productRepo, transactor)
	saleService := service.NewSaleService(saleRepo, saleItemRepo, paymentRepo, productRepo, customerRepo, stockRepo, movementRepo, shopRepo, transactor, numbers, &cfg.Sales)
	returnService := service.NewSalesReturnService(returnRepo, saleRepo, stockRepo, movementRepo, shopRepo, transactor, &cfg.Sales)
	poService := service.NewPurchaseOrderService(poRepo, poItemRepo, productRepo, supplierRepo, stockRepo, movementRepo, shopRepo, transactor, numbers, &cfg.Sales)
	expenseService := service.NewExpenseService(expenseRepo, expenseCategoryRepo, expensePaymentRepo, supplierRepo, shopRepo, transactor, numbers, &cfg.Sales)
	customerService := service.NewCustomerService(customerRepo)
	supplierService := service.NewSupplierService(supplierRepo)
	dashboardService := service.NewDashboardService(analyticsRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:          handler.NewAuthHandler(authService),
		Shop:          handler.NewShopHandler(shopService),
		Product:       handler.NewProductHandler(productService),
		Stock:         handler.NewStockHandler(stockService),
		Sale:          handler.NewSaleHandler(saleService),
		SalesReturn:   handler.NewSalesReturnHandler(returnService),
		PurchaseOrder: handler.NewPurchaseOrderHandler(poService),
		Expense:       handler.NewExpenseHandler(expenseService),
		Customer:      handler.NewCustomerHandler(customerService),
		Supplier:      handler.NewSupplierHandler(supplierService),
		Dashboard:     handler.NewDashboardHandler(dashboardService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:     jwtManager,
		Cfg:            cfg,
		Logger:         log,
		MembershipRepo: membershipRepo,
	})

	log.WithField("port", cfg.App.Port).Info("Starting server")
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
