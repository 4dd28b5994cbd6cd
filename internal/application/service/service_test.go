package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dukahub/duka-api/internal/application/service"
	"github.com/dukahub/duka-api/internal/config"
	"github.com/dukahub/duka-api/internal/domain/entity"
	domainRepo "github.com/dukahub/duka-api/internal/domain/repository"
	"github.com/dukahub/duka-api/internal/infrastructure/database"
	infraRepo "github.com/dukahub/duka-api/internal/infrastructure/repository"
	"github.com/dukahub/duka-api/pkg/sequence"
	"github.com/dukahub/duka-api/pkg/utils"
)

// testEnv wires the full service stack against an in-memory SQLite database.
// Repositories are exposed alongside the services so tests can assert on
// persisted state directly.
type testEnv struct {
	db  *gorm.DB
	ctx context.Context

	shop *entity.Shop
	user *entity.User

	authSvc      *service.AuthService
	shopSvc      *service.ShopService
	productSvc   *service.ProductService
	stockSvc     *service.StockService
	saleSvc      *service.SaleService
	returnSvc    *service.SalesReturnService
	poSvc        *service.PurchaseOrderService
	expenseSvc   *service.ExpenseService
	customerSvc  *service.CustomerService
	supplierSvc  *service.SupplierService
	dashboardSvc *service.DashboardService

	stockRepo      domainRepo.StockRepository
	movementRepo   domainRepo.StockMovementRepository
	saleRepo       domainRepo.SaleRepository
	paymentRepo    domainRepo.PaymentRepository
	returnRepo     domainRepo.SalesReturnRepository
	poItemRepo     domainRepo.PurchaseOrderItemRepository
	expenseRepo    domainRepo.ExpenseRepository
	membershipRepo domainRepo.ShopMembershipRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	userRepo := infraRepo.NewUserRepository(db)
	shopRepo := infraRepo.NewShopRepository(db)
	membershipRepo := infraRepo.NewShopMembershipRepository(db)
	productRepo := infraRepo.NewProductRepository(db)
	categoryRepo := infraRepo.NewCategoryRepository(db)
	unitRepo := infraRepo.NewUnitRepository(db)
	stockRepo := infraRepo.NewStockRepository(db)
	movementRepo := infraRepo.NewStockMovementRepository(db)
	saleRepo := infraRepo.NewSaleRepository(db)
	saleItemRepo := infraRepo.NewSaleItemRepository(db)
	paymentRepo := infraRepo.NewPaymentRepository(db)
	returnRepo := infraRepo.NewSalesReturnRepository(db)
	poRepo := infraRepo.NewPurchaseOrderRepository(db)
	poItemRepo := infraRepo.NewPurchaseOrderItemRepository(db)
	expenseRepo := infraRepo.NewExpenseRepository(db)
	expenseCategoryRepo := infraRepo.NewExpenseCategoryRepository(db)
	expensePaymentRepo := infraRepo.NewExpensePaymentRepository(db)
	customerRepo := infraRepo.NewCustomerRepository(db)
	supplierRepo := infraRepo.NewSupplierRepository(db)
	analyticsRepo := infraRepo.NewAnalyticsRepository(db)
	transactor := infraRepo.NewTransactor(db)

	numbers := sequence.NewGenerator()
	cfg := &config.SalesConfig{
		TaxRate:       decimal.NewFromInt(10),
		InvoicePrefix: "INV",
		POPrefix:      "PO",
		ExpensePrefix: "EXP",
	}
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)

	env := &testEnv{
		db:             db,
		authSvc:        service.NewAuthService(userRepo, jwtManager),
		shopSvc:        service.NewShopService(shopRepo, membershipRepo, userRepo, transactor),
		productSvc:     service.NewProductService(productRepo, categoryRepo, unitRepo, stockRepo, movementRepo, transactor),
		stockSvc:       service.NewStockService(stockRepo, movementRepo, productRepo, transactor),
		saleSvc:        service.NewSaleService(saleRepo, saleItemRepo, paymentRepo, productRepo, customerRepo, stockRepo, movementRepo, shopRepo, transactor, numbers, cfg),
		returnSvc:      service.NewSalesReturnService(returnRepo, saleRepo, stockRepo, movementRepo, shopRepo, transactor, cfg),
		poSvc:          service.NewPurchaseOrderService(poRepo, poItemRepo, productRepo, supplierRepo, stockRepo, movementRepo, shopRepo, transactor, numbers, cfg),
		expenseSvc:     service.NewExpenseService(expenseRepo, expenseCategoryRepo, expensePaymentRepo, supplierRepo, shopRepo, transactor, numbers, cfg),
		customerSvc:    service.NewCustomerService(customerRepo),
		supplierSvc:    service.NewSupplierService(supplierRepo),
		dashboardSvc:   service.NewDashboardService(analyticsRepo),
		stockRepo:      stockRepo,
		movementRepo:   movementRepo,
		saleRepo:       saleRepo,
		paymentRepo:    paymentRepo,
		returnRepo:     returnRepo,
		poItemRepo:     poItemRepo,
		expenseRepo:    expenseRepo,
		membershipRepo: membershipRepo,
	}

	user, err := env.authSvc.Register(context.Background(), &service.RegisterInput{
		FirstName: "Asha",
		LastName:  "Patel",
		Email:     fmt.Sprintf("asha-%s@example.com", uuid.NewString()[:8]),
		Password:  "correct-horse",
	})
	require.NoError(t, err)
	env.user = user

	shop, err := env.shopSvc.RegisterShop(context.Background(), &service.RegisterShopInput{
		OwnerID:  user.ID,
		Name:     "Corner Duka",
		ShopType: "retail",
	})
	require.NoError(t, err)
	env.shop = shop

	env.ctx = infraRepo.WithShop(context.Background(), shop.ID)
	return env
}

// dec parses a decimal literal, failing the test on bad input
func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

// createProduct seeds a product with an opening quantity
func (env *testEnv) createProduct(t *testing.T, name, sku, costPrice, sellingPrice, initialQty string) *entity.Product {
	t.Helper()
	product, err := env.productSvc.CreateProduct(env.ctx, &service.CreateProductInput{
		Name:            name,
		SKU:             sku,
		CostPrice:       dec(t, costPrice),
		SellingPrice:    dec(t, sellingPrice),
		InitialQuantity: dec(t, initialQty),
	})
	require.NoError(t, err)
	return product
}

// createSupplier seeds a supplier
func (env *testEnv) createSupplier(t *testing.T, name string) *entity.Supplier {
	t.Helper()
	supplier, err := env.supplierSvc.CreateSupplier(env.ctx, &service.SupplierInput{
		Name:  name,
		Phone: "0700000001",
	})
	require.NoError(t, err)
	return supplier
}

// createCustomer seeds a customer
func (env *testEnv) createCustomer(t *testing.T, name string) *entity.Customer {
	t.Helper()
	customer, err := env.customerSvc.CreateCustomer(env.ctx, &service.CustomerInput{
		Name:  name,
		Phone: "0700000002",
	})
	require.NoError(t, err)
	return customer
}

// stockQuantity reads the current stock quantity, treating a missing row as zero
func (env *testEnv) stockQuantity(t *testing.T, productID uuid.UUID) decimal.Decimal {
	t.Helper()
	stock, err := env.stockRepo.GetByProductID(env.ctx, productID)
	require.NoError(t, err)
	if stock == nil {
		return decimal.Zero
	}
	return stock.Quantity
}

// movementSum sums all movement quantities for a product
func (env *testEnv) movementSum(t *testing.T, productID uuid.UUID) decimal.Decimal {
	t.Helper()
	sum, err := env.movementRepo.SumByProductID(env.ctx, productID)
	require.NoError(t, err)
	return sum
}
