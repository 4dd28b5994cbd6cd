package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukahub/duka-api/internal/application/service"
)

func TestDashboardSummary(t *testing.T) {
	env := newTestEnv(t)
	fast := env.createProduct(t, "Soda 500ml", "SODA-5", "25", "40", "100")
	slow := env.createProduct(t, "Umbrella", "UMB-1", "250", "400", "10")
	customer := env.createCustomer(t, "Mary Wambui")

	// Two sales for the customer, the second left unpaid.
	_, err := env.saleSvc.CreateSale(env.ctx, &service.CreateSaleInput{
		CustomerID: &customer.ID,
		AmountPaid: dec(t, "88"),
		Items: []service.SaleItemInput{
			{ProductID: fast.ID, Quantity: dec(t, "2")},
		},
	})
	require.NoError(t, err)
	_, err = env.saleSvc.CreateSale(env.ctx, &service.CreateSaleInput{
		CustomerID: &customer.ID,
		Items: []service.SaleItemInput{
			{ProductID: slow.ID, Quantity: dec(t, "1")},
		},
	})
	require.NoError(t, err)

	_, err = env.expenseSvc.CreateExpense(env.ctx, &service.CreateExpenseInput{
		Description: "Shop rent",
		Amount:      dec(t, "5000"),
	})
	require.NoError(t, err)

	summary, err := env.dashboardSvc.GetSummary(env.ctx)
	require.NoError(t, err)

	// 88 (2 x 40 + tax) + 440 (400 + tax) revenue; only the first is paid.
	assert.True(t, summary.TotalRevenue.Equal(dec(t, "528")), "revenue %s", summary.TotalRevenue)
	assert.True(t, summary.TotalOutstanding.Equal(dec(t, "440")), "outstanding %s", summary.TotalOutstanding)
	assert.True(t, summary.TotalExpenses.Equal(dec(t, "5000")))
	// 98 sodas at cost 25 plus 9 umbrellas at cost 250.
	assert.True(t, summary.StockValue.Equal(dec(t, "4700")), "stock value %s", summary.StockValue)
	assert.EqualValues(t, 2, summary.SalesCount)
	assert.EqualValues(t, 1, summary.CustomerCount)
	assert.EqualValues(t, 2, summary.ProductCount)
}

func TestDashboardSummary_IgnoresCancelledExpenses(t *testing.T) {
	env := newTestEnv(t)

	expense, err := env.expenseSvc.CreateExpense(env.ctx, &service.CreateExpenseInput{
		Description: "Mistaken entry",
		Amount:      dec(t, "999"),
	})
	require.NoError(t, err)
	_, err = env.expenseSvc.CancelExpense(env.ctx, expense.ID)
	require.NoError(t, err)

	summary, err := env.dashboardSvc.GetSummary(env.ctx)
	require.NoError(t, err)
	assert.True(t, summary.TotalExpenses.IsZero())
}

func TestTopProductsByRevenue(t *testing.T) {
	env := newTestEnv(t)
	cheap := env.createProduct(t, "Sweets", "SWT-1", "1", "2", "100")
	pricey := env.createProduct(t, "Gas Cylinder", "GAS-6", "2000", "3000", "10")

	_, err := env.saleSvc.CreateSale(env.ctx, &service.CreateSaleInput{
		Items: []service.SaleItemInput{
			{ProductID: cheap.ID, Quantity: dec(t, "20")},
			{ProductID: pricey.ID, Quantity: dec(t, "1")},
		},
	})
	require.NoError(t, err)

	top, err := env.dashboardSvc.GetTopProducts(env.ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, pricey.ID, top[0].ProductID)
	assert.True(t, top[0].Revenue.Equal(dec(t, "3000")))
	assert.Equal(t, cheap.ID, top[1].ProductID)
	assert.True(t, top[1].QuantitySold.Equal(dec(t, "20")))
}

func TestTopCustomersBySpending(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Charcoal Sack", "CHR-1", "800", "1200", "50")

	regular, err := env.customerSvc.CreateCustomer(env.ctx, &service.CustomerInput{
		Name: "Peter Njoroge", Phone: "0711000001",
	})
	require.NoError(t, err)
	occasional, err := env.customerSvc.CreateCustomer(env.ctx, &service.CustomerInput{
		Name: "Grace Akinyi", Phone: "0711000002",
	})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := env.saleSvc.CreateSale(env.ctx, &service.CreateSaleInput{
			CustomerID: &regular.ID,
			Items: []service.SaleItemInput{
				{ProductID: product.ID, Quantity: dec(t, "2")},
			},
		})
		require.NoError(t, err)
	}
	_, err = env.saleSvc.CreateSale(env.ctx, &service.CreateSaleInput{
		CustomerID: &occasional.ID,
		Items: []service.SaleItemInput{
			{ProductID: product.ID, Quantity: dec(t, "1")},
		},
	})
	require.NoError(t, err)

	top, err := env.dashboardSvc.GetTopCustomers(env.ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, regular.ID, top[0].CustomerID)
	assert.EqualValues(t, 2, top[0].SalesCount)
	assert.Equal(t, occasional.ID, top[1].CustomerID)
}

func TestDailySales(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Eggs Tray", "EGG-30", "350", "450", "20")

	_, err := env.saleSvc.CreateSale(env.ctx, &service.CreateSaleInput{
		Items: []service.SaleItemInput{
			{ProductID: product.ID, Quantity: dec(t, "1")},
		},
	})
	require.NoError(t, err)

	daily, err := env.dashboardSvc.GetDailySales(env.ctx, 7)
	require.NoError(t, err)
	require.Len(t, daily, 1)
	assert.EqualValues(t, 1, daily[0].SalesCount)
	assert.True(t, daily[0].Revenue.Equal(dec(t, "495")))
}

func TestDashboard_PendingOrders(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Sacks", "SCK-1", "30", "50", "0")
	orderUnits(t, env, product, "10", "30")

	summary, err := env.dashboardSvc.GetSummary(env.ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, summary.PendingOrdersCount)
}
