package service_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukahub/duka-api/internal/application/service"
	"github.com/dukahub/duka-api/internal/domain/entity"
	"github.com/dukahub/duka-api/internal/domain/enum"
	"github.com/dukahub/duka-api/internal/domain/repository"
	"github.com/dukahub/duka-api/pkg/apperror"
	"github.com/dukahub/duka-api/pkg/pagination"
)

func TestCreateSale_TotalsAndStock(t *testing.T) {
	env := newTestEnv(t)
	pa := env.createProduct(t, "Notebook", "NB-1", "20", "50", "10")
	pb := env.createProduct(t, "Pen", "PEN-1", "5", "12.50", "20")

	sale, err := env.saleSvc.CreateSale(env.ctx, &service.CreateSaleInput{
		Items: []service.SaleItemInput{
			{ProductID: pa.ID, Quantity: dec(t, "1")},
			{ProductID: pb.ID, Quantity: dec(t, "2")},
		},
	})
	require.NoError(t, err)

	// 50 + 2*12.50 = 75 subtotal, 10% tax = 7.50, total 82.50
	assert.True(t, sale.Subtotal.Equal(dec(t, "75")), "subtotal %s", sale.Subtotal)
	assert.True(t, sale.TaxAmount.Equal(dec(t, "7.50")), "tax %s", sale.TaxAmount)
	assert.True(t, sale.Total.Equal(dec(t, "82.50")), "total %s", sale.Total)
	assert.Equal(t, enum.PaymentStatusPending, sale.PaymentStatus)
	assert.True(t, strings.HasPrefix(sale.InvoiceNumber, "INV-"))
	require.Len(t, sale.Items, 2)

	// Stock decremented and the ledger reflects the sale.
	assert.True(t, env.stockQuantity(t, pa.ID).Equal(dec(t, "9")))
	assert.True(t, env.stockQuantity(t, pb.ID).Equal(dec(t, "18")))
	assert.True(t, env.movementSum(t, pa.ID).Equal(dec(t, "9")))
	assert.True(t, env.movementSum(t, pb.ID).Equal(dec(t, "18")))
}

func TestCreateSale_LineDiscounts(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Thermos", "TH-1", "400", "1000", "5")

	sale, err := env.saleSvc.CreateSale(env.ctx, &service.CreateSaleInput{
		Items: []service.SaleItemInput{
			{ProductID: product.ID, Quantity: dec(t, "2"), DiscountPercentage: dec(t, "25")},
		},
	})
	require.NoError(t, err)

	// 2000 subtotal, 500 discount, tax on 1500 = 150, total 1650.
	assert.True(t, sale.Subtotal.Equal(dec(t, "2000")))
	assert.True(t, sale.DiscountAmount.Equal(dec(t, "500")))
	assert.True(t, sale.TaxAmount.Equal(dec(t, "150")))
	assert.True(t, sale.Total.Equal(dec(t, "1650")))
}

func TestCreateSale_InsufficientStockRollsBackEverything(t *testing.T) {
	env := newTestEnv(t)
	plenty := env.createProduct(t, "Matches", "MAT-1", "5", "10", "100")
	scarce := env.createProduct(t, "Torch", "TOR-1", "200", "350", "1")

	_, err := env.saleSvc.CreateSale(env.ctx, &service.CreateSaleInput{
		Items: []service.SaleItemInput{
			{ProductID: plenty.ID, Quantity: dec(t, "10")},
			{ProductID: scarce.ID, Quantity: dec(t, "2")},
		},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInsufficientStock))

	// Nothing persisted: both stock rows untouched, no sale rows.
	assert.True(t, env.stockQuantity(t, plenty.ID).Equal(dec(t, "100")))
	assert.True(t, env.stockQuantity(t, scarce.ID).Equal(dec(t, "1")))

	var saleCount int64
	require.NoError(t, env.db.Model(&entity.Sale{}).Count(&saleCount).Error)
	assert.Zero(t, saleCount)
	var itemCount int64
	require.NoError(t, env.db.Model(&entity.SaleItem{}).Count(&itemCount).Error)
	assert.Zero(t, itemCount)
}

func TestCreateSale_ImmediatePayment(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Bread", "BR-1", "35", "55", "10")

	sale, err := env.saleSvc.CreateSale(env.ctx, &service.CreateSaleInput{
		AmountPaid:    dec(t, "60.50"),
		PaymentMethod: enum.PaymentMethodMobile,
		Items: []service.SaleItemInput{
			{ProductID: product.ID, Quantity: dec(t, "1")},
		},
	})
	require.NoError(t, err)

	// 55 + 10% tax = 60.50, fully paid up front.
	assert.True(t, sale.Total.Equal(dec(t, "60.50")))
	assert.Equal(t, enum.PaymentStatusPaid, sale.PaymentStatus)
	require.Len(t, sale.Payments, 1)
	assert.True(t, sale.Payments[0].Amount.Equal(dec(t, "60.50")))
}

func TestCreateSale_OverpaymentRejected(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Milk 500ml", "MILK-5", "25", "40", "10")

	_, err := env.saleSvc.CreateSale(env.ctx, &service.CreateSaleInput{
		AmountPaid: dec(t, "100"),
		Items: []service.SaleItemInput{
			{ProductID: product.ID, Quantity: dec(t, "1")},
		},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindOverPayment))
}

func TestCreateSale_InactiveProductRejected(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Discontinued", "OLD-1", "10", "20", "5")
	require.NoError(t, env.productSvc.DeactivateProduct(env.ctx, product.ID))

	_, err := env.saleSvc.CreateSale(env.ctx, &service.CreateSaleInput{
		Items: []service.SaleItemInput{
			{ProductID: product.ID, Quantity: dec(t, "1")},
		},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidState))
}

func TestApplyPayment_DrivesStatusToPaid(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Basin", "BAS-1", "100", "200", "5")

	sale, err := env.saleSvc.CreateSale(env.ctx, &service.CreateSaleInput{
		Items: []service.SaleItemInput{
			{ProductID: product.ID, Quantity: dec(t, "1")},
		},
	})
	require.NoError(t, err)
	total := sale.Total // 220

	_, err = env.saleSvc.ApplyPayment(env.ctx, sale.ID, &service.PaymentInput{
		Amount:        dec(t, "100"),
		PaymentMethod: enum.PaymentMethodCash,
	})
	require.NoError(t, err)

	updated, err := env.saleSvc.GetSale(env.ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusPartial, updated.PaymentStatus)
	assert.True(t, updated.BalanceDue().Equal(total.Sub(dec(t, "100"))))

	_, err = env.saleSvc.ApplyPayment(env.ctx, sale.ID, &service.PaymentInput{
		Amount:        updated.BalanceDue(),
		PaymentMethod: enum.PaymentMethodCard,
	})
	require.NoError(t, err)

	updated, err = env.saleSvc.GetSale(env.ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusPaid, updated.PaymentStatus)
	assert.True(t, updated.BalanceDue().IsZero())
	require.Len(t, updated.Payments, 2)
}

func TestApplyPayment_OverBalanceRejected(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Mug", "MUG-1", "50", "80", "5")

	sale, err := env.saleSvc.CreateSale(env.ctx, &service.CreateSaleInput{
		Items: []service.SaleItemInput{
			{ProductID: product.ID, Quantity: dec(t, "1")},
		},
	})
	require.NoError(t, err)

	_, err = env.saleSvc.ApplyPayment(env.ctx, sale.ID, &service.PaymentInput{
		Amount:        sale.Total.Add(dec(t, "0.01")),
		PaymentMethod: enum.PaymentMethodCash,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindOverPayment))
}

func TestApplyPayment_StaleBalanceCannotOverpay(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Stool", "STL-1", "300", "500", "5")

	sale, err := env.saleSvc.CreateSale(env.ctx, &service.CreateSaleInput{
		Items: []service.SaleItemInput{
			{ProductID: product.ID, Quantity: dec(t, "1")},
		},
	})
	require.NoError(t, err)
	// 500 plus 10% tax.
	require.True(t, sale.Total.Equal(dec(t, "550")))

	_, err = env.saleSvc.ApplyPayment(env.ctx, sale.ID, &service.PaymentInput{
		Amount:        dec(t, "400"),
		PaymentMethod: enum.PaymentMethodCash,
	})
	require.NoError(t, err)

	// A writer that read the full balance before the payment above landed
	// is stopped by the guarded increment.
	applied, err := env.saleRepo.ApplyPaymentAmount(env.ctx, sale.ID, dec(t, "400"))
	require.NoError(t, err)
	assert.False(t, applied)

	applied, err = env.saleRepo.ApplyPaymentAmount(env.ctx, sale.ID, dec(t, "150"))
	require.NoError(t, err)
	assert.True(t, applied)

	updated, err := env.saleSvc.GetSale(env.ctx, sale.ID)
	require.NoError(t, err)
	assert.True(t, updated.PaidAmount.Equal(dec(t, "550")))
}

func TestListSales_SummaryCoversWholeFilteredSet(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Cup", "CUP-1", "20", "30", "50")

	for i := 0; i < 3; i++ {
		_, err := env.saleSvc.CreateSale(env.ctx, &service.CreateSaleInput{
			AmountPaid: dec(t, "33"),
			Items: []service.SaleItemInput{
				{ProductID: product.ID, Quantity: dec(t, "1")},
			},
		})
		require.NoError(t, err)
	}

	sales, total, summary, err := env.saleSvc.ListSales(env.ctx, &repository.SaleFilterParams{
		Pagination: pagination.DefaultPagination(),
	})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, sales, 3)
	// Each sale totals 33 (30 + 10% tax) and is fully paid.
	assert.True(t, summary.TotalAmount.Equal(dec(t, "99")))
	assert.True(t, summary.PaidAmount.Equal(dec(t, "99")))
	assert.True(t, summary.OutstandingAmount.IsZero())
}
