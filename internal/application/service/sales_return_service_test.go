package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukahub/duka-api/internal/application/service"
	"github.com/dukahub/duka-api/internal/domain/entity"
	"github.com/dukahub/duka-api/internal/domain/enum"
	"github.com/dukahub/duka-api/pkg/apperror"
)

// sellUnits creates a sale for a single product and returns it with items
// preloaded.
func sellUnits(t *testing.T, env *testEnv, product *entity.Product, qty string) *entity.Sale {
	t.Helper()
	sale, err := env.saleSvc.CreateSale(env.ctx, &service.CreateSaleInput{
		Items: []service.SaleItemInput{
			{ProductID: product.ID, Quantity: dec(t, qty)},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, sale.Items)
	return sale
}

func TestCreateReturn_RecordsPendingWithoutTouchingStock(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Blanket", "BLK-1", "500", "800", "10")
	sale := sellUnits(t, env, product, "3")

	ret, err := env.returnSvc.CreateReturn(env.ctx, &service.CreateReturnInput{
		SaleID: sale.ID,
		Reason: "wrong size",
		Items: []service.ReturnItemInput{
			{SaleItemID: sale.Items[0].ID, Quantity: dec(t, "2")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, enum.ReturnStatusPending, ret.Status)
	// 2 * 800 = 1600 plus 10% tax.
	assert.True(t, ret.Subtotal.Equal(dec(t, "1600")))
	assert.True(t, ret.Total.Equal(dec(t, "1760")))

	// Stock stays at the post-sale level until the return completes.
	assert.True(t, env.stockQuantity(t, product.ID).Equal(dec(t, "7")))
}

func TestCreateReturn_CannotExceedQuantitySold(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Kettle", "KET-1", "900", "1400", "10")
	sale := sellUnits(t, env, product, "2")

	_, err := env.returnSvc.CreateReturn(env.ctx, &service.CreateReturnInput{
		SaleID: sale.ID,
		Reason: "damaged",
		Items: []service.ReturnItemInput{
			{SaleItemID: sale.Items[0].ID, Quantity: dec(t, "3")},
		},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidQuantity))
}

func TestCreateReturn_EarlierReturnsCountAgainstTheLimit(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Iron Box", "IRN-1", "1200", "1800", "10")
	sale := sellUnits(t, env, product, "3")

	_, err := env.returnSvc.CreateReturn(env.ctx, &service.CreateReturnInput{
		SaleID: sale.ID,
		Reason: "defective",
		Items: []service.ReturnItemInput{
			{SaleItemID: sale.Items[0].ID, Quantity: dec(t, "2")},
		},
	})
	require.NoError(t, err)

	// Only one unit remains unreturned on this line.
	_, err = env.returnSvc.CreateReturn(env.ctx, &service.CreateReturnInput{
		SaleID: sale.ID,
		Reason: "defective",
		Items: []service.ReturnItemInput{
			{SaleItemID: sale.Items[0].ID, Quantity: dec(t, "2")},
		},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidQuantity))
}

func TestCompleteReturn_RestoresStock(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Radio", "RAD-1", "1500", "2200", "10")
	sale := sellUnits(t, env, product, "2")
	require.True(t, env.stockQuantity(t, product.ID).Equal(dec(t, "8")))

	ret, err := env.returnSvc.CreateReturn(env.ctx, &service.CreateReturnInput{
		SaleID: sale.ID,
		Reason: "customer changed mind",
		Items: []service.ReturnItemInput{
			{SaleItemID: sale.Items[0].ID, Quantity: dec(t, "2")},
		},
	})
	require.NoError(t, err)

	_, err = env.returnSvc.UpdateReturnStatus(env.ctx, ret.ID, enum.ReturnStatusApproved)
	require.NoError(t, err)
	completed, err := env.returnSvc.UpdateReturnStatus(env.ctx, ret.ID, enum.ReturnStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, enum.ReturnStatusCompleted, completed.Status)

	// Stock is back where it started and the ledger still balances.
	assert.True(t, env.stockQuantity(t, product.ID).Equal(dec(t, "10")))
	assert.True(t, env.movementSum(t, product.ID).Equal(dec(t, "10")))
}

func TestCompleteReturn_ClaimsApprovedStatusOnce(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Thermos", "THM-1", "600", "900", "10")
	sale := sellUnits(t, env, product, "2")

	ret, err := env.returnSvc.CreateReturn(env.ctx, &service.CreateReturnInput{
		SaleID: sale.ID,
		Reason: "leaking lid",
		Items: []service.ReturnItemInput{
			{SaleItemID: sale.Items[0].ID, Quantity: dec(t, "2")},
		},
	})
	require.NoError(t, err)

	_, err = env.returnSvc.UpdateReturnStatus(env.ctx, ret.ID, enum.ReturnStatusApproved)
	require.NoError(t, err)
	_, err = env.returnSvc.UpdateReturnStatus(env.ctx, ret.ID, enum.ReturnStatusCompleted)
	require.NoError(t, err)

	// A second completion that read APPROVED before the first one committed
	// gets no row from the compare-and-swap, so stock cannot restore twice.
	claimed, err := env.returnRepo.UpdateStatus(env.ctx, ret.ID, enum.ReturnStatusApproved, enum.ReturnStatusCompleted)
	require.NoError(t, err)
	assert.False(t, claimed)
	assert.True(t, env.stockQuantity(t, product.ID).Equal(dec(t, "10")))
}

func TestUpdateReturnStatus_PendingCannotCompleteDirectly(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Lamp", "LMP-1", "300", "450", "5")
	sale := sellUnits(t, env, product, "1")

	ret, err := env.returnSvc.CreateReturn(env.ctx, &service.CreateReturnInput{
		SaleID: sale.ID,
		Reason: "faulty switch",
		Items: []service.ReturnItemInput{
			{SaleItemID: sale.Items[0].ID, Quantity: dec(t, "1")},
		},
	})
	require.NoError(t, err)

	_, err = env.returnSvc.UpdateReturnStatus(env.ctx, ret.ID, enum.ReturnStatusCompleted)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidState))
}

func TestUpdateReturnStatus_RejectedIsTerminal(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Clock", "CLK-1", "250", "400", "5")
	sale := sellUnits(t, env, product, "1")

	ret, err := env.returnSvc.CreateReturn(env.ctx, &service.CreateReturnInput{
		SaleID: sale.ID,
		Reason: "no receipt",
		Items: []service.ReturnItemInput{
			{SaleItemID: sale.Items[0].ID, Quantity: dec(t, "1")},
		},
	})
	require.NoError(t, err)

	_, err = env.returnSvc.UpdateReturnStatus(env.ctx, ret.ID, enum.ReturnStatusRejected)
	require.NoError(t, err)

	_, err = env.returnSvc.UpdateReturnStatus(env.ctx, ret.ID, enum.ReturnStatusApproved)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidState))

	// A rejected return never restores stock.
	assert.True(t, env.stockQuantity(t, product.ID).Equal(dec(t, "4")))
}

func TestCreateReturn_RequiresReason(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Whistle", "WHS-1", "40", "70", "5")
	sale := sellUnits(t, env, product, "1")

	_, err := env.returnSvc.CreateReturn(env.ctx, &service.CreateReturnInput{
		SaleID: sale.ID,
		Items: []service.ReturnItemInput{
			{SaleItemID: sale.Items[0].ID, Quantity: dec(t, "1")},
		},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}
