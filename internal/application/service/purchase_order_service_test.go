package service_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukahub/duka-api/internal/application/service"
	"github.com/dukahub/duka-api/internal/domain/entity"
	"github.com/dukahub/duka-api/internal/domain/enum"
	"github.com/dukahub/duka-api/pkg/apperror"
)

// orderUnits creates a purchase order for a single product and advances it to
// ORDERED so receipts can be recorded against it.
func orderUnits(t *testing.T, env *testEnv, product *entity.Product, qty, unitPrice string) *entity.PurchaseOrder {
	t.Helper()
	supplier := env.createSupplier(t, "Wholesale Traders")
	po, err := env.poSvc.CreatePurchaseOrder(env.ctx, &service.CreatePurchaseOrderInput{
		SupplierID: supplier.ID,
		Items: []service.PurchaseOrderItemInput{
			{ProductID: product.ID, Quantity: dec(t, qty), UnitPrice: dec(t, unitPrice)},
		},
	})
	require.NoError(t, err)
	_, err = env.poSvc.UpdateStatus(env.ctx, po.ID, enum.POStatusOrdered)
	require.NoError(t, err)
	return po
}

func TestCreatePurchaseOrder_Totals(t *testing.T) {
	env := newTestEnv(t)
	supplier := env.createSupplier(t, "Mombasa Millers")
	pa := env.createProduct(t, "Wheat Flour 2kg", "WF-2", "100", "140", "0")
	pb := env.createProduct(t, "Baking Powder", "BP-1", "60", "90", "0")

	po, err := env.poSvc.CreatePurchaseOrder(env.ctx, &service.CreatePurchaseOrderInput{
		SupplierID: supplier.ID,
		Items: []service.PurchaseOrderItemInput{
			{ProductID: pa.ID, Quantity: dec(t, "10"), UnitPrice: dec(t, "100")},
			{ProductID: pb.ID, Quantity: dec(t, "5"), UnitPrice: dec(t, "60")},
		},
	})
	require.NoError(t, err)

	// 1000 + 300 = 1300 subtotal, 10% tax = 130, total 1430.
	assert.Equal(t, enum.POStatusDraft, po.Status)
	assert.True(t, strings.HasPrefix(po.PONumber, "PO-"))
	assert.True(t, po.Subtotal.Equal(dec(t, "1300")))
	assert.True(t, po.TaxAmount.Equal(dec(t, "130")))
	assert.True(t, po.Total.Equal(dec(t, "1430")))
	require.Len(t, po.Items, 2)

	// Ordering alone never touches stock.
	assert.True(t, env.stockQuantity(t, pa.ID).IsZero())
}

func TestUpdateStatus_ForwardOnly(t *testing.T) {
	env := newTestEnv(t)
	supplier := env.createSupplier(t, "Nairobi Distributors")
	product := env.createProduct(t, "Detergent 1kg", "DET-1", "180", "250", "0")

	po, err := env.poSvc.CreatePurchaseOrder(env.ctx, &service.CreatePurchaseOrderInput{
		SupplierID: supplier.ID,
		Items: []service.PurchaseOrderItemInput{
			{ProductID: product.ID, Quantity: dec(t, "10"), UnitPrice: dec(t, "180")},
		},
	})
	require.NoError(t, err)

	po, err = env.poSvc.UpdateStatus(env.ctx, po.ID, enum.POStatusPending)
	require.NoError(t, err)
	assert.Equal(t, enum.POStatusPending, po.Status)

	// Backwards is rejected.
	_, err = env.poSvc.UpdateStatus(env.ctx, po.ID, enum.POStatusDraft)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidState))

	// RECEIVED is reserved for the receiving flow.
	_, err = env.poSvc.UpdateStatus(env.ctx, po.ID, enum.POStatusReceived)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidState))

	// Cancellation works from any non-terminal state and is final.
	po, err = env.poSvc.UpdateStatus(env.ctx, po.ID, enum.POStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, enum.POStatusCancelled, po.Status)
	_, err = env.poSvc.UpdateStatus(env.ctx, po.ID, enum.POStatusOrdered)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidState))
}

func TestReceiveItems_PartialThenFull(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Cement 50kg", "CEM-50", "700", "850", "0")
	po := orderUnits(t, env, product, "20", "700")
	itemID := po.Items[0].ID

	po, err := env.poSvc.ReceiveItems(env.ctx, po.ID, []service.ReceiveItemInput{
		{ItemID: itemID, Quantity: dec(t, "12")},
	})
	require.NoError(t, err)
	assert.Equal(t, enum.POStatusOrdered, po.Status)
	assert.True(t, po.Items[0].ReceivedQuantity.Equal(dec(t, "12")))
	assert.True(t, env.stockQuantity(t, product.ID).Equal(dec(t, "12")))

	po, err = env.poSvc.ReceiveItems(env.ctx, po.ID, []service.ReceiveItemInput{
		{ItemID: itemID, Quantity: dec(t, "8")},
	})
	require.NoError(t, err)
	assert.Equal(t, enum.POStatusReceived, po.Status)
	assert.True(t, env.stockQuantity(t, product.ID).Equal(dec(t, "20")))
	assert.True(t, env.movementSum(t, product.ID).Equal(dec(t, "20")))

	// A fully received order accepts no further receipts.
	_, err = env.poSvc.ReceiveItems(env.ctx, po.ID, []service.ReceiveItemInput{
		{ItemID: itemID, Quantity: dec(t, "1")},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidState))
	assert.True(t, env.stockQuantity(t, product.ID).Equal(dec(t, "20")))
}

func TestReceiveItems_StaleReceiptCannotExceedOrdered(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Roofing Sheets", "RFS-3", "950", "1250", "0")
	po := orderUnits(t, env, product, "20", "950")
	itemID := po.Items[0].ID

	_, err := env.poSvc.ReceiveItems(env.ctx, po.ID, []service.ReceiveItemInput{
		{ItemID: itemID, Quantity: dec(t, "15")},
	})
	require.NoError(t, err)

	// A writer that validated against the line before the receipt above
	// landed is stopped by the guarded increment.
	accumulated, err := env.poItemRepo.AccumulateReceived(env.ctx, itemID, dec(t, "10"))
	require.NoError(t, err)
	assert.False(t, accumulated)

	accumulated, err = env.poItemRepo.AccumulateReceived(env.ctx, itemID, dec(t, "5"))
	require.NoError(t, err)
	assert.True(t, accumulated)

	fresh, err := env.poSvc.GetPurchaseOrder(env.ctx, po.ID)
	require.NoError(t, err)
	assert.True(t, fresh.Items[0].ReceivedQuantity.Equal(dec(t, "20")))
}

func TestReceiveItems_OverReceiptAbortsTheBatch(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Paint 4L", "PNT-4", "1100", "1500", "0")
	po := orderUnits(t, env, product, "20", "1100")
	itemID := po.Items[0].ID

	_, err := env.poSvc.ReceiveItems(env.ctx, po.ID, []service.ReceiveItemInput{
		{ItemID: itemID, Quantity: dec(t, "25")},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindOverReceipt))

	// Two lines in one batch targeting the same item accumulate.
	_, err = env.poSvc.ReceiveItems(env.ctx, po.ID, []service.ReceiveItemInput{
		{ItemID: itemID, Quantity: dec(t, "12")},
		{ItemID: itemID, Quantity: dec(t, "12")},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindOverReceipt))

	// Nothing was persisted by either attempt.
	assert.True(t, env.stockQuantity(t, product.ID).IsZero())
	fresh, err := env.poSvc.GetPurchaseOrder(env.ctx, po.ID)
	require.NoError(t, err)
	assert.True(t, fresh.Items[0].ReceivedQuantity.IsZero())
	assert.Equal(t, enum.POStatusOrdered, fresh.Status)
}

func TestReceiveItems_RequiresOrderedStatus(t *testing.T) {
	env := newTestEnv(t)
	supplier := env.createSupplier(t, "Lakeside Supplies")
	product := env.createProduct(t, "Nails 1kg", "NLS-1", "120", "180", "0")

	po, err := env.poSvc.CreatePurchaseOrder(env.ctx, &service.CreatePurchaseOrderInput{
		SupplierID: supplier.ID,
		Items: []service.PurchaseOrderItemInput{
			{ProductID: product.ID, Quantity: dec(t, "10"), UnitPrice: dec(t, "120")},
		},
	})
	require.NoError(t, err)

	_, err = env.poSvc.ReceiveItems(env.ctx, po.ID, []service.ReceiveItemInput{
		{ItemID: po.Items[0].ID, Quantity: dec(t, "10")},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidState))
}

func TestDeletePurchaseOrder_OnlyDrafts(t *testing.T) {
	env := newTestEnv(t)
	supplier := env.createSupplier(t, "Coastal Agencies")
	product := env.createProduct(t, "Rope 10m", "RP-10", "90", "140", "0")

	po, err := env.poSvc.CreatePurchaseOrder(env.ctx, &service.CreatePurchaseOrderInput{
		SupplierID: supplier.ID,
		Items: []service.PurchaseOrderItemInput{
			{ProductID: product.ID, Quantity: dec(t, "5"), UnitPrice: dec(t, "90")},
		},
	})
	require.NoError(t, err)
	require.NoError(t, env.poSvc.DeletePurchaseOrder(env.ctx, po.ID))

	ordered := orderUnits(t, env, product, "5", "90")
	err = env.poSvc.DeletePurchaseOrder(env.ctx, ordered.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidState))
}
