package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukahub/duka-api/internal/application/service"
	"github.com/dukahub/duka-api/internal/domain/enum"
	"github.com/dukahub/duka-api/pkg/apperror"
)

func TestApplyMovement_AdjustsStockAndLogs(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Rice 1kg", "RICE-1", "40", "55", "10")

	movement, err := env.stockSvc.ApplyMovement(env.ctx, &service.MovementInput{
		ProductID: product.ID,
		Type:      enum.MovementIn,
		Quantity:  dec(t, "5"),
		UnitPrice: dec(t, "40"),
	})
	require.NoError(t, err)
	assert.True(t, movement.Quantity.Equal(dec(t, "5")))

	assert.True(t, env.stockQuantity(t, product.ID).Equal(dec(t, "15")))
	// The movement log always sums to the stock quantity.
	assert.True(t, env.movementSum(t, product.ID).Equal(dec(t, "15")))
}

func TestApplyMovement_OutCannotGoNegative(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Sugar 1kg", "SUGAR-1", "50", "70", "3")

	_, err := env.stockSvc.ApplyMovement(env.ctx, &service.MovementInput{
		ProductID: product.ID,
		Type:      enum.MovementOut,
		Quantity:  dec(t, "4"),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInsufficientStock))

	// Nothing changed: stock intact, no movement logged beyond the opening one.
	assert.True(t, env.stockQuantity(t, product.ID).Equal(dec(t, "3")))
	assert.True(t, env.movementSum(t, product.ID).Equal(dec(t, "3")))

	// Draining to exactly zero is fine.
	_, err = env.stockSvc.ApplyMovement(env.ctx, &service.MovementInput{
		ProductID: product.ID,
		Type:      enum.MovementOut,
		Quantity:  dec(t, "3"),
	})
	require.NoError(t, err)
	assert.True(t, env.stockQuantity(t, product.ID).IsZero())
}

func TestApplyMovement_AdjustmentIsSigned(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Salt 500g", "SALT-5", "10", "15", "8")

	_, err := env.stockSvc.ApplyMovement(env.ctx, &service.MovementInput{
		ProductID: product.ID,
		Type:      enum.MovementAdjustment,
		Quantity:  dec(t, "-2.5"),
		Notes:     "stocktake variance",
	})
	require.NoError(t, err)
	assert.True(t, env.stockQuantity(t, product.ID).Equal(dec(t, "5.5")))

	_, err = env.stockSvc.ApplyMovement(env.ctx, &service.MovementInput{
		ProductID: product.ID,
		Type:      enum.MovementAdjustment,
		Quantity:  decimal.Zero,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidQuantity))
}

func TestApplyMovement_UnknownTypeRejected(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Tea 250g", "TEA-25", "80", "110", "0")

	_, err := env.stockSvc.ApplyMovement(env.ctx, &service.MovementInput{
		ProductID: product.ID,
		Type:      enum.MovementType("TRANSFER"),
		Quantity:  dec(t, "1"),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestGetStock_NewProductReadsAsZero(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Maize Flour", "MAIZE-2", "60", "85", "0")

	stock, err := env.stockSvc.GetStock(env.ctx, product.ID)
	require.NoError(t, err)
	assert.True(t, stock.Quantity.IsZero())
}

func TestGetLowStockProducts(t *testing.T) {
	env := newTestEnv(t)

	low, err := env.productSvc.CreateProduct(env.ctx, &service.CreateProductInput{
		Name:            "Cooking Oil 1L",
		SKU:             "OIL-1",
		CostPrice:       dec(t, "150"),
		SellingPrice:    dec(t, "190"),
		MinimumStock:    dec(t, "10"),
		InitialQuantity: dec(t, "4"),
	})
	require.NoError(t, err)

	_, err = env.productSvc.CreateProduct(env.ctx, &service.CreateProductInput{
		Name:            "Bar Soap",
		SKU:             "SOAP-1",
		CostPrice:       dec(t, "30"),
		SellingPrice:    dec(t, "45"),
		MinimumStock:    dec(t, "5"),
		InitialQuantity: dec(t, "50"),
	})
	require.NoError(t, err)

	products, err := env.stockSvc.GetLowStockProducts(env.ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, low.ID, products[0].ID)
}
