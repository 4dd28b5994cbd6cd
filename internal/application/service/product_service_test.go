package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukahub/duka-api/internal/application/service"
	"github.com/dukahub/duka-api/internal/domain/enum"
	"github.com/dukahub/duka-api/internal/domain/repository"
	"github.com/dukahub/duka-api/pkg/apperror"
	"github.com/dukahub/duka-api/pkg/pagination"
)

func TestCreateProduct_SeedsOpeningStock(t *testing.T) {
	env := newTestEnv(t)

	product := env.createProduct(t, "Spaghetti 400g", "SPG-4", "70", "100", "25")

	assert.True(t, env.stockQuantity(t, product.ID).Equal(dec(t, "25")))

	// The opening balance is on the ledger as an IN movement.
	movements, _, err := env.movementRepo.List(env.ctx, &repository.MovementFilterParams{
		Pagination: pagination.DefaultPagination(),
		ProductID:  &product.ID,
	})
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, enum.MovementIn, movements[0].MovementType)
	assert.Equal(t, "INITIAL", movements[0].ReferenceNumber)
	assert.True(t, movements[0].Quantity.Equal(dec(t, "25")))
}

func TestCreateProduct_ZeroOpeningWritesNoMovement(t *testing.T) {
	env := newTestEnv(t)

	product := env.createProduct(t, "Yeast 10g", "YST-1", "15", "25", "0")

	assert.True(t, env.stockQuantity(t, product.ID).IsZero())
	movements, total, err := env.movementRepo.List(env.ctx, &repository.MovementFilterParams{
		Pagination: pagination.DefaultPagination(),
		ProductID:  &product.ID,
	})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, movements)
}

func TestCreateProduct_DuplicateSKURejected(t *testing.T) {
	env := newTestEnv(t)
	env.createProduct(t, "Honey 500g", "HNY-5", "300", "420", "5")

	_, err := env.productSvc.CreateProduct(env.ctx, &service.CreateProductInput{
		Name:         "Honey Jar",
		SKU:          "HNY-5",
		CostPrice:    dec(t, "300"),
		SellingPrice: dec(t, "420"),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestUpdateProduct_NeverTouchesStock(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Juice 1L", "JCE-1", "90", "130", "12")

	newPrice := dec(t, "150")
	updated, err := env.productSvc.UpdateProduct(env.ctx, product.ID, &service.UpdateProductInput{
		SellingPrice: &newPrice,
	})
	require.NoError(t, err)
	assert.True(t, updated.SellingPrice.Equal(newPrice))

	// Quantity changes only ever go through the movement ledger.
	assert.True(t, env.stockQuantity(t, product.ID).Equal(dec(t, "12")))
	assert.True(t, env.movementSum(t, product.ID).Equal(dec(t, "12")))
}

func TestDeactivateProduct_KeepsHistory(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Biscuits", "BSC-1", "35", "55", "10")

	require.NoError(t, env.productSvc.DeactivateProduct(env.ctx, product.ID))

	fetched, err := env.productSvc.GetProduct(env.ctx, product.ID)
	require.NoError(t, err)
	assert.False(t, fetched.IsActive)
	assert.True(t, env.stockQuantity(t, product.ID).Equal(dec(t, "10")))
}

func TestCreateCategory_UnknownParentRejected(t *testing.T) {
	env := newTestEnv(t)

	parent, err := env.productSvc.CreateCategory(env.ctx, "Beverages", "", nil)
	require.NoError(t, err)

	child, err := env.productSvc.CreateCategory(env.ctx, "Sodas", "", &parent.ID)
	require.NoError(t, err)
	assert.Equal(t, parent.ID, *child.ParentID)

	missing := env.shop.ID
	_, err = env.productSvc.CreateCategory(env.ctx, "Orphans", "", &missing)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
