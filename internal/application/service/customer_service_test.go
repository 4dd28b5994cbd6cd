package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukahub/duka-api/internal/application/service"
	"github.com/dukahub/duka-api/pkg/apperror"
	"github.com/dukahub/duka-api/pkg/pagination"
)

func TestCreateCustomer_DuplicatePhoneRejected(t *testing.T) {
	env := newTestEnv(t)
	env.createCustomer(t, "Amina Hassan")

	_, err := env.customerSvc.CreateCustomer(env.ctx, &service.CustomerInput{
		Name:  "Another Amina",
		Phone: "0700000002",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestDeleteCustomer_WithSalesDeactivatesInstead(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Flour 1kg", "FLR-1", "55", "80", "10")
	customer := env.createCustomer(t, "Daniel Mwangi")

	_, err := env.saleSvc.CreateSale(env.ctx, &service.CreateSaleInput{
		CustomerID: &customer.ID,
		Items: []service.SaleItemInput{
			{ProductID: product.ID, Quantity: dec(t, "1")},
		},
	})
	require.NoError(t, err)

	require.NoError(t, env.customerSvc.DeleteCustomer(env.ctx, customer.ID))

	// The record survives, deactivated, so the sale still resolves.
	kept, err := env.customerSvc.GetCustomer(env.ctx, customer.ID)
	require.NoError(t, err)
	assert.False(t, kept.IsActive)
}

func TestDeleteCustomer_WithoutSalesIsRemoved(t *testing.T) {
	env := newTestEnv(t)
	customer := env.createCustomer(t, "Faith Chebet")

	require.NoError(t, env.customerSvc.DeleteCustomer(env.ctx, customer.ID))

	_, err := env.customerSvc.GetCustomer(env.ctx, customer.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestListCustomers_InactiveHiddenByDefault(t *testing.T) {
	env := newTestEnv(t)
	active := env.createCustomer(t, "Active Customer")
	inactive, err := env.customerSvc.CreateCustomer(env.ctx, &service.CustomerInput{
		Name:  "Inactive Customer",
		Phone: "0722000001",
	})
	require.NoError(t, err)

	product := env.createProduct(t, "Sukari 2kg", "SKR-2", "150", "200", "5")
	_, err = env.saleSvc.CreateSale(env.ctx, &service.CreateSaleInput{
		CustomerID: &inactive.ID,
		Items: []service.SaleItemInput{
			{ProductID: product.ID, Quantity: dec(t, "1")},
		},
	})
	require.NoError(t, err)
	require.NoError(t, env.customerSvc.DeleteCustomer(env.ctx, inactive.ID))

	customers, total, err := env.customerSvc.ListCustomers(env.ctx, pagination.DefaultPagination(), "", false)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, customers, 1)
	assert.Equal(t, active.ID, customers[0].ID)

	_, total, err = env.customerSvc.ListCustomers(env.ctx, pagination.DefaultPagination(), "", true)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}
