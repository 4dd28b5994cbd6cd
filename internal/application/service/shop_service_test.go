package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukahub/duka-api/internal/application/service"
	"github.com/dukahub/duka-api/internal/domain/entity"
	"github.com/dukahub/duka-api/pkg/apperror"
)

func registerUser(t *testing.T, env *testEnv) *entity.User {
	t.Helper()
	user, err := env.authSvc.Register(context.Background(), &service.RegisterInput{
		FirstName: "Juma",
		LastName:  "Otieno",
		Email:     fmt.Sprintf("juma-%s@example.com", uuid.NewString()[:8]),
		Password:  "another-horse",
	})
	require.NoError(t, err)
	return user
}

func TestRegisterShop_OwnerGetsMembership(t *testing.T) {
	env := newTestEnv(t)

	membership, err := env.shopSvc.Membership(context.Background(), env.shop.ID, env.user.ID)
	require.NoError(t, err)
	require.NotNil(t, membership)
	assert.Equal(t, "owner", membership.Role)

	shops, err := env.shopSvc.ListShops(context.Background(), env.user.ID)
	require.NoError(t, err)
	require.Len(t, shops, 1)
	assert.Equal(t, env.shop.ID, shops[0].ID)
}

func TestGetShop_NonMemberSeesNotFound(t *testing.T) {
	env := newTestEnv(t)
	outsider := registerUser(t, env)

	_, err := env.shopSvc.GetShop(context.Background(), env.shop.ID, outsider.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestAddMember_RoleRulesAndDuplicates(t *testing.T) {
	env := newTestEnv(t)
	newcomer := registerUser(t, env)

	_, err := env.shopSvc.AddMember(context.Background(), env.shop.ID, env.user.ID, newcomer.ID, "cashier")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	membership, err := env.shopSvc.AddMember(context.Background(), env.shop.ID, env.user.ID, newcomer.ID, "member")
	require.NoError(t, err)
	assert.Equal(t, "member", membership.Role)

	_, err = env.shopSvc.AddMember(context.Background(), env.shop.ID, env.user.ID, newcomer.ID, "member")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	// Plain members cannot add others.
	third := registerUser(t, env)
	_, err = env.shopSvc.AddMember(context.Background(), env.shop.ID, newcomer.ID, third.ID, "member")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestRemoveMember_OwnerIsUnremovable(t *testing.T) {
	env := newTestEnv(t)
	member := registerUser(t, env)

	_, err := env.shopSvc.AddMember(context.Background(), env.shop.ID, env.user.ID, member.ID, "member")
	require.NoError(t, err)

	err = env.shopSvc.RemoveMember(context.Background(), env.shop.ID, env.user.ID, env.user.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidState))

	require.NoError(t, env.shopSvc.RemoveMember(context.Background(), env.shop.ID, env.user.ID, member.ID))
	membership, err := env.shopSvc.Membership(context.Background(), env.shop.ID, member.ID)
	require.NoError(t, err)
	assert.Nil(t, membership)
}

func TestUpdateSettings_OverridesDocumentPrefixes(t *testing.T) {
	env := newTestEnv(t)

	settings := env.shop.Settings
	settings.InvoicePrefix = "DK"
	_, err := env.shopSvc.UpdateSettings(context.Background(), env.shop.ID, env.user.ID, settings)
	require.NoError(t, err)

	// New invoices pick up the shop-level prefix over the configured default.
	product := env.createProduct(t, "Candles", "CND-1", "20", "35", "10")
	sale, err := env.saleSvc.CreateSale(env.ctx, &service.CreateSaleInput{
		Items: []service.SaleItemInput{
			{ProductID: product.ID, Quantity: dec(t, "1")},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, sale.InvoiceNumber, "DK-")
}

func TestUpdateSettings_RequiresOwnerOrAdmin(t *testing.T) {
	env := newTestEnv(t)
	member := registerUser(t, env)
	_, err := env.shopSvc.AddMember(context.Background(), env.shop.ID, env.user.ID, member.ID, "member")
	require.NoError(t, err)

	_, err = env.shopSvc.UpdateSettings(context.Background(), env.shop.ID, member.ID, env.shop.Settings)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}
