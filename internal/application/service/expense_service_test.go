package service_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukahub/duka-api/internal/application/service"
	"github.com/dukahub/duka-api/internal/domain/enum"
	"github.com/dukahub/duka-api/pkg/apperror"
)

func TestCreateExpense_NumberAndTotal(t *testing.T) {
	env := newTestEnv(t)

	expense, err := env.expenseSvc.CreateExpense(env.ctx, &service.CreateExpenseInput{
		Description: "Monthly rent",
		Amount:      dec(t, "15000"),
		TaxAmount:   dec(t, "2400"),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(expense.ExpenseNumber, "EXP-"))
	assert.True(t, expense.TotalAmount.Equal(dec(t, "17400")))
	assert.True(t, expense.PaidAmount.IsZero())
	assert.Equal(t, enum.ExpenseStatusPending, expense.Status)
}

func TestApplyExpensePayment_StatusProgression(t *testing.T) {
	env := newTestEnv(t)

	expense, err := env.expenseSvc.CreateExpense(env.ctx, &service.CreateExpenseInput{
		Description: "Electricity bill",
		Amount:      dec(t, "4000"),
	})
	require.NoError(t, err)

	_, err = env.expenseSvc.ApplyPayment(env.ctx, expense.ID, &service.PaymentInput{
		Amount:        dec(t, "1500"),
		PaymentMethod: enum.PaymentMethodMobile,
	})
	require.NoError(t, err)

	updated, err := env.expenseSvc.GetExpense(env.ctx, expense.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.ExpenseStatusPartiallyPaid, updated.Status)
	assert.True(t, updated.BalanceDue().Equal(dec(t, "2500")))

	_, err = env.expenseSvc.ApplyPayment(env.ctx, expense.ID, &service.PaymentInput{
		Amount:        dec(t, "2500"),
		PaymentMethod: enum.PaymentMethodBank,
	})
	require.NoError(t, err)

	updated, err = env.expenseSvc.GetExpense(env.ctx, expense.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.ExpenseStatusPaid, updated.Status)
	require.Len(t, updated.Payments, 2)
}

func TestApplyExpensePayment_OverBalanceRejected(t *testing.T) {
	env := newTestEnv(t)

	expense, err := env.expenseSvc.CreateExpense(env.ctx, &service.CreateExpenseInput{
		Description: "Water bill",
		Amount:      dec(t, "800"),
	})
	require.NoError(t, err)

	_, err = env.expenseSvc.ApplyPayment(env.ctx, expense.ID, &service.PaymentInput{
		Amount:        dec(t, "800.01"),
		PaymentMethod: enum.PaymentMethodCash,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindOverPayment))
}

func TestApplyExpensePayment_StaleBalanceCannotOverpay(t *testing.T) {
	env := newTestEnv(t)

	expense, err := env.expenseSvc.CreateExpense(env.ctx, &service.CreateExpenseInput{
		Description: "Security services",
		Amount:      dec(t, "10000"),
	})
	require.NoError(t, err)

	_, err = env.expenseSvc.ApplyPayment(env.ctx, expense.ID, &service.PaymentInput{
		Amount:        dec(t, "6000"),
		PaymentMethod: enum.PaymentMethodBank,
	})
	require.NoError(t, err)

	// A writer that read the full balance before the payment above landed
	// is stopped by the guarded increment.
	applied, err := env.expenseRepo.ApplyPaymentAmount(env.ctx, expense.ID, dec(t, "6000"))
	require.NoError(t, err)
	assert.False(t, applied)

	applied, err = env.expenseRepo.ApplyPaymentAmount(env.ctx, expense.ID, dec(t, "4000"))
	require.NoError(t, err)
	assert.True(t, applied)

	// Once any payment is recorded the cancellation guard gets no row either.
	cancelled, err := env.expenseRepo.MarkCancelled(env.ctx, expense.ID)
	require.NoError(t, err)
	assert.False(t, cancelled)
}

func TestCancelExpense_Guards(t *testing.T) {
	env := newTestEnv(t)

	expense, err := env.expenseSvc.CreateExpense(env.ctx, &service.CreateExpenseInput{
		Description: "Stationery",
		Amount:      dec(t, "600"),
	})
	require.NoError(t, err)

	cancelled, err := env.expenseSvc.CancelExpense(env.ctx, expense.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.ExpenseStatusCancelled, cancelled.Status)

	// Cancelling twice is an error.
	_, err = env.expenseSvc.CancelExpense(env.ctx, expense.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidState))

	// So is paying a cancelled expense.
	_, err = env.expenseSvc.ApplyPayment(env.ctx, expense.ID, &service.PaymentInput{
		Amount:        dec(t, "600"),
		PaymentMethod: enum.PaymentMethodCash,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidState))
}

func TestCancelExpense_RejectedOncePaid(t *testing.T) {
	env := newTestEnv(t)

	expense, err := env.expenseSvc.CreateExpense(env.ctx, &service.CreateExpenseInput{
		Description: "Transport",
		Amount:      dec(t, "1200"),
	})
	require.NoError(t, err)

	_, err = env.expenseSvc.ApplyPayment(env.ctx, expense.ID, &service.PaymentInput{
		Amount:        dec(t, "200"),
		PaymentMethod: enum.PaymentMethodCash,
	})
	require.NoError(t, err)

	_, err = env.expenseSvc.CancelExpense(env.ctx, expense.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidState))
}

func TestCreateExpense_RecurringDayValidated(t *testing.T) {
	env := newTestEnv(t)

	day := 31
	_, err := env.expenseSvc.CreateExpense(env.ctx, &service.CreateExpenseInput{
		Description:  "Internet subscription",
		Amount:       dec(t, "3000"),
		IsRecurring:  true,
		RecurringDay: &day,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	day = 5
	expense, err := env.expenseSvc.CreateExpense(env.ctx, &service.CreateExpenseInput{
		Description:  "Internet subscription",
		Amount:       dec(t, "3000"),
		IsRecurring:  true,
		RecurringDay: &day,
	})
	require.NoError(t, err)
	assert.True(t, expense.IsRecurring)
}

func TestCreateExpense_UnknownCategoryRejected(t *testing.T) {
	env := newTestEnv(t)

	category, err := env.expenseSvc.CreateCategory(env.ctx, "Utilities", "Power and water")
	require.NoError(t, err)

	expense, err := env.expenseSvc.CreateExpense(env.ctx, &service.CreateExpenseInput{
		CategoryID:  &category.ID,
		Description: "Garbage collection",
		Amount:      dec(t, "500"),
	})
	require.NoError(t, err)
	assert.Equal(t, category.ID, *expense.CategoryID)

	missing := env.shop.ID // any uuid that is not a category
	_, err = env.expenseSvc.CreateExpense(env.ctx, &service.CreateExpenseInput{
		CategoryID:  &missing,
		Description: "Garbage collection",
		Amount:      dec(t, "500"),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
