package enum_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dukahub/duka-api/internal/domain/enum"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDerivePaymentStatus(t *testing.T) {
	cases := []struct {
		total, paid string
		want        enum.PaymentStatus
	}{
		{"100", "0", enum.PaymentStatusPending},
		{"100", "40", enum.PaymentStatusPartial},
		{"100", "100", enum.PaymentStatusPaid},
		{"100", "100.00", enum.PaymentStatusPaid},
		{"0", "0", enum.PaymentStatusPending},
	}
	for _, tc := range cases {
		got := enum.DerivePaymentStatus(d(tc.total), d(tc.paid))
		assert.Equal(t, tc.want, got, "total=%s paid=%s", tc.total, tc.paid)
	}
}

func TestDeriveExpenseStatus(t *testing.T) {
	cases := []struct {
		total, paid string
		want        enum.ExpenseStatus
	}{
		{"500", "0", enum.ExpenseStatusPending},
		{"500", "100", enum.ExpenseStatusPartiallyPaid},
		{"500", "500", enum.ExpenseStatusPaid},
	}
	for _, tc := range cases {
		got := enum.DeriveExpenseStatus(d(tc.total), d(tc.paid))
		assert.Equal(t, tc.want, got, "total=%s paid=%s", tc.total, tc.paid)
	}
}

func TestPurchaseOrderTransitions(t *testing.T) {
	cases := []struct {
		from, to enum.PurchaseOrderStatus
		want     bool
	}{
		{enum.POStatusDraft, enum.POStatusPending, true},
		{enum.POStatusDraft, enum.POStatusOrdered, true},
		{enum.POStatusPending, enum.POStatusOrdered, true},
		{enum.POStatusOrdered, enum.POStatusReceived, true},
		{enum.POStatusDraft, enum.POStatusCancelled, true},
		{enum.POStatusOrdered, enum.POStatusCancelled, true},

		{enum.POStatusOrdered, enum.POStatusDraft, false},
		{enum.POStatusPending, enum.POStatusDraft, false},
		{enum.POStatusReceived, enum.POStatusCancelled, false},
		{enum.POStatusCancelled, enum.POStatusOrdered, false},
		{enum.POStatusDraft, enum.POStatusDraft, false},
		{enum.POStatusDraft, enum.PurchaseOrderStatus("SHIPPED"), false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestReturnStatusTerminal(t *testing.T) {
	assert.False(t, enum.ReturnStatusPending.IsTerminal())
	assert.False(t, enum.ReturnStatusApproved.IsTerminal())
	assert.True(t, enum.ReturnStatusCompleted.IsTerminal())
	assert.True(t, enum.ReturnStatusRejected.IsTerminal())
}

func TestMovementDirection(t *testing.T) {
	assert.Equal(t, 1, enum.MovementIn.Direction())
	assert.Equal(t, 1, enum.MovementReturn.Direction())
	assert.Equal(t, 1, enum.MovementAdjustment.Direction())
	assert.Equal(t, -1, enum.MovementOut.Direction())
}
