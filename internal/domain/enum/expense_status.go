package enum

import "github.com/shopspring/decimal"

// ExpenseStatus represents the payment state of an expense
type ExpenseStatus string

const (
	ExpenseStatusPending       ExpenseStatus = "PENDING"
	ExpenseStatusPaid          ExpenseStatus = "PAID"
	ExpenseStatusCancelled     ExpenseStatus = "CANCELLED"
	ExpenseStatusPartiallyPaid ExpenseStatus = "PARTIALLY_PAID"
)

// DeriveExpenseStatus computes an expense's status from its amounts, the same
// way DerivePaymentStatus does for sales. CANCELLED is never derived; it is
// an explicit state set by the caller and guarded at payment time.
func DeriveExpenseStatus(total, paid decimal.Decimal) ExpenseStatus {
	switch {
	case total.IsPositive() && paid.GreaterThanOrEqual(total):
		return ExpenseStatusPaid
	case paid.IsPositive():
		return ExpenseStatusPartiallyPaid
	default:
		return ExpenseStatusPending
	}
}

func (s ExpenseStatus) String() string {
	return string(s)
}
