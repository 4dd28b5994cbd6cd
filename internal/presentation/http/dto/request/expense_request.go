package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest represents an expense creation request
type CreateExpenseRequest struct {
	CategoryID   *uuid.UUID      `json:"category_id"`
	SupplierID   *uuid.UUID      `json:"supplier_id"`
	Description  string          `json:"description" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	TaxAmount    decimal.Decimal `json:"tax_amount"`
	ExpenseDate  *time.Time      `json:"expense_date"`
	IsRecurring  bool            `json:"is_recurring"`
	RecurringDay *int            `json:"recurring_day"`
	Notes        string          `json:"notes"`
}
