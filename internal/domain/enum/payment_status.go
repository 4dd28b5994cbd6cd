package enum

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the payment state of a sale
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPartial PaymentStatus = "PARTIAL"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusOverdue PaymentStatus = "OVERDUE"
)

// DerivePaymentStatus computes a sale's payment status from its amounts.
// It is a pure function of total and paid and is called at every mutation
// site; the status is never recomputed implicitly on save.
func DerivePaymentStatus(total, paid decimal.Decimal) PaymentStatus {
	switch {
	case total.IsPositive() && paid.GreaterThanOrEqual(total):
		return PaymentStatusPaid
	case paid.IsPositive():
		return PaymentStatusPartial
	default:
		return PaymentStatusPending
	}
}

func (s PaymentStatus) String() string {
	return string(s)
}

func (s PaymentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = PaymentStatus(str)
	return nil
}

func (s PaymentStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *PaymentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = PaymentStatusPending
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = PaymentStatus(v)
	case []byte:
		*s = PaymentStatus(string(v))
	}
	return nil
}
