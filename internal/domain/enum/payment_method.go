package enum

// PaymentMethod is how a sale or payment was settled
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "CASH"
	PaymentMethodCard   PaymentMethod = "CARD"
	PaymentMethodBank   PaymentMethod = "BANK"
	PaymentMethodMobile PaymentMethod = "MOBILE"
	PaymentMethodCredit PaymentMethod = "CREDIT"
)

// IsValid reports whether m is a known payment method.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodBank, PaymentMethodMobile, PaymentMethodCredit:
		return true
	}
	return false
}

func (m PaymentMethod) String() string {
	return string(m)
}
