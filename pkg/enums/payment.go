package enums

import "fmt"

// PaymentMethod describes how a reservation was paid.
type PaymentMethod string

const (
	PaymentMethodMercadoPago PaymentMethod = "mercado_pago"
	PaymentMethodCash        PaymentMethod = "cash"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodMercadoPago,
	PaymentMethodCash,
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	for _, candidate := range validPaymentMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}

// PaymentStatus tracks the state of a payment attempt.
type PaymentStatus string

const (
	PaymentApproved PaymentStatus = "approved"
	PaymentRejected PaymentStatus = "rejected"
	PaymentPending  PaymentStatus = "pending"
)

var validPaymentStatuses = []PaymentStatus{
	PaymentApproved,
	PaymentRejected,
	PaymentPending,
}

// IsValid reports whether the value is a known PaymentStatus.
func (p PaymentStatus) IsValid() bool {
	for _, candidate := range validPaymentStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}
