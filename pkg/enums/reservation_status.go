package enums

import "fmt"

// ReservationStatus tracks the lifecycle of a booking.
type ReservationStatus string

const (
	ReservationPendingPayment ReservationStatus = "pending_payment"
	ReservationConfirmed      ReservationStatus = "confirmed"
	ReservationCanceled       ReservationStatus = "canceled"
	ReservationCompleted      ReservationStatus = "completed"
)

var validReservationStatuses = []ReservationStatus{
	ReservationPendingPayment,
	ReservationConfirmed,
	ReservationCanceled,
	ReservationCompleted,
}

var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationPendingPayment: {ReservationConfirmed, ReservationCanceled},
	ReservationConfirmed:      {ReservationCanceled, ReservationCompleted},
	ReservationCanceled:       {},
	ReservationCompleted:      {},
}

// String implements fmt.Stringer.
func (s ReservationStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ReservationStatus.
func (s ReservationStatus) IsValid() bool {
	for _, candidate := range validReservationStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// Blocks reports whether a reservation in this status occupies its time slot.
func (s ReservationStatus) Blocks() bool {
	return s == ReservationPendingPayment || s == ReservationConfirmed
}

// CanTransitionTo reports whether the target status is a legal next state.
func (s ReservationStatus) CanTransitionTo(target ReservationStatus) bool {
	for _, candidate := range reservationTransitions[s] {
		if candidate == target {
			return true
		}
	}
	return false
}

// ParseReservationStatus converts raw input into a ReservationStatus.
func ParseReservationStatus(value string) (ReservationStatus, error) {
	for _, candidate := range validReservationStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid reservation status %q", value)
}
