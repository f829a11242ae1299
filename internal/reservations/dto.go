package reservations

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/canchapp/canchapp-backend/pkg/db/models"
	"github.com/canchapp/canchapp-backend/pkg/enums"
)

// ReservationDTO is the transport shape for a booking.
type ReservationDTO struct {
	ID         uuid.UUID               `json:"id"`
	FieldID    uuid.UUID               `json:"field_id"`
	UserID     uuid.UUID               `json:"user_id"`
	Date       string                  `json:"date"`
	StartTime  string                  `json:"start_time"`
	EndTime    string                  `json:"end_time"`
	TotalPrice decimal.Decimal         `json:"total_price"`
	Status     enums.ReservationStatus `json:"status"`
	Notes      *string                 `json:"notes,omitempty"`
	CreatedAt  time.Time               `json:"created_at"`
	UpdatedAt  time.Time               `json:"updated_at"`
}

// CreateReservationInput is the booking request payload.
type CreateReservationInput struct {
	FieldID       uuid.UUID `json:"field_id" validate:"required"`
	Date          string    `json:"date" validate:"required"`
	StartTime     string    `json:"start_time" validate:"required"`
	DurationHours float64   `json:"duration_hours" validate:"required,gt=0"`
	Notes         *string   `json:"notes,omitempty"`
}

// RecordPaymentInput registers the money taken for a reservation.
type RecordPaymentInput struct {
	Method      enums.PaymentMethod `json:"method" validate:"required"`
	ExternalRef *string             `json:"external_ref,omitempty"`
}

const dateLayout = "2006-01-02"

// FromModel maps the persisted reservation into a DTO.
func FromModel(m *models.Reservation) *ReservationDTO {
	if m == nil {
		return nil
	}
	return &ReservationDTO{
		ID:         m.ID,
		FieldID:    m.FieldID,
		UserID:     m.UserID,
		Date:       m.Date.Format(dateLayout),
		StartTime:  m.StartTime,
		EndTime:    m.EndTime,
		TotalPrice: m.TotalPrice,
		Status:     m.Status,
		Notes:      m.Notes,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
