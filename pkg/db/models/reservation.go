package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/canchapp/canchapp-backend/pkg/enums"
)

// Reservation books a field for a same-day [start, end) window.
// Date carries the calendar day; StartTime/EndTime are "HH:MM" strings so the
// end of a late booking can read "24:00" without rolling into the next day.
type Reservation struct {
	ID         uuid.UUID               `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	FieldID    uuid.UUID               `gorm:"column:field_id;type:uuid;not null;index"`
	UserID     uuid.UUID               `gorm:"column:user_id;type:uuid;not null;index"`
	Date       time.Time               `gorm:"column:date;type:date;not null;index"`
	StartTime  string                  `gorm:"column:start_time;not null"`
	EndTime    string                  `gorm:"column:end_time;not null"`
	TotalPrice decimal.Decimal         `gorm:"column:total_price;type:numeric(10,2);not null"`
	Status     enums.ReservationStatus `gorm:"column:status;type:reservation_status;not null;default:'pending_payment'"`
	Notes      *string                 `gorm:"column:notes"`
	CreatedAt  time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
