package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceRule overrides a field's base price for a weekly time window.
// DayOfWeek follows time.Weekday numbering (0 = Sunday).
type PriceRule struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	FieldID   uuid.UUID       `gorm:"column:field_id;type:uuid;not null;index"`
	DayOfWeek int             `gorm:"column:day_of_week;not null"`
	StartTime string          `gorm:"column:start_time;not null"`
	EndTime   string          `gorm:"column:end_time;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	IsActive  bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
