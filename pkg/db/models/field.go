package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/canchapp/canchapp-backend/pkg/enums"
)

// Field is a bookable court inside a complex.
type Field struct {
	ID        uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ComplexID uuid.UUID         `gorm:"column:complex_id;type:uuid;not null;index"`
	Name      string            `gorm:"column:name;not null"`
	Format    enums.FieldFormat `gorm:"column:format;not null"`
	Surface   enums.SurfaceType `gorm:"column:surface;type:surface_type;not null"`
	Covered   bool              `gorm:"column:covered;not null;default:false"`
	Lighting  bool              `gorm:"column:lighting;not null;default:false"`
	BasePrice decimal.Decimal   `gorm:"column:base_price;type:numeric(10,2);not null"`
	Photos    pq.StringArray    `gorm:"column:photos;type:text[]"`
	IsActive  bool              `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
