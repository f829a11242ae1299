package fields

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/canchapp/canchapp-backend/pkg/db/models"
	"github.com/canchapp/canchapp-backend/pkg/enums"
)

// FieldDTO is the transport shape for a bookable field.
type FieldDTO struct {
	ID        uuid.UUID         `json:"id"`
	ComplexID uuid.UUID         `json:"complex_id"`
	Name      string            `json:"name"`
	Format    enums.FieldFormat `json:"format"`
	Surface   enums.SurfaceType `json:"surface"`
	Covered   bool              `json:"covered"`
	Lighting  bool              `json:"lighting"`
	BasePrice decimal.Decimal   `json:"base_price"`
	Photos    []string          `json:"photos"`
	IsActive  bool              `json:"is_active"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// CreateFieldInput holds creation-time data for a new field.
type CreateFieldInput struct {
	Name      string            `json:"name" validate:"required"`
	Format    enums.FieldFormat `json:"format" validate:"required"`
	Surface   enums.SurfaceType `json:"surface" validate:"required"`
	Covered   bool              `json:"covered"`
	Lighting  bool              `json:"lighting"`
	BasePrice decimal.Decimal   `json:"base_price" validate:"required"`
	Photos    []string          `json:"photos,omitempty"`
}

// UpdateFieldInput captures the allowed field mutations.
type UpdateFieldInput struct {
	Name      *string            `json:"name,omitempty"`
	Format    *enums.FieldFormat `json:"format,omitempty"`
	Surface   *enums.SurfaceType `json:"surface,omitempty"`
	Covered   *bool              `json:"covered,omitempty"`
	Lighting  *bool              `json:"lighting,omitempty"`
	BasePrice *decimal.Decimal   `json:"base_price,omitempty"`
	Photos    *[]string          `json:"photos,omitempty"`
	IsActive  *bool              `json:"is_active,omitempty"`
}

// FromModel maps the persisted field into a DTO.
func FromModel(m *models.Field) *FieldDTO {
	if m == nil {
		return nil
	}
	return &FieldDTO{
		ID:        m.ID,
		ComplexID: m.ComplexID,
		Name:      m.Name,
		Format:    m.Format,
		Surface:   m.Surface,
		Covered:   m.Covered,
		Lighting:  m.Lighting,
		BasePrice: m.BasePrice,
		Photos:    append([]string(nil), m.Photos...),
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
