package complexes

import (
	"time"

	"github.com/google/uuid"

	"github.com/canchapp/canchapp-backend/internal/fields"
	"github.com/canchapp/canchapp-backend/pkg/db/models"
)

// AmenityDTO is the transport shape for a complex amenity.
type AmenityDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Icon *string   `json:"icon,omitempty"`
}

// ComplexDTO exposes a facility with its fields and amenities.
type ComplexDTO struct {
	ID            uuid.UUID         `json:"id"`
	OwnerID       uuid.UUID         `json:"owner_id"`
	Name          string            `json:"name"`
	Description   *string           `json:"description,omitempty"`
	Address       string            `json:"address"`
	City          string            `json:"city"`
	Phone         *string           `json:"phone,omitempty"`
	PhotoURL      *string           `json:"photo_url,omitempty"`
	OpeningTime   string            `json:"opening_time"`
	ClosingTime   string            `json:"closing_time"`
	IsActive      bool              `json:"is_active"`
	Amenities     []AmenityDTO      `json:"amenities"`
	Fields        []fields.FieldDTO `json:"fields,omitempty"`
	AverageRating *float64          `json:"average_rating,omitempty"`
	ReviewCount   int               `json:"review_count"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// CreateComplexInput holds creation-time data for a new complex.
type CreateComplexInput struct {
	Name        string      `json:"name" validate:"required"`
	Description *string     `json:"description,omitempty"`
	Address     string      `json:"address" validate:"required"`
	City        string      `json:"city" validate:"required"`
	Phone       *string     `json:"phone,omitempty"`
	PhotoURL    *string     `json:"photo_url,omitempty"`
	OpeningTime string      `json:"opening_time" validate:"required"`
	ClosingTime string      `json:"closing_time" validate:"required"`
	AmenityIDs  []uuid.UUID `json:"amenity_ids,omitempty"`
}

// UpdateComplexInput captures the allowed complex fields for mutation. Nil
// pointers leave the stored value untouched; AmenityIDs non-nil replaces the
// whole set.
type UpdateComplexInput struct {
	Name        *string      `json:"name,omitempty"`
	Description *string      `json:"description,omitempty"`
	Address     *string      `json:"address,omitempty"`
	City        *string      `json:"city,omitempty"`
	Phone       *string      `json:"phone,omitempty"`
	PhotoURL    *string      `json:"photo_url,omitempty"`
	OpeningTime *string      `json:"opening_time,omitempty"`
	ClosingTime *string      `json:"closing_time,omitempty"`
	IsActive    *bool        `json:"is_active,omitempty"`
	AmenityIDs  *[]uuid.UUID `json:"amenity_ids,omitempty"`
}

// FromModel maps the persisted complex into a DTO.
func FromModel(m *models.Complex) *ComplexDTO {
	if m == nil {
		return nil
	}

	amenities := make([]AmenityDTO, 0, len(m.Amenities))
	for _, a := range m.Amenities {
		amenities = append(amenities, AmenityDTO{ID: a.ID, Name: a.Name, Icon: a.Icon})
	}

	fieldDTOs := make([]fields.FieldDTO, 0, len(m.Fields))
	for i := range m.Fields {
		fieldDTOs = append(fieldDTOs, *fields.FromModel(&m.Fields[i]))
	}

	return &ComplexDTO{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		Name:        m.Name,
		Description: m.Description,
		Address:     m.Address,
		City:        m.City,
		Phone:       m.Phone,
		PhotoURL:    m.PhotoURL,
		OpeningTime: m.OpeningTime,
		ClosingTime: m.ClosingTime,
		IsActive:    m.IsActive,
		Amenities:   amenities,
		Fields:      fieldDTOs,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
