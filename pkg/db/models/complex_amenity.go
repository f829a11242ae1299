package models

import "github.com/google/uuid"

// ComplexAmenity joins complexes to the amenities they offer.
type ComplexAmenity struct {
	ComplexID uuid.UUID `gorm:"column:complex_id;type:uuid;primaryKey"`
	AmenityID uuid.UUID `gorm:"column:amenity_id;type:uuid;primaryKey"`
}

func (ComplexAmenity) TableName() string {
	return "complex_amenities"
}
