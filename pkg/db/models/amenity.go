package models

import (
	"github.com/google/uuid"
)

// Amenity is a service offered by a complex (parking, showers, bar).
type Amenity struct {
	ID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name string    `gorm:"column:name;not null;uniqueIndex"`
	Icon *string   `gorm:"column:icon"`
}
