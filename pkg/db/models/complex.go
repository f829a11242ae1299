package models

import (
	"time"

	"github.com/google/uuid"
)

// Complex represents a sports facility owned by an admin user.
type Complex struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID     uuid.UUID  `gorm:"column:owner_id;type:uuid;not null;index"`
	Name        string     `gorm:"column:name;not null"`
	Description *string    `gorm:"column:description"`
	Address     string     `gorm:"column:address;not null"`
	City        string     `gorm:"column:city;not null"`
	Phone       *string    `gorm:"column:phone"`
	PhotoURL    *string    `gorm:"column:photo_url"`
	OpeningTime string     `gorm:"column:opening_time;not null;default:'08:00'"`
	ClosingTime string     `gorm:"column:closing_time;not null;default:'23:00'"`
	IsActive    bool       `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`

	Fields    []Field   `gorm:"foreignKey:ComplexID"`
	Amenities []Amenity `gorm:"many2many:complex_amenities;joinForeignKey:ComplexID;joinReferences:AmenityID"`
}
