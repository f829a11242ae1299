package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a player's rating of a complex. One review per user per complex.
type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ComplexID uuid.UUID `gorm:"column:complex_id;type:uuid;not null;index;uniqueIndex:ux_reviews_complex_user"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:ux_reviews_complex_user"`
	Rating    int       `gorm:"column:rating;not null"`
	Comment   *string   `gorm:"column:comment"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
