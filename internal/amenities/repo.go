package amenities

import (
	"context"

	"github.com/canchapp/canchapp-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository handles the amenity catalog.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to amenity operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns the full amenity catalog ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.Amenity, error) {
	var amenities []models.Amenity
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&amenities).Error; err != nil {
		return nil, err
	}
	return amenities, nil
}
