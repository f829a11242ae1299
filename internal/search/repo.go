package search

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/canchapp/canchapp-backend/pkg/db/models"
)

// Repository runs the read-only queries behind the public search surface.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// SearchComplexes returns active complexes whose name contains the query,
// with their active fields and amenities attached. An empty query matches
// everything.
func (r *Repository) SearchComplexes(ctx context.Context, nameQuery string) ([]models.Complex, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Complex{}).
		Where("is_active = ?", true).
		Preload("Fields", "is_active = ?", true).
		Preload("Amenities").
		Order("name ASC")
	if trimmed := strings.TrimSpace(nameQuery); trimmed != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(trimmed)+"%")
	}

	var rows []models.Complex
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindComplex loads one complex with its active fields for slot listing.
func (r *Repository) FindComplex(ctx context.Context, id uuid.UUID) (*models.Complex, error) {
	var row models.Complex
	if err := r.db.WithContext(ctx).
		Preload("Fields", "is_active = ?", true).
		First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
