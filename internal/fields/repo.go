package fields

import (
	"context"
	"fmt"

	"github.com/canchapp/canchapp-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles field persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to field operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new field row.
func (r *Repository) Create(ctx context.Context, field *models.Field) error {
	if field == nil {
		return fmt.Errorf("field is required")
	}
	return r.db.WithContext(ctx).Create(field).Error
}

// FindByID loads a field by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Field, error) {
	var field models.Field
	if err := r.db.WithContext(ctx).First(&field, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &field, nil
}

// FindByComplex returns all fields under a complex.
func (r *Repository) FindByComplex(ctx context.Context, complexID uuid.UUID) ([]models.Field, error) {
	var fields []models.Field
	if err := r.db.WithContext(ctx).
		Where("complex_id = ?", complexID).
		Order("created_at ASC").
		Find(&fields).Error; err != nil {
		return nil, err
	}
	return fields, nil
}

// CountByComplexes counts fields across the provided complexes.
func (r *Repository) CountByComplexes(ctx context.Context, complexIDs []uuid.UUID) (int64, error) {
	if len(complexIDs) == 0 {
		return 0, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Field{}).
		Where("complex_id IN ?", complexIDs).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Update saves the provided field.
func (r *Repository) Update(ctx context.Context, field *models.Field) error {
	if field == nil {
		return fmt.Errorf("field is required")
	}
	return r.db.WithContext(ctx).Save(field).Error
}

// Delete removes the field.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Field{}, "id = ?", id).Error
}
