package complexes

import (
	"context"
	"fmt"

	"github.com/canchapp/canchapp-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles complex persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to complex operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new complex row.
func (r *Repository) Create(ctx context.Context, complex *models.Complex) error {
	if complex == nil {
		return fmt.Errorf("complex is required")
	}
	return r.db.WithContext(ctx).Create(complex).Error
}

// FindByID loads a complex with its fields and amenities.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Complex, error) {
	var complex models.Complex
	if err := r.db.WithContext(ctx).
		Preload("Fields").
		Preload("Amenities").
		First(&complex, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &complex, nil
}

// FindByOwner returns all complexes owned by the provided user.
func (r *Repository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Complex, error) {
	var complexes []models.Complex
	if err := r.db.WithContext(ctx).
		Preload("Fields").
		Preload("Amenities").
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&complexes).Error; err != nil {
		return nil, err
	}
	return complexes, nil
}

// OwnerComplexIDs returns just the IDs of the owner's complexes.
func (r *Repository) OwnerComplexIDs(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.Complex{}).
		Where("owner_id = ?", ownerID).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// Update saves the provided complex.
func (r *Repository) Update(ctx context.Context, complex *models.Complex) error {
	if complex == nil {
		return fmt.Errorf("complex is required")
	}
	return r.db.WithContext(ctx).Save(complex).Error
}

// Delete removes the complex; fields, rules, and reservations cascade.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Complex{}, "id = ?", id).Error
}

// ReplaceAmenities swaps the complex's amenity set inside the given transaction.
func (r *Repository) ReplaceAmenities(tx *gorm.DB, complexID uuid.UUID, amenityIDs []uuid.UUID) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if err := tx.Where("complex_id = ?", complexID).Delete(&models.ComplexAmenity{}).Error; err != nil {
		return err
	}
	if len(amenityIDs) == 0 {
		return nil
	}
	rows := make([]models.ComplexAmenity, 0, len(amenityIDs))
	for _, id := range amenityIDs {
		rows = append(rows, models.ComplexAmenity{ComplexID: complexID, AmenityID: id})
	}
	return tx.Create(&rows).Error
}

// ReviewAggregate holds the rating summary for one complex.
type ReviewAggregate struct {
	ComplexID uuid.UUID
	Average   float64
	Count     int
}

// ReviewAggregates computes average rating and count for the given complexes.
func (r *Repository) ReviewAggregates(ctx context.Context, complexIDs []uuid.UUID) (map[uuid.UUID]ReviewAggregate, error) {
	result := make(map[uuid.UUID]ReviewAggregate, len(complexIDs))
	if len(complexIDs) == 0 {
		return result, nil
	}
	var rows []ReviewAggregate
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("complex_id, CAST(AVG(rating) AS float) AS average, COUNT(*) AS count").
		Where("complex_id IN ?", complexIDs).
		Group("complex_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.ComplexID] = row
	}
	return result, nil
}
