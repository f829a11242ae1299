package reviews

import (
	"context"
	"fmt"

	"github.com/canchapp/canchapp-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles review persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to review operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new review row.
func (r *Repository) Create(ctx context.Context, review *models.Review) error {
	if review == nil {
		return fmt.Errorf("review is required")
	}
	return r.db.WithContext(ctx).Create(review).Error
}

// ListRow carries a review joined with the author name.
type ListRow struct {
	models.Review
	UserName string
}

// FindByComplex lists a complex's reviews, newest first, with author names.
func (r *Repository) FindByComplex(ctx context.Context, complexID uuid.UUID) ([]ListRow, error) {
	var rows []ListRow
	if err := r.db.WithContext(ctx).
		Table("reviews").
		Select("reviews.*, users.name AS user_name").
		Joins("JOIN users ON users.id = reviews.user_id").
		Where("reviews.complex_id = ?", complexID).
		Order("reviews.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ExistsByComplexAndUser reports whether the user already reviewed the complex.
func (r *Repository) ExistsByComplexAndUser(ctx context.Context, complexID, userID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("complex_id = ? AND user_id = ?", complexID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
