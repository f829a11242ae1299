package pricing

import (
	"context"

	"github.com/canchapp/canchapp-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles price rule persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to price rule operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByField returns all rules for a field, stable by day then start time.
func (r *Repository) FindByField(ctx context.Context, fieldID uuid.UUID) ([]models.PriceRule, error) {
	var rules []models.PriceRule
	if err := r.db.WithContext(ctx).
		Where("field_id = ?", fieldID).
		Order("day_of_week ASC, start_time ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// FindActiveByFields loads active rules across many fields at once.
func (r *Repository) FindActiveByFields(ctx context.Context, fieldIDs []uuid.UUID) ([]models.PriceRule, error) {
	if len(fieldIDs) == 0 {
		return nil, nil
	}
	var rules []models.PriceRule
	if err := r.db.WithContext(ctx).
		Where("field_id IN ? AND is_active", fieldIDs).
		Order("day_of_week ASC, start_time ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// DeleteByFieldWithTx removes every rule of the field inside the transaction.
func (r *Repository) DeleteByFieldWithTx(tx *gorm.DB, fieldID uuid.UUID) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.Where("field_id = ?", fieldID).Delete(&models.PriceRule{}).Error
}

// CreateAllWithTx inserts the new rule set inside the transaction.
func (r *Repository) CreateAllWithTx(tx *gorm.DB, rules []models.PriceRule) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if len(rules) == 0 {
		return nil
	}
	return tx.Create(&rules).Error
}
