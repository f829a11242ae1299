package reservations

import (
	"context"
	"fmt"
	"time"

	"github.com/canchapp/canchapp-backend/pkg/db/models"
	"github.com/canchapp/canchapp-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles reservation persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to reservation operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func blockingStatuses() []enums.ReservationStatus {
	return []enums.ReservationStatus{
		enums.ReservationPendingPayment,
		enums.ReservationConfirmed,
	}
}

// Create persists a new reservation row.
func (r *Repository) Create(ctx context.Context, reservation *models.Reservation) error {
	if reservation == nil {
		return fmt.Errorf("reservation is required")
	}
	return r.db.WithContext(ctx).Create(reservation).Error
}

// FindByID loads a reservation by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := r.db.WithContext(ctx).First(&reservation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

// FindByUser lists the user's reservations, newest first.
func (r *Repository) FindByUser(ctx context.Context, userID uuid.UUID) ([]models.Reservation, error) {
	var rows []models.Reservation
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, start_time DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindBlockingForFieldDate returns the live bookings of a field on a date.
// Canceled and completed rows never block a slot.
func (r *Repository) FindBlockingForFieldDate(ctx context.Context, fieldID uuid.UUID, date time.Time) ([]models.Reservation, error) {
	var rows []models.Reservation
	if err := r.db.WithContext(ctx).
		Where("field_id = ? AND date = ? AND status IN ?", fieldID, date, blockingStatuses()).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindBlockingForFieldsDate returns every live booking on the given date
// across the listed fields.
func (r *Repository) FindBlockingForFieldsDate(ctx context.Context, fieldIDs []uuid.UUID, date time.Time) ([]models.Reservation, error) {
	if len(fieldIDs) == 0 {
		return nil, nil
	}
	var rows []models.Reservation
	if err := r.db.WithContext(ctx).
		Where("field_id IN ? AND date = ? AND status IN ?", fieldIDs, date, blockingStatuses()).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// BlockedFieldIDs returns the distinct fields that have a live booking
// overlapping [start, end) on the given date.
func (r *Repository) BlockedFieldIDs(ctx context.Context, date time.Time, start, end string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Distinct("field_id").
		Where("date = ? AND status IN ? AND start_time < ? AND end_time > ?", date, blockingStatuses(), end, start).
		Pluck("field_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// UpdateStatus persists a status change.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.ReservationStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ?", id).
		UpdateColumn("status", status).Error
}

// RecentRow joins a reservation with the booker, field, and complex names.
type RecentRow struct {
	models.Reservation
	UserName    string
	FieldName   string
	ComplexName string
}

// FindRecentByComplexes lists the latest bookings across the given complexes.
func (r *Repository) FindRecentByComplexes(ctx context.Context, complexIDs []uuid.UUID, limit int) ([]RecentRow, error) {
	if len(complexIDs) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}
	var rows []RecentRow
	if err := r.db.WithContext(ctx).
		Table("reservations").
		Select("reservations.*, users.name AS user_name, fields.name AS field_name, complexes.name AS complex_name").
		Joins("JOIN fields ON fields.id = reservations.field_id").
		Joins("JOIN complexes ON complexes.id = fields.complex_id").
		Joins("JOIN users ON users.id = reservations.user_id").
		Where("fields.complex_id IN ?", complexIDs).
		Order("reservations.created_at DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CreatePayment records a payment row for a reservation.
func (r *Repository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	if payment == nil {
		return fmt.Errorf("payment is required")
	}
	return r.db.WithContext(ctx).Create(payment).Error
}
