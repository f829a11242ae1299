package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/canchapp/canchapp-backend/pkg/db/models"
	"github.com/canchapp/canchapp-backend/pkg/enums"
)

// Repository runs the aggregate queries behind the owner dashboard.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CountConfirmedOnDate counts confirmed bookings on one calendar day across
// the given complexes' fields.
func (r *Repository) CountConfirmedOnDate(ctx context.Context, complexIDs []uuid.UUID, date time.Time) (int64, error) {
	if len(complexIDs) == 0 {
		return 0, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Joins("JOIN fields ON fields.id = reservations.field_id").
		Where("fields.complex_id IN ? AND reservations.date = ? AND reservations.status = ?",
			complexIDs, date, enums.ReservationConfirmed).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// WeeklyRow is one confirmed booking in the aggregation window with the
// field metadata the dashboard displays.
type WeeklyRow struct {
	FieldID    uuid.UUID
	FieldName  string
	Format     enums.FieldFormat
	Surface    enums.SurfaceType
	TotalPrice decimal.Decimal
}

// FindConfirmedBetween lists confirmed bookings with date in [from, to)
// across the given complexes' fields.
func (r *Repository) FindConfirmedBetween(ctx context.Context, complexIDs []uuid.UUID, from, to time.Time) ([]WeeklyRow, error) {
	if len(complexIDs) == 0 {
		return nil, nil
	}
	var rows []WeeklyRow
	if err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Select("reservations.field_id AS field_id, fields.name AS field_name, fields.format AS format, fields.surface AS surface, reservations.total_price AS total_price").
		Joins("JOIN fields ON fields.id = reservations.field_id").
		Where("fields.complex_id IN ? AND reservations.date >= ? AND reservations.date < ? AND reservations.status = ?",
			complexIDs, from, to, enums.ReservationConfirmed).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
