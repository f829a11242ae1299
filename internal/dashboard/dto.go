package dashboard

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/canchapp/canchapp-backend/pkg/enums"
)

// Metrics is the owner dashboard summary.
type Metrics struct {
	ReservationsToday int             `json:"reservations_today"`
	WeeklyRevenue     decimal.Decimal `json:"weekly_revenue"`
	OccupancyPercent  int             `json:"occupancy_percent"`
	TopFields         []TopField      `json:"top_fields"`
}

// TopField is one of the most-booked fields this week.
type TopField struct {
	FieldID          uuid.UUID         `json:"field_id"`
	Name             string            `json:"name"`
	Format           enums.FieldFormat `json:"format"`
	Surface          enums.SurfaceType `json:"surface"`
	ReservationCount int               `json:"reservation_count"`
}

// RecentReservationDTO is one row in the owner's latest-bookings feed.
type RecentReservationDTO struct {
	ID          uuid.UUID               `json:"id"`
	Date        string                  `json:"date"`
	StartTime   string                  `json:"start_time"`
	EndTime     string                  `json:"end_time"`
	Status      enums.ReservationStatus `json:"status"`
	TotalPrice  decimal.Decimal         `json:"total_price"`
	UserName    string                  `json:"user_name"`
	FieldName   string                  `json:"field_name"`
	ComplexName string                  `json:"complex_name"`
}
