package dashboard

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/canchapp/canchapp-backend/internal/reservations"
	"github.com/canchapp/canchapp-backend/pkg/config"
	pkgerrors "github.com/canchapp/canchapp-backend/pkg/errors"
	"github.com/canchapp/canchapp-backend/pkg/logger"
)

const dateLayout = "2006-01-02"

type complexRepository interface {
	OwnerComplexIDs(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error)
}

type fieldRepository interface {
	CountByComplexes(ctx context.Context, complexIDs []uuid.UUID) (int64, error)
}

type bookingRepository interface {
	CountConfirmedOnDate(ctx context.Context, complexIDs []uuid.UUID, date time.Time) (int64, error)
	FindConfirmedBetween(ctx context.Context, complexIDs []uuid.UUID, from, to time.Time) ([]WeeklyRow, error)
	FindRecentByComplexes(ctx context.Context, complexIDs []uuid.UUID, limit int) ([]reservations.RecentRow, error)
}

// Service computes summary statistics for one facility owner.
type Service interface {
	Metrics(ctx context.Context, ownerID uuid.UUID) (*Metrics, error)
	RecentReservations(ctx context.Context, ownerID uuid.UUID, limit int) ([]RecentReservationDTO, error)
}

type service struct {
	complexes complexRepository
	fields    fieldRepository
	bookings  bookingRepository
	logg      *logger.Logger
	cfg       config.DashboardConfig
	now       func() time.Time
}

// ServiceParams wires the dashboard service dependencies.
type ServiceParams struct {
	Complexes complexRepository
	Fields    fieldRepository
	Bookings  bookingRepository
	Logger    *logger.Logger
	Config    config.DashboardConfig
	// Now overrides the clock in tests. Defaults to time.Now.
	Now func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.Complexes == nil {
		return nil, fmt.Errorf("complex repository required")
	}
	if params.Fields == nil {
		return nil, fmt.Errorf("field repository required")
	}
	if params.Bookings == nil {
		return nil, fmt.Errorf("booking repository required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Config.TopFieldsLimit <= 0 {
		params.Config.TopFieldsLimit = 5
	}
	if params.Config.OperatingHoursPerDay <= 0 {
		params.Config.OperatingHoursPerDay = 12
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &service{
		complexes: params.Complexes,
		fields:    params.Fields,
		bookings:  params.Bookings,
		logg:      params.Logger,
		cfg:       params.Config,
		now:       params.Now,
	}, nil
}

// Metrics aggregates today's bookings, weekly revenue, the top fields and the
// occupancy ratio for the owner. The owned-complex lookup is the only fatal
// query; each metric fetch that fails is logged and folded in as zero.
func (s *service) Metrics(ctx context.Context, ownerID uuid.UUID) (*Metrics, error) {
	complexIDs, err := s.complexes.OwnerComplexIDs(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list owned complexes")
	}
	if len(complexIDs) == 0 {
		return emptyMetrics(), nil
	}

	now := s.now()
	today := startOfDay(now)
	weekFrom := startOfWeek(now)
	weekTo := weekFrom.AddDate(0, 0, 7)

	var (
		todayCount int64
		todayErr   error
		weekRows   []WeeklyRow
		weekErr    error
		fieldCount int64
		fieldErr   error
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		todayCount, todayErr = s.bookings.CountConfirmedOnDate(groupCtx, complexIDs, today)
		return nil
	})
	group.Go(func() error {
		weekRows, weekErr = s.bookings.FindConfirmedBetween(groupCtx, complexIDs, weekFrom, weekTo)
		return nil
	})
	group.Go(func() error {
		fieldCount, fieldErr = s.fields.CountByComplexes(groupCtx, complexIDs)
		return nil
	})
	_ = group.Wait()

	if combined := multierr.Combine(todayErr, weekErr, fieldErr); combined != nil {
		s.logg.Error(ctx, "dashboard metrics degraded", combined)
	}
	if todayErr != nil {
		todayCount = 0
	}
	if weekErr != nil {
		weekRows = nil
	}
	if fieldErr != nil {
		fieldCount = 0
	}

	metrics := emptyMetrics()
	metrics.ReservationsToday = int(todayCount)
	for _, row := range weekRows {
		metrics.WeeklyRevenue = metrics.WeeklyRevenue.Add(row.TotalPrice)
	}
	metrics.TopFields = topFields(weekRows, s.cfg.TopFieldsLimit)
	metrics.OccupancyPercent = occupancyPercent(len(weekRows), fieldCount, s.cfg.OperatingHoursPerDay)
	return metrics, nil
}

// RecentReservations lists the latest bookings across the owner's complexes.
func (s *service) RecentReservations(ctx context.Context, ownerID uuid.UUID, limit int) ([]RecentReservationDTO, error) {
	complexIDs, err := s.complexes.OwnerComplexIDs(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list owned complexes")
	}
	if len(complexIDs) == 0 {
		return []RecentReservationDTO{}, nil
	}
	rows, err := s.bookings.FindRecentByComplexes(ctx, complexIDs, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list recent reservations")
	}
	out := make([]RecentReservationDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, RecentReservationDTO{
			ID:          row.ID,
			Date:        row.Date.Format(dateLayout),
			StartTime:   row.StartTime,
			EndTime:     row.EndTime,
			Status:      row.Status,
			TotalPrice:  row.TotalPrice,
			UserName:    row.UserName,
			FieldName:   row.FieldName,
			ComplexName: row.ComplexName,
		})
	}
	return out, nil
}

func emptyMetrics() *Metrics {
	return &Metrics{
		WeeklyRevenue: decimal.Zero,
		TopFields:     []TopField{},
	}
}

func startOfDay(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// startOfWeek returns the most recent Sunday at 00:00 local time.
func startOfWeek(now time.Time) time.Time {
	return startOfDay(now).AddDate(0, 0, -int(now.Weekday()))
}

func topFields(rows []WeeklyRow, limit int) []TopField {
	byField := map[uuid.UUID]*TopField{}
	for _, row := range rows {
		entry, ok := byField[row.FieldID]
		if !ok {
			entry = &TopField{
				FieldID: row.FieldID,
				Name:    row.FieldName,
				Format:  row.Format,
				Surface: row.Surface,
			}
			byField[row.FieldID] = entry
		}
		entry.ReservationCount++
	}

	out := make([]TopField, 0, len(byField))
	for _, entry := range byField {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ReservationCount != out[j].ReservationCount {
			return out[i].ReservationCount > out[j].ReservationCount
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// occupancyPercent is weekly bookings over the theoretical weekly slot count
// of fieldCount fields at hoursPerDay bookable hours, as a percent clamped to
// [0, 100]. hoursPerDay is a fixed assumption, not the real operating hours.
func occupancyPercent(weeklyCount int, fieldCount int64, hoursPerDay int) int {
	if fieldCount <= 0 || weeklyCount <= 0 {
		return 0
	}
	capacity := float64(fieldCount) * 7 * float64(hoursPerDay)
	percent := int(math.Round(float64(weeklyCount) / capacity * 100))
	if percent > 100 {
		return 100
	}
	if percent < 0 {
		return 0
	}
	return percent
}
