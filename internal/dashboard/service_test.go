package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/canchapp/canchapp-backend/internal/reservations"
	"github.com/canchapp/canchapp-backend/pkg/config"
	"github.com/canchapp/canchapp-backend/pkg/enums"
	pkgerrors "github.com/canchapp/canchapp-backend/pkg/errors"
	"github.com/canchapp/canchapp-backend/pkg/logger"
)

type stubComplexRepo struct {
	ids []uuid.UUID
	err error
}

func (s *stubComplexRepo) OwnerComplexIDs(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	return s.ids, s.err
}

type stubFieldRepo struct {
	count int64
	err   error
	calls int
}

func (s *stubFieldRepo) CountByComplexes(ctx context.Context, complexIDs []uuid.UUID) (int64, error) {
	s.calls++
	return s.count, s.err
}

type stubBookingRepo struct {
	todayCount int64
	todayErr   error
	weekRows   []WeeklyRow
	weekErr    error
	weekFrom   time.Time
	weekTo     time.Time
	recent     []reservations.RecentRow
	recentErr  error
	calls      int
}

func (s *stubBookingRepo) CountConfirmedOnDate(ctx context.Context, complexIDs []uuid.UUID, date time.Time) (int64, error) {
	s.calls++
	return s.todayCount, s.todayErr
}

func (s *stubBookingRepo) FindConfirmedBetween(ctx context.Context, complexIDs []uuid.UUID, from, to time.Time) ([]WeeklyRow, error) {
	s.calls++
	s.weekFrom = from
	s.weekTo = to
	return s.weekRows, s.weekErr
}

func (s *stubBookingRepo) FindRecentByComplexes(ctx context.Context, complexIDs []uuid.UUID, limit int) ([]reservations.RecentRow, error) {
	s.calls++
	return s.recent, s.recentErr
}

// Wednesday 2026-09-09; the week starts Sunday 2026-09-06.
var fixedNow = time.Date(2026, time.September, 9, 15, 30, 0, 0, time.UTC)

func buildDashboardService(t *testing.T, complexes *stubComplexRepo, fields *stubFieldRepo, bookings *stubBookingRepo) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Complexes: complexes,
		Fields:    fields,
		Bookings:  bookings,
		Logger:    logger.New(logger.Options{ServiceName: "test"}),
		Config:    config.DashboardConfig{TopFieldsLimit: 5, OperatingHoursPerDay: 12},
		Now:       func() time.Time { return fixedNow },
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func weeklyRows(fieldID uuid.UUID, name string, price int64, count int) []WeeklyRow {
	rows := make([]WeeklyRow, 0, count)
	for i := 0; i < count; i++ {
		rows = append(rows, WeeklyRow{
			FieldID:    fieldID,
			FieldName:  name,
			Format:     enums.FieldFormat5,
			Surface:    enums.SurfaceSynthetic,
			TotalPrice: decimal.NewFromInt(price),
		})
	}
	return rows
}

func TestMetricsZeroComplexesShortCircuits(t *testing.T) {
	fields := &stubFieldRepo{}
	bookings := &stubBookingRepo{}
	svc := buildDashboardService(t, &stubComplexRepo{}, fields, bookings)

	metrics, err := svc.Metrics(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Metrics: %v", err)
	}
	if metrics.ReservationsToday != 0 || !metrics.WeeklyRevenue.IsZero() || metrics.OccupancyPercent != 0 {
		t.Fatalf("expected zeroed stats, got %+v", metrics)
	}
	if metrics.TopFields == nil || len(metrics.TopFields) != 0 {
		t.Fatalf("expected empty top fields, got %v", metrics.TopFields)
	}
	if fields.calls != 0 || bookings.calls != 0 {
		t.Fatalf("no further queries expected, fields=%d bookings=%d", fields.calls, bookings.calls)
	}
}

func TestMetricsOwnedComplexLookupFailureIsFatal(t *testing.T) {
	svc := buildDashboardService(t, &stubComplexRepo{err: errors.New("db down")}, &stubFieldRepo{}, &stubBookingRepo{})

	_, err := svc.Metrics(context.Background(), uuid.New())
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestMetricsWeeklyRevenueAndTopFields(t *testing.T) {
	fieldA := uuid.New()
	fieldB := uuid.New()
	rows := append(weeklyRows(fieldA, "Cancha 1", 8000, 2), weeklyRows(fieldB, "Cancha 2", 12000, 1)...)
	bookings := &stubBookingRepo{todayCount: 3, weekRows: rows}
	svc := buildDashboardService(t, &stubComplexRepo{ids: []uuid.UUID{uuid.New()}}, &stubFieldRepo{count: 2}, bookings)

	metrics, err := svc.Metrics(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Metrics: %v", err)
	}
	if metrics.ReservationsToday != 3 {
		t.Fatalf("reservationsToday = %d, want 3", metrics.ReservationsToday)
	}
	if !metrics.WeeklyRevenue.Equal(decimal.NewFromInt(28000)) {
		t.Fatalf("weeklyRevenue = %s, want 28000", metrics.WeeklyRevenue)
	}
	if len(metrics.TopFields) != 2 {
		t.Fatalf("expected 2 top fields, got %d", len(metrics.TopFields))
	}
	if metrics.TopFields[0].FieldID != fieldA || metrics.TopFields[0].ReservationCount != 2 {
		t.Fatalf("topFields[0] = %+v, want Cancha 1 with 2 bookings", metrics.TopFields[0])
	}
	if metrics.TopFields[1].FieldID != fieldB || metrics.TopFields[1].ReservationCount != 1 {
		t.Fatalf("topFields[1] = %+v, want Cancha 2 with 1 booking", metrics.TopFields[1])
	}

	wantFrom := time.Date(2026, time.September, 6, 0, 0, 0, 0, time.UTC)
	if !bookings.weekFrom.Equal(wantFrom) || !bookings.weekTo.Equal(wantFrom.AddDate(0, 0, 7)) {
		t.Fatalf("week window = [%s, %s), want starting Sunday %s", bookings.weekFrom, bookings.weekTo, wantFrom)
	}
}

func TestMetricsOccupancy(t *testing.T) {
	fieldA := uuid.New()
	// 21 bookings over one field's 84 weekly hours is 25 percent.
	bookings := &stubBookingRepo{weekRows: weeklyRows(fieldA, "Cancha 1", 8000, 21)}
	svc := buildDashboardService(t, &stubComplexRepo{ids: []uuid.UUID{uuid.New()}}, &stubFieldRepo{count: 1}, bookings)

	metrics, err := svc.Metrics(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Metrics: %v", err)
	}
	if metrics.OccupancyPercent != 25 {
		t.Fatalf("occupancy = %d, want 25", metrics.OccupancyPercent)
	}
}

func TestMetricsOccupancyClampsAtHundred(t *testing.T) {
	fieldA := uuid.New()
	bookings := &stubBookingRepo{weekRows: weeklyRows(fieldA, "Cancha 1", 8000, 120)}
	svc := buildDashboardService(t, &stubComplexRepo{ids: []uuid.UUID{uuid.New()}}, &stubFieldRepo{count: 1}, bookings)

	metrics, err := svc.Metrics(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Metrics: %v", err)
	}
	if metrics.OccupancyPercent != 100 {
		t.Fatalf("occupancy = %d, want clamp at 100", metrics.OccupancyPercent)
	}
}

func TestMetricsDegradePerFailingQuery(t *testing.T) {
	fieldA := uuid.New()
	bookings := &stubBookingRepo{
		todayErr: errors.New("timeout"),
		weekRows: weeklyRows(fieldA, "Cancha 1", 8000, 2),
	}
	svc := buildDashboardService(t, &stubComplexRepo{ids: []uuid.UUID{uuid.New()}}, &stubFieldRepo{count: 1}, bookings)

	metrics, err := svc.Metrics(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("a single failing metric must not fail the call: %v", err)
	}
	if metrics.ReservationsToday != 0 {
		t.Fatalf("failed metric should fold in as zero, got %d", metrics.ReservationsToday)
	}
	if !metrics.WeeklyRevenue.Equal(decimal.NewFromInt(16000)) {
		t.Fatalf("healthy metrics should survive, revenue = %s", metrics.WeeklyRevenue)
	}
}

func TestRecentReservations(t *testing.T) {
	row := reservations.RecentRow{
		UserName:    "Lucia Gomez",
		FieldName:   "Cancha 1",
		ComplexName: "Club Norte",
	}
	row.ID = uuid.New()
	row.Date = time.Date(2026, time.September, 8, 0, 0, 0, 0, time.UTC)
	row.StartTime = "20:00"
	row.EndTime = "21:30"
	row.Status = enums.ReservationConfirmed
	row.TotalPrice = decimal.NewFromInt(15000)

	bookings := &stubBookingRepo{recent: []reservations.RecentRow{row}}
	svc := buildDashboardService(t, &stubComplexRepo{ids: []uuid.UUID{uuid.New()}}, &stubFieldRepo{}, bookings)

	out, err := svc.RecentReservations(context.Background(), uuid.New(), 10)
	if err != nil {
		t.Fatalf("RecentReservations: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 row, got %d", len(out))
	}
	got := out[0]
	if got.Date != "2026-09-08" || got.UserName != "Lucia Gomez" || got.ComplexName != "Club Norte" {
		t.Fatalf("unexpected mapping: %+v", got)
	}

	empty := buildDashboardService(t, &stubComplexRepo{}, &stubFieldRepo{}, &stubBookingRepo{})
	out, err = empty.RecentReservations(context.Background(), uuid.New(), 10)
	if err != nil || len(out) != 0 {
		t.Fatalf("owner without complexes should get an empty feed, got %v %v", out, err)
	}
}
