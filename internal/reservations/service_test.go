package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/canchapp/canchapp-backend/pkg/db/models"
	"github.com/canchapp/canchapp-backend/pkg/enums"
	pkgerrors "github.com/canchapp/canchapp-backend/pkg/errors"
	"github.com/canchapp/canchapp-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type stubReservationRepo struct {
	byID     map[uuid.UUID]*models.Reservation
	payments []*models.Payment
}

func newStubReservationRepo() *stubReservationRepo {
	return &stubReservationRepo{byID: map[uuid.UUID]*models.Reservation{}}
}

func (s *stubReservationRepo) Create(ctx context.Context, reservation *models.Reservation) error {
	if reservation.ID == uuid.Nil {
		reservation.ID = uuid.New()
	}
	s.byID[reservation.ID] = reservation
	return nil
}

func (s *stubReservationRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	r, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r, nil
}

func (s *stubReservationRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, r := range s.byID {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *stubReservationRepo) FindBlockingForFieldDate(ctx context.Context, fieldID uuid.UUID, date time.Time) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, r := range s.byID {
		if r.FieldID == fieldID && r.Date.Equal(date) && r.Status.Blocks() {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *stubReservationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.ReservationStatus) error {
	if r, ok := s.byID[id]; ok {
		r.Status = status
	}
	return nil
}

func (s *stubReservationRepo) CreatePayment(ctx context.Context, payment *models.Payment) error {
	s.payments = append(s.payments, payment)
	return nil
}

type stubFieldRepo struct {
	fields map[uuid.UUID]*models.Field
}

func (s *stubFieldRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Field, error) {
	f, ok := s.fields[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return f, nil
}

type stubComplexRepo struct {
	complexes map[uuid.UUID]*models.Complex
}

func (s *stubComplexRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Complex, error) {
	c, ok := s.complexes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

type stubQuoter struct {
	hourly decimal.Decimal
}

func (s stubQuoter) Quote(ctx context.Context, fieldID uuid.UUID, day time.Weekday, start types.Clock, durationHours float64) (decimal.Decimal, error) {
	return s.hourly.Mul(decimal.NewFromFloat(durationHours)), nil
}

type fixture struct {
	svc     Service
	repo    *stubReservationRepo
	ownerID uuid.UUID
	userID  uuid.UUID
	field   *models.Field
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ownerID := uuid.New()
	complex := &models.Complex{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		OpeningTime: "08:00",
		ClosingTime: "23:00",
		IsActive:    true,
	}
	field := &models.Field{
		ID:        uuid.New(),
		ComplexID: complex.ID,
		BasePrice: decimal.NewFromInt(10000),
		IsActive:  true,
	}

	repo := newStubReservationRepo()
	svc, err := NewService(ServiceParams{
		Repo:      repo,
		Fields:    &stubFieldRepo{fields: map[uuid.UUID]*models.Field{field.ID: field}},
		Complexes: &stubComplexRepo{complexes: map[uuid.UUID]*models.Complex{complex.ID: complex}},
		Pricing:   stubQuoter{hourly: decimal.NewFromInt(10000)},
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	return &fixture{
		svc:     svc,
		repo:    repo,
		ownerID: ownerID,
		userID:  uuid.New(),
		field:   field,
	}
}

func assertErrCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s", code)
	}
	appErr := pkgerrors.As(err)
	if appErr == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	if appErr.Code() != code {
		t.Fatalf("expected code %s, got %s", code, appErr.Code())
	}
}

func TestCreateComputesEndAndPrice(t *testing.T) {
	fx := newFixture(t)

	dto, err := fx.svc.Create(context.Background(), fx.userID, CreateReservationInput{
		FieldID:       fx.field.ID,
		Date:          "2026-09-04",
		StartTime:     "20:00",
		DurationHours: 1.5,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.EndTime != "21:30" {
		t.Fatalf("expected end 21:30, got %s", dto.EndTime)
	}
	if !dto.TotalPrice.Equal(decimal.NewFromInt(15000)) {
		t.Fatalf("expected total 15000, got %s", dto.TotalPrice)
	}
	if dto.Status != enums.ReservationPendingPayment {
		t.Fatalf("expected pending_payment, got %s", dto.Status)
	}
}

func TestCreateRejectsOverlap(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	_, err := fx.svc.Create(ctx, fx.userID, CreateReservationInput{
		FieldID:       fx.field.ID,
		Date:          "2026-09-04",
		StartTime:     "20:00",
		DurationHours: 1,
	})
	if err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err = fx.svc.Create(ctx, uuid.New(), CreateReservationInput{
		FieldID:       fx.field.ID,
		Date:          "2026-09-04",
		StartTime:     "20:30",
		DurationHours: 1,
	})
	assertErrCode(t, err, pkgerrors.CodeConflict)

	// touching windows do not overlap
	if _, err := fx.svc.Create(ctx, uuid.New(), CreateReservationInput{
		FieldID:       fx.field.ID,
		Date:          "2026-09-04",
		StartTime:     "21:00",
		DurationHours: 1,
	}); err != nil {
		t.Fatalf("adjacent slot should be free: %v", err)
	}
}

func TestCreateIgnoresCanceledReservations(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	first, err := fx.svc.Create(ctx, fx.userID, CreateReservationInput{
		FieldID:       fx.field.ID,
		Date:          "2026-09-04",
		StartTime:     "20:00",
		DurationHours: 1,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := fx.svc.Cancel(ctx, fx.userID, first.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if _, err := fx.svc.Create(ctx, uuid.New(), CreateReservationInput{
		FieldID:       fx.field.ID,
		Date:          "2026-09-04",
		StartTime:     "20:00",
		DurationHours: 1,
	}); err != nil {
		t.Fatalf("canceled booking must not block the slot: %v", err)
	}
}

func TestCreateRejectsWindowOutsideOperatingHours(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.svc.Create(context.Background(), fx.userID, CreateReservationInput{
		FieldID:       fx.field.ID,
		Date:          "2026-09-04",
		StartTime:     "22:30",
		DurationHours: 1.5,
	})
	assertErrCode(t, err, pkgerrors.CodeValidation)
}

func TestStatusTransitions(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	dto, err := fx.svc.Create(ctx, fx.userID, CreateReservationInput{
		FieldID:       fx.field.ID,
		Date:          "2026-09-04",
		StartTime:     "18:00",
		DurationHours: 1,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	confirmed, err := fx.svc.Confirm(ctx, fx.ownerID, dto.ID, &RecordPaymentInput{Method: enums.PaymentMethodMercadoPago})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if confirmed.Status != enums.ReservationConfirmed {
		t.Fatalf("expected confirmed, got %s", confirmed.Status)
	}
	if len(fx.repo.payments) != 1 {
		t.Fatalf("expected payment recorded, got %d", len(fx.repo.payments))
	}
	if !fx.repo.payments[0].Amount.Equal(dto.TotalPrice) {
		t.Fatalf("payment amount mismatch")
	}

	completed, err := fx.svc.Complete(ctx, fx.ownerID, dto.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.Status != enums.ReservationCompleted {
		t.Fatalf("expected completed, got %s", completed.Status)
	}

	_, err = fx.svc.Cancel(ctx, fx.userID, dto.ID)
	assertErrCode(t, err, pkgerrors.CodeStateConflict)
}

func TestConfirmRequiresComplexOwner(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	dto, err := fx.svc.Create(ctx, fx.userID, CreateReservationInput{
		FieldID:       fx.field.ID,
		Date:          "2026-09-04",
		StartTime:     "18:00",
		DurationHours: 1,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = fx.svc.Confirm(ctx, uuid.New(), dto.ID, nil)
	assertErrCode(t, err, pkgerrors.CodeForbidden)
}

func TestCancelByStranger(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	dto, err := fx.svc.Create(ctx, fx.userID, CreateReservationInput{
		FieldID:       fx.field.ID,
		Date:          "2026-09-04",
		StartTime:     "18:00",
		DurationHours: 1,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = fx.svc.Cancel(ctx, uuid.New(), dto.ID)
	assertErrCode(t, err, pkgerrors.CodeForbidden)

	// complex owner can cancel on the player's behalf
	if _, err := fx.svc.Cancel(ctx, fx.ownerID, dto.ID); err != nil {
		t.Fatalf("owner cancel: %v", err)
	}
}
