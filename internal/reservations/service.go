package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/canchapp/canchapp-backend/pkg/db/models"
	"github.com/canchapp/canchapp-backend/pkg/enums"
	pkgerrors "github.com/canchapp/canchapp-backend/pkg/errors"
	"github.com/canchapp/canchapp-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type reservationRepository interface {
	Create(ctx context.Context, reservation *models.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]models.Reservation, error)
	FindBlockingForFieldDate(ctx context.Context, fieldID uuid.UUID, date time.Time) ([]models.Reservation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.ReservationStatus) error
	CreatePayment(ctx context.Context, payment *models.Payment) error
}

type fieldRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Field, error)
}

type complexRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Complex, error)
}

type priceQuoter interface {
	Quote(ctx context.Context, fieldID uuid.UUID, day time.Weekday, start types.Clock, durationHours float64) (decimal.Decimal, error)
}

// Service exposes booking operations.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateReservationInput) (*ReservationDTO, error)
	GetByID(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*ReservationDTO, error)
	ListOwn(ctx context.Context, userID uuid.UUID) ([]ReservationDTO, error)
	Cancel(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*ReservationDTO, error)
	Confirm(ctx context.Context, actorID uuid.UUID, id uuid.UUID, payment *RecordPaymentInput) (*ReservationDTO, error)
	Complete(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*ReservationDTO, error)
}

type service struct {
	repo      reservationRepository
	fields    fieldRepository
	complexes complexRepository
	pricing   priceQuoter
}

// ServiceParams bundles the dependencies for the reservation service.
type ServiceParams struct {
	Repo      reservationRepository
	Fields    fieldRepository
	Complexes complexRepository
	Pricing   priceQuoter
}

// NewService builds a reservation service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("reservation repository required")
	}
	if params.Fields == nil {
		return nil, fmt.Errorf("field repository required")
	}
	if params.Complexes == nil {
		return nil, fmt.Errorf("complex repository required")
	}
	if params.Pricing == nil {
		return nil, fmt.Errorf("pricing service required")
	}
	return &service{
		repo:      params.Repo,
		fields:    params.Fields,
		complexes: params.Complexes,
		pricing:   params.Pricing,
	}, nil
}

// Create books a field for a same-day window. The end time never wraps past
// midnight, so a late slot can legitimately end at "24:00". Any live booking
// overlapping the window makes the request fail with a conflict.
func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateReservationInput) (*ReservationDTO, error) {
	date, err := time.Parse(dateLayout, input.Date)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid date, expected YYYY-MM-DD")
	}
	start, err := types.ParseClock(input.StartTime)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid start time")
	}
	if input.DurationHours <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "duration must be positive")
	}
	end := start.AddHours(input.DurationHours)

	field, err := s.fields.FindByID(ctx, input.FieldID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "field not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup field")
	}
	if !field.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "field is not accepting bookings")
	}
	complex, err := s.complexes.FindByID(ctx, field.ComplexID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup complex")
	}
	if err := s.checkWithinOperatingHours(complex, start, end); err != nil {
		return nil, err
	}

	if err := s.checkNoOverlap(ctx, field.ID, date, start, end); err != nil {
		return nil, err
	}

	total, err := s.pricing.Quote(ctx, field.ID, date.Weekday(), start, input.DurationHours)
	if err != nil {
		return nil, err
	}

	reservation := &models.Reservation{
		FieldID:    field.ID,
		UserID:     userID,
		Date:       date,
		StartTime:  start.String(),
		EndTime:    end.String(),
		TotalPrice: total,
		Status:     enums.ReservationPendingPayment,
		Notes:      input.Notes,
	}
	if err := s.repo.Create(ctx, reservation); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create reservation")
	}
	return FromModel(reservation), nil
}

func (s *service) GetByID(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*ReservationDTO, error) {
	reservation, err := s.findReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation.UserID != actorID {
		if err := s.requireComplexOwner(ctx, actorID, reservation.FieldID); err != nil {
			return nil, err
		}
	}
	return FromModel(reservation), nil
}

func (s *service) ListOwn(ctx context.Context, userID uuid.UUID) ([]ReservationDTO, error) {
	rows, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list reservations")
	}
	out := make([]ReservationDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

// Cancel is allowed for the booker or the complex owner.
func (s *service) Cancel(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*ReservationDTO, error) {
	reservation, err := s.findReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation.UserID != actorID {
		if err := s.requireComplexOwner(ctx, actorID, reservation.FieldID); err != nil {
			return nil, err
		}
	}
	return s.transition(ctx, reservation, enums.ReservationCanceled)
}

// Confirm moves a pending booking to confirmed, optionally recording the
// payment that settled it. Only the complex owner may confirm.
func (s *service) Confirm(ctx context.Context, actorID uuid.UUID, id uuid.UUID, payment *RecordPaymentInput) (*ReservationDTO, error) {
	reservation, err := s.findReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireComplexOwner(ctx, actorID, reservation.FieldID); err != nil {
		return nil, err
	}

	dto, err := s.transition(ctx, reservation, enums.ReservationConfirmed)
	if err != nil {
		return nil, err
	}

	if payment != nil {
		if !payment.Method.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
		}
		record := &models.Payment{
			ReservationID: reservation.ID,
			Amount:        reservation.TotalPrice,
			Method:        payment.Method,
			Status:        enums.PaymentApproved,
			ExternalRef:   payment.ExternalRef,
		}
		if err := s.repo.CreatePayment(ctx, record); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record payment")
		}
	}
	return dto, nil
}

// Complete marks a confirmed booking as played. Only the complex owner.
func (s *service) Complete(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*ReservationDTO, error) {
	reservation, err := s.findReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireComplexOwner(ctx, actorID, reservation.FieldID); err != nil {
		return nil, err
	}
	return s.transition(ctx, reservation, enums.ReservationCompleted)
}

func (s *service) transition(ctx context.Context, reservation *models.Reservation, target enums.ReservationStatus) (*ReservationDTO, error) {
	if !reservation.Status.CanTransitionTo(target) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move reservation from %s to %s", reservation.Status, target))
	}
	if err := s.repo.UpdateStatus(ctx, reservation.ID, target); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update status")
	}
	reservation.Status = target
	return FromModel(reservation), nil
}

func (s *service) checkWithinOperatingHours(complex *models.Complex, start, end types.Clock) error {
	opening, err := types.ParseClock(complex.OpeningTime)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "parse opening time")
	}
	closing, err := types.ParseClock(complex.ClosingTime)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "parse closing time")
	}
	if start.Before(opening) || closing.Before(end) {
		return pkgerrors.New(pkgerrors.CodeValidation, "requested window is outside operating hours")
	}
	return nil
}

func (s *service) checkNoOverlap(ctx context.Context, fieldID uuid.UUID, date time.Time, start, end types.Clock) error {
	existing, err := s.repo.FindBlockingForFieldDate(ctx, fieldID, date)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load existing reservations")
	}
	for _, other := range existing {
		otherStart, err := types.ParseClock(other.StartTime)
		if err != nil {
			continue
		}
		otherEnd, err := types.ParseClock(other.EndTime)
		if err != nil {
			continue
		}
		if types.RangesOverlap(start, end, otherStart, otherEnd) {
			return pkgerrors.New(pkgerrors.CodeConflict, "field is already booked for that window")
		}
	}
	return nil
}

func (s *service) findReservation(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "reservation not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup reservation")
	}
	return reservation, nil
}

func (s *service) requireComplexOwner(ctx context.Context, actorID, fieldID uuid.UUID) error {
	field, err := s.fields.FindByID(ctx, fieldID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup field")
	}
	complex, err := s.complexes.FindByID(ctx, field.ComplexID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup complex")
	}
	if complex.OwnerID != actorID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "reservation belongs to another complex")
	}
	return nil
}
