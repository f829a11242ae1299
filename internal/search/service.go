package search

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/canchapp/canchapp-backend/internal/complexes"
	"github.com/canchapp/canchapp-backend/pkg/db/models"
	"github.com/canchapp/canchapp-backend/pkg/enums"
	pkgerrors "github.com/canchapp/canchapp-backend/pkg/errors"
	"github.com/canchapp/canchapp-backend/pkg/pagination"
	"github.com/canchapp/canchapp-backend/pkg/types"
)

const dateLayout = "2006-01-02"

type searchRepository interface {
	SearchComplexes(ctx context.Context, nameQuery string) ([]models.Complex, error)
	FindComplex(ctx context.Context, id uuid.UUID) (*models.Complex, error)
}

type occupancyRepository interface {
	BlockedFieldIDs(ctx context.Context, date time.Time, start, end string) ([]uuid.UUID, error)
	FindBlockingForFieldsDate(ctx context.Context, fieldIDs []uuid.UUID, date time.Time) ([]models.Reservation, error)
}

type ratingRepository interface {
	ReviewAggregates(ctx context.Context, complexIDs []uuid.UUID) (map[uuid.UUID]complexes.ReviewAggregate, error)
}

// Service is the public availability-search surface.
type Service interface {
	Search(ctx context.Context, filter Filter) (*Result, error)
	TimeSlots(ctx context.Context, complexID uuid.UUID, date string, durationHours float64) ([]TimeSlot, error)
}

type service struct {
	repo         searchRepository
	reservations occupancyRepository
	ratings      ratingRepository
}

// ServiceParams wires the search service dependencies.
type ServiceParams struct {
	Repo         searchRepository
	Reservations occupancyRepository
	Ratings      ratingRepository
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("search repository required")
	}
	if params.Reservations == nil {
		return nil, fmt.Errorf("reservation repository required")
	}
	if params.Ratings == nil {
		return nil, fmt.Errorf("rating repository required")
	}
	return &service{
		repo:         params.Repo,
		reservations: params.Reservations,
		ratings:      params.Ratings,
	}, nil
}

type searchWindow struct {
	date  time.Time
	start types.Clock
	end   types.Clock
}

// window validates and resolves the availability inputs. Date, start time and
// duration activate together; providing only some of them is an error. The
// end time is start + duration on the same day, late windows are not wrapped
// past midnight.
func (f Filter) window() (*searchWindow, error) {
	if !f.hasWindowInput() {
		return nil, nil
	}
	if !f.hasFullWindow() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "date, start time and duration must be provided together")
	}
	date, err := time.Parse(dateLayout, f.Date)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "date must be YYYY-MM-DD")
	}
	start, err := types.ParseClock(f.StartTime)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "start time must be HH:MM")
	}
	if f.DurationHours <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "duration must be positive")
	}
	return &searchWindow{date: date, start: start, end: start.AddHours(f.DurationHours)}, nil
}

func (s *service) Search(ctx context.Context, filter Filter) (*Result, error) {
	filter.Page = filter.Page.Normalize()
	window, err := filter.window()
	if err != nil {
		return nil, err
	}
	if filter.SortBy != "" && !filter.SortBy.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sort must be name or price")
	}
	if filter.SortDirection != "" && !filter.SortDirection.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sort direction must be asc or desc")
	}

	occupied := map[uuid.UUID]bool{}
	if window != nil {
		ids, err := s.reservations.BlockedFieldIDs(ctx, window.date, window.start.String(), window.end.String())
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search failed")
		}
		for _, id := range ids {
			occupied[id] = true
		}
	}

	rows, err := s.repo.SearchComplexes(ctx, filter.NameQuery)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search failed")
	}

	complexIDs := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		complexIDs = append(complexIDs, row.ID)
	}
	ratings, err := s.ratings.ReviewAggregates(ctx, complexIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search failed")
	}

	items := make([]ComplexResult, 0, len(rows))
	for i := range rows {
		item, ok := buildResult(&rows[i], filter, window != nil, occupied, ratings)
		if ok {
			items = append(items, item)
		}
	}

	sortResults(items, filter.SortBy, filter.SortDirection)

	total := len(items)
	lo, hi := pagination.Slice(filter.Page, total)
	return &Result{
		Items: items[lo:hi],
		Meta:  pagination.MetaFor(filter.Page, total),
	}, nil
}

// buildResult applies the field facets and availability flags to one complex.
// It reports false when the complex should drop out of the page: no field
// survives the facets, a requested amenity is missing, or a window was asked
// for and every field is taken.
func buildResult(row *models.Complex, filter Filter, windowed bool, occupied map[uuid.UUID]bool, ratings map[uuid.UUID]complexes.ReviewAggregate) (ComplexResult, bool) {
	if !hasAmenities(row, filter.Amenities) {
		return ComplexResult{}, false
	}

	fields := make([]FieldResult, 0, len(row.Fields))
	anyAvailable := false
	for _, field := range row.Fields {
		if !matchesFacets(&field, filter) {
			continue
		}
		available := !windowed || !occupied[field.ID]
		if available {
			anyAvailable = true
		}
		fields = append(fields, FieldResult{
			ID:        field.ID,
			Name:      field.Name,
			Format:    field.Format,
			Surface:   field.Surface,
			Covered:   field.Covered,
			Lighting:  field.Lighting,
			Price:     field.BasePrice,
			Available: available,
		})
	}
	if len(fields) == 0 {
		return ComplexResult{}, false
	}
	if windowed && !anyAvailable {
		return ComplexResult{}, false
	}

	priceFrom := fields[0].Price
	priceTo := fields[0].Price
	for _, field := range fields[1:] {
		if field.Price.LessThan(priceFrom) {
			priceFrom = field.Price
		}
		if field.Price.GreaterThan(priceTo) {
			priceTo = field.Price
		}
	}
	item := ComplexResult{
		ID:          row.ID,
		Name:        row.Name,
		Address:     row.Address,
		City:        row.City,
		PhotoURL:    row.PhotoURL,
		OpeningTime: row.OpeningTime,
		ClosingTime: row.ClosingTime,
		Amenities:   amenityNames(row),
		PriceFrom:   priceFrom,
		Fields:      fields,
	}
	if !priceTo.Equal(priceFrom) {
		item.PriceTo = &priceTo
	}
	if agg, ok := ratings[row.ID]; ok {
		average := agg.Average
		item.AverageRating = &average
		item.ReviewCount = agg.Count
	}
	return item, true
}

func matchesFacets(field *models.Field, filter Filter) bool {
	if len(filter.Formats) > 0 && !containsFormat(filter.Formats, field.Format) {
		return false
	}
	if len(filter.Surfaces) > 0 && !containsSurface(filter.Surfaces, field.Surface) {
		return false
	}
	if filter.Covered != nil && field.Covered != *filter.Covered {
		return false
	}
	if filter.PriceMin != nil && field.BasePrice.LessThan(*filter.PriceMin) {
		return false
	}
	if filter.PriceMax != nil && field.BasePrice.GreaterThan(*filter.PriceMax) {
		return false
	}
	return true
}

func hasAmenities(row *models.Complex, wanted []string) bool {
	if len(wanted) == 0 {
		return true
	}
	have := make(map[string]bool, len(row.Amenities))
	for _, amenity := range row.Amenities {
		have[amenity.Name] = true
	}
	for _, name := range wanted {
		if !have[name] {
			return false
		}
	}
	return true
}

func amenityNames(row *models.Complex) []string {
	names := make([]string, 0, len(row.Amenities))
	for _, amenity := range row.Amenities {
		names = append(names, amenity.Name)
	}
	return names
}

func containsFormat(set []enums.FieldFormat, value enums.FieldFormat) bool {
	for _, entry := range set {
		if entry == value {
			return true
		}
	}
	return false
}

func containsSurface(set []enums.SurfaceType, value enums.SurfaceType) bool {
	for _, entry := range set {
		if entry == value {
			return true
		}
	}
	return false
}

func sortResults(items []ComplexResult, key enums.SearchSortKey, direction enums.SortDirection) {
	desc := direction == enums.SortDesc
	sort.SliceStable(items, func(i, j int) bool {
		var less bool
		switch key {
		case enums.SortByPrice:
			cmp := items[i].PriceFrom.Cmp(items[j].PriceFrom)
			if cmp == 0 {
				less = items[i].Name < items[j].Name
			} else {
				less = cmp < 0
			}
		case enums.SortByRating:
			ri, rj := ratingOrZero(items[i]), ratingOrZero(items[j])
			if ri == rj {
				less = items[i].Name < items[j].Name
			} else {
				less = ri < rj
			}
		default:
			less = items[i].Name < items[j].Name
		}
		if desc {
			return !less
		}
		return less
	})
}

// ratingOrZero ranks unrated complexes below every rated one.
func ratingOrZero(item ComplexResult) float64 {
	if item.AverageRating == nil {
		return 0
	}
	return *item.AverageRating
}

// TimeSlots lists every 30-minute start inside the complex's operating hours
// where a booking of the given duration still ends by closing time, flagging
// whether any active field is free for the whole window.
func (s *service) TimeSlots(ctx context.Context, complexID uuid.UUID, date string, durationHours float64) ([]TimeSlot, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "date must be YYYY-MM-DD")
	}
	if durationHours <= 0 {
		durationHours = 1
	}

	complex, err := s.repo.FindComplex(ctx, complexID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "complex not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup complex")
	}
	opening, err := types.ParseClock(complex.OpeningTime)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "parse opening time")
	}
	closing, err := types.ParseClock(complex.ClosingTime)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "parse closing time")
	}

	fieldIDs := make([]uuid.UUID, 0, len(complex.Fields))
	for _, field := range complex.Fields {
		fieldIDs = append(fieldIDs, field.ID)
	}
	blocking, err := s.reservations.FindBlockingForFieldsDate(ctx, fieldIDs, day)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup reservations")
	}
	byField := make(map[uuid.UUID][]models.Reservation, len(fieldIDs))
	for _, reservation := range blocking {
		byField[reservation.FieldID] = append(byField[reservation.FieldID], reservation)
	}

	var slots []TimeSlot
	for start := opening; ; start = types.ClockFromMinutes(start.Minutes() + 30) {
		end := start.AddHours(durationHours)
		if end.After(closing) {
			break
		}
		slots = append(slots, TimeSlot{
			StartTime: start.String(),
			EndTime:   end.String(),
			Available: anyFieldFree(fieldIDs, byField, start, end),
		})
	}
	return slots, nil
}

func anyFieldFree(fieldIDs []uuid.UUID, byField map[uuid.UUID][]models.Reservation, start, end types.Clock) bool {
	for _, fieldID := range fieldIDs {
		free := true
		for _, reservation := range byField[fieldID] {
			rStart, err := types.ParseClock(reservation.StartTime)
			if err != nil {
				continue
			}
			rEnd, err := types.ParseClock(reservation.EndTime)
			if err != nil {
				continue
			}
			if types.RangesOverlap(start, end, rStart, rEnd) {
				free = false
				break
			}
		}
		if free {
			return true
		}
	}
	return false
}
