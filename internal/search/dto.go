package search

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/canchapp/canchapp-backend/pkg/enums"
	"github.com/canchapp/canchapp-backend/pkg/pagination"
)

// Filter carries every search input. All fields are optional; availability
// filtering only activates when Date, StartTime and DurationHours are all set.
type Filter struct {
	NameQuery     string
	Date          string
	StartTime     string
	DurationHours float64
	Formats       []enums.FieldFormat
	Surfaces      []enums.SurfaceType
	Covered       *bool
	PriceMin      *decimal.Decimal
	PriceMax      *decimal.Decimal
	Amenities     []string
	SortBy        enums.SearchSortKey
	SortDirection enums.SortDirection
	Page          pagination.Params
}

func (f Filter) hasWindowInput() bool {
	return f.Date != "" || f.StartTime != "" || f.DurationHours != 0
}

func (f Filter) hasFullWindow() bool {
	return f.Date != "" && f.StartTime != "" && f.DurationHours != 0
}

// FieldResult is one bookable field inside a search hit.
type FieldResult struct {
	ID        uuid.UUID         `json:"id"`
	Name      string            `json:"name"`
	Format    enums.FieldFormat `json:"format"`
	Surface   enums.SurfaceType `json:"surface"`
	Covered   bool              `json:"covered"`
	Lighting  bool              `json:"lighting"`
	Price     decimal.Decimal   `json:"price"`
	Available bool              `json:"available"`
}

// ComplexResult is one complex in a search page. PriceTo is omitted when all
// matching fields share the same price.
type ComplexResult struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	Address       string           `json:"address"`
	City          string           `json:"city"`
	PhotoURL      *string          `json:"photo_url,omitempty"`
	OpeningTime   string           `json:"opening_time"`
	ClosingTime   string           `json:"closing_time"`
	Amenities     []string         `json:"amenities"`
	PriceFrom     decimal.Decimal  `json:"price_from"`
	PriceTo       *decimal.Decimal `json:"price_to,omitempty"`
	AverageRating *float64         `json:"average_rating,omitempty"`
	ReviewCount   int              `json:"review_count"`
	Fields        []FieldResult    `json:"fields"`
}

// Result is one page of search hits.
type Result struct {
	Items []ComplexResult `json:"items"`
	pagination.Meta
}

// TimeSlot is a bookable 30-minute-aligned start inside operating hours.
// Available means at least one active field is free for the whole window.
type TimeSlot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
}
