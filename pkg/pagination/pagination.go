package pagination

// Page-number pagination shared by list endpoints. Search results are
// paginated in memory after availability filtering, so the helpers work on
// totals rather than cursors.

const (
	// DefaultPageSize is the standard page size when none is provided.
	DefaultPageSize = 12
	// MaxPageSize caps how many rows any list endpoint can return per page.
	MaxPageSize = 50
)

// Params holds pagination inputs from controllers or services.
type Params struct {
	Page     int
	PageSize int
}

// Meta describes the page returned alongside the items.
type Meta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// Normalize clamps page and page size to their allowed ranges.
func (p Params) Normalize() Params {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Offset returns the row offset for the normalized params.
func (p Params) Offset() int {
	p = p.Normalize()
	return (p.Page - 1) * p.PageSize
}

// MetaFor builds page metadata for a total row count.
func MetaFor(params Params, total int) Meta {
	params = params.Normalize()
	if total < 0 {
		total = 0
	}
	totalPages := 0
	if total > 0 {
		totalPages = (total + params.PageSize - 1) / params.PageSize
	}
	return Meta{
		Page:       params.Page,
		PageSize:   params.PageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Slice returns the bounds [lo, hi) of the requested page within a slice of
// length total. Pages past the end yield an empty range.
func Slice(params Params, total int) (int, int) {
	params = params.Normalize()
	lo := params.Offset()
	if lo >= total {
		return 0, 0
	}
	hi := lo + params.PageSize
	if hi > total {
		hi = total
	}
	return lo, hi
}
