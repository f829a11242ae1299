package enums

import "fmt"

// SearchSortKey selects the attribute search results are ordered by.
type SearchSortKey string

const (
	SortByName   SearchSortKey = "name"
	SortByPrice  SearchSortKey = "price"
	SortByRating SearchSortKey = "rating"
)

// IsValid reports whether the value is a supported sort key.
func (k SearchSortKey) IsValid() bool {
	return k == SortByName || k == SortByPrice || k == SortByRating
}

// ParseSearchSortKey converts raw input into a SearchSortKey.
func ParseSearchSortKey(value string) (SearchSortKey, error) {
	switch SearchSortKey(value) {
	case SortByName:
		return SortByName, nil
	case SortByPrice:
		return SortByPrice, nil
	case SortByRating:
		return SortByRating, nil
	}
	return "", fmt.Errorf("invalid sort key %q", value)
}

// SortDirection is the ordering direction for search results.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// IsValid reports whether the value is a supported direction.
func (d SortDirection) IsValid() bool {
	return d == SortAsc || d == SortDesc
}

// ParseSortDirection converts raw input into a SortDirection.
func ParseSortDirection(value string) (SortDirection, error) {
	switch SortDirection(value) {
	case SortAsc:
		return SortAsc, nil
	case SortDesc:
		return SortDesc, nil
	}
	return "", fmt.Errorf("invalid sort direction %q", value)
}
