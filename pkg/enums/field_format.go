package enums

import "fmt"

// FieldFormat is the football format a field is built for (players per side).
type FieldFormat int

const (
	FieldFormat5  FieldFormat = 5
	FieldFormat7  FieldFormat = 7
	FieldFormat8  FieldFormat = 8
	FieldFormat11 FieldFormat = 11
)

var validFieldFormats = []FieldFormat{
	FieldFormat5,
	FieldFormat7,
	FieldFormat8,
	FieldFormat11,
}

// IsValid reports whether the value is a supported format.
func (f FieldFormat) IsValid() bool {
	for _, candidate := range validFieldFormats {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFieldFormat converts raw input into a FieldFormat.
func ParseFieldFormat(value int) (FieldFormat, error) {
	f := FieldFormat(value)
	if !f.IsValid() {
		return 0, fmt.Errorf("invalid field format %d", value)
	}
	return f, nil
}
