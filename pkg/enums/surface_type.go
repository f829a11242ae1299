package enums

import "fmt"

// SurfaceType describes the playing surface of a field.
type SurfaceType string

const (
	SurfaceSynthetic SurfaceType = "synthetic"
	SurfaceNatural   SurfaceType = "natural"
	SurfaceConcrete  SurfaceType = "concrete"
)

var validSurfaceTypes = []SurfaceType{
	SurfaceSynthetic,
	SurfaceNatural,
	SurfaceConcrete,
}

// String implements fmt.Stringer.
func (s SurfaceType) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SurfaceType.
func (s SurfaceType) IsValid() bool {
	for _, candidate := range validSurfaceTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSurfaceType converts raw input into a SurfaceType.
func ParseSurfaceType(value string) (SurfaceType, error) {
	for _, candidate := range validSurfaceTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid surface type %q", value)
}
