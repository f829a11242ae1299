package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Clock is a wall-clock time of day in minutes, parsed from "HH:MM".
// Adding a duration does not wrap past midnight: "22:30" plus 1.5 hours
// formats as "24:00". Callers treat windows as same-day only.
type Clock struct {
	minutes int
}

// ParseClock converts an "HH:MM" string into a Clock. "24:00" is accepted so
// stored end times at the day boundary round-trip.
func ParseClock(value string) (Clock, error) {
	parts := strings.SplitN(strings.TrimSpace(value), ":", 2)
	if len(parts) != 2 {
		return Clock{}, fmt.Errorf("invalid clock value %q", value)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 24 {
		return Clock{}, fmt.Errorf("invalid clock hour in %q", value)
	}
	mins, err := strconv.Atoi(parts[1])
	if err != nil || mins < 0 || mins > 59 || (hours == 24 && mins != 0) {
		return Clock{}, fmt.Errorf("invalid clock minute in %q", value)
	}
	return Clock{minutes: hours*60 + mins}, nil
}

// ClockFromMinutes builds a Clock from minutes since midnight.
func ClockFromMinutes(minutes int) Clock {
	return Clock{minutes: minutes}
}

// AddHours returns the clock advanced by the given duration in hours.
func (c Clock) AddHours(hours float64) Clock {
	return Clock{minutes: c.minutes + int(math.Round(hours*60))}
}

// Minutes returns the minutes since midnight.
func (c Clock) Minutes() int {
	return c.minutes
}

// Before reports whether c is strictly earlier than other.
func (c Clock) Before(other Clock) bool {
	return c.minutes < other.minutes
}

// After reports whether c is strictly later than other.
func (c Clock) After(other Clock) bool {
	return c.minutes > other.minutes
}

// String formats the clock as "HH:MM". Hours are not reduced modulo 24.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.minutes/60, c.minutes%60)
}

// RangesOverlap reports whether the half-open ranges [aStart, aEnd) and
// [bStart, bEnd) share any instant.
func RangesOverlap(aStart, aEnd, bStart, bEnd Clock) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
