package period

import (
	"errors"
	"fmt"
	"time"
)

// Type is the aggregation granularity of a summary run.
type Type string

const (
	Daily   Type = "daily"
	Weekly  Type = "weekly"
	Monthly Type = "monthly"
	Yearly  Type = "yearly"
)

// ErrInvalidType is wrapped by Resolve for any token outside the supported set.
var ErrInvalidType = errors.New("invalid period type")

// Spec pairs a granularity with its trailing lookback window.
// Each Type maps to exactly one Spec; the mapping is fixed.
type Spec struct {
	Type       Type
	WindowDays int
}

// windows is the registry of supported period types.
// The lookback spans intentionally overlap across scheduled runs
// (e.g. a 7-day window invoked daily re-scans six prior days).
var windows = map[Type]int{
	Daily:   7,
	Weekly:  30,
	Monthly: 90,
	Yearly:  730,
}

// Resolve parses a period-type token into a Spec.
// Matching is exact: case variants and unknown tokens fail with
// ErrInvalidType rather than falling back to a default.
func Resolve(token string) (Spec, error) {
	days, ok := windows[Type(token)]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q (supported: daily, weekly, monthly, yearly)", ErrInvalidType, token)
	}
	return Spec{Type: Type(token), WindowDays: days}, nil
}

// Types returns all supported period types in granularity order.
func Types() []Type {
	return []Type{Daily, Weekly, Monthly, Yearly}
}

// Valid reports whether token names a supported period type.
func Valid(token string) bool {
	_, ok := windows[Type(token)]
	return ok
}

// WindowStart returns the inclusive lower bound of the trailing window
// relative to now. Records at exactly the boundary are inside the window.
func (s Spec) WindowStart(now time.Time) time.Time {
	return now.UTC().AddDate(0, 0, -s.WindowDays)
}

// Truncate floors a timestamp to its period start in UTC.
// Calendar boundaries can't be expressed as a fixed duration, so this
// does calendar arithmetic instead of time.Truncate:
//
//	daily   → midnight of the same day
//	weekly  → midnight of the ISO week start (Monday)
//	monthly → midnight of the first of the month
//	yearly  → midnight of January 1st
func (s Spec) Truncate(t time.Time) time.Time {
	t = t.UTC()
	switch s.Type {
	case Daily:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	case Weekly:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		// time.Weekday numbers Sunday as 0; shift so Monday is the floor.
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case Monthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	case Yearly:
		return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	}
	// Unreachable for Specs built via Resolve.
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
