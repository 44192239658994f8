package util

import "time"

const Day = 24 * time.Hour

// SameDay reports whether t falls on the same calendar day as ref,
// evaluated in ref's location.
func SameDay(t, ref time.Time) bool {
	t = t.In(ref.Location())

	return t.Year() == ref.Year() && t.Month() == ref.Month() && t.Day() == ref.Day()
}

// DaysApart returns the absolute distance between a and b in days, rounded up.
// Both times are compared at millisecond precision; one millisecond past a
// whole day counts as an extra day. Distances beyond the range of
// time.Duration saturate to the maximum instead of wrapping.
func DaysApart(a, b time.Time) int64 {
	a, b = a.Truncate(time.Millisecond), b.Truncate(time.Millisecond)

	var diff time.Duration
	if a.After(b) {
		diff = a.Sub(b)
	} else {
		diff = b.Sub(a)
	}

	days := int64(diff / Day)
	if diff%Day != 0 {
		days++
	}

	return days
}

// WithinDays reports whether a and b are at most days apart using DaysApart.
func WithinDays(a, b time.Time, days int64) bool {
	return DaysApart(a, b) <= days
}
