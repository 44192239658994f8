package filter

import (
	"strings"
	"time"

	"github.com/hostelhub/hostelctl/internal/record"
	"github.com/hostelhub/hostelctl/internal/util"
)

// MatchesStatus reports whether the record's status equals status, ignoring case.
func MatchesStatus(r record.Record, status Status) bool {
	return matchesValue(r, record.FieldStatus, string(status))
}

// MatchesFacet applies the status rule to an arbitrary field such as room_type or priority.
// An empty field name disables the filter.
func MatchesFacet(r record.Record, field, value string) bool {
	if field == "" {
		return true
	}

	return matchesValue(r, field, value)
}

// MatchesDateRange reports whether createdAt falls inside rng relative to now.
// A zero createdAt only matches DateRangeAll.
func MatchesDateRange(createdAt time.Time, rng DateRange, now time.Time) bool {
	switch rng {
	case DateRangeToday:
		return !createdAt.IsZero() && util.SameDay(createdAt, now)
	case DateRangeWeek, DateRangeMonth:
		return !createdAt.IsZero() && util.WithinDays(createdAt, now, rng.Days())
	default:
		return true
	}
}

// MatchesSearch reports whether term is a case-insensitive substring of any of fields.
// Missing or non-scalar fields never match; an empty term always does.
func MatchesSearch(r record.Record, term string, fields []string) bool {
	if term == "" {
		return true
	}

	needle := fold(term)
	for _, field := range fields {
		value, ok := r.String(field)
		if !ok {
			continue
		}
		if strings.Contains(fold(value), needle) {
			return true
		}
	}

	return false
}

// Match applies every predicate of s to r.
func Match(r record.Record, s State, searchFields []string, facetField string, now time.Time) bool {
	return MatchesStatus(r, s.Status) &&
		MatchesFacet(r, facetField, s.Facet) &&
		MatchesDateRange(r.CreatedAt(), s.DateRange, now) &&
		MatchesSearch(r, s.SearchTerm, searchFields)
}

func matchesValue(r record.Record, field, want string) bool {
	if want == "" || fold(want) == string(StatusAll) {
		return true
	}

	value, ok := r.String(field)
	if !ok {
		return false
	}

	return fold(value) == fold(want)
}
