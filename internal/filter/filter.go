package filter

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Status is the status selection of a list view. StatusAll disables the filter.
type Status string

const StatusAll Status = "all"

// DateRange is the creation-date window of a list view.
type DateRange string

const (
	DateRangeAll   DateRange = "all"
	DateRangeToday DateRange = "today"
	DateRangeWeek  DateRange = "week"
	DateRangeMonth DateRange = "month"
)

// DateRanges lists every range in display order.
var DateRanges = []DateRange{DateRangeAll, DateRangeToday, DateRangeWeek, DateRangeMonth}

// Days returns the window size of rolling ranges; 0 for all and today.
func (d DateRange) Days() int64 {
	switch d {
	case DateRangeWeek:
		return 7
	case DateRangeMonth:
		return 30
	default:
		return 0
	}
}

// PriceOrder is the optional numeric ordering applied after filtering.
type PriceOrder string

const (
	PriceOrderNone PriceOrder = "all"
	PriceLowToHigh PriceOrder = "low"
	PriceHighToLow PriceOrder = "high"
)

// PriceOrders lists every order in display order.
var PriceOrders = []PriceOrder{PriceOrderNone, PriceLowToHigh, PriceHighToLow}

// State holds the current selections of one list view.
type State struct {
	Status     Status     `json:"status"`
	DateRange  DateRange  `json:"date_range"`
	SearchTerm string     `json:"search"`
	Facet      string     `json:"facet,omitempty"`
	Order      PriceOrder `json:"sort,omitempty"`
}

// DefaultState returns the state every view starts with.
func DefaultState() State {
	return State{
		Status:    StatusAll,
		DateRange: DateRangeAll,
		Facet:     string(StatusAll),
		Order:     PriceOrderNone,
	}
}

// Normalize clamps every field to a recognised value.
func (s State) Normalize() State {
	return State{
		Status:     ParseStatus(string(s.Status)),
		DateRange:  ParseDateRange(string(s.DateRange)),
		SearchTerm: s.SearchTerm,
		Facet:      string(ParseStatus(s.Facet)),
		Order:      ParsePriceOrder(string(s.Order)),
	}
}

// ParseStatus never fails: blank input means StatusAll.
func ParseStatus(s string) Status {
	s = strings.TrimSpace(s)
	if s == "" || fold(s) == string(StatusAll) {
		return StatusAll
	}

	return Status(s)
}

// ClampStatus resolves s against the known values of a list. Unknown values
// become StatusAll. When known is empty every non-blank value is accepted.
func ClampStatus(s string, known []string) Status {
	status := ParseStatus(s)
	if status == StatusAll || len(known) == 0 {
		return status
	}

	for _, k := range known {
		if fold(k) == fold(string(status)) {
			return Status(k)
		}
	}

	return StatusAll
}

// ParseDateRange never fails: unrecognised input means DateRangeAll.
func ParseDateRange(s string) DateRange {
	switch DateRange(fold(strings.TrimSpace(s))) {
	case DateRangeToday:
		return DateRangeToday
	case DateRangeWeek:
		return DateRangeWeek
	case DateRangeMonth:
		return DateRangeMonth
	default:
		return DateRangeAll
	}
}

// ParsePriceOrder never fails: unrecognised input means PriceOrderNone.
func ParsePriceOrder(s string) PriceOrder {
	switch PriceOrder(fold(strings.TrimSpace(s))) {
	case PriceLowToHigh:
		return PriceLowToHigh
	case PriceHighToLow:
		return PriceHighToLow
	default:
		return PriceOrderNone
	}
}

// fold lower-cases s. A Caser is stateful so one is built per call.
func fold(s string) string {
	return cases.Lower(language.Und).String(s)
}
