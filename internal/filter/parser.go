package filter

import (
	"fmt"
	"net/url"
	"strings"
)

// Query parameter names understood by ParseQuery.
const (
	ParamStatus = "status"
	ParamRange  = "range"
	ParamSearch = "search"
	ParamFacet  = "facet"
	ParamSort   = "sort"
)

// ParseQuery reads a State from URL query parameters. Unknown or malformed
// values fall back to their permissive defaults.
func ParseQuery(params url.Values) State {
	return Overlay(DefaultState(), params)
}

// Overlay returns base with every parameter present in params applied on top.
func Overlay(base State, params url.Values) State {
	state := base

	if status := params.Get(ParamStatus); status != "" {
		state.Status = ParseStatus(status)
	}

	if rng := params.Get(ParamRange); rng != "" {
		state.DateRange = ParseDateRange(rng)
	}

	// search is kept verbatim, surrounding spaces included
	if params.Has(ParamSearch) {
		state.SearchTerm = params.Get(ParamSearch)
	}

	if facet := params.Get(ParamFacet); facet != "" {
		state.Facet = string(ParseStatus(facet))
	}

	if order := params.Get(ParamSort); order != "" {
		state.Order = ParsePriceOrder(order)
	}

	return state
}

// Values encodes s as query parameters, omitting defaults.
func (s State) Values() url.Values {
	params := url.Values{}
	s = s.Normalize()

	if s.Status != StatusAll {
		params.Set(ParamStatus, string(s.Status))
	}
	if s.DateRange != DateRangeAll {
		params.Set(ParamRange, string(s.DateRange))
	}
	if s.SearchTerm != "" {
		params.Set(ParamSearch, s.SearchTerm)
	}
	if s.Facet != string(StatusAll) {
		params.Set(ParamFacet, s.Facet)
	}
	if s.Order != PriceOrderNone {
		params.Set(ParamSort, string(s.Order))
	}

	return params
}

// String returns a compact human readable summary (e.g. "status=pending range=week").
func (s State) String() string {
	s = s.Normalize()

	parts := []string{
		fmt.Sprintf("status=%s", s.Status),
		fmt.Sprintf("range=%s", s.DateRange),
	}
	if s.SearchTerm != "" {
		parts = append(parts, fmt.Sprintf("search=%q", s.SearchTerm))
	}
	if s.Facet != string(StatusAll) {
		parts = append(parts, fmt.Sprintf("facet=%s", s.Facet))
	}
	if s.Order != PriceOrderNone {
		parts = append(parts, fmt.Sprintf("sort=%s", s.Order))
	}

	return strings.Join(parts, " ")
}
