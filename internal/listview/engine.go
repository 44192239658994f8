// Package listview implements the filterable list controller shared by the
// applications, rooms, complaints and maintenance request views.
//
// An Engine owns its source collection and filter state. It is not safe for
// concurrent use; callers that refresh in the background wrap it (see the
// controller package).
package listview

import (
	"time"

	"github.com/hostelhub/hostelctl/internal/filter"
	"github.com/hostelhub/hostelctl/internal/record"
)

type Option func(*Engine)

// WithSearchFields sets the fields the free-text search looks into.
func WithSearchFields(fields ...string) Option {
	return func(e *Engine) {
		e.searchFields = append([]string(nil), fields...)
	}
}

// WithStatuses restricts SetStatus to the given values; anything else clamps to all.
func WithStatuses(statuses ...string) Option {
	return func(e *Engine) {
		e.statuses = append([]string(nil), statuses...)
	}
}

// WithFacetField names the secondary equality filter (room_type, priority, ...).
func WithFacetField(field string) Option {
	return func(e *Engine) {
		e.facetField = field
	}
}

// WithPriceField names the numeric field used by View when a price order is selected.
func WithPriceField(field string) Option {
	return func(e *Engine) {
		e.priceField = field
	}
}

// WithClock replaces time.Now for date range evaluation.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithState sets the initial filter state.
func WithState(s filter.State) Option {
	return func(e *Engine) {
		e.initial = &s
	}
}

type Engine struct {
	searchFields []string
	statuses     []string
	facetField   string
	priceField   string
	now          func() time.Time
	initial      *filter.State

	source []record.Record
	state  filter.State

	view  []record.Record
	dirty bool
}

func New(opts ...Option) *Engine {
	e := &Engine{
		now:   time.Now,
		state: filter.DefaultState(),
		dirty: true,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.initial != nil {
		e.SetState(*e.initial)
		e.initial = nil
	}

	return e
}

// SetSource replaces the backing collection. The caller's slice is copied.
func (e *Engine) SetSource(records []record.Record) {
	e.source = append([]record.Record(nil), records...)
	e.dirty = true
}

// Source returns a copy of the backing collection.
func (e *Engine) Source() []record.Record {
	return append([]record.Record(nil), e.source...)
}

func (e *Engine) State() filter.State {
	return e.state
}

// SetState replaces every filter selection at once.
func (e *Engine) SetState(s filter.State) {
	e.SetStatus(string(s.Status))
	e.SetDateRange(string(s.DateRange))
	e.SetSearchTerm(s.SearchTerm)
	e.SetFacet(s.Facet)
	e.SetPriceOrder(string(s.Order))
}

func (e *Engine) SetStatus(value string) {
	e.state.Status = filter.ClampStatus(value, e.statuses)
	e.dirty = true
}

func (e *Engine) SetDateRange(value string) {
	e.state.DateRange = filter.ParseDateRange(value)
	e.dirty = true
}

func (e *Engine) SetSearchTerm(value string) {
	e.state.SearchTerm = value
	e.dirty = true
}

func (e *Engine) SetFacet(value string) {
	e.state.Facet = string(filter.ParseStatus(value))
	e.dirty = true
}

// SetPriceOrder only affects View, never FilteredView.
func (e *Engine) SetPriceOrder(value string) {
	e.state.Order = filter.ParsePriceOrder(value)
}

// Reset restores the default filter state.
func (e *Engine) Reset() {
	e.state = filter.DefaultState()
	e.dirty = true
}

// FilteredView returns the source records matching the current state, in source order.
// The returned slice is a fresh copy; the records themselves are shared with the source.
func (e *Engine) FilteredView() []record.Record {
	// date windows move with the clock, so they are never served from cache
	if e.dirty || e.state.DateRange != filter.DateRangeAll {
		e.recompute()
	}

	return append([]record.Record{}, e.view...)
}

// View is FilteredView followed by the price ordering of the current state.
func (e *Engine) View() []record.Record {
	return ApplySort(e.FilteredView(), e.priceField, e.state.Order)
}

// Len returns the size of the source collection.
func (e *Engine) Len() int {
	return len(e.source)
}

func (e *Engine) recompute() {
	now := e.now()
	view := make([]record.Record, 0, len(e.source))

	for _, r := range e.source {
		if filter.Match(r, e.state, e.searchFields, e.facetField, now) {
			view = append(view, r)
		}
	}

	e.view = view
	e.dirty = false
}
