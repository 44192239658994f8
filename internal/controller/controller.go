// Package controller keeps one list view in sync with the backend: it loads
// the collection, applies confirmed mutations and answers view queries.
package controller

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/hostelhub/hostelctl/internal/filter"
	"github.com/hostelhub/hostelctl/internal/listview"
	"github.com/hostelhub/hostelctl/internal/logger"
	"github.com/hostelhub/hostelctl/internal/record"
	"github.com/hostelhub/hostelctl/internal/resource"
)

// Backend is the subset of the REST client the controller needs.
type Backend interface {
	List(ctx context.Context, kind resource.Kind) ([]record.Record, error)
	Create(ctx context.Context, kind resource.Kind, payload any) (record.Record, error)
	Update(ctx context.Context, kind resource.Kind, id string, payload any) (record.Record, error)
	UpdateStatus(ctx context.Context, kind resource.Kind, id, status string) (record.Record, error)
	Delete(ctx context.Context, kind resource.Kind, id string) error
}

type Controller struct {
	kind    resource.Kind
	backend Backend
	logger  *logger.Logger

	mu     sync.Mutex
	engine *listview.Engine
	// issued numbers every refresh and mutation. applied is the newest one
	// whose result reached the engine, refreshed the newest refresh among them.
	issued    uint64
	applied   uint64
	refreshed uint64
}

// maxRefreshAttempts bounds how often Refresh refetches when confirmed
// mutations keep overtaking its reply.
const maxRefreshAttempts = 3

// New builds a controller for kind. Extra options are applied after the
// defaults derived from the kind.
func New(kind resource.Kind, backend Backend, logger *logger.Logger, opts ...listview.Option) *Controller {
	defaults := []listview.Option{
		listview.WithSearchFields(kind.SearchFields...),
		listview.WithStatuses(kind.Statuses...),
		listview.WithFacetField(kind.FacetField),
		listview.WithPriceField(kind.PriceField),
	}

	return &Controller{
		kind:    kind,
		backend: backend,
		logger:  logger.Component("controller").With("kind", kind.Name),
		engine:  listview.New(append(defaults, opts...)...),
	}
}

func (c *Controller) Kind() resource.Kind {
	return c.kind
}

func (c *Controller) next() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issued++
	return c.issued
}

// Refresh reloads the collection. A reply that arrives after a newer refresh
// was applied is dropped, and so is its error. A reply overtaken only by
// confirmed mutations is refetched, since it may predate them.
func (c *Controller) Refresh(ctx context.Context) error {
	for attempt := 1; ; attempt++ {
		seq := c.next()

		records, err := c.backend.List(ctx, c.kind)

		stale, retry := c.apply(seq, records, err)
		if !stale {
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", c.kind.Name, err)
			}
			return nil
		}

		if !retry || attempt == maxRefreshAttempts || ctx.Err() != nil {
			return nil
		}
	}
}

// Load installs records fetched elsewhere as if a refresh had returned them.
func (c *Controller) Load(records []record.Record) {
	c.apply(c.next(), records, nil)
}

// apply installs a refresh reply unless something newer reached the engine.
// retry reports whether only mutations overtook the reply.
func (c *Controller) apply(seq uint64, records []record.Record, err error) (stale, retry bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq < c.applied {
		retry = c.refreshed < seq
		c.logger.Debug("Discarding stale refresh", "seq", seq, "applied", c.applied, "refetch", retry)
		return true, retry
	}

	if err != nil {
		return false, false
	}

	c.engine.SetSource(records)
	c.applied = seq
	c.refreshed = seq
	c.logger.Debug("Source refreshed", "seq", seq, "records", len(records))

	return false, false
}

// Create submits payload and prepends the created record once the backend
// confirms it.
func (c *Controller) Create(ctx context.Context, payload any) (record.Record, error) {
	created, err := c.backend.Create(ctx, c.kind, payload)
	if err != nil {
		return nil, err
	}

	seq := c.next()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.engine.ApplyCreate(created)
	c.applied = max(c.applied, seq)
	c.logger.Info("Record created", "id", created[record.FieldID])

	return created, nil
}

// Update submits payload for the record id. The local copy is patched with
// the record returned by the backend, or with the payload itself when the
// backend answers without a body.
func (c *Controller) Update(ctx context.Context, id string, payload any) (record.Record, error) {
	updated, err := c.backend.Update(ctx, c.kind, id, payload)
	if err != nil {
		return nil, err
	}

	patch := updated
	if patch == nil {
		patch, err = record.FromValue(payload)
		if err != nil {
			return nil, err
		}
	}

	return c.applyPatch(id, patch), nil
}

// UpdateStatus moves the record id to status and re-filters the view.
func (c *Controller) UpdateStatus(ctx context.Context, id, status string) (record.Record, error) {
	updated, err := c.backend.UpdateStatus(ctx, c.kind, id, status)
	if err != nil {
		return nil, err
	}

	patch := updated
	if patch == nil {
		patch = record.Record{record.FieldStatus: strings.ToLower(strings.TrimSpace(status))}
	}

	return c.applyPatch(id, patch), nil
}

func (c *Controller) applyPatch(id string, patch record.Record) record.Record {
	seq := c.next()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.applied = max(c.applied, seq)
	if !c.engine.ApplyUpdate(id, patch) {
		c.logger.Warn("Updated record is not in the local view", "id", id)
		return patch
	}

	current, _ := c.engine.Find(id)
	c.logger.Info("Record updated", "id", id)

	return current
}

// Delete removes the record id from the backend and then from the view.
func (c *Controller) Delete(ctx context.Context, id string) error {
	if err := c.backend.Delete(ctx, c.kind, id); err != nil {
		return err
	}

	seq := c.next()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.engine.ApplyDelete(id)
	c.applied = max(c.applied, seq)
	c.logger.Info("Record deleted", "id", id)

	return nil
}

func (c *Controller) State() filter.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.State()
}

func (c *Controller) SetState(s filter.State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engine.SetState(s)
}

func (c *Controller) SetStatus(value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engine.SetStatus(value)
}

func (c *Controller) SetDateRange(value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engine.SetDateRange(value)
}

func (c *Controller) SetSearchTerm(value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engine.SetSearchTerm(value)
}

func (c *Controller) SetFacet(value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engine.SetFacet(value)
}

func (c *Controller) SetPriceOrder(value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engine.SetPriceOrder(value)
}

func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engine.Reset()
}

func (c *Controller) FilteredView() []record.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.FilteredView()
}

func (c *Controller) View() []record.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.View()
}

// Total is the size of the unfiltered collection.
func (c *Controller) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.Len()
}

// FacetValues lists the distinct facet values present in the source, sorted.
func (c *Controller) FacetValues() []string {
	if c.kind.FacetField == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	seen := map[string]bool{}
	values := []string{}
	for _, r := range c.engine.Source() {
		v, ok := r.String(c.kind.FacetField)
		if !ok || v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)

	return values
}
