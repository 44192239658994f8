package listview

import "github.com/hostelhub/hostelctl/internal/record"

// ApplyCreate prepends a record confirmed by the backend.
func (e *Engine) ApplyCreate(r record.Record) {
	e.source = append([]record.Record{r}, e.source...)
	e.dirty = true
}

// ApplyUpdate merges patch into the record with the given id, keeping its
// position. It reports whether a record was found; an unknown id is a no-op.
func (e *Engine) ApplyUpdate(id any, patch record.Record) bool {
	i := e.indexOf(id)
	if i < 0 {
		return false
	}

	// the slot gets a merged copy so the caller's map is never written to
	e.source[i] = e.source[i].Merge(patch)
	e.dirty = true

	return true
}

// ApplyDelete removes the record with the given id. It reports whether a
// record was removed; an unknown id is a no-op.
func (e *Engine) ApplyDelete(id any) bool {
	i := e.indexOf(id)
	if i < 0 {
		return false
	}

	source := make([]record.Record, 0, len(e.source)-1)
	source = append(source, e.source[:i]...)
	e.source = append(source, e.source[i+1:]...)
	e.dirty = true

	return true
}

// Find returns the record with the given id.
func (e *Engine) Find(id any) (record.Record, bool) {
	i := e.indexOf(id)
	if i < 0 {
		return nil, false
	}

	return e.source[i], true
}

func (e *Engine) indexOf(id any) int {
	key, ok := record.Key(id)
	if !ok {
		return -1
	}

	for i, r := range e.source {
		if rk, found := r.ID(); found && rk == key {
			return i
		}
	}

	return -1
}
