// Package record holds the client-side snapshot of one backend item
// (application, room, complaint or maintenance request).
package record

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/exp/maps"
)

const (
	FieldID        = "id"
	FieldStatus    = "status"
	FieldCreatedAt = "createdAt"
	// FieldCreatedAtSnake is the spelling used by the applications and rooms endpoints.
	FieldCreatedAtSnake = "created_at"
)

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Record is an opaque mapping from field name to value, as decoded from JSON.
type Record map[string]any

// Decode reads a JSON array of objects into records.
func Decode(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}

	return records, nil
}

// FromValue converts any JSON-marshalable value (typically a form struct) into a Record.
func FromValue(v any) (Record, error) {
	if r, ok := v.(Record); ok {
		return r.Clone(), nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode value: %w", err)
	}

	var r Record
	if err = json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("value is not an object: %w", err)
	}

	return r, nil
}

// Clone returns a shallow copy.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}

	return maps.Clone(r)
}

// Merge returns a copy of r with every field of patch applied on top.
func (r Record) Merge(patch Record) Record {
	merged := r.Clone()
	if merged == nil {
		merged = Record{}
	}

	for k, v := range patch {
		merged[k] = v
	}

	return merged
}

// Fields returns the field names in sorted order.
func (r Record) Fields() []string {
	keys := maps.Keys(r)
	sort.Strings(keys)

	return keys
}

// String returns the textual form of a scalar field. Objects, arrays, null
// and missing fields report false.
func (r Record) String(field string) (string, bool) {
	v, ok := r[field]
	if !ok {
		return "", false
	}

	return scalarString(v)
}

// Status returns the status field, or "" when absent.
func (r Record) Status() string {
	s, _ := r.String(FieldStatus)

	return s
}

// ID returns the canonical identity key of the record.
func (r Record) ID() (string, bool) {
	v, ok := r[FieldID]
	if !ok {
		return "", false
	}

	return Key(v)
}

// CreatedAt returns the creation timestamp read from createdAt or created_at.
// The zero time is returned when neither holds a parseable value.
func (r Record) CreatedAt() time.Time {
	for _, field := range []string{FieldCreatedAt, FieldCreatedAtSnake} {
		if t, ok := r.Time(field); ok {
			return t
		}
	}

	return time.Time{}
}

// Time parses a timestamp field. Strings are tried against RFC 3339 and the
// common SQL layouts; numbers are treated as Unix milliseconds.
func (r Record) Time(field string) (time.Time, bool) {
	switch v := r[field].(type) {
	case time.Time:
		return v, !v.IsZero()
	case string:
		return parseTime(v)
	case float64:
		return time.UnixMilli(int64(v)), true
	case int64:
		return time.UnixMilli(v), true
	case int:
		return time.UnixMilli(int64(v)), true
	case json.Number:
		ms, err := v.Int64()
		if err != nil {
			return time.Time{}, false
		}
		return time.UnixMilli(ms), true
	default:
		return time.Time{}, false
	}
}

// Number coerces a field to float64. Missing or non-numeric values yield 0.
func (r Record) Number(field string) float64 {
	var f float64

	switch v := r[field].(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		f, _ = v.Float64()
	case string:
		f, _ = strconv.ParseFloat(strings.TrimSpace(v), 64)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	return f
}

// Key canonicalises an identity value so that 9, 9.0 and "9" compare equal.
func Key(v any) (string, bool) {
	switch id := v.(type) {
	case nil:
		return "", false
	case string:
		id = strings.TrimSpace(id)
		if f, err := strconv.ParseFloat(id, 64); err == nil && f == math.Trunc(f) && !strings.ContainsAny(id, "eE") {
			return strconv.FormatFloat(f, 'f', -1, 64), true
		}
		return id, id != ""
	default:
		return scalarString(v)
	}
}

func scalarString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32), true
	case int:
		return strconv.Itoa(s), true
	case int64:
		return strconv.FormatInt(s, 10), true
	case json.Number:
		return s.String(), true
	case bool:
		return strconv.FormatBool(s), true
	default:
		return "", false
	}
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
