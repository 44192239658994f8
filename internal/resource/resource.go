package resource

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/exp/maps"

	"github.com/hostelhub/hostelctl/internal/record"
	"github.com/hostelhub/hostelctl/internal/util"
)

// Kind describes one list view backed by a REST collection.
type Kind struct {
	Name     string
	Endpoint string
	// SearchFields are the fields the free-text search looks into.
	SearchFields []string
	// Statuses are the known status values; empty means the collection has no status.
	Statuses []string
	// FacetField is the secondary equality filter, if any.
	FacetField string
	// PriceField enables the price ordering.
	PriceField string
	// Columns are the fields shown in tabular output, in order.
	Columns []string
	// AdminOnly marks collections that need the admin gate to list.
	AdminOnly bool
	// NewForm returns an empty create payload for the kind; nil marks a
	// read-only list.
	NewForm func() any
	// StatusPath, when set, is the sub-resource that takes status changes
	// (PUT <endpoint>/<id>/<StatusPath>). Otherwise the item itself is updated.
	StatusPath string
}

var (
	Applications = Kind{
		Name:         "applications",
		Endpoint:     "/applications",
		SearchFields: []string{"user_name", "user_email"},
		Statuses:     []string{"pending", "approved", "rejected"},
		Columns:      []string{"id", "user_name", "user_email", "room_number", "status", "created_at"},
		AdminOnly:    true,
		NewForm:      func() any { return &ApplicationForm{} },
	}

	MyApplications = Kind{
		Name:         "my-applications",
		Endpoint:     "/applications/my-applications",
		SearchFields: []string{"room_number", "room_type", "special_needs", "additional_notes"},
		Statuses:     []string{"pending", "approved", "rejected"},
		Columns:      []string{"id", "room_number", "room_type", "status", "created_at"},
		NewForm:      func() any { return &ApplicationForm{} },
	}

	Rooms = Kind{
		Name:         "rooms",
		Endpoint:     "/rooms",
		SearchFields: []string{"room_number", "description"},
		FacetField:   "room_type",
		PriceField:   "price_per_semester",
		Columns:      []string{"id", "room_number", "room_type", "occupancy_limit", "price_per_semester"},
		NewForm:      func() any { return &RoomForm{} },
	}

	Complaints = Kind{
		Name:         "complaints",
		Endpoint:     "/complaints",
		SearchFields: []string{"description", "type", "location"},
		Statuses:     []string{"pending", "in-progress", "resolved"},
		FacetField:   "severity",
		Columns:      []string{"id", "type", "location", "severity", "status", "createdAt"},
		NewForm:      func() any { return &ComplaintForm{} },
	}

	Maintenance = Kind{
		Name:         "maintenance",
		Endpoint:     "/maintenance-requests",
		SearchFields: []string{"description", "type"},
		Statuses:     []string{"pending", "in-progress", "completed"},
		FacetField:   "priority",
		Columns:      []string{"id", "type", "priority", "status", "createdAt"},
		NewForm:      func() any { return &MaintenanceForm{} },
	}

	// MaintenanceQueue is the staff view of open maintenance work.
	MaintenanceQueue = Kind{
		Name:         "maintenance-queue",
		Endpoint:     "/maintenance/requests",
		SearchFields: []string{"description", "location", "type"},
		Statuses:     []string{"pending", "in-progress", "completed"},
		FacetField:   "priority",
		Columns:      []string{"id", "location", "priority", "status", "createdAt"},
		StatusPath:   "status",
	}

	Notifications = Kind{
		Name:         "notifications",
		Endpoint:     "/notifications",
		SearchFields: []string{"message"},
		FacetField:   "is_read",
		Columns:      []string{"id", "message", "is_read", "created_at"},
	}

	Hostels = Kind{
		Name:         "hostels",
		Endpoint:     "/hostels",
		SearchFields: []string{"name", "description", "location"},
		Columns:      []string{"id", "name", "available_rooms", "total_rooms"},
	}
)

var registry = map[string]Kind{
	Applications.Name:   Applications,
	MyApplications.Name: MyApplications,
	Rooms.Name:          Rooms,
	Complaints.Name:     Complaints,
	Maintenance.Name:    Maintenance,

	MaintenanceQueue.Name: MaintenanceQueue,
	Notifications.Name:    Notifications,
	Hostels.Name:          Hostels,
}

// Lookup finds a kind by name, ignoring case.
func Lookup(name string) (Kind, error) {
	k, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Kind{}, fmt.Errorf("unknown list %q (available: %s)", name, strings.Join(Names(), ", "))
	}

	return k, nil
}

// Names returns every registered kind name, sorted.
func Names() []string {
	names := maps.Keys(registry)
	sort.Strings(names)

	return names
}

// HasStatus reports whether the kind exposes a status column.
func (k Kind) HasStatus() bool {
	return len(k.Statuses) > 0
}

// WithSearchFields returns a copy of k searching the given fields instead.
func (k Kind) WithSearchFields(fields []string) Kind {
	if len(fields) == 0 {
		return k
	}

	k.SearchFields = append([]string(nil), fields...)

	return k
}

// ReadOnly reports whether records of the kind cannot be created.
func (k Kind) ReadOnly() bool {
	return k.NewForm == nil
}

// HasStatusValue reports whether value is one of the kind's statuses,
// ignoring case.
func (k Kind) HasStatusValue(value string) bool {
	for _, s := range k.Statuses {
		if strings.EqualFold(s, strings.TrimSpace(value)) {
			return true
		}
	}
	return false
}

// StatusTarget returns the path that takes status changes for the item id.
func (k Kind) StatusTarget(id string) string {
	if k.StatusPath == "" {
		return k.Path(id)
	}
	return k.Path(id) + "/" + k.StatusPath
}

// Path returns the endpoint of a single item.
func (k Kind) Path(id string) string {
	return k.Endpoint + "/" + id
}

// Cell formats one column of r for tabular output. Missing values print as "-".
func (k Kind) Cell(r record.Record, column string) string {
	switch {
	case column == k.PriceField:
		return util.FormatPrice(r.Number(column))
	case column == record.FieldCreatedAt || column == record.FieldCreatedAtSnake:
		if t := r.CreatedAt(); !t.IsZero() {
			return t.Local().Format(time.DateOnly)
		}
		return "-"
	}

	value, ok := r.String(column)
	if !ok || value == "" {
		return "-"
	}
	return value
}
