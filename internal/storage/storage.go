package storage

import (
	"context"
	"time"

	"github.com/hostelhub/hostelctl/internal/filter"
	"github.com/hostelhub/hostelctl/internal/logger"
)

type NotFoundError struct{}

func (e *NotFoundError) Error() string {
	return "record not found"
}

// Preset is a named filter state saved for one list kind.
type Preset interface {
	ID() int64
	Kind() string
	Name() string
	State() filter.State
	CreatedAt() time.Time
}

type preset struct {
	id        int64
	kind      string
	name      string
	state     filter.State
	createdAt time.Time
}

func NewPreset(id int64, kind, name string, state filter.State, createdAt time.Time) Preset {
	return preset{
		id:        id,
		kind:      kind,
		name:      name,
		state:     state,
		createdAt: createdAt,
	}
}

func (p preset) ID() int64 {
	return p.id
}

func (p preset) Kind() string {
	return p.kind
}

func (p preset) Name() string {
	return p.name
}

func (p preset) State() filter.State {
	return p.state
}

func (p preset) CreatedAt() time.Time {
	return p.createdAt
}

// Session is the authenticated backend session of the local user.
type Session interface {
	Token() string
	UserName() string
	Role() string
	ExpiresAt() time.Time
	CreatedAt() time.Time
	IsAdmin() bool
}

type session struct {
	token     string
	userName  string
	role      string
	expiresAt time.Time
	createdAt time.Time
}

func NewSession(token, userName, role string, expiresAt, createdAt time.Time) Session {
	return session{
		token:     token,
		userName:  userName,
		role:      role,
		expiresAt: expiresAt,
		createdAt: createdAt,
	}
}

func (s session) Token() string {
	return s.token
}

func (s session) UserName() string {
	return s.userName
}

func (s session) Role() string {
	return s.role
}

func (s session) ExpiresAt() time.Time {
	return s.expiresAt
}

func (s session) CreatedAt() time.Time {
	return s.createdAt
}

func (s session) IsAdmin() bool {
	return s.role == "admin"
}

type Storage interface {
	// Migrations
	ApplyMigrations(ctx context.Context, logger *logger.Logger) error
	Purge(ctx context.Context) error

	// Presets
	SavePreset(ctx context.Context, kind, name string, state filter.State) (Preset, error)
	GetPreset(ctx context.Context, kind, name string) (Preset, error)
	ListPresets(ctx context.Context, kind string) ([]Preset, error)
	DeletePreset(ctx context.Context, kind, name string) (int64, error)

	// Session
	SaveSession(ctx context.Context, token, userName, role string, expiresAt time.Time) (Session, error)
	GetSession(ctx context.Context) (Session, error)
	DeleteSession(ctx context.Context) error

	Close() error
}
