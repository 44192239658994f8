package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hostelhub/hostelctl/internal/filter"
	"github.com/hostelhub/hostelctl/internal/storage"
)

// SavePreset inserts the preset or replaces the state of an existing one with
// the same kind and name.
func (s *sqliteStorage) SavePreset(
	ctx context.Context,
	kind, name string,
	state filter.State,
) (storage.Preset, error) {
	encoded, err := json.Marshal(state.Normalize())
	if err != nil {
		return nil, fmt.Errorf("failed to encode preset state: %w", err)
	}

	createdAt := time.Now()
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO presets (kind, name, state, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(kind, name) DO UPDATE SET state = excluded.state
		RETURNING id, created_at
	`, kind, name, string(encoded), createdAt.Unix())

	var id, created int64
	if err = row.Scan(&id, &created); err != nil {
		return nil, fmt.Errorf("failed to save preset: %w", err)
	}

	return storage.NewPreset(id, kind, name, state.Normalize(), time.Unix(created, 0)), nil
}

func (s *sqliteStorage) GetPreset(ctx context.Context, kind, name string) (storage.Preset, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, kind, name, state, created_at
		FROM presets
		WHERE kind = ? AND name = ?
	`, kind, name)

	p, err := scanPreset(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &storage.NotFoundError{}
		}
		return nil, err
	}
	return p, nil
}

func (s *sqliteStorage) ListPresets(ctx context.Context, kind string) ([]storage.Preset, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, name, state, created_at
		FROM presets
		WHERE kind = ?
		ORDER BY name
	`, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to query presets: %w", err)
	}
	defer rows.Close()

	presets := []storage.Preset{}
	for rows.Next() {
		p, scanErr := scanPreset(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		presets = append(presets, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate presets: %w", err)
	}

	return presets, nil
}

func (s *sqliteStorage) DeletePreset(ctx context.Context, kind, name string) (int64, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM presets WHERE kind = ? AND name = ?", kind, name)
	if err != nil {
		return 0, fmt.Errorf("failed to delete preset: %w", err)
	}

	return result.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPreset(row scanner) (storage.Preset, error) {
	var id, createdAt int64
	var kind, name, encoded string

	if err := row.Scan(&id, &kind, &name, &encoded, &createdAt); err != nil {
		return nil, err
	}

	state := filter.DefaultState()
	if err := json.Unmarshal([]byte(encoded), &state); err != nil {
		return nil, fmt.Errorf("failed to decode preset %q: %w", name, err)
	}

	return storage.NewPreset(id, kind, name, state.Normalize(), time.Unix(createdAt, 0)), nil
}
