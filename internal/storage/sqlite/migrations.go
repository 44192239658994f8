package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hostelhub/hostelctl/internal/logger"
)

func createMigrationsTable(ctx context.Context, db *sql.DB) error {
	statement, err := db.PrepareContext(ctx, `
			CREATE TABLE IF NOT EXISTS schema_migrations (
					version INTEGER PRIMARY KEY,
					applied_at INTEGER NOT NULL
			)
	`)
	if err != nil {
		return err
	}
	defer statement.Close()
	_, err = statement.ExecContext(ctx)
	return err
}

// Purge drops every table, including the migration history.
func (s *sqliteStorage) Purge(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for dropping tables: %w", err)
	}

	for _, table := range []string{"presets", "session", "schema_migrations"} {
		if _, err = tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			if rErr := tx.Rollback(); rErr != nil {
				return rErr
			}
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit deletion: %w", err)
	}

	return nil
}

type migration struct {
	name string
	up   func(context.Context, *sql.Tx) error
}

var migrations = []migration{
	{
		name: "Create presets table",
		up: func(ctx context.Context, tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS presets
				(
				id INTEGER PRIMARY KEY,
				kind TEXT NOT NULL,
				name TEXT NOT NULL,
				state TEXT NOT NULL,
				created_at INTEGER NOT NULL,
				UNIQUE(kind, name)
				) STRICT;`)
			return err
		},
	},
	{
		name: "Create session table",
		up: func(ctx context.Context, tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS session
				(
				id INTEGER PRIMARY KEY CHECK (id = 1),
				token TEXT NOT NULL,
				user_name TEXT NOT NULL DEFAULT '',
				role TEXT NOT NULL DEFAULT '',
				expires_at INTEGER NOT NULL,
				created_at INTEGER NOT NULL
				) STRICT;`)
			return err
		},
	},
	{
		name: "Add presets kind index",
		up: func(ctx context.Context, tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_presets_kind ON presets(kind)`)
			return err
		},
	},
}

func (s *sqliteStorage) ApplyMigrations(ctx context.Context, logger *logger.Logger) error {
	if err := createMigrationsTable(ctx, s.db); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	currentVersion := 0
	row := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	for i, m := range migrations {
		version := i + 1
		if version <= currentVersion {
			continue
		}

		logger.Debug("Applying migration", "version", version, "name", m.name)
		if err := s.applyMigration(ctx, version, m); err != nil {
			return err
		}
		logger.Debug("Migration applied successfully", "version", version)
	}

	return nil
}

func (s *sqliteStorage) applyMigration(ctx context.Context, version int, m migration) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for migration %d: %w", version, err)
	}

	if err = m.up(ctx, tx); err != nil {
		if rErr := tx.Rollback(); rErr != nil {
			return rErr
		}
		return fmt.Errorf("migration %d failed: %w", version, err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)",
		version, time.Now().Unix(),
	)
	if err != nil {
		if rErr := tx.Rollback(); rErr != nil {
			return rErr
		}
		return fmt.Errorf("failed to record migration %d: %w", version, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", version, err)
	}
	return nil
}
