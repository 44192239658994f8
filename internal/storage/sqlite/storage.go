package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	// import sqlite driver.
	_ "github.com/mattn/go-sqlite3"

	"github.com/hostelhub/hostelctl/internal/config"
	"github.com/hostelhub/hostelctl/internal/storage"
)

type sqliteStorage struct {
	db *sql.DB
}

// New opens the local state database. The connection is kept to one so that
// ":memory:" sources see the same schema across queries.
func New(dbConfig config.DBConfig) (storage.Storage, error) {
	db, err := sql.Open("sqlite3", dbConfig.Source)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	ctx := context.Background()

	_, err = db.ExecContext(ctx, "PRAGMA foreign_keys = ON")
	if err != nil {
		db.Close()
		return nil, err
	}

	if dbConfig.BusyTimeout > 0 {
		_, err = db.ExecContext(ctx, fmt.Sprintf("PRAGMA busy_timeout = %d", dbConfig.BusyTimeout))
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set busy_timeout: %w", err)
		}
	}

	return &sqliteStorage{db: db}, nil
}

func (s *sqliteStorage) Close() error {
	return s.db.Close()
}
