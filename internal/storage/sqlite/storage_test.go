package sqlite

import (
	"testing"

	"github.com/hostelhub/hostelctl/internal/config"
	"github.com/hostelhub/hostelctl/internal/logger"
	"github.com/hostelhub/hostelctl/internal/storage"
)

func setupTestStorage(t *testing.T) storage.Storage {
	t.Helper()

	stor, err := New(config.DBConfig{Source: ":memory:", BusyTimeout: 1000})
	if err != nil {
		t.Fatalf("Failed to create test storage: %v", err)
	}

	log := logger.New(logger.Config{Output: "discard"})
	if err = stor.ApplyMigrations(t.Context(), log); err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}

	t.Cleanup(func() {
		if err = stor.Close(); err != nil {
			t.Errorf("Failed to close test storage: %v", err)
		}
	})

	return stor
}
