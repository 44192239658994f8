package testutil

import (
	"testing"

	"github.com/hostelhub/hostelctl/internal/config"
	"github.com/hostelhub/hostelctl/internal/storage"
	"github.com/hostelhub/hostelctl/internal/storage/sqlite"
)

// SetupTestStorage returns a migrated in-memory storage closed at the end of the test.
func SetupTestStorage(t *testing.T) storage.Storage {
	t.Helper()

	stor, err := sqlite.New(config.DBConfig{Source: ":memory:"})
	if err != nil {
		t.Fatalf("Failed to create test storage: %v", err)
	}

	if err = stor.ApplyMigrations(t.Context(), TestLogger(t)); err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}

	t.Cleanup(func() {
		if err = stor.Close(); err != nil {
			t.Errorf("Failed to close test storage: %v", err)
		}
	})

	return stor
}
