package testutil

import (
	"testing"

	"github.com/hostelhub/hostelctl/internal/logger"
)

func TestLogger(t *testing.T) *logger.Logger {
	t.Helper()

	// creates a test logger that doesn't output anything.
	return logger.New(logger.Config{
		Level:  logger.LevelDebug,
		Format: logger.FormatText,
		Output: "discard",
	})
}
