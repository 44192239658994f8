package delete

import (
	"bytes"
	"flag"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelhub/hostelctl/internal/cli"
	"github.com/hostelhub/hostelctl/internal/client"
	"github.com/hostelhub/hostelctl/internal/config"
	"github.com/hostelhub/hostelctl/internal/record"
	"github.com/hostelhub/hostelctl/internal/resource"
	"github.com/hostelhub/hostelctl/internal/testutil"
)

func newEnv(t *testing.T, backend *testutil.Backend) (*cli.Env, *bytes.Buffer) {
	t.Helper()

	logger := testutil.TestLogger(t)
	out := &bytes.Buffer{}

	return &cli.Env{
		Config:  config.Default(),
		Storage: testutil.SetupTestStorage(t),
		Client:  client.New(backend.APIConfig(), logger, client.WithToken(testutil.TestToken)),
		Logger:  logger,
		Out:     out,
	}, out
}

func run(t *testing.T, env *cli.Env, args ...string) error {
	t.Helper()

	cmd := NewCommand()
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	cmd.SetFlags(fs)
	require.NoError(t, fs.Parse(args))

	return cmd.Run(t.Context(), env)
}

func TestNewCommand(t *testing.T) {
	cmd := NewCommand()
	if cmd == nil {
		t.Fatal("NewCommand() returned nil")
	}

	if desc := cmd.Description(); desc != "Delete a record and drop it from the list" {
		t.Errorf("Description() = %v", desc)
	}
}

func TestDelete(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Seed(resource.Complaints.Endpoint,
		record.Record{"id": float64(1), "type": "noise", "status": "pending"},
		record.Record{"id": float64(2), "type": "leak", "status": "resolved"},
	)
	env, out := newEnv(t, backend)

	require.NoError(t, run(t, env, "-kind", "complaints", "-id", "1"))

	assert.Equal(t, "deleted 1; complaints view: 1 records\n", out.String())
	remaining := backend.Records(resource.Complaints.Endpoint)
	require.Len(t, remaining, 1)
	assert.InDelta(t, 2, remaining[0].Number("id"), 0)
}

func TestDeleteFailureKeepsRecord(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Seed(resource.Complaints.Endpoint,
		record.Record{"id": float64(1), "type": "noise", "status": "pending"},
	)
	backend.Fail(http.MethodDelete, "/complaints/1", http.StatusInternalServerError, "boom")
	env, out := newEnv(t, backend)

	err := run(t, env, "-kind", "complaints", "-id", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Empty(t, out.String())
	assert.Len(t, backend.Records(resource.Complaints.Endpoint), 1)
}

func TestDeleteValidation(t *testing.T) {
	backend := testutil.NewBackend(t)
	env, _ := newEnv(t, backend)

	require.Error(t, run(t, env, "-kind", "complaints"))
	require.Error(t, run(t, env, "-kind", "nope", "-id", "1"))
}

func TestDeleteAdminGate(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.SetRole("student")
	backend.Seed(resource.Applications.Endpoint, record.Record{"id": float64(1)})
	env, _ := newEnv(t, backend)

	err := run(t, env, "-kind", "applications", "-id", "1")
	require.ErrorIs(t, err, client.ErrForbidden)
	assert.Len(t, backend.Records(resource.Applications.Endpoint), 1)
}
