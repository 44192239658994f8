package update

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
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

func setup(t *testing.T) (*testutil.Backend, *cli.Env, *bytes.Buffer) {
	t.Helper()

	backend := testutil.NewBackend(t)
	backend.Seed(resource.Complaints.Endpoint,
		record.Record{"id": float64(1), "type": "noise", "status": "pending"},
		record.Record{"id": float64(2), "type": "leak", "status": "pending"},
	)

	logger := testutil.TestLogger(t)
	out := &bytes.Buffer{}
	env := &cli.Env{
		Config:  config.Default(),
		Storage: testutil.SetupTestStorage(t),
		Client:  client.New(backend.APIConfig(), logger, client.WithToken(testutil.TestToken)),
		Logger:  logger,
		Out:     out,
	}

	return backend, env, out
}

func run(t *testing.T, env *cli.Env, args ...string) error {
	t.Helper()

	cmd := NewCommand()
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	cmd.SetFlags(fs)
	require.NoError(t, fs.Parse(args))

	return cmd.Run(t.Context(), env)
}

func payload(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "patch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestUpdate(t *testing.T) {
	for _, empty := range []bool{false, true} {
		backend, env, out := setup(t)
		backend.EmptyUpdates = empty

		require.NoError(t, run(t, env, "-kind", "complaints", "-id", "1", "-f", payload(t, "status: resolved\n")))
		assert.Equal(t, "updated 1; complaints view: 2 records\n", out.String())

		status, _ := backend.Records(resource.Complaints.Endpoint)[0].String("status")
		assert.Equal(t, "resolved", status)
	}
}

func TestUpdateRefiltersView(t *testing.T) {
	_, env, out := setup(t)
	env.Config.Views = map[string]config.ViewConfig{
		"complaints": {Status: "pending"},
	}

	require.NoError(t, run(t, env, "-kind", "complaints", "-id", "2", "-f", payload(t, "status: resolved\n")))
	assert.Equal(t, "updated 2; complaints view: 1 records\n", out.String())
}

func TestUpdateErrors(t *testing.T) {
	_, env, _ := setup(t)

	require.Error(t, run(t, env, "-kind", "complaints", "-f", payload(t, "status: resolved\n")))
	require.Error(t, run(t, env, "-kind", "complaints", "-id", "1", "-f", payload(t, "{}\n")))

	err := run(t, env, "-kind", "complaints", "-id", "99", "-f", payload(t, "status: resolved\n"))
	require.ErrorIs(t, err, client.ErrNotFound)
}
