package list

import (
	"bytes"
	"flag"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelhub/hostelctl/internal/cli"
	"github.com/hostelhub/hostelctl/internal/client"
	"github.com/hostelhub/hostelctl/internal/config"
	"github.com/hostelhub/hostelctl/internal/filter"
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
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	cmd.SetFlags(fs)
	require.NoError(t, fs.Parse(args))

	return cmd.Run(t.Context(), env)
}

func TestSetFlags(t *testing.T) {
	cmd := NewCommand()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(fs)

	for _, name := range []string{"kind", "preset", "v", "o", "status", "range", "search", "facet", "sort"} {
		if fs.Lookup(name) == nil {
			t.Errorf("Expected flag %q to be registered", name)
		}
	}
}

func TestRender(t *testing.T) {
	color.NoColor = true

	view := []record.Record{
		{"id": float64(2), "room_number": "A2", "room_type": "single", "occupancy_limit": float64(1), "price_per_semester": float64(300)},
		{"id": float64(1), "room_number": "A10", "room_type": "double", "occupancy_limit": float64(2), "price_per_semester": 1500.5},
	}
	state := filter.DefaultState()
	state.Order = filter.PriceLowToHigh

	var out bytes.Buffer
	require.NoError(t, Render(&out, resource.Rooms, view, 3, state, false))

	expected := "rooms: 2 of 3 records (status=all range=all sort=low)\n" +
		"ID  ROOM_NUMBER  ROOM_TYPE  OCCUPANCY_LIMIT  PRICE_PER_SEMESTER\n" +
		"2   A2           single     1                300.00\n" +
		"1   A10          double     2                1,500.50\n"
	assert.Equal(t, expected, out.String())
}

func TestRenderEmpty(t *testing.T) {
	color.NoColor = true

	var out bytes.Buffer
	require.NoError(t, Render(&out, resource.Complaints, []record.Record{}, 1, filter.DefaultState(), false))

	assert.Equal(t, "complaints: 0 of 1 record (status=all range=all)\nNo records match the current filters.\n", out.String())
}

func TestRenderVerbose(t *testing.T) {
	color.NoColor = true

	view := []record.Record{{"id": "c1", "status": "pending", "description": "Leak"}}

	var out bytes.Buffer
	require.NoError(t, Render(&out, resource.Complaints, view, 1, filter.DefaultState(), true))

	assert.Contains(t, out.String(), "    description: Leak\n")
	assert.Contains(t, out.String(), "    status: pending\n")
}

func TestRun(t *testing.T) {
	color.NoColor = true

	backend := testutil.NewBackend(t)
	backend.Seed(resource.Complaints.Endpoint,
		record.Record{"id": float64(1), "status": "pending", "severity": "high", "type": "plumbing", "description": "Leaky tap"},
		record.Record{"id": float64(2), "status": "resolved", "severity": "low", "type": "electrical", "description": "Dead socket"},
		record.Record{"id": float64(3), "status": "PENDING", "severity": "low", "type": "noise", "description": "Loud pipes"},
	)
	env, out := newEnv(t, backend)

	require.NoError(t, run(t, env, "-kind", "complaints", "-status", "pending"))
	assert.Contains(t, out.String(), "complaints: 2 of 3 records (status=pending range=all)")
	assert.Contains(t, out.String(), "plumbing")
	assert.NotContains(t, out.String(), "electrical")

	out.Reset()
	require.NoError(t, run(t, env, "-kind", "complaints", "-search", "PIPE"))
	assert.Contains(t, out.String(), "complaints: 1 of 3 records")
	assert.Contains(t, out.String(), "noise")
}

func TestRunWithPreset(t *testing.T) {
	color.NoColor = true

	backend := testutil.NewBackend(t)
	backend.Seed(resource.Maintenance.Endpoint,
		record.Record{"id": float64(1), "status": "pending", "priority": "urgent", "type": "hvac"},
		record.Record{"id": float64(2), "status": "pending", "priority": "low", "type": "paint"},
		record.Record{"id": float64(3), "status": "completed", "priority": "urgent", "type": "door"},
	)
	env, out := newEnv(t, backend)

	_, err := env.Storage.SavePreset(t.Context(), "maintenance", "urgent", filter.State{Facet: "urgent"})
	require.NoError(t, err)

	require.NoError(t, run(t, env, "-kind", "maintenance", "-preset", "urgent"))
	assert.Contains(t, out.String(), "maintenance: 2 of 3 records")

	out.Reset()
	require.NoError(t, run(t, env, "-kind", "maintenance", "-preset", "urgent", "-status", "completed"))
	assert.Contains(t, out.String(), "maintenance: 1 of 3 records")

	err = run(t, env, "-kind", "maintenance", "-preset", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no preset")
}

func TestRunOutputFormats(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Seed(resource.Rooms.Endpoint,
		record.Record{"id": float64(1), "room_number": "A1", "room_type": "single", "occupancy_limit": float64(1), "price_per_semester": float64(900)},
		record.Record{"id": float64(2), "room_number": "A2", "room_type": "double", "occupancy_limit": float64(2), "price_per_semester": float64(400)},
	)
	env, out := newEnv(t, backend)

	require.NoError(t, run(t, env, "-kind", "rooms", "-sort", "low", "-o", "csv"))
	expected := "id,room_number,room_type,occupancy_limit,price_per_semester\n" +
		"2,A2,double,2,400.00\n" +
		"1,A1,single,1,900.00\n"
	assert.Equal(t, expected, out.String())

	out.Reset()
	require.NoError(t, run(t, env, "-kind", "rooms", "-facet", "single", "-o", "json"))
	assert.JSONEq(t, `[{"id": 1, "room_number": "A1", "room_type": "single", "occupancy_limit": 1, "price_per_semester": 900}]`, out.String())

	require.Error(t, run(t, env, "-kind", "rooms", "-o", "xml"))
}

func TestRunErrors(t *testing.T) {
	backend := testutil.NewBackend(t)
	env, _ := newEnv(t, backend)

	require.Error(t, run(t, env))
	require.Error(t, run(t, env, "-kind", "hostels"))

	backend.SetRole("student")
	err := run(t, env, "-kind", "applications")
	require.ErrorIs(t, err, client.ErrForbidden)
}
