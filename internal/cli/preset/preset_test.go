package preset

import (
	"bytes"
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelhub/hostelctl/internal/cli"
	"github.com/hostelhub/hostelctl/internal/config"
	"github.com/hostelhub/hostelctl/internal/filter"
	"github.com/hostelhub/hostelctl/internal/testutil"
)

func newEnv(t *testing.T) (*cli.Env, *bytes.Buffer) {
	t.Helper()

	out := &bytes.Buffer{}
	return &cli.Env{
		Config:  config.Default(),
		Storage: testutil.SetupTestStorage(t),
		Logger:  testutil.TestLogger(t),
		Out:     out,
	}, out
}

func run(t *testing.T, env *cli.Env, args ...string) error {
	t.Helper()

	cmd := NewCommand()
	fs := flag.NewFlagSet("preset", flag.ContinueOnError)
	cmd.SetFlags(fs)
	require.NoError(t, fs.Parse(args))

	return cmd.Run(t.Context(), env)
}

func TestSavePreset(t *testing.T) {
	env, out := newEnv(t)

	require.NoError(t, run(t, env, "-kind", "complaints", "-name", "open", "-status", "Pending", "-range", "week"))
	assert.Equal(t, "saved preset open for complaints: status=pending range=week\n", out.String())

	preset, err := env.Storage.GetPreset(t.Context(), "complaints", "open")
	require.NoError(t, err)

	expected := filter.DefaultState()
	expected.Status = "pending"
	expected.DateRange = filter.DateRangeWeek
	assert.Equal(t, expected, preset.State())
}

func TestSavePresetStartsFromViewDefaults(t *testing.T) {
	env, _ := newEnv(t)
	env.Config.Views = map[string]config.ViewConfig{
		"rooms": {DateRange: "month"},
	}

	require.NoError(t, run(t, env, "-kind", "rooms", "-name", "cheap", "-sort", "low"))

	preset, err := env.Storage.GetPreset(t.Context(), "rooms", "cheap")
	require.NoError(t, err)
	assert.Equal(t, filter.DateRangeMonth, preset.State().DateRange)
	assert.Equal(t, filter.PriceLowToHigh, preset.State().Order)
}

func TestListPresets(t *testing.T) {
	env, out := newEnv(t)

	require.NoError(t, run(t, env, "-kind", "rooms", "-list"))
	assert.Equal(t, "no presets for rooms\n", out.String())

	require.NoError(t, run(t, env, "-kind", "rooms", "-name", "singles", "-facet", "single"))
	require.NoError(t, run(t, env, "-kind", "rooms", "-name", "cheap", "-sort", "low"))
	out.Reset()

	require.NoError(t, run(t, env, "-kind", "rooms", "-list"))
	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.True(t, bytes.HasPrefix(lines[0], []byte("cheap\tstatus=all range=all sort=low\t")))
	assert.True(t, bytes.HasPrefix(lines[1], []byte("singles\tstatus=all range=all facet=single\t")))
}

func TestDeletePreset(t *testing.T) {
	env, out := newEnv(t)

	require.NoError(t, run(t, env, "-kind", "rooms", "-name", "cheap", "-sort", "low"))
	out.Reset()

	require.NoError(t, run(t, env, "-kind", "rooms", "-name", "cheap", "-delete"))
	assert.Equal(t, "deleted preset cheap\n", out.String())

	err := run(t, env, "-kind", "rooms", "-name", "cheap", "-delete")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no preset "cheap" for rooms`)
}

func TestPresetValidation(t *testing.T) {
	env, _ := newEnv(t)

	require.Error(t, run(t, env, "-name", "x"))
	require.Error(t, run(t, env, "-kind", "rooms"))
}
