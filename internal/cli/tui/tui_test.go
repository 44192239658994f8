package tui

import (
	"errors"
	"flag"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelhub/hostelctl/internal/client"
	"github.com/hostelhub/hostelctl/internal/controller"
	"github.com/hostelhub/hostelctl/internal/filter"
	"github.com/hostelhub/hostelctl/internal/record"
	"github.com/hostelhub/hostelctl/internal/resource"
	"github.com/hostelhub/hostelctl/internal/testutil"
)

func TestNewCommand(t *testing.T) {
	cmd := NewCommand()
	if cmd == nil {
		t.Error("NewCommand() returned nil")
	}

	if desc := cmd.Description(); desc != "Interactive terminal user interface" {
		t.Errorf("Description() = %v, want %v", desc, "Interactive terminal user interface")
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(fs)
	if fs.Lookup("kind") == nil || fs.Lookup("status") == nil {
		t.Error("SetFlags() did not register kind and filter flags")
	}
}

func newTestModel(t *testing.T, kind resource.Kind, seed ...record.Record) (model, *testutil.Backend) {
	t.Helper()

	backend := testutil.NewBackend(t)
	backend.Seed(kind.Endpoint, seed...)

	logger := testutil.TestLogger(t)
	c := client.New(backend.APIConfig(), logger, client.WithToken(testutil.TestToken))
	ctrl := controller.New(kind, c, logger)
	require.NoError(t, ctrl.Refresh(t.Context()))

	m := newModel(t.Context(), ctrl)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	return updated.(model), backend
}

func press(t *testing.T, m model, keys ...string) model {
	t.Helper()

	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}

		updated, _ := m.Update(msg)
		m = updated.(model)
	}

	return m
}

func complaints() []record.Record {
	return []record.Record{
		{"id": float64(1), "status": "pending", "severity": "high", "description": "Leaky tap"},
		{"id": float64(2), "status": "resolved", "severity": "low", "description": "Dead socket"},
		{"id": float64(3), "status": "in-progress", "severity": "low", "description": "Loud pipes"},
	}
}

func TestCycle(t *testing.T) {
	values := []string{"all", "pending", "resolved"}

	assert.Equal(t, "pending", cycle(values, "all"))
	assert.Equal(t, "resolved", cycle(values, "PENDING"))
	assert.Equal(t, "all", cycle(values, "resolved"))
	assert.Equal(t, "all", cycle(values, "unknown"))
	assert.Equal(t, "x", cycle(nil, "x"))
}

func TestStatusKeyCycles(t *testing.T) {
	m, _ := newTestModel(t, resource.Complaints, complaints()...)

	m = press(t, m, "s")
	assert.Equal(t, filter.Status("pending"), m.ctrl.State().Status)
	assert.Len(t, m.ctrl.View(), 1)

	m = press(t, m, "s", "s", "s")
	assert.Equal(t, filter.StatusAll, m.ctrl.State().Status)
	assert.Len(t, m.ctrl.View(), 3)
}

func TestRangeAndPriceKeysCycle(t *testing.T) {
	m, _ := newTestModel(t, resource.Rooms)

	m = press(t, m, "d")
	assert.Equal(t, filter.DateRangeToday, m.ctrl.State().DateRange)

	m = press(t, m, "p", "p")
	assert.Equal(t, filter.PriceHighToLow, m.ctrl.State().Order)
}

func TestFacetKeyUsesSourceValues(t *testing.T) {
	m, _ := newTestModel(t, resource.Complaints, complaints()...)

	m = press(t, m, "f")
	assert.Equal(t, "high", m.ctrl.State().Facet)

	m = press(t, m, "f")
	assert.Equal(t, "low", m.ctrl.State().Facet)
	assert.Len(t, m.ctrl.View(), 2)

	m = press(t, m, "f")
	assert.Equal(t, "all", m.ctrl.State().Facet)
}

func TestSearchInput(t *testing.T) {
	m, _ := newTestModel(t, resource.Complaints, complaints()...)

	m = press(t, m, "/", "T", "A", "P")
	assert.True(t, m.searching)
	assert.Equal(t, "TAP", m.ctrl.State().SearchTerm)
	assert.Len(t, m.ctrl.View(), 1)

	m = press(t, m, "enter")
	assert.False(t, m.searching)
	assert.Equal(t, "TAP", m.ctrl.State().SearchTerm)

	// cancelling restores the term from before editing started
	m = press(t, m, "/", "x")
	assert.Equal(t, "TAPx", m.ctrl.State().SearchTerm)
	assert.Empty(t, m.ctrl.View())

	m = press(t, m, "esc")
	assert.False(t, m.searching)
	assert.Equal(t, "TAP", m.ctrl.State().SearchTerm)
	assert.Equal(t, "TAP", m.search.Value())

	m = press(t, m, "x")
	assert.Equal(t, filter.DefaultState(), m.ctrl.State())
	assert.Empty(t, m.search.Value())
}

func TestRefreshMessage(t *testing.T) {
	m, backend := newTestModel(t, resource.Complaints, complaints()...)

	backend.Seed(resource.Complaints.Endpoint, complaints()[0])
	cmd := m.refresh()
	require.NotNil(t, cmd)

	updated, _ := m.Update(cmd())
	m = updated.(model)
	require.NoError(t, m.err)
	assert.Equal(t, 1, m.ctrl.Total())

	updated, _ = m.Update(refreshedMsg{err: errors.New("backend down")})
	m = updated.(model)
	assert.Contains(t, m.View(), "backend down")
}

func TestViewShowsCounts(t *testing.T) {
	m, _ := newTestModel(t, resource.Complaints, complaints()...)
	m = press(t, m, "s")

	view := m.View()
	assert.Contains(t, view, "complaints  1 of 3")
	assert.Contains(t, view, "status=pending")
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, resource.Rooms)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
