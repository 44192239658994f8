package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hostelhub/hostelctl/internal/controller"
	"github.com/hostelhub/hostelctl/internal/filter"
)

const chromeHeight = 6

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("69"))

	filtersStyle = lipgloss.NewStyle().
			Faint(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

type refreshedMsg struct {
	err error
}

type model struct {
	ctx  context.Context
	ctrl *controller.Controller

	table  viewTable
	search textinput.Model
	help   help.Model

	keys       keymap
	searchKeys searchKeymap

	searching bool
	// before is the search term to restore when editing is cancelled
	before    string
	err       error

	width  int
	height int
}

func newModel(ctx context.Context, ctrl *controller.Controller) model {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search"
	search.SetValue(ctrl.State().SearchTerm)

	m := model{
		ctx:        ctx,
		ctrl:       ctrl,
		table:      newViewTable(ctrl.Kind(), 0),
		search:     search,
		help:       help.New(),
		keys:       defaultKeyMap(),
		searchKeys: defaultSearchKeyMap(),
	}
	m.table = m.table.SetRecords(ctrl.View())

	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) refresh() tea.Cmd {
	return func() tea.Msg {
		return refreshedMsg{err: m.ctrl.Refresh(m.ctx)}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.table.UpdateDimensions(m.width, max(m.height-chromeHeight, 1))
		return m, nil
	case refreshedMsg:
		m.err = msg.err
		m.table = m.table.SetRecords(m.ctrl.View())
		return m, nil
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Exit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Status):
			m.ctrl.SetStatus(cycle(m.statuses(), string(m.ctrl.State().Status)))
		case key.Matches(msg, m.keys.Range):
			m.ctrl.SetDateRange(cycle(ranges(), string(m.ctrl.State().DateRange)))
		case key.Matches(msg, m.keys.Facet):
			m.ctrl.SetFacet(cycle(m.facets(), m.ctrl.State().Facet))
		case key.Matches(msg, m.keys.Price):
			m.ctrl.SetPriceOrder(cycle(orders(), string(m.ctrl.State().Order)))
		case key.Matches(msg, m.keys.Reset):
			m.ctrl.Reset()
			m.search.SetValue("")
		case key.Matches(msg, m.keys.Search):
			m.searching = true
			m.before = m.ctrl.State().SearchTerm
			cmd = m.search.Focus()
			return m, cmd
		case key.Matches(msg, m.keys.Refresh):
			return m, m.refresh()
		default:
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

		m.table = m.table.SetRecords(m.ctrl.View())
	}

	return m, cmd
}

func (m model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.searchKeys.Apply):
		m.searching = false
		m.search.Blur()
	case key.Matches(msg, m.searchKeys.Cancel):
		m.searching = false
		m.search.Blur()
		m.search.SetValue(m.before)
		m.ctrl.SetSearchTerm(m.before)
		m.table = m.table.SetRecords(m.ctrl.View())
		return m, nil
	default:
		m.search, cmd = m.search.Update(msg)
	}

	// the view follows every keystroke
	m.ctrl.SetSearchTerm(m.search.Value())
	m.table = m.table.SetRecords(m.ctrl.View())

	return m, cmd
}

func (m model) View() string {
	view := m.ctrl.View()
	state := m.ctrl.State()

	title := titleStyle.Render(fmt.Sprintf("%s  %d of %d", m.ctrl.Kind().Name, len(view), m.ctrl.Total()))
	filters := filtersStyle.Render(state.String())

	var helpView string
	if m.searching {
		helpView = m.help.View(m.searchKeys)
	} else {
		helpView = m.help.View(m.keys)
	}

	parts := []string{title, filters, m.table.View()}
	if m.searching || state.SearchTerm != "" {
		parts = append(parts, m.search.View())
	}
	if m.err != nil {
		parts = append(parts, errorStyle.Render(m.err.Error()))
	}
	parts = append(parts, helpView)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m model) statuses() []string {
	return append([]string{string(filter.StatusAll)}, m.ctrl.Kind().Statuses...)
}

func (m model) facets() []string {
	return append([]string{string(filter.StatusAll)}, m.ctrl.FacetValues()...)
}

func ranges() []string {
	out := make([]string, len(filter.DateRanges))
	for i, r := range filter.DateRanges {
		out[i] = string(r)
	}
	return out
}

func orders() []string {
	out := make([]string, len(filter.PriceOrders))
	for i, o := range filter.PriceOrders {
		out[i] = string(o)
	}
	return out
}

// cycle returns the value after current in values, wrapping around. An
// unknown current value restarts at the first one.
func cycle(values []string, current string) string {
	if len(values) == 0 {
		return current
	}

	for i, v := range values {
		if strings.EqualFold(v, current) {
			return values[(i+1)%len(values)]
		}
	}

	return values[0]
}
