package tui

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	Status  key.Binding
	Range   key.Binding
	Facet   key.Binding
	Price   key.Binding
	Search  key.Binding
	Reset   key.Binding
	Refresh key.Binding
	Up      key.Binding
	Down    key.Binding
	Exit    key.Binding
}

func (k keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.Status, k.Range, k.Facet, k.Price, k.Search, k.Refresh, k.Exit}
}

func (k keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Status, k.Range, k.Facet, k.Price},
		{k.Search, k.Reset, k.Refresh, k.Exit},
	}
}

type searchKeymap struct {
	Apply  key.Binding
	Cancel key.Binding
}

func (k searchKeymap) ShortHelp() []key.Binding {
	return []key.Binding{k.Apply, k.Cancel}
}

func (k searchKeymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Apply, k.Cancel}}
}

func defaultKeyMap() keymap {
	return keymap{
		Status: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "status"),
		),
		Range: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "date range"),
		),
		Facet: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "facet"),
		),
		Price: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "price order"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Reset: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear filters"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Exit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q/ctrl+c", "exit"),
		),
	}
}

func defaultSearchKeyMap() searchKeymap {
	return searchKeymap{
		Apply: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}
