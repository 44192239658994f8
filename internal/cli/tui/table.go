package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hostelhub/hostelctl/internal/record"
	"github.com/hostelhub/hostelctl/internal/resource"
)

type viewTable struct {
	kind  resource.Kind
	table table.Model
}

func newViewTable(kind resource.Kind, width int) viewTable {
	t := table.New(
		table.WithColumns(createColumns(kind, width)),
		table.WithFocused(true),
	)

	return viewTable{
		kind:  kind,
		table: t,
	}
}

func (v viewTable) SetRecords(records []record.Record) viewTable {
	rows := make([]table.Row, 0, len(records))
	for _, r := range records {
		row := make(table.Row, len(v.kind.Columns))
		for i, column := range v.kind.Columns {
			row[i] = v.kind.Cell(r, column)
		}
		rows = append(rows, row)
	}

	v.table.SetRows(rows)
	if v.table.Cursor() >= len(rows) {
		v.table.SetCursor(max(len(rows)-1, 0))
	}

	return v
}

func (v viewTable) Cursor() int {
	return v.table.Cursor()
}

func (v viewTable) Update(msg tea.Msg) (viewTable, tea.Cmd) {
	var cmd tea.Cmd
	v.table.Focus()
	v.table, cmd = v.table.Update(msg)
	return v, cmd
}

func (v viewTable) UpdateDimensions(width, height int) viewTable {
	v.table.SetColumns(createColumns(v.kind, width))
	v.table.SetWidth(width)
	v.table.SetHeight(height)

	return v
}

func (v viewTable) View() string {
	return v.table.View()
}

func createColumns(kind resource.Kind, width int) []table.Column {
	w := width / max(len(kind.Columns), 1)

	columns := make([]table.Column, len(kind.Columns))
	for i, name := range kind.Columns {
		columns[i] = table.Column{Title: strings.ToUpper(name), Width: w}
	}

	return columns
}
