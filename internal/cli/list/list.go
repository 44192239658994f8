package list

import (
	"context"
	"embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"path"
	"strings"
	"text/template"

	"github.com/hostelhub/hostelctl/internal/cli"
	"github.com/hostelhub/hostelctl/internal/export"
	"github.com/hostelhub/hostelctl/internal/filter"
	"github.com/hostelhub/hostelctl/internal/record"
	"github.com/hostelhub/hostelctl/internal/resource"
	"github.com/hostelhub/hostelctl/internal/storage"
	"github.com/hostelhub/hostelctl/internal/util"
)

//go:embed templates/*
var content embed.FS

const columnGap = "  "

const (
	outputTable = "table"
	outputCSV   = "csv"
	outputJSON  = "json"
)

type listCommand struct {
	kind    string
	preset  string
	verbose bool
	output  string
	state   cli.StateFlags
}

func NewCommand() cli.Command {
	return &listCommand{}
}

func (c *listCommand) Description() string {
	return "Print a filtered list"
}

func (c *listCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.kind, "kind", "", "list to show ("+strings.Join(resource.Names(), ", ")+")")
	fs.StringVar(&c.preset, "preset", "", "start from a saved preset")
	fs.BoolVar(&c.verbose, "v", false, "print every field of each record")
	fs.StringVar(&c.output, "o", outputTable, "output format: table, csv or json")
	c.state.Register(fs)
}

func (c *listCommand) Run(ctx context.Context, env *cli.Env) error {
	switch c.output {
	case outputTable, outputCSV, outputJSON:
	default:
		return fmt.Errorf("unknown output format %q", c.output)
	}

	kind, err := env.Kind(c.kind)
	if err != nil {
		return err
	}

	state := env.Config.View(kind.Name).State()
	if c.preset != "" {
		preset, presetErr := env.Storage.GetPreset(ctx, kind.Name, c.preset)
		if presetErr != nil {
			var notFound *storage.NotFoundError
			if errors.As(presetErr, &notFound) {
				return fmt.Errorf("no preset %q for %s", c.preset, kind.Name)
			}
			return presetErr
		}
		state = preset.State()
	}
	state = c.state.Apply(state)

	ctrl, err := env.Controller(ctx, kind, state)
	if err != nil {
		return err
	}

	switch c.output {
	case outputCSV:
		return export.CSV(env.Out, kind, ctrl.View())
	case outputJSON:
		return export.JSON(env.Out, ctrl.View())
	default:
		return Render(env.Out, kind, ctrl.View(), ctrl.Total(), ctrl.State(), c.verbose)
	}
}

type row struct {
	Line    string
	Details []string
}

type report struct {
	Kind    string
	Count   int
	Total   int
	Filters string
	Header  string
	Rows    []row
	Verbose bool
}

// Render prints view as an aligned table with the status column coloured.
func Render(out io.Writer, kind resource.Kind, view []record.Record, total int, state filter.State, verbose bool) error {
	cells := make([][]string, len(view))
	widths := make([]int, len(kind.Columns))
	for i, column := range kind.Columns {
		widths[i] = len(column)
	}

	for i, r := range view {
		cells[i] = make([]string, len(kind.Columns))
		for j, column := range kind.Columns {
			cells[i][j] = kind.Cell(r, column)
			widths[j] = max(widths[j], len(cells[i][j]))
		}
	}

	header := make([]string, len(kind.Columns))
	for j, column := range kind.Columns {
		header[j] = pad(strings.ToUpper(column), widths[j])
	}

	rows := make([]row, len(view))
	for i, r := range view {
		line := make([]string, len(kind.Columns))
		for j, column := range kind.Columns {
			line[j] = pad(cells[i][j], widths[j])
			if column == record.FieldStatus {
				line[j] = strings.Replace(line[j], cells[i][j], util.ColorStatus(cells[i][j]), 1)
			}
		}
		rows[i] = row{Line: strings.TrimRight(strings.Join(line, columnGap), " ")}

		if verbose {
			for _, field := range r.Fields() {
				value, _ := r.String(field)
				rows[i].Details = append(rows[i].Details, fmt.Sprintf("%s: %s", field, value))
			}
		}
	}

	return renderTemplate(out, "list.tmpl", report{
		Kind:    kind.Name,
		Count:   len(view),
		Total:   total,
		Filters: state.String(),
		Header:  strings.TrimRight(strings.Join(header, columnGap), " "),
		Rows:    rows,
		Verbose: verbose,
	})
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func renderTemplate(out io.Writer, templateName string, value any) error {
	tmpl, err := content.ReadFile(path.Join("templates", templateName))
	if err != nil {
		return err
	}
	t, err := template.New(templateName).Parse(string(tmpl))
	if err != nil {
		return err
	}

	return t.Execute(out, value)
}
