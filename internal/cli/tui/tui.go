package tui

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hostelhub/hostelctl/internal/cli"
	"github.com/hostelhub/hostelctl/internal/resource"
)

type tuiCommand struct {
	kind  string
	state cli.StateFlags
}

func NewCommand() cli.Command {
	return &tuiCommand{}
}

func (c *tuiCommand) Description() string {
	return "Interactive terminal user interface"
}

func (c *tuiCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.kind, "kind", "", "list to browse ("+strings.Join(resource.Names(), ", ")+")")
	c.state.Register(fs)
}

func (c *tuiCommand) Run(ctx context.Context, env *cli.Env) error {
	kind, err := env.Kind(c.kind)
	if err != nil {
		return err
	}

	if len(os.Getenv("HOSTEL_DEBUG")) > 0 {
		f, logErr := tea.LogToFile("debug.log", "debug")
		if logErr != nil {
			return fmt.Errorf("failed to log to file: %w", logErr)
		}
		defer f.Close()
	}

	ctrl, err := env.Controller(ctx, kind, c.state.Apply(env.Config.View(kind.Name).State()))
	if err != nil {
		return err
	}

	p := tea.NewProgram(newModel(ctx, ctrl), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err = p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
