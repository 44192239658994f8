package preset

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/hostelhub/hostelctl/internal/cli"
	"github.com/hostelhub/hostelctl/internal/resource"
)

type presetCommand struct {
	kind   string
	name   string
	list   bool
	delete bool
	state  cli.StateFlags
}

func NewCommand() cli.Command {
	return &presetCommand{}
}

func (c *presetCommand) Description() string {
	return "Save, list or delete named filter presets"
}

func (c *presetCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.kind, "kind", "", "list the preset applies to ("+strings.Join(resource.Names(), ", ")+")")
	fs.StringVar(&c.name, "name", "", "preset name")
	fs.BoolVar(&c.list, "list", false, "list the presets of the kind")
	fs.BoolVar(&c.delete, "delete", false, "delete the named preset")
	c.state.Register(fs)
}

func (c *presetCommand) Run(ctx context.Context, env *cli.Env) error {
	kind, err := env.Kind(c.kind)
	if err != nil {
		return err
	}

	if c.list {
		return c.listPresets(ctx, env, kind)
	}

	if c.name == "" {
		return fmt.Errorf("you must provide a preset name")
	}

	if c.delete {
		deleted, deleteErr := env.Storage.DeletePreset(ctx, kind.Name, c.name)
		if deleteErr != nil {
			return deleteErr
		}
		if deleted == 0 {
			return fmt.Errorf("no preset %q for %s", c.name, kind.Name)
		}
		fmt.Fprintf(env.Out, "deleted preset %s\n", c.name)
		return nil
	}

	state := c.state.Apply(env.Config.View(kind.Name).State())
	preset, err := env.Storage.SavePreset(ctx, kind.Name, c.name, state)
	if err != nil {
		return fmt.Errorf("failed to save preset: %w", err)
	}

	fmt.Fprintf(env.Out, "saved preset %s for %s: %s\n", preset.Name(), kind.Name, preset.State())
	return nil
}

func (c *presetCommand) listPresets(ctx context.Context, env *cli.Env, kind resource.Kind) error {
	presets, err := env.Storage.ListPresets(ctx, kind.Name)
	if err != nil {
		return err
	}

	if len(presets) == 0 {
		fmt.Fprintf(env.Out, "no presets for %s\n", kind.Name)
		return nil
	}

	for _, p := range presets {
		fmt.Fprintf(env.Out, "%s\t%s\t%s\n", p.Name(), p.State(), p.CreatedAt().Local().Format(time.DateOnly))
	}
	return nil
}
