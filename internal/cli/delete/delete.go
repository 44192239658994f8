package delete

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/hostelhub/hostelctl/internal/cli"
	"github.com/hostelhub/hostelctl/internal/resource"
)

type deleteCommand struct {
	kind string
	id   string
}

func NewCommand() cli.Command {
	return &deleteCommand{}
}

func (c *deleteCommand) Description() string {
	return "Delete a record and drop it from the list"
}

func (c *deleteCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.kind, "kind", "", "list the record belongs to ("+strings.Join(resource.Names(), ", ")+")")
	fs.StringVar(&c.id, "id", "", "id of the record to delete")
}

func (c *deleteCommand) Run(ctx context.Context, env *cli.Env) error {
	if c.id == "" {
		return fmt.Errorf("you must provide the id of the record to delete")
	}

	kind, err := env.Kind(c.kind)
	if err != nil {
		return err
	}

	ctrl, err := env.Controller(ctx, kind, env.Config.View(kind.Name).State())
	if err != nil {
		return err
	}

	if err = ctrl.Delete(ctx, c.id); err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", kind.Name, c.id, err)
	}

	fmt.Fprintf(env.Out, "deleted %s; %s view: %d records\n", c.id, kind.Name, len(ctrl.View()))
	return nil
}
