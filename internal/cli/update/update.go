package update

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/hostelhub/hostelctl/internal/cli"
	"github.com/hostelhub/hostelctl/internal/record"
	"github.com/hostelhub/hostelctl/internal/resource"
)

type updateCommand struct {
	kind string
	id   string
	file string
}

func NewCommand() cli.Command {
	return &updateCommand{}
}

func (c *updateCommand) Description() string {
	return "Update fields of a record from a JSON or YAML payload"
}

func (c *updateCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.kind, "kind", "", "list the record belongs to ("+strings.Join(resource.Names(), ", ")+")")
	fs.StringVar(&c.id, "id", "", "id of the record to update")
	fs.StringVar(&c.file, "f", "", "payload file with the fields to change (.json, .yaml or .yml)")
}

func (c *updateCommand) Run(ctx context.Context, env *cli.Env) error {
	if c.id == "" {
		return fmt.Errorf("you must provide the id of the record to update")
	}

	kind, err := env.Kind(c.kind)
	if err != nil {
		return err
	}

	patch := record.Record{}
	if err = cli.ReadPayload(c.file, &patch); err != nil {
		return err
	}
	if len(patch) == 0 {
		return fmt.Errorf("payload %s has no fields to update", c.file)
	}

	ctrl, err := env.Controller(ctx, kind, env.Config.View(kind.Name).State())
	if err != nil {
		return err
	}

	if _, err = ctrl.Update(ctx, c.id, patch); err != nil {
		return fmt.Errorf("failed to update %s %s: %w", kind.Name, c.id, err)
	}

	fmt.Fprintf(env.Out, "updated %s; %s view: %d records\n", c.id, kind.Name, len(ctrl.View()))
	return nil
}
