package create

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/hostelhub/hostelctl/internal/cli"
	"github.com/hostelhub/hostelctl/internal/resource"
)

type createCommand struct {
	kind string
	file string
}

func NewCommand() cli.Command {
	return &createCommand{}
}

func (c *createCommand) Description() string {
	return "Create a record from a JSON or YAML payload"
}

func (c *createCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.kind, "kind", "", "list to add to ("+strings.Join(resource.Names(), ", ")+")")
	fs.StringVar(&c.file, "f", "", "payload file (.json, .yaml or .yml)")
}

func (c *createCommand) Run(ctx context.Context, env *cli.Env) error {
	kind, err := env.Kind(c.kind)
	if err != nil {
		return err
	}

	if kind.ReadOnly() {
		return fmt.Errorf("%s is a read-only list", kind.Name)
	}

	form := kind.NewForm()
	if err = cli.ReadPayload(c.file, form); err != nil {
		return err
	}

	ctrl, err := env.Controller(ctx, kind, env.Config.View(kind.Name).State())
	if err != nil {
		return err
	}

	created, err := ctrl.Create(ctx, form)
	if err != nil {
		return fmt.Errorf("failed to create %s record: %w", kind.Name, err)
	}

	id, _ := created.ID()
	fmt.Fprintf(env.Out, "created %s; %s view: %d records\n", id, kind.Name, len(ctrl.View()))
	return nil
}
