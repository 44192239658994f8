package status

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/hostelhub/hostelctl/internal/cli"
	"github.com/hostelhub/hostelctl/internal/resource"
)

type statusCommand struct {
	kind   string
	id     string
	status string
}

func NewCommand() cli.Command {
	return &statusCommand{}
}

func (c *statusCommand) Description() string {
	return "Move a complaint or maintenance request to another status"
}

func (c *statusCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.kind, "kind", resource.MaintenanceQueue.Name, "list the record belongs to")
	fs.StringVar(&c.id, "id", "", "id of the record")
	fs.StringVar(&c.status, "status", "", "new status, e.g. in-progress or completed")
}

func (c *statusCommand) Run(ctx context.Context, env *cli.Env) error {
	if c.id == "" {
		return fmt.Errorf("you must provide the id of the record")
	}

	kind, err := env.Kind(c.kind)
	if err != nil {
		return err
	}

	switch {
	case kind.Name == resource.Applications.Name || kind.Name == resource.MyApplications.Name:
		return fmt.Errorf("applications are approved or rejected with the review command")
	case !kind.HasStatus():
		return fmt.Errorf("%s records have no status", kind.Name)
	case !kind.HasStatusValue(c.status):
		return fmt.Errorf("invalid status %q for %s (expected one of: %s)",
			c.status, kind.Name, strings.Join(kind.Statuses, ", "))
	}

	ctrl, err := env.Controller(ctx, kind, env.Config.View(kind.Name).State())
	if err != nil {
		return err
	}

	updated, err := ctrl.UpdateStatus(ctx, c.id, c.status)
	if err != nil {
		return fmt.Errorf("failed to update %s %s: %w", kind.Name, c.id, err)
	}

	fmt.Fprintf(env.Out, "%s %s is now %s; %s view: %d records\n",
		kind.Name, c.id, updated.Status(), kind.Name, len(ctrl.View()))
	return nil
}
