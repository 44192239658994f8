package review

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/hostelhub/hostelctl/internal/cli"
	"github.com/hostelhub/hostelctl/internal/resource"
)

type reviewCommand struct {
	id     string
	status string
	room   int64
}

func NewCommand() cli.Command {
	return &reviewCommand{}
}

func (c *reviewCommand) Description() string {
	return "Approve or reject a room application (admin)"
}

func (c *reviewCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.id, "id", "", "application id")
	fs.StringVar(&c.status, "status", "", "approved or rejected")
	fs.Int64Var(&c.room, "room", 0, "room to assign when approving")
}

// Run goes through the admin gate before submitting the review.
func (c *reviewCommand) Run(ctx context.Context, env *cli.Env) error {
	if c.id == "" {
		return fmt.Errorf("you must provide the id of the application to review")
	}

	kind, err := env.Kind(resource.Applications.Name)
	if err != nil {
		return err
	}

	ctrl, err := env.Controller(ctx, kind, env.Config.View(kind.Name).State())
	if err != nil {
		return err
	}

	form := resource.ReviewForm{
		Status: strings.ToLower(strings.TrimSpace(c.status)),
		RoomID: c.room,
	}
	if _, err = ctrl.Update(ctx, c.id, form); err != nil {
		return fmt.Errorf("failed to review application %s: %w", c.id, err)
	}

	fmt.Fprintf(env.Out, "application %s %s; %s view: %d records\n", c.id, form.Status, kind.Name, len(ctrl.View()))
	return nil
}
