package logout

import (
	"context"
	"flag"
	"fmt"

	"github.com/hostelhub/hostelctl/internal/cli"
)

type logoutCommand struct {
	purge bool
}

func NewCommand() cli.Command {
	return &logoutCommand{}
}

func (c *logoutCommand) Description() string {
	return "End the session and forget the stored token"
}

func (c *logoutCommand) SetFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.purge, "purge", false, "also drop saved presets and the local database tables")
}

func (c *logoutCommand) Run(ctx context.Context, env *cli.Env) error {
	if env.Client.Token() != "" {
		if err := env.Client.Logout(ctx); err != nil {
			env.Logger.Warn("Backend logout failed", "error", err)
		}
	}

	if err := env.Storage.DeleteSession(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	if c.purge {
		if err := env.Storage.Purge(ctx); err != nil {
			return fmt.Errorf("failed to purge local data: %w", err)
		}
		fmt.Fprintln(env.Out, "logged out; local data purged")
		return nil
	}

	fmt.Fprintln(env.Out, "logged out")
	return nil
}
