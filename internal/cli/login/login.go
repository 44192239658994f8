package login

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hostelhub/hostelctl/internal/cli"
	"github.com/hostelhub/hostelctl/internal/client"
)

const sessionTTL = 7 * 24 * time.Hour

type loginCommand struct {
	email    string
	password string
}

func NewCommand() cli.Command {
	return &loginCommand{}
}

func (c *loginCommand) Description() string {
	return "Log in and keep the session for later commands"
}

func (c *loginCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.email, "email", "", "account email")
	fs.StringVar(&c.password, "password", os.Getenv("HOSTEL_PASSWORD"), "account password (defaults to $HOSTEL_PASSWORD)")
}

func (c *loginCommand) Run(ctx context.Context, env *cli.Env) error {
	token, user, err := env.Client.Login(ctx, client.Credentials{Email: c.email, Password: c.password})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	expiresAt := time.Now().Add(sessionTTL)
	if _, err = env.Storage.SaveSession(ctx, token, user.Name, user.Role, expiresAt); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	env.Logger.Info("Session stored", "user", user.Name, "expires_at", expiresAt.Format(time.RFC3339))
	fmt.Fprintf(env.Out, "logged in as %s (%s)\n", user.Name, user.Role)

	return nil
}
