package serve

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/hostelhub/hostelctl/internal/cli"
	"github.com/hostelhub/hostelctl/internal/router"
)

const (
	defaultAddr    = ":8090"
	defaultTimeout = 3
	shutdownGrace  = 5 * time.Second
)

type serveCommand struct {
	addr    string
	timeout int

	// ready receives the bound address once the listener is open.
	ready chan<- string
}

func NewCommand() cli.Command {
	return &serveCommand{}
}

func (c *serveCommand) Description() string {
	return "Serve filtered list views as JSON"
}

func (c *serveCommand) SetFlags(fs *flag.FlagSet) {
	addr := os.Getenv("HOSTEL_ADDR")
	if addr == "" {
		addr = defaultAddr
	}

	fs.StringVar(&c.addr, "addr", addr, "listen address")
	fs.IntVar(&c.timeout, "t", defaultTimeout, "read header timeout in seconds")
}

// Run serves until ctx is cancelled, then shuts the server down gracefully.
func (c *serveCommand) Run(ctx context.Context, env *cli.Env) error {
	server := &http.Server{
		ReadHeaderTimeout: time.Duration(c.timeout) * time.Second,
		Handler:           router.New(env.Client, env.Storage, env.Config, env.Logger),
	}

	listener, err := net.Listen("tcp", c.addr)
	if err != nil {
		return err
	}

	env.Logger.Info("Serving list views", "addr", listener.Addr().String())
	if c.ready != nil {
		c.ready <- listener.Addr().String()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(listener)
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	env.Logger.Info("Shutting down")
	return server.Shutdown(shutdownCtx)
}
