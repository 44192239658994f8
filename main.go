package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"golang.org/x/exp/maps"

	"github.com/hostelhub/hostelctl/internal/cli"
	"github.com/hostelhub/hostelctl/internal/cli/create"
	"github.com/hostelhub/hostelctl/internal/cli/dashboard"
	"github.com/hostelhub/hostelctl/internal/cli/delete"
	"github.com/hostelhub/hostelctl/internal/cli/list"
	"github.com/hostelhub/hostelctl/internal/cli/login"
	"github.com/hostelhub/hostelctl/internal/cli/logout"
	"github.com/hostelhub/hostelctl/internal/cli/preset"
	"github.com/hostelhub/hostelctl/internal/cli/review"
	"github.com/hostelhub/hostelctl/internal/cli/serve"
	"github.com/hostelhub/hostelctl/internal/cli/status"
	"github.com/hostelhub/hostelctl/internal/cli/tui"
	"github.com/hostelhub/hostelctl/internal/cli/update"
	"github.com/hostelhub/hostelctl/internal/client"
	"github.com/hostelhub/hostelctl/internal/config"
	"github.com/hostelhub/hostelctl/internal/logger"
	"github.com/hostelhub/hostelctl/internal/storage"
	"github.com/hostelhub/hostelctl/internal/storage/sqlite"
)

var configPath string

var subcommands = map[string]cli.Command{
	"list":   list.NewCommand(),
	"tui":    tui.NewCommand(),
	"serve":  serve.NewCommand(),
	"login":  login.NewCommand(),
	"logout": logout.NewCommand(),
	"preset": preset.NewCommand(),
	"create": create.NewCommand(),
	"update": update.NewCommand(),
	"delete": delete.NewCommand(),
	"review": review.NewCommand(),
	"status": status.NewCommand(),

	"dashboard": dashboard.NewCommand(),
}

var subcommandsFlagSets = map[string]*flag.FlagSet{}

func main() {
	if len(os.Args) < 2 {
		fmt.Printf("subcommand is required\n")
		printUsage()

		os.Exit(1)
	}

	defaultConfig := os.Getenv("HOSTEL_CONFIG")
	if defaultConfig == "" {
		defaultConfig = "hostelctl.toml"
	}

	for c, cLogic := range subcommands {
		fset := flag.NewFlagSet(c, flag.ExitOnError)
		fset.StringVar(&configPath, "c", defaultConfig, "Configuration file (TOML, or YAML for .yaml/.yml)")

		cLogic.SetFlags(fset)

		subcommandsFlagSets[c] = fset
	}

	commandName := os.Args[1]
	command, ok := subcommands[commandName]
	if !ok {
		if strings.Contains(commandName, "help") {
			printHelp()

			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "unsupported command %s.\nUse 'help' command to print information about supported commands\n", commandName)
		os.Exit(1)
	}

	// ExitOnError makes Parse exit on bad flags.
	_ = subcommandsFlagSets[commandName].Parse(os.Args[2:])

	os.Exit(run(commandName, command))
}

func run(name string, command cli.Command) int {
	conf, err := config.Parse(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to parse the configuration. %s\n", err.Error())
		return 1
	}

	appLogger := logger.New(conf.Logger)
	appLogger.Debug("Using database", "path", conf.DB.Source)

	store, err := sqlite.New(conf.DB)
	if err != nil {
		appLogger.Fatal("Unable to open the database", "error", err.Error())
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			appLogger.Error("Error closing storage", "error", closeErr)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = store.ApplyMigrations(ctx, appLogger); err != nil {
		appLogger.Error("Unable to create schema", "error", err)
		return 1
	}

	var opts []client.Option
	session, err := store.GetSession(ctx)
	switch {
	case err == nil:
		opts = append(opts, client.WithToken(session.Token()))
	case !errors.As(err, new(*storage.NotFoundError)):
		appLogger.Warn("Unable to read the stored session", "error", err)
	}

	env := &cli.Env{
		Config:  conf,
		Storage: store,
		Client:  client.New(conf.API, appLogger, opts...),
		Logger:  appLogger.With("command", name),
		Out:     os.Stdout,
	}

	if err = command.Run(ctx, env); err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			fmt.Fprintln(os.Stderr, "not logged in: run 'hostelctl login' first")
		}
		fmt.Fprintf(os.Stderr, "%s: %s\n", name, err)
		return 1
	}

	return 0
}

func printHelp() {
	printUsage()

	names := maps.Keys(subcommands)
	sort.Strings(names)

	for _, c := range names {
		fmt.Printf("subcommand <%s>: %s\n", c, subcommands[c].Description())
		subcommandsFlagSets[c].PrintDefaults()
		fmt.Println()
	}
}

func printUsage() {
	fmt.Printf("usage: hostelctl <subcommand> [flags]\n\n")
}
