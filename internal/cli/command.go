package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hostelhub/hostelctl/internal/client"
	"github.com/hostelhub/hostelctl/internal/config"
	"github.com/hostelhub/hostelctl/internal/controller"
	"github.com/hostelhub/hostelctl/internal/filter"
	"github.com/hostelhub/hostelctl/internal/listview"
	"github.com/hostelhub/hostelctl/internal/logger"
	"github.com/hostelhub/hostelctl/internal/resource"
	"github.com/hostelhub/hostelctl/internal/storage"
)

type Command interface {
	SetFlags(fset *flag.FlagSet)
	Description() string
	Run(ctx context.Context, env *Env) error
}

// Env is what main hands to every subcommand.
type Env struct {
	Config  *config.Config
	Storage storage.Storage
	Client  *client.Client
	Logger  *logger.Logger
	Out     io.Writer
}

// Kind resolves a list kind, applying the configured search fields.
func (env *Env) Kind(name string) (resource.Kind, error) {
	if name == "" {
		return resource.Kind{}, fmt.Errorf("you must provide a list kind (%s)", strings.Join(resource.Names(), ", "))
	}

	kind, err := resource.Lookup(name)
	if err != nil {
		return resource.Kind{}, err
	}

	return kind.WithSearchFields(env.Config.View(kind.Name).SearchFields), nil
}

// Controller builds a loaded controller for kind starting from state.
// Admin-only kinds go through the admin gate first.
func (env *Env) Controller(ctx context.Context, kind resource.Kind, state filter.State) (*controller.Controller, error) {
	if kind.AdminOnly {
		if _, err := env.Client.RequireAdmin(ctx); err != nil {
			return nil, fmt.Errorf("%s: %w", kind.Name, err)
		}
	}

	ctrl := controller.New(kind, env.Client, env.Logger, listview.WithState(state))
	if err := ctrl.Refresh(ctx); err != nil {
		return nil, err
	}

	return ctrl, nil
}

// StateFlags registers the filter flags shared by list, tui and preset.
type StateFlags struct {
	fs     *flag.FlagSet
	status string
	rng    string
	search string
	facet  string
	order  string
}

func (f *StateFlags) Register(fs *flag.FlagSet) {
	f.fs = fs
	fs.StringVar(&f.status, "status", "", "status filter (all or a status of the list)")
	fs.StringVar(&f.rng, "range", "", "date range: all, today, week or month")
	fs.StringVar(&f.search, "search", "", "case-insensitive search term")
	fs.StringVar(&f.facet, "facet", "", "secondary filter (room type, severity or priority)")
	fs.StringVar(&f.order, "sort", "", "price order: low or high")
}

// Apply overlays the flags that were set on the command line onto base.
func (f *StateFlags) Apply(base filter.State) filter.State {
	params := url.Values{}
	set := map[string]string{
		filter.ParamStatus: f.status,
		filter.ParamRange:  f.rng,
		filter.ParamSearch: f.search,
		filter.ParamFacet:  f.facet,
		filter.ParamSort:   f.order,
	}

	visited := map[string]bool{}
	if f.fs != nil {
		f.fs.Visit(func(fl *flag.Flag) { visited[fl.Name] = true })
	}

	for name, value := range set {
		if value != "" || visited[name] {
			params.Set(name, value)
		}
	}

	return filter.Overlay(base, params)
}

// ReadPayload decodes a JSON or YAML file into v, picked by extension.
func ReadPayload(path string, v any) error {
	if path == "" {
		return fmt.Errorf("you must provide a payload file")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read payload: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(content, v)
	default:
		err = json.Unmarshal(content, v)
	}
	if err != nil {
		return fmt.Errorf("failed to decode payload %s: %w", path, err)
	}

	return nil
}
