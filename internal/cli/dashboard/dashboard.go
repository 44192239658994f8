package dashboard

import (
	"context"
	"embed"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/hostelhub/hostelctl/internal/cli"
	"github.com/hostelhub/hostelctl/internal/client"
	"github.com/hostelhub/hostelctl/internal/controller"
	"github.com/hostelhub/hostelctl/internal/filter"
	"github.com/hostelhub/hostelctl/internal/resource"
)

//go:embed templates/dashboard.tmpl
var content embed.FS

var (
	adminKinds = []string{
		resource.Applications.Name,
		resource.Rooms.Name,
		resource.Complaints.Name,
		resource.MaintenanceQueue.Name,
	}
	residentKinds = []string{
		resource.MyApplications.Name,
		resource.Hostels.Name,
		resource.Notifications.Name,
		resource.Complaints.Name,
		resource.Maintenance.Name,
	}
)

type dashboardCommand struct {
	kinds string
}

type count struct {
	Label string
	Count int
}

type summary struct {
	Kind   string
	Total  int
	Counts []count
}

func NewCommand() cli.Command {
	return &dashboardCommand{}
}

func (c *dashboardCommand) Description() string {
	return "Show record counts per status for several lists at once"
}

func (c *dashboardCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.kinds, "kinds", "", "comma separated lists to summarise (defaults depend on your role)")
}

func (c *dashboardCommand) Run(ctx context.Context, env *cli.Env) error {
	user, err := env.Client.Me(ctx)
	if err != nil {
		return err
	}

	names := residentKinds
	if user.IsAdmin() {
		names = adminKinds
	}
	if c.kinds != "" {
		names = strings.Split(c.kinds, ",")
	}

	kinds := make([]resource.Kind, 0, len(names))
	for _, name := range names {
		kind, kindErr := env.Kind(name)
		if kindErr != nil {
			return kindErr
		}
		if kind.AdminOnly && !user.IsAdmin() {
			return fmt.Errorf("%s: %w", kind.Name, client.ErrForbidden)
		}
		kinds = append(kinds, kind)
	}

	collections, err := env.Client.FetchAll(ctx, kinds...)
	if err != nil {
		return err
	}

	summaries := make([]summary, 0, len(kinds))
	for _, kind := range kinds {
		ctrl := controller.New(kind, env.Client, env.Logger)
		ctrl.Load(collections[kind.Name])
		summaries = append(summaries, summarise(ctrl))
	}

	return render(env.Out, summaries)
}

// summarise counts the loaded records per status, or per facet value for
// kinds without a status.
func summarise(ctrl *controller.Controller) summary {
	kind := ctrl.Kind()
	s := summary{Kind: kind.Name, Total: ctrl.Total()}

	switch {
	case kind.HasStatus():
		for _, status := range kind.Statuses {
			ctrl.SetStatus(status)
			s.Counts = append(s.Counts, count{Label: status, Count: len(ctrl.FilteredView())})
		}
	case kind.FacetField != "":
		for _, value := range ctrl.FacetValues() {
			ctrl.SetFacet(value)
			s.Counts = append(s.Counts, count{
				Label: kind.FacetField + "=" + value,
				Count: len(ctrl.FilteredView()),
			})
		}
	}
	ctrl.SetState(filter.DefaultState())

	return s
}

func render(out io.Writer, summaries []summary) error {
	tmpl, err := template.ParseFS(content, "templates/dashboard.tmpl")
	if err != nil {
		return err
	}

	return tmpl.Execute(out, summaries)
}
