package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/ngocminh-dev/tcms-api/internal/guard"
)

type logoutCmd struct {
	app *App
}

func (*logoutCmd) Name() string     { return "logout" }
func (*logoutCmd) Synopsis() string { return "clear the stored session" }
func (*logoutCmd) Usage() string {
	return `logout:
  Forget the stored token, username and role. Running it while already
  logged out succeeds and changes nothing.
`
}
func (*logoutCmd) SetFlags(*flag.FlagSet) {}

func (c *logoutCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.app.Session.Logout(); err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintln(c.app.Out, "logged out")
	return subcommands.ExitSuccess
}

type whoamiCmd struct {
	app *App
}

func (*whoamiCmd) Name() string     { return "whoami" }
func (*whoamiCmd) Synopsis() string { return "show the current identity" }
func (*whoamiCmd) Usage() string {
	return `whoami:
  Print the stored username and the localized role label.
`
}
func (*whoamiCmd) SetFlags(*flag.FlagSet) {}

func (c *whoamiCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	state := c.app.Session.Current()
	if !state.IsAuthenticated() {
		fmt.Fprintln(c.app.Out, "not logged in")
		return subcommands.ExitSuccess
	}
	fmt.Fprintf(c.app.Out, "%s (%s)\n", state.Username, state.Role.DisplayName())
	return subcommands.ExitSuccess
}

type dashboardCmd struct {
	app *App
}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "show the landing page counters" }
func (*dashboardCmd) Usage() string {
	return `dashboard:
  Show total students, courses, enrollments and pending certificates.
`
}
func (*dashboardCmd) SetFlags(*flag.FlagSet) {}

func (c *dashboardCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.app.authorize(ctx, guard.Requirements{}) {
		return subcommands.ExitFailure
	}
	c.app.showDashboard(ctx)
	return subcommands.ExitSuccess
}
