package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/ngocminh-dev/tcms-api/internal/client"
	"github.com/ngocminh-dev/tcms-api/internal/guard"
	"github.com/ngocminh-dev/tcms-api/internal/session"
	appErrors "github.com/ngocminh-dev/tcms-api/pkg/errors"
)

// App is the shared dependency set for all admin commands.
type App struct {
	Session *session.Store
	Client  *client.Client
	Out     io.Writer
	ErrOut  io.Writer
}

// Token exposes the current bearer token for the REST client.
func (a *App) Token() string {
	return a.Session.Current().Token
}

// authorize evaluates the access rules for a protected command. When the
// session does not satisfy them the command is not run: an unauthenticated
// user is told to log in, an insufficient role lands on the dashboard view
// instead of the requested one.
func (a *App) authorize(ctx context.Context, req guard.Requirements) bool {
	decision := guard.Evaluate(a.Session.Current(), req)
	if decision.Render {
		return true
	}
	switch decision.Redirect {
	case guard.RouteLogin:
		fmt.Fprintln(a.ErrOut, "not logged in: run `tcmsadm login` first")
	case guard.RouteDashboard:
		fmt.Fprintln(a.ErrOut, "permission denied for this command; showing dashboard instead")
		a.showDashboard(ctx)
	}
	return false
}

func (a *App) showDashboard(ctx context.Context) {
	summary, err := a.Client.Dashboard(ctx)
	if err != nil {
		a.reportError(err)
		return
	}
	w := tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "students\t%d\n", summary.TotalStudents)
	fmt.Fprintf(w, "courses\t%d\n", summary.TotalCourses)
	fmt.Fprintf(w, "enrollments\t%d\n", summary.TotalEnrollments)
	fmt.Fprintf(w, "pending certificates\t%d\n", summary.PendingCertificates)
	_ = w.Flush()
}

// reportError prints one normalized failure. There is no retry: one failed
// call is one reported failure.
func (a *App) reportError(err error) {
	appErr := appErrors.FromError(err)
	fmt.Fprintf(a.ErrOut, "error: %s (status %d)\n", appErr.Message, appErr.Status)
}

func (a *App) fail(err error) subcommands.ExitStatus {
	a.reportError(err)
	return subcommands.ExitFailure
}

// Register wires every admin command into the commander.
func Register(cdr *subcommands.Commander, app *App) {
	cdr.Register(&loginCmd{app: app}, "session")
	cdr.Register(&logoutCmd{app: app}, "session")
	cdr.Register(&whoamiCmd{app: app}, "session")
	cdr.Register(&dashboardCmd{app: app}, "reporting")
	cdr.Register(&studentsCmd{app: app}, "roster")
	cdr.Register(&coursesCmd{app: app}, "roster")
	cdr.Register(&enrollCmd{app: app}, "roster")
	cdr.Register(&historyCmd{app: app}, "roster")
	cdr.Register(&certifyCmd{app: app}, "roster")
}
