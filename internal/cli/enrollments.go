package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/ngocminh-dev/tcms-api/internal/guard"
	"github.com/ngocminh-dev/tcms-api/internal/models"
)

type enrollCmd struct {
	app       *App
	studentID int64
	courseID  int64
}

func (*enrollCmd) Name() string     { return "enroll" }
func (*enrollCmd) Synopsis() string { return "enroll a student on a course" }
func (*enrollCmd) Usage() string {
	return `enroll -student ID -course ID:
  Register the student on the course. The enrollment starts with a
  PENDING certificate status. Requires the admin or staff role.
`
}

func (c *enrollCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.studentID, "student", 0, "student id")
	f.Int64Var(&c.courseID, "course", 0, "course id")
}

func (c *enrollCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.app.authorize(ctx, guard.Requirements{RequireAdminOrStaff: true}) {
		return subcommands.ExitFailure
	}
	if c.studentID <= 0 || c.courseID <= 0 {
		fmt.Fprintln(c.app.ErrOut, "enroll: -student and -course are required")
		return subcommands.ExitUsageError
	}
	enrollment, err := c.app.Client.Enroll(ctx, c.studentID, c.courseID)
	if err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintf(c.app.Out, "enrolled %s on %s (enrollment %d, status %s)\n",
		enrollment.StudentFullName, enrollment.CourseCode, enrollment.ID, enrollment.Status)
	return subcommands.ExitSuccess
}

type historyCmd struct {
	app       *App
	studentID int64
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "show a student's training history" }
func (*historyCmd) Usage() string {
	return `history -student ID:
  List every course the student was enrolled on together with the
  certificate outcome. Requires the admin or staff role.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.studentID, "student", 0, "student id")
}

func (c *historyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.app.authorize(ctx, guard.Requirements{RequireAdminOrStaff: true}) {
		return subcommands.ExitFailure
	}
	if c.studentID <= 0 {
		fmt.Fprintln(c.app.ErrOut, "history: -student is required")
		return subcommands.ExitUsageError
	}
	history, err := c.app.Client.History(ctx, c.studentID)
	if err != nil {
		return c.app.fail(err)
	}
	w := tabwriter.NewWriter(c.app.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ENROLLMENT\tCOURSE\tSTART\tEND\tSTATUS")
	for _, h := range history {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			h.EnrollmentID, h.CourseCode, h.CourseStartDate, h.CourseEndDate, h.Status)
	}
	_ = w.Flush()
	return subcommands.ExitSuccess
}

type certifyCmd struct {
	app          *App
	enrollmentID int64
	status       string
	download     string
}

func (*certifyCmd) Name() string     { return "certify" }
func (*certifyCmd) Synopsis() string { return "issue a certificate decision" }
func (*certifyCmd) Usage() string {
	return `certify -enrollment ID -status PENDING|PASS|FAIL [-download FILE]:
  Apply a certificate decision to the enrollment. With -download, fetch
  the rendered certificate document afterwards (PASS only). Requires the
  admin role.
`
}

func (c *certifyCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.enrollmentID, "enrollment", 0, "enrollment id")
	f.StringVar(&c.status, "status", "", "certificate status (PENDING, PASS or FAIL)")
	f.StringVar(&c.download, "download", "", "write the certificate PDF to this file")
}

func (c *certifyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.app.authorize(ctx, guard.Requirements{RequireAdmin: true}) {
		return subcommands.ExitFailure
	}
	if c.enrollmentID <= 0 {
		fmt.Fprintln(c.app.ErrOut, "certify: -enrollment is required")
		return subcommands.ExitUsageError
	}
	status := models.CertificateStatus(c.status)
	if !status.Valid() {
		fmt.Fprintln(c.app.ErrOut, "certify: -status must be PENDING, PASS or FAIL")
		return subcommands.ExitUsageError
	}
	enrollment, err := c.app.Client.IssueCertificate(ctx, c.enrollmentID, status)
	if err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintf(c.app.Out, "enrollment %d is now %s\n", enrollment.ID, enrollment.Status)

	if c.download != "" {
		pdf, err := c.app.Client.DownloadCertificate(ctx, c.enrollmentID)
		if err != nil {
			return c.app.fail(err)
		}
		if err := os.WriteFile(c.download, pdf, 0o644); err != nil {
			fmt.Fprintf(c.app.ErrOut, "certify: write %s: %v\n", c.download, err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(c.app.Out, "certificate written to %s\n", c.download)
	}
	return subcommands.ExitSuccess
}
