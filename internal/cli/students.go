package cli

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/ngocminh-dev/tcms-api/internal/dto"
	"github.com/ngocminh-dev/tcms-api/internal/guard"
	"github.com/ngocminh-dev/tcms-api/internal/models"
)

type studentsCmd struct {
	app      *App
	search   string
	province string
	page     int
	limit    int

	ho       string
	ten      string
	dob      string
	hometown string
}

func (*studentsCmd) Name() string     { return "students" }
func (*studentsCmd) Synopsis() string { return "manage the student roster" }
func (*studentsCmd) Usage() string {
	return `students [list] [-search Q] [-province P] [-page N] [-limit N]
students get ID
students add -ho HO -ten TEN -dob YYYY-MM-DD [-hometown H] [-province P]
students update ID -ho HO -ten TEN -dob YYYY-MM-DD [-hometown H] [-province P]
students delete ID
students export:
  Roster operations. They require the admin or staff role, except delete
  which is reserved for administrators. The student code is assigned by
  the backend on add and shown afterwards.
`
}

func (c *studentsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.search, "search", "", "search by name or student code")
	f.StringVar(&c.province, "province", "", "residence province")
	f.IntVar(&c.page, "page", 1, "page")
	f.IntVar(&c.limit, "limit", 20, "page size")
	f.StringVar(&c.ho, "ho", "", "surname")
	f.StringVar(&c.ten, "ten", "", "given name")
	f.StringVar(&c.dob, "dob", "", "date of birth (YYYY-MM-DD)")
	f.StringVar(&c.hometown, "hometown", "", "hometown")
}

func (c *studentsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	verb := f.Arg(0)
	req := guard.Requirements{RequireAdminOrStaff: true}
	if verb == "delete" {
		req = guard.Requirements{RequireAdmin: true}
	}
	if !c.app.authorize(ctx, req) {
		return subcommands.ExitFailure
	}

	switch verb {
	case "", "list":
		return c.list(ctx)
	case "get":
		id, ok := argID(f.Arg(1))
		if !ok {
			return c.usageError("students get ID")
		}
		student, err := c.app.Client.GetStudent(ctx, id)
		if err != nil {
			return c.app.fail(err)
		}
		c.print(*student)
		return subcommands.ExitSuccess
	case "add":
		req, status := c.payload()
		if status != subcommands.ExitSuccess {
			return status
		}
		student, err := c.app.Client.CreateStudent(ctx, req)
		if err != nil {
			return c.app.fail(err)
		}
		fmt.Fprintf(c.app.Out, "created %s (%s)\n", student.FullName, student.MSV)
		return subcommands.ExitSuccess
	case "update":
		id, ok := argID(f.Arg(1))
		if !ok {
			return c.usageError("students update ID -ho HO -ten TEN -dob YYYY-MM-DD")
		}
		req, status := c.payload()
		if status != subcommands.ExitSuccess {
			return status
		}
		student, err := c.app.Client.UpdateStudent(ctx, id, dto.UpdateStudentRequest(req))
		if err != nil {
			return c.app.fail(err)
		}
		fmt.Fprintf(c.app.Out, "updated %s (%s)\n", student.FullName, student.MSV)
		return subcommands.ExitSuccess
	case "delete":
		id, ok := argID(f.Arg(1))
		if !ok {
			return c.usageError("students delete ID")
		}
		if err := c.app.Client.DeleteStudent(ctx, id); err != nil {
			return c.app.fail(err)
		}
		fmt.Fprintf(c.app.Out, "deleted student %d\n", id)
		return subcommands.ExitSuccess
	case "export":
		csv, err := c.app.Client.ExportStudentsCSV(ctx)
		if err != nil {
			return c.app.fail(err)
		}
		_, _ = c.app.Out.Write(csv)
		return subcommands.ExitSuccess
	default:
		return c.usageError("unknown verb " + verb)
	}
}

func (c *studentsCmd) list(ctx context.Context) subcommands.ExitStatus {
	students, pagination, err := c.app.Client.ListStudents(ctx, models.StudentFilter{
		Search:   c.search,
		Province: c.province,
		Page:     c.page,
		PageSize: c.limit,
	})
	if err != nil {
		return c.app.fail(err)
	}
	w := tabwriter.NewWriter(c.app.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMSV\tNAME\tDOB\tPROVINCE")
	for _, s := range students {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", s.ID, s.MSV, s.FullName, s.DateOfBirth, s.ResidenceProvince)
	}
	_ = w.Flush()
	if pagination != nil {
		fmt.Fprintf(c.app.Out, "page %d of %d students\n", pagination.Page, pagination.TotalCount)
	}
	return subcommands.ExitSuccess
}

func (c *studentsCmd) payload() (dto.CreateStudentRequest, subcommands.ExitStatus) {
	dob, err := dto.ParseDate(c.dob)
	if err != nil {
		fmt.Fprintf(c.app.ErrOut, "students: %v\n", err)
		return dto.CreateStudentRequest{}, subcommands.ExitUsageError
	}
	return dto.CreateStudentRequest{
		Ho:                c.ho,
		Ten:               c.ten,
		DateOfBirth:       dob,
		Hometown:          c.hometown,
		ResidenceProvince: c.province,
	}, subcommands.ExitSuccess
}

func (c *studentsCmd) print(s dto.StudentDTO) {
	w := tabwriter.NewWriter(c.app.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "id\t%d\n", s.ID)
	fmt.Fprintf(w, "msv\t%s\n", s.MSV)
	fmt.Fprintf(w, "name\t%s\n", s.FullName)
	fmt.Fprintf(w, "date of birth\t%s\n", s.DateOfBirth)
	fmt.Fprintf(w, "hometown\t%s\n", s.Hometown)
	fmt.Fprintf(w, "province\t%s\n", s.ResidenceProvince)
	_ = w.Flush()
}

func (c *studentsCmd) usageError(msg string) subcommands.ExitStatus {
	fmt.Fprintf(c.app.ErrOut, "usage: %s\n", msg)
	return subcommands.ExitUsageError
}

func argID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
