package cli

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/ngocminh-dev/tcms-api/internal/dto"
	"github.com/ngocminh-dev/tcms-api/internal/guard"
	"github.com/ngocminh-dev/tcms-api/internal/models"
)

type coursesCmd struct {
	app    *App
	search string
	year   int
	page   int
	limit  int

	code    string
	start   string
	end     string
	content string
}

func (*coursesCmd) Name() string     { return "courses" }
func (*coursesCmd) Synopsis() string { return "manage training courses" }
func (*coursesCmd) Usage() string {
	return `courses [list] [-search Q] [-year Y] [-page N] [-limit N]
courses get ID
courses add -code CODE -start YYYY-MM-DDTHH:mm:ss -end YYYY-MM-DDTHH:mm:ss [-content TEXT]
courses update ID -code CODE -start ... -end ... [-content TEXT]
courses delete ID:
  Course operations. All of them require the admin or staff role. Start and
  end are wall-clock local times without a zone designator.
`
}

func (c *coursesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.search, "search", "", "search by course code")
	f.IntVar(&c.year, "year", 0, "filter by start year")
	f.IntVar(&c.page, "page", 1, "page")
	f.IntVar(&c.limit, "limit", 20, "page size")
	f.StringVar(&c.code, "code", "", "course code")
	f.StringVar(&c.start, "start", "", "start (YYYY-MM-DDTHH:mm:ss)")
	f.StringVar(&c.end, "end", "", "end (YYYY-MM-DDTHH:mm:ss)")
	f.StringVar(&c.content, "content", "", "course content")
}

func (c *coursesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.app.authorize(ctx, guard.Requirements{RequireAdminOrStaff: true}) {
		return subcommands.ExitFailure
	}

	verb := f.Arg(0)
	switch verb {
	case "", "list":
		return c.list(ctx)
	case "get":
		id, ok := argID(f.Arg(1))
		if !ok {
			return c.usageError("courses get ID")
		}
		course, err := c.app.Client.GetCourse(ctx, id)
		if err != nil {
			return c.app.fail(err)
		}
		c.print(*course)
		return subcommands.ExitSuccess
	case "add":
		req, status := c.payload()
		if status != subcommands.ExitSuccess {
			return status
		}
		course, err := c.app.Client.CreateCourse(ctx, req)
		if err != nil {
			return c.app.fail(err)
		}
		fmt.Fprintf(c.app.Out, "created course %s (id %d)\n", course.CourseCode, course.ID)
		return subcommands.ExitSuccess
	case "update":
		id, ok := argID(f.Arg(1))
		if !ok {
			return c.usageError("courses update ID -code CODE -start ... -end ...")
		}
		req, status := c.payload()
		if status != subcommands.ExitSuccess {
			return status
		}
		course, err := c.app.Client.UpdateCourse(ctx, id, dto.UpdateCourseRequest(req))
		if err != nil {
			return c.app.fail(err)
		}
		fmt.Fprintf(c.app.Out, "updated course %s\n", course.CourseCode)
		return subcommands.ExitSuccess
	case "delete":
		id, ok := argID(f.Arg(1))
		if !ok {
			return c.usageError("courses delete ID")
		}
		if err := c.app.Client.DeleteCourse(ctx, id); err != nil {
			return c.app.fail(err)
		}
		fmt.Fprintf(c.app.Out, "deleted course %d\n", id)
		return subcommands.ExitSuccess
	default:
		return c.usageError("unknown verb " + verb)
	}
}

func (c *coursesCmd) list(ctx context.Context) subcommands.ExitStatus {
	courses, pagination, err := c.app.Client.ListCourses(ctx, models.CourseFilter{
		Search:   c.search,
		Year:     c.year,
		Page:     c.page,
		PageSize: c.limit,
	})
	if err != nil {
		return c.app.fail(err)
	}
	w := tabwriter.NewWriter(c.app.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCODE\tSTART\tEND")
	for _, course := range courses {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", course.ID, course.CourseCode, course.StartDate, course.EndDate)
	}
	_ = w.Flush()
	if pagination != nil {
		fmt.Fprintf(c.app.Out, "page %d of %d courses\n", pagination.Page, pagination.TotalCount)
	}
	return subcommands.ExitSuccess
}

func (c *coursesCmd) payload() (dto.CreateCourseRequest, subcommands.ExitStatus) {
	start, err := dto.ParseDateTime(c.start)
	if err != nil {
		fmt.Fprintf(c.app.ErrOut, "courses: %v\n", err)
		return dto.CreateCourseRequest{}, subcommands.ExitUsageError
	}
	end, err := dto.ParseDateTime(c.end)
	if err != nil {
		fmt.Fprintf(c.app.ErrOut, "courses: %v\n", err)
		return dto.CreateCourseRequest{}, subcommands.ExitUsageError
	}
	return dto.CreateCourseRequest{
		CourseCode: c.code,
		StartDate:  start,
		EndDate:    end,
		Content:    c.content,
	}, subcommands.ExitSuccess
}

func (c *coursesCmd) print(course dto.CourseDTO) {
	w := tabwriter.NewWriter(c.app.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "id\t%d\n", course.ID)
	fmt.Fprintf(w, "code\t%s\n", course.CourseCode)
	fmt.Fprintf(w, "start\t%s\n", course.StartDate)
	fmt.Fprintf(w, "end\t%s\n", course.EndDate)
	fmt.Fprintf(w, "content\t%s\n", course.Content)
	_ = w.Flush()
}

func (c *coursesCmd) usageError(msg string) subcommands.ExitStatus {
	fmt.Fprintf(c.app.ErrOut, "usage: %s\n", msg)
	return subcommands.ExitUsageError
}
