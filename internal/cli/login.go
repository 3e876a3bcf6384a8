package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

type loginCmd struct {
	app      *App
	username string
	password string
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "authenticate and persist the session" }
func (*loginCmd) Usage() string {
	return `login -username NAME [-password SECRET]:
  Authenticate against the API. The password is read from stdin when not
  passed as a flag. On success the issued token is stored in the session
  file and reused by later commands.
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "username", "", "account name")
	f.StringVar(&c.password, "password", "", "account password (read from stdin when empty)")
}

func (c *loginCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.username == "" {
		fmt.Fprintln(c.app.ErrOut, "login: -username is required")
		return subcommands.ExitUsageError
	}
	if c.password == "" {
		fmt.Fprint(c.app.Out, "password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			fmt.Fprintln(c.app.ErrOut, "login: cannot read password")
			return subcommands.ExitFailure
		}
		c.password = strings.TrimRight(line, "\r\n")
	}

	res, err := c.app.Client.Login(ctx, c.username, c.password)
	if err != nil {
		// A rejected login leaves the stored session untouched.
		return c.app.fail(err)
	}
	if err := c.app.Session.Login(res.Token, res.Username, res.Role); err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintf(c.app.Out, "logged in as %s (%s)\n", res.Username, res.Role.DisplayName())
	return subcommands.ExitSuccess
}
