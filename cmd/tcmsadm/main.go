package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ngocminh-dev/tcms-api/internal/cli"
	"github.com/ngocminh-dev/tcms-api/internal/client"
	"github.com/ngocminh-dev/tcms-api/internal/session"
)

func main() {
	apiRoot := flag.String("api", envOr("TCMS_API", "http://localhost:8080/api/v1"), "API root URL")
	sessionFile := flag.String("session", "", "session file (default: user config dir)")

	cdr := subcommands.NewCommander(flag.CommandLine, "tcmsadm")
	cdr.Register(cdr.HelpCommand(), "")
	cdr.Register(cdr.FlagsCommand(), "")
	cdr.Register(cdr.CommandsCommand(), "")

	flag.Parse()

	path := *sessionFile
	if path == "" {
		var err error
		path, err = session.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "tcmsadm: %v\n", err)
			os.Exit(1)
		}
	}
	store, err := session.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tcmsadm: %v\n", err)
		os.Exit(1)
	}

	app := &cli.App{
		Session: store,
		Out:     os.Stdout,
		ErrOut:  os.Stderr,
	}
	app.Client = client.New(*apiRoot, app.Token)
	cli.Register(cdr, app)

	os.Exit(int(cdr.Execute(context.Background())))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
