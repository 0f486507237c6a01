// Command rice is a CLI tool for parsing, checking, and formatting Rice UI
// description files.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/urfave/cli/v2"

	"github.com/ricelang/rice"
	"github.com/ricelang/rice/cmd/internal/cliutil"
)

// Exit codes.
const (
	exitOK     = 0 // success
	exitError  = 1 // user error or processing failure
	exitFailed = 2 // diagnostics at or above the failure threshold
)

const description = `Files may be given as paths, as directories (every .rice file below
is read), or as "-" for standard input. With no files, standard input is read.

Examples:
  rice check ui/
  rice check --level 0 --fail-on 3 theme.rice
  rice parse --format yaml layout.rice
  rice fmt -d ui/*.rice
  rice tokens widgets.rice
  RICEPATH=:/opt/ui rice check --name theme`

type env struct {
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	verbose int
}

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	e := &env{stdin: stdin, stdout: stdout, stderr: stderr}
	err := e.app().RunContext(ctx, args)
	return e.exitCode(err)
}

func (e *env) app() *cli.App {
	return &cli.App{
		Name:                   "rice",
		Usage:                  "Rice UI description language tool",
		Description:            description,
		Writer:                 e.stdout,
		ErrWriter:              e.stderr,
		UseShortOptionHandling: true,
		HideVersion:            true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging (-vv for trace logging)",
				Count:   &e.verbose,
			},
		},
		Commands: []*cli.Command{
			e.parseCommand(),
			e.checkCommand(),
			e.fmtCommand(),
			e.tokensCommand(),
			{
				Name:   "paths",
				Usage:  "Show the RICEPATH search directories",
				Action: e.cmdPaths,
			},
			{
				Name:   "version",
				Usage:  "Show version",
				Action: e.cmdVersion,
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() > 0 {
				return cli.Exit(fmt.Sprintf("unknown command: %s", c.Args().First()), exitError)
			}
			return cli.ShowAppHelp(c)
		},
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

// exitCode maps an action error to a process exit code, printing the
// message when there is one.
func (e *env) exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		if msg := ec.Error(); msg != "" {
			cliutil.PrintError(e.stderr, "%s", msg)
		}
		return ec.ExitCode()
	}
	cliutil.PrintError(e.stderr, "%v", err)
	return exitError
}

func (e *env) logger() *slog.Logger {
	if e.verbose == 0 {
		return nil
	}
	level := slog.LevelDebug
	if e.verbose >= 2 {
		level = rice.LevelTrace
	}
	return slog.New(slog.NewTextHandler(e.stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

func (e *env) cmdPaths(*cli.Context) error {
	paths := rice.SearchPath()
	if len(paths) == 0 {
		_, _ = fmt.Fprintln(e.stderr, "no search path directories exist")
		return nil
	}
	for _, p := range paths {
		_, _ = fmt.Fprintln(e.stdout, p)
	}
	return nil
}

func (e *env) cmdVersion(*cli.Context) error {
	version := "(devel)"
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		version = info.Main.Version
	}
	_, _ = fmt.Fprintf(e.stdout, "rice %s\n", version)
	return nil
}
