package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/urfave/cli/v2"

	"github.com/ricelang/rice/cmd/internal/cliutil"
	"github.com/ricelang/rice/format"
)

func (e *env) fmtCommand() *cli.Command {
	return &cli.Command{
		Name:      "fmt",
		Usage:     "Print files in canonical form",
		ArgsUsage: "[FILE|DIR|-]...",
		Description: `Without flags, the formatted source is printed to standard output.
Files with syntax errors are reported and left unchanged.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage:   "write result to the source file instead of stdout",
			},
			&cli.BoolFlag{
				Name:    "diff",
				Aliases: []string{"d"},
				Usage:   "display diffs instead of rewriting files",
			},
			&cli.BoolFlag{
				Name:    "list",
				Aliases: []string{"l"},
				Usage:   "list files whose formatting differs",
			},
		},
		Action: e.cmdFmt,
	}
}

func (e *env) cmdFmt(c *cli.Context) error {
	write, diff, list := c.Bool("write"), c.Bool("diff"), c.Bool("list")

	inputs, err := e.readInputs(c.Args().Slice())
	if err != nil {
		return err
	}

	failed := false
	for _, in := range inputs {
		out, err := format.Source(in.source)
		if err != nil {
			cliutil.PrintError(e.stderr, "%s: %v", in.path, err)
			failed = true
			continue
		}
		changed := !bytes.Equal(in.source, out)

		if list && changed {
			_, _ = fmt.Fprintln(e.stdout, in.path)
		}
		if diff && changed {
			if err := writeDiff(e.stdout, in.path, in.source, out); err != nil {
				return err
			}
		}
		if write && changed && !in.stdin {
			if err := writeFile(in.path, out); err != nil {
				return err
			}
		}
		if !list && !diff && (!write || in.stdin) {
			if _, err := e.stdout.Write(out); err != nil {
				return err
			}
		}
	}

	if failed {
		return cli.Exit("", exitError)
	}
	return nil
}

func writeDiff(w io.Writer, path string, before, after []byte) error {
	return difflib.WriteUnifiedDiff(w, difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: path + ".orig",
		ToFile:   path,
		Context:  3,
	})
}

// writeFile replaces the file at path, keeping its permissions.
func writeFile(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, info.Mode().Perm())
}
