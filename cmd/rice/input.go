package main

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ricelang/rice"
)

const stdinPath = "<stdin>"

// input is one document read from the command line.
type input struct {
	path   string
	source []byte
	stdin  bool
}

// documentFlags are shared by the commands that parse documents.
func documentFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "max-depth",
			Usage: "maximum block nesting depth",
			Value: rice.DefaultMaxDepth,
		},
		&cli.BoolFlag{
			Name:  "no-validate",
			Usage: "skip the validation pass",
		},
		&cli.StringSliceFlag{
			Name:    "name",
			Aliases: []string{"n"},
			Usage:   "parse document `NAME` from the search path (repeatable)",
		},
	}
}

func (e *env) documentOptions(c *cli.Context) []rice.Option {
	opts := []rice.Option{
		rice.WithLogger(e.logger()),
		rice.WithMaxDepth(c.Int("max-depth")),
	}
	if c.Bool("no-validate") {
		opts = append(opts, rice.WithoutValidation())
	}
	return opts
}

// collect parses every document named on the command line. Directories
// are parsed concurrently; --name documents come from the search path.
func (e *env) collect(c *cli.Context, opts []rice.Option) ([]*rice.Result, error) {
	args := c.Args().Slice()
	names := c.StringSlice("name")
	if len(args) == 0 && len(names) == 0 {
		args = []string{"-"}
	}

	var results []*rice.Result
	for _, arg := range args {
		if arg == "-" {
			source, err := io.ReadAll(e.stdin)
			if err != nil {
				return nil, err
			}
			results = append(results, parseStdin(source, opts))
			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			src, err := rice.DirTree(arg)
			if err != nil {
				return nil, err
			}
			rs, err := rice.ParseAll(c.Context, src, opts...)
			if err != nil {
				return nil, err
			}
			results = append(results, rs...)
			continue
		}

		res, err := rice.ParseFile(arg, opts...)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}

	if len(names) > 0 {
		opts = append(slices.Clip(opts), rice.WithSearchPath())
		rs, err := rice.ParseNamed(c.Context, nil, names, opts...)
		if err != nil {
			return nil, err
		}
		results = append(results, rs...)
	}
	return results, nil
}

func parseStdin(source []byte, opts []rice.Option) *rice.Result {
	res := rice.Parse(source, opts...)
	res.Path = stdinPath
	for i := range res.Diagnostics {
		res.Diagnostics[i].File = stdinPath
	}
	return res
}

// readInputs reads the raw content of every file named on the command
// line. Directories are walked for files with a Rice extension.
func (e *env) readInputs(args []string) ([]input, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}

	var inputs []input
	for _, arg := range args {
		if arg == "-" {
			source, err := io.ReadAll(e.stdin)
			if err != nil {
				return nil, err
			}
			inputs = append(inputs, input{path: stdinPath, source: source, stdin: true})
			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			source, err := os.ReadFile(arg)
			if err != nil {
				return nil, err
			}
			inputs = append(inputs, input{path: arg, source: source})
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !isRiceFile(path) {
				return nil
			}
			source, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			inputs = append(inputs, input{path: path, source: source})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return inputs, nil
}

func isRiceFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(rice.DefaultExtensions(), ext)
}
