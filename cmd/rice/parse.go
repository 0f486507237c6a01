package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/ricelang/rice"
	"github.com/ricelang/rice/cmd/internal/cliutil"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func (e *env) parseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Parse files and print the syntax tree",
		ArgsUsage: "[FILE|DIR|-]...",
		Description: `Prints the syntax tree of every document together with its diagnostics.

Formats:
  json   structured tree (default)
  yaml   the same structure as YAML
  dump   Go values of the tree, for debugging the parser`,
		Flags: append(documentFlags(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "output format: json, yaml, dump",
				Value:   "json",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write output to `FILE`",
			},
		),
		Action: e.cmdParse,
	}
}

func (e *env) cmdParse(c *cli.Context) error {
	format := c.String("format")
	switch format {
	case "json", "yaml", "dump":
		// ok
	default:
		return cli.Exit(fmt.Sprintf("unknown format: %s", format), exitError)
	}

	results, err := e.collect(c, e.documentOptions(c))
	if err != nil {
		return err
	}

	w, closeOutput, err := cliutil.GetOutput(c.String("output"), e.stdout)
	if err != nil {
		return err
	}

	switch format {
	case "yaml":
		err = writeParseYAML(w, results)
	case "dump":
		err = writeParseDump(w, results)
	default:
		err = writeParseJSON(w, results)
	}
	if cerr := closeOutput(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("output encoding failed: %w", err)
	}

	for _, res := range results {
		if res.Failed() {
			return cli.Exit("", exitFailed)
		}
	}
	return nil
}

func buildParseOutput(results []*rice.Result) ParseOutput {
	out := ParseOutput{Files: make([]FileJSON, 0, len(results))}
	for _, res := range results {
		out.Files = append(out.Files, fileToJSON(res))
	}
	return out
}

func writeParseJSON(w io.Writer, results []*rice.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(buildParseOutput(results))
}

func writeParseYAML(w io.Writer, results []*rice.Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(buildParseOutput(results)); err != nil {
		return err
	}
	return enc.Close()
}

func writeParseDump(w io.Writer, results []*rice.Result) error {
	for _, res := range results {
		if _, err := fmt.Fprintf(w, "== %s\n", res.Path); err != nil {
			return err
		}
		dumpConfig.Fdump(w, res.Document)
		for _, d := range res.Diagnostics {
			if _, err := fmt.Fprintln(w, d); err != nil {
				return err
			}
		}
	}
	return nil
}
