package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/ricelang/rice"
)

const checkDescription = `Reports diagnostics for every document.

Severity Levels:
  0 = fatal       Cannot continue
  1 = severe      Input dropped to continue
  2 = error       Should correct
  3 = minor       Minor issue
  4 = style       Style recommendation
  5 = warning     Might be correct
  6 = info        Informational

Examples:
  rice check ui/
  rice check --level 0 theme.rice            # Include warnings
  rice check --fail-on 3 theme.rice          # Fail on minor or worse
  rice check --ignore "dangling-*" ui/       # Skip docstring placement checks
  rice check --format json ui/               # JSON output`

type checkConfig struct {
	level   int
	failOn  int
	ignore  []string
	format  string
	summary bool
	quiet   bool
}

type checkResult struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics,omitempty"`
	Summary     checkSummary     `json:"summary"`
	ExitCode    int              `json:"-"`
}

type checkSummary struct {
	Total      int            `json:"total"`
	BySeverity map[string]int `json:"by_severity"`
	ByCode     map[string]int `json:"by_code,omitempty"`
	Files      int            `json:"files"`
}

func (e *env) checkCommand() *cli.Command {
	return &cli.Command{
		Name:        "check",
		Usage:       "Check files for syntax errors and lint issues",
		ArgsUsage:   "[FILE|DIR|-]...",
		Description: checkDescription,
		Flags: append(documentFlags(),
			&cli.IntFlag{
				Name:  "level",
				Usage: "report diagnostics at severity `N` or below (0-6)",
				Value: int(rice.StrictnessNormal),
			},
			&cli.IntFlag{
				Name:  "fail-on",
				Usage: "exit 2 if any diagnostic is at severity `N` or below",
				Value: int(rice.SeverityError),
			},
			&cli.StringSliceFlag{
				Name:  "ignore",
				Usage: "ignore diagnostic `CODE` (repeatable, supports globs like \"duplicate-*\")",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "output format: text, json",
				Value:   "text",
			},
			&cli.BoolFlag{
				Name:  "summary",
				Usage: "show counts by severity only",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "no output, exit code only",
			},
		),
		Action: e.cmdCheck,
	}
}

func (e *env) cmdCheck(c *cli.Context) error {
	cfg := checkConfig{
		level:   c.Int("level"),
		failOn:  c.Int("fail-on"),
		ignore:  c.StringSlice("ignore"),
		format:  c.String("format"),
		summary: c.Bool("summary"),
		quiet:   c.Bool("quiet"),
	}

	if cfg.level < 0 || cfg.level > int(rice.SeverityInfo) {
		return cli.Exit(fmt.Sprintf("invalid level: %d (want 0-6)", cfg.level), exitError)
	}
	if cfg.failOn < 0 || cfg.failOn > int(rice.SeverityInfo) {
		return cli.Exit(fmt.Sprintf("invalid fail-on: %d (want 0-6)", cfg.failOn), exitError)
	}
	switch cfg.format {
	case "text", "json":
		// ok
	default:
		return cli.Exit(fmt.Sprintf("unknown format: %s", cfg.format), exitError)
	}

	diagCfg := rice.DiagnosticConfig{
		Level:  rice.StrictnessLevel(cfg.level),
		FailAt: rice.Severity(cfg.failOn),
		Ignore: cfg.ignore,
	}
	opts := append(e.documentOptions(c), rice.WithDiagnosticConfig(diagCfg))

	results, err := e.collect(c, opts)
	if err != nil {
		return err
	}
	result := runCheck(results)

	if !cfg.quiet {
		switch cfg.format {
		case "json":
			err = printCheckJSON(e.stdout, result)
		default:
			printCheckText(e.stdout, result, cfg)
		}
		if err != nil {
			return fmt.Errorf("output encoding failed: %w", err)
		}
	}

	if result.ExitCode != exitOK {
		return cli.Exit("", result.ExitCode)
	}
	return nil
}

func runCheck(results []*rice.Result) *checkResult {
	result := &checkResult{
		Summary: checkSummary{
			BySeverity: make(map[string]int),
			ByCode:     make(map[string]int),
			Files:      len(results),
		},
	}

	for _, res := range results {
		for _, d := range res.Diagnostics {
			result.Diagnostics = append(result.Diagnostics, diagnosticToJSON(d))
			result.Summary.Total++
			result.Summary.BySeverity[d.Severity.String()]++
			result.Summary.ByCode[d.Code]++
		}
		if res.Failed() {
			result.ExitCode = exitFailed
		}
	}
	return result
}

func printCheckJSON(w io.Writer, result *checkResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func printCheckText(w io.Writer, result *checkResult, cfg checkConfig) {
	if !cfg.summary {
		for _, d := range result.Diagnostics {
			printCheckDiagLine(w, d)
		}
	}

	if result.Summary.Total > 0 {
		if !cfg.summary {
			_, _ = fmt.Fprintln(w)
		}
		printCheckSummary(w, result)
	} else {
		_, _ = fmt.Fprintf(w, "No issues found in %d files\n", result.Summary.Files)
	}
}

func printCheckDiagLine(w io.Writer, d DiagnosticJSON) {
	loc := d.File
	if d.Line > 0 {
		loc = fmt.Sprintf("%s:%d:%d", d.File, d.Line, d.Column)
	}
	_, _ = fmt.Fprintf(w, "%s: %s: %s [%s]\n", loc, d.Severity, d.Message, d.Code)
}

func printCheckSummary(w io.Writer, result *checkResult) {
	_, _ = fmt.Fprintf(w, "Checked %d files, found %d issues:\n", result.Summary.Files, result.Summary.Total)

	sevOrder := []string{"fatal", "severe", "error", "minor", "style", "warning", "info"}
	for _, sev := range sevOrder {
		if count := result.Summary.BySeverity[sev]; count > 0 {
			_, _ = fmt.Fprintf(w, "  %-8s %d\n", sev+":", count)
		}
	}
}
