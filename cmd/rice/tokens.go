package main

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/ricelang/rice/internal/lexer"
	"github.com/ricelang/rice/internal/types"
)

func (e *env) tokensCommand() *cli.Command {
	return &cli.Command{
		Name:      "tokens",
		Usage:     "Print the token stream of files",
		ArgsUsage: "[FILE|-]...",
		Action:    e.cmdTokens,
	}
}

func (e *env) cmdTokens(c *cli.Context) error {
	inputs, err := e.readInputs(c.Args().Slice())
	if err != nil {
		return err
	}

	hasErrors := false
	for _, in := range inputs {
		if len(inputs) > 1 {
			_, _ = fmt.Fprintf(e.stdout, "== %s\n", in.path)
		}

		lines := types.BuildLineTable(in.source)
		tokens, diags := lexer.New(in.source, e.logger()).Tokenize()
		for _, tok := range tokens {
			line, col := lines.Position(tok.Span.Start)
			text := string(in.source[tok.Span.Start:tok.Span.End])
			_, _ = fmt.Fprintf(e.stdout, "%d:%d\t%-12s %s\n", line, col, tok.Kind.Name(), strconv.Quote(text))
		}

		for _, d := range diags {
			line, col := lines.Position(d.Span.Start)
			_, _ = fmt.Fprintf(e.stderr, "%s:%d:%d: %s: %s [%s]\n", in.path, line, col, d.Severity, d.Message, d.Code)
			hasErrors = true
		}
	}

	if hasErrors {
		return cli.Exit("", exitFailed)
	}
	return nil
}
