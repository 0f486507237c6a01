package rice

import (
	"cmp"
	"errors"
	"log/slog"
	"os"
	"slices"

	"github.com/ricelang/rice/ast"
	"github.com/ricelang/rice/internal/parser"
	"github.com/ricelang/rice/internal/types"
	"github.com/ricelang/rice/internal/validate"
)

// ErrNoSources is returned when ParseAll or ParseNamed is called without
// a source.
var ErrNoSources = errors.New("no rice sources provided")

// LevelTrace is a custom log level more verbose than Debug.
// Use for per-item iteration logging (tokens, members, variants).
// Enable with: &slog.HandlerOptions{Level: slog.Level(-8)}
const LevelTrace = types.LevelTrace

// DefaultMaxDepth is the nesting limit used unless WithMaxDepth is given.
const DefaultMaxDepth = parser.DefaultMaxDepth

// Option configures Parse, ParseFile, ParseAll, and ParseNamed.
type Option func(*config)

type config struct {
	logger     *slog.Logger
	maxDepth   int
	diagConfig DiagnosticConfig
	noValidate bool
	searchPath bool
}

func newConfig(opts []Option) config {
	cfg := config{
		maxDepth:   DefaultMaxDepth,
		diagConfig: DefaultConfig(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithLogger sets the logger for debug/trace output.
// If not set, no logging occurs (zero overhead).
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithMaxDepth limits how deeply blocks may nest. Deeper blocks are
// skipped with a max-depth-exceeded diagnostic. Values below 1 restore
// DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(c *config) { c.maxDepth = n }
}

// WithDiagnosticConfig replaces the diagnostic configuration.
func WithDiagnosticConfig(dc DiagnosticConfig) Option {
	return func(c *config) { c.diagConfig = dc }
}

// WithStrictness sets the reporting threshold, keeping the rest of the
// diagnostic configuration.
func WithStrictness(level StrictnessLevel) Option {
	return func(c *config) { c.diagConfig.Level = level }
}

// WithoutValidation skips the validation pass. Only lexer and parser
// diagnostics are reported.
func WithoutValidation() Option {
	return func(c *config) { c.noValidate = true }
}

// Result is a parsed document with its diagnostics.
type Result struct {
	// Name is the document name: the file name without extension, or
	// empty for Parse.
	Name string
	// Path is where the document was read from, empty for Parse.
	Path string
	// Document is the best-effort tree. It is never nil.
	Document *ast.Document
	// Diagnostics are ordered by position.
	Diagnostics []Diagnostic

	failAt Severity
}

// HasErrors reports whether any diagnostic is error severity or worse.
func (r *Result) HasErrors() bool {
	return slices.ContainsFunc(r.Diagnostics, func(d Diagnostic) bool {
		return d.Severity.AtLeast(SeverityError)
	})
}

// Failed reports whether any diagnostic reaches the configured FailAt
// threshold.
func (r *Result) Failed() bool {
	return slices.ContainsFunc(r.Diagnostics, func(d Diagnostic) bool {
		return d.Severity <= r.failAt
	})
}

// Parse parses source and, unless WithoutValidation is given, validates
// the resulting document. Parse never fails: problems are reported as
// diagnostics on the result.
//
// Example:
//
//	res := rice.Parse([]byte(`Box { width: 50% }`))
//	for _, d := range res.Diagnostics {
//	    fmt.Println(d)
//	}
func Parse(source []byte, opts ...Option) *Result {
	cfg := newConfig(opts)
	return parseSource(source, "", "", cfg)
}

// ParseFile reads and parses the file at path. The only error returned is
// from reading the file.
func ParseFile(path string, opts ...Option) (*Result, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := newConfig(opts)
	return parseSource(source, documentNameFromPath(path), path, cfg), nil
}

// Validate runs the validation pass over doc. Diagnostics carry spans but
// no line or column, since the source text is not known.
func Validate(doc *ast.Document, opts ...Option) []Diagnostic {
	cfg := newConfig(opts)
	spans := validate.Validate(doc, cfg.diagConfig, types.ComponentLogger(cfg.logger, "validate"))
	return convertDiagnostics(spans, nil, "")
}

func parseSource(source []byte, name, path string, cfg config) *Result {
	logger := types.Logger{L: cfg.logger}

	p := parser.New(source, types.ComponentLogger(cfg.logger, "parser"), cfg.diagConfig)
	p.SetMaxDepth(cfg.maxDepth)
	doc := p.ParseDocument()
	diags := p.Diagnostics()

	if !cfg.noValidate {
		diags = append(diags, validate.Validate(doc, cfg.diagConfig,
			types.ComponentLogger(cfg.logger, "validate"))...)
		slices.SortStableFunc(diags, func(a, b types.SpanDiagnostic) int {
			return cmp.Compare(a.Span.Start, b.Span.Start)
		})
	}

	res := &Result{
		Name:        name,
		Path:        path,
		Document:    doc,
		Diagnostics: convertDiagnostics(diags, source, path),
		failAt:      cfg.diagConfig.FailAt,
	}

	logger.Log(slog.LevelDebug, "document parsed",
		slog.String("path", path),
		slog.Int("items", len(doc.Items)),
		slog.Int("diagnostics", len(res.Diagnostics)))
	return res
}

func convertDiagnostics(spans []types.SpanDiagnostic, source []byte, file string) []Diagnostic {
	if len(spans) == 0 {
		return nil
	}
	var lines types.LineTable
	if source != nil {
		lines = types.BuildLineTable(source)
	}

	diags := make([]Diagnostic, len(spans))
	for i, sd := range spans {
		d := Diagnostic{
			Severity: sd.Severity,
			Code:     sd.Code,
			Message:  sd.Message,
			File:     file,
			Span:     sd.Span,
			Related:  sd.Related,
		}
		if lines != nil {
			d.Line, d.Column = lines.Position(sd.Span.Start)
			if !sd.Related.IsEmpty() {
				d.RelatedLine, _ = lines.Position(sd.Related.Start)
			}
		}
		diags[i] = d
	}
	return diags
}
