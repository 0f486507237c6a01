// Package types provides internal types shared across rice packages.
package types

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
)

// LevelTrace is a custom log level more verbose than Debug.
// Use for per-item iteration logging (tokens, members, variants).
// Enable with: &slog.HandlerOptions{Level: slog.Level(-8)}
const LevelTrace = slog.Level(-8)

// ctx is a package-level context for logging.
var ctx = context.Background()

// Logger wraps slog.Logger with nil-safe helpers.
type Logger struct {
	L *slog.Logger
}

// Enabled returns true if logging is enabled at the given level.
func (l *Logger) Enabled(level slog.Level) bool {
	return l.L != nil && l.L.Enabled(ctx, level)
}

// Log emits a log message if logging is enabled.
func (l *Logger) Log(level slog.Level, msg string, attrs ...slog.Attr) {
	if l.L != nil && l.L.Enabled(ctx, level) {
		l.L.LogAttrs(ctx, level, msg, attrs...)
	}
}

// TraceEnabled returns true if trace-level logging is enabled.
func (l *Logger) TraceEnabled() bool {
	return l.Enabled(LevelTrace)
}

// Trace emits a trace-level log.
func (l *Logger) Trace(msg string, attrs ...slog.Attr) {
	l.Log(LevelTrace, msg, attrs...)
}

// ComponentLogger returns a child of logger tagged with the component name,
// or nil when logger is nil.
func ComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("component", component))
}

// ByteOffset is a byte position in source text.
type ByteOffset uint32

// Span represents a range in source text.
type Span struct {
	Start ByteOffset // inclusive
	End   ByteOffset // exclusive
}

// NewSpan creates a new span.
func NewSpan(start, end ByteOffset) Span {
	return Span{Start: start, End: end}
}

// Len returns the length of the span in bytes.
func (s Span) Len() ByteOffset {
	return s.End - s.Start
}

// IsEmpty returns true if the span is empty.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// Cover returns the smallest span containing both s and o.
func (s Span) Cover(o Span) Span {
	return Span{Start: min(s.Start, o.Start), End: max(s.End, o.End)}
}

// Contains reports whether off lies inside the span.
func (s Span) Contains(off ByteOffset) bool {
	return off >= s.Start && off < s.End
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Severity levels for diagnostics. Lower values are more severe.
type Severity int

const (
	SeverityFatal   Severity = 0 // Cannot continue
	SeveritySevere  Severity = 1 // Input dropped to continue, must correct
	SeverityError   Severity = 2 // Able to continue, should correct
	SeverityMinor   Severity = 3 // Minor issue, should correct
	SeverityStyle   Severity = 4 // Style recommendation
	SeverityWarning Severity = 5 // Might be correct under some circumstances
	SeverityInfo    Severity = 6 // Informational notice
)

func (s Severity) String() string {
	switch s {
	case SeverityFatal:
		return "fatal"
	case SeveritySevere:
		return "severe"
	case SeverityError:
		return "error"
	case SeverityMinor:
		return "minor"
	case SeverityStyle:
		return "style"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// AtLeast reports whether s is at least as severe as other.
func (s Severity) AtLeast(other Severity) bool {
	return s <= other
}

// SpanDiagnostic is a message from the lexer, parser, or validator,
// located by byte span. Line and column are derived later from a LineTable.
type SpanDiagnostic struct {
	Severity Severity
	Code     string
	Span     Span
	Message  string
	// Related is a secondary location, e.g. the first definition of a
	// duplicated name. Zero when not applicable.
	Related Span
}

// LineTable holds the byte offset at which each line starts.
// Entry i is the offset of line i+1.
type LineTable []int

// BuildLineTable scans source for line breaks. A CRLF pair counts as one
// line break.
func BuildLineTable(source []byte) LineTable {
	table := LineTable{0}
	for i, b := range source {
		if b == '\n' {
			table = append(table, i+1)
		}
	}
	return table
}

// Position converts a byte offset to a 1-based line and column.
// Columns count bytes, not runes.
func (t LineTable) Position(off ByteOffset) (line, col int) {
	if len(t) == 0 {
		return 0, 0
	}
	o := int(off)
	i := sort.Search(len(t), func(i int) bool { return t[i] > o }) - 1
	if i < 0 {
		i = 0
	}
	return i + 1, o - t[i] + 1
}
