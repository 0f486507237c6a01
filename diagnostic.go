package rice

import (
	"fmt"
	"strings"
)

// Diagnostic is a problem found while lexing, parsing, or validating a
// document.
type Diagnostic struct {
	Severity Severity
	Code     string // e.g., "unexpected-token", "duplicate-name"
	Message  string
	File     string // source path, empty when parsing in-memory input
	Line     int    // 1-based line number, 0 if not applicable
	Column   int    // 1-based byte column, 0 if not applicable
	Span     Span   // byte range in the source
	// Related locates a second span the diagnostic refers to, such as the
	// first declaration of a duplicated name. Zero when not applicable.
	Related     Span
	RelatedLine int
}

// String formats the diagnostic as "file:line:col: severity: message [code]".
// Location parts that are unknown are omitted.
func (d Diagnostic) String() string {
	var b strings.Builder
	if d.File != "" {
		b.WriteString(d.File)
		b.WriteByte(':')
	}
	if d.Line > 0 {
		fmt.Fprintf(&b, "%d:%d:", d.Line, d.Column)
	}
	if b.Len() > 0 {
		b.WriteByte(' ')
	}
	fmt.Fprintf(&b, "%s: %s", d.Severity, d.Message)
	if d.RelatedLine > 0 {
		fmt.Fprintf(&b, " (see line %d)", d.RelatedLine)
	}
	fmt.Fprintf(&b, " [%s]", d.Code)
	return b.String()
}
