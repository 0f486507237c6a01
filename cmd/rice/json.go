package main

import (
	"fmt"

	"github.com/ricelang/rice"
	"github.com/ricelang/rice/ast"
)

// ParseOutput is the top-level output of the parse command.
type ParseOutput struct {
	Files []FileJSON `json:"files" yaml:"files"`
}

// FileJSON holds one parsed document and its diagnostics.
type FileJSON struct {
	Path        string           `json:"path,omitempty" yaml:"path,omitempty"`
	Document    DocumentJSON     `json:"document" yaml:"document"`
	Diagnostics []DiagnosticJSON `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// DocumentJSON holds the serializable form of a document.
type DocumentJSON struct {
	Items    []ItemJSON    `json:"items" yaml:"items"`
	Comments []CommentJSON `json:"comments,omitempty" yaml:"comments,omitempty"`
}

// ItemJSON holds any declaration, instance, or member. Kind is one of
// "enum", "component", "property", "instance", or "assignment", and
// decides which of the other fields are set.
type ItemJSON struct {
	Kind     string        `json:"kind" yaml:"kind"`
	Name     string        `json:"name" yaml:"name"`
	Doc      string        `json:"doc,omitempty" yaml:"doc,omitempty"`
	Type     string        `json:"type,omitempty" yaml:"type,omitempty"`
	Default  *ValueJSON    `json:"default,omitempty" yaml:"default,omitempty"`
	Value    *ValueJSON    `json:"value,omitempty" yaml:"value,omitempty"`
	Variants []VariantJSON `json:"variants,omitempty" yaml:"variants,omitempty"`
	Members  []ItemJSON    `json:"members,omitempty" yaml:"members,omitempty"`
	Span     SpanJSON      `json:"span" yaml:"span"`
}

// VariantJSON holds an enum variant.
type VariantJSON struct {
	Name string   `json:"name" yaml:"name"`
	Doc  string   `json:"doc,omitempty" yaml:"doc,omitempty"`
	Span SpanJSON `json:"span" yaml:"span"`
}

// ValueJSON holds a property value. Text is the value in source syntax.
type ValueJSON struct {
	Kind string `json:"kind" yaml:"kind"`
	Text string `json:"text" yaml:"text"`
}

// CommentJSON holds a comment group.
type CommentJSON struct {
	Text string   `json:"text" yaml:"text"`
	Span SpanJSON `json:"span" yaml:"span"`
}

// SpanJSON is a half-open byte range.
type SpanJSON struct {
	Start uint32 `json:"start" yaml:"start"`
	End   uint32 `json:"end" yaml:"end"`
}

// DiagnosticJSON holds a diagnostic.
type DiagnosticJSON struct {
	Severity    string `json:"severity" yaml:"severity"`
	SeverityNum int    `json:"severity_num" yaml:"severity_num"`
	Code        string `json:"code" yaml:"code"`
	Message     string `json:"message" yaml:"message"`
	File        string `json:"file,omitempty" yaml:"file,omitempty"`
	Line        int    `json:"line,omitempty" yaml:"line,omitempty"`
	Column      int    `json:"column,omitempty" yaml:"column,omitempty"`
}

func fileToJSON(res *rice.Result) FileJSON {
	out := FileJSON{
		Path:     res.Path,
		Document: documentToJSON(res.Document),
	}
	for _, d := range res.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, diagnosticToJSON(d))
	}
	return out
}

func documentToJSON(doc *ast.Document) DocumentJSON {
	out := DocumentJSON{Items: make([]ItemJSON, 0, len(doc.Items))}
	for _, item := range doc.Items {
		out.Items = append(out.Items, nodeToJSON(item))
	}
	for _, c := range doc.Comments {
		out.Comments = append(out.Comments, CommentJSON{Text: c.Text(), Span: spanToJSON(c.Span)})
	}
	return out
}

func nodeToJSON(node ast.Node) ItemJSON {
	switch n := node.(type) {
	case *ast.EnumDecl:
		out := ItemJSON{Kind: "enum", Name: n.Name.Name, Doc: n.Doc.Text(), Span: spanToJSON(n.Span)}
		for _, v := range n.Variants {
			out.Variants = append(out.Variants, VariantJSON{
				Name: v.Name.Name,
				Doc:  v.Doc.Text(),
				Span: spanToJSON(v.Span),
			})
		}
		return out
	case *ast.ComponentDecl:
		out := ItemJSON{Kind: "component", Name: n.Name.Name, Doc: n.Doc.Text(), Span: spanToJSON(n.Span)}
		for _, m := range n.Members {
			out.Members = append(out.Members, nodeToJSON(m))
		}
		return out
	case *ast.PropertyDecl:
		return ItemJSON{
			Kind:    "property",
			Name:    n.Name.Name,
			Doc:     n.Doc.Text(),
			Type:    n.Type.Name,
			Default: valueToJSON(n.Default),
			Span:    spanToJSON(n.Span),
		}
	case *ast.ComponentInstance:
		out := ItemJSON{Kind: "instance", Name: n.Name.Name, Span: spanToJSON(n.Span)}
		for _, m := range n.Members {
			out.Members = append(out.Members, nodeToJSON(m))
		}
		return out
	case *ast.PropertyAssignment:
		return ItemJSON{
			Kind:  "assignment",
			Name:  n.Name.Name,
			Value: valueToJSON(n.Value),
			Span:  spanToJSON(n.Span),
		}
	default:
		panic(fmt.Sprintf("unexpected node %T", node))
	}
}

func valueToJSON(v ast.Value) *ValueJSON {
	if v == nil {
		return nil
	}
	return &ValueJSON{Kind: v.Kind().String(), Text: v.String()}
}

func spanToJSON(s rice.Span) SpanJSON {
	return SpanJSON{Start: uint32(s.Start), End: uint32(s.End)}
}

func diagnosticToJSON(d rice.Diagnostic) DiagnosticJSON {
	return DiagnosticJSON{
		Severity:    d.Severity.String(),
		SeverityNum: int(d.Severity),
		Code:        d.Code,
		Message:     d.Message,
		File:        d.File,
		Line:        d.Line,
		Column:      d.Column,
	}
}
