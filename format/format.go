// Package format prints Rice documents in canonical form.
//
// The canonical form indents with two spaces, puts one member per line,
// and separates top-level items with a blank line. Docstrings are printed
// above the node they document. Comments keep their position relative to
// the surrounding members but are always printed on a line of their own.
package format

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ricelang/rice/ast"
	"github.com/ricelang/rice/internal/parser"
	"github.com/ricelang/rice/internal/types"
)

// ErrSyntax is returned by Source when the input has syntax errors.
var ErrSyntax = errors.New("syntax error")

const indentUnit = "  "

// Source parses src and returns it in canonical form. Input with
// error-severity diagnostics is rejected with an error wrapping ErrSyntax
// that locates the first error.
func Source(src []byte) ([]byte, error) {
	p := parser.New(src, nil, types.DefaultConfig())
	doc := p.ParseDocument()

	for _, d := range p.Diagnostics() {
		if d.Severity.AtLeast(types.SeverityError) {
			line, col := types.BuildLineTable(src).Position(d.Span.Start)
			return nil, fmt.Errorf("%w: %d:%d: %s", ErrSyntax, line, col, d.Message)
		}
	}

	var buf bytes.Buffer
	if err := Node(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Node writes the canonical form of doc to w. Comments are taken from
// doc.Comments and placed using their spans.
func Node(w io.Writer, doc *ast.Document) error {
	pr := &printer{comments: doc.Comments}

	for i, item := range doc.Items {
		if i > 0 {
			pr.buf.WriteByte('\n')
		}
		pr.item(item, 0)
	}
	if pr.next < len(pr.comments) && len(doc.Items) > 0 {
		pr.buf.WriteByte('\n')
	}
	pr.flushComments(types.ByteOffset(^uint32(0)), 0)

	_, err := w.Write(pr.buf.Bytes())
	return err
}

type printer struct {
	buf      bytes.Buffer
	comments []*ast.Comment
	next     int // index of the first comment not yet printed
}

func (p *printer) indent(depth int) {
	for i := 0; i < depth; i++ {
		p.buf.WriteString(indentUnit)
	}
}

func (p *printer) line(depth int, parts ...string) {
	p.indent(depth)
	for _, s := range parts {
		p.buf.WriteString(s)
	}
	p.buf.WriteByte('\n')
}

// flushComments prints every pending comment that starts before off.
func (p *printer) flushComments(off types.ByteOffset, depth int) {
	for p.next < len(p.comments) && p.comments[p.next].Span.Start < off {
		p.trivia(p.comments[p.next].Lines, "//", depth)
		p.next++
	}
}

func (p *printer) hasCommentBefore(off types.ByteOffset) bool {
	return p.next < len(p.comments) && p.comments[p.next].Span.Start < off
}

func (p *printer) trivia(lines []string, marker string, depth int) {
	for _, l := range lines {
		if l == "" {
			p.line(depth, marker)
		} else {
			p.line(depth, marker, " ", l)
		}
	}
}

// leading prints the comments and docstring that precede a node.
func (p *printer) leading(doc *ast.Docstring, start types.ByteOffset, depth int) {
	if doc != nil {
		p.flushComments(doc.Span.Start, depth)
		p.trivia(doc.Lines, "///", depth)
	}
	p.flushComments(start, depth)
}

func (p *printer) item(item ast.Node, depth int) {
	switch n := item.(type) {
	case *ast.EnumDecl:
		p.enumDecl(n, depth)
	case *ast.ComponentDecl:
		p.componentDecl(n, depth)
	case *ast.ComponentInstance:
		p.instance(n, depth)
	case *ast.PropertyDecl:
		p.propertyDecl(n, depth)
	case *ast.PropertyAssignment:
		p.assignment(n, depth)
	}
}

// open prints a block header, or the whole block when it is empty.
// It reports whether members follow.
func (p *printer) open(depth int, header string, members int, rbrace types.ByteOffset) bool {
	if members == 0 && !p.hasCommentBefore(rbrace) {
		p.line(depth, header, " {}")
		return false
	}
	p.line(depth, header, " {")
	return true
}

func (p *printer) close(depth int, rbrace types.ByteOffset) {
	p.flushComments(rbrace, depth+1)
	p.line(depth, "}")
}

func (p *printer) enumDecl(decl *ast.EnumDecl, depth int) {
	p.leading(decl.Doc, decl.Span.Start, depth)
	if !p.open(depth, "enum "+decl.Name.Name, len(decl.Variants), decl.Rbrace) {
		return
	}
	for _, v := range decl.Variants {
		p.leading(v.Doc, v.Span.Start, depth+1)
		p.line(depth+1, v.Name.Name)
	}
	p.close(depth, decl.Rbrace)
}

func (p *printer) componentDecl(decl *ast.ComponentDecl, depth int) {
	p.leading(decl.Doc, decl.Span.Start, depth)
	if !p.open(depth, "component "+decl.Name.Name, len(decl.Members), decl.Rbrace) {
		return
	}
	for _, m := range decl.Members {
		p.item(m, depth+1)
	}
	p.close(depth, decl.Rbrace)
}

func (p *printer) instance(inst *ast.ComponentInstance, depth int) {
	p.leading(nil, inst.Span.Start, depth)
	if !inst.HasBody {
		p.line(depth, inst.Name.Name)
		return
	}
	if !p.open(depth, inst.Name.Name, len(inst.Members), inst.Rbrace) {
		return
	}
	for _, m := range inst.Members {
		p.item(m, depth+1)
	}
	p.close(depth, inst.Rbrace)
}

func (p *printer) propertyDecl(decl *ast.PropertyDecl, depth int) {
	p.leading(decl.Doc, decl.Span.Start, depth)
	var b strings.Builder
	b.WriteString(decl.Name.Name)
	b.WriteByte(' ')
	b.WriteString(decl.Type.Name)
	if decl.Default != nil {
		b.WriteString(" = ")
		b.WriteString(decl.Default.String())
	}
	p.line(depth, b.String())
}

func (p *printer) assignment(assign *ast.PropertyAssignment, depth int) {
	p.leading(nil, assign.Span.Start, depth)
	if assign.Value == nil {
		p.line(depth, assign.Name.Name)
		return
	}
	p.line(depth, assign.Name.Name, ": ", assign.Value.String())
}
