// Package ast provides the syntax tree for parsed Rice documents.
//
// A Document is an ordered list of top-level items. Each item is a
// declaration (EnumDecl, ComponentDecl) describing a reusable type, or a
// ComponentInstance describing a concrete tree of components. Every node
// carries the byte span it was parsed from.
//
// Nodes are built once by the parser and never mutated afterwards. Type
// names in PropertyDecl and names in IdentValue are plain string
// references; resolving them is left to later stages.
package ast

import (
	"strings"

	"github.com/ricelang/rice/internal/types"
)

// ByteOffset is a byte position in source text.
type ByteOffset = types.ByteOffset

// Span is a half-open byte range [Start, End) in source text.
type Span = types.Span

// Node is implemented by every syntax tree node.
type Node interface {
	NodeSpan() Span
}

// Item is a top-level element of a Document:
// *EnumDecl, *ComponentDecl, or *ComponentInstance.
type Item interface {
	Node
	item()
}

// Decl is a type declaration: *EnumDecl or *ComponentDecl.
type Decl interface {
	Item
	DeclName() Ident
	DeclDoc() *Docstring
}

// DeclMember is an element of a component declaration body:
// *PropertyDecl, *PropertyAssignment, *ComponentDecl, or *ComponentInstance.
type DeclMember interface {
	Node
	declMember()
}

// InstanceMember is an element of a component instance body:
// *PropertyAssignment or *ComponentInstance.
type InstanceMember interface {
	Node
	instanceMember()
}

// Document is the root of a parsed source file.
type Document struct {
	Items []Item
	// Comments holds every '//' comment group in source order.
	// Comments are never attached to nodes.
	Comments []*Comment
	Span     Span
}

func (d *Document) NodeSpan() Span { return d.Span }

// Declarations returns the top-level declarations in source order.
func (d *Document) Declarations() []Decl {
	var decls []Decl
	for _, item := range d.Items {
		if decl, ok := item.(Decl); ok {
			decls = append(decls, decl)
		}
	}
	return decls
}

// Instances returns the top-level component instances in source order.
func (d *Document) Instances() []*ComponentInstance {
	var insts []*ComponentInstance
	for _, item := range d.Items {
		if inst, ok := item.(*ComponentInstance); ok {
			insts = append(insts, inst)
		}
	}
	return insts
}

// Ident is an identifier with source location.
type Ident struct {
	Name string
	Span Span
}

// NewIdent creates a new identifier.
func NewIdent(name string, span Span) Ident {
	return Ident{Name: name, Span: span}
}

// Docstring is a group of consecutive '///' lines attached to the
// declaration, variant, or property declaration that follows it.
type Docstring struct {
	// Lines holds each line with the '///' marker and one following
	// space removed.
	Lines []string
	Span  Span
}

func (d *Docstring) NodeSpan() Span { return d.Span }

// Text returns the docstring lines joined with newlines.
func (d *Docstring) Text() string {
	if d == nil {
		return ""
	}
	return strings.Join(d.Lines, "\n")
}

// Comment is a group of consecutive '//' lines.
type Comment struct {
	// Lines holds each line with the '//' marker and one following
	// space removed.
	Lines []string
	Span  Span
}

func (c *Comment) NodeSpan() Span { return c.Span }

// Text returns the comment lines joined with newlines.
func (c *Comment) Text() string {
	return strings.Join(c.Lines, "\n")
}

// EnumDecl declares an enumeration:
//
//	enum Direction { horizontal vertical }
type EnumDecl struct {
	Doc      *Docstring
	Name     Ident
	Variants []*EnumVariant
	// Rbrace is the offset of the closing brace, or the end of input
	// when the block is unterminated.
	Rbrace ByteOffset
	Span   Span
}

func (d *EnumDecl) NodeSpan() Span      { return d.Span }
func (d *EnumDecl) DeclName() Ident     { return d.Name }
func (d *EnumDecl) DeclDoc() *Docstring { return d.Doc }
func (*EnumDecl) item()                 {}

// Variant returns the first variant named name, or nil.
func (d *EnumDecl) Variant(name string) *EnumVariant {
	for _, v := range d.Variants {
		if v.Name.Name == name {
			return v
		}
	}
	return nil
}

// EnumVariant is one member of an enum declaration.
type EnumVariant struct {
	Doc  *Docstring
	Name Ident
	Span Span
}

func (v *EnumVariant) NodeSpan() Span { return v.Span }

// ComponentDecl declares a component type and its properties:
//
//	component Button {
//	    label String = "OK"
//	    Text { value: label }
//	}
type ComponentDecl struct {
	Doc     *Docstring
	Name    Ident
	Members []DeclMember
	Rbrace  ByteOffset
	Span    Span
}

func (d *ComponentDecl) NodeSpan() Span      { return d.Span }
func (d *ComponentDecl) DeclName() Ident     { return d.Name }
func (d *ComponentDecl) DeclDoc() *Docstring { return d.Doc }
func (*ComponentDecl) item()                 {}
func (*ComponentDecl) declMember()           {}

// Properties returns the property declarations of the body in order.
func (d *ComponentDecl) Properties() []*PropertyDecl {
	var props []*PropertyDecl
	for _, m := range d.Members {
		if p, ok := m.(*PropertyDecl); ok {
			props = append(props, p)
		}
	}
	return props
}

// Property returns the first property declaration named name, or nil.
func (d *ComponentDecl) Property(name string) *PropertyDecl {
	for _, p := range d.Properties() {
		if p.Name.Name == name {
			return p
		}
	}
	return nil
}

// PropertyDecl declares a typed property inside a component declaration:
//
//	width Pixels = 10px
type PropertyDecl struct {
	Doc  *Docstring
	Name Ident
	// Type names a built-in value kind or a declared enum or component.
	Type Ident
	// Default is nil when no '= value' clause is present.
	Default Value
	Span    Span
}

func (p *PropertyDecl) NodeSpan() Span { return p.Span }
func (*PropertyDecl) declMember()      {}

// ComponentInstance is a use of a component type:
//
//	Row { gap: 4px Text { value: "hi" } }
//
// A classname without a body is an instance with no members.
type ComponentInstance struct {
	Name    Ident
	Members []InstanceMember
	// HasBody reports whether a '{ ... }' block was written.
	HasBody bool
	Rbrace  ByteOffset
	Span    Span
}

func (c *ComponentInstance) NodeSpan() Span { return c.Span }
func (*ComponentInstance) item()            {}
func (*ComponentInstance) declMember()      {}
func (*ComponentInstance) instanceMember()  {}

// Assignments returns the property assignments of the body in order.
func (c *ComponentInstance) Assignments() []*PropertyAssignment {
	var out []*PropertyAssignment
	for _, m := range c.Members {
		if a, ok := m.(*PropertyAssignment); ok {
			out = append(out, a)
		}
	}
	return out
}

// Children returns the nested instances of the body in order.
func (c *ComponentInstance) Children() []*ComponentInstance {
	var out []*ComponentInstance
	for _, m := range c.Members {
		if child, ok := m.(*ComponentInstance); ok {
			out = append(out, child)
		}
	}
	return out
}

// PropertyAssignment sets a property: 'name: value', or 'name' alone.
// The meaning of a bare name (Value == nil) is left to later stages.
type PropertyAssignment struct {
	Name  Ident
	Value Value
	Span  Span
}

func (a *PropertyAssignment) NodeSpan() Span { return a.Span }
func (*PropertyAssignment) declMember()      {}
func (*PropertyAssignment) instanceMember()  {}

// IsBare reports whether the assignment was written without a value.
func (a *PropertyAssignment) IsBare() bool {
	return a.Value == nil
}
