package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueKind identifies the literal form of a Value.
type ValueKind int

const (
	ValueBool ValueKind = iota
	ValueString
	ValuePixels
	ValueFraction
	ValuePercentage
	ValueIdent
)

func (k ValueKind) String() string {
	switch k {
	case ValueBool:
		return "boolean"
	case ValueString:
		return "string"
	case ValuePixels:
		return "pixels"
	case ValueFraction:
		return "fraction"
	case ValuePercentage:
		return "percentage"
	case ValueIdent:
		return "identifier"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

// Value is a property value. Values are literals or bare identifiers;
// there are no expressions.
//
// Concrete types: *BoolValue, *StringValue, *PixelValue, *FractionValue,
// *PercentageValue, *IdentValue.
type Value interface {
	Node
	Kind() ValueKind
	// String returns the value in Rice source syntax.
	String() string
	value()
}

// BoolValue is 'true' or 'false'.
type BoolValue struct {
	Value bool
	Span  Span
}

func (v *BoolValue) NodeSpan() Span { return v.Span }
func (*BoolValue) Kind() ValueKind  { return ValueBool }
func (v *BoolValue) String() string { return strconv.FormatBool(v.Value) }
func (*BoolValue) value()            {}

// StringValue is a quoted string. Value holds the unescaped text.
type StringValue struct {
	Value string
	Span  Span
}

func (v *StringValue) NodeSpan() Span { return v.Span }
func (*StringValue) Kind() ValueKind  { return ValueString }
func (v *StringValue) String() string { return Quote(v.Value) }
func (*StringValue) value()           {}

// PixelValue is an amount like '10px'.
type PixelValue struct {
	Amount float64
	Span   Span
}

func (v *PixelValue) NodeSpan() Span { return v.Span }
func (*PixelValue) Kind() ValueKind  { return ValuePixels }
func (v *PixelValue) String() string { return formatAmount(v.Amount) + "px" }
func (*PixelValue) value()           {}

// FractionValue is an amount like '1fr' or '2.5fr'.
type FractionValue struct {
	Amount float64
	Span   Span
}

func (v *FractionValue) NodeSpan() Span { return v.Span }
func (*FractionValue) Kind() ValueKind  { return ValueFraction }
func (v *FractionValue) String() string { return formatAmount(v.Amount) + "fr" }
func (*FractionValue) value()           {}

// PercentageValue is an amount like '50%'.
type PercentageValue struct {
	Amount float64
	Span   Span
}

func (v *PercentageValue) NodeSpan() Span { return v.Span }
func (*PercentageValue) Kind() ValueKind  { return ValuePercentage }
func (v *PercentageValue) String() string { return formatAmount(v.Amount) + "%" }
func (*PercentageValue) value()           {}

// IdentValue is a bare lowercase identifier naming an enum variant or
// another constant.
type IdentValue struct {
	Name string
	Span Span
}

func (v *IdentValue) NodeSpan() Span { return v.Span }
func (*IdentValue) Kind() ValueKind  { return ValueIdent }
func (v *IdentValue) String() string { return v.Name }
func (*IdentValue) value()           {}

func formatAmount(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Quote returns s as a Rice string literal. Quotes and backslashes are
// escaped, as are newline, carriage return, and tab.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// Unquote returns the text of a Rice string literal. The surrounding quotes
// are optional at the end so that unterminated literals still yield their
// content. '\n', '\r', and '\t' map to control characters; a backslash
// before any other character yields that character.
func Unquote(lit string) string {
	lit = strings.TrimPrefix(lit, `"`)
	if strings.HasSuffix(lit, `"`) && !escapedAt(lit, len(lit)-1) {
		lit = lit[:len(lit)-1]
	}
	if !strings.Contains(lit, `\`) {
		return lit
	}

	var b strings.Builder
	b.Grow(len(lit))
	for i := 0; i < len(lit); i++ {
		c := lit[i]
		if c != '\\' || i+1 == len(lit) {
			b.WriteByte(c)
			continue
		}
		i++
		switch lit[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		default:
			b.WriteByte(lit[i])
		}
	}
	return b.String()
}

// escapedAt reports whether the byte at i is preceded by an odd number of
// backslashes.
func escapedAt(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}
