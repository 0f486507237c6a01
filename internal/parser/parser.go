// Package parser provides Rice parsing into an AST.
//
// The parser is a recursive-descent parser with one token of lookahead.
// Comments are collected as trivia; a docstring is carried on the next
// significant token and claimed by the declaration, enum variant, or
// property declaration that starts there. A docstring nobody claims is
// reported as dangling.
//
// The parser never fails. Syntax errors are collected as diagnostics and
// the parser resynchronizes at the next '}' or top-level item, so a
// best-effort Document is always returned.
package parser

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/ricelang/rice/ast"
	"github.com/ricelang/rice/internal/lexer"
	"github.com/ricelang/rice/internal/types"
)

// DefaultMaxDepth is the default limit on nested '{' blocks.
const DefaultMaxDepth = 256

// token is a significant token together with the docstring that
// immediately preceded it, if any.
type token struct {
	lexer.Token
	doc *ast.Docstring
}

// Parser converts a token stream into a Document with diagnostics.
type Parser struct {
	source      []byte
	lex         *lexer.Lexer
	cur         token // one token of lookahead
	pendingDoc  *ast.Docstring
	comments    []*ast.Comment
	diagnostics []types.SpanDiagnostic
	diagConfig  types.DiagnosticConfig
	maxDepth    int
	depth       int
	lastEnd     types.ByteOffset
	skipping    bool
	types.Logger
}

// New returns a Parser that lexes the source and prepares for parsing.
// Pass nil for logger to disable logging. The diagConfig controls which
// non-structural diagnostics are reported.
func New(source []byte, logger *slog.Logger, diagConfig types.DiagnosticConfig) *Parser {
	p := &Parser{
		source:     source,
		lex:        lexer.New(source, types.ComponentLogger(logger, "lexer")),
		diagConfig: diagConfig,
		maxDepth:   DefaultMaxDepth,
		Logger:     types.Logger{L: logger},
	}
	p.cur = p.fetch()
	p.Log(slog.LevelDebug, "parser initialized")
	return p
}

// SetMaxDepth limits how deeply blocks may nest. Values below 1 restore
// DefaultMaxDepth.
func (p *Parser) SetMaxDepth(n int) {
	if n < 1 {
		n = DefaultMaxDepth
	}
	p.maxDepth = n
}

// Diagnostics returns lexer and parser diagnostics ordered by position.
func (p *Parser) Diagnostics() []types.SpanDiagnostic {
	diags := append(p.lex.Diagnostics(), p.diagnostics...)
	slices.SortStableFunc(diags, func(a, b types.SpanDiagnostic) int {
		return int(a.Span.Start) - int(b.Span.Start)
	})
	return diags
}

// ParseDocument parses the whole input. Syntax errors are collected in
// Diagnostics rather than causing failure.
func (p *Parser) ParseDocument() *ast.Document {
	doc := &ast.Document{}

	for !p.isEOF() {
		if item := p.parseItem(); item != nil {
			doc.Items = append(doc.Items, item)
		}
	}

	if d := p.takeDoc(); d != nil {
		p.danglingDoc(d)
	}

	doc.Comments = p.comments
	doc.Span = types.NewSpan(0, types.ByteOffset(len(p.source)))

	p.Log(slog.LevelDebug, "parsing complete",
		slog.Int("items", len(doc.Items)),
		slog.Int("comments", len(doc.Comments)),
		slog.Int("diagnostics", len(p.diagnostics)))

	return doc
}

// fetch pulls the next significant token from the lexer, collecting
// comments and docstrings on the way.
func (p *Parser) fetch() token {
	for {
		tok := p.lex.NextToken()
		switch tok.Kind {
		case lexer.TokComment:
			p.comments = append(p.comments, &ast.Comment{
				Lines: triviaLines(p.text(tok.Span), "//"),
				Span:  tok.Span,
			})
		case lexer.TokDocstring:
			if p.pendingDoc != nil {
				p.danglingDoc(p.pendingDoc)
			}
			p.pendingDoc = &ast.Docstring{
				Lines: triviaLines(p.text(tok.Span), "///"),
				Span:  tok.Span,
			}
		default:
			t := token{Token: tok, doc: p.pendingDoc}
			p.pendingDoc = nil
			return t
		}
	}
}

func (p *Parser) isEOF() bool {
	return p.peek().Kind == lexer.TokEOF
}

func (p *Parser) peek() lexer.Token {
	return p.cur.Token
}

// advance consumes the current token. A docstring still attached to it
// was not claimed by any production and is reported as dangling.
func (p *Parser) advance() lexer.Token {
	cur := p.cur
	if cur.doc != nil {
		p.danglingDoc(cur.doc)
	}
	if cur.Kind == lexer.TokEOF {
		p.cur.doc = nil
		return cur.Token
	}
	p.lastEnd = cur.Span.End
	p.cur = p.fetch()
	return cur.Token
}

// takeDoc claims the docstring attached to the current token.
func (p *Parser) takeDoc() *ast.Docstring {
	d := p.cur.doc
	p.cur.doc = nil
	return d
}

func (p *Parser) check(kind lexer.TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) expect(kind lexer.TokenKind, what string) (lexer.Token, bool) {
	if p.check(kind) {
		return p.advance(), true
	}
	p.unexpected(what)
	return lexer.Token{}, false
}

func (p *Parser) text(span types.Span) string {
	return string(p.source[span.Start:span.End])
}

func (p *Parser) makeIdent(tok lexer.Token) ast.Ident {
	return ast.NewIdent(p.text(tok.Span), tok.Span)
}

func (p *Parser) spanFrom(start types.ByteOffset) types.Span {
	return types.NewSpan(start, max(start, p.lastEnd))
}

// emitDiagnostic records a diagnostic if the current config reports it.
func (p *Parser) emitDiagnostic(code string, severity types.Severity, span types.Span, message string) {
	if !p.diagConfig.ShouldReport(code, severity) {
		return
	}
	p.diagnostics = append(p.diagnostics, types.SpanDiagnostic{
		Severity: p.diagConfig.SeverityFor(code, severity),
		Code:     code,
		Span:     span,
		Message:  message,
	})
}

// recordParseError appends a structural parse error unconditionally.
// Parse errors bypass ShouldReport() filtering because they indicate
// a syntax problem that must be reported at any strictness level.
func (p *Parser) recordParseError(code string, span types.Span, message string) {
	p.diagnostics = append(p.diagnostics, types.SpanDiagnostic{
		Severity: types.SeverityError,
		Code:     code,
		Span:     span,
		Message:  message,
	})
}

func (p *Parser) describe(tok lexer.Token) string {
	switch tok.Kind {
	case lexer.TokIdent, lexer.TokClassname, lexer.TokString,
		lexer.TokPixels, lexer.TokFraction, lexer.TokPercentage:
		return fmt.Sprintf("%s %q", tok.Kind, p.text(tok.Span))
	default:
		return tok.Kind.String()
	}
}

// unexpected reports the current token. Error tokens were already
// reported by the lexer.
func (p *Parser) unexpected(expected string) {
	tok := p.peek()
	if tok.Kind == lexer.TokError {
		return
	}
	p.recordParseError(types.DiagUnexpectedToken, tok.Span,
		fmt.Sprintf("expected %s, found %s", expected, p.describe(tok)))
}

func (p *Parser) danglingDoc(d *ast.Docstring) {
	if p.skipping {
		return
	}
	p.emitDiagnostic(types.DiagDanglingDocstring, types.SeverityMinor, d.Span,
		"docstring is not followed by a declaration, enum variant, or property declaration")
}

func (p *Parser) unterminated(lbrace lexer.Token, what string) {
	span := types.NewSpan(lbrace.Span.Start, types.ByteOffset(len(p.source)))
	p.recordParseError(types.DiagUnterminatedBlock, span,
		fmt.Sprintf("unterminated %s: missing '}'", what))
}

// enterBlock is called after consuming '{'. It reports and skips the block
// when the nesting limit is reached.
func (p *Parser) enterBlock(lbrace lexer.Token) bool {
	if p.depth < p.maxDepth {
		p.depth++
		return true
	}
	p.recordParseError(types.DiagMaxDepthExceeded, lbrace.Span,
		fmt.Sprintf("blocks nested deeper than %d levels", p.maxDepth))
	p.skipBlockBody()
	return false
}

func (p *Parser) exitBlock() {
	p.depth--
}

// skipBlockBody consumes tokens up to and including the '}' matching an
// already consumed '{'. Returns false at end of input.
func (p *Parser) skipBlockBody() bool {
	p.skipping = true
	defer func() { p.skipping = false }()

	depth := 1
	for !p.isEOF() {
		switch p.advance().Kind {
		case lexer.TokLBrace:
			depth++
		case lexer.TokRBrace:
			depth--
			if depth == 0 {
				return true
			}
		}
	}
	return false
}

// skipToken consumes the current token, and the whole block when it is '{'.
func (p *Parser) skipToken() {
	if p.advance().Kind == lexer.TokLBrace {
		p.skipBlockBody()
	}
}

// skipDisallowedDecl consumes an 'enum' or 'component' declaration written
// where declarations are not allowed.
func (p *Parser) skipDisallowedDecl() {
	p.skipping = true
	p.advance()
	if p.check(lexer.TokClassname) {
		p.advance()
	}
	if p.check(lexer.TokLBrace) {
		p.advance()
		p.skipBlockBody()
	}
	p.skipping = false
}

// recoverToItem skips tokens until the start of the next top-level item.
// Braced blocks are skipped whole.
func (p *Parser) recoverToItem() {
	p.skipping = true
	defer func() { p.skipping = false }()

	for !p.isEOF() {
		switch p.peek().Kind {
		case lexer.TokKwEnum, lexer.TokKwComponent, lexer.TokClassname:
			return
		case lexer.TokLBrace:
			p.advance()
			p.skipBlockBody()
			p.skipping = true
		default:
			p.advance()
		}
	}
}

// parseItem parses: enum_decl | component_decl | component
func (p *Parser) parseItem() ast.Item {
	tok := p.peek()
	if p.TraceEnabled() {
		p.Trace("parsing item",
			slog.Int("offset", int(tok.Span.Start)),
			slog.String("first", tok.Kind.Name()))
	}

	switch tok.Kind {
	case lexer.TokKwEnum:
		decl, ok := p.parseEnumDecl()
		if !ok {
			p.recoverToItem()
		}
		if decl != nil {
			return decl
		}
	case lexer.TokKwComponent:
		decl, ok := p.parseComponentDecl()
		if !ok {
			p.recoverToItem()
		}
		if decl != nil {
			return decl
		}
	case lexer.TokClassname:
		inst, _ := p.parseInstance()
		return inst
	default:
		p.unexpected("'enum', 'component', or a component classname")
		p.skipToken()
		p.recoverToItem()
	}
	return nil
}

// parseEnumDecl parses: [docstring] enum Classname { ([docstring] variant)* }
// Variants may be written in either case.
func (p *Parser) parseEnumDecl() (*ast.EnumDecl, bool) {
	doc := p.takeDoc()
	kw := p.advance() // consume enum

	nameTok, ok := p.expect(lexer.TokClassname, "enum name")
	if !ok {
		return nil, false
	}
	decl := &ast.EnumDecl{
		Doc:  doc,
		Name: p.makeIdent(nameTok),
	}

	lbrace, ok := p.expect(lexer.TokLBrace, "'{'")
	if !ok {
		decl.Rbrace = p.lastEnd
		decl.Span = p.spanFrom(kw.Span.Start)
		return decl, false
	}
	if !p.enterBlock(lbrace) {
		decl.Rbrace = p.lastEnd
		decl.Span = p.spanFrom(kw.Span.Start)
		return decl, true
	}
	defer p.exitBlock()

	ok = true
	recovering := false
	for {
		tok := p.peek()
		switch tok.Kind {
		case lexer.TokIdent, lexer.TokClassname:
			vdoc := p.takeDoc()
			p.advance()
			decl.Variants = append(decl.Variants, &ast.EnumVariant{
				Doc:  vdoc,
				Name: p.makeIdent(tok),
				Span: tok.Span,
			})
			recovering = false
			continue

		case lexer.TokRBrace:
			p.advance()
			decl.Rbrace = tok.Span.Start

		case lexer.TokEOF:
			p.unterminated(lbrace, "enum body")
			decl.Rbrace = tok.Span.Start
			ok = false

		case lexer.TokKwEnum, lexer.TokKwComponent:
			p.unexpected("enum variant or '}'")
			p.skipDisallowedDecl()
			recovering = true
			continue

		default:
			if !recovering {
				p.unexpected("enum variant or '}'")
				recovering = true
			}
			p.skipToken()
			continue
		}
		break
	}

	decl.Span = p.spanFrom(kw.Span.Start)
	p.Log(slog.LevelDebug, "parsed enum",
		slog.String("enum", decl.Name.Name),
		slog.Int("variants", len(decl.Variants)))
	return decl, ok
}

// parseComponentDecl parses: [docstring] component Classname { block_decl* }
func (p *Parser) parseComponentDecl() (*ast.ComponentDecl, bool) {
	doc := p.takeDoc()
	kw := p.advance() // consume component

	nameTok, ok := p.expect(lexer.TokClassname, "component name")
	if !ok {
		return nil, false
	}
	decl := &ast.ComponentDecl{
		Doc:  doc,
		Name: p.makeIdent(nameTok),
	}

	lbrace, ok := p.expect(lexer.TokLBrace, "'{'")
	if !ok {
		decl.Rbrace = p.lastEnd
		decl.Span = p.spanFrom(kw.Span.Start)
		return decl, false
	}
	if !p.enterBlock(lbrace) {
		decl.Rbrace = p.lastEnd
		decl.Span = p.spanFrom(kw.Span.Start)
		return decl, true
	}
	defer p.exitBlock()

	ok = true
	recovering := false
	for {
		tok := p.peek()
		switch tok.Kind {
		case lexer.TokIdent:
			member, memberOK := p.parsePropertyMember()
			decl.Members = append(decl.Members, member)
			recovering = !memberOK
			continue

		case lexer.TokKwComponent:
			nested, nestedOK := p.parseComponentDecl()
			if nested != nil {
				decl.Members = append(decl.Members, nested)
			}
			recovering = !nestedOK
			continue

		case lexer.TokClassname:
			inst, memberOK := p.parseInstance()
			decl.Members = append(decl.Members, inst)
			recovering = !memberOK
			continue

		case lexer.TokRBrace:
			p.advance()
			decl.Rbrace = tok.Span.Start

		case lexer.TokEOF:
			p.unterminated(lbrace, "component declaration body")
			decl.Rbrace = tok.Span.Start
			ok = false

		case lexer.TokKwEnum:
			p.recordParseError(types.DiagUnexpectedToken, tok.Span,
				"enum declarations are only allowed at top level")
			p.skipDisallowedDecl()
			recovering = true
			continue

		default:
			if !recovering {
				p.unexpected("property, component, or '}'")
				recovering = true
			}
			p.skipToken()
			continue
		}
		break
	}

	decl.Span = p.spanFrom(kw.Span.Start)
	p.Log(slog.LevelDebug, "parsed component declaration",
		slog.String("component", decl.Name.Name),
		slog.Int("members", len(decl.Members)))
	return decl, ok
}

// parsePropertyMember parses a member of a component declaration body that
// starts with a lowercase name. One token of lookahead decides its form:
//
//	name Classname [= value]   property declaration
//	name : value               property assignment
//	name                       bare property assignment
//
// Any token other than a classname or ':' ends a bare assignment.
func (p *Parser) parsePropertyMember() (ast.DeclMember, bool) {
	doc := p.takeDoc()
	nameTok := p.advance()
	name := p.makeIdent(nameTok)

	switch p.peek().Kind {
	case lexer.TokClassname:
		typeTok := p.advance()
		decl := &ast.PropertyDecl{
			Doc:  doc,
			Name: name,
			Type: p.makeIdent(typeTok),
		}
		ok := true
		if p.check(lexer.TokEquals) {
			p.advance()
			decl.Default, ok = p.parseValue()
		}
		decl.Span = p.spanFrom(nameTok.Span.Start)
		p.traceMember("property declaration", decl.Name)
		return decl, ok

	default:
		if doc != nil {
			p.danglingDoc(doc)
		}
		assign, ok := p.parseAssignmentTail(nameTok)
		return assign, ok
	}
}

// parseAssignment parses: propname [: value]
func (p *Parser) parseAssignment() (*ast.PropertyAssignment, bool) {
	nameTok := p.advance()
	return p.parseAssignmentTail(nameTok)
}

func (p *Parser) parseAssignmentTail(nameTok lexer.Token) (*ast.PropertyAssignment, bool) {
	assign := &ast.PropertyAssignment{Name: p.makeIdent(nameTok)}
	ok := true
	if p.check(lexer.TokColon) {
		p.advance()
		assign.Value, ok = p.parseValue()
	}
	assign.Span = p.spanFrom(nameTok.Span.Start)
	p.traceMember("property assignment", assign.Name)
	return assign, ok
}

// parseInstance parses: Classname [{ (property | component)* }]
func (p *Parser) parseInstance() (*ast.ComponentInstance, bool) {
	nameTok := p.advance()
	inst := &ast.ComponentInstance{Name: p.makeIdent(nameTok)}

	if !p.check(lexer.TokLBrace) {
		inst.Rbrace = nameTok.Span.End
		inst.Span = nameTok.Span
		return inst, true
	}
	lbrace := p.advance()
	inst.HasBody = true
	if !p.enterBlock(lbrace) {
		inst.Rbrace = p.lastEnd
		inst.Span = p.spanFrom(nameTok.Span.Start)
		return inst, false
	}
	defer p.exitBlock()

	ok := true
	recovering := false
	for {
		tok := p.peek()
		switch tok.Kind {
		case lexer.TokIdent:
			assign, memberOK := p.parseAssignment()
			inst.Members = append(inst.Members, assign)
			recovering = !memberOK
			continue

		case lexer.TokClassname:
			child, memberOK := p.parseInstance()
			inst.Members = append(inst.Members, child)
			recovering = !memberOK
			continue

		case lexer.TokRBrace:
			p.advance()
			inst.Rbrace = tok.Span.Start

		case lexer.TokEOF:
			p.unterminated(lbrace, "component body")
			inst.Rbrace = tok.Span.Start
			ok = false

		case lexer.TokKwEnum, lexer.TokKwComponent:
			p.recordParseError(types.DiagUnexpectedToken, tok.Span,
				fmt.Sprintf("%s declarations are not allowed inside a component instance", tok.Kind))
			p.skipDisallowedDecl()
			recovering = true
			continue

		default:
			if !recovering {
				p.unexpected("property, component, or '}'")
				recovering = true
			}
			p.skipToken()
			continue
		}
		break
	}

	inst.Span = p.spanFrom(nameTok.Span.Start)
	if p.TraceEnabled() {
		p.Trace("parsed instance",
			slog.String("component", inst.Name.Name),
			slog.Int("members", len(inst.Members)))
	}
	return inst, ok
}

// parseValue parses: boolean | string | pixels | fraction | percentage | identifier
// A lexical error in value position is consumed and yields a nil value.
// On any other failure nothing is consumed.
func (p *Parser) parseValue() (ast.Value, bool) {
	tok := p.peek()
	text := p.text(tok.Span)

	switch tok.Kind {
	case lexer.TokKwTrue, lexer.TokKwFalse:
		p.advance()
		return &ast.BoolValue{Value: tok.Kind == lexer.TokKwTrue, Span: tok.Span}, true
	case lexer.TokString:
		p.advance()
		return &ast.StringValue{Value: ast.Unquote(text), Span: tok.Span}, true
	case lexer.TokPixels:
		p.advance()
		return &ast.PixelValue{Amount: p.parseAmount(tok, "px"), Span: tok.Span}, true
	case lexer.TokFraction:
		p.advance()
		return &ast.FractionValue{Amount: p.parseAmount(tok, "fr"), Span: tok.Span}, true
	case lexer.TokPercentage:
		p.advance()
		return &ast.PercentageValue{Amount: p.parseAmount(tok, "%"), Span: tok.Span}, true
	case lexer.TokIdent:
		p.advance()
		return &ast.IdentValue{Name: text, Span: tok.Span}, true
	case lexer.TokError:
		p.advance()
		return nil, false
	default:
		p.unexpected("value")
		return nil, false
	}
}

func (p *Parser) parseAmount(tok lexer.Token, suffix string) float64 {
	digits := strings.TrimSuffix(p.text(tok.Span), suffix)
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		p.recordParseError(types.DiagInvalidNumber, tok.Span,
			fmt.Sprintf("number %q is out of range", digits))
	}
	return v
}

func (p *Parser) traceMember(kind string, name ast.Ident) {
	if p.TraceEnabled() {
		p.Trace("parsed member",
			slog.String("kind", kind),
			slog.String("name", name.Name),
			slog.Int("offset", int(name.Span.Start)))
	}
}

// triviaLines splits a folded comment or docstring token into its lines,
// removing indentation, the marker, and one following space.
func triviaLines(text, marker string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, len(raw))
	for i, line := range raw {
		line = strings.TrimLeft(line, " \t")
		line = strings.TrimPrefix(line, marker)
		line = strings.TrimPrefix(line, " ")
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	return lines
}
