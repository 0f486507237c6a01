package lexer

import (
	"fmt"
	"log/slog"
	"slices"
	"unicode/utf8"

	"github.com/ricelang/rice/internal/types"
)

// Lexer tokenizes Rice source text.
//
// Whitespace is discarded. Comments and docstrings are returned as trivia
// tokens, with consecutive lines of the same kind folded into one token.
// Lexical errors produce TokError tokens and a diagnostic; lexing always
// continues with the next character.
type Lexer struct {
	source      []byte
	pos         int
	diagnostics []types.SpanDiagnostic
	types.Logger
}

// New returns a Lexer that tokenizes the given source bytes.
func New(source []byte, logger *slog.Logger) *Lexer {
	l := &Lexer{
		source: source,
		pos:    0,
		Logger: types.Logger{L: logger},
	}
	l.Log(slog.LevelDebug, "lexer initialized", slog.Int("bytes", len(source)))
	return l
}

// Reset rewinds the lexer to the start of its input and clears diagnostics.
func (l *Lexer) Reset() {
	l.pos = 0
	l.diagnostics = nil
}

// Diagnostics returns a copy of all collected diagnostics.
func (l *Lexer) Diagnostics() []types.SpanDiagnostic {
	return slices.Clone(l.diagnostics)
}

// Source returns the text covered by span.
func (l *Lexer) Source(span types.Span) string {
	return string(l.source[span.Start:span.End])
}

func (l *Lexer) traceToken(tok Token) {
	if l.TraceEnabled() {
		l.Trace("token",
			slog.String("kind", tok.Kind.Name()),
			slog.Int("start", int(tok.Span.Start)),
			slog.Int("end", int(tok.Span.End)))
	}
}

// Tokenize consumes all source text and returns the token stream
// along with any diagnostics generated during lexing.
func (l *Lexer) Tokenize() ([]Token, []types.SpanDiagnostic) {
	estimatedTokens := max(len(l.source)/4, 16)
	tokens := make([]Token, 0, estimatedTokens)
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == TokEOF {
			break
		}
	}
	l.Log(slog.LevelDebug, "tokenization complete",
		slog.Int("tokens", len(tokens)),
		slog.Int("diagnostics", len(l.diagnostics)))
	return tokens, l.Diagnostics()
}

// NextToken advances the lexer and returns the next token.
// Returns TokEOF when all input is consumed, and on every call after that.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	start := l.pos
	b, ok := l.peek()
	if !ok {
		return l.token(TokEOF, start)
	}

	switch b {
	case '{':
		l.advance()
		return l.token(TokLBrace, start)
	case '}':
		l.advance()
		return l.token(TokRBrace, start)
	case ':':
		l.advance()
		return l.token(TokColon, start)
	case '=':
		l.advance()
		return l.token(TokEquals, start)
	case '"':
		return l.scanString()
	case '/':
		if l.peekAtEquals(1, '/') {
			return l.scanLineTrivia()
		}
	}

	if isDigit(b) {
		return l.scanNumber()
	}

	if isAlpha(b) {
		return l.scanIdentifierOrKeyword()
	}

	r, size := utf8.DecodeRune(l.source[l.pos:])
	l.pos += size
	span := l.spanFrom(start)
	if r == utf8.RuneError && size <= 1 {
		l.error(types.DiagUnexpectedCharacter, span, fmt.Sprintf("unexpected byte 0x%02x", b))
	} else {
		l.error(types.DiagUnexpectedCharacter, span, fmt.Sprintf("unexpected character %q", r))
	}
	return l.token(TokError, start)
}

func (l *Lexer) peek() (byte, bool) {
	if l.pos >= len(l.source) {
		return 0, false
	}
	return l.source[l.pos], true
}

func (l *Lexer) peekAt(offset int) (byte, bool) {
	idx := l.pos + offset
	if idx >= len(l.source) {
		return 0, false
	}
	return l.source[idx], true
}

func (l *Lexer) peekAtEquals(offset int, expected byte) bool {
	b, ok := l.peekAt(offset)
	return ok && b == expected
}

func (l *Lexer) advance() (byte, bool) {
	if l.pos >= len(l.source) {
		return 0, false
	}
	b := l.source[l.pos]
	l.pos++
	return b, true
}

func (l *Lexer) skipWhitespace() {
	for {
		b, ok := l.peek()
		if !ok || !isSpace(b) {
			return
		}
		l.advance()
	}
}

func (l *Lexer) skipToEOL() {
	for {
		b, ok := l.peek()
		if !ok || b == '\n' {
			return
		}
		l.advance()
	}
}

func (l *Lexer) error(code string, span types.Span, message string) {
	l.diagnostics = append(l.diagnostics, types.SpanDiagnostic{
		Severity: types.SeverityError,
		Code:     code,
		Span:     span,
		Message:  message,
	})
}

func (l *Lexer) spanFrom(start int) types.Span {
	return types.Span{
		Start: types.ByteOffset(start),
		End:   types.ByteOffset(l.pos),
	}
}

func (l *Lexer) token(kind TokenKind, start int) Token {
	tok := Token{
		Kind: kind,
		Span: l.spanFrom(start),
	}
	l.traceToken(tok)
	return tok
}

// isDocMarker reports whether the input at offset starts a '///' line.
func (l *Lexer) isDocMarker(offset int) bool {
	return l.peekAtEquals(offset, '/') && l.peekAtEquals(offset+1, '/') &&
		l.peekAtEquals(offset+2, '/')
}

// scanLineTrivia scans a '//' comment or '///' docstring and folds any
// directly following lines of the same kind into the same token. A blank
// line or any other content ends the group.
func (l *Lexer) scanLineTrivia() Token {
	start := l.pos
	doc := l.isDocMarker(0)
	kind := TokComment
	if doc {
		kind = TokDocstring
	}

	lines := 1
	for {
		l.skipToEOL()
		end := l.pos

		// Look past the line break for another line of the same kind.
		off := 0
		newlines := 0
		for {
			b, ok := l.peekAt(off)
			if !ok || !isSpace(b) {
				break
			}
			if b == '\n' {
				newlines++
				if newlines > 1 {
					break
				}
			}
			off++
		}
		if newlines != 1 || !l.peekAtEquals(off, '/') || !l.peekAtEquals(off+1, '/') ||
			l.isDocMarker(off) != doc {
			l.pos = end
			break
		}
		l.pos += off
		lines++
	}

	if lines > 1 {
		l.Log(slog.LevelDebug, "folded trivia lines",
			slog.String("kind", kind.Name()),
			slog.Int("offset", start),
			slog.Int("lines", lines))
	}
	return l.token(kind, start)
}

func (l *Lexer) scanIdentifierOrKeyword() Token {
	start := l.pos
	firstChar, _ := l.advance()

	for {
		b, ok := l.peek()
		if !ok || !(isAlphanumeric(b) || b == '_') {
			break
		}
		l.advance()
	}

	if isUpperAlpha(firstChar) {
		return l.token(TokClassname, start)
	}

	if kind, ok := LookupKeyword(string(l.source[start:l.pos])); ok {
		return l.token(kind, start)
	}
	return l.token(TokIdent, start)
}

// scanNumber scans a numeric literal with its mandatory unit suffix.
// The longest valid literal wins: "12.5fr" is one token. Digits without a
// recognized suffix (e.g. "10", "1.5px", "3em") form a single TokError
// token covering the digits and any trailing word characters.
func (l *Lexer) scanNumber() Token {
	start := l.pos
	l.skipDigits()

	fractional := false
	if l.peekAtEquals(0, '.') {
		if next, ok := l.peekAt(1); ok && isDigit(next) {
			l.advance() // consume .
			l.skipDigits()
			fractional = true
		}
	}

	switch {
	case !fractional && l.peekAtEquals(0, 'p') && l.peekAtEquals(1, 'x'):
		l.pos += 2
		return l.token(TokPixels, start)
	case l.peekAtEquals(0, 'f') && l.peekAtEquals(1, 'r'):
		l.pos += 2
		return l.token(TokFraction, start)
	case l.peekAtEquals(0, '%'):
		l.advance()
		return l.token(TokPercentage, start)
	}

	for {
		b, ok := l.peek()
		if !ok || !(isAlphanumeric(b) || b == '_' || b == '%') {
			break
		}
		l.advance()
	}
	span := l.spanFrom(start)
	l.error(types.DiagMalformedNumber, span,
		fmt.Sprintf("malformed number %q: expected a px, fr, or %% suffix", l.Source(span)))
	return l.token(TokError, start)
}

func (l *Lexer) skipDigits() {
	for {
		b, ok := l.peek()
		if !ok || !isDigit(b) {
			return
		}
		l.advance()
	}
}

// scanString scans a double-quoted string. A backslash escapes any
// following byte, including a quote or a newline.
func (l *Lexer) scanString() Token {
	start := l.pos
	l.advance() // consume opening quote

	for {
		b, ok := l.advance()
		if !ok {
			span := l.spanFrom(start)
			l.error(types.DiagUnterminatedString, span, "unterminated string literal")
			return l.token(TokString, start)
		}
		switch b {
		case '"':
			return l.token(TokString, start)
		case '\\':
			l.advance()
		}
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == '\f' || b == '\v'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isUpperAlpha(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

func isAlphanumeric(b byte) bool {
	return isAlpha(b) || isDigit(b)
}
