// Package lexer provides tokenization for Rice source text.
package lexer

import (
	"github.com/ricelang/rice/internal/types"
)

// Token is a token with kind and source span.
type Token struct {
	Kind TokenKind
	Span types.Span
}

// NewToken creates a new token.
func NewToken(kind TokenKind, span types.Span) Token {
	return Token{Kind: kind, Span: span}
}

// TokenKind identifies a token type.
type TokenKind int

const (
	// === Special ===

	// TokError is a lexical error (unrecognized character, malformed number).
	TokError TokenKind = iota
	// TokEOF is end of input.
	TokEOF

	// === Trivia ===

	// TokComment is one or more consecutive '//' lines.
	TokComment
	// TokDocstring is one or more consecutive '///' lines.
	TokDocstring

	// === Identifiers ===

	// TokClassname is an uppercase-initial identifier (type and component names).
	TokClassname
	// TokIdent is a lowercase-initial identifier. Whether it names a property
	// or refers to a value is decided by the parser from its position.
	TokIdent

	// === Literals ===

	// TokString is a double-quoted string literal.
	TokString
	// TokPixels is an integer followed by 'px'.
	TokPixels
	// TokFraction is a decimal followed by 'fr'.
	TokFraction
	// TokPercentage is a decimal followed by '%'.
	TokPercentage

	// === Punctuation ===

	// TokLBrace is '{'.
	TokLBrace
	// TokRBrace is '}'.
	TokRBrace
	// TokColon is ':'.
	TokColon
	// TokEquals is '='.
	TokEquals

	// === Keywords ===

	// TokKwEnum is 'enum'.
	TokKwEnum
	// TokKwComponent is 'component'.
	TokKwComponent
	// TokKwTrue is 'true'.
	TokKwTrue
	// TokKwFalse is 'false'.
	TokKwFalse
)

// String returns a short human-readable name for the token kind, suitable
// for "expected X, found Y" messages.
func (k TokenKind) String() string {
	switch k {
	case TokError:
		return "invalid token"
	case TokEOF:
		return "end of input"
	case TokComment:
		return "comment"
	case TokDocstring:
		return "docstring"
	case TokClassname:
		return "classname"
	case TokIdent:
		return "identifier"
	case TokString:
		return "string"
	case TokPixels:
		return "pixel amount"
	case TokFraction:
		return "fraction amount"
	case TokPercentage:
		return "percentage amount"
	case TokLBrace:
		return "'{'"
	case TokRBrace:
		return "'}'"
	case TokColon:
		return "':'"
	case TokEquals:
		return "'='"
	case TokKwEnum:
		return "'enum'"
	case TokKwComponent:
		return "'component'"
	case TokKwTrue:
		return "'true'"
	case TokKwFalse:
		return "'false'"
	default:
		return "unknown"
	}
}

// Name returns the upper-case token class name used in token dumps.
func (k TokenKind) Name() string {
	switch k {
	case TokError:
		return "ERROR"
	case TokEOF:
		return "EOF"
	case TokComment:
		return "COMMENT"
	case TokDocstring:
		return "DOCSTRING"
	case TokClassname:
		return "CLASSNAME"
	case TokIdent:
		return "IDENTIFIER"
	case TokString:
		return "STRING"
	case TokPixels:
		return "PIXELS"
	case TokFraction:
		return "FRACTION"
	case TokPercentage:
		return "PERCENTAGE"
	case TokLBrace:
		return "LBRACE"
	case TokRBrace:
		return "RBRACE"
	case TokColon:
		return "COLON"
	case TokEquals:
		return "EQUALS"
	case TokKwEnum:
		return "ENUM"
	case TokKwComponent:
		return "COMPONENT"
	case TokKwTrue:
		return "TRUE"
	case TokKwFalse:
		return "FALSE"
	default:
		return "UNKNOWN"
	}
}

// IsKeyword returns true if this token is a keyword.
func (k TokenKind) IsKeyword() bool {
	return k >= TokKwEnum && k <= TokKwFalse
}

// IsTrivia returns true for comments and docstrings.
func (k TokenKind) IsTrivia() bool {
	return k == TokComment || k == TokDocstring
}

// IsValue returns true if the token can start a property value.
func (k TokenKind) IsValue() bool {
	switch k {
	case TokKwTrue, TokKwFalse, TokString, TokPixels, TokFraction,
		TokPercentage, TokIdent:
		return true
	default:
		return false
	}
}
