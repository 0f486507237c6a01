package types

// Diagnostic codes emitted by the lexer, parser, and validator.
// Centralizing these prevents silent breakage from typos in string literals.

// Lexer diagnostic codes.
const (
	DiagUnexpectedCharacter = "unexpected-character"
	DiagMalformedNumber     = "malformed-number"
	DiagUnterminatedString  = "unterminated-string"
)

// Parser diagnostic codes.
const (
	DiagUnexpectedToken   = "unexpected-token"
	DiagUnterminatedBlock = "unterminated-block"
	DiagDanglingDocstring = "dangling-docstring"
	DiagMaxDepthExceeded  = "max-depth-exceeded"
	DiagInvalidNumber     = "invalid-number"
)

// Validator diagnostic codes.
const (
	DiagDuplicateName        = "duplicate-name"
	DiagDuplicateDeclaration = "duplicate-declaration"
	DiagEmptyEnum            = "empty-enum"
	DiagRecursiveComponent   = "recursive-component"
)

// AllDiagnosticCodes returns all known diagnostic codes grouped by phase.
func AllDiagnosticCodes() []DiagCodeInfo {
	return []DiagCodeInfo{
		// Lexer
		{Code: DiagUnexpectedCharacter, Phase: "lexer"},
		{Code: DiagMalformedNumber, Phase: "lexer"},
		{Code: DiagUnterminatedString, Phase: "lexer"},
		// Parser
		{Code: DiagUnexpectedToken, Phase: "parser"},
		{Code: DiagUnterminatedBlock, Phase: "parser"},
		{Code: DiagDanglingDocstring, Phase: "parser"},
		{Code: DiagMaxDepthExceeded, Phase: "parser"},
		{Code: DiagInvalidNumber, Phase: "parser"},
		// Validator
		{Code: DiagDuplicateName, Phase: "validate"},
		{Code: DiagDuplicateDeclaration, Phase: "validate"},
		{Code: DiagEmptyEnum, Phase: "validate"},
		{Code: DiagRecursiveComponent, Phase: "validate"},
	}
}

// DiagCodeInfo describes a diagnostic code and the phase that emits it.
type DiagCodeInfo struct {
	Code  string
	Phase string
}
