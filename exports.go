// Package rice parses the Rice UI description language.
//
// Parse turns source text into an ast.Document and a list of diagnostics.
// Parsing never fails: syntax errors are recovered from and reported, so
// a best-effort tree is always available. A validation pass then checks
// declarations for duplicate names.
//
// For whole directories of .rice files, build a Source with Dir, DirTree,
// FS, or Multi and call ParseAll or ParseNamed.
package rice

import (
	"github.com/ricelang/rice/ast"
	"github.com/ricelang/rice/internal/types"
)

// Type aliases for the public API.

// Document is the root of a parsed source file.
type Document = ast.Document

// Span is a byte range in source text.
type Span = types.Span

// ByteOffset is a byte position in source text.
type ByteOffset = types.ByteOffset

// Severity for diagnostics.
type Severity = types.Severity

// Severity constants (lower = more severe).
const (
	SeverityFatal   = types.SeverityFatal   // 0: Cannot continue
	SeveritySevere  = types.SeveritySevere  // 1: Input dropped to continue
	SeverityError   = types.SeverityError   // 2: Should correct
	SeverityMinor   = types.SeverityMinor   // 3: Minor issue
	SeverityStyle   = types.SeverityStyle   // 4: Style recommendation
	SeverityWarning = types.SeverityWarning // 5: Might be correct
	SeverityInfo    = types.SeverityInfo    // 6: Informational
)

// StrictnessLevel defines preset strictness configurations.
type StrictnessLevel = types.StrictnessLevel

// StrictnessLevel constants.
const (
	StrictnessStrict     = types.StrictnessStrict
	StrictnessNormal     = types.StrictnessNormal
	StrictnessPermissive = types.StrictnessPermissive
	StrictnessSilent     = types.StrictnessSilent
)

// DiagnosticConfig controls strictness and diagnostic filtering.
type DiagnosticConfig = types.DiagnosticConfig

// Config constructors.
var (
	DefaultConfig    = types.DefaultConfig
	StrictConfig     = types.StrictConfig
	PermissiveConfig = types.PermissiveConfig
)

// DiagCodeInfo describes a diagnostic code and the phase that emits it.
type DiagCodeInfo = types.DiagCodeInfo

// AllDiagnosticCodes lists every diagnostic code with its phase.
var AllDiagnosticCodes = types.AllDiagnosticCodes

// Diagnostic codes.
const (
	DiagUnexpectedCharacter  = types.DiagUnexpectedCharacter
	DiagMalformedNumber      = types.DiagMalformedNumber
	DiagUnterminatedString   = types.DiagUnterminatedString
	DiagUnexpectedToken      = types.DiagUnexpectedToken
	DiagUnterminatedBlock    = types.DiagUnterminatedBlock
	DiagDanglingDocstring    = types.DiagDanglingDocstring
	DiagMaxDepthExceeded     = types.DiagMaxDepthExceeded
	DiagInvalidNumber        = types.DiagInvalidNumber
	DiagDuplicateName        = types.DiagDuplicateName
	DiagDuplicateDeclaration = types.DiagDuplicateDeclaration
	DiagEmptyEnum            = types.DiagEmptyEnum
	DiagRecursiveComponent   = types.DiagRecursiveComponent
)
