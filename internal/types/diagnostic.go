package types

import (
	"slices"
	"strings"
)

// StrictnessLevel defines preset strictness configurations.
type StrictnessLevel int

const (
	StrictnessStrict     StrictnessLevel = 0 // Report everything
	StrictnessNormal     StrictnessLevel = 3 // Default, warn on issues
	StrictnessPermissive StrictnessLevel = 5 // Accept most documents
	StrictnessSilent     StrictnessLevel = 6 // Accept everything, minimal output
)

func (l StrictnessLevel) String() string {
	switch l {
	case StrictnessStrict:
		return "strict"
	case StrictnessNormal:
		return "normal"
	case StrictnessPermissive:
		return "permissive"
	case StrictnessSilent:
		return "silent"
	default:
		return "custom"
	}
}

// DiagnosticConfig controls strictness and diagnostic filtering.
type DiagnosticConfig struct {
	// Level sets the base strictness level.
	// Diagnostics with severity > Level are suppressed.
	Level StrictnessLevel

	// FailAt sets the severity threshold for failure.
	// A diagnostic with severity <= FailAt makes the result count as failed.
	FailAt Severity

	// Overrides change severity for specific diagnostic codes.
	Overrides map[string]Severity

	// Ignore lists diagnostic codes to suppress entirely.
	// Supports glob patterns (e.g., "duplicate-*").
	Ignore []string
}

// DefaultConfig returns the default diagnostic configuration (Normal strictness).
func DefaultConfig() DiagnosticConfig {
	return DiagnosticConfig{
		Level:  StrictnessNormal,
		FailAt: SeverityError,
	}
}

// StrictConfig reports every diagnostic, including warnings and style notes.
func StrictConfig() DiagnosticConfig {
	return DiagnosticConfig{
		Level:  StrictnessStrict,
		FailAt: SeverityMinor,
	}
}

// PermissiveConfig suppresses lint-style findings that do not affect the tree.
//
// Ignored codes:
//   - empty-enum: placeholder enums are common while sketching a schema
//   - duplicate-declaration: later declarations are kept alongside earlier ones
func PermissiveConfig() DiagnosticConfig {
	return DiagnosticConfig{
		Level:  StrictnessPermissive,
		FailAt: SeverityFatal,
		Ignore: []string{
			DiagEmptyEnum,
			DiagDuplicateDeclaration,
		},
	}
}

// ShouldReport returns true if a diagnostic with the given code and severity
// should be reported under this configuration.
//
// The Level controls reporting threshold:
//   - Level 0 (Strict): Report all diagnostics (Info and above)
//   - Level 3 (Normal): Report Minor and above (0-3)
//   - Level 5 (Permissive): Report Warning and above (0-5)
//   - Level 6 (Silent): Report nothing
//
// Lower severity numbers are more severe (Fatal=0, Info=6).
func (c DiagnosticConfig) ShouldReport(code string, sev Severity) bool {
	if slices.ContainsFunc(c.Ignore, func(pattern string) bool {
		return MatchGlob(pattern, code)
	}) {
		return false
	}

	if override, ok := c.Overrides[code]; ok {
		sev = override
	}

	if c.Level >= StrictnessSilent {
		return false
	}

	if c.Level == StrictnessStrict {
		return true
	}

	return int(sev) <= int(c.Level)
}

// SeverityFor returns the severity of code after applying overrides.
func (c DiagnosticConfig) SeverityFor(code string, sev Severity) Severity {
	if override, ok := c.Overrides[code]; ok {
		return override
	}
	return sev
}

// ShouldFail returns true if a diagnostic with the given severity should
// count as a failure.
func (c DiagnosticConfig) ShouldFail(sev Severity) bool {
	return sev <= c.FailAt
}

// MatchGlob performs simple glob matching with * wildcard.
func MatchGlob(pattern, s string) bool {
	if pattern == "*" {
		return true
	}
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
		return strings.HasPrefix(s, prefix)
	}
	if suffix, ok := strings.CutPrefix(pattern, "*"); ok {
		return strings.HasSuffix(s, suffix)
	}
	return pattern == s
}
