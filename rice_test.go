package rice

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ricelang/rice/ast"
)

func codes(diags []Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Code)
	}
	return out
}

func TestParse(t *testing.T) {
	res := Parse([]byte("/// A box.\ncomponent Box {\n  width Pixels = 10px\n}\n\nBox { width: 50% }\n"))

	require.NotNil(t, res.Document)
	assert.Empty(t, res.Diagnostics)
	assert.False(t, res.HasErrors())
	assert.False(t, res.Failed())
	assert.Empty(t, res.Name)
	assert.Empty(t, res.Path)

	decls := res.Document.Declarations()
	require.Len(t, decls, 1)
	assert.Equal(t, "Box", decls[0].DeclName().Name)
	require.NotNil(t, decls[0].DeclDoc())
	assert.Equal(t, "A box.", decls[0].DeclDoc().Text())

	instances := res.Document.Instances()
	require.Len(t, instances, 1)
	assigns := instances[0].Assignments()
	require.Len(t, assigns, 1)
	assert.Equal(t, "50%", assigns[0].Value.String())
}

func TestParseEmpty(t *testing.T) {
	res := Parse(nil)
	require.NotNil(t, res.Document)
	assert.Empty(t, res.Document.Items)
	assert.Empty(t, res.Diagnostics)
}

func TestParseDiagnosticPositions(t *testing.T) {
	res := Parse([]byte("Box {\n  width: 1px\n  height:\n}\n"))

	require.Len(t, res.Diagnostics, 1)
	d := res.Diagnostics[0]
	assert.Equal(t, DiagUnexpectedToken, d.Code)
	assert.Equal(t, SeverityError, d.Severity)
	assert.Equal(t, 4, d.Line)
	assert.Equal(t, 1, d.Column)
	assert.True(t, res.HasErrors())
	assert.True(t, res.Failed())
}

func TestParseRecoversAfterErrors(t *testing.T) {
	res := Parse([]byte("Box { width: }\nenum Size { small large }\nRow\n"))

	assert.True(t, res.HasErrors())
	require.Len(t, res.Document.Items, 3, "items after an error are still parsed")
	enum, ok := res.Document.Items[1].(*ast.EnumDecl)
	require.True(t, ok)
	assert.Len(t, enum.Variants, 2)
}

func TestParseFile(t *testing.T) {
	res, err := ParseFile("testdata/broken/duplicates.rice")
	require.NoError(t, err)

	assert.Equal(t, "duplicates", res.Name)
	assert.Equal(t, "testdata/broken/duplicates.rice", res.Path)
	require.Equal(t, []string{DiagDuplicateName, DiagDuplicateName}, codes(res.Diagnostics))

	prop := res.Diagnostics[0]
	assert.Equal(t, 3, prop.Line)
	assert.Equal(t, 3, prop.Column)
	assert.Equal(t, 2, prop.RelatedLine)
	assert.Equal(t, "component Card declares property title more than once", prop.Message)

	variant := res.Diagnostics[1]
	assert.Equal(t, 6, variant.Line)
	assert.Equal(t, 23, variant.Column)
	assert.Equal(t, 6, variant.RelatedLine)
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile("testdata/nope.rice")
	assert.Error(t, err)
}

func TestParseFileSyntaxErrors(t *testing.T) {
	res, err := ParseFile("testdata/broken/syntax.rice")
	require.NoError(t, err, "syntax errors are diagnostics, not errors")
	assert.True(t, res.HasErrors())
	assert.Contains(t, codes(res.Diagnostics), DiagUnexpectedToken)

	var sizes *ast.EnumDecl
	for _, decl := range res.Document.Declarations() {
		if e, ok := decl.(*ast.EnumDecl); ok && e.Name.Name == "Size" {
			sizes = e
		}
	}
	require.NotNil(t, sizes, "declarations after errors survive")
	assert.Len(t, sizes.Variants, 3)
}

func TestParseWithoutValidation(t *testing.T) {
	src := []byte("enum Tone { warm warm }")

	assert.Len(t, Parse(src).Diagnostics, 1)
	assert.Empty(t, Parse(src, WithoutValidation()).Diagnostics)
}

func TestParseWithStrictness(t *testing.T) {
	src := []byte("enum Empty { }\n/// trailing\n")

	assert.Equal(t, []string{DiagDanglingDocstring}, codes(Parse(src).Diagnostics))
	assert.Equal(t, []string{DiagEmptyEnum, DiagDanglingDocstring},
		codes(Parse(src, WithStrictness(StrictnessStrict)).Diagnostics))
	assert.Empty(t, Parse(src, WithStrictness(StrictnessSilent)).Diagnostics)
}

func TestParseWithDiagnosticConfig(t *testing.T) {
	src := []byte("/// trailing\n")

	res := Parse(src)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, SeverityMinor, res.Diagnostics[0].Severity)
	assert.False(t, res.Failed(), "minor findings do not fail by default")

	res = Parse(src, WithDiagnosticConfig(StrictConfig()))
	assert.True(t, res.Failed(), "strict config fails on minor findings")
	assert.False(t, res.HasErrors())

	cfg := DefaultConfig()
	cfg.Ignore = []string{"dangling-*"}
	assert.Empty(t, Parse(src, WithDiagnosticConfig(cfg)).Diagnostics)
}

func TestParseWithMaxDepth(t *testing.T) {
	src := []byte("A { B { C { D } } }")

	assert.Empty(t, Parse(src).Diagnostics)

	res := Parse(src, WithMaxDepth(2))
	require.Equal(t, []string{DiagMaxDepthExceeded}, codes(res.Diagnostics))
	assert.Equal(t, 1, res.Diagnostics[0].Line)
	assert.Equal(t, 11, res.Diagnostics[0].Column)

	assert.Empty(t, Parse(src, WithMaxDepth(0)).Diagnostics, "non-positive depth restores the default")
}

func TestParseDeepNesting(t *testing.T) {
	const depth = 10000
	src := strings.Repeat("A {", depth) + strings.Repeat("}", depth)

	res := Parse([]byte(src))
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, DiagMaxDepthExceeded, res.Diagnostics[0].Code)
	assert.Len(t, res.Document.Items, 1)
}

func TestParseWithLogger(t *testing.T) {
	res := Parse([]byte("Box { width: 1px }"), WithLogger(testSlogger(t)))
	assert.Empty(t, res.Diagnostics)
}

func TestValidate(t *testing.T) {
	res := Parse([]byte("component Card {\n  title String\n  title String\n}\n"), WithoutValidation())
	require.Empty(t, res.Diagnostics)

	diags := Validate(res.Document)
	require.Len(t, diags, 1)
	assert.Equal(t, DiagDuplicateName, diags[0].Code)
	assert.Zero(t, diags[0].Line, "no source, no line")
	assert.False(t, diags[0].Span.IsEmpty())
	assert.False(t, diags[0].Related.IsEmpty())

	assert.Empty(t, Validate(res.Document, WithStrictness(StrictnessSilent)))
}

func TestDiagnosticString(t *testing.T) {
	tests := []struct {
		name string
		diag Diagnostic
		want string
	}{
		{
			name: "full",
			diag: Diagnostic{
				Severity: SeverityError, Code: DiagUnexpectedToken, Message: "expected value, found '}'",
				File: "ui/box.rice", Line: 3, Column: 10,
			},
			want: "ui/box.rice:3:10: error: expected value, found '}' [unexpected-token]",
		},
		{
			name: "no file",
			diag: Diagnostic{
				Severity: SeverityMinor, Code: DiagDanglingDocstring, Message: "docstring is not followed by a declaration, enum variant, or property declaration",
				Line: 1, Column: 1,
			},
			want: "1:1: minor: docstring is not followed by a declaration, enum variant, or property declaration [dangling-docstring]",
		},
		{
			name: "related",
			diag: Diagnostic{
				Severity: SeverityError, Code: DiagDuplicateName, Message: "enum Tone lists variant warm more than once",
				File: "a.rice", Line: 6, Column: 23, RelatedLine: 6,
			},
			want: "a.rice:6:23: error: enum Tone lists variant warm more than once (see line 6) [duplicate-name]",
		},
		{
			name: "no location",
			diag: Diagnostic{Severity: SeverityWarning, Code: DiagEmptyEnum, Message: "enum E has no variants"},
			want: "warning: enum E has no variants [empty-enum]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.diag.String())
		})
	}
}

func TestAllDiagnosticCodesCoverConstants(t *testing.T) {
	known := map[string]bool{}
	for _, info := range AllDiagnosticCodes() {
		known[info.Code] = true
	}
	for _, code := range []string{
		DiagUnexpectedCharacter, DiagMalformedNumber, DiagUnterminatedString,
		DiagUnexpectedToken, DiagUnterminatedBlock, DiagDanglingDocstring,
		DiagMaxDepthExceeded, DiagInvalidNumber, DiagDuplicateName,
		DiagDuplicateDeclaration, DiagEmptyEnum, DiagRecursiveComponent,
	} {
		assert.True(t, known[code], code)
	}
}
