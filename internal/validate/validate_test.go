package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ricelang/rice/ast"
	"github.com/ricelang/rice/internal/parser"
	"github.com/ricelang/rice/internal/testutil"
	"github.com/ricelang/rice/internal/types"
)

func mustParse(t *testing.T, source string) *ast.Document {
	t.Helper()
	p := parser.New([]byte(source), nil, types.DefaultConfig())
	doc := p.ParseDocument()
	testutil.NoDiagnostics(t, p.Diagnostics())
	return doc
}

func text(source string, span types.Span) string {
	return source[span.Start:span.End]
}

func TestValidateClean(t *testing.T) {
	doc := mustParse(t, testutil.Dedent(`
		enum Color { Red Green Blue }
		component Box {
			width Pixels = 10px
			height Pixels
			color Color = red
			component Inner { width Pixels }
		}
		Box { width: 1px width: 2px }
	`))

	assert.Empty(t, Validate(doc, types.StrictConfig(), nil))
}

func TestValidateDuplicateProperty(t *testing.T) {
	source := "component Box { width Pixels height Pixels width Percentage width Pixels }"
	doc := mustParse(t, source)

	diags := Validate(doc, types.DefaultConfig(), nil)
	require.Len(t, diags, 2, "one diagnostic per duplicate occurrence")

	for _, d := range diags {
		assert.Equal(t, types.DiagDuplicateName, d.Code)
		assert.Equal(t, types.SeverityError, d.Severity)
		assert.Equal(t, "width", text(source, d.Span))
		assert.Equal(t, types.NewSpan(16, 21), d.Related)
	}
	assert.Less(t, diags[0].Span.Start, diags[1].Span.Start)
	assert.Contains(t, diags[0].Message, "component Box")
}

func TestValidateDuplicateVariant(t *testing.T) {
	source := "enum Align { start end start }"
	doc := mustParse(t, source)

	diags := Validate(doc, types.DefaultConfig(), nil)
	require.Len(t, diags, 1)
	assert.Equal(t, types.DiagDuplicateName, diags[0].Code)
	assert.Equal(t, types.NewSpan(23, 28), diags[0].Span)
	assert.Equal(t, types.NewSpan(13, 18), diags[0].Related)
}

func TestValidateAssignmentsNotChecked(t *testing.T) {
	// Only declarations must be unique; assigning twice is left to
	// consumers.
	doc := mustParse(t, "component Box { padding: 1px padding: 2px padding Pixels }")
	assert.Empty(t, Validate(doc, types.DefaultConfig(), nil))
}

func TestValidateScopesArePerComponent(t *testing.T) {
	doc := mustParse(t, testutil.Dedent(`
		component A { width Pixels }
		component B {
			width Pixels
			component C { width Pixels }
		}
	`))
	assert.Empty(t, Validate(doc, types.DefaultConfig(), nil))
}

func TestValidateNestedDuplicates(t *testing.T) {
	doc := mustParse(t, testutil.Dedent(`
		component Outer {
			component Inner {
				size Pixels
				size Pixels
			}
		}
	`))

	diags := Validate(doc, types.DefaultConfig(), nil)
	assert.Equal(t, []string{types.DiagDuplicateName}, testutil.Codes(diags))
}

func TestValidateDuplicateDeclaration(t *testing.T) {
	source := testutil.Dedent(`
		enum Size { small }
		component Size { }
		component Box {
			component Part { }
			component Part { }
		}
		component Part { }
	`)
	doc := mustParse(t, source)

	diags := Validate(doc, types.DefaultConfig(), nil)
	require.Equal(t,
		[]string{types.DiagDuplicateDeclaration, types.DiagDuplicateDeclaration},
		testutil.Codes(diags))
	assert.Equal(t, types.SeverityMinor, diags[0].Severity)
	assert.Equal(t, "Size", text(source, diags[0].Span))
	assert.Equal(t, "Size", text(source, diags[0].Related))
	assert.Equal(t, "Part", text(source, diags[1].Span))
	assert.Contains(t, diags[1].Message, "component Box")

	assert.Empty(t, Validate(doc, types.PermissiveConfig(), nil))
}

func TestValidateEmptyEnum(t *testing.T) {
	doc := mustParse(t, "enum Nothing { }")

	assert.Empty(t, Validate(doc, types.DefaultConfig(), nil), "warnings are below the normal threshold")

	diags := Validate(doc, types.StrictConfig(), nil)
	require.Len(t, diags, 1)
	assert.Equal(t, types.DiagEmptyEnum, diags[0].Code)
	assert.Equal(t, types.SeverityWarning, diags[0].Severity)
}

func TestValidateRecursiveComponent(t *testing.T) {
	source := testutil.Dedent(`
		component Tree {
			label String
			Tree { label: "child" }
		}
		component Row { Cell { } }
		component Cell {
			Panel { Row }
		}
		component Panel { }
	`)
	doc := mustParse(t, source)

	assert.Empty(t, Validate(doc, types.DefaultConfig(), nil), "minor issues are hidden at normal strictness")

	diags := Validate(doc, types.StrictConfig(), nil)
	require.Equal(t,
		[]string{types.DiagRecursiveComponent, types.DiagRecursiveComponent},
		testutil.Codes(diags))
	assert.Equal(t, types.SeverityMinor, diags[0].Severity)
	assert.Equal(t, "Tree", text(source, diags[0].Span))
	assert.Equal(t, "component Tree instantiates itself", diags[0].Message)
	assert.Equal(t, "Row", text(source, diags[1].Span))
	assert.Equal(t, "components Row, Cell instantiate each other", diags[1].Message)
}

func TestValidateRecursionIgnoresNestedDeclarations(t *testing.T) {
	doc := mustParse(t, testutil.Dedent(`
		component Outer {
			component Inner {
				Outer
			}
		}
		Outer { Outer }
	`))

	diags := Validate(doc, types.StrictConfig(), nil)
	assert.Empty(t, diags, "nested declarations and top-level instances do not form cycles")
}

func TestValidateOverridesAndIgnore(t *testing.T) {
	doc := mustParse(t, "enum E { a a }")

	cfg := types.DefaultConfig()
	cfg.Overrides = map[string]types.Severity{types.DiagDuplicateName: types.SeverityFatal}
	diags := Validate(doc, cfg, nil)
	require.Len(t, diags, 1)
	assert.Equal(t, types.SeverityFatal, diags[0].Severity)

	cfg = types.DefaultConfig()
	cfg.Ignore = []string{"duplicate-*"}
	assert.Empty(t, Validate(doc, cfg, nil))
}

func TestValidateIdempotent(t *testing.T) {
	doc := mustParse(t, testutil.Dedent(`
		enum E { a b a }
		enum E { }
		component C { x X x X }
	`))

	first := Validate(doc, types.StrictConfig(), nil)
	second := Validate(doc, types.StrictConfig(), nil)
	assert.Equal(t, first, second)
	assert.Len(t, first, 4)
}

func TestValidateDoesNotMutate(t *testing.T) {
	source := "component C { x X x X } enum E { a a }"
	doc := mustParse(t, source)
	again := mustParse(t, source)

	Validate(doc, types.StrictConfig(), nil)
	assert.True(t, ast.Equal(doc, again))
}

func TestValidateNil(t *testing.T) {
	assert.Empty(t, Validate(nil, types.DefaultConfig(), nil))
	assert.Empty(t, Validate(&ast.Document{}, types.DefaultConfig(), nil))
}
