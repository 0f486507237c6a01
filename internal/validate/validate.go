// Package validate implements structural checks on a parsed Rice document.
//
// Validation never modifies the tree. Running it twice on the same document
// yields the same diagnostics.
package validate

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/ricelang/rice/ast"
	"github.com/ricelang/rice/internal/graph"
	"github.com/ricelang/rice/internal/types"
)

// Validate walks doc and returns diagnostics ordered by position.
//
// Checks:
//   - duplicate-name: a property declared twice in one component
//     declaration, or an enum variant listed twice
//   - duplicate-declaration: two sibling declarations with the same name
//   - empty-enum: an enum without variants
//   - recursive-component: a component declaration whose body instantiates
//     itself, directly or through other declared components
//
// One diagnostic is produced per duplicate occurrence. Its Related span
// points at the first occurrence.
func Validate(doc *ast.Document, cfg types.DiagnosticConfig, logger *slog.Logger) []types.SpanDiagnostic {
	v := &validator{
		cfg:    cfg,
		Logger: types.Logger{L: logger},
	}
	if doc == nil {
		return nil
	}

	checkDeclarations(v, doc.Items, "the document")
	for _, item := range doc.Items {
		v.checkItem(item)
	}
	v.checkRecursion(doc)

	slices.SortStableFunc(v.diagnostics, func(a, b types.SpanDiagnostic) int {
		return int(a.Span.Start) - int(b.Span.Start)
	})
	v.Log(slog.LevelDebug, "validation complete",
		slog.Int("items", len(doc.Items)),
		slog.Int("diagnostics", len(v.diagnostics)))
	return v.diagnostics
}

type validator struct {
	cfg         types.DiagnosticConfig
	diagnostics []types.SpanDiagnostic
	types.Logger
}

func (v *validator) emit(code string, severity types.Severity, span, related types.Span, message string) {
	if !v.cfg.ShouldReport(code, severity) {
		return
	}
	v.diagnostics = append(v.diagnostics, types.SpanDiagnostic{
		Severity: v.cfg.SeverityFor(code, severity),
		Code:     code,
		Span:     span,
		Message:  message,
		Related:  related,
	})
}

func (v *validator) checkItem(item ast.Node) {
	switch n := item.(type) {
	case *ast.EnumDecl:
		v.checkEnum(n)
	case *ast.ComponentDecl:
		v.checkComponent(n)
	}
}

func (v *validator) checkEnum(decl *ast.EnumDecl) {
	if v.TraceEnabled() {
		v.Trace("checking enum",
			slog.String("enum", decl.Name.Name),
			slog.Int("variants", len(decl.Variants)))
	}

	if len(decl.Variants) == 0 {
		v.emit(types.DiagEmptyEnum, types.SeverityWarning, decl.Name.Span, types.Span{},
			fmt.Sprintf("enum %s has no variants", decl.Name.Name))
		return
	}

	first := make(map[string]types.Span, len(decl.Variants))
	for _, variant := range decl.Variants {
		name := variant.Name.Name
		if prev, ok := first[name]; ok {
			v.emit(types.DiagDuplicateName, types.SeverityError, variant.Name.Span, prev,
				fmt.Sprintf("enum %s lists variant %s more than once", decl.Name.Name, name))
			continue
		}
		first[name] = variant.Name.Span
	}
}

func (v *validator) checkComponent(decl *ast.ComponentDecl) {
	if v.TraceEnabled() {
		v.Trace("checking component",
			slog.String("component", decl.Name.Name),
			slog.Int("members", len(decl.Members)))
	}

	first := make(map[string]types.Span)
	for _, prop := range decl.Properties() {
		name := prop.Name.Name
		if prev, ok := first[name]; ok {
			v.emit(types.DiagDuplicateName, types.SeverityError, prop.Name.Span, prev,
				fmt.Sprintf("component %s declares property %s more than once", decl.Name.Name, name))
			continue
		}
		first[name] = prop.Name.Span
	}

	checkDeclarations(v, decl.Members, "component "+decl.Name.Name)
	for _, member := range decl.Members {
		v.checkItem(member)
	}
}

// checkDeclarations reports sibling declarations that share a name.
// Enums and components share one namespace.
func checkDeclarations[N ast.Node](v *validator, nodes []N, scope string) {
	first := make(map[string]types.Span)
	for _, node := range nodes {
		decl, ok := any(node).(ast.Decl)
		if !ok {
			continue
		}
		name := decl.DeclName()
		if prev, seen := first[name.Name]; seen {
			v.emit(types.DiagDuplicateDeclaration, types.SeverityMinor, name.Span, prev,
				fmt.Sprintf("%s is declared more than once in %s", name.Name, scope))
			continue
		}
		first[name.Name] = name.Span
	}
}

// checkRecursion builds a graph from each component declaration to the
// declared components its body instantiates and reports every cycle once,
// at the first declaration in the cycle. When a name is declared more than
// once, the first declaration is used.
func (v *validator) checkRecursion(doc *ast.Document) {
	decls := make(map[string]*ast.ComponentDecl)
	var order []*ast.ComponentDecl
	ast.Inspect(doc, func(n ast.Node) bool {
		if decl, ok := n.(*ast.ComponentDecl); ok {
			if _, seen := decls[decl.Name.Name]; !seen {
				decls[decl.Name.Name] = decl
				order = append(order, decl)
			}
		}
		return true
	})
	if len(order) == 0 {
		return
	}

	g := graph.New()
	for _, decl := range order {
		g.AddNode(decl.Name.Name)
		for _, member := range decl.Members {
			ast.Inspect(member, func(n ast.Node) bool {
				switch n := n.(type) {
				case *ast.ComponentDecl:
					return false
				case *ast.ComponentInstance:
					if _, ok := decls[n.Name.Name]; ok {
						g.AddEdge(decl.Name.Name, n.Name.Name)
					}
				}
				return true
			})
		}
	}

	for _, cycle := range g.FindCycles() {
		head := decls[cycle[0]]
		var message string
		if len(cycle) == 1 {
			message = fmt.Sprintf("component %s instantiates itself", cycle[0])
		} else {
			message = fmt.Sprintf("components %s instantiate each other", strings.Join(cycle, ", "))
		}
		v.Log(slog.LevelDebug, "recursive component", slog.Any("cycle", cycle))
		v.emit(types.DiagRecursiveComponent, types.SeverityMinor, head.Name.Span, types.Span{}, message)
	}
}
