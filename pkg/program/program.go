// Package program defines the unit hemlock compiles to and caches: a
// parsed AST together with its source text and any parse errors,
// grounded on the teacher's *types.Expression (pkg/types/expression.go).
package program

import (
	"context"

	"github.com/hemlocklang/hemlock/pkg/ast"
	"github.com/hemlocklang/hemlock/pkg/evaluator"
	"github.com/hemlocklang/hemlock/pkg/object"
)

// Program is a parsed hemlock source unit, evaluated by its own Eval
// method and cached by pkg/cache under its source text.
type Program struct {
	ast    *ast.Node
	source string
	errors []string
}

// New wraps a parsed AST root together with its source and any
// accumulated parse errors.
func New(root *ast.Node, source string, errors []string) *Program {
	return &Program{ast: root, source: source, errors: errors}
}

// AST returns the program's root node (an ast.Program node).
func (p *Program) AST() *ast.Node { return p.ast }

// Source returns the original source text.
func (p *Program) Source() string { return p.source }

// Errors returns the parse errors accumulated while building this
// program. A non-empty Errors means evaluation should be skipped
// (spec.md §6).
func (p *Program) Errors() []string { return p.errors }

// String renders the program's source.
func (p *Program) String() string { return p.source }

// Weight estimates p's AST size by counting its nodes. pkg/cache uses it
// to budget cache capacity by program complexity rather than by a flat
// per-entry count: a one-line script and a page of nested function
// literals don't cost the same to hold in cache.
func (p *Program) Weight() int { return p.ast.Count() }

// Eval walks p's AST to a value. ctx carries only cancellation/deadline
// (spec.md §5); the evaluator checks it between steps and never uses it
// to fan out work concurrently.
func (p *Program) Eval(ctx context.Context, env *object.Environment) object.Value {
	return evaluator.New().Eval(ctx, p.ast, env)
}
