// Package hemlock provides a small dynamically-typed expression language:
// integers, booleans, strings, arrays, hash maps, first-class closures,
// and a small built-in library, evaluated by a tree-walking interpreter.
//
// # Quick start
//
//	result, errs := hemlock.Eval(`let add = fn(a, b) { a + b }; add(2, 3)`, hemlock.NewEnvironment())
//
//	// Compile once, evaluate many times against different environments.
//	prog, errs := hemlock.Compile(`x + 1`)
//	env := hemlock.NewEnvironment()
//	env.Set("x", &object.Integer{Value: 41})
//	result := prog.Eval(context.Background(), env)
//
// Grounded on gosonata.go's Compile/Eval/MustCompile/EvalWithContext
// surface, adapted from a data-query language's compiled-Expression
// model to hemlock's Program model (pkg/program).
package hemlock

import (
	"context"
	"fmt"
	"time"

	"github.com/hemlocklang/hemlock/pkg/cache"
	"github.com/hemlocklang/hemlock/pkg/lexer"
	"github.com/hemlocklang/hemlock/pkg/object"
	"github.com/hemlocklang/hemlock/pkg/parser"
	"github.com/hemlocklang/hemlock/pkg/program"
)

// Version returns the current version of hemlock.
func Version() string { return "v0.1.0-dev" }

// Program is a parsed hemlock source unit, ready to be evaluated
// repeatedly against different environments.
type Program = program.Program

// Environment is a lexically-chained variable scope. NewEnvironment
// creates a fresh root scope; closures created inside it capture it (or
// an environment enclosed by it) by reference (spec.md §3).
type Environment = object.Environment

// NewEnvironment creates a fresh root environment. Built-ins are looked
// up out-of-band (spec.md §6) rather than pre-populated as bindings, so
// a fresh Environment is always empty of user bindings.
func NewEnvironment() *Environment { return object.NewEnvironment() }

// Compile lexes and parses source into a Program. Parse errors are
// returned as human-readable messages (spec.md §4.3); a non-empty error
// slice means the returned Program's AST is partial and should not be
// evaluated.
func Compile(source string) (*Program, []string) {
	l := lexer.New(source)
	p := parser.New(l)
	root := p.ParseProgram()
	errs := p.Errors()
	return program.New(root, source, errs), errs
}

// MustCompile is like Compile but panics if the source has parse
// errors. It simplifies safe initialization of global variables.
func MustCompile(source string) *Program {
	prog, errs := Compile(source)
	if len(errs) > 0 {
		panic(fmt.Sprintf("hemlock: Compile(%q): %v", source, errs))
	}
	return prog
}

// defaultEvalTimeout bounds package-level Eval/EvalWithContext against a
// non-terminating user program (spec.md §5 permits, but does not
// require, an implementation-imposed ceiling).
const defaultEvalTimeout = 30 * time.Second

// EvalOption configures a package-level Eval/EvalWithContext call.
type EvalOption func(*evalOptions)

type evalOptions struct {
	cache   *cache.Cache
	timeout time.Duration
}

// WithCaching enables a compiled-Program cache (pkg/cache) keyed by
// source text, shared across calls that pass the same *Cache. Use
// NewCache to create one; passing WithCaching(nil) disables caching
// (the default).
func WithCaching(c *cache.Cache) EvalOption {
	return func(o *evalOptions) { o.cache = c }
}

// WithTimeout overrides defaultEvalTimeout for a single Eval call.
func WithTimeout(d time.Duration) EvalOption {
	return func(o *evalOptions) { o.timeout = d }
}

// NewCache creates a compiled-Program cache with the given AST-weight
// budget (pkg/cache) for use with WithCaching.
func NewCache(budget int) *cache.Cache { return cache.New(budget) }

// Eval is a convenience function that compiles and evaluates source in
// a single call, returning the resulting value and any parse errors. If
// there are parse errors, evaluation is skipped and the returned value
// is nil (spec.md §6).
func Eval(source string, env *Environment, opts ...EvalOption) (object.Value, []string) {
	timeout := defaultEvalTimeout
	for _, opt := range opts {
		o := &evalOptions{}
		opt(o)
		if o.timeout != 0 {
			timeout = o.timeout
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return EvalWithContext(ctx, source, env, opts...)
}

// EvalWithContext is Eval with an explicit context, e.g. to impose a
// shorter deadline or thread in cancellation from an enclosing request.
// Any WithTimeout option is ignored here: ctx's own deadline governs,
// since the caller already controls cancellation directly.
func EvalWithContext(ctx context.Context, source string, env *Environment, opts ...EvalOption) (object.Value, []string) {
	o := &evalOptions{}
	for _, opt := range opts {
		opt(o)
	}

	var prog *Program
	var errs []string
	if o.cache != nil {
		var err error
		p, cacheErr := o.cache.GetOrCompile(source, func() (*Program, error) {
			pr, es := Compile(source)
			if len(es) > 0 {
				return nil, fmt.Errorf("%d parse error(s)", len(es))
			}
			return pr, nil
		})
		prog, err = p, cacheErr
		if err != nil {
			_, errs = Compile(source) // recover the messages for the caller
			return nil, errs
		}
	} else {
		prog, errs = Compile(source)
		if len(errs) > 0 {
			return nil, errs
		}
	}

	return prog.Eval(ctx, env), nil
}

// Inspect renders v in the printable form spec.md §6 defines: integers
// as decimal, strings as raw bytes, true/false, null, arrays as
// "[a,b,c,]", hashes as "[k: v,...]", functions as "fn(params) { body }",
// and errors as "Error: <message>".
func Inspect(v object.Value) string {
	if v == nil {
		return "null"
	}
	return v.Inspect()
}
