package object

import "io"

// Environment is a name-to-value mapping with an optional outer scope,
// grounded on pkg/evaluator's EvalContext{bindings, parent}: lookups walk
// outward until found or exhausted, and inserts affect only the
// innermost frame (spec.md §3). A closure's captured environment is the
// *defining* environment, never the calling one — a FunctionLiteral
// captures the environment it is evaluated in, and NewEnclosed is called
// only when entering a call frame, never to "borrow" a caller's scope.
type Environment struct {
	store map[string]Value
	outer *Environment

	// out is where the puts built-in (SPEC_FULL.md §5.3) writes; it lives
	// on the root environment and is inherited by every enclosed scope
	// since it is not itself a language-level binding.
	out io.Writer
}

// NewEnvironment creates a fresh root environment with no outer scope.
func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Value)}
}

// NewEnclosed creates a child environment whose outer scope is env. Used
// for call frames: a function call binds its parameters here, with the
// function's captured environment as env.
func NewEnclosed(env *Environment) *Environment {
	return &Environment{store: make(map[string]Value), outer: env}
}

// Get looks up name in this scope, then walks outward through outer
// scopes until found or exhausted.
func (e *Environment) Get(name string) (Value, bool) {
	val, ok := e.store[name]
	if !ok && e.outer != nil {
		return e.outer.Get(name)
	}
	return val, ok
}

// Set binds name to val in this scope only — never an outer frame
// (spec.md §3: "no shadow-promotion, no set on an outer frame").
func (e *Environment) Set(name string, val Value) Value {
	e.store[name] = val
	return val
}

// SetOutput configures the writer the puts built-in writes to. It walks
// to the root environment so every enclosed scope shares one sink.
func (e *Environment) SetOutput(w io.Writer) {
	root := e
	for root.outer != nil {
		root = root.outer
	}
	root.out = w
}

// Output returns the environment's configured writer, defaulting to
// io.Discard if none was set.
func (e *Environment) Output() io.Writer {
	root := e
	for root.outer != nil {
		root = root.outer
	}
	if root.out == nil {
		return io.Discard
	}
	return root.out
}
