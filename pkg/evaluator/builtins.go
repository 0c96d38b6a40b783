package evaluator

import (
	"context"
	"fmt"

	"github.com/hemlocklang/hemlock/pkg/object"
)

// builtins is the out-of-band table consulted when identifier lookup
// fails (spec.md §6), populated once at package init. Grounded on the
// teacher's builtinFunctions map (pkg/evaluator/functions.go,
// FunctionDef{Name, MinArgs, MaxArgs, Impl}), simplified to hemlock's
// fixed arities: every built-in here except the variadic puts takes
// exactly the argument count its language-level signature promises, so
// arity checking is inline per function rather than a generic Min/Max gate.
var builtins map[string]*object.Builtin

func init() {
	builtins = map[string]*object.Builtin{
		"len":   {Name: "len", Fn: builtinLen},
		"first": {Name: "first", Fn: builtinFirst},
		"last":  {Name: "last", Fn: builtinLast},
		"rest":  {Name: "rest", Fn: builtinRest},
		"push":  {Name: "push", Fn: builtinPush},
		"map":   {Name: "map", Fn: builtinMap},
		"puts":  {Name: "puts", Fn: builtinPuts},
	}
}

func builtinLen(_ *object.Environment, args ...object.Value) object.Value {
	if len(args) != 1 {
		return newError("wrong number of arguments. got=%d, want=1", len(args))
	}
	switch arg := args[0].(type) {
	case *object.String:
		return &object.Integer{Value: int64(len(arg.Value))}
	case *object.Array:
		return &object.Integer{Value: int64(len(arg.Elements))}
	default:
		return newError("argument to `len` not supported, got %s", args[0].Kind())
	}
}

func builtinFirst(_ *object.Environment, args ...object.Value) object.Value {
	if len(args) != 1 {
		return newError("wrong number of arguments. got=%d, want=1", len(args))
	}
	arr, ok := args[0].(*object.Array)
	if !ok {
		return newError("argument to `first` must be ARRAY, got %s", args[0].Kind())
	}
	if len(arr.Elements) == 0 {
		return newError("first: array is empty")
	}
	return arr.Elements[0]
}

func builtinLast(_ *object.Environment, args ...object.Value) object.Value {
	if len(args) != 1 {
		return newError("wrong number of arguments. got=%d, want=1", len(args))
	}
	arr, ok := args[0].(*object.Array)
	if !ok {
		return newError("argument to `last` must be ARRAY, got %s", args[0].Kind())
	}
	if len(arr.Elements) == 0 {
		return newError("last: array is empty")
	}
	return arr.Elements[len(arr.Elements)-1]
}

// builtinRest returns a new array with all but the first element,
// non-mutating like every built-in (spec.md §6).
func builtinRest(_ *object.Environment, args ...object.Value) object.Value {
	if len(args) != 1 {
		return newError("wrong number of arguments. got=%d, want=1", len(args))
	}
	arr, ok := args[0].(*object.Array)
	if !ok {
		return newError("argument to `rest` must be ARRAY, got %s", args[0].Kind())
	}
	if len(arr.Elements) == 0 {
		return newError("rest: array is empty")
	}
	length := len(arr.Elements)
	newElements := make([]object.Value, length-1)
	copy(newElements, arr.Elements[1:length])
	return &object.Array{Elements: newElements}
}

// builtinPush is grounded on the teacher's fnAppend (pkg/evaluator/
// fn_array.go): it returns a new array rather than mutating arg0, so
// the caller's binding is unaffected (spec.md §8 scenario 5).
func builtinPush(_ *object.Environment, args ...object.Value) object.Value {
	if len(args) != 2 {
		return newError("wrong number of arguments. got=%d, want=2", len(args))
	}
	arr, ok := args[0].(*object.Array)
	if !ok {
		return newError("argument to `push` must be ARRAY, got %s", args[0].Kind())
	}
	length := len(arr.Elements)
	newElements := make([]object.Value, length+1)
	copy(newElements, arr.Elements)
	newElements[length] = args[1]
	return &object.Array{Elements: newElements}
}

// builtinMap is grounded on the teacher's fnMap (pkg/evaluator/
// fn_hof.go): it applies a user function to each element, aborting on
// the first Error result, and always allocates a fresh array.
func builtinMap(env *object.Environment, args ...object.Value) object.Value {
	if len(args) != 2 {
		return newError("wrong number of arguments. got=%d, want=2", len(args))
	}
	arr, ok := args[0].(*object.Array)
	if !ok {
		return newError("argument to `map` must be ARRAY, got %s", args[0].Kind())
	}
	fn, ok := args[1].(*object.Function)
	if !ok {
		return newError("second argument to `map` must be a function, got %s", args[1].Kind())
	}
	if len(fn.Params) != 1 {
		return newError("function passed to `map` must take exactly one argument, got %d", len(fn.Params))
	}

	e := New()
	result := make([]object.Value, len(arr.Elements))
	for i, elem := range arr.Elements {
		value := e.applyFunction(context.Background(), fn, env, []object.Value{elem})
		if isError(value) {
			return value
		}
		result[i] = value
	}
	return &object.Array{Elements: result}
}

// builtinPuts is the one built-in with a side effect (SPEC_FULL.md §5.3,
// supplemented from the C++ original): it writes each argument's
// Inspect() form to the calling environment's configured writer, so an
// embedder can capture or discard REPL-style output without hemlock
// reaching for a bare fmt.Println. Its only effect is on that writer;
// it never mutates a value, keeping the "all built-ins are pure" claim
// true for the value graph itself.
func builtinPuts(env *object.Environment, args ...object.Value) object.Value {
	w := env.Output()
	for _, arg := range args {
		fmt.Fprintln(w, arg.Inspect())
	}
	return object.NullValue
}
