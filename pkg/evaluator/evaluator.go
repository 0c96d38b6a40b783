// Package evaluator implements hemlock's tree-walking evaluator:
// eval(node, env) → Value, recursive, over the ast.Node graph produced
// by pkg/parser, closing over a lexically chained pkg/object.Environment.
//
// Grounded on the teacher's Evaluator{}/New()/Eval(ctx, ...) shape
// (pkg/evaluator/evaluator.go in the teacher repository) for the
// surrounding harness — a stateless struct holding no
// interpreter-global mutable state, context.Context threaded through
// purely for cancellation — but the per-node semantics themselves are
// spec.md §4.5's, not JSONata's.
package evaluator

import (
	"context"
	"fmt"

	"github.com/hemlocklang/hemlock/pkg/ast"
	"github.com/hemlocklang/hemlock/pkg/object"
)

// Evaluator holds no state of its own; every value it produces is
// reachable only through the ast.Node graph and object.Environment
// passed in, matching spec.md §5's single-threaded, no-shared-state
// design intent (an Evaluator zero value is directly usable).
type Evaluator struct{}

// New returns a ready-to-use Evaluator.
func New() *Evaluator { return &Evaluator{} }

// Eval walks node and returns the value it evaluates to. It is pure at
// the operational level: env is the only thing it mutates, and only the
// scopes it was itself given (spec.md §4.4).
//
// ctx is checked at Program/Block statement boundaries and at each
// CallExpression so a host can bound a runaway or non-terminating user
// program (spec.md §5 "cancellation / timeouts"); it is never used to
// run evaluation concurrently.
func (e *Evaluator) Eval(ctx context.Context, node *ast.Node, env *object.Environment) object.Value {
	if node == nil {
		return object.NullValue
	}

	switch node.Kind {
	case ast.Program:
		return e.evalProgram(ctx, node, env)
	case ast.ExpressionStatement:
		return e.Eval(ctx, node.Right, env)
	case ast.BlockStatement:
		return e.evalBlockStatement(ctx, node, env)
	case ast.ReturnStatement:
		val := e.Eval(ctx, node.Right, env)
		if isError(val) {
			return val
		}
		return &object.ReturnValue{Value: val}
	case ast.LetStatement:
		val := e.Eval(ctx, node.Right, env)
		if isError(val) {
			return val
		}
		env.Set(node.Str, val)
		return object.NullValue

	case ast.IntegerLiteral:
		return &object.Integer{Value: node.Int}
	case ast.StringLiteral:
		return &object.String{Value: node.Str}
	case ast.BooleanLiteral:
		return object.NativeBool(node.Bool)
	case ast.Identifier:
		return e.evalIdentifier(node, env)
	case ast.PrefixExpression:
		right := e.Eval(ctx, node.Right, env)
		if isError(right) {
			return right
		}
		return evalPrefixExpression(node.Str, right)
	case ast.InfixExpression:
		left := e.Eval(ctx, node.Left, env)
		if isError(left) {
			return left
		}
		right := e.Eval(ctx, node.Right, env)
		if isError(right) {
			return right
		}
		return evalInfixExpression(node.Str, left, right)
	case ast.IfExpression:
		return e.evalIfExpression(ctx, node, env)
	case ast.FunctionLiteral:
		return &object.Function{Params: node.Params, Body: node.Consequence, Env: env}
	case ast.CallExpression:
		return e.evalCallExpression(ctx, node, env)
	case ast.ArrayLiteral:
		elements := e.evalExpressions(ctx, node.Elements, env)
		if len(elements) == 1 && isError(elements[0]) {
			return elements[0]
		}
		return &object.Array{Elements: elements}
	case ast.IndexExpression:
		return e.evalIndexExpression(ctx, node, env)
	case ast.HashLiteral:
		return e.evalHashLiteral(ctx, node, env)
	default:
		return newError("unknown node kind: %v", node.Kind)
	}
}

func (e *Evaluator) evalProgram(ctx context.Context, program *ast.Node, env *object.Environment) object.Value {
	var result object.Value = object.NullValue

	for _, stmt := range program.Statements {
		if err := ctx.Err(); err != nil {
			return newError("interrupted: %s", err)
		}
		result = e.Eval(ctx, stmt, env)

		switch res := result.(type) {
		case *object.ReturnValue:
			return res.Value
		case *object.Error:
			return res
		}
	}
	return result
}

// evalBlockStatement differs from evalProgram only in that it does not
// unwrap ReturnValue: it returns the carrier intact so the surrounding
// function call (or Program) unwraps it, which is how `return` escapes
// arbitrarily nested blocks (spec.md §4.5).
func (e *Evaluator) evalBlockStatement(ctx context.Context, block *ast.Node, env *object.Environment) object.Value {
	var result object.Value = object.NullValue

	for _, stmt := range block.Statements {
		if err := ctx.Err(); err != nil {
			return newError("interrupted: %s", err)
		}
		result = e.Eval(ctx, stmt, env)

		if result != nil {
			rt := result.Kind()
			if rt == object.ReturnValueKind || rt == object.ErrorKind {
				return result
			}
		}
	}
	return result
}

func (e *Evaluator) evalIdentifier(node *ast.Node, env *object.Environment) object.Value {
	if val, ok := env.Get(node.Str); ok {
		return val
	}
	if builtin, ok := builtins[node.Str]; ok {
		return builtin
	}
	return newError("identifier not found: " + node.Str)
}

func evalPrefixExpression(operator string, right object.Value) object.Value {
	switch operator {
	case "!":
		return evalBangOperatorExpression(right)
	case "-":
		return evalMinusPrefixOperatorExpression(right)
	default:
		return newError("unknown operator: %s%s", operator, right.Kind())
	}
}

// evalBangOperatorExpression implements prefix ! (spec.md §4.5): only
// Boolean is logically negated in the usual sense; every other kind
// (including Integer) becomes false, since Bang's own rule is narrower
// than the truthiness rule used by if-expressions.
func evalBangOperatorExpression(right object.Value) object.Value {
	if b, ok := right.(*object.Boolean); ok {
		return object.NativeBool(!b.Value)
	}
	return object.False
}

func evalMinusPrefixOperatorExpression(right object.Value) object.Value {
	i, ok := right.(*object.Integer)
	if !ok {
		return newError("unknown operator: -%s", right.Kind())
	}
	// Construct a fresh value rather than mutating the operand in place
	// (spec.md §9 open question: the C++ original mutates in place; an
	// immutable-value implementation must not).
	return &object.Integer{Value: -i.Value}
}

func evalInfixExpression(operator string, left, right object.Value) object.Value {
	switch {
	case left.Kind() == object.IntegerKind && right.Kind() == object.IntegerKind:
		return evalIntegerInfixExpression(operator, left.(*object.Integer), right.(*object.Integer))
	case left.Kind() == object.StringKind && right.Kind() == object.StringKind:
		return evalStringInfixExpression(operator, left.(*object.String), right.(*object.String))
	case operator == "==":
		if left.Kind() != right.Kind() {
			return newError("unknown operator %s %s %s", left.Kind(), operator, right.Kind())
		}
		return object.NativeBool(object.Equal(left, right))
	case operator == "!=":
		if left.Kind() != right.Kind() {
			return newError("unknown operator %s %s %s", left.Kind(), operator, right.Kind())
		}
		return object.NativeBool(!object.Equal(left, right))
	default:
		return newError("unknown operator %s %s %s", left.Kind(), operator, right.Kind())
	}
}

func evalIntegerInfixExpression(operator string, left, right *object.Integer) object.Value {
	switch operator {
	case "+":
		return &object.Integer{Value: left.Value + right.Value}
	case "-":
		return &object.Integer{Value: left.Value - right.Value}
	case "*":
		return &object.Integer{Value: left.Value * right.Value}
	case "/":
		if right.Value == 0 {
			return newError("division by zero")
		}
		return &object.Integer{Value: left.Value / right.Value}
	case "<":
		return object.NativeBool(left.Value < right.Value)
	case ">":
		return object.NativeBool(left.Value > right.Value)
	case "==":
		return object.NativeBool(left.Value == right.Value)
	case "!=":
		return object.NativeBool(left.Value != right.Value)
	default:
		return newError("unknown operator: %s %s %s", left.Kind(), operator, right.Kind())
	}
}

func evalStringInfixExpression(operator string, left, right *object.String) object.Value {
	switch operator {
	case "+":
		return &object.String{Value: left.Value + right.Value}
	case "==":
		return object.NativeBool(left.Value == right.Value)
	case "!=":
		return object.NativeBool(left.Value != right.Value)
	default:
		return newError("unknown operator: %s %s %s", left.Kind(), operator, right.Kind())
	}
}

func (e *Evaluator) evalIfExpression(ctx context.Context, node *ast.Node, env *object.Environment) object.Value {
	condition := e.Eval(ctx, node.Left, env)
	if isError(condition) {
		return condition
	}
	if isTruthy(condition) {
		return e.Eval(ctx, node.Consequence, env)
	} else if node.Alternative != nil {
		return e.Eval(ctx, node.Alternative, env)
	}
	return object.NullValue
}

// isTruthy implements spec.md §4.5's truthiness rule: Integer n → n != 0;
// Boolean b → b; every other kind → false. This deliberately differs
// from Lisp-family "everything but false/nil is truthy" conventions.
func isTruthy(val object.Value) bool {
	switch v := val.(type) {
	case *object.Integer:
		return v.Value != 0
	case *object.Boolean:
		return v.Value
	default:
		return false
	}
}

func (e *Evaluator) evalExpressions(ctx context.Context, nodes []*ast.Node, env *object.Environment) []object.Value {
	result := make([]object.Value, 0, len(nodes))
	for _, n := range nodes {
		val := e.Eval(ctx, n, env)
		if isError(val) {
			return []object.Value{val}
		}
		result = append(result, val)
	}
	return result
}

func (e *Evaluator) evalCallExpression(ctx context.Context, node *ast.Node, env *object.Environment) object.Value {
	if err := ctx.Err(); err != nil {
		return newError("interrupted: %s", err)
	}

	callee := e.Eval(ctx, node.Left, env)
	if isError(callee) {
		return callee
	}
	args := e.evalExpressions(ctx, node.Elements, env)
	if len(args) == 1 && isError(args[0]) {
		return args[0]
	}
	return e.applyFunction(ctx, callee, env, args)
}

func (e *Evaluator) applyFunction(ctx context.Context, fn object.Value, env *object.Environment, args []object.Value) object.Value {
	switch f := fn.(type) {
	case *object.Function:
		if len(args) != len(f.Params) {
			return newError("wrong number of arguments: expected %d, got %d", len(f.Params), len(args))
		}
		extended := extendFunctionEnv(f, args)
		evaluated := e.Eval(ctx, f.Body, extended)
		return unwrapReturnValue(evaluated)
	case *object.Builtin:
		return f.Fn(env, args...)
	default:
		return newError("not a function: %s", fn.Kind())
	}
}

// extendFunctionEnv creates the call frame: its outer scope is the
// function's *captured* environment, never the caller's (spec.md §3, §4.5).
func extendFunctionEnv(fn *object.Function, args []object.Value) *object.Environment {
	env := object.NewEnclosed(fn.Env)
	for i, param := range fn.Params {
		env.Set(param.Str, args[i])
	}
	return env
}

func unwrapReturnValue(val object.Value) object.Value {
	if rv, ok := val.(*object.ReturnValue); ok {
		return rv.Value
	}
	return val
}

func (e *Evaluator) evalIndexExpression(ctx context.Context, node *ast.Node, env *object.Environment) object.Value {
	left := e.Eval(ctx, node.Left, env)
	if isError(left) {
		return left
	}

	switch target := left.(type) {
	case *object.Array:
		index := e.Eval(ctx, node.Right, env)
		if isError(index) {
			return index
		}
		idx, ok := index.(*object.Integer)
		if !ok {
			return newError("index should be integer, got %s", index.Kind())
		}
		if idx.Value < 0 || idx.Value >= int64(len(target.Elements)) {
			return newError("index(%d) exceeds array size(%d)", idx.Value, len(target.Elements))
		}
		return target.Elements[idx.Value]
	case *object.Hash:
		return e.evalHashIndexExpression(ctx, target, node.Right, env)
	default:
		return newError("index operator not supported: %s", left.Kind())
	}
}

func (e *Evaluator) evalHashIndexExpression(ctx context.Context, hash *object.Hash, keyNode *ast.Node, env *object.Environment) object.Value {
	key := e.Eval(ctx, keyNode, env)
	if isError(key) {
		return key
	}
	hashable, ok := key.(object.Hashable)
	if !ok {
		return newError("unusable as hash key: %s", key.Kind())
	}
	pair, ok := hash.Pairs[hashable.HashKey()]
	if !ok {
		return object.NullValue
	}
	return pair.Value
}

func (e *Evaluator) evalHashLiteral(ctx context.Context, node *ast.Node, env *object.Environment) object.Value {
	pairs := make(map[object.HashKey]object.HashPair, len(node.Pairs))

	for _, p := range node.Pairs {
		key := e.Eval(ctx, p.Key, env)
		if isError(key) {
			return key
		}
		hashable, ok := key.(object.Hashable)
		if !ok {
			return newError("unusable as hash key: %s", key.Kind())
		}
		value := e.Eval(ctx, p.Value, env)
		if isError(value) {
			return value
		}
		pairs[hashable.HashKey()] = object.HashPair{Key: key, Value: value}
	}
	return &object.Hash{Pairs: pairs}
}

func isError(val object.Value) bool {
	if val == nil {
		return false
	}
	return val.Kind() == object.ErrorKind
}

func newError(format string, a ...interface{}) *object.Error {
	return &object.Error{Message: fmt.Sprintf(format, a...)}
}
