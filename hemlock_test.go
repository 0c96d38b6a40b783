package hemlock

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/hemlocklang/hemlock/pkg/object"
)

func TestEvalScenarios(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected interface{}
	}{
		{"arithmetic precedence", "1 + 2 * 3", int64(7)},
		{"let binding", "let x = 5; x * x;", int64(25)},
		{"closure captures defining scope", "let mk = fn(x) { fn(y) { x + y } }; mk(3)(4);", int64(7)},
		{"string concatenation", `"foo" + "bar"`, "foobar"},
		{"push does not mutate", "let a = [1]; push(a, 2); len(a);", int64(1)},
		{"array literal and index", "[10, 20, 30][1]", int64(20)},
		{"hash literal and index", `{"a": 1, "b": 2}["b"]`, int64(2)},
		{"map builtin applies closure", "len(map([1, 2, 3], fn(x) { x * x }))", int64(3)},
		{"if truthiness on integer", "if (0) { 1 } else { 2 }", int64(2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := NewEnvironment()
			val, errs := Eval(tt.input, env)
			if len(errs) > 0 {
				t.Fatalf("unexpected parse errors: %v", errs)
			}
			switch want := tt.expected.(type) {
			case int64:
				i, ok := val.(*object.Integer)
				if !ok {
					t.Fatalf("expected Integer, got %T (%s)", val, Inspect(val))
				}
				if i.Value != want {
					t.Errorf("got %d, want %d", i.Value, want)
				}
			case string:
				s, ok := val.(*object.String)
				if !ok {
					t.Fatalf("expected String, got %T (%s)", val, Inspect(val))
				}
				if s.Value != want {
					t.Errorf("got %q, want %q", s.Value, want)
				}
			}
		})
	}
}

func TestEvalReturnsParseErrorsWithoutEvaluating(t *testing.T) {
	env := NewEnvironment()
	val, errs := Eval("let x = ;", env)
	if len(errs) == 0 {
		t.Fatalf("expected parse errors for malformed input")
	}
	if val != nil {
		t.Errorf("expected nil value when parse errors are present, got %v", val)
	}
}

func TestCompileThenEvalMultipleTimes(t *testing.T) {
	prog, errs := Compile("x + 1")
	if len(errs) > 0 {
		t.Fatalf("unexpected compile errors: %v", errs)
	}

	env1 := NewEnvironment()
	env1.Set("x", &object.Integer{Value: 41})
	if got := prog.Eval(context.Background(), env1); got.(*object.Integer).Value != 42 {
		t.Errorf("expected 42, got %s", Inspect(got))
	}

	env2 := NewEnvironment()
	env2.Set("x", &object.Integer{Value: 99})
	if got := prog.Eval(context.Background(), env2); got.(*object.Integer).Value != 100 {
		t.Errorf("expected 100, got %s", Inspect(got))
	}
}

func TestMustCompilePanicsOnParseError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected MustCompile to panic on malformed source")
		}
	}()
	MustCompile("let x = ;")
}

func TestEvalWithCaching(t *testing.T) {
	c := NewCache(4)
	env := NewEnvironment()

	val, errs := Eval("2 * 21", env, WithCaching(c))
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if val.(*object.Integer).Value != 42 {
		t.Fatalf("expected 42, got %s", Inspect(val))
	}
	if c.Len() != 1 {
		t.Fatalf("expected the compiled program to be cached, cache has %d entries", c.Len())
	}

	// Second call with the same source should hit the cache, not error.
	val2, errs2 := Eval("2 * 21", env, WithCaching(c))
	if len(errs2) > 0 {
		t.Fatalf("unexpected errors on cached path: %v", errs2)
	}
	if val2.(*object.Integer).Value != 42 {
		t.Fatalf("expected 42 from cache, got %s", Inspect(val2))
	}
}

func TestEvalRespectsCancellation(t *testing.T) {
	env := NewEnvironment()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	val, errs := EvalWithContext(ctx, "1 + 1", env)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if _, ok := val.(*object.Error); !ok {
		t.Errorf("expected an Error value once context is already cancelled, got %T", val)
	}
}

func TestPutsIsVisibleThroughEnvironmentOutput(t *testing.T) {
	env := NewEnvironment()
	var buf bytes.Buffer
	env.SetOutput(&buf)

	_, errs := Eval(`puts("hello")`, env)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if buf.String() != "hello\n" {
		t.Errorf("expected captured output %q, got %q", "hello\n", buf.String())
	}
}

func TestInspectFormsMatchSpec(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"5", "5"},
		{"true", "true"},
		{`"hi"`, "hi"},
		{"[1,2]", "[1,2,]"},
		{"fn(x) { x }", "fn(x) {\nx\n}"},
	}
	for _, tt := range tests {
		env := NewEnvironment()
		val, errs := Eval(tt.input, env)
		if len(errs) > 0 {
			t.Fatalf("unexpected errors for %q: %v", tt.input, errs)
		}
		if got := Inspect(val); got != tt.want {
			t.Errorf("Inspect(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestWithTimeoutOverridesDefault(t *testing.T) {
	env := NewEnvironment()
	val, errs := Eval("1 + 1", env, WithTimeout(5*time.Second))
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if val.(*object.Integer).Value != 2 {
		t.Errorf("expected 2, got %s", Inspect(val))
	}

	// An already-elapsed timeout replaces the 30s default, so the program
	// is interrupted before its first statement.
	expired, errs := Eval("1 + 1", env, WithTimeout(-time.Second))
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if _, ok := expired.(*object.Error); !ok {
		t.Errorf("expected an Error value under an elapsed timeout, got %s", Inspect(expired))
	}
}
