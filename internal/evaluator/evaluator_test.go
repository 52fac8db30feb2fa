package evaluator

import (
	"bytes"
	"errors"
	"log"
	"math"
	"strings"
	"testing"

	"github.com/funvibe/corecalc/internal/ast"
	"github.com/funvibe/corecalc/internal/typesystem"
)

func lit(n float64) *ast.F64Lit { return &ast.F64Lit{Value: n} }

func TestEval(t *testing.T) {
	env := NewEnvironment(map[string]typesystem.Value{
		"x": typesystem.VF64Lit{Value: 10},
		"T": typesystem.VF64{},
	})

	tests := []struct {
		name string
		expr ast.Expr
		want typesystem.Value
	}{
		{"literal", lit(2.5), typesystem.VF64Lit{Value: 2.5}},
		{"addition", &ast.Add{Left: lit(1), Right: lit(2)}, typesystem.VF64Lit{Value: 3}},
		{"nested addition", &ast.Add{Left: &ast.Add{Left: lit(1), Right: lit(2)}, Right: lit(3)}, typesystem.VF64Lit{Value: 6}},
		{"variable", &ast.Var{Name: "x"}, typesystem.VF64Lit{Value: 10}},
		{"variable plus literal", &ast.Add{Left: &ast.Var{Name: "x"}, Right: lit(0.5)}, typesystem.VF64Lit{Value: 10.5}},
		{"F64", &ast.F64{}, typesystem.VF64{}},
		{"Trivial", &ast.Trivial{}, typesystem.VTrivial{}},
		{"sole", &ast.Sole{}, typesystem.VSole{}},
		{"universe", &ast.U{Level: 7}, typesystem.VU{Level: 7}},
		{"command", &ast.Command{Body: &ast.Var{Name: "T"}}, typesystem.VCommand{Result: typesystem.VF64{}}},
		{
			"let binds its name",
			&ast.Let{Name: "y", Bound: lit(4), Body: &ast.Add{Left: &ast.Var{Name: "y"}, Right: &ast.Var{Name: "x"}}},
			typesystem.VF64Lit{Value: 14},
		},
		{
			"let shadows outer binding",
			&ast.Let{Name: "x", Bound: lit(1), Body: &ast.Var{Name: "x"}},
			typesystem.VF64Lit{Value: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Eval(tt.expr, env)
			if err != nil {
				t.Fatalf("Eval(%s) error: %v", tt.expr, err)
			}
			if !typesystem.Equal(got, tt.want) {
				t.Errorf("Eval(%s) = %s, want %s", tt.expr, got, tt.want)
			}
		})
	}

	// Let does not leak its binding into the caller's environment.
	if v, _ := env.Get("x"); !typesystem.Equal(v, typesystem.VF64Lit{Value: 10}) {
		t.Errorf("x = %s after evaluating lets, want 10", v)
	}
}

func TestEvalIEEE(t *testing.T) {
	got, err := Eval(&ast.Add{Left: lit(math.MaxFloat64), Right: lit(math.MaxFloat64)}, nil)
	if err != nil {
		t.Fatalf("Eval error: %v", err)
	}
	if f := got.(typesystem.VF64Lit).Value; !math.IsInf(f, 1) {
		t.Errorf("MaxFloat64 + MaxFloat64 = %v, want +Inf", f)
	}

	got, err = Eval(&ast.Add{Left: lit(math.Inf(1)), Right: lit(math.Inf(-1))}, nil)
	if err != nil {
		t.Fatalf("Eval error: %v", err)
	}
	if f := got.(typesystem.VF64Lit).Value; !math.IsNaN(f) {
		t.Errorf("Inf + -Inf = %v, want NaN", f)
	}
}

func TestEvalErrors(t *testing.T) {
	t.Run("unbound variable", func(t *testing.T) {
		_, err := Eval(&ast.Var{Name: "missing"}, nil)
		var unbound *UnboundVariableError
		if !errors.As(err, &unbound) || unbound.Name != "missing" {
			t.Errorf("err = %v, want unbound variable missing", err)
		}
	})

	t.Run("adding a non-number", func(t *testing.T) {
		_, err := Eval(&ast.Add{Left: lit(1), Right: &ast.Sole{}}, nil)
		var mismatch *TypeMismatchError
		if !errors.As(err, &mismatch) {
			t.Fatalf("err = %v, want *TypeMismatchError", err)
		}
		if got, want := err.Error(), "cannot add 1 to sole"; got != want {
			t.Errorf("Error() = %q, want %q", got, want)
		}
	})

	t.Run("error inside let body", func(t *testing.T) {
		_, err := Eval(&ast.Let{Name: "x", Bound: &ast.F64{}, Body: &ast.Var{Name: "y"}}, nil)
		var unbound *UnboundVariableError
		if !errors.As(err, &unbound) || unbound.Name != "y" {
			t.Errorf("err = %v, want unbound variable y", err)
		}
	})
}

func TestEvalTrace(t *testing.T) {
	var buf bytes.Buffer
	ev := &Evaluator{Trace: log.New(&buf, "", 0)}

	expr := &ast.Let{Name: "x", Bound: lit(1), Body: &ast.Add{Left: &ast.Var{Name: "x"}, Right: lit(2)}}
	if _, err := ev.Eval(expr, nil); err != nil {
		t.Fatalf("Eval error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"let x = 1", "add 1 + 2 = 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("trace %q does not contain %q", out, want)
		}
	}
}

func TestEnvironment(t *testing.T) {
	var env *Env
	if _, ok := env.Get("a"); ok {
		t.Fatalf("empty environment should bind nothing")
	}

	outer := env.Extend("a", typesystem.VF64Lit{Value: 1})
	inner := outer.Extend("a", typesystem.VF64Lit{Value: 2}).Extend("b", typesystem.VSole{})

	store := inner.GetStore()
	if len(store) != 2 {
		t.Fatalf("GetStore() has %d entries, want 2", len(store))
	}
	if !typesystem.Equal(store["a"], typesystem.VF64Lit{Value: 2}) {
		t.Errorf("store[a] = %s, want 2", store["a"])
	}
	if v, _ := outer.Get("a"); !typesystem.Equal(v, typesystem.VF64Lit{Value: 1}) {
		t.Errorf("outer a = %s, want 1", v)
	}
}
