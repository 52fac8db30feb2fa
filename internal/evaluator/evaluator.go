package evaluator

import (
	"fmt"
	"log"

	"github.com/funvibe/corecalc/internal/ast"
	"github.com/funvibe/corecalc/internal/typesystem"
)

// Evaluator reduces expressions to values, call-by-value. It holds no
// per-call state, so one Evaluator may serve many goroutines.
type Evaluator struct {
	// Trace, when set, receives one line per reduced Let and Add.
	Trace *log.Logger
}

func New() *Evaluator {
	return &Evaluator{}
}

// Eval reduces expr under env with a silent evaluator.
func Eval(expr ast.Expr, env *Env) (typesystem.Value, error) {
	return New().Eval(expr, env)
}

func (e *Evaluator) Eval(expr ast.Expr, env *Env) (typesystem.Value, error) {
	switch node := expr.(type) {
	case *ast.Add:
		left, err := e.Eval(node.Left, env)
		if err != nil {
			return nil, err
		}
		right, err := e.Eval(node.Right, env)
		if err != nil {
			return nil, err
		}
		l, lok := left.(typesystem.VF64Lit)
		r, rok := right.(typesystem.VF64Lit)
		if !lok || !rok {
			return nil, &TypeMismatchError{Op: "add", Left: left.Quote(), Right: right.Quote()}
		}
		sum := typesystem.VF64Lit{Value: l.Value + r.Value}
		e.tracef("add %s + %s = %s", l, r, sum)
		return sum, nil

	case *ast.Command:
		body, err := e.Eval(node.Body, env)
		if err != nil {
			return nil, err
		}
		return typesystem.VCommand{Result: body}, nil

	case *ast.F64:
		return typesystem.VF64{}, nil

	case *ast.F64Lit:
		return typesystem.VF64Lit{Value: node.Value}, nil

	case *ast.Let:
		bound, err := e.Eval(node.Bound, env)
		if err != nil {
			return nil, err
		}
		e.tracef("let %s = %s", node.Name, bound)
		return e.Eval(node.Body, env.Extend(node.Name, bound))

	case *ast.Trivial:
		return typesystem.VTrivial{}, nil

	case *ast.Sole:
		return typesystem.VSole{}, nil

	case *ast.U:
		return typesystem.VU{Level: node.Level}, nil

	case *ast.Var:
		val, ok := env.Get(node.Name)
		if !ok {
			return nil, &UnboundVariableError{Name: node.Name}
		}
		return val, nil
	}

	return nil, fmt.Errorf("cannot evaluate %T", expr)
}

func (e *Evaluator) tracef(format string, args ...interface{}) {
	if e.Trace != nil {
		e.Trace.Printf(format, args...)
	}
}
