package analyzer

import (
	"fmt"
	"log"

	"github.com/funvibe/corecalc/internal/ast"
	"github.com/funvibe/corecalc/internal/evaluator"
	"github.com/funvibe/corecalc/internal/typesystem"
)

// Checker runs bidirectional type checking. Check validates an expression
// against an expected type using structural rules where one applies and
// falls back to Infer plus a comparison of quoted normal forms otherwise.
//
// A Checker is stateless between calls and may be shared across goroutines.
type Checker struct {
	eval  *evaluator.Evaluator
	Trace *log.Logger
}

func New() *Checker {
	return &Checker{eval: evaluator.New()}
}

// NewWithTrace returns a checker that logs each rule it applies, and each
// reduction performed while evaluating type-level expressions, to trace.
func NewWithTrace(trace *log.Logger) *Checker {
	return &Checker{eval: &evaluator.Evaluator{Trace: trace}, Trace: trace}
}

// Check validates expr against expected with a silent checker.
func Check(expr ast.Expr, expected typesystem.Type, ctx *typesystem.Context, env *evaluator.Env) error {
	return New().Check(expr, expected, ctx, env)
}

// Infer computes the type of expr with a silent checker.
func Infer(expr ast.Expr, ctx *typesystem.Context, env *evaluator.Env) (typesystem.Type, error) {
	return New().Infer(expr, ctx, env)
}

func (c *Checker) Check(expr ast.Expr, expected typesystem.Type, ctx *typesystem.Context, env *evaluator.Env) error {
	if expected == nil {
		return fmt.Errorf("checking %s: no expected type", expr)
	}
	c.tracef("check %s : %s", expr, expected)

	switch e := expr.(type) {
	case *ast.Command:
		if _, ok := expected.(typesystem.VU); ok {
			return c.Check(e.Body, expected, ctx, env)
		}

	case *ast.F64:
		if _, ok := expected.(typesystem.VU); ok {
			return nil
		}

	case *ast.F64Lit:
		if _, ok := expected.(typesystem.VF64); ok {
			return nil
		}

	case *ast.Let:
		if cmd, ok := expected.(typesystem.VCommand); ok {
			return c.checkLet(e, cmd, ctx, env)
		}

	case *ast.Trivial:
		if _, ok := expected.(typesystem.VU); ok {
			return nil
		}

	case *ast.Sole:
		if typesystem.IsTrivial(expected) {
			return nil
		}

	case *ast.U:
		if u, ok := expected.(typesystem.VU); ok && e.Level < u.Level {
			return nil
		}
	}

	return c.checkByInference(expr, expected, ctx, env)
}

// checkLet handles let(x, e1, e2) : Command(t). Only Command(Trivial) is
// accepted. e1 is checked as a type, evaluated, and e2 is checked against
// the result with x bound to that result.
func (c *Checker) checkLet(e *ast.Let, expected typesystem.VCommand, ctx *typesystem.Context, env *evaluator.Env) error {
	if !typesystem.IsTrivial(expected.Result) {
		return typesystem.NewMismatchError(typesystem.VCommand{Result: typesystem.VTrivial{}}, expected)
	}

	top := typesystem.VU{Level: ast.MaxLevel}
	if err := c.Check(e.Bound, top, ctx, env); err != nil {
		return err
	}

	bound, err := c.eval.Eval(e.Bound, env)
	if err != nil {
		return err
	}

	return c.Check(e.Body, bound, ctx.Extend(e.Name, top), env.Extend(e.Name, bound))
}

func (c *Checker) checkByInference(expr ast.Expr, expected typesystem.Type, ctx *typesystem.Context, env *evaluator.Env) error {
	actual, err := c.Infer(expr, ctx, env)
	if err != nil {
		return err
	}

	if !typesystem.Equal(actual, expected) {
		return typesystem.NewMismatchError(actual, expected)
	}
	return nil
}

func (c *Checker) Infer(expr ast.Expr, ctx *typesystem.Context, env *evaluator.Env) (typesystem.Type, error) {
	c.tracef("infer %s", expr)

	switch e := expr.(type) {
	case *ast.Add:
		t := typesystem.VF64{}
		if err := c.Check(e.Left, t, ctx, env); err != nil {
			return nil, err
		}
		if err := c.Check(e.Right, t, ctx, env); err != nil {
			return nil, err
		}
		return t, nil

	case *ast.Var:
		t, ok := ctx.Lookup(e.Name)
		if !ok {
			return nil, &typesystem.UnboundVariableError{Name: e.Name}
		}
		return t, nil
	}

	return nil, &typesystem.CannotInferError{Expr: expr}
}

func (c *Checker) tracef(format string, args ...interface{}) {
	if c.Trace != nil {
		c.Trace.Printf(format, args...)
	}
}
