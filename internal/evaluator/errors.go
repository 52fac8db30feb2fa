package evaluator

import (
	"fmt"

	"github.com/funvibe/corecalc/internal/ast"
)

// TypeMismatchError means an operation met operands of the wrong shape.
// A checked program never triggers it; seeing one points at a disagreement
// between the checker and the evaluator.
type TypeMismatchError struct {
	Op    string
	Left  ast.Expr
	Right ast.Expr
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("cannot %s %s to %s", e.Op, e.Left, e.Right)
}

// UnboundVariableError means a variable had no value in the environment.
type UnboundVariableError struct {
	Name ast.Name
}

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("unbound variable: %s", e.Name)
}
