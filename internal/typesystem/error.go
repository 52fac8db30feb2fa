package typesystem

import (
	"fmt"

	"github.com/funvibe/corecalc/internal/ast"
)

// MismatchError indicates that the type found for an expression differs
// from the type it was checked against. Both sides are quoted syntax.
type MismatchError struct {
	Actual   ast.Expr
	Expected ast.Expr
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("type mismatch: %s vs %s", e.Actual, e.Expected)
}

func NewMismatchError(actual, expected Type) *MismatchError {
	return &MismatchError{Actual: actual.Quote(), Expected: expected.Quote()}
}

// UnboundVariableError indicates a variable with no type in the context.
type UnboundVariableError struct {
	Name ast.Name
}

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("unbound variable: %s", e.Name)
}

// CannotInferError indicates inference was asked about a form that only
// has a checking rule.
type CannotInferError struct {
	Expr ast.Expr
}

func (e *CannotInferError) Error() string {
	return fmt.Sprintf("cannot infer a type for %s", e.Expr)
}
