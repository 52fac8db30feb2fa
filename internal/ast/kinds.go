package ast

import "fmt"

// ExprKind is the discriminant of an Expr. It exists for enumeration and
// string round trips; the checker never dispatches on it.
type ExprKind int

const (
	KindAdd ExprKind = iota
	KindCommand
	KindF64
	KindF64Lit
	KindLet
	KindTrivial
	KindSole
	KindU
	KindVar
)

var kindNames = [...]string{
	KindAdd:     "Add",
	KindCommand: "Command",
	KindF64:     "F64",
	KindF64Lit:  "F64Lit",
	KindLet:     "Let",
	KindTrivial: "Trivial",
	KindSole:    "Sole",
	KindU:       "U",
	KindVar:     "Var",
}

func (k ExprKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("ExprKind(%d)", int(k))
	}
	return kindNames[k]
}

// AllExprKinds returns every kind in declaration order.
func AllExprKinds() []ExprKind {
	kinds := make([]ExprKind, len(kindNames))
	for i := range kindNames {
		kinds[i] = ExprKind(i)
	}
	return kinds
}

// ParseError reports a string that names no ExprKind.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("not a valid ExprKind: %q", e.Input)
}

// ParseExprKind is the inverse of ExprKind.String. Matching is exact and
// case-sensitive.
func ParseExprKind(s string) (ExprKind, error) {
	for i, name := range kindNames {
		if name == s {
			return ExprKind(i), nil
		}
	}
	return 0, &ParseError{Input: s}
}

// Skeleton returns the placeholder expression an editor installs when the
// user picks kind. Holes are filled with the simplest well-formed child.
func Skeleton(kind ExprKind) Expr {
	switch kind {
	case KindAdd:
		return &Add{Left: &F64Lit{Value: 0}, Right: &F64Lit{Value: 0}}
	case KindCommand:
		return &Command{Body: &Trivial{}}
	case KindF64:
		return &F64{}
	case KindF64Lit:
		return &F64Lit{Value: 0}
	case KindLet:
		return &Let{Name: "_", Bound: &Trivial{}, Body: &Sole{}}
	case KindTrivial:
		return &Trivial{}
	case KindSole:
		return &Sole{}
	case KindU:
		return &U{Level: 0}
	case KindVar:
		return &Var{Name: ""}
	}
	return nil
}
