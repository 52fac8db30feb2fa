package ast

import "math"

// Name is a variable identifier. Scoping is purely by lookup: the most
// recently bound name wins.
type Name = string

// Level indexes the universe hierarchy U(0) : U(1) : U(2) ...
type Level uint64

// MaxLevel is the largest visible universe. Checking against U(MaxLevel)
// accepts any type living in a smaller universe.
const MaxLevel Level = math.MaxUint64

// Node is the base interface for all syntax nodes.
type Node interface {
	Accept(v Visitor)
	String() string
}

// Expr is a node of the surface calculus. Every variant owns its children;
// trees never share subterms.
type Expr interface {
	Node
	exprNode()
	Kind() ExprKind
	prec() Prec
}

// Add is binary float addition: Left + Right.
type Add struct {
	Left  Expr
	Right Expr
}

func (a *Add) Accept(v Visitor) { v.VisitAdd(a) }
func (a *Add) exprNode()        {}
func (a *Add) Kind() ExprKind   { return KindAdd }
func (a *Add) prec() Prec       { return PrecAdd }

// Command wraps an expression denoting an effectful computation whose
// result type is Body.
type Command struct {
	Body Expr
}

func (c *Command) Accept(v Visitor) { v.VisitCommand(c) }
func (c *Command) exprNode()        {}
func (c *Command) Kind() ExprKind   { return KindCommand }
func (c *Command) prec() Prec       { return PrecAtom }

// F64 is the type of 64-bit floats.
type F64 struct{}

func (f *F64) Accept(v Visitor) { v.VisitF64(f) }
func (f *F64) exprNode()        {}
func (f *F64) Kind() ExprKind   { return KindF64 }
func (f *F64) prec() Prec       { return PrecAtom }

// F64Lit is a float literal.
type F64Lit struct {
	Value float64
}

func (f *F64Lit) Accept(v Visitor) { v.VisitF64Lit(f) }
func (f *F64Lit) exprNode()        {}
func (f *F64Lit) Kind() ExprKind   { return KindF64Lit }
func (f *F64Lit) prec() Prec       { return PrecAtom }

// Let binds Name to the result of Bound while running Body.
// let(x, e1, e2)
type Let struct {
	Name  Name
	Bound Expr
	Body  Expr
}

func (l *Let) Accept(v Visitor) { v.VisitLet(l) }
func (l *Let) exprNode()        {}
func (l *Let) Kind() ExprKind   { return KindLet }
func (l *Let) prec() Prec       { return PrecAtom }

// Trivial is the unit type.
type Trivial struct{}

func (t *Trivial) Accept(v Visitor) { v.VisitTrivial(t) }
func (t *Trivial) exprNode()        {}
func (t *Trivial) Kind() ExprKind   { return KindTrivial }
func (t *Trivial) prec() Prec       { return PrecAtom }

// Sole is the only value of Trivial.
type Sole struct{}

func (s *Sole) Accept(v Visitor) { v.VisitSole(s) }
func (s *Sole) exprNode()        {}
func (s *Sole) Kind() ExprKind   { return KindSole }
func (s *Sole) prec() Prec       { return PrecAtom }

// U is the universe of types at Level.
type U struct {
	Level Level
}

func (u *U) Accept(v Visitor) { v.VisitU(u) }
func (u *U) exprNode()        {}
func (u *U) Kind() ExprKind   { return KindU }
func (u *U) prec() Prec       { return PrecAtom }

// Var references a bound name.
type Var struct {
	Name Name
}

func (x *Var) Accept(v Visitor) { v.VisitVar(x) }
func (x *Var) exprNode()        {}
func (x *Var) Kind() ExprKind   { return KindVar }
func (x *Var) prec() Prec       { return PrecAtom }

// Equal reports whether two expressions are syntactically identical.
// Float literals compare with ==, so NaN is never equal to itself.
func Equal(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch a := a.(type) {
	case *Add:
		b, ok := b.(*Add)
		return ok && Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
	case *Command:
		b, ok := b.(*Command)
		return ok && Equal(a.Body, b.Body)
	case *F64:
		_, ok := b.(*F64)
		return ok
	case *F64Lit:
		b, ok := b.(*F64Lit)
		return ok && a.Value == b.Value
	case *Let:
		b, ok := b.(*Let)
		return ok && a.Name == b.Name && Equal(a.Bound, b.Bound) && Equal(a.Body, b.Body)
	case *Trivial:
		_, ok := b.(*Trivial)
		return ok
	case *Sole:
		_, ok := b.(*Sole)
		return ok
	case *U:
		b, ok := b.(*U)
		return ok && a.Level == b.Level
	case *Var:
		b, ok := b.(*Var)
		return ok && a.Name == b.Name
	}
	return false
}
