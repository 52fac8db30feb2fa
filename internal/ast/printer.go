package ast

import (
	"math"
	"strconv"
	"strings"
)

// Prec is the binding strength of an expression form (higher binds tighter).
type Prec int

const (
	PrecAdd Prec = iota
	PrecAtom
)

// Addition is left-associative: 1 + 2 + 3 reads as (1 + 2) + 3.
var rightAssoc = map[Prec]bool{
	PrecAdd: false,
}

// needsParens reports whether child must be wrapped when printed as an
// operand of a parent with precedence parent.
func needsParens(child Expr, parent Prec, isRight bool) bool {
	p := child.prec()
	if p < parent {
		return true
	}
	if p == parent && p != PrecAtom {
		return isRight != rightAssoc[p]
	}
	return false
}

type printer struct {
	buf strings.Builder
}

func (p *printer) operand(e Expr, parent Prec, isRight bool) {
	if needsParens(e, parent, isRight) {
		p.buf.WriteByte('(')
		p.expr(e)
		p.buf.WriteByte(')')
		return
	}
	p.expr(e)
}

func (p *printer) expr(e Expr) {
	switch e := e.(type) {
	case nil:
		p.buf.WriteString("<???>")
	case *Add:
		p.operand(e.Left, PrecAdd, false)
		p.buf.WriteString(" + ")
		p.operand(e.Right, PrecAdd, true)
	case *Command:
		p.buf.WriteString("Command(")
		p.expr(e.Body)
		p.buf.WriteByte(')')
	case *F64:
		p.buf.WriteString("F64")
	case *F64Lit:
		p.buf.WriteString(FormatFloat(e.Value))
	case *Let:
		p.buf.WriteString("let(")
		p.buf.WriteString(e.Name)
		p.buf.WriteString(", ")
		p.expr(e.Bound)
		p.buf.WriteString(", ")
		p.expr(e.Body)
		p.buf.WriteByte(')')
	case *Trivial:
		p.buf.WriteString("Trivial")
	case *Sole:
		p.buf.WriteString("sole")
	case *U:
		p.buf.WriteString("U(")
		p.buf.WriteString(strconv.FormatUint(uint64(e.Level), 10))
		p.buf.WriteByte(')')
	case *Var:
		p.buf.WriteString(e.Name)
	}
}

// Print renders e using the precedence rules of the calculus.
func Print(e Expr) string {
	var p printer
	p.expr(e)
	return p.buf.String()
}

// FormatFloat renders n in shortest decimal form without an exponent,
// e.g. 1, 2.5, 0.1, inf, NaN.
func FormatFloat(n float64) string {
	switch {
	case math.IsInf(n, 1):
		return "inf"
	case math.IsInf(n, -1):
		return "-inf"
	case math.IsNaN(n):
		return "NaN"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func (a *Add) String() string     { return Print(a) }
func (c *Command) String() string { return Print(c) }
func (f *F64) String() string     { return Print(f) }
func (f *F64Lit) String() string  { return Print(f) }
func (l *Let) String() string     { return Print(l) }
func (t *Trivial) String() string { return Print(t) }
func (s *Sole) String() string    { return Print(s) }
func (u *U) String() string       { return Print(u) }
func (x *Var) String() string     { return Print(x) }
