package typesystem

import "github.com/funvibe/corecalc/internal/ast"

// Value is the semantic domain produced by evaluation. Values are always in
// normal form: no pending additions and no variable references.
type Value interface {
	String() string
	// Quote reads the value back as syntax.
	Quote() ast.Expr
	valueNode()
}

// Type is a Value used to classify other values. Types and values share one
// representation, so a type can be computed by evaluating an expression.
type Type = Value

// VCommand is the type of a command producing Result.
type VCommand struct {
	Result Value
}

func (v VCommand) String() string  { return v.Quote().String() }
func (v VCommand) Quote() ast.Expr { return &ast.Command{Body: v.Result.Quote()} }
func (VCommand) valueNode()        {}

// VF64 is the type of 64-bit floats.
type VF64 struct{}

func (v VF64) String() string  { return "F64" }
func (v VF64) Quote() ast.Expr { return &ast.F64{} }
func (VF64) valueNode()        {}

// VF64Lit is a float.
type VF64Lit struct {
	Value float64
}

func (v VF64Lit) String() string  { return ast.FormatFloat(v.Value) }
func (v VF64Lit) Quote() ast.Expr { return &ast.F64Lit{Value: v.Value} }
func (VF64Lit) valueNode()        {}

// VLet is a sequenced command program held as data. Evaluation never
// produces one; hosts may construct it directly.
type VLet struct {
	Name  ast.Name
	Bound Value
	Body  Value
}

func (v VLet) String() string { return v.Quote().String() }
func (v VLet) Quote() ast.Expr {
	return &ast.Let{Name: v.Name, Bound: v.Bound.Quote(), Body: v.Body.Quote()}
}
func (VLet) valueNode() {}

// VTrivial is the unit type.
type VTrivial struct{}

func (v VTrivial) String() string  { return "Trivial" }
func (v VTrivial) Quote() ast.Expr { return &ast.Trivial{} }
func (VTrivial) valueNode()        {}

// VSole is the unit value.
type VSole struct{}

func (v VSole) String() string  { return "sole" }
func (v VSole) Quote() ast.Expr { return &ast.Sole{} }
func (VSole) valueNode()        {}

// VU is the universe at Level.
type VU struct {
	Level ast.Level
}

func (v VU) String() string  { return v.Quote().String() }
func (v VU) Quote() ast.Expr { return &ast.U{Level: v.Level} }
func (VU) valueNode()        {}

// Equal reports whether a and b quote to the same syntax.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return ast.Equal(a.Quote(), b.Quote())
}

// IsTrivial reports whether t is the unit type.
func IsTrivial(t Type) bool {
	_, ok := t.(VTrivial)
	return ok
}

// TypeOf returns a type that v's quotation checks against. ok is false for
// values with no such type, e.g. a command wrapping a non-type.
func TypeOf(v Value) (t Type, ok bool) {
	switch v := v.(type) {
	case VF64Lit:
		return VF64{}, true
	case VSole:
		return VTrivial{}, true
	case VF64, VTrivial:
		return VU{Level: 0}, true
	case VU:
		if v.Level == ast.MaxLevel {
			return nil, false
		}
		return VU{Level: v.Level + 1}, true
	case VCommand:
		// Command(e) is classified like its payload.
		inner, ok := TypeOf(v.Result)
		if !ok {
			return nil, false
		}
		if _, isU := inner.(VU); !isU {
			return nil, false
		}
		return inner, true
	case VLet:
		return VCommand{Result: VTrivial{}}, true
	}
	return nil, false
}
