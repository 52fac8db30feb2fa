package document

import (
	"fmt"
	"math"
	"strconv"

	"github.com/funvibe/corecalc/internal/ast"
	"gopkg.in/yaml.v3"
)

// Node wraps an expression so it can appear in YAML.
//
// Scalars: F64, Trivial and Sole name the nullary forms, numbers are float
// literals, any other string is a variable. Single-key maps spell the rest:
//
//	{Add: [l, r]}   {Command: e}   {F64Lit: n}
//	{Let: [x, e1, e2]}   {U: i}   {Var: x}
//
// {U: max} denotes the top universe.
type Node struct {
	Expr ast.Expr
}

// DecodeError reports a malformed expression node.
type DecodeError struct {
	Line   int
	Column int
	Msg    string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

func errorAt(n *yaml.Node, format string, args ...interface{}) *DecodeError {
	return &DecodeError{Line: n.Line, Column: n.Column, Msg: fmt.Sprintf(format, args...)}
}

const maxLevelName = "max"

// nullary forms that may be written as bare scalars.
var keywords = map[string]func() ast.Expr{
	"F64":     func() ast.Expr { return &ast.F64{} },
	"Trivial": func() ast.Expr { return &ast.Trivial{} },
	"Sole":    func() ast.Expr { return &ast.Sole{} },
}

func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	expr, err := decodeExpr(value)
	if err != nil {
		return err
	}
	n.Expr = expr
	return nil
}

func (n Node) MarshalYAML() (interface{}, error) {
	return EncodeNode(n.Expr)
}

func decodeExpr(n *yaml.Node) (ast.Expr, error) {
	if n.Kind == yaml.DocumentNode && len(n.Content) == 1 {
		return decodeExpr(n.Content[0])
	}
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		return decodeExpr(n.Alias)
	}

	switch n.Kind {
	case yaml.ScalarNode:
		return decodeScalar(n)
	case yaml.MappingNode:
		if len(n.Content) != 2 {
			return nil, errorAt(n, "expression map must have exactly one key, got %d", len(n.Content)/2)
		}
		key, body := n.Content[0], n.Content[1]
		kind, err := ast.ParseExprKind(key.Value)
		if err != nil {
			return nil, errorAt(key, "%s", err)
		}
		return decodeForm(kind, body)
	}
	return nil, errorAt(n, "expected an expression, got %s", describe(n))
}

func decodeScalar(n *yaml.Node) (ast.Expr, error) {
	switch n.ShortTag() {
	case "!!int", "!!float":
		f, err := parseFloat(n)
		if err != nil {
			return nil, err
		}
		return &ast.F64Lit{Value: f}, nil
	case "!!str":
		if mk, ok := keywords[n.Value]; ok && n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) == 0 {
			return mk(), nil
		}
		return &ast.Var{Name: n.Value}, nil
	}
	return nil, errorAt(n, "unexpected %s scalar %q", n.ShortTag(), n.Value)
}

func decodeForm(kind ast.ExprKind, body *yaml.Node) (ast.Expr, error) {
	switch kind {
	case ast.KindAdd:
		args, err := tuple(body, 2)
		if err != nil {
			return nil, err
		}
		left, err := decodeExpr(args[0])
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(args[1])
		if err != nil {
			return nil, err
		}
		return &ast.Add{Left: left, Right: right}, nil

	case ast.KindCommand:
		inner, err := decodeExpr(body)
		if err != nil {
			return nil, err
		}
		return &ast.Command{Body: inner}, nil

	case ast.KindF64Lit:
		if body.Kind != yaml.ScalarNode {
			return nil, errorAt(body, "F64Lit expects a number, got %s", describe(body))
		}
		f, err := parseFloat(body)
		if err != nil {
			return nil, err
		}
		return &ast.F64Lit{Value: f}, nil

	case ast.KindLet:
		args, err := tuple(body, 3)
		if err != nil {
			return nil, err
		}
		if args[0].Kind != yaml.ScalarNode {
			return nil, errorAt(args[0], "Let expects a name, got %s", describe(args[0]))
		}
		bound, err := decodeExpr(args[1])
		if err != nil {
			return nil, err
		}
		letBody, err := decodeExpr(args[2])
		if err != nil {
			return nil, err
		}
		return &ast.Let{Name: args[0].Value, Bound: bound, Body: letBody}, nil

	case ast.KindU:
		if body.Kind != yaml.ScalarNode {
			return nil, errorAt(body, "U expects a level, got %s", describe(body))
		}
		if body.Value == maxLevelName {
			return &ast.U{Level: ast.MaxLevel}, nil
		}
		level, err := strconv.ParseUint(body.Value, 10, 64)
		if err != nil {
			return nil, errorAt(body, "invalid universe level %q", body.Value)
		}
		return &ast.U{Level: ast.Level(level)}, nil

	case ast.KindVar:
		if body.Kind != yaml.ScalarNode {
			return nil, errorAt(body, "Var expects a name, got %s", describe(body))
		}
		return &ast.Var{Name: body.Value}, nil

	case ast.KindF64, ast.KindTrivial, ast.KindSole:
		if !isEmpty(body) {
			return nil, errorAt(body, "%s takes no arguments", kind)
		}
		return ast.Skeleton(kind), nil
	}
	return nil, errorAt(body, "unsupported expression kind %s", kind)
}

func tuple(n *yaml.Node, size int) ([]*yaml.Node, error) {
	if n.Kind != yaml.SequenceNode || len(n.Content) != size {
		return nil, errorAt(n, "expected a sequence of %d expressions, got %s", size, describe(n))
	}
	return n.Content, nil
}

func parseFloat(n *yaml.Node) (float64, error) {
	var f float64
	if err := n.Decode(&f); err != nil {
		return 0, errorAt(n, "invalid number %q", n.Value)
	}
	return f, nil
}

func isEmpty(n *yaml.Node) bool {
	switch n.Kind {
	case yaml.ScalarNode:
		return n.ShortTag() == "!!null"
	case yaml.MappingNode, yaml.SequenceNode:
		return len(n.Content) == 0
	}
	return false
}

func describe(n *yaml.Node) string {
	switch n.Kind {
	case yaml.ScalarNode:
		return fmt.Sprintf("scalar %q", n.Value)
	case yaml.SequenceNode:
		return fmt.Sprintf("sequence of %d", len(n.Content))
	case yaml.MappingNode:
		return fmt.Sprintf("map of %d", len(n.Content)/2)
	}
	return "node"
}

// encoder builds the YAML form of an expression. It is the exact inverse
// of decodeExpr.
type encoder struct {
	out *yaml.Node
}

// EncodeNode converts expr to its YAML node.
func EncodeNode(expr ast.Expr) (*yaml.Node, error) {
	if expr == nil {
		return nil, fmt.Errorf("cannot encode a nil expression")
	}
	var enc encoder
	expr.Accept(&enc)
	return enc.out, nil
}

func encodeChild(e ast.Expr) *yaml.Node {
	var sub encoder
	e.Accept(&sub)
	return sub.out
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func form(kind ast.ExprKind, body *yaml.Node) *yaml.Node {
	return &yaml.Node{
		Kind:    yaml.MappingNode,
		Tag:     "!!map",
		Content: []*yaml.Node{scalar("!!str", kind.String()), body},
	}
}

func floatScalar(f float64) *yaml.Node {
	switch {
	case math.IsInf(f, 1):
		return scalar("!!float", ".inf")
	case math.IsInf(f, -1):
		return scalar("!!float", "-.inf")
	case math.IsNaN(f):
		return scalar("!!float", ".nan")
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return scalar("!!int", strconv.FormatFloat(f, 'f', -1, 64))
	}
	return scalar("!!float", strconv.FormatFloat(f, 'g', -1, 64))
}

func (enc *encoder) VisitAdd(a *ast.Add) {
	enc.out = form(ast.KindAdd, &yaml.Node{
		Kind:    yaml.SequenceNode,
		Tag:     "!!seq",
		Style:   yaml.FlowStyle,
		Content: []*yaml.Node{encodeChild(a.Left), encodeChild(a.Right)},
	})
}

func (enc *encoder) VisitCommand(c *ast.Command) {
	enc.out = form(ast.KindCommand, encodeChild(c.Body))
}

func (enc *encoder) VisitF64(*ast.F64)         { enc.out = scalar("!!str", "F64") }
func (enc *encoder) VisitTrivial(*ast.Trivial) { enc.out = scalar("!!str", "Trivial") }
func (enc *encoder) VisitSole(*ast.Sole)       { enc.out = scalar("!!str", "Sole") }

func (enc *encoder) VisitF64Lit(f *ast.F64Lit) {
	enc.out = floatScalar(f.Value)
}

func (enc *encoder) VisitLet(l *ast.Let) {
	enc.out = form(ast.KindLet, &yaml.Node{
		Kind:    yaml.SequenceNode,
		Tag:     "!!seq",
		Content: []*yaml.Node{scalar("!!str", l.Name), encodeChild(l.Bound), encodeChild(l.Body)},
	})
}

func (enc *encoder) VisitU(u *ast.U) {
	level := scalar("!!int", strconv.FormatUint(uint64(u.Level), 10))
	if u.Level == ast.MaxLevel {
		level = scalar("!!str", maxLevelName)
	}
	enc.out = form(ast.KindU, level)
}

func (enc *encoder) VisitVar(x *ast.Var) {
	if _, clash := keywords[x.Name]; clash {
		enc.out = form(ast.KindVar, scalar("!!str", x.Name))
		return
	}
	enc.out = scalar("!!str", x.Name)
}
