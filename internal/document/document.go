// Package document reads and writes expression documents: YAML files that
// carry an expression, the type it should be checked against, the typing
// context and environment it runs in, and optionally the outcome a test run
// should observe.
//
//	context:
//	  x: F64
//	env:
//	  x: 1
//	type: F64
//	expr: {Add: [x, 2]}
//	expect:
//	  check: ok
//	  value: 3
package document

import (
	"bytes"
	"fmt"
	"os"
	"slices"

	"github.com/funvibe/corecalc/internal/ast"
	"gopkg.in/yaml.v3"
)

// Outcomes a document may declare under expect.check.
const (
	ExpectOK          = "ok"
	ExpectMismatch    = "mismatch"
	ExpectUnbound     = "unbound"
	ExpectCannotInfer = "cannot-infer"
	ExpectEvalError   = "eval-error"
)

// Expectations lists every valid expect.check value.
var Expectations = []string{
	ExpectOK,
	ExpectMismatch,
	ExpectUnbound,
	ExpectCannotInfer,
	ExpectEvalError,
}

// Document is one checkable unit.
type Document struct {
	// Path is where the document was read from; empty for in-memory input.
	Path string `yaml:"-"`

	// Context gives the type of each free variable.
	Context map[ast.Name]Node `yaml:"context,omitempty"`

	// Env gives the value of each free variable. Values are evaluated
	// before use.
	Env map[ast.Name]Node `yaml:"env,omitempty"`

	// Type is the expected type, evaluated before checking.
	Type *Node `yaml:"type"`

	// Expr is the expression under test.
	Expr *Node `yaml:"expr"`

	// Expect is consulted by `corecalc test` only.
	Expect *Expectation `yaml:"expect,omitempty"`
}

// Expectation is the outcome a test run should observe.
type Expectation struct {
	// Check is one of Expectations. Defaults to ok.
	Check string `yaml:"check,omitempty"`

	// Value, when set, is compared against the evaluated expression.
	Value *Node `yaml:"value,omitempty"`
}

// LoadDocument reads and parses a document file.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", path, err)
	}
	return ParseDocument(data, path)
}

// ParseDocument parses document content. The path argument is used only
// for error messages.
func ParseDocument(data []byte, path string) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	doc.Path = path
	if err := doc.validate(); err != nil {
		return nil, err
	}
	doc.setDefaults()
	return &doc, nil
}

func (d *Document) validate() error {
	if d.Expr == nil || d.Expr.Expr == nil {
		return fmt.Errorf("%s: expr is required", d.Path)
	}
	if d.Type == nil || d.Type.Expr == nil {
		return fmt.Errorf("%s: type is required", d.Path)
	}
	if d.Expect != nil && d.Expect.Check != "" && !slices.Contains(Expectations, d.Expect.Check) {
		return fmt.Errorf("%s: expect.check: unknown outcome %q (want one of %v)", d.Path, d.Expect.Check, Expectations)
	}
	return nil
}

func (d *Document) setDefaults() {
	if d.Expect != nil && d.Expect.Check == "" {
		d.Expect.Check = ExpectOK
	}
}

// Marshal renders the document back to YAML.
func (d *Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", d.Path, err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeExpr parses a single YAML expression node.
func DecodeExpr(data []byte) (ast.Expr, error) {
	var n Node
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, err
	}
	if n.Expr == nil {
		return nil, fmt.Errorf("empty expression")
	}
	return n.Expr, nil
}

// EncodeExpr renders expr as YAML. DecodeExpr(EncodeExpr(e)) is
// structurally equal to e.
func EncodeExpr(expr ast.Expr) ([]byte, error) {
	return yaml.Marshal(Node{Expr: expr})
}
