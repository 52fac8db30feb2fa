// Package corecalc embeds the calculus in Go programs.
//
// Expressions and types cross the boundary as YAML expression nodes (see
// internal/document), so hosts need no access to the syntax tree:
//
//	s := corecalc.New()
//	s.Bind("x", 1.5)
//	v, err := s.Run(`{Add: [x, 2]}`, `F64`) // v == 3.5
package corecalc

import (
	"fmt"
	"log"
	"reflect"

	"github.com/funvibe/corecalc/internal/analyzer"
	"github.com/funvibe/corecalc/internal/ast"
	"github.com/funvibe/corecalc/internal/document"
	"github.com/funvibe/corecalc/internal/evaluator"
	"github.com/funvibe/corecalc/internal/typesystem"
)

// Session holds the bindings visible to the expressions it checks and
// evaluates. Bind extends the session in place; all other methods only
// read it. A Session is not safe for concurrent Bind calls.
type Session struct {
	marshaller *Marshaller
	checker    *analyzer.Checker
	evaluator  *evaluator.Evaluator
	ctx        *typesystem.Context
	env        *evaluator.Env
}

// New creates an empty session.
func New() *Session {
	return &Session{
		marshaller: NewMarshaller(),
		checker:    analyzer.New(),
		evaluator:  evaluator.New(),
	}
}

// SetTrace routes checker and evaluator tracing to logger; nil disables it.
func (s *Session) SetTrace(logger *log.Logger) {
	if logger == nil {
		s.checker = analyzer.New()
		s.evaluator = evaluator.New()
		return
	}
	s.checker = analyzer.NewWithTrace(logger)
	s.evaluator = &evaluator.Evaluator{Trace: logger}
}

// Bind makes a Go value visible under name. Numbers are bound at type F64,
// struct{} at type Trivial.
func (s *Session) Bind(name string, value interface{}) error {
	v, t, err := s.marshaller.ToValue(value)
	if err != nil {
		return fmt.Errorf("binding %s: %w", name, err)
	}
	s.ctx = s.ctx.Extend(name, t)
	s.env = s.env.Extend(name, v)
	return nil
}

// BindExpr binds name to the value of exprSrc, which must check against
// typeSrc.
func (s *Session) BindExpr(name, exprSrc, typeSrc string) error {
	expr, t, err := s.prepare(exprSrc, typeSrc)
	if err != nil {
		return fmt.Errorf("binding %s: %w", name, err)
	}
	if err := s.checker.Check(expr, t, s.ctx, s.env); err != nil {
		return fmt.Errorf("binding %s: %w", name, err)
	}
	v, err := s.evaluator.Eval(expr, s.env)
	if err != nil {
		return fmt.Errorf("binding %s: %w", name, err)
	}
	s.ctx = s.ctx.Extend(name, t)
	s.env = s.env.Extend(name, v)
	return nil
}

// Check reports whether exprSrc checks against typeSrc.
func (s *Session) Check(exprSrc, typeSrc string) error {
	expr, t, err := s.prepare(exprSrc, typeSrc)
	if err != nil {
		return err
	}
	return s.checker.Check(expr, t, s.ctx, s.env)
}

// Infer returns the printed type of exprSrc.
func (s *Session) Infer(exprSrc string) (string, error) {
	expr, err := document.DecodeExpr([]byte(exprSrc))
	if err != nil {
		return "", err
	}
	t, err := s.checker.Infer(expr, s.ctx, s.env)
	if err != nil {
		return "", err
	}
	return t.String(), nil
}

// Eval evaluates exprSrc without checking it and converts the result to Go.
func (s *Session) Eval(exprSrc string) (interface{}, error) {
	expr, err := document.DecodeExpr([]byte(exprSrc))
	if err != nil {
		return nil, err
	}
	v, err := s.evaluator.Eval(expr, s.env)
	if err != nil {
		return nil, err
	}
	return s.marshaller.FromValue(v, nil)
}

// Run checks exprSrc against typeSrc and, if it checks, evaluates it.
func (s *Session) Run(exprSrc, typeSrc string) (interface{}, error) {
	return s.RunAs(exprSrc, typeSrc, nil)
}

// RunAs is Run with the result converted to target.
func (s *Session) RunAs(exprSrc, typeSrc string, target reflect.Type) (interface{}, error) {
	expr, t, err := s.prepare(exprSrc, typeSrc)
	if err != nil {
		return nil, err
	}
	if err := s.checker.Check(expr, t, s.ctx, s.env); err != nil {
		return nil, err
	}
	v, err := s.evaluator.Eval(expr, s.env)
	if err != nil {
		return nil, err
	}
	return s.marshaller.FromValue(v, target)
}

// Kinds lists, by name, the expression kinds legal at typeSrc.
func (s *Session) Kinds(typeSrc string) ([]string, error) {
	t, err := s.evalType(typeSrc)
	if err != nil {
		return nil, err
	}
	kinds := typesystem.GetKinds(t)
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return names, nil
}

// Skeleton returns the YAML placeholder expression for the named kind.
func Skeleton(kind string) (string, error) {
	k, err := ast.ParseExprKind(kind)
	if err != nil {
		return "", err
	}
	out, err := document.EncodeExpr(ast.Skeleton(k))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Print renders exprSrc in the calculus' own notation.
func Print(exprSrc string) (string, error) {
	expr, err := document.DecodeExpr([]byte(exprSrc))
	if err != nil {
		return "", err
	}
	return expr.String(), nil
}

func (s *Session) prepare(exprSrc, typeSrc string) (ast.Expr, typesystem.Type, error) {
	expr, err := document.DecodeExpr([]byte(exprSrc))
	if err != nil {
		return nil, nil, fmt.Errorf("expression: %w", err)
	}
	t, err := s.evalType(typeSrc)
	if err != nil {
		return nil, nil, err
	}
	return expr, t, nil
}

func (s *Session) evalType(typeSrc string) (typesystem.Type, error) {
	texpr, err := document.DecodeExpr([]byte(typeSrc))
	if err != nil {
		return nil, fmt.Errorf("type: %w", err)
	}
	t, err := s.evaluator.Eval(texpr, s.env)
	if err != nil {
		return nil, fmt.Errorf("type: %w", err)
	}
	return t, nil
}
