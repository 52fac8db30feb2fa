package pipeline

import (
	"errors"
	"fmt"
	"sort"

	"github.com/funvibe/corecalc/internal/analyzer"
	"github.com/funvibe/corecalc/internal/ast"
	"github.com/funvibe/corecalc/internal/document"
	"github.com/funvibe/corecalc/internal/evaluator"
	"github.com/funvibe/corecalc/internal/typesystem"
)

// DecodeProcessor parses Source into a Document unless one is already set.
type DecodeProcessor struct{}

func (p *DecodeProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Document != nil {
		return ctx
	}
	doc, err := document.ParseDocument(ctx.Source, ctx.FilePath)
	if err != nil {
		ctx.addError(err)
		return ctx
	}
	ctx.Document = doc
	return ctx
}

// ScopeProcessor builds the typing context and environment from the
// configured prelude and the document's own bindings, then evaluates the
// expected type.
type ScopeProcessor struct{}

func (p *ScopeProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Document == nil || ctx.Failed() {
		return ctx
	}
	ev := newEvaluator(ctx)
	chk := newChecker(ctx)

	var tcx *typesystem.Context
	var env *evaluator.Env

	if ctx.Config != nil {
		for _, name := range ctx.Config.PreludeNames() {
			b := ctx.Config.Prelude[name]
			t, err := ev.Eval(b.Type.Expr, env)
			if err != nil {
				ctx.addError(fmt.Errorf("prelude %s: type: %w", name, err))
				return ctx
			}
			if err := chk.Check(b.Value.Expr, t, tcx, env); err != nil {
				ctx.addError(fmt.Errorf("prelude %s: %w", name, err))
				return ctx
			}
			v, err := ev.Eval(b.Value.Expr, env)
			if err != nil {
				ctx.addError(fmt.Errorf("prelude %s: value: %w", name, err))
				return ctx
			}
			tcx = tcx.Extend(name, t)
			env = env.Extend(name, v)
		}
	}

	// Document bindings see the prelude but not each other.
	preludeEnv := env
	doc := ctx.Document
	for _, name := range sortedNames(doc.Context) {
		t, err := ev.Eval(doc.Context[name].Expr, preludeEnv)
		if err != nil {
			ctx.addError(fmt.Errorf("%s: context.%s: %w", doc.Path, name, err))
			return ctx
		}
		tcx = tcx.Extend(name, t)
	}
	for _, name := range sortedNames(doc.Env) {
		v, err := ev.Eval(doc.Env[name].Expr, preludeEnv)
		if err != nil {
			ctx.addError(fmt.Errorf("%s: env.%s: %w", doc.Path, name, err))
			return ctx
		}
		env = env.Extend(name, v)
	}

	expected, err := ev.Eval(doc.Type.Expr, env)
	if err != nil {
		ctx.addError(fmt.Errorf("%s: type: %w", doc.Path, err))
		return ctx
	}

	ctx.Context = tcx
	ctx.Env = env
	ctx.Expected = expected
	return ctx
}

// CheckProcessor runs the type checker on the document's expression.
type CheckProcessor struct{}

func (p *CheckProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Expected == nil || ctx.Failed() {
		return ctx
	}
	ctx.CheckErr = newChecker(ctx).Check(ctx.Document.Expr.Expr, ctx.Expected, ctx.Context, ctx.Env)
	ctx.Checked = true
	return ctx
}

// EvalProcessor evaluates expressions that passed the checker.
type EvalProcessor struct{}

func (p *EvalProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if !ctx.Checked || ctx.CheckErr != nil || ctx.Failed() {
		return ctx
	}
	ctx.Value, ctx.EvalErr = newEvaluator(ctx).Eval(ctx.Document.Expr.Expr, ctx.Env)
	return ctx
}

// ExpectProcessor compares the observed outcome with the document's
// expect block; a document without one is expected to check. It only acts
// in test mode.
type ExpectProcessor struct{}

func (p *ExpectProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if !ctx.IsTestMode || !ctx.Checked || ctx.Failed() {
		return ctx
	}
	doc := ctx.Document
	expect := doc.Expect
	if expect == nil {
		expect = &document.Expectation{Check: document.ExpectOK}
	}

	got := Outcome(ctx)
	if got != expect.Check {
		detail := ""
		if err := ctx.Err(); err != nil {
			detail = ": " + err.Error()
		}
		ctx.addError(fmt.Errorf("%s: expected %s, got %s%s", doc.Path, expect.Check, got, detail))
		return ctx
	}

	if expect.Value != nil && got == document.ExpectOK {
		want, err := newEvaluator(ctx).Eval(expect.Value.Expr, ctx.Env)
		if err != nil {
			ctx.addError(fmt.Errorf("%s: expect.value: %w", doc.Path, err))
			return ctx
		}
		if !typesystem.Equal(ctx.Value, want) {
			ctx.addError(fmt.Errorf("%s: expected value %s, got %s", doc.Path, want, ctx.Value))
		}
	}
	return ctx
}

// Err returns the checker's or, failing that, the evaluator's error.
func (ctx *PipelineContext) Err() error {
	if ctx.CheckErr != nil {
		return ctx.CheckErr
	}
	return ctx.EvalErr
}

// Outcome names the result of checking and evaluating the document using
// the expect.check vocabulary.
func Outcome(ctx *PipelineContext) string {
	return Classify(ctx.Err())
}

// Classify maps an error from Check or Eval to its expect.check name.
func Classify(err error) string {
	var (
		mismatch    *typesystem.MismatchError
		unbound     *typesystem.UnboundVariableError
		cannotInfer *typesystem.CannotInferError
		evalType    *evaluator.TypeMismatchError
		evalUnbound *evaluator.UnboundVariableError
	)
	switch {
	case err == nil:
		return document.ExpectOK
	case errors.As(err, &mismatch):
		return document.ExpectMismatch
	case errors.As(err, &unbound):
		return document.ExpectUnbound
	case errors.As(err, &cannotInfer):
		return document.ExpectCannotInfer
	case errors.As(err, &evalType), errors.As(err, &evalUnbound):
		return document.ExpectEvalError
	}
	return "error"
}

func newEvaluator(ctx *PipelineContext) *evaluator.Evaluator {
	return &evaluator.Evaluator{Trace: ctx.Trace}
}

func newChecker(ctx *PipelineContext) *analyzer.Checker {
	if ctx.Trace != nil {
		return analyzer.NewWithTrace(ctx.Trace)
	}
	return analyzer.New()
}

func sortedNames(m map[ast.Name]document.Node) []ast.Name {
	names := make([]ast.Name, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
