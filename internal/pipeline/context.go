package pipeline

import (
	"log"

	"github.com/funvibe/corecalc/internal/config"
	"github.com/funvibe/corecalc/internal/document"
	"github.com/funvibe/corecalc/internal/evaluator"
	"github.com/funvibe/corecalc/internal/typesystem"
)

// PipelineContext carries a document through the processing stages.
type PipelineContext struct {
	// Inputs.
	Source     []byte
	FilePath   string
	IsTestMode bool
	Config     *config.Config
	Trace      *log.Logger

	// Filled in by the stages.
	Document *document.Document
	Context  *typesystem.Context
	Env      *evaluator.Env
	Expected typesystem.Type

	// CheckErr is the checker's verdict; nil means the expression checks.
	CheckErr error
	Checked  bool

	// Value and EvalErr are set only when the expression checked.
	Value   typesystem.Value
	EvalErr error

	// Errors collects failures that prevent a verdict: unreadable input,
	// bad bindings, or unmet expectations in test mode.
	Errors []error
}

func NewPipelineContext(source []byte) *PipelineContext {
	return &PipelineContext{Source: source, Config: config.Default()}
}

func (ctx *PipelineContext) addError(err error) {
	ctx.Errors = append(ctx.Errors, err)
}

// Failed reports whether the document was unusable or, in test mode, did
// not meet its expectation.
func (ctx *PipelineContext) Failed() bool {
	return len(ctx.Errors) > 0
}
