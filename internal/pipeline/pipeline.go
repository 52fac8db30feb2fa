package pipeline

// Processor is one stage of document processing.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Default is the full decode, scope, check, evaluate sequence, followed by
// expectation matching when the context is in test mode.
func Default() *Pipeline {
	return New(
		&DecodeProcessor{},
		&ScopeProcessor{},
		&CheckProcessor{},
		&EvalProcessor{},
		&ExpectProcessor{},
	)
}

// Run executes the pipeline.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		// Every stage runs; each one decides for itself whether the
		// results of earlier stages are usable.
	}
	return ctx
}
