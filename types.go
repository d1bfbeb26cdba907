package contexts

import "time"

// Response stores a typed result produced by an evaluator.
type Response[T any] struct {
	Value T
}

// QueryContext carries inputs needed when evaluating an expression against a
// collapsed snapshot of a manager.
type QueryContext struct {
	// Bindings is the collapsed key-value snapshot exposed to expressions.
	Bindings map[string]any
	// Depths records, for each binding, the layer index that supplied its
	// effective value.
	Depths map[string]int
	Now      *time.Time
	Args     map[string]any
	Metadata map[string]any
}

func (ctx QueryContext) withDefaultNow() QueryContext {
	if ctx.Now != nil {
		return ctx
	}
	now := time.Now()
	ctx.Now = &now
	return ctx
}

func (ctx QueryContext) timestamp() time.Time {
	ctx = ctx.withDefaultNow()
	return *ctx.Now
}

func (ctx QueryContext) withDefaultMaps() QueryContext {
	if ctx.Bindings == nil {
		ctx.Bindings = map[string]any{}
	}
	if ctx.Depths == nil {
		ctx.Depths = map[string]int{}
	}
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Metadata == nil {
		ctx.Metadata = map[string]any{}
	}
	return ctx
}

func (ctx QueryContext) depthBinding() map[string]int {
	if ctx.Depths == nil {
		return map[string]int{}
	}
	return ctx.Depths
}

// Evaluator executes expressions against a query context.
type Evaluator interface {
	Evaluate(ctx QueryContext, expr string) (any, error)
	Compile(expr string, opts ...CompileOption) (CompiledRule, error)
}

// CompiledRule represents a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx QueryContext) (any, error)
}

// CompileOption configures evaluator compile behaviour.
type CompileOption interface {
	applyCompileOption(*compileConfig)
}

type compileConfig struct{}

type compileOptionFunc func(*compileConfig)

func (f compileOptionFunc) applyCompileOption(cfg *compileConfig) {
	if f != nil {
		f(cfg)
	}
}

// Option configures a View.
type Option func(*viewConfig)

type viewConfig struct {
	evaluator    Evaluator
	programCache ProgramCache
	functions    *FunctionRegistry
	logger       EvaluatorLogger
}

func applyOptions(opts []Option) viewConfig {
	cfg := viewConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithEvaluator configures an evaluator on the view.
func WithEvaluator(e Evaluator) Option {
	return func(cfg *viewConfig) {
		cfg.evaluator = e
	}
}
