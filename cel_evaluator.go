package contexts

import (
	"fmt"

	celgo "github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// CELEvaluatorOption configures the CEL evaluator.
type CELEvaluatorOption func(*celEvaluator)

// CELWithProgramCache wires a ProgramCache into the CEL evaluator.
func CELWithProgramCache(cache ProgramCache) CELEvaluatorOption {
	return func(e *celEvaluator) {
		e.cache = cache
	}
}

// CELWithFunctionRegistry wires a FunctionRegistry into the CEL evaluator.
func CELWithFunctionRegistry(registry *FunctionRegistry) CELEvaluatorOption {
	return func(e *celEvaluator) {
		if registry == nil {
			return
		}
		e.registry = registry.Clone()
	}
}

type celProgram struct {
	env     *celgo.Env
	program celgo.Program
}

type celEvaluator struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// NewCELEvaluator constructs an Evaluator backed by cel-go.
func NewCELEvaluator(opts ...CELEvaluatorOption) Evaluator {
	e := &celEvaluator{}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

func (e *celEvaluator) Evaluate(ctx QueryContext, expression string) (any, error) {
	if expression == "" {
		return nil, fmt.Errorf("expression must not be empty")
	}
	ctx = ctx.withDefaultNow().withDefaultMaps()
	program, err := e.loadOrCompile(expression, ctx.Bindings)
	if err != nil {
		return nil, err
	}
	out, _, err := program.program.Eval(e.activation(ctx))
	if err != nil {
		return nil, err
	}
	return out.Value(), nil
}

func (e *celEvaluator) Compile(expression string, _ ...CompileOption) (CompiledRule, error) {
	if expression == "" {
		return nil, fmt.Errorf("expression must not be empty")
	}
	return &celCompiledRule{
		evaluator:  e,
		expression: expression,
	}, nil
}

func (e *celEvaluator) loadOrCompile(expression string, bindings map[string]any) (*celProgram, error) {
	if bindings == nil {
		bindings = map[string]any{}
	}
	if e.cache != nil {
		if cached, ok := e.cache.Get(expression); ok {
			if program, ok := cached.(*celProgram); ok {
				return program, nil
			}
		}
	}

	env, err := e.buildEnv(bindings)
	if err != nil {
		return nil, err
	}
	ast, issues := env.Parse(expression)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	checked, issues := env.Check(ast)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	prg, err := env.Program(checked)
	if err != nil {
		return nil, err
	}

	bundle := &celProgram{
		env:     env,
		program: prg,
	}
	if e.cache != nil {
		e.cache.Set(expression, bundle)
	}
	return bundle, nil
}

func (e *celEvaluator) buildEnv(bindings map[string]any) (*celgo.Env, error) {
	opts := []celgo.EnvOption{
		celgo.Variable("now", celgo.TimestampType),
		celgo.Variable("args", celgo.DynType),
		celgo.Variable("metadata", celgo.DynType),
		celgo.Variable("depths", celgo.DynType),
	}
	if e.registry != nil {
		binding := e.callBinding()
		opts = append(opts, celgo.Function("call", celgo.Overload(
			"call_dyn",
			[]*celgo.Type{celgo.StringType},
			celgo.DynType,
			celgo.FunctionBinding(func(values ...ref.Val) ref.Val {
				return binding(values)
			}),
		)))
	}
	for key := range bindings {
		opts = append(opts, celgo.Variable(key, celgo.DynType))
	}
	return celgo.NewEnv(opts...)
}

func (e *celEvaluator) activation(ctx QueryContext) map[string]any {
	activation := map[string]any{
		"now":      ctx.timestamp(),
		"args":     ctx.Args,
		"metadata": ctx.Metadata,
		"depths":   ctx.depthBinding(),
	}
	for key, value := range ctx.Bindings {
		activation[key] = value
	}
	if e.registry != nil {
		activation["call"] = func(name string, arguments ...any) (any, error) {
			return e.registry.Call(name, arguments...)
		}
	}
	return activation
}

type celCompiledRule struct {
	evaluator  *celEvaluator
	expression string
}

func (r *celCompiledRule) Evaluate(ctx QueryContext) (any, error) {
	if r.evaluator == nil {
		return nil, fmt.Errorf("cel compiled rule missing evaluator")
	}
	ctx = ctx.withDefaultNow().withDefaultMaps()
	program, err := r.evaluator.loadOrCompile(r.expression, ctx.Bindings)
	if err != nil {
		return nil, err
	}
	out, _, err := program.program.Eval(r.evaluator.activation(ctx))
	if err != nil {
		return nil, err
	}
	return out.Value(), nil
}

func (e *celEvaluator) callBinding() func([]ref.Val) ref.Val {
	return func(values []ref.Val) ref.Val {
		if e.registry == nil {
			return types.NewErr("contexts: function registry not configured")
		}
		if len(values) == 0 {
			return types.NewErr("contexts: call requires function name")
		}
		name, ok := values[0].Value().(string)
		if !ok {
			return types.NewErr("contexts: call name must be string")
		}
		args := make([]any, 0, len(values)-1)
		for _, val := range values[1:] {
			args = append(args, val.Value())
		}
		result, err := e.registry.Call(name, args...)
		if err != nil {
			return types.NewErr("%s", err.Error())
		}
		if result == nil {
			return types.NullValue
		}
		return types.DefaultTypeAdapter.NativeToValue(result)
	}
}
