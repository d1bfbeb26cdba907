package contexts

import (
	"errors"
	"fmt"
	"time"
)

var ErrNoEvaluator = errors.New("contexts: evaluator not configured")

// Evaluate executes expr against the view's bindings using the configured
// evaluator and wraps the result.
func (v *View[V]) Evaluate(expr string) (Response[any], error) {
	return v.EvaluateWith(QueryContext{}, expr)
}

// EvaluateWith executes expr using ctx, falling back to the view's bindings
// when ctx.Bindings is nil.
func (v *View[V]) EvaluateWith(ctx QueryContext, expr string) (Response[any], error) {
	if expr == "" {
		return Response[any]{}, fmt.Errorf("expression must not be empty")
	}
	evaluator, err := v.resolveEvaluator()
	if err != nil {
		return Response[any]{}, err
	}
	if ctx.Bindings == nil {
		ctx.Bindings = v.bindings
		ctx.Depths = v.depths
	}
	ctx = ctx.withDefaultNow().withDefaultMaps()
	engine := evaluatorEngineName(evaluator)
	start := time.Now()
	value, evalErr := evaluator.Evaluate(ctx, expr)
	duration := time.Since(start)
	evalErr = wrapEvaluationError(engine, expr, evalErr)
	v.evaluatorLogger().LogEvaluation(EvaluatorLogEvent{
		Engine:   engine,
		Expr:     expr,
		Bindings: len(ctx.Bindings),
		Duration: duration,
		Err:      evalErr,
	})
	if evalErr != nil {
		return Response[any]{}, evalErr
	}
	return Response[any]{Value: value}, nil
}

func (v *View[V]) resolveEvaluator() (Evaluator, error) {
	if v.cfg.evaluator != nil {
		return v.cfg.evaluator, nil
	}
	var exprOpts []ExprEvaluatorOption
	if cache := v.cfg.programCache; cache != nil {
		exprOpts = append(exprOpts, ExprWithProgramCache(cache))
	}
	if registry := v.cfg.functions; registry != nil {
		exprOpts = append(exprOpts, ExprWithFunctionRegistry(registry))
	}
	defaultEvaluator := NewExprEvaluator(exprOpts...)
	if defaultEvaluator == nil {
		return nil, ErrNoEvaluator
	}
	v.cfg.evaluator = defaultEvaluator
	return defaultEvaluator, nil
}

func evaluatorEngineName(e Evaluator) string {
	if e == nil {
		return "unknown"
	}
	switch fmt.Sprintf("%T", e) {
	case "*contexts.exprEvaluator":
		return "expr"
	case "*contexts.celEvaluator":
		return "cel"
	case "*contexts.jsEvaluator":
		return "js"
	default:
		return "custom"
	}
}
