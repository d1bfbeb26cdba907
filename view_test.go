package contexts

import (
	"errors"
	"sync"
	"testing"
)

type mapProgramCache struct {
	mu       sync.Mutex
	programs map[string]any
}

func newMapProgramCache() *mapProgramCache {
	return &mapProgramCache{programs: map[string]any{}}
}

func (c *mapProgramCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.programs[key]
	return value, ok
}

func (c *mapProgramCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.programs[key] = value
}

var viewEvaluatorFactories = []struct {
	name string
	new  func(cache ProgramCache, registry *FunctionRegistry) Evaluator
}{
	{
		name: "expr",
		new: func(cache ProgramCache, registry *FunctionRegistry) Evaluator {
			opts := []ExprEvaluatorOption{}
			if cache != nil {
				opts = append(opts, ExprWithProgramCache(cache))
			}
			if registry != nil {
				opts = append(opts, ExprWithFunctionRegistry(registry))
			}
			return NewExprEvaluator(opts...)
		},
	},
	{
		name: "cel",
		new: func(cache ProgramCache, registry *FunctionRegistry) Evaluator {
			opts := []CELEvaluatorOption{}
			if cache != nil {
				opts = append(opts, CELWithProgramCache(cache))
			}
			if registry != nil {
				opts = append(opts, CELWithFunctionRegistry(registry))
			}
			return NewCELEvaluator(opts...)
		},
	},
	{
		name: "js",
		new: func(cache ProgramCache, registry *FunctionRegistry) Evaluator {
			opts := []JSEvaluatorOption{}
			if cache != nil {
				opts = append(opts, JSWithProgramCache(cache))
			}
			if registry != nil {
				opts = append(opts, JSWithFunctionRegistry(registry))
			}
			return NewJSEvaluator(opts...)
		},
	},
}

func queryableManager() *Manager[string, any] {
	return From([]Layer[string, any]{
		MapLayerOf(map[string]any{"red": 63}),
		MapLayerOf(map[string]any{"red": 255, "green": 128}),
	})
}

func TestNewViewCollapsesBindingsWithDepths(t *testing.T) {
	view := NewView(queryableManager())

	if view.Len() != 2 {
		t.Fatalf("expected two bindings, got %d", view.Len())
	}
	bindings := view.Bindings()
	if bindings["red"] != 63 || bindings["green"] != 128 {
		t.Fatalf("unexpected bindings: %v", bindings)
	}
	if depth, ok := view.DepthOf("red"); !ok || depth != 0 {
		t.Fatalf("expected red supplied by depth 0, got %d ok=%t", depth, ok)
	}
	if depth, ok := view.DepthOf("green"); !ok || depth != 1 {
		t.Fatalf("expected green supplied by depth 1, got %d ok=%t", depth, ok)
	}
	if _, ok := view.DepthOf("blue"); ok {
		t.Fatalf("missing key must report absent depth")
	}
}

func TestViewIsDisconnectedFromManager(t *testing.T) {
	manager := queryableManager()
	view := NewView(manager)

	manager.Insert("red", 1)
	if view.Bindings()["red"] != 63 {
		t.Fatalf("view must be a one-shot snapshot")
	}
}

func TestViewEvaluateAcrossEngines(t *testing.T) {
	for _, factory := range viewEvaluatorFactories {
		factory := factory
		t.Run(factory.name, func(t *testing.T) {
			if factory.name == "js" && !jsEvaluatorAvailable() {
				t.Skipf("js evaluator requires the js_eval build tag")
			}
			evaluator := factory.new(nil, nil)
			if evaluator == nil {
				t.Skipf("%s evaluator unavailable in this build", factory.name)
			}

			view := NewView(queryableManager(), WithEvaluator(evaluator))
			resp, err := view.Evaluate("red == 63 && green == 128")
			if err != nil {
				t.Fatalf("evaluate: %v", err)
			}
			if resp.Value != true {
				t.Fatalf("expected true, got %v", resp.Value)
			}
		})
	}
}

func TestViewEvaluateDefaultsToExpr(t *testing.T) {
	view := NewView(queryableManager())

	resp, err := view.Evaluate("red + green")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if resp.Value != 191 {
		t.Fatalf("expected 191, got %v", resp.Value)
	}
}

func TestViewEvaluateExposesDepths(t *testing.T) {
	view := NewView(queryableManager())

	resp, err := view.Evaluate(`depths["green"]`)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if resp.Value != 1 {
		t.Fatalf("expected green depth 1, got %v", resp.Value)
	}
}

func TestViewEvaluateRejectsEmptyExpression(t *testing.T) {
	view := NewView(queryableManager())
	if _, err := view.Evaluate(""); err == nil {
		t.Fatalf("expected error for empty expression")
	}
}

func TestViewEvaluateWithCustomArgs(t *testing.T) {
	view := NewView(queryableManager())

	resp, err := view.EvaluateWith(QueryContext{
		Bindings: map[string]any{"red": 1},
		Args:     map[string]any{"limit": 10},
	}, `red + args["limit"]`)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if resp.Value != 11 {
		t.Fatalf("expected 11, got %v", resp.Value)
	}
}

func TestViewCustomFunctions(t *testing.T) {
	view := NewView(queryableManager(),
		WithCustomFunction("double", func(args ...any) (any, error) {
			if len(args) != 1 {
				return nil, errors.New("double expects one argument")
			}
			value, ok := args[0].(int)
			if !ok {
				return nil, errors.New("double expects an int")
			}
			return value * 2, nil
		}),
	)

	resp, err := view.Evaluate("double(red)")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if resp.Value != 126 {
		t.Fatalf("expected 126, got %v", resp.Value)
	}
}

func TestViewProgramCacheReuse(t *testing.T) {
	cache := newMapProgramCache()
	view := NewView(queryableManager(), WithProgramCache(cache))

	if _, err := view.Evaluate("red > 0"); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if _, ok := cache.Get("red > 0"); !ok {
		t.Fatalf("expected compiled program to be cached")
	}
	if _, err := view.Evaluate("red > 0"); err != nil {
		t.Fatalf("evaluate from cache: %v", err)
	}
}

func TestViewEvaluatorLoggerObservesAttempts(t *testing.T) {
	var events []EvaluatorLogEvent
	view := NewView(queryableManager(), WithEvaluatorLogger(
		EvaluatorLoggerFunc(func(event EvaluatorLogEvent) {
			events = append(events, event)
		}),
	))

	if _, err := view.Evaluate("red"); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if _, err := view.Evaluate("red +"); err == nil {
		t.Fatalf("expected syntax error")
	}

	if len(events) != 2 {
		t.Fatalf("expected two logged attempts, got %d", len(events))
	}
	if events[0].Engine != "expr" || events[0].Err != nil {
		t.Fatalf("unexpected first event: %+v", events[0])
	}
	if events[1].Err == nil {
		t.Fatalf("second event must carry the evaluation error")
	}
}

func TestCompiledRulesReuseAcrossContexts(t *testing.T) {
	evaluator := NewExprEvaluator()
	rule, err := evaluator.Compile("red * 2")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	for _, red := range []int{1, 2, 3} {
		value, err := rule.Evaluate(QueryContext{Bindings: map[string]any{"red": red}})
		if err != nil {
			t.Fatalf("evaluate: %v", err)
		}
		if value != red*2 {
			t.Fatalf("expected %d, got %v", red*2, value)
		}
	}
}
