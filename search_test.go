package contexts

import (
	"strings"
	"testing"
)

func layeredManager() *Manager[string, int] {
	return From([]Layer[string, int]{
		MapLayerOf(map[string]int{"red": 63}),
		MapLayerOf(map[string]int{}),
		MapLayerOf(map[string]int{"red": 255, "green": 128}),
	})
}

func TestGetReturnsMostLocalMatch(t *testing.T) {
	manager := layeredManager()

	if value, ok := manager.Get("red"); !ok || value != 63 {
		t.Fatalf("expected red=63 from the local layer, got %d ok=%t", value, ok)
	}
	if value, ok := manager.Get("green"); !ok || value != 128 {
		t.Fatalf("expected green=128 to fall through, got %d ok=%t", value, ok)
	}
	if _, ok := manager.Get("blue"); ok {
		t.Fatalf("missing key must report absent")
	}
}

func TestGetFromSkipsMoreLocalLayers(t *testing.T) {
	manager := layeredManager()

	if value, ok := manager.GetFrom(1, "red"); !ok || value != 255 {
		t.Fatalf("expected red=255 from depth 1, got %d ok=%t", value, ok)
	}
	if _, ok := manager.GetFrom(3, "red"); ok {
		t.Fatalf("start index past the last layer must report absent")
	}
	if value, ok := manager.GetFrom(-2, "red"); !ok || value != 63 {
		t.Fatalf("negative start index clamps to local, got %d ok=%t", value, ok)
	}
}

func TestGetLocalOnlyScansIndexZero(t *testing.T) {
	manager := layeredManager()

	if value, ok := manager.GetLocal("red"); !ok || value != 63 {
		t.Fatalf("expected local red=63, got %d ok=%t", value, ok)
	}
	if _, ok := manager.GetLocal("green"); ok {
		t.Fatalf("green lives at depth 2 and must not be locally visible")
	}
	if _, ok := New[string, int]().GetLocal("red"); ok {
		t.Fatalf("zero-layer manager must report absent locally")
	}
}

func TestGetAllReturnsShadowedValues(t *testing.T) {
	manager := layeredManager()

	all := manager.GetAll("red")
	if len(all) != 2 || all[0] != 63 || all[1] != 255 {
		t.Fatalf("expected [63 255] most-local first, got %v", all)
	}
	if got := manager.GetAll("blue"); got != nil {
		t.Fatalf("expected nil for missing key, got %v", got)
	}
}

func TestGetRefMutatesInPlaceWithoutPromotion(t *testing.T) {
	manager := From([]Layer[string, int]{
		MapLayerOf(map[string]int{}),
		MapLayerOf(map[string]int{"red": 255}),
	})

	ref, ok := manager.GetRef("red")
	if !ok {
		t.Fatalf("expected a handle for red")
	}
	*ref = 192

	if _, ok := manager.GetLocal("red"); ok {
		t.Fatalf("mutation must not move the value to the local layer")
	}
	if value, _ := manager.GetFrom(1, "red"); value != 192 {
		t.Fatalf("expected in-place update at depth 1, got %d", value)
	}
}

func TestGetRefFromAndLocalRef(t *testing.T) {
	manager := layeredManager()

	if _, ok := manager.GetRefFrom(3, "red"); ok {
		t.Fatalf("out-of-range start index must report absent")
	}
	ref, ok := manager.GetRefFrom(1, "red")
	if !ok {
		t.Fatalf("expected handle from depth 1")
	}
	*ref = 7
	if value, _ := manager.GetFrom(1, "red"); value != 7 {
		t.Fatalf("expected depth-1 red=7, got %d", value)
	}

	local, ok := manager.GetLocalRef("red")
	if !ok {
		t.Fatalf("expected local handle")
	}
	*local = 70
	if value, _ := manager.GetLocal("red"); value != 70 {
		t.Fatalf("expected local red=70, got %d", value)
	}
	if _, ok := New[string, int]().GetLocalRef("red"); ok {
		t.Fatalf("zero-layer manager must report absent handle")
	}
}

func TestContainsKeyFamily(t *testing.T) {
	manager := layeredManager()

	if !manager.ContainsKey("green") {
		t.Fatalf("green exists at depth 2")
	}
	if manager.ContainsKeyFrom(3, "green") {
		t.Fatalf("start index past the sequence must be absent")
	}
	if !manager.ContainsKeyFrom(1, "red") {
		t.Fatalf("red exists at depth 2")
	}
	if manager.ContainsLocalKey("green") {
		t.Fatalf("green is not local")
	}
	if !manager.ContainsLocalKey("red") {
		t.Fatalf("red is local")
	}
	if New[string, int]().ContainsLocalKey("red") {
		t.Fatalf("zero-layer manager contains nothing")
	}
}

func TestMustGetPanicsOnMissingKey(t *testing.T) {
	manager := layeredManager()

	if value := manager.MustGet("red"); value != 63 {
		t.Fatalf("expected red=63, got %d", value)
	}

	defer func() {
		recovered := recover()
		if recovered == nil {
			t.Fatalf("expected MustGet to panic for a missing key")
		}
		message, ok := recovered.(string)
		if !ok || !strings.Contains(message, "blue") {
			t.Fatalf("panic message should name the key, got %v", recovered)
		}
	}()
	manager.MustGet("blue")
}
