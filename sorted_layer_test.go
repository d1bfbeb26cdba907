package contexts

import "testing"

func TestSortedLayerEntriesAreKeyOrdered(t *testing.T) {
	layer := SortedLayerOf(map[string]int{"delta": 4, "alpha": 1, "charlie": 3})

	entries := layer.Entries()
	want := []string{"alpha", "charlie", "delta"}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, key := range want {
		if entries[i].Key != key {
			t.Fatalf("expected key %q at %d, got %q", key, i, entries[i].Key)
		}
	}
}

func TestSortedLayerPointOperations(t *testing.T) {
	layer := NewSortedLayer[int, string]()

	if _, replaced := layer.Insert(2, "two"); replaced {
		t.Fatalf("first insert must not replace")
	}
	prior, replaced := layer.Insert(2, "deux")
	if !replaced || prior != "two" {
		t.Fatalf("expected prior %q, got %q", "two", prior)
	}
	if !layer.ContainsKey(2) {
		t.Fatalf("expected key 2 present")
	}
	if removed, ok := layer.Remove(2); !ok || removed != "deux" {
		t.Fatalf("expected removed %q, got %q ok=%t", "deux", removed, ok)
	}
	if layer.Len() != 0 {
		t.Fatalf("expected empty layer, got %d", layer.Len())
	}
}

func TestSortedLayerAsManagerLayer(t *testing.T) {
	manager := From([]Layer[string, int]{
		SortedLayerOf(map[string]int{"x": 1}),
		MapLayerOf(map[string]int{"x": 2, "y": 3}),
	})

	if value, _ := manager.Get("x"); value != 1 {
		t.Fatalf("sorted local layer must win, got %d", value)
	}
	fork, ok := manager.Fork()
	if !ok {
		t.Fatalf("fork must succeed")
	}
	fork.Insert("x", 9)
	if value, _ := manager.Get("x"); value != 1 {
		t.Fatalf("fork of a sorted layer must be independent, got %d", value)
	}
}
