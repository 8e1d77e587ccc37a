package lru

import "testing"

func TestAddGet(t *testing.T) {
	c := New[int](Config[int]{MaxSize: 2})
	c.Add("a", 1)
	c.Add("b", 2)

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("Get(a) = %v, %v; want 1, true", v, ok)
	}
	if v, ok := c.Get("b"); !ok || v != 2 {
		t.Fatalf("Get(b) = %v, %v; want 2, true", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Fatalf("Get(missing) returned ok=true")
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	var evicted []string
	c := New[int](Config[int]{
		MaxSize: 2,
		OnEvict: func(key string, _ int) { evicted = append(evicted, key) },
	})
	c.Add("a", 1)
	c.Add("b", 2)
	c.Get("a") // touch a, making b the least recently used
	c.Add("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Fatalf("expected b to be evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("expected a to survive eviction")
	}
	if len(evicted) != 1 || evicted[0] != "b" {
		t.Fatalf("evicted = %v, want [b]", evicted)
	}
}

func TestAddUpdatesExisting(t *testing.T) {
	c := New[int](Config[int]{MaxSize: 2})
	c.Add("a", 1)
	c.Add("a", 2)

	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}
	if v, _ := c.Get("a"); v != 2 {
		t.Fatalf("Get(a) = %v, want 2", v)
	}
}
