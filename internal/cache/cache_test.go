package cache

import "testing"

func TestGetSet(t *testing.T) {
	c := New[string, int](0)
	if _, ok := c.Get("a"); ok {
		t.Fatal("Get on empty cache returned ok")
	}
	c.Set("a", 1)
	c.Set("a", 2)
	if v, ok := c.Get("a"); !ok || v != 2 {
		t.Errorf("Get(a) = %d, %v; want 2, true", v, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	s := c.Stats()
	if s.Hits != 1 || s.Misses != 1 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int, int](2)
	c.Set(1, 1)
	c.Set(2, 2)
	c.Get(1)
	c.Set(3, 3)

	if _, ok := c.Get(2); ok {
		t.Error("key 2 should have been evicted")
	}
	for _, k := range []int{1, 3} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("key %d missing", k)
		}
	}
	if c.Stats().Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", c.Stats().Evictions)
	}
}

func TestGetOrCreate(t *testing.T) {
	c := New[string, int](4)
	calls := 0
	create := func() int { calls++; return 7 }

	for i := 0; i < 3; i++ {
		if v := c.GetOrCreate("k", create); v != 7 {
			t.Errorf("GetOrCreate = %d", v)
		}
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}
}

func TestDeleteFunc(t *testing.T) {
	type key struct {
		program uint32
		name    string
	}
	c := New[key, int32](0)
	c.Set(key{1, "a"}, 0)
	c.Set(key{1, "b"}, 1)
	c.Set(key{2, "a"}, 0)

	if n := c.DeleteFunc(func(k key) bool { return k.program == 1 }); n != 2 {
		t.Errorf("DeleteFunc removed %d, want 2", n)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	c.Delete(key{2, "a"})
	c.Delete(key{9, "z"})
	if c.Len() != 0 {
		t.Errorf("Len() = %d after Delete", c.Len())
	}

	c.Set(key{3, "x"}, 5)
	c.Clear()
	if _, ok := c.Get(key{3, "x"}); ok {
		t.Error("Clear() left entries")
	}
}
