package lrucore

import (
	"sync"
	"testing"
)

func TestStore_InsertAndGet(t *testing.T) {
	s := NewStore[string, int]()

	t.Run("insert and get", func(t *testing.T) {
		s.Insert("a", 1, 10)

		val, ok := s.Get("a")
		if !ok {
			t.Fatal("expected key to exist")
		}
		if val != 1 {
			t.Errorf("val = %d, expected 1", val)
		}
		if got := s.WeightedSize(); got != 10 {
			t.Errorf("WeightedSize() = %d, expected 10", got)
		}
	})

	t.Run("get nonexistent", func(t *testing.T) {
		val, ok := s.Get("nonexistent")
		if ok {
			t.Error("expected key to not exist")
		}
		if val != 0 {
			t.Errorf("val = %d, expected zero value", val)
		}
	})

	t.Run("replace adjusts weight by delta", func(t *testing.T) {
		prev, replaced := s.Insert("a", 2, 4)
		if !replaced {
			t.Fatal("expected replacement")
		}
		if prev.Weight != 10 {
			t.Errorf("prev.Weight = %d, expected 10", prev.Weight)
		}
		if got := s.WeightedSize(); got != 4 {
			t.Errorf("WeightedSize() = %d, expected 4", got)
		}
		if got := s.Len(); got != 1 {
			t.Errorf("Len() = %d, expected 1", got)
		}
	})
}

func TestStore_Remove(t *testing.T) {
	s := NewStore[string, int]()
	s.Insert("a", 1, 3)
	s.Insert("b", 2, 5)

	t.Run("remove existing", func(t *testing.T) {
		e, ok := s.Remove("a")
		if !ok {
			t.Fatal("expected removal")
		}
		if e.Key != "a" || e.Value != 1 || e.Weight != 3 {
			t.Errorf("unexpected entry: %+v", e)
		}
		if got := s.WeightedSize(); got != 5 {
			t.Errorf("WeightedSize() = %d, expected 5", got)
		}
	})

	t.Run("remove nonexistent", func(t *testing.T) {
		if _, ok := s.Remove("a"); ok {
			t.Error("expected no removal")
		}
		if got := s.WeightedSize(); got != 5 {
			t.Errorf("WeightedSize() = %d, expected 5", got)
		}
	})
}

func TestStore_EvictionOrder(t *testing.T) {
	s := NewStore[string, int]()
	s.Insert("a", 1, 1)
	s.Insert("b", 2, 1)
	s.Insert("c", 3, 1)

	// Get 把 a 刷新到最新端，淘汰序变为 b, c, a
	if _, ok := s.Get("a"); !ok {
		t.Fatal("expected a to exist")
	}

	var order []string
	for {
		e, ok := s.EvictNext()
		if !ok {
			break
		}
		order = append(order, e.Key)
	}

	want := []string{"b", "c", "a"}
	if len(order) != len(want) {
		t.Fatalf("evicted %d entries, expected %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %s, expected %s", i, order[i], want[i])
		}
	}
	if got := s.WeightedSize(); got != 0 {
		t.Errorf("WeightedSize() = %d, expected 0 after full drain", got)
	}
}

func TestStore_PeekDoesNotTouch(t *testing.T) {
	s := NewStore[string, int]()
	s.Insert("a", 1, 1)
	s.Insert("b", 2, 1)

	if _, ok := s.Peek("a"); !ok {
		t.Fatal("expected a to exist")
	}

	// Peek 不刷新淘汰序：a 仍是最旧者
	e, ok := s.EvictNext()
	if !ok {
		t.Fatal("expected a victim")
	}
	if e.Key != "a" {
		t.Errorf("victim = %s, expected a", e.Key)
	}
}

func TestStore_EvictNextEmpty(t *testing.T) {
	s := NewStore[string, int]()
	if _, ok := s.EvictNext(); ok {
		t.Error("expected no victim from empty store")
	}
}

func TestStore_ZeroWeightEntries(t *testing.T) {
	s := NewStore[string, int]()
	s.Insert("a", 1, 0)
	s.Insert("b", 2, 0)

	if got := s.WeightedSize(); got != 0 {
		t.Errorf("WeightedSize() = %d, expected 0", got)
	}
	if got := s.Len(); got != 2 {
		t.Errorf("Len() = %d, expected 2", got)
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore[int, int]()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				k := base*100 + i
				s.Insert(k, k, 1)
				s.Get(k)
				if i%3 == 0 {
					s.Remove(k)
				}
			}
		}(g)
	}
	wg.Wait()

	// 记账一致性：加权大小等于剩余条目数（每条权重 1）
	if got, want := s.WeightedSize(), uint64(s.Len()); got != want {
		t.Errorf("WeightedSize() = %d, expected %d (Len)", got, want)
	}
}
