package status

import (
	"sync"
	"testing"
)

func TestMetricMapStablePointer(t *testing.T) {
	r := NewRegistry()

	p1 := r.Ints.Get(WorldTicks)
	p1.Store(42)
	p2 := r.Ints.Get(WorldTicks)

	if p1 != p2 {
		t.Fatal("Expected the same pointer for repeated Get")
	}
	if p2.Load() != 42 {
		t.Errorf("Expected 42, got %d", p2.Load())
	}
	if r.Ints.Count() != 1 {
		t.Errorf("Expected 1 metric, got %d", r.Ints.Count())
	}
}

func TestMetricMapConcurrentGet(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()
	var wg sync.WaitGroup
	ptrs := make([]*AtomicFloat, 16)

	for i := range ptrs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ptrs[i] = m.Get("clock.seconds")
		}(i)
	}
	wg.Wait()

	for i := range ptrs {
		if ptrs[i] != ptrs[0] {
			t.Fatalf("Goroutine %d got a different pointer", i)
		}
	}
}

func TestSummary(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get(WorldTicks).Store(3)
	r.Ints.Get(CollisionActive).Store(1)
	r.Floats.Get(ClockSeconds).Set(1.5)

	want := "collision.active=1 world.ticks=3 clock.seconds=1.50"
	if got := r.Summary(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
