package placement

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/lixenwraith/manege/core"
	"github.com/lixenwraith/manege/entity"
)

const eps = 1e-9

func totalWidth(ivs []Interval) float64 {
	w := 0.0
	for _, iv := range ivs {
		w += iv.Width()
	}
	return w
}

func sorted(ivs []Interval) []Interval {
	out := append([]Interval(nil), ivs...)
	sort.Slice(out, func(i, j int) bool { return out[i].Lo < out[j].Lo })
	return out
}

func equalIntervals(t *testing.T, got, want []Interval) {
	t.Helper()
	got = sorted(got)
	if len(got) != len(want) {
		t.Fatalf("Expected %d intervals %v, got %d %v", len(want), want, len(got), got)
	}
	for i := range want {
		if math.Abs(got[i].Lo-want[i].Lo) > eps || math.Abs(got[i].Hi-want[i].Hi) > eps {
			t.Errorf("Interval %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func at(pos, width float64) *entity.Entity {
	e := entity.New(0, core.RGBRed, pos)
	e.Width = width
	return e
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi float64
		want   []Interval
	}{
		{"Inside", 2, 4, []Interval{{2, 4}}},
		{"Crosses zero", -1, 1, []Interval{{0, 1}, {9, 10}}},
		{"Crosses size", 9, 11, []Interval{{0, 1}, {9, 10}}},
		{"Longer than ring", -3, 12, []Interval{{0, 10}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			equalIntervals(t, Split(tt.lo, tt.hi, 10), tt.want)
		})
	}
}

func TestSubtract(t *testing.T) {
	free := []Interval{{0, 4}, {6, 10}}

	tests := []struct {
		name string
		cut  Interval
		want []Interval
	}{
		{"Disjoint", Interval{4.5, 5.5}, []Interval{{0, 4}, {6, 10}}},
		{"Touching edge", Interval{4, 6}, []Interval{{0, 4}, {6, 10}}},
		{"Inside splits", Interval{1, 2}, []Interval{{0, 1}, {2, 4}, {6, 10}}},
		{"Left edge truncates", Interval{5, 7}, []Interval{{0, 4}, {7, 10}}},
		{"Right edge truncates", Interval{3, 5}, []Interval{{0, 3}, {6, 10}}},
		{"Covering removes", Interval{-1, 4.5}, []Interval{{6, 10}}},
		{"Exact cover removes", Interval{6, 10}, []Interval{{0, 4}}},
		{"Spans both", Interval{2, 8}, []Interval{{0, 2}, {8, 10}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			equalIntervals(t, Subtract(nil, free, tt.cut), tt.want)
		})
	}
}

func TestFreeIntervals(t *testing.T) {
	tests := []struct {
		name     string
		entities []*entity.Entity
		spot     float64
		want     []Interval
	}{
		{"Empty strip", nil, 1, []Interval{{0, 10}}},
		{"Single centred", []*entity.Entity{at(5, 2)}, 0, []Interval{{0, 4}, {6, 10}}},
		{"With margin", []*entity.Entity{at(5, 2)}, 2, []Interval{{0, 3}, {7, 10}}},
		{"Across zero", []*entity.Entity{at(0, 2)}, 0, []Interval{{1, 9}}},
		{"Across size", []*entity.Entity{at(9.5, 2)}, 0, []Interval{{0.5, 8.5}}},
		{"Two entities", []*entity.Entity{at(2, 1), at(7, 1)}, 0, []Interval{{0, 1.5}, {2.5, 6.5}, {7.5, 10}}},
		{"Overlapping entities", []*entity.Entity{at(4, 2), at(5, 2)}, 0, []Interval{{0, 3}, {6, 10}}},
		{"Entity covers ring", []*entity.Entity{at(5, 20)}, 0, nil},
		{"Nested cuts remove middle gap", []*entity.Entity{at(3, 2), at(7, 2), at(5, 4)}, 0, []Interval{{0, 2}, {8, 10}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			equalIntervals(t, FreeIntervals(tt.entities, 10, tt.spot), tt.want)
		})
	}
}

func TestFreeIntervalsInvalidSize(t *testing.T) {
	if got := FreeIntervals(nil, 0, 1); got != nil {
		t.Errorf("Expected nil for zero size, got %v", got)
	}
}

func TestSampleNeverInsideOccupied(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	entities := []*entity.Entity{at(5, 2)}

	free := FreeIntervals(entities, 10, 0)
	if w := totalWidth(free); math.Abs(w-8) > eps {
		t.Fatalf("Expected free width 8, got %f", w)
	}

	const n = 10000
	var buckets [10]int
	for i := 0; i < n; i++ {
		p := Sample(rng, entities, 10, 0)
		if p > 4 && p < 6 {
			t.Fatalf("Sample %d returned occupied position %f", i, p)
		}
		if p < 0 || p > 10 {
			t.Fatalf("Sample %d out of domain: %f", i, p)
		}
		cell := int(p)
		if cell == 10 {
			cell = 9
		}
		buckets[cell]++
	}

	// Uniform over 8 free cells: expect n/8 each, allow generous tolerance
	expected := float64(n) / 8
	for cell, hits := range buckets {
		if cell == 4 || cell == 5 {
			// Only the exact boundary value 4.0 can land here
			if hits > 1 {
				t.Errorf("Cell %d: expected no hits, got %d", cell, hits)
			}
			continue
		}
		if math.Abs(float64(hits)-expected) > expected*0.15 {
			t.Errorf("Cell %d: expected about %.0f hits, got %d", cell, expected, hits)
		}
	}
}

func TestSampleFullStripFallsBackToZero(t *testing.T) {
	rng := NewXorShift(7)
	if got := Sample(rng, []*entity.Entity{at(5, 30)}, 10, 1); got != 0 {
		t.Errorf("Expected fallback 0, got %f", got)
	}
}

func TestPickBoundaries(t *testing.T) {
	free := []Interval{{1, 2}, {5, 8}}

	if got := Pick(fixed(0), free); got != 1 {
		t.Errorf("Expected r=0 to map to first low bound, got %f", got)
	}
	// r = 0.5*4 = 2 -> lands in second interval at offset 1
	if got := Pick(fixed(0.5), free); math.Abs(got-6) > eps {
		t.Errorf("Expected 6, got %f", got)
	}
}

type fixed float64

func (f fixed) Float64() float64 { return float64(f) }

func TestXorShift(t *testing.T) {
	r := NewXorShift(0)
	seen := make(map[float64]bool)
	for i := 0; i < 1000; i++ {
		v := r.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("Value out of range: %f", v)
		}
		seen[v] = true
	}
	if len(seen) < 990 {
		t.Errorf("Expected mostly distinct values, got %d unique", len(seen))
	}
}
