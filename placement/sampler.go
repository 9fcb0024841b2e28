package placement

import "github.com/lixenwraith/manege/entity"

// FreeIntervals returns the gaps of the ring [0, size) left after removing every
// entity span widened by spot/2 on each side, in no particular order
func FreeIntervals(entities []*entity.Entity, size, spot float64) []Interval {
	if size <= 0 {
		return nil
	}
	margin := spot / 2
	free := []Interval{{0, size}}
	scratch := make([]Interval, 0, 4)

	for _, e := range entities {
		lo := e.Position - e.Width/2 - margin
		hi := e.Position + e.Width/2 + margin
		for _, part := range Split(lo, hi, size) {
			scratch = Subtract(scratch[:0], free, part)
			free, scratch = scratch, free
		}
	}

	out := free[:0]
	for _, iv := range free {
		if iv.Width() > 0 {
			out = append(out, iv)
		}
	}
	return out
}

// Pick draws a point uniformly over the union of intervals
// Returns 0 when the total width is zero
func Pick(rng RandomSource, free []Interval) float64 {
	total := 0.0
	for _, iv := range free {
		total += iv.Width()
	}
	if total <= 0 {
		return 0
	}

	r := rng.Float64() * total
	upper := 0.0
	for _, iv := range free {
		w := iv.Width()
		if r <= upper+w {
			x := (r - upper) / w
			return (1-x)*iv.Lo + x*iv.Hi
		}
		upper += w
	}
	// Rounding left r past the last bound
	return free[len(free)-1].Lo
}

// Sample picks a random position where an entity of width spot fits without overlap
// Hidden entities still reserve their span
func Sample(rng RandomSource, entities []*entity.Entity, size, spot float64) float64 {
	return Pick(rng, FreeIntervals(entities, size, spot))
}
