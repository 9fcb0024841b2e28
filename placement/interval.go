package placement

// Interval is a half-open range [Lo, Hi) on the strip
type Interval struct {
	Lo, Hi float64
}

// Width returns Hi-Lo, non-positive for degenerate intervals
func (iv Interval) Width() float64 {
	return iv.Hi - iv.Lo
}

// Contains reports whether x lies in [Lo, Hi)
func (iv Interval) Contains(x float64) bool {
	return x >= iv.Lo && x < iv.Hi
}

// Split maps an occupied span onto the ring [0, size)
// A span crossing 0 or size becomes two parts; a span longer than the ring covers it
func Split(lo, hi, size float64) []Interval {
	switch {
	case hi-lo >= size:
		return []Interval{{0, size}}
	case lo < 0:
		return []Interval{{0, hi}, {lo + size, size}}
	case hi > size:
		return []Interval{{0, hi - size}, {lo, size}}
	default:
		return []Interval{{lo, hi}}
	}
}

// Subtract removes cut from every interval in free, appending results to dst
// Inside cuts split an interval in two, edge cuts truncate, covering cuts remove
func Subtract(dst, free []Interval, cut Interval) []Interval {
	for _, iv := range free {
		if cut.Hi <= iv.Lo || cut.Lo >= iv.Hi {
			dst = append(dst, iv)
			continue
		}
		if cut.Lo > iv.Lo {
			dst = append(dst, Interval{iv.Lo, cut.Lo})
		}
		if cut.Hi < iv.Hi {
			dst = append(dst, Interval{cut.Hi, iv.Hi})
		}
	}
	return dst
}
