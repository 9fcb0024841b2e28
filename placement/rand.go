package placement

// RandomSource yields uniform values in [0,1)
// *math/rand.Rand and *math/rand/v2.Rand satisfy it
type RandomSource interface {
	Float64() float64
}

// XorShift is a small xorshift64 generator, not safe for concurrent use
type XorShift struct {
	state uint64
}

// NewXorShift seeds the generator, zero seed is replaced by 1
func NewXorShift(seed uint64) *XorShift {
	if seed == 0 {
		seed = 1
	}
	return &XorShift{state: seed}
}

// Next returns the next raw 64-bit value
func (r *XorShift) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	r.state = x
	return x
}

// Float64 returns a uniform value in [0,1) from the top 53 bits
func (r *XorShift) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}
