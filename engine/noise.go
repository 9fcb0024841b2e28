package engine

import (
	"math"

	"github.com/lixenwraith/manege/parameter"
)

// noise is a smooth pseudo-random signal of simulation time in [min, max]
// Two incommensurate sines keep the pattern from repeating visibly
func noise(t, phase, min, max, freq float64) float64 {
	x := freq*t + phase
	y := math.Sin(0.2*x) + math.Sin(0.314159*x)
	return (y+2)/4*(max-min) + min
}

// NoiseA samples the first noise channel at the current simulation time
func (w *World) NoiseA(min, max, freq float64) float64 {
	return noise(w.Time(), parameter.NoisePhaseA, min, max, freq)
}

// NoiseB is NoiseA shifted far enough to look unrelated
func (w *World) NoiseB(min, max, freq float64) float64 {
	return noise(w.Time(), parameter.NoisePhaseB, min, max, freq)
}

// NoiseC is the third independent channel
func (w *World) NoiseC(min, max, freq float64) float64 {
	return noise(w.Time(), parameter.NoisePhaseC, min, max, freq)
}
