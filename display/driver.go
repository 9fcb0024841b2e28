package display

import (
	"sync"

	"github.com/lixenwraith/manege/core"
)

// Driver latches a rendered strip onto an output device
// pixels holds one color per cell, index 0 first; the slice is only valid
// for the duration of the call
type Driver interface {
	Show(pixels []core.RGB) error
}

// DriverFunc adapts a function to Driver
type DriverFunc func(pixels []core.RGB) error

func (f DriverFunc) Show(pixels []core.RGB) error {
	return f(pixels)
}

// Recorder keeps the last frame in memory, used headless and in tests
type Recorder struct {
	mu     sync.Mutex
	last   []core.RGB
	frames int
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Show(pixels []core.RGB) error {
	r.mu.Lock()
	r.last = append(r.last[:0], pixels...)
	r.frames++
	r.mu.Unlock()
	return nil
}

// Last returns a copy of the most recent frame
func (r *Recorder) Last() []core.RGB {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]core.RGB(nil), r.last...)
}

// Packed returns the most recent frame as 24-bit 0xRRGGBB values
func (r *Recorder) Packed() []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]uint32, len(r.last))
	for i, c := range r.last {
		out[i] = c.Pack()
	}
	return out
}

// Frames returns how many frames were shown
func (r *Recorder) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}
