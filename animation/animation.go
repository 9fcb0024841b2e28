package animation

import (
	"errors"
	"math"
	"time"

	"github.com/lixenwraith/manege/entity"
)

// ErrInvalidDuration is returned for animations with a non-positive duration
var ErrInvalidDuration = errors.New("animation duration must be positive")

// ErrCollapsedWidth is returned for a Grow whose pulse would reach zero width
var ErrCollapsedWidth = errors.New("grow amplitude collapses entity width")

// Kind selects the property and curve driven by an animation
type Kind uint8

const (
	// Wiggle oscillates position around the baseline
	Wiggle Kind = iota
	// Grow pulses width above the baseline
	Grow
	// Blink fades opacity down to zero and back
	Blink
)

func (k Kind) String() string {
	switch k {
	case Wiggle:
		return "wiggle"
	case Grow:
		return "grow"
	case Blink:
		return "blink"
	}
	return "unknown"
}

// ParseKind maps a config name to a Kind
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "wiggle":
		return Wiggle, true
	case "grow":
		return Grow, true
	case "blink":
		return Blink, true
	}
	return Wiggle, false
}

// Animation is a timed tween on one entity, referenced by id
// Baselines are captured at creation and restored exactly on completion
type Animation struct {
	Entity    entity.ID
	Kind      Kind
	Start     time.Duration
	Duration  time.Duration
	Amplitude float64

	BasePosition float64
	BaseWidth    float64
	BaseOpacity  float64
}

// Progress returns (now-start)/duration capped at 1, negative before start
func (a *Animation) Progress(now time.Duration) float64 {
	return math.Min(1, float64(now-a.Start)/float64(a.Duration))
}

// apply writes the curve value for the given progress into e
func (a *Animation) apply(e *entity.Entity, progress float64) {
	theta := 4 * math.Pi * progress
	switch a.Kind {
	case Wiggle:
		e.Position = a.BasePosition + a.Amplitude*math.Sin(theta)
	case Grow:
		e.Width = a.BaseWidth + a.Amplitude*(1-math.Cos(theta))/2
	case Blink:
		e.Opacity = a.BaseOpacity * (math.Cos(theta) + 1) / 2
	}
}

// restore forces the animated property back to its baseline
func (a *Animation) restore(e *entity.Entity) {
	switch a.Kind {
	case Wiggle:
		e.Position = a.BasePosition
	case Grow:
		e.Width = a.BaseWidth
	case Blink:
		e.Opacity = a.BaseOpacity
	}
}
