package animation

import (
	"time"

	"github.com/lixenwraith/manege/entity"
)

// Lookup resolves an entity id, ok is false once the entity is gone
type Lookup func(id entity.ID) (*entity.Entity, bool)

// System holds the active animations in creation order
// Two animations driving the same property of one entity both run; the later
// one in the list wins each tick. Callers that need precedence must cancel first.
type System struct {
	active []Animation
}

// NewSystem creates an empty animation system
func NewSystem() *System {
	return &System{
		active: make([]Animation, 0, 8),
	}
}

// Animate schedules an animation on e starting at now+delay
// Baselines are snapshotted from e immediately, not when the delay elapses
func (s *System) Animate(e *entity.Entity, kind Kind, duration time.Duration, amplitude float64, delay, now time.Duration) error {
	if duration <= 0 {
		return ErrInvalidDuration
	}
	// Grow spans [base, base+amplitude], a shrinking pulse must stay above zero
	if kind == Grow && !(e.Width+min(0, amplitude) > 0) {
		return ErrCollapsedWidth
	}
	s.active = append(s.active, Animation{
		Entity:       e.ID,
		Kind:         kind,
		Start:        now + delay,
		Duration:     duration,
		Amplitude:    amplitude,
		BasePosition: e.Position,
		BaseWidth:    e.Width,
		BaseOpacity:  e.Opacity,
	})
	return nil
}

// Advance applies every active animation for time now
// Finished animations restore their baseline and are removed; animations whose
// entity no longer resolves are dropped without effect
func (s *System) Advance(now time.Duration, lookup Lookup) {
	kept := s.active[:0]
	for i := range s.active {
		a := s.active[i]
		e, ok := lookup(a.Entity)
		if !ok {
			continue
		}

		progress := a.Progress(now)
		if progress < 0 {
			kept = append(kept, a)
			continue
		}

		a.apply(e, progress)
		if progress >= 1 {
			a.restore(e)
			continue
		}
		kept = append(kept, a)
	}
	clear(s.active[len(kept):])
	s.active = kept
}

// Cancel drops every animation of the given entity without restoring
// Returns the number of animations removed
func (s *System) Cancel(id entity.ID) int {
	kept := s.active[:0]
	for _, a := range s.active {
		if a.Entity != id {
			kept = append(kept, a)
		}
	}
	n := len(s.active) - len(kept)
	s.active = kept
	return n
}

// Active returns a copy of the running animations
func (s *System) Active() []Animation {
	out := make([]Animation, len(s.active))
	copy(out, s.active)
	return out
}

// Len returns the number of active animations
func (s *System) Len() int {
	return len(s.active)
}

// Reset restores the baseline of every active animation and drops them all
// Restoring runs newest first so overlapping tweens end on the oldest snapshot
func (s *System) Reset(lookup Lookup) {
	for i := len(s.active) - 1; i >= 0; i-- {
		a := s.active[i]
		if e, ok := lookup(a.Entity); ok {
			a.restore(e)
		}
	}
	s.Clear()
}

// Clear drops all animations without restoring baselines
func (s *System) Clear() {
	clear(s.active)
	s.active = s.active[:0]
}
