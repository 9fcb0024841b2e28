package entity

import (
	"math"

	"github.com/lixenwraith/manege/core"
	"github.com/lixenwraith/manege/parameter"
)

// ID identifies an entity for its whole lifetime, ids are never reused
type ID uint64

// Entity is a colored interval moving along the strip
// Position is the interval centre, Width its footprint in cells
type Entity struct {
	ID           ID
	Color        core.RGB
	Position     float64 // cells
	Speed        float64 // cells/sec
	Acceleration float64 // cells/sec²
	Width        float64 // cells, always > 0
	Opacity      float64 // [0,1]
	ZIndex       int     // higher paints over lower
	Hidden       bool    // excluded from collisions and rendering
}

// New creates an entity with default motion and appearance
func New(id ID, color core.RGB, position float64) *Entity {
	return &Entity{
		ID:       id,
		Color:    color,
		Position: position,
		Width:    parameter.DefaultEntityWidth,
		Opacity:  1,
	}
}

// UpdateMotion performs explicit Euler integration: v = v + a*dt; p = p + v*dt
// No clamping here, bounds are applied by the world once all entities moved
func (e *Entity) UpdateMotion(dt float64) {
	e.Speed += e.Acceleration * dt
	e.Position += e.Speed * dt
}

// SetWidth updates the footprint, non-positive widths are rejected
func (e *Entity) SetWidth(w float64) bool {
	if !(w > 0) {
		return false
	}
	e.Width = w
	return true
}

// ClampOpacity forces opacity back into [0,1]
func (e *Entity) ClampOpacity() {
	e.Opacity = math.Max(0, math.Min(1, e.Opacity))
}

// Start returns the low edge of the occupied span
func (e *Entity) Start() float64 {
	return e.Position - 0.5*e.Width
}

// End returns the high edge of the occupied span
func (e *Entity) End() float64 {
	return e.Position + 0.5*e.Width
}

// CollidesWith reports whether the two spans touch on a straight line
// Not wrap aware: entities adjacent across the seam of a ring do not collide
func (e *Entity) CollidesWith(other *Entity) bool {
	if e.Hidden || other.Hidden {
		return false
	}
	if e.Position < other.Position {
		return e.Position+0.5*e.Width >= other.Position-0.5*other.Width
	}
	return e.Position-0.5*e.Width <= other.Position+0.5*other.Width
}

// CollidesWrapped is the ring variant of CollidesWith for a strip of the given size
func (e *Entity) CollidesWrapped(other *Entity, size float64) bool {
	if e.Hidden || other.Hidden {
		return false
	}
	d := math.Abs(e.Position - other.Position)
	if size > 0 {
		d = math.Mod(d, size)
		d = math.Min(d, size-d)
	}
	return d <= 0.5*(e.Width+other.Width)
}
