package render

import (
	"cmp"
	"math"
	"slices"

	"github.com/lixenwraith/manege/core"
	"github.com/lixenwraith/manege/entity"
)

// Compositor rasterizes entities onto a strip of cells
// Buffers are reused between frames; not safe for concurrent use
type Compositor struct {
	Mode BlendMode

	order  []*entity.Entity
	pixels []core.RGB
}

// NewCompositor creates a compositor using alpha blending
func NewCompositor() *Compositor {
	return &Compositor{Mode: BlendAlpha}
}

// Render paints entities in ascending z-index (ties keep input order) over black
// The returned slice is owned by the compositor and valid until the next call
func (c *Compositor) Render(entities []*entity.Entity, size int, mode core.BoundsMode) []core.RGB {
	if size <= 0 {
		return nil
	}
	if cap(c.pixels) < size {
		c.pixels = make([]core.RGB, size)
	}
	c.pixels = c.pixels[:size]
	for i := range c.pixels {
		c.pixels[i] = core.RGBBlack
	}

	c.order = append(c.order[:0], entities...)
	slices.SortStableFunc(c.order, func(a, b *entity.Entity) int {
		return cmp.Compare(a.ZIndex, b.ZIndex)
	})

	for _, e := range c.order {
		if e.Hidden {
			continue
		}
		c.paint(e, size, mode)
	}
	clear(c.order)
	return c.pixels
}

// paint draws one entity with sub-pixel coverage at its edge cells
func (c *Compositor) paint(e *entity.Entity, size int, mode core.BoundsMode) {
	lo, hi := span(e)
	start := int(math.Floor(lo))
	end := int(math.Floor(hi))

	for i := start; i <= end; i++ {
		j := i
		if i < 0 || i >= size {
			if mode == core.Clip {
				continue
			}
			j = ((i % size) + size) % size
		}

		coverage := math.Min(hi, float64(i+1)) - math.Max(lo, float64(i))
		alpha := e.Opacity * coverage
		if alpha <= 0 {
			continue
		}
		if alpha == 1 {
			c.pixels[j] = e.Color
			continue
		}
		c.pixels[j] = c.Mode.apply(c.pixels[j], e.Color, alpha)
	}
}

// span returns the entity extent in cell space
// Cell centre convention: position p is drawn centred on cell p
func span(e *entity.Entity) (lo, hi float64) {
	x := e.Position + 0.5
	return x - 0.5*e.Width, x + 0.5*e.Width
}

// Coverage returns the fraction of cell i covered by the entity's span
func Coverage(e *entity.Entity, i int) float64 {
	lo, hi := span(e)
	return math.Max(0, math.Min(hi, float64(i+1))-math.Max(lo, float64(i)))
}
