package render

import "github.com/lixenwraith/manege/core"

// BlendMode selects how a partially covering entity combines with the cell below
type BlendMode uint8

const (
	// BlendAlpha is linear interpolation: (1-α)*bg + α*fg
	BlendAlpha BlendMode = iota
	// BlendAdd accumulates light, saturating at 255
	BlendAdd
	// BlendMax keeps the brighter channel
	BlendMax
)

// clamp rounds to nearest and saturates into a channel value
func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v + 0.5)
}

// Blend linearly interpolates bg toward fg by alpha, channels rounded
// alpha >= 1 returns fg, alpha <= 0 returns bg
func Blend(bg, fg core.RGB, alpha float64) core.RGB {
	if alpha >= 1.0 {
		return fg
	}
	if alpha <= 0.0 {
		return bg
	}

	inv := 1.0 - alpha
	return core.RGB{
		R: clamp(inv*float64(bg.R) + alpha*float64(fg.R)),
		G: clamp(inv*float64(bg.G) + alpha*float64(fg.G)),
		B: clamp(inv*float64(bg.B) + alpha*float64(fg.B)),
	}
}

// Add performs additive blend of fg scaled by alpha
func Add(bg, fg core.RGB, alpha float64) core.RGB {
	if alpha <= 0.0 {
		return bg
	}
	if alpha > 1.0 {
		alpha = 1.0
	}
	return core.RGB{
		R: clamp(float64(bg.R) + alpha*float64(fg.R)),
		G: clamp(float64(bg.G) + alpha*float64(fg.G)),
		B: clamp(float64(bg.B) + alpha*float64(fg.B)),
	}
}

// Max returns per-channel maximum, faded in by alpha
func Max(bg, fg core.RGB, alpha float64) core.RGB {
	if alpha <= 0.0 {
		return bg
	}
	maxed := core.RGB{
		R: max(bg.R, fg.R),
		G: max(bg.G, fg.G),
		B: max(bg.B, fg.B),
	}
	return Blend(bg, maxed, alpha)
}

// apply dispatches on mode
func (m BlendMode) apply(bg, fg core.RGB, alpha float64) core.RGB {
	switch m {
	case BlendAdd:
		return Add(bg, fg, alpha)
	case BlendMax:
		return Max(bg, fg, alpha)
	default:
		return Blend(bg, fg, alpha)
	}
}

var blendNames = map[string]BlendMode{
	"alpha": BlendAlpha,
	"add":   BlendAdd,
	"max":   BlendMax,
}

func (m BlendMode) String() string {
	for name, mode := range blendNames {
		if mode == m {
			return name
		}
	}
	return "unknown"
}

// ParseBlendMode maps a config name to a mode, empty selects alpha
func ParseBlendMode(s string) (BlendMode, bool) {
	if s == "" {
		return BlendAlpha, true
	}
	m, ok := blendNames[s]
	return m, ok
}
