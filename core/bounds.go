package core

import "fmt"

// BoundsMode is the policy applied to positions leaving [0, size)
type BoundsMode uint8

const (
	// Clip clamps positions to [0, size-1] and drops out-of-range pixels
	Clip BoundsMode = iota
	// Wrap treats the strip as a ring
	Wrap
)

func (m BoundsMode) String() string {
	switch m {
	case Clip:
		return "clip"
	case Wrap:
		return "wrap"
	default:
		return fmt.Sprintf("BoundsMode(%d)", uint8(m))
	}
}

// ParseBoundsMode maps a config string to a mode
func ParseBoundsMode(s string) (BoundsMode, error) {
	switch s {
	case "clip", "Clip", "CLIP":
		return Clip, nil
	case "wrap", "Wrap", "WRAP", "":
		return Wrap, nil
	}
	return Wrap, fmt.Errorf("unknown bounds mode %q", s)
}
