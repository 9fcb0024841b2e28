package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/manege/core"
	"github.com/lixenwraith/manege/parameter"
)

var (
	ErrInvalidSize      = errors.New("strip size must be positive")
	ErrInvalidThreshold = errors.New("long collision threshold must not be negative")
	ErrInvalidBounds    = errors.New("unknown bounds mode")
)

// Config holds the world tunables that may change at runtime
type Config struct {
	Size          int             // cells on the strip
	Bounds        core.BoundsMode // edge policy
	LongCollision time.Duration   // overlap duration before a long collision fires

	// WrapAwareCollisions tests overlaps on the ring instead of the line,
	// so entities straddling the seam collide
	WrapAwareCollisions bool
}

// DefaultConfig returns a 30 cell wrapping strip with a 1s long collision
func DefaultConfig() Config {
	return Config{
		Size:          parameter.DefaultStripSize,
		Bounds:        core.Wrap,
		LongCollision: parameter.DefaultLongCollision,
	}
}

// Validate checks the config for values the world cannot run with
func (c Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSize, c.Size)
	}
	if c.LongCollision < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidThreshold, c.LongCollision)
	}
	if c.Bounds != core.Clip && c.Bounds != core.Wrap {
		return fmt.Errorf("%w: %d", ErrInvalidBounds, c.Bounds)
	}
	return nil
}
