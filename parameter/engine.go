package parameter

import "time"

// Strip & World Defaults
const (
	// DefaultStripSize is the number of addressable cells when no config is given
	DefaultStripSize = 30

	// DefaultLongCollision is how long two entities must overlap before a long collision fires
	DefaultLongCollision = 1000 * time.Millisecond

	// DefaultEntityWidth is the footprint of a freshly created entity in cells
	DefaultEntityWidth = 1.0

	// DefaultSpotSize is the free-position sampler margin width
	DefaultSpotSize = 1.0
)

// Scheduler Timing
const (
	// TickInterval is the simulation update interval (~50 Hz)
	TickInterval = 20 * time.Millisecond

	// PausedTickBackoff multiplies the tick interval while the world is paused
	PausedTickBackoff = 2
)

// Collision Set Layout
const (
	// CollisionBuckets is the fixed bucket count of the pair map
	CollisionBuckets = 32

	// CollisionHashFactor spreads adjacent ids across buckets, must be odd
	CollisionHashFactor = 13
)

// Event Queue
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 1024

	// EventBufferMask is the bitmask for fast modulo operations (1024 - 1)
	EventBufferMask = 1023
)

// Animation Defaults
const (
	DefaultAnimationDuration  = 1000 * time.Millisecond
	DefaultAnimationAmplitude = 1.0
)

// Noise generator phases for the three independent channels
const (
	NoisePhaseA = 0
	NoisePhaseB = 3600
	NoisePhaseC = 7200
)
