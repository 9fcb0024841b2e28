package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// SimClock is the in-simulation clock
// It accumulates real elapsed time only while running; paused time contributes
// zero delta. Real time comes exclusively from the TimeProvider.
type SimClock struct {
	mu sync.RWMutex

	provider TimeProvider

	now        time.Duration // accumulated simulation time
	delta      time.Duration // delta of the last Update
	lastUpdate time.Time     // reference reading for the next delta
	pausedAt   time.Time
	resumedAt  time.Time

	running atomic.Bool
}

// NewSimClock creates a running clock anchored at the provider's current reading
func NewSimClock(provider TimeProvider) *SimClock {
	if provider == nil {
		provider = NewMonotonicTimeProvider()
	}
	t := provider.Now()
	c := &SimClock{
		provider:   provider,
		lastUpdate: t,
		pausedAt:   t,
		resumedAt:  t,
	}
	c.running.Store(true)
	return c
}

// Start resets simulation time to zero and runs
func (c *SimClock) Start() {
	t := c.provider.Now()
	c.mu.Lock()
	c.now = 0
	c.delta = 0
	c.lastUpdate = t
	c.pausedAt = t
	c.resumedAt = t
	c.mu.Unlock()
	c.running.Store(true)
}

// Pause freezes simulation time
func (c *SimClock) Pause() {
	t := c.provider.Now()
	c.mu.Lock()
	c.pausedAt = t
	c.mu.Unlock()
	c.running.Store(false)
}

// Resume restarts time from the current reading
// Resuming a running clock only moves the reference, discarding time since the last update
func (c *SimClock) Resume() {
	t := c.provider.Now()
	c.mu.Lock()
	c.resumedAt = t
	c.lastUpdate = t
	c.mu.Unlock()
	c.running.Store(true)
}

// Update samples the provider and advances simulation time, returns the delta
func (c *SimClock) Update() time.Duration {
	t := c.provider.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	var dt time.Duration
	if c.running.Load() {
		dt = t.Sub(c.lastUpdate)
		if dt < 0 {
			dt = 0
		}
	}
	c.now += dt
	c.delta = dt
	c.lastUpdate = t
	return dt
}

// Now returns accumulated simulation time
func (c *SimClock) Now() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Delta returns the delta computed by the last Update
func (c *SimClock) Delta() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.delta
}

// Running reports whether time is advancing
func (c *SimClock) Running() bool {
	return c.running.Load()
}

// PausedFor returns how long the current pause has lasted, 0 while running
func (c *SimClock) PausedFor() time.Duration {
	if c.running.Load() {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.provider.Now().Sub(c.pausedAt)
}

// LastResume returns the provider reading of the last Start or Resume
func (c *SimClock) LastResume() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resumedAt
}
