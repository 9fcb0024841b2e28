package engine

import (
	"fmt"
	"io"
	"log"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/manege/animation"
	"github.com/lixenwraith/manege/collision"
	"github.com/lixenwraith/manege/core"
	"github.com/lixenwraith/manege/display"
	"github.com/lixenwraith/manege/entity"
	"github.com/lixenwraith/manege/event"
	"github.com/lixenwraith/manege/parameter"
	"github.com/lixenwraith/manege/placement"
	"github.com/lixenwraith/manege/render"
	"github.com/lixenwraith/manege/status"
)

// World owns one simulation: entities, clock, collision state, animations
// World methods do not lock; code running outside the tick goroutine, event
// handlers included, wraps access in RunSafe
type World struct {
	mu sync.Mutex

	cfg Config

	store      *entity.Store
	provider   TimeProvider
	clock      *SimClock
	tracker    *collision.Tracker
	animations *animation.System
	compositor *render.Compositor
	dispatcher *event.Dispatcher
	rng        placement.RandomSource
	logger     *log.Logger

	frame int64

	// Cached metric pointers
	statusReg       *status.Registry
	statTicks       *atomic.Int64
	statEntities    *atomic.Int64
	statPaused      *atomic.Int64
	statActive      *atomic.Int64
	statStarts      *atomic.Int64
	statEnds        *atomic.Int64
	statLong        *atomic.Int64
	statAnimations  *atomic.Int64
	statDropped     *atomic.Int64
	statDelivered   *atomic.Int64
	statClockSecond *status.AtomicFloat
}

// Option customizes a World at construction
type Option func(*World)

// WithTimeProvider replaces the real time source, used by tests
func WithTimeProvider(p TimeProvider) Option {
	return func(w *World) { w.provider = p }
}

// WithRandom sets the random source of the free position sampler
func WithRandom(r placement.RandomSource) Option {
	return func(w *World) { w.rng = r }
}

// WithRegistry publishes metrics into an existing registry
func WithRegistry(r *status.Registry) Option {
	return func(w *World) { w.statusReg = r }
}

// WithDispatcher shares an event dispatcher between worlds or with the caller
func WithDispatcher(d *event.Dispatcher) Option {
	return func(w *World) { w.dispatcher = d }
}

// WithLogger routes lifecycle logging, discarded by default
func WithLogger(l *log.Logger) Option {
	return func(w *World) { w.logger = l }
}

// NewWorld creates a running world with no entities
func NewWorld(cfg Config, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	w := &World{
		cfg:        cfg,
		store:      entity.NewStore(),
		tracker:    collision.NewTracker(),
		animations: animation.NewSystem(),
		compositor: render.NewCompositor(),
	}
	for _, opt := range opts {
		opt(w)
	}

	if w.provider == nil {
		w.provider = NewMonotonicTimeProvider()
	}
	if w.rng == nil {
		w.rng = placement.NewXorShift(uint64(w.provider.Now().UnixNano()))
	}
	if w.dispatcher == nil {
		w.dispatcher = event.NewDispatcher()
	}
	if w.statusReg == nil {
		w.statusReg = status.NewRegistry()
	}
	if w.logger == nil {
		w.logger = log.New(io.Discard, "", 0)
	}

	w.clock = NewSimClock(w.provider)
	w.tracker.SetThreshold(cfg.LongCollision)
	w.applyPredicate()

	w.statTicks = w.statusReg.Ints.Get(status.WorldTicks)
	w.statEntities = w.statusReg.Ints.Get(status.WorldEntities)
	w.statPaused = w.statusReg.Ints.Get(status.WorldPaused)
	w.statActive = w.statusReg.Ints.Get(status.CollisionActive)
	w.statStarts = w.statusReg.Ints.Get(status.CollisionStarts)
	w.statEnds = w.statusReg.Ints.Get(status.CollisionEnds)
	w.statLong = w.statusReg.Ints.Get(status.CollisionLong)
	w.statAnimations = w.statusReg.Ints.Get(status.AnimationActive)
	w.statDropped = w.statusReg.Ints.Get(status.EventsDropped)
	w.statDelivered = w.statusReg.Ints.Get(status.EventsDelivered)
	w.statClockSecond = w.statusReg.Floats.Get(status.ClockSeconds)

	return w, nil
}

// RunSafe executes fn while holding the world lock
func (w *World) RunSafe(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn()
}

// Lock acquires the world lock
func (w *World) Lock() {
	w.mu.Lock()
}

// Unlock releases the world lock
func (w *World) Unlock() {
	w.mu.Unlock()
}

// --- Entities ---

// CreateEntity adds a visible entity of width 1 at position
func (w *World) CreateEntity(color core.RGB, position float64) *entity.Entity {
	e := w.store.Create(color, position)
	w.statEntities.Store(int64(w.store.Len()))
	return e
}

// Entity resolves an id, false once removed
func (w *World) Entity(id entity.ID) (*entity.Entity, bool) {
	return w.store.Get(id)
}

// RemoveEntity deletes e and drops its collision entries without raising
// end events; its animations are discarded on the next tick
// Removing an unknown entity is a no-op
func (w *World) RemoveEntity(e *entity.Entity) bool {
	if e == nil || !w.store.Remove(e.ID) {
		return false
	}
	w.tracker.Forget(e.ID)
	w.statEntities.Store(int64(w.store.Len()))
	return true
}

// Entities returns live entities in creation order
// The slice is owned by the world and valid until the next create or remove
func (w *World) Entities() []*entity.Entity {
	return w.store.All()
}

// --- Lifecycle ---

// Start resets simulation time to zero, forgets every collision and runs
// In-flight animations restore their baselines and are dropped
func (w *World) Start() {
	w.animations.Reset(w.store.Get)
	w.clock.Start()
	w.tracker.Reset()
	w.statPaused.Store(0)
	w.statAnimations.Store(0)
	w.logger.Printf("world: started, %d entities", w.store.Len())
}

// StartPaused is Start followed by Pause
func (w *World) StartPaused() {
	w.Start()
	w.Pause()
}

// Pause freezes simulation time, ticks still reconcile with zero delta
func (w *World) Pause() {
	w.clock.Pause()
	w.statPaused.Store(1)
	w.logger.Printf("world: paused at %.3fs", w.Time())
}

// Resume restarts simulation time, safe to call while running
func (w *World) Resume() {
	w.clock.Resume()
	w.statPaused.Store(0)
	w.logger.Printf("world: resumed at %.3fs", w.Time())
}

// Running reports whether simulation time advances
func (w *World) Running() bool {
	return w.clock.Running()
}

// UpdateClock samples the time source and returns the elapsed simulation seconds
func (w *World) UpdateClock() float64 {
	return w.clock.Update().Seconds()
}

// Time returns seconds of simulation time since Start
func (w *World) Time() float64 {
	return w.clock.Now().Seconds()
}

// DeltaTime returns the seconds elapsed in the last clock update
func (w *World) DeltaTime() float64 {
	return w.clock.Delta().Seconds()
}

// Now returns simulation time since Start
func (w *World) Now() time.Duration {
	return w.clock.Now()
}

// Clock exposes the simulation clock
func (w *World) Clock() *SimClock {
	return w.clock
}

// --- Tick ---

// Tick updates the clock and steps the world by the elapsed delta
func (w *World) Tick() float64 {
	dt := w.UpdateClock()
	w.Update(dt)
	return dt
}

// Update runs one tick with dt seconds: animations, motion, opacity clamp,
// bounds policy, then collision reconciliation against the post-bounds positions
func (w *World) Update(dt float64) {
	now := w.clock.Now()
	w.frame++

	w.animations.Advance(now, w.store.Get)

	size := float64(w.cfg.Size)
	for _, e := range w.store.All() {
		e.UpdateMotion(dt)
		e.ClampOpacity()
		e.Position = applyBounds(e.Position, size, w.cfg.Bounds)
	}

	for _, tr := range w.tracker.Reconcile(w.store.All(), now) {
		ev := event.Event{A: tr.A, B: tr.B, Time: tr.At, Frame: w.frame}
		switch tr.Kind {
		case collision.Start:
			ev.Type = event.EventCollisionStart
			w.statStarts.Add(1)
		case collision.End:
			ev.Type = event.EventCollisionEnd
			w.statEnds.Add(1)
		case collision.Long:
			ev.Type = event.EventLongCollision
			w.statLong.Add(1)
		}
		w.dispatcher.Emit(ev)
	}

	w.statTicks.Add(1)
	w.statActive.Store(int64(w.tracker.Active()))
	w.statAnimations.Store(int64(w.animations.Len()))
	w.statClockSecond.Set(now.Seconds())
	delivered, dropped := w.dispatcher.Stats()
	w.statDelivered.Store(int64(delivered))
	w.statDropped.Store(int64(dropped))
}

// Frame returns the number of ticks run
func (w *World) Frame() int64 {
	return w.frame
}

// applyBounds maps a position onto the strip
// Clip saturates to [0, size-1]; Wrap folds into [0, size)
func applyBounds(p, size float64, mode core.BoundsMode) float64 {
	switch mode {
	case core.Clip:
		return math.Max(0, math.Min(size-1, p))
	default:
		if p >= 0 && p < size {
			return p
		}
		p = math.Mod(p, size)
		if p < 0 {
			p += size
		}
		// -tiny + size rounds up to size
		if p >= size {
			p = 0
		}
		return p
	}
}

// --- Output ---

// Render rasterizes the entities into one color per cell
// The buffer is reused by the next Render
func (w *World) Render() []core.RGB {
	return w.compositor.Render(w.store.All(), w.cfg.Size, w.cfg.Bounds)
}

// Draw renders and hands the frame to a display driver
func (w *World) Draw(d display.Driver) error {
	if err := d.Show(w.Render()); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}

// SetBlendMode selects how partially covered cells mix
func (w *World) SetBlendMode(m render.BlendMode) {
	w.compositor.Mode = m
}

// --- Features ---

// RandomFreePosition picks a uniformly random position whose spot of the
// given width overlaps no entity, 0 when the strip is full
func (w *World) RandomFreePosition(spot float64) float64 {
	if spot <= 0 {
		spot = parameter.DefaultSpotSize
	}
	return placement.Sample(w.rng, w.store.All(), float64(w.cfg.Size), spot)
}

// Animate schedules an animation on e, starting after delay
// Zero duration takes the default, zero amplitude is a no-op tween
func (w *World) Animate(e *entity.Entity, kind animation.Kind, duration time.Duration, amplitude float64, delay time.Duration) error {
	if duration == 0 {
		duration = parameter.DefaultAnimationDuration
	}
	return w.animations.Animate(e, kind, duration, amplitude, delay, w.clock.Now())
}

// CancelAnimations drops the animations of e, leaving its fields as they are
func (w *World) CancelAnimations(e *entity.Entity) int {
	return w.animations.Cancel(e.ID)
}

// Register adds a collision handler
func (w *World) Register(h event.Handler) error {
	return w.dispatcher.Register(h)
}

// Dispatcher exposes the event dispatcher
func (w *World) Dispatcher() *event.Dispatcher {
	return w.dispatcher
}

// Status exposes the metrics registry
func (w *World) Status() *status.Registry {
	return w.statusReg
}

// --- Settings ---

// Size returns the strip length in cells
func (w *World) Size() int {
	return w.cfg.Size
}

// SetSize changes the strip length, positions fold on the next tick
func (w *World) SetSize(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}
	w.cfg.Size = n
	w.applyPredicate()
	w.logger.Printf("world: size set to %d", n)
	return nil
}

// BoundsMode returns the edge policy
func (w *World) BoundsMode() core.BoundsMode {
	return w.cfg.Bounds
}

// SetBoundsMode changes the edge policy
func (w *World) SetBoundsMode(m core.BoundsMode) error {
	if m != core.Clip && m != core.Wrap {
		return fmt.Errorf("%w: %d", ErrInvalidBounds, m)
	}
	w.cfg.Bounds = m
	w.logger.Printf("world: bounds set to %s", m)
	return nil
}

// LongCollisionThreshold returns the overlap duration before a long collision
func (w *World) LongCollisionThreshold() time.Duration {
	return w.cfg.LongCollision
}

// SetLongCollisionThreshold changes the long collision duration
// Pairs already reported stay reported
func (w *World) SetLongCollisionThreshold(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidThreshold, d)
	}
	w.cfg.LongCollision = d
	w.tracker.SetThreshold(d)
	return nil
}

// SetWrapAwareCollisions toggles overlap testing across the seam
func (w *World) SetWrapAwareCollisions(on bool) {
	w.cfg.WrapAwareCollisions = on
	w.applyPredicate()
}

// Config returns the current settings
func (w *World) Config() Config {
	return w.cfg
}

func (w *World) applyPredicate() {
	if w.cfg.WrapAwareCollisions {
		w.tracker.SetPredicate(collision.Ring(float64(w.cfg.Size)))
		return
	}
	w.tracker.SetPredicate(collision.Planar)
}
