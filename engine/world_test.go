package engine

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/manege/animation"
	"github.com/lixenwraith/manege/core"
	"github.com/lixenwraith/manege/display"
	"github.com/lixenwraith/manege/entity"
	"github.com/lixenwraith/manege/event"
	"github.com/lixenwraith/manege/placement"
	"github.com/lixenwraith/manege/status"
)

const eps = 1e-9

func newTestWorld(t *testing.T, cfg Config) (*World, *MockTimeProvider) {
	t.Helper()
	mock := NewMockTimeProvider(epoch)
	w, err := NewWorld(cfg, WithTimeProvider(mock), WithRandom(placement.NewXorShift(42)))
	if err != nil {
		t.Fatalf("NewWorld failed: %v", err)
	}
	w.Start()
	return w, mock
}

// counter records collision notifications by kind
type counter struct {
	starts, ends, long int
	last               [2]entity.ID
}

func (c *counter) handler() event.Handler {
	return event.HandlerFuncs{
		Start: func(a, b *entity.Entity) { c.starts++; c.last = [2]entity.ID{a.ID, b.ID} },
		End:   func(a, b *entity.Entity) { c.ends++ },
		Long:  func(a, b *entity.Entity) { c.long++ },
	}
}

func TestNewWorldValidates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Size = 0
	if _, err := NewWorld(cfg); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Expected ErrInvalidSize, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.LongCollision = -time.Second
	if _, err := NewWorld(cfg); !errors.Is(err, ErrInvalidThreshold) {
		t.Errorf("Expected ErrInvalidThreshold, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Bounds = core.BoundsMode(9)
	if _, err := NewWorld(cfg); !errors.Is(err, ErrInvalidBounds) {
		t.Errorf("Expected ErrInvalidBounds, got %v", err)
	}
}

func TestWrapAcrossEnd(t *testing.T) {
	w, _ := newTestWorld(t, DefaultConfig())

	e := w.CreateEntity(core.RGBRed, 29.9)
	e.Speed = 1
	w.Update(0.2)

	if math.Abs(e.Position-0.1) > eps {
		t.Errorf("Expected position 0.1 after crossing the end, got %v", e.Position)
	}
}

func TestWrapBounds(t *testing.T) {
	tests := []struct {
		name  string
		pos   float64
		speed float64
		dt    float64
		want  float64
	}{
		{"inside", 5, 1, 0.5, 5.5},
		{"below zero", 0.1, -1, 0.2, 29.9},
		{"several laps", 1, 100, 1, 11},
		{"several laps back", 1, -100, 1, 21},
		{"exactly size", 29, 1, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := newTestWorld(t, DefaultConfig())
			e := w.CreateEntity(core.RGBRed, tt.pos)
			e.Speed = tt.speed
			w.Update(tt.dt)
			if math.Abs(e.Position-tt.want) > 1e-6 {
				t.Errorf("Expected %v, got %v", tt.want, e.Position)
			}
			if e.Position < 0 || e.Position >= 30 {
				t.Errorf("Expected position in [0,30), got %v", e.Position)
			}
		})
	}
}

func TestClipBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bounds = core.Clip
	w, _ := newTestWorld(t, cfg)

	hi := w.CreateEntity(core.RGBRed, 29.5)
	hi.Speed = 10
	lo := w.CreateEntity(core.RGBBlue, 0.5)
	lo.Speed = -10
	w.Update(1)

	if hi.Position != 29 {
		t.Errorf("Expected clamp to 29, got %v", hi.Position)
	}
	if lo.Position != 0 {
		t.Errorf("Expected clamp to 0, got %v", lo.Position)
	}
	// Speed is left untouched by the bounds policy
	if hi.Speed != 10 {
		t.Errorf("Expected speed kept, got %v", hi.Speed)
	}
}

func TestOpacityClamped(t *testing.T) {
	w, _ := newTestWorld(t, DefaultConfig())
	e := w.CreateEntity(core.RGBRed, 3)
	e.Opacity = 1.7
	w.Update(0)
	if e.Opacity != 1 {
		t.Errorf("Expected opacity clamped to 1, got %v", e.Opacity)
	}
}

func TestCollisionEpisode(t *testing.T) {
	w, mock := newTestWorld(t, DefaultConfig())
	c := &counter{}
	if err := w.Register(c.handler()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	a := w.CreateEntity(core.RGBGreen, 0)
	b := w.CreateEntity(core.RGBRed, 5)

	step := func(d time.Duration) {
		mock.Advance(d)
		w.Tick()
		w.Dispatcher().Drain()
	}

	step(100 * time.Millisecond)
	if c.starts != 0 {
		t.Fatalf("Expected no collision while apart, got %d starts", c.starts)
	}

	b.Position = 0.5
	step(100 * time.Millisecond)
	if c.starts != 1 {
		t.Fatalf("Expected 1 start, got %d", c.starts)
	}
	if c.last != [2]entity.ID{a.ID, b.ID} {
		t.Errorf("Expected lower id first, got %v", c.last)
	}

	step(600 * time.Millisecond)
	if c.long != 0 {
		t.Errorf("Expected no long collision before the threshold, got %d", c.long)
	}

	step(400 * time.Millisecond)
	step(500 * time.Millisecond)
	step(500 * time.Millisecond)
	if c.long != 1 {
		t.Errorf("Expected exactly 1 long collision, got %d", c.long)
	}

	b.Position = 5
	step(100 * time.Millisecond)
	step(100 * time.Millisecond)
	if c.starts != 1 || c.ends != 1 {
		t.Errorf("Expected 1 start and 1 end, got %d and %d", c.starts, c.ends)
	}

	ints := w.Status().Ints
	if ints.Get(status.CollisionStarts).Load() != 1 || ints.Get(status.CollisionLong).Load() != 1 {
		t.Errorf("Expected metrics to count the episode, got %s", w.Status().Summary())
	}
}

func TestStartForgetsCollisions(t *testing.T) {
	w, mock := newTestWorld(t, DefaultConfig())
	c := &counter{}
	w.Register(c.handler())

	w.CreateEntity(core.RGBGreen, 3)
	w.CreateEntity(core.RGBRed, 3.5)

	mock.Advance(10 * time.Millisecond)
	w.Tick()
	w.Start()
	w.Tick()
	w.Dispatcher().Drain()

	if c.starts != 2 {
		t.Errorf("Expected a fresh start after Start, got %d starts", c.starts)
	}
	if c.ends != 0 {
		t.Errorf("Expected no end events from Start, got %d", c.ends)
	}
	if w.Time() != 0 {
		t.Errorf("Expected time reset, got %v", w.Time())
	}
}

func TestPausedWorldHoldsStill(t *testing.T) {
	w, mock := newTestWorld(t, DefaultConfig())
	e := w.CreateEntity(core.RGBRed, 10)
	e.Speed = 5

	w.Pause()
	mock.Advance(time.Second)
	if dt := w.Tick(); dt != 0 {
		t.Errorf("Expected zero delta while paused, got %v", dt)
	}
	if e.Position != 10 {
		t.Errorf("Expected no motion while paused, got %v", e.Position)
	}

	w.Resume()
	w.Resume()
	mock.Advance(200 * time.Millisecond)
	w.Tick()
	if math.Abs(e.Position-11) > eps {
		t.Errorf("Expected 1 cell of motion after resume, got %v", e.Position)
	}
	if math.Abs(w.DeltaTime()-0.2) > eps {
		t.Errorf("Expected delta 0.2s, got %v", w.DeltaTime())
	}
	if math.Abs(w.Time()-0.2) > eps {
		t.Errorf("Expected 0.2s of simulation time, got %v", w.Time())
	}
}

func TestStartPaused(t *testing.T) {
	w, mock := newTestWorld(t, DefaultConfig())
	w.StartPaused()
	mock.Advance(time.Second)
	w.Tick()
	if w.Running() || w.Time() != 0 {
		t.Errorf("Expected paused world at 0s, got running=%v time=%v", w.Running(), w.Time())
	}
	if w.Status().Ints.Get(status.WorldPaused).Load() != 1 {
		t.Error("Expected paused metric set")
	}
}

func TestRemoveEntityMidFlight(t *testing.T) {
	w, mock := newTestWorld(t, DefaultConfig())
	c := &counter{}
	w.Register(c.handler())

	a := w.CreateEntity(core.RGBGreen, 4)
	b := w.CreateEntity(core.RGBRed, 4.5)
	if err := w.Animate(b, animation.Blink, time.Second, 1, 0); err != nil {
		t.Fatalf("Animate failed: %v", err)
	}

	mock.Advance(100 * time.Millisecond)
	w.Tick()
	w.Dispatcher().Drain()
	if c.starts != 1 {
		t.Fatalf("Expected start before removal, got %d", c.starts)
	}

	if !w.RemoveEntity(b) {
		t.Fatal("Expected removal to succeed")
	}
	if w.RemoveEntity(b) {
		t.Error("Expected second removal to be a no-op")
	}

	mock.Advance(100 * time.Millisecond)
	w.Tick()
	w.Dispatcher().Drain()

	if c.ends != 0 {
		t.Errorf("Expected no end event for a removed entity, got %d", c.ends)
	}
	ints := w.Status().Ints
	if n := ints.Get(status.CollisionActive).Load(); n != 0 {
		t.Errorf("Expected no active collisions, got %d", n)
	}
	if n := ints.Get(status.AnimationActive).Load(); n != 0 {
		t.Errorf("Expected orphaned animation dropped, got %d", n)
	}
	if _, ok := w.Entity(b.ID); ok {
		t.Error("Expected removed id to miss")
	}
	if got, ok := w.Entity(a.ID); !ok || got != a {
		t.Error("Expected surviving entity to resolve")
	}
}

func TestAnimateDefaults(t *testing.T) {
	w, mock := newTestWorld(t, DefaultConfig())
	e := w.CreateEntity(core.RGBRed, 10)

	if err := w.Animate(e, animation.Grow, 0, 1, 0); err != nil {
		t.Fatalf("Animate failed: %v", err)
	}

	mock.Advance(250 * time.Millisecond)
	w.Tick()
	if math.Abs(e.Width-2) > eps {
		t.Errorf("Expected width 2 at the grow peak, got %v", e.Width)
	}

	mock.Advance(750 * time.Millisecond)
	w.Tick()
	if e.Width != 1 {
		t.Errorf("Expected width restored to 1, got %v", e.Width)
	}

	// Zero amplitude is honored, not replaced by the default
	if err := w.Animate(e, animation.Wiggle, 0, 0, 0); err != nil {
		t.Fatalf("Animate failed: %v", err)
	}
	mock.Advance(125 * time.Millisecond)
	w.Tick()
	if e.Position != 10 {
		t.Errorf("Expected zero amplitude wiggle to hold position 10, got %v", e.Position)
	}

	if err := w.Animate(e, animation.Grow, time.Second, -1, 0); !errors.Is(err, animation.ErrCollapsedWidth) {
		t.Errorf("Expected ErrCollapsedWidth, got %v", err)
	}

	if err := w.Animate(e, animation.Blink, -time.Second, 1, 0); !errors.Is(err, animation.ErrInvalidDuration) {
		t.Errorf("Expected ErrInvalidDuration, got %v", err)
	}
}

func TestStartRestoresAnimations(t *testing.T) {
	w, mock := newTestWorld(t, DefaultConfig())

	mock.Advance(5 * time.Second)
	w.Tick()
	e := w.CreateEntity(core.RGBRed, 5)
	if err := w.Animate(e, animation.Wiggle, time.Second, 2, 0); err != nil {
		t.Fatalf("Animate failed: %v", err)
	}

	mock.Advance(125 * time.Millisecond)
	w.Tick()
	if math.Abs(e.Position-7) > eps {
		t.Fatalf("Expected wiggle peak 7, got %v", e.Position)
	}

	w.Start()
	if e.Position != 5 {
		t.Errorf("Expected baseline 5 right after Start, got %v", e.Position)
	}
	for i := 0; i < 10; i++ {
		mock.Advance(100 * time.Millisecond)
		w.Tick()
	}
	if e.Position != 5 {
		t.Errorf("Expected position 5 after restart, got %v", e.Position)
	}
	if n := w.animations.Len(); n != 0 {
		t.Errorf("Expected no active animations after Start, got %d", n)
	}

	if err := w.Animate(e, animation.Grow, time.Second, 1, 0); err != nil {
		t.Fatalf("Animate failed: %v", err)
	}
	mock.Advance(250 * time.Millisecond)
	w.Tick()
	if math.Abs(e.Width-2) > eps {
		t.Fatalf("Expected grow peak 2, got %v", e.Width)
	}
	w.StartPaused()
	if e.Width != 1 || w.animations.Len() != 0 {
		t.Errorf("Expected StartPaused to restore width 1 and clear, got %v with %d active", e.Width, w.animations.Len())
	}
}

func TestDrawToRecorder(t *testing.T) {
	w, _ := newTestWorld(t, DefaultConfig())
	w.CreateEntity(core.RGBRed, 2)

	rec := display.NewRecorder()
	if err := w.Draw(rec); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	frame := rec.Last()
	if len(frame) != 30 {
		t.Fatalf("Expected 30 pixels, got %d", len(frame))
	}
	for i, c := range frame {
		want := core.RGBBlack
		if i == 2 {
			want = core.RGBRed
		}
		if c != want {
			t.Errorf("Pixel %d: expected %v, got %v", i, want, c)
		}
	}
}

func TestDrawError(t *testing.T) {
	w, _ := newTestWorld(t, DefaultConfig())
	boom := errors.New("boom")
	err := w.Draw(display.DriverFunc(func([]core.RGB) error { return boom }))
	if !errors.Is(err, boom) {
		t.Errorf("Expected wrapped driver error, got %v", err)
	}
}

func TestRandomFreePosition(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Size = 10
	w, _ := newTestWorld(t, cfg)
	w.CreateEntity(core.RGBRed, 5)

	for i := 0; i < 1000; i++ {
		p := w.RandomFreePosition(1)
		if p < 0 || p >= 10 {
			t.Fatalf("Expected position in [0,10), got %v", p)
		}
		if p > 4 && p < 6 {
			t.Fatalf("Expected position outside (4,6), got %v", p)
		}
	}
}

func TestSettings(t *testing.T) {
	w, _ := newTestWorld(t, DefaultConfig())

	if err := w.SetSize(0); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Expected ErrInvalidSize, got %v", err)
	}
	if w.Size() != 30 {
		t.Errorf("Expected size kept at 30, got %d", w.Size())
	}
	if err := w.SetSize(12); err != nil || w.Size() != 12 {
		t.Errorf("Expected size 12, got %d (%v)", w.Size(), err)
	}
	if err := w.SetLongCollisionThreshold(-1); !errors.Is(err, ErrInvalidThreshold) {
		t.Errorf("Expected ErrInvalidThreshold, got %v", err)
	}
	if err := w.SetLongCollisionThreshold(250 * time.Millisecond); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if w.LongCollisionThreshold() != 250*time.Millisecond {
		t.Errorf("Expected 250ms threshold, got %v", w.LongCollisionThreshold())
	}

	if err := w.SetBoundsMode(core.Clip); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if w.BoundsMode() != core.Clip {
		t.Errorf("Expected Clip, got %v", w.BoundsMode())
	}
	if err := w.SetBoundsMode(core.BoundsMode(9)); !errors.Is(err, ErrInvalidBounds) {
		t.Errorf("Expected ErrInvalidBounds, got %v", err)
	}
	if w.BoundsMode() != core.Clip {
		t.Errorf("Expected Clip kept after rejected mode, got %v", w.BoundsMode())
	}
}

func TestWrapAwareCollisions(t *testing.T) {
	w, _ := newTestWorld(t, DefaultConfig())
	c := &counter{}
	w.Register(c.handler())

	w.CreateEntity(core.RGBGreen, 0.2)
	w.CreateEntity(core.RGBRed, 29.6)

	w.Update(0)
	w.Dispatcher().Drain()
	if c.starts != 0 {
		t.Errorf("Expected no planar collision across the seam, got %d", c.starts)
	}

	w.SetWrapAwareCollisions(true)
	w.Update(0)
	w.Dispatcher().Drain()
	if c.starts != 1 {
		t.Errorf("Expected ring collision across the seam, got %d", c.starts)
	}
}

func TestNoiseRange(t *testing.T) {
	w, mock := newTestWorld(t, DefaultConfig())

	if v := w.NoiseA(-19, 19, 1); math.Abs(v) > eps {
		t.Errorf("Expected NoiseA midpoint at t=0, got %v", v)
	}

	for i := 0; i < 500; i++ {
		mock.Advance(137 * time.Millisecond)
		w.Tick()
		for _, v := range []float64{w.NoiseA(-19, 19, 1), w.NoiseB(0, 1, 2), w.NoiseC(5, 6, 0.5)} {
			if math.IsNaN(v) {
				t.Fatal("Expected a number")
			}
		}
		if v := w.NoiseA(-19, 19, 1); v < -19 || v > 19 {
			t.Fatalf("NoiseA out of range: %v", v)
		}
		if v := w.NoiseB(0, 1, 2); v < 0 || v > 1 {
			t.Fatalf("NoiseB out of range: %v", v)
		}
		if v := w.NoiseC(5, 6, 0.5); v < 5 || v > 6 {
			t.Fatalf("NoiseC out of range: %v", v)
		}
	}

	if w.NoiseA(0, 1, 1) == w.NoiseB(0, 1, 1) {
		t.Error("Expected channels A and B to differ")
	}
}
