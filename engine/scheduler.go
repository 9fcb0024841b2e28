package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/manege/core"
	"github.com/lixenwraith/manege/display"
	"github.com/lixenwraith/manege/parameter"
	"github.com/lixenwraith/manege/status"
)

// ClockScheduler runs the world on a fixed tick and pushes every frame to a driver
// Deadlines are drift corrected; while the world is paused the loop backs off
type ClockScheduler struct {
	world  *World
	driver display.Driver

	tickInterval     time.Duration
	nextTickDeadline time.Time
	mu               sync.Mutex

	// Runs under the world lock before each tick, input sampling goes here
	hook func(w *World)

	tickCount atomic.Uint64
	overruns  *atomic.Int64

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewClockScheduler creates a scheduler, interval <= 0 uses the default tick
func NewClockScheduler(world *World, driver display.Driver, interval time.Duration) *ClockScheduler {
	if interval <= 0 {
		interval = parameter.TickInterval
	}
	return &ClockScheduler{
		world:        world,
		driver:       driver,
		tickInterval: interval,
		overruns:     world.Status().Ints.Get(status.SchedulerOverrun),
		stopChan:     make(chan struct{}),
	}
}

// SetTickHook installs fn to run before every tick, must be called before Start
func (cs *ClockScheduler) SetTickHook(fn func(w *World)) {
	cs.hook = fn
}

// Start launches the tick loop and the event dispatcher
func (cs *ClockScheduler) Start() {
	if cs.running.CompareAndSwap(false, true) {
		cs.world.Dispatcher().Start()
		cs.wg.Add(1)
		core.Go(cs.schedulerLoop)
	}
}

// Stop halts the loop, then flushes pending events
func (cs *ClockScheduler) Stop() {
	cs.stopOnce.Do(func() {
		if cs.running.CompareAndSwap(true, false) {
			close(cs.stopChan)
			cs.wg.Wait()
			cs.world.Dispatcher().Stop()
		}
	})
}

// TickCount returns the ticks run by this scheduler
func (cs *ClockScheduler) TickCount() uint64 {
	return cs.tickCount.Load()
}

// Step runs one tick synchronously and draws the result
func (cs *ClockScheduler) Step() error {
	var err error
	cs.world.RunSafe(func() {
		if cs.hook != nil {
			cs.hook(cs.world)
		}
		cs.world.Tick()
		if cs.driver != nil {
			err = cs.world.Draw(cs.driver)
		}
	})
	cs.tickCount.Add(1)
	return err
}

func (cs *ClockScheduler) schedulerLoop() {
	defer cs.wg.Done()

	provider := cs.world.provider

	cs.mu.Lock()
	cs.nextTickDeadline = provider.Now().Add(cs.tickInterval)
	cs.mu.Unlock()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		select {
		case <-cs.stopChan:
			return
		default:
		}

		now := provider.Now()

		cs.mu.Lock()
		deadline := cs.nextTickDeadline
		cs.mu.Unlock()

		var sleepDuration time.Duration
		if !now.Before(deadline) {
			if err := cs.Step(); err != nil {
				cs.world.logger.Printf("scheduler: draw failed: %v", err)
			}

			cs.mu.Lock()
			interval := cs.tickInterval
			if !cs.world.Running() {
				// Paused ticks only refresh the display
				interval *= parameter.PausedTickBackoff
			}
			cs.nextTickDeadline = cs.nextTickDeadline.Add(interval)

			maxBehind := cs.tickInterval * 2
			if now.Sub(cs.nextTickDeadline) > maxBehind {
				cs.overruns.Add(1)
				cs.nextTickDeadline = now.Add(cs.tickInterval)
			}
			deadline = cs.nextTickDeadline
			cs.mu.Unlock()

			sleepDuration = deadline.Sub(provider.Now())
		} else {
			sleepDuration = deadline.Sub(now)
		}

		if sleepDuration > 0 {
			timer.Reset(sleepDuration)
			select {
			case <-timer.C:
			case <-cs.stopChan:
				return
			}
		}
	}
}
