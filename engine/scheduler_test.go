package engine

import (
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/manege/core"
	"github.com/lixenwraith/manege/display"
)

func TestSchedulerStep(t *testing.T) {
	w, mock := newTestWorld(t, DefaultConfig())
	e := w.CreateEntity(core.RGBGreen, 2)

	rec := display.NewRecorder()
	cs := NewClockScheduler(w, rec, 0)

	hookRuns := 0
	cs.SetTickHook(func(w *World) {
		hookRuns++
		e.Speed = 10
	})

	mock.Advance(100 * time.Millisecond)
	if err := cs.Step(); err != nil {
		t.Fatalf("Step failed: %v", err)
	}

	if hookRuns != 1 {
		t.Errorf("Expected hook to run once, got %d", hookRuns)
	}
	if math.Abs(e.Position-3) > eps {
		t.Errorf("Expected position 3, got %v", e.Position)
	}
	if rec.Frames() != 1 {
		t.Errorf("Expected 1 frame drawn, got %d", rec.Frames())
	}
	if cs.TickCount() != 1 {
		t.Errorf("Expected tick count 1, got %d", cs.TickCount())
	}
	if frame := rec.Last(); frame[3] != core.RGBGreen {
		t.Errorf("Expected entity drawn at cell 3, got %v", frame[3])
	}
}

func TestSchedulerStartStop(t *testing.T) {
	w, err := NewWorld(DefaultConfig())
	if err != nil {
		t.Fatalf("NewWorld failed: %v", err)
	}
	rec := display.NewRecorder()
	cs := NewClockScheduler(w, rec, 5*time.Millisecond)

	cs.Start()
	if !w.Dispatcher().Running() {
		t.Error("Expected dispatcher started with the scheduler")
	}
	time.Sleep(60 * time.Millisecond)
	cs.Stop()
	cs.Stop()

	if cs.TickCount() == 0 {
		t.Error("Expected at least one tick")
	}
	if w.Dispatcher().Running() {
		t.Error("Expected dispatcher stopped with the scheduler")
	}

	ticks := cs.TickCount()
	time.Sleep(20 * time.Millisecond)
	if cs.TickCount() != ticks {
		t.Error("Expected no ticks after Stop")
	}
}
