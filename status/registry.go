package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metric names published by the engine
const (
	WorldTicks       = "world.ticks"
	WorldEntities    = "world.entities"
	WorldPaused      = "world.paused"
	ClockSeconds     = "clock.seconds"
	CollisionActive  = "collision.active"
	CollisionStarts  = "collision.starts"
	CollisionEnds    = "collision.ends"
	CollisionLong    = "collision.long"
	AnimationActive  = "animation.active"
	EventsDropped    = "event.dropped"
	EventsDelivered  = "event.delivered"
	SchedulerOverrun = "scheduler.overruns"
)

// Registry is the central metrics facade
// Owners cache pointers at construction; tick code writes straight to the atomics
type Registry struct {
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

func NewRegistry() *Registry {
	return &Registry{
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// Summary formats every metric as "key=value" in sorted order, ints first
func (r *Registry) Summary() string {
	var sb strings.Builder
	r.Ints.Range(func(key string, v *atomic.Int64) {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s=%d", key, v.Load())
	})
	r.Floats.Range(func(key string, v *AtomicFloat) {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s=%.2f", key, v.Get())
	})
	return sb.String()
}
