package event

import (
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/manege/core"
)

// Dispatcher delivers queued events to registered handlers off the tick path
// Emit never blocks. Once started, a background goroutine drains the queue;
// without Start, callers drain synchronously with Drain.
type Dispatcher struct {
	queue *EventQueue

	mu       sync.RWMutex
	handlers []Handler

	consumeMu sync.Mutex // single consumer guard
	batch     []Event    // reused by Drain under consumeMu

	notify  chan struct{}
	stop    chan struct{}
	done    chan struct{}
	running atomic.Bool

	delivered atomic.Uint64
	dropped   atomic.Uint64
}

// NewDispatcher creates an idle dispatcher with an empty queue
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		queue:  NewEventQueue(),
		notify: make(chan struct{}, 1),
	}
}

// Register adds a handler, handlers run in registration order
func (d *Dispatcher) Register(h Handler) error {
	if h == nil {
		return ErrNilHandler
	}
	d.mu.Lock()
	d.handlers = append(d.handlers, h)
	d.mu.Unlock()
	return nil
}

// Reset removes all handlers
func (d *Dispatcher) Reset() {
	d.mu.Lock()
	d.handlers = nil
	d.mu.Unlock()
}

// Emit queues an event and wakes the worker, fire-and-forget
func (d *Dispatcher) Emit(ev Event) {
	if d.queue.Push(ev) {
		d.dropped.Add(1)
	}
	select {
	case d.notify <- struct{}{}:
	default:
	}
}

// Drain delivers all pending events on the calling goroutine
// Returns the number of events consumed
func (d *Dispatcher) Drain() int {
	d.consumeMu.Lock()
	defer d.consumeMu.Unlock()

	d.batch = d.queue.ConsumeInto(d.batch[:0])
	events := d.batch
	if len(events) == 0 {
		return 0
	}
	defer clear(d.batch)

	d.mu.RLock()
	handlers := d.handlers
	d.mu.RUnlock()

	for _, ev := range events {
		for _, h := range handlers {
			deliver(h, ev)
		}
	}
	d.delivered.Add(uint64(len(events)))
	return len(events)
}

// Start launches the background delivery goroutine, no-op if running
func (d *Dispatcher) Start() {
	if !d.running.CompareAndSwap(false, true) {
		return
	}
	d.stop = make(chan struct{})
	d.done = make(chan struct{})
	stop, done := d.stop, d.done

	core.Go(func() {
		defer close(done)
		for {
			select {
			case <-stop:
				d.Drain()
				return
			case <-d.notify:
				d.Drain()
			}
		}
	})
}

// Stop delivers what is still queued and halts the worker
func (d *Dispatcher) Stop() {
	if !d.running.CompareAndSwap(true, false) {
		return
	}
	close(d.stop)
	<-d.done
}

// Running reports whether the background worker is active
func (d *Dispatcher) Running() bool {
	return d.running.Load()
}

// Pending returns the approximate number of undelivered events
func (d *Dispatcher) Pending() int {
	return d.queue.Len()
}

// Stats returns delivered and overwritten event counts
func (d *Dispatcher) Stats() (delivered, dropped uint64) {
	return d.delivered.Load(), d.dropped.Load()
}
