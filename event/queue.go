package event

import (
	"sync/atomic"

	"github.com/lixenwraith/manege/parameter"
)

// EventQueue is a bounded ring of collision events, many producers and one consumer
// Each Push claims a ticket; the slot is stamped with ticket+1 once the event
// is fully written, so the consumer reads a slot only when the stamp matches
// the ticket it expects. Producers lapping the consumer overwrite the oldest events.
type EventQueue struct {
	slots [parameter.EventQueueSize]slot
	next  atomic.Uint64 // next ticket handed to a producer
	read  atomic.Uint64 // next ticket the consumer expects
}

type slot struct {
	stamp atomic.Uint64 // ticket+1 of the held event, 0 before first write
	ev    Event
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push stores ev, returns true if an unread event was lost to make room
func (q *EventQueue) Push(ev Event) bool {
	ticket := q.next.Add(1) - 1
	s := &q.slots[ticket&parameter.EventBufferMask]
	s.ev = ev
	s.stamp.Store(ticket + 1)

	floor := ticket + 1
	if floor < parameter.EventQueueSize {
		return false
	}
	floor -= parameter.EventQueueSize
	for {
		read := q.read.Load()
		if read >= floor {
			return false
		}
		if q.read.CompareAndSwap(read, floor) {
			return true
		}
	}
}

// Consume returns the pending events in emission order, nil when empty
func (q *EventQueue) Consume() []Event {
	out := q.ConsumeInto(nil)
	if len(out) == 0 {
		return nil
	}
	return out
}

// ConsumeInto appends the pending events to dst and returns it
// Stops early at a slot whose producer has not finished writing
func (q *EventQueue) ConsumeInto(dst []Event) []Event {
	base := len(dst)
	for {
		read := q.read.Load()
		end := q.next.Load()

		ticket := read
		for ; ticket < end; ticket++ {
			s := &q.slots[ticket&parameter.EventBufferMask]
			if s.stamp.Load() != ticket+1 {
				break
			}
			dst = append(dst, s.ev)
		}

		if q.read.CompareAndSwap(read, ticket) {
			return dst
		}
		// a producer moved read past an overflow, retry from the new floor
		dst = dst[:base]
	}
}

// Len returns the approximate pending event count
func (q *EventQueue) Len() int {
	n := q.next.Load() - q.read.Load()
	if int64(n) < 0 {
		return 0
	}
	return int(min(n, parameter.EventQueueSize))
}
