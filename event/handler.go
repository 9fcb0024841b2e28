package event

import (
	"errors"

	"github.com/lixenwraith/manege/entity"
)

// ErrNilHandler is returned when registering a nil handler
var ErrNilHandler = errors.New("event handler is nil")

// Handler receives collision notifications, one method per event kind
// Entities arrive with the lower id first; use collision.SameEntityPair to
// compare pairs independent of order
type Handler interface {
	OnCollisionStart(a, b *entity.Entity)
	OnCollisionEnd(a, b *entity.Entity)
	OnLongCollision(a, b *entity.Entity)
}

// HandlerFuncs adapts plain functions to Handler, nil entries are ignored
type HandlerFuncs struct {
	Start func(a, b *entity.Entity)
	End   func(a, b *entity.Entity)
	Long  func(a, b *entity.Entity)
}

func (h HandlerFuncs) OnCollisionStart(a, b *entity.Entity) {
	if h.Start != nil {
		h.Start(a, b)
	}
}

func (h HandlerFuncs) OnCollisionEnd(a, b *entity.Entity) {
	if h.End != nil {
		h.End(a, b)
	}
}

func (h HandlerFuncs) OnLongCollision(a, b *entity.Entity) {
	if h.Long != nil {
		h.Long(a, b)
	}
}

// deliver routes ev to the matching handler method
func deliver(h Handler, ev Event) {
	switch ev.Type {
	case EventCollisionStart:
		h.OnCollisionStart(ev.A, ev.B)
	case EventCollisionEnd:
		h.OnCollisionEnd(ev.A, ev.B)
	case EventLongCollision:
		h.OnLongCollision(ev.A, ev.B)
	}
}
