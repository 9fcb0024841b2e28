package event

import (
	"time"

	"github.com/lixenwraith/manege/entity"
)

// Type identifies a collision notification
type Type uint8

const (
	EventCollisionStart Type = iota + 1
	EventCollisionEnd
	EventLongCollision
)

var typeNames = map[Type]string{
	EventCollisionStart: "CollisionStart",
	EventCollisionEnd:   "CollisionEnd",
	EventLongCollision:  "LongCollision",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Event is one notification raised by a tick
// A and B are live entity pointers; handlers may change their scalar fields
type Event struct {
	Type  Type
	A, B  *entity.Entity
	Time  time.Duration // in-simulation time of the tick
	Frame int64         // tick number
}
