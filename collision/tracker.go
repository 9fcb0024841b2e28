package collision

import (
	"time"

	"github.com/lixenwraith/manege/entity"
	"github.com/lixenwraith/manege/parameter"
)

// Kind is the transition raised by reconciliation
type Kind uint8

const (
	Start Kind = iota
	End
	Long
)

func (k Kind) String() string {
	switch k {
	case Start:
		return "start"
	case End:
		return "end"
	case Long:
		return "long"
	}
	return "unknown"
}

// Transition is one discrete collision event, A has the lower id
type Transition struct {
	Kind Kind
	A, B *entity.Entity
	At   time.Duration
}

// Predicate decides whether two entities currently overlap
type Predicate func(a, b *entity.Entity) bool

// Planar is the default straight-line overlap predicate
func Planar(a, b *entity.Entity) bool {
	return a.CollidesWith(b)
}

// Ring returns a seam-aware predicate for a strip of the given size
func Ring(size float64) Predicate {
	return func(a, b *entity.Entity) bool {
		return a.CollidesWrapped(b, size)
	}
}

// Tracker turns a sampled overlap predicate into start/end/long transitions
type Tracker struct {
	set       *Set
	collide   Predicate
	threshold time.Duration

	// Reused per reconcile
	overlaps []bool
	out      []Transition
}

// NewTracker creates a tracker using the planar predicate and default threshold
func NewTracker() *Tracker {
	return &Tracker{
		set:       NewSet(parameter.CollisionBuckets, parameter.CollisionHashFactor),
		collide:   Planar,
		threshold: parameter.DefaultLongCollision,
	}
}

// Set exposes the underlying pair map
func (t *Tracker) Set() *Set {
	return t.set
}

// SetPredicate swaps the overlap test, nil restores Planar
func (t *Tracker) SetPredicate(p Predicate) {
	if p == nil {
		p = Planar
	}
	t.collide = p
}

// SetThreshold sets how long an overlap must last before Long fires
func (t *Tracker) SetThreshold(d time.Duration) {
	t.threshold = d
}

// Threshold returns the long collision threshold
func (t *Tracker) Threshold() time.Duration {
	return t.threshold
}

// Reconcile compares the recorded pairs with the current overlaps and
// returns the transitions for this tick. Overlaps for every pair are sampled
// before any entry is changed, so all transitions share one snapshot.
// The returned slice is reused by the next call.
func (t *Tracker) Reconcile(entities []*entity.Entity, now time.Duration) []Transition {
	n := len(entities)
	pairs := n * (n - 1) / 2
	if cap(t.overlaps) < pairs {
		t.overlaps = make([]bool, pairs)
	}
	t.overlaps = t.overlaps[:pairs]

	idx := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			t.overlaps[idx] = t.collide(entities[i], entities[j])
			idx++
		}
	}

	t.out = t.out[:0]
	idx = 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a, b := entities[i], entities[j]
			if a.ID > b.ID {
				a, b = b, a
			}
			is := t.overlaps[idx]
			idx++

			was := t.set.Has(a.ID, b.ID)
			switch {
			case !was && is:
				t.set.Add(a.ID, b.ID, now)
				t.out = append(t.out, Transition{Kind: Start, A: a, B: b, At: now})
			case was && !is:
				t.set.Remove(a.ID, b.ID)
				t.out = append(t.out, Transition{Kind: End, A: a, B: b, At: now})
			case was && is:
				since := t.set.Get(a.ID, b.ID)
				if since >= 0 && now-since >= t.threshold {
					t.set.Set(a.ID, b.ID, Reported)
					t.out = append(t.out, Transition{Kind: Long, A: a, B: b, At: now})
				}
			}
		}
	}
	return t.out
}

// Forget drops all entries of a removed entity without raising End
func (t *Tracker) Forget(id entity.ID) int {
	return t.set.Forget(id)
}

// Reset clears all recorded collisions
func (t *Tracker) Reset() {
	t.set.Clear()
}

// Active returns the number of pairs currently colliding
func (t *Tracker) Active() int {
	return t.set.Len()
}

// SameEntityPair reports whether {a1,a2} and {b1,b2} name the same unordered pair
func SameEntityPair(a1, a2, b1, b2 entity.ID) bool {
	return (a1 == b1 && a2 == b2) || (a1 == b2 && a2 == b1)
}
