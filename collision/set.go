package collision

import (
	"time"

	"github.com/lixenwraith/manege/entity"
	"github.com/lixenwraith/manege/parameter"
)

// Sentinel timestamps stored in or returned by the Set
const (
	// NotFound is returned by Get for pairs that are not colliding
	NotFound time.Duration = -1
	// Reported marks a pair whose long collision already fired this episode
	Reported time.Duration = -2
)

// pairEntry is one colliding pair, lo < hi
type pairEntry struct {
	lo, hi entity.ID
	since  time.Duration
}

// Set is a symmetric sparse map from unordered id pairs to collision start time
// Fixed bucket count; buckets are short slices scanned linearly
type Set struct {
	buckets [][]pairEntry
	factor  uint64
	count   int
}

// NewSet creates a set with the given bucket count and spreading factor
// Non-positive values fall back to the parameter defaults
func NewSet(bucketCount, factor int) *Set {
	if bucketCount <= 0 {
		bucketCount = parameter.CollisionBuckets
	}
	if factor <= 0 {
		factor = parameter.CollisionHashFactor
	}
	return &Set{
		buckets: make([][]pairEntry, bucketCount),
		factor:  uint64(factor),
	}
}

// order normalizes the pair so (a,b) and (b,a) address the same entry
func order(a, b entity.ID) (entity.ID, entity.ID) {
	if a > b {
		return b, a
	}
	return a, b
}

// bucket computes (lo*K + hi) mod bucketCount on normalized ids
func (s *Set) bucket(lo, hi entity.ID) int {
	return int((uint64(lo)*s.factor + uint64(hi)) % uint64(len(s.buckets)))
}

// locate returns bucket and slot, slot is -1 if absent
func (s *Set) locate(a, b entity.ID) (int, int) {
	lo, hi := order(a, b)
	k := s.bucket(lo, hi)
	for i, p := range s.buckets[k] {
		if p.lo == lo && p.hi == hi {
			return k, i
		}
	}
	return k, -1
}

// Has reports whether the pair is currently recorded as colliding
func (s *Set) Has(a, b entity.ID) bool {
	_, i := s.locate(a, b)
	return i >= 0
}

// Add records the pair with a start time, no-op if already present
func (s *Set) Add(a, b entity.ID, t time.Duration) {
	k, i := s.locate(a, b)
	if i >= 0 {
		return
	}
	lo, hi := order(a, b)
	s.buckets[k] = append(s.buckets[k], pairEntry{lo: lo, hi: hi, since: t})
	s.count++
}

// Remove deletes the pair, no-op if absent
func (s *Set) Remove(a, b entity.ID) {
	k, i := s.locate(a, b)
	if i < 0 {
		return
	}
	s.removeAt(k, i)
}

func (s *Set) removeAt(k, i int) {
	bucket := s.buckets[k]
	last := len(bucket) - 1
	bucket[i] = bucket[last]
	s.buckets[k] = bucket[:last]
	s.count--
}

// Get returns the stored timestamp or NotFound
func (s *Set) Get(a, b entity.ID) time.Duration {
	k, i := s.locate(a, b)
	if i < 0 {
		return NotFound
	}
	return s.buckets[k][i].since
}

// Set overwrites the timestamp of a present pair, absent pairs are left absent
func (s *Set) Set(a, b entity.ID, t time.Duration) {
	k, i := s.locate(a, b)
	if i < 0 {
		return
	}
	s.buckets[k][i].since = t
}

// Forget drops every pair involving id, returns the number removed
func (s *Set) Forget(id entity.ID) int {
	removed := 0
	for k := range s.buckets {
		for i := 0; i < len(s.buckets[k]); {
			p := s.buckets[k][i]
			if p.lo == id || p.hi == id {
				s.removeAt(k, i)
				removed++
				continue
			}
			i++
		}
	}
	return removed
}

// Clear drops every pair
func (s *Set) Clear() {
	for k := range s.buckets {
		s.buckets[k] = s.buckets[k][:0]
	}
	s.count = 0
}

// Len returns the number of colliding pairs
func (s *Set) Len() int {
	return s.count
}
