package entity

import (
	"slices"

	"github.com/lixenwraith/manege/core"
)

// Store is an arena of live entities addressed by stable id
// Iteration order is creation order; removal keeps the remaining order intact
type Store struct {
	entities []*Entity
	index    map[ID]int
	nextID   ID
}

// NewStore creates an empty store, first id is 0
func NewStore() *Store {
	return &Store{
		entities: make([]*Entity, 0, 16),
		index:    make(map[ID]int),
	}
}

// Create allocates a fresh id and appends a new entity
func (s *Store) Create(color core.RGB, position float64) *Entity {
	e := New(s.nextID, color, position)
	s.nextID++
	s.index[e.ID] = len(s.entities)
	s.entities = append(s.entities, e)
	return e
}

// Get resolves an id, ok is false for removed or unknown ids
func (s *Store) Get(id ID) (*Entity, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.entities[i], true
}

// Remove drops the entity, no-op for unknown ids
// The id is not reclaimed
func (s *Store) Remove(id ID) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.entities = slices.Delete(s.entities, i, i+1)
	delete(s.index, id)
	for j := i; j < len(s.entities); j++ {
		s.index[s.entities[j].ID] = j
	}
	return true
}

// All returns the live entities in creation order
// The slice is owned by the store and valid until the next Create or Remove
func (s *Store) All() []*Entity {
	return s.entities
}

// Len returns the live entity count
func (s *Store) Len() int {
	return len(s.entities)
}

// NextID returns the id the next Create will assign
func (s *Store) NextID() ID {
	return s.nextID
}

// Reset removes every entity, the id counter keeps counting
func (s *Store) Reset() {
	clear(s.entities)
	s.entities = s.entities[:0]
	clear(s.index)
}
