package engine

import (
	"sync"
	"time"
)

// MockTimeProvider is a manually driven TimeProvider for tests
// With a step set, every Now reading moves the clock forward by that step
type MockTimeProvider struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewMockTimeProvider creates a provider frozen at start
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{now: start}
}

// Now returns the current reading, then applies the auto step
func (m *MockTimeProvider) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.now
	m.now = m.now.Add(m.step)
	return t
}

// SetTime jumps to t, backwards jumps included
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

// Advance moves the reading forward by d
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

// SetStep makes each Now advance the clock by d, 0 freezes it again
func (m *MockTimeProvider) SetStep(d time.Duration) {
	m.mu.Lock()
	m.step = d
	m.mu.Unlock()
}
