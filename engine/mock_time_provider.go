package engine

import (
	"sync"
	"time"
)

// MockTimeProvider is a manually advanced TimeProvider for deterministic clock tests
type MockTimeProvider struct {
	mu  sync.RWMutex
	now time.Time
}

var _ TimeProvider = (*MockTimeProvider)(nil)

// NewMockTimeProvider creates a mock reading start until advanced
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{now: start}
}

// Now returns the mocked time
func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Advance moves the mocked time forward by d
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}
