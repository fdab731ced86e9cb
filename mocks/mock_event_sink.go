package mocks

import (
	"context"
	"sync"

	"lesenhub/internal/domain"
)

// MockEventSink records emitted events for assertion. Emit never fails, so a
// recording fake is more useful than an expectation-driven mock here.
type MockEventSink struct {
	mu     sync.Mutex
	events []domain.Event
}

func (m *MockEventSink) Emit(_ context.Context, event domain.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

// Events returns a copy of everything emitted so far.
func (m *MockEventSink) Events() []domain.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Event, len(m.events))
	copy(out, m.events)
	return out
}

// EventTypes returns the emitted event types in order.
func (m *MockEventSink) EventTypes() []domain.EventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]domain.EventType, 0, len(m.events))
	for _, e := range m.events {
		types = append(types, e.Type)
	}
	return types
}
