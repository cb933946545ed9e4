// internal/event/manager.go
package event

import (
	"sync"

	"github.com/inkstage/historycore/internal/logger"
)

// Handler receives a dispatched Event.
type Handler func(e Event)

// Manager handles event subscriptions and dispatching.
type Manager struct {
	mu        sync.RWMutex
	nextSubID int
	handlers  map[Type]map[int]Handler
}

// NewManager creates a new event manager.
func NewManager() *Manager {
	return &Manager{
		handlers: make(map[Type]map[int]Handler),
	}
}

// Subscribe adds a handler function for a specific event type and returns a
// function that removes it, closing the gap the teacher's Manager left open
// ("Unsubscribe... skipping implementation for now").
func (m *Manager) Subscribe(eventType Type, handler Handler) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextSubID
	m.nextSubID++
	if m.handlers[eventType] == nil {
		m.handlers[eventType] = make(map[int]Handler)
	}
	m.handlers[eventType][id] = handler
	m.mu.Unlock()

	logger.DebugTagf("event", "handler subscribed to type %v", eventType)

	return func() {
		m.mu.Lock()
		delete(m.handlers[eventType], id)
		m.mu.Unlock()
	}
}

// Dispatch sends an event to all registered handlers for its type,
// synchronously, over a defensive copy of the handler set so a handler that
// unsubscribes itself mid-dispatch can't corrupt the iteration.
func (m *Manager) Dispatch(eventType Type, data any) {
	m.mu.RLock()
	byID := m.handlers[eventType]
	handlers := make([]Handler, 0, len(byID))
	for _, h := range byID {
		handlers = append(handlers, h)
	}
	m.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}

	logger.DebugTagf("event", "dispatching type %v to %d handler(s)", eventType, len(handlers))

	evt := Event{Type: eventType, Data: data}
	for _, h := range handlers {
		h(evt)
	}
}
