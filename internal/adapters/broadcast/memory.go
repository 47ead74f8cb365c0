package broadcast

import (
	"context"
	"sync"

	"monipaep/internal/domain"
)

// Memory broadcasts sign-outs inside one process.
type Memory struct {
	mu       sync.Mutex
	next     int
	handlers map[int]func(string)
}

// NewMemory returns an in-process broadcaster.
func NewMemory() *Memory {
	return &Memory{handlers: map[int]func(string){}}
}

var _ domain.SignOutBroadcaster = (*Memory)(nil)

// Publish calls every subscribed handler synchronously.
func (m *Memory) Publish(_ context.Context, sessionID string) error {
	m.mu.Lock()
	handlers := make([]func(string), 0, len(m.handlers))
	for _, h := range m.handlers {
		handlers = append(handlers, h)
	}
	m.mu.Unlock()

	for _, h := range handlers {
		h(sessionID)
	}
	return nil
}

// Subscribe registers handler until ctx is done.
func (m *Memory) Subscribe(ctx context.Context, handler func(sessionID string)) error {
	m.mu.Lock()
	id := m.next
	m.next++
	m.handlers[id] = handler
	m.mu.Unlock()

	<-ctx.Done()

	m.mu.Lock()
	delete(m.handlers, id)
	m.mu.Unlock()
	return nil
}

func (m *Memory) subscribers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.handlers)
}
