package contact

import (
	"context"
	"sync"
	"time"

	"github.com/mishurahman616/portfolio/core/interfaces"
)

// mockRelay is a mock implementation of the EmailRelay interface
type mockRelay struct {
	sendFunc func(ctx context.Context, msg interfaces.EmailMessage) error

	mu   sync.Mutex
	sent []interfaces.EmailMessage
}

func (m *mockRelay) Send(ctx context.Context, msg interfaces.EmailMessage) error {
	m.mu.Lock()
	m.sent = append(m.sent, msg)
	m.mu.Unlock()
	if m.sendFunc != nil {
		return m.sendFunc(ctx, msg)
	}
	return nil
}

func (m *mockRelay) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

// fakeClock is a manually advanced clock
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
