// Package task runs keyed background work, collapsing duplicate dispatches.
package task

import (
	"context"
	"sync"
)

// Manager runs background tasks keyed by an identifier. A key is in flight
// at most once; launching it again while it runs is a no-op. Tasks run on
// the manager's context, detached from the caller's.
type Manager struct {
	ctx context.Context

	mtx     sync.Mutex
	pending map[string]struct{}
}

// NewManager returns a manager whose tasks inherit ctx.
func NewManager(ctx context.Context) *Manager {
	return &Manager{
		ctx:     ctx,
		pending: make(map[string]struct{}),
	}
}

// Launch runs fn in the background under the given key. The returned
// channel receives the task's error, then closes. When the key is already
// in flight the channel closes without fn running again.
func (m *Manager) Launch(key string, fn func(context.Context) error) <-chan error {
	done := make(chan error, 1)

	m.mtx.Lock()
	if _, exists := m.pending[key]; exists {
		m.mtx.Unlock()
		close(done)
		return done
	}
	m.pending[key] = struct{}{}
	m.mtx.Unlock()

	go func() {
		defer close(done)
		defer func() {
			m.mtx.Lock()
			delete(m.pending, key)
			m.mtx.Unlock()
		}()

		select {
		case <-m.ctx.Done():
			done <- m.ctx.Err()
		default:
			done <- fn(m.ctx)
		}
	}()

	return done
}

// InFlight reports whether the key currently has a running task.
func (m *Manager) InFlight(key string) bool {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	_, ok := m.pending[key]
	return ok
}
