// Package sync provides concurrency primitives for fanning out work.
package sync

import (
	"context"
	"sync"
)

// WorkPool distributes keyed units of work across a fixed number of workers.
// Work added under an id that is already queued is dropped.
type WorkPool struct {
	ctx     context.Context
	workers int
	mtx     sync.Mutex
	work    map[string]func()
	logf    func(string, ...interface{})
}

// WorkPoolOption is a WorkPool configuration function.
type WorkPoolOption func(*WorkPool)

// WithWorkPoolLogger sets the logger function used to report dropped work.
func WithWorkPoolLogger(logf func(string, ...interface{})) WorkPoolOption {
	return func(wp *WorkPool) {
		wp.logf = logf
	}
}

// NewWorkPool returns a new WorkPool with the given number of workers.
func NewWorkPool(ctx context.Context, workers int, opts ...WorkPoolOption) *WorkPool {
	if workers < 1 {
		workers = 1
	}

	wp := &WorkPool{
		ctx:     ctx,
		workers: workers,
		work:    make(map[string]func()),
	}

	for _, opt := range opts {
		opt(wp)
	}

	return wp
}

// Add queues work under the given id.
func (wp *WorkPool) Add(id string, fn func()) {
	wp.mtx.Lock()
	defer wp.mtx.Unlock()
	if _, ok := wp.work[id]; ok {
		if wp.logf != nil {
			wp.logf("work %q already queued", id)
		}
		return
	}

	wp.work[id] = fn
}

// Status reports whether work with the given id is still queued.
func (wp *WorkPool) Status(id string) bool {
	wp.mtx.Lock()
	defer wp.mtx.Unlock()
	_, ok := wp.work[id]
	return ok
}

// Run runs all queued work and blocks until it is done or the context is
// canceled.
func (wp *WorkPool) Run() {
	queue := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < wp.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range queue {
				wp.mtx.Lock()
				fn := wp.work[id]
				wp.mtx.Unlock()
				if fn == nil {
					continue
				}

				fn()

				wp.mtx.Lock()
				delete(wp.work, id)
				wp.mtx.Unlock()
			}
		}()
	}

	wp.mtx.Lock()
	ids := make([]string, 0, len(wp.work))
	for id := range wp.work {
		ids = append(ids, id)
	}
	wp.mtx.Unlock()

	for _, id := range ids {
		select {
		case <-wp.ctx.Done():
			if wp.logf != nil {
				wp.logf("work pool canceled: %v", wp.ctx.Err())
			}
			close(queue)
			wg.Wait()
			return
		case queue <- id:
		}
	}

	close(queue)
	wg.Wait()
}
