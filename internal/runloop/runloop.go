// Package runloop is a single-goroutine task queue.
//
// Every task posted to a Loop runs on the goroutine that called Run, one at a
// time, in posting order. A task posted from inside another task runs after
// the posting task returns. Recurring tasks are driven by tickers and
// coalesced: while one firing is still queued or running, further ticks are
// dropped, so a slow task never builds a backlog.
package runloop

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Loop runs posted tasks serially.
type Loop struct {
	mu    sync.Mutex
	queue []func()
	wake  chan struct{}

	recurring []*recurring
}

type recurring struct {
	every   time.Duration
	fn      func()
	pending atomic.Bool
}

// New returns an idle Loop. Call Run to start processing.
func New() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Post enqueues fn. It never blocks and is safe from any goroutine,
// including from inside a running task.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Do posts fn and waits for it to finish or for ctx to end. It must not be
// called from inside a task on the same loop.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	l.Post(func() {
		defer close(done)
		fn()
	})
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Every registers fn to run on the loop every d. Register before Run.
func (l *Loop) Every(d time.Duration, fn func()) {
	l.recurring = append(l.recurring, &recurring{every: d, fn: fn})
}

// Run processes tasks until ctx is cancelled. Tasks still queued at that
// point are dropped.
func (l *Loop) Run(ctx context.Context) {
	for _, r := range l.recurring {
		go l.drive(ctx, r)
	}
	for {
		l.mu.Lock()
		batch := l.queue
		l.queue = nil
		l.mu.Unlock()

		for _, fn := range batch {
			if ctx.Err() != nil {
				return
			}
			fn()
		}
		if len(batch) > 0 {
			continue
		}

		select {
		case <-ctx.Done():
			return
		case <-l.wake:
		}
	}
}

func (l *Loop) drive(ctx context.Context, r *recurring) {
	t := time.NewTicker(r.every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if !r.pending.CompareAndSwap(false, true) {
				continue
			}
			l.Post(func() {
				r.pending.Store(false)
				r.fn()
			})
		}
	}
}
