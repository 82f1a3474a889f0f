// Package runloop serializes all application work onto one goroutine,
// mirroring the single-threaded event dispatcher the BLE stack provides on
// the target hardware. Protocol events, timer ticks and notification sends
// all run to completion on the loop, so the state they touch needs no
// locking.
package runloop

import (
	"context"
	"time"
)

// A Loop executes posted functions one at a time, in the order they become
// ready.
type Loop struct {
	work chan func()
}

// New returns an idle loop. Call Run to start draining it.
func New() *Loop {
	return &Loop{work: make(chan func(), 64)}
}

// Post queues fn for execution on the loop goroutine. It blocks only when
// the queue is full.
func (l *Loop) Post(fn func()) {
	l.work <- fn
}

// Every schedules fn on the loop at the given period until ctx ends.
// Ticks that arrive while the loop is saturated are delivered late rather
// than dropped.
func (l *Loop) Every(ctx context.Context, period time.Duration, fn func(now time.Time)) {
	go func() {
		t := time.NewTicker(period)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-t.C:
				select {
				case l.work <- func() { fn(now) }:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
}

// Run executes queued work until ctx ends. It is the loop goroutine; only
// one Run may be active.
func (l *Loop) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-l.work:
			fn()
		}
	}
}
