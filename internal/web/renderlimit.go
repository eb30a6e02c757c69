package web

// renderlimit.go caps how many PNG exports render at once.
//
// go-chart rasterizes on the CPU, so a burst of export requests is queued
// on a semaphore. A request that cannot get a slot within maxWait fails
// with errRenderBusy and the client is asked to retry.

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// errRenderBusy maps to RATE002.
var errRenderBusy = errors.New("too many concurrent renders")

// renderLimiter is a counting semaphore with a bounded wait.
type renderLimiter struct {
	slots   chan struct{}
	maxWait time.Duration
	active  atomic.Int32
}

func newRenderLimiter(maxConcurrent int, maxWait time.Duration) *renderLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &renderLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
	}
}

// acquire waits for a slot. The caller must release it.
func (l *renderLimiter) acquire(ctx context.Context) error {
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		l.active.Add(1)
		return nil
	case <-timer.C:
		return errRenderBusy
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *renderLimiter) release() {
	l.active.Add(-1)
	<-l.slots
}

// activeCount is the number of renders in progress.
func (l *renderLimiter) activeCount() int {
	return int(l.active.Load())
}

// withRenderSlot runs fn while holding a slot.
func (l *renderLimiter) withRenderSlot(ctx context.Context, fn func() error) error {
	if err := l.acquire(ctx); err != nil {
		return err
	}
	defer l.release()
	return fn()
}
