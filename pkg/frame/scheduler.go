// Package frame provides the per-frame scheduling primitives shared by the
// carousel and orbit animations: a tick scheduler with an explicit dirty
// flag, and cancellable deadline tokens for debounce-style timers.
//
// The scheduler contract is the same whether it is backed by a display
// refresh callback or a fixed-rate timer: the registered callback runs once
// per tick while something is animating, and the loop goes quiet when the
// callback reports idle.
package frame

import (
	"context"
	"sync/atomic"
	"time"
)

// TickFunc is invoked once per frame with the current time. It returns true
// while animation is still in progress; returning false lets the scheduler
// go idle until the next Wake.
type TickFunc func(now time.Time) bool

// Scheduler drives a TickFunc while the dirty flag is set.
type Scheduler interface {
	// Wake marks the animation dirty so the callback runs on the next tick.
	Wake()
}

// TickerScheduler runs the callback at a fixed rate. It is the production
// backing for the frame loop.
type TickerScheduler struct {
	interval time.Duration
	fn       TickFunc
	dirty    atomic.Bool
}

// NewTickerScheduler creates a scheduler ticking at the given frequency.
// hz values <= 0 fall back to 60.
func NewTickerScheduler(hz float64, fn TickFunc) *TickerScheduler {
	if hz <= 0 {
		hz = 60
	}
	return &TickerScheduler{
		interval: time.Duration(float64(time.Second) / hz),
		fn:       fn,
	}
}

// Wake marks the loop dirty.
func (s *TickerScheduler) Wake() {
	s.dirty.Store(true)
}

// Run blocks, invoking the callback once per tick while dirty.
// It returns when the context is cancelled.
func (s *TickerScheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if !s.dirty.Load() {
				continue
			}
			if !s.fn(now) {
				s.dirty.Store(false)
			}
		}
	}
}

// Interval returns the tick interval.
func (s *TickerScheduler) Interval() time.Duration {
	return s.interval
}

// ManualScheduler advances only when Step is called. It exists so the
// animation pipeline can be driven deterministically in tests.
type ManualScheduler struct {
	fn    TickFunc
	dirty bool
	Ticks int
}

// NewManualScheduler creates a manual scheduler around fn.
func NewManualScheduler(fn TickFunc) *ManualScheduler {
	return &ManualScheduler{fn: fn}
}

// Wake marks the loop dirty.
func (s *ManualScheduler) Wake() {
	s.dirty = true
}

// Dirty reports whether the next Step would invoke the callback.
func (s *ManualScheduler) Dirty() bool {
	return s.dirty
}

// Step invokes the callback once if dirty and returns whether it ran.
func (s *ManualScheduler) Step(now time.Time) bool {
	if !s.dirty {
		return false
	}
	s.Ticks++
	if !s.fn(now) {
		s.dirty = false
	}
	return true
}
