package carousel

import (
	"context"
	"time"

	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/pkg/frame"
)

// FrameSink receives the snapshot produced by each animated frame.
type FrameSink func(Snapshot)

// Runner drives a carousel from a frame scheduler and pushes a snapshot to
// the sink after every animated frame. Any input feeding the carousel
// should go through the runner so the dirty flag is set.
type Runner struct {
	car   *Carousel
	sched *frame.TickerScheduler
	sink  FrameSink
}

// NewRunner creates a runner ticking at the given frequency.
func NewRunner(car *Carousel, hz float64, sink FrameSink) *Runner {
	r := &Runner{car: car, sink: sink}
	r.sched = frame.NewTickerScheduler(hz, r.tick)
	return r
}

// Wake marks the animation dirty. Call after feeding input.
func (r *Runner) Wake() {
	r.sched.Wake()
}

// Carousel returns the driven instance.
func (r *Runner) Carousel() *Carousel {
	return r.car
}

// Run blocks until the context is cancelled. Pending frame requests die
// with the context; nothing fires against a stopped runner.
func (r *Runner) Run(ctx context.Context) error {
	r.sched.Wake()
	return r.sched.Run(ctx)
}

func (r *Runner) tick(now time.Time) bool {
	busy := r.car.Step(now)
	if r.sink != nil {
		r.sink(r.car.Snapshot())
	}
	return busy
}
