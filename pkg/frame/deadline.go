package frame

import "time"

// Deadline is a cancellable one-shot timer token evaluated on the frame
// loop rather than with real timers. Re-arming invalidates the previous
// token: a generation is bumped on every Arm, so a stale expiry can never
// fire after a newer one was scheduled for the same purpose.
//
// Deadlines are not safe for concurrent use; each belongs to the component
// that owns it and is only touched from input handlers and the frame
// callback, which share one cooperative turn sequence.
type Deadline struct {
	at    time.Time
	gen   uint64
	armed bool
}

// Arm schedules the deadline for the given time, cancelling any previously
// armed expiry. It returns the new generation.
func (d *Deadline) Arm(at time.Time) uint64 {
	d.gen++
	d.at = at
	d.armed = true
	return d.gen
}

// Cancel disarms the deadline without firing.
func (d *Deadline) Cancel() {
	d.gen++
	d.armed = false
}

// Armed reports whether an expiry is pending.
func (d *Deadline) Armed() bool {
	return d.armed
}

// Gen returns the current generation.
func (d *Deadline) Gen() uint64 {
	return d.gen
}

// Fire reports whether the deadline has expired. It disarms the token, so
// an expiry is observed exactly once.
func (d *Deadline) Fire(now time.Time) bool {
	if !d.armed || now.Before(d.at) {
		return false
	}
	d.armed = false
	return true
}
