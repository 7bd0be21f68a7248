// Package pinning computes and locks the carousel's rendered box size.
//
// A pin is derived once per layout epoch from the viewport and the active
// card's media aspect ratio. While a pin is active, per-frame consumers
// read the cached value instead of live layout measurements, which would
// feed back into the layout engine. Re-pins happen only on material change:
// viewport jitter under the threshold is ignored.
package pinning

import (
	"math"
	"time"

	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/pkg/frame"
	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/pkg/signal"
)

// Params holds the pinning tunables.
type Params struct {
	ViewportFraction float64 `json:"viewport_fraction"` // Target share of the viewport
	SideMargin       float64 `json:"side_margin"`       // Reserved margin, fraction of width per side
	MinWidth         float64 `json:"min_width"`         // Absolute lower bound (px)
	MaxWidth         float64 `json:"max_width"`         // Absolute upper bound (px)
	RepinThreshold   float64 `json:"repin_threshold"`   // Relative change needed to re-pin

	AspectTimeout time.Duration `json:"-"` // Bounded wait for media aspect
	DefaultAspect float64       `json:"default_aspect"` // Used for medialess cards
}

// DefaultParams returns the tuned pinning parameters.
func DefaultParams() Params {
	return Params{
		ViewportFraction: 0.5,
		SideMargin:       0.04,
		MinWidth:         220,
		MaxWidth:         1280,
		RepinThreshold:   0.03,
		AspectTimeout:    300 * time.Millisecond,
		DefaultAspect:    1.0,
	}
}

// Pin is a locked box size. While Active, consumers use these dimensions
// and never re-measure.
type Pin struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Active bool    `json:"active"`
}

// Viewport is the current window size in px.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// AspectSource reports a card media's natural aspect ratio once the media
// has loaded far enough to know it.
type AspectSource interface {
	// Aspect returns the width/height ratio and whether it is known yet.
	Aspect() (float64, bool)
}

// EmitFunc receives Pinned broadcasts.
type EmitFunc func(signal.Signal)

// Controller owns the pin state for one carousel.
type Controller struct {
	params Params
	pin    Pin
	vp     Viewport
	aspect float64

	source      AspectSource
	waiting     bool
	waitExpires frame.Deadline

	// Every (re-)pin broadcasts twice: once immediately, once on the next
	// frame, for consumers that measured mid-layout.
	pendingSecond bool

	emit EmitFunc
}

// NewController creates a pin controller.
func NewController(params Params, emit EmitFunc) *Controller {
	return &Controller{
		params: params,
		aspect: params.DefaultAspect,
		emit:   emit,
	}
}

// Pin returns the cached pin.
func (c *Controller) Pin() Pin { return c.pin }

// Params returns the current tunables.
func (c *Controller) Params() Params { return c.params }

// SetParams replaces the tunables.
func (c *Controller) SetParams(p Params) { c.params = p }

// SetViewport applies an explicit resize or orientation event and forces a
// recompute. Jitter filtering still applies through the re-pin threshold.
func (c *Controller) SetViewport(vp Viewport, now time.Time) {
	c.vp = vp
	c.repin(false)
}

// TrackCard points the controller at the active card's media. A nil source
// means a medialess card: the aspect defaults immediately. Otherwise the
// first pin waits, bounded by the aspect timeout, for the media to report
// its natural ratio.
func (c *Controller) TrackCard(source AspectSource, now time.Time) {
	c.source = source
	if source == nil {
		c.waiting = false
		c.waitExpires.Cancel()
		c.aspect = c.params.DefaultAspect
		c.repin(true)
		return
	}
	if a, ok := source.Aspect(); ok {
		c.waiting = false
		c.waitExpires.Cancel()
		c.setAspect(a)
		return
	}
	c.waiting = true
	c.waitExpires.Arm(now.Add(c.params.AspectTimeout))
}

// Step polls a pending aspect wait and flushes the deferred second
// broadcast. Returns true while the controller still needs frames.
func (c *Controller) Step(now time.Time) bool {
	if c.pendingSecond {
		c.pendingSecond = false
		c.broadcast()
	}

	if c.waiting {
		if a, ok := c.source.Aspect(); ok {
			c.waiting = false
			c.waitExpires.Cancel()
			c.setAspect(a)
		} else if c.waitExpires.Fire(now) {
			// Media never became ready; proceed with the default.
			c.waiting = false
			c.setAspect(c.params.DefaultAspect)
		}
	}

	return c.waiting || c.pendingSecond
}

func (c *Controller) setAspect(a float64) {
	if a <= 0 {
		a = c.params.DefaultAspect
	}
	c.aspect = a
	c.repin(true)
}

// compute derives the fit box from the viewport and aspect.
func (c *Controller) compute() (w, h float64) {
	if c.vp.Width <= 0 || c.vp.Height <= 0 {
		return 0, 0
	}
	w = math.Min(
		c.params.ViewportFraction*c.vp.Width,
		c.params.ViewportFraction*c.vp.Height*c.aspect,
	)

	usable := c.vp.Width * (1 - 2*c.params.SideMargin)
	upper := math.Min(c.params.MaxWidth, usable)
	w = math.Max(c.params.MinWidth, math.Min(w, upper))
	return w, w / c.aspect
}

// repin recomputes and broadcasts if the change is material (or forced).
// While an aspect wait is pending the pin holds; the resolved (or timed
// out) aspect triggers the recompute instead.
func (c *Controller) repin(force bool) {
	if c.waiting {
		return
	}
	w, h := c.compute()
	if w <= 0 || h <= 0 {
		return
	}
	if !force && c.pin.Active && withinFraction(w, c.pin.Width, c.params.RepinThreshold) &&
		withinFraction(h, c.pin.Height, c.params.RepinThreshold) {
		return
	}

	c.pin = Pin{Width: w, Height: h, Active: true}
	c.broadcast()
	c.pendingSecond = true
}

func (c *Controller) broadcast() {
	if c.emit != nil && c.pin.Active {
		c.emit(signal.Pinned{Width: c.pin.Width, Height: c.pin.Height})
	}
}

func withinFraction(a, b, frac float64) bool {
	if b == 0 {
		return a == 0
	}
	return math.Abs(a-b)/math.Abs(b) <= frac
}
