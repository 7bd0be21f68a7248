// Package carousel composes the gesture engine, dimension pinning, media
// orchestration and the orbit ring into one carousel instance.
//
// Input handlers only mutate interaction state; Step is the single place
// animated values advance and visual transforms are recomputed. Cross
// component communication is one-way broadcast: pin results feed the orbit
// ring and the signal bus, commits feed the stability broadcast.
package carousel

import (
	"sync"
	"time"

	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/pkg/card"
	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/pkg/gesture"
	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/pkg/media"
	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/pkg/orbit"
	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/pkg/pinning"
	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/pkg/signal"
)

// Theme is the rendering descriptor supplied by the surrounding
// application: a font and two colors. The engine never interprets it.
type Theme struct {
	Font    string `json:"font"`
	Primary string `json:"primary"`
	Accent  string `json:"accent"`
}

// Layout holds the visual falloff tunables for card transforms.
type Layout struct {
	Spacing        float64 `json:"spacing"`         // Card pitch as a fraction of pin height
	ScaleFalloff   float64 `json:"scale_falloff"`   // Shrink per unit of distance
	OpacityFalloff float64 `json:"opacity_falloff"` // Fade per unit of distance
}

// DefaultLayout returns the tuned layout parameters.
func DefaultLayout() Layout {
	return Layout{Spacing: 1.08, ScaleFalloff: 0.18, OpacityFalloff: 0.35}
}

// CardTransform is one card's computed visual transform for a frame.
type CardTransform struct {
	Index      int     `json:"index"`
	CardID     string  `json:"card_id"`
	Position   float64 `json:"position"` // signed distance from the active position
	TranslateY float64 `json:"translate_y"`
	Scale      float64 `json:"scale"`
	Opacity    float64 `json:"opacity"`
}

// Options configures a carousel instance.
type Options struct {
	Gesture gesture.Params
	Pinning pinning.Params
	Media   media.Params
	Orbit   orbit.Params
	Layout  Layout

	Theme    Theme
	Tokens   []orbit.Token
	Disabled bool

	// OnIndexChange is invoked whenever the active index changes, whether
	// by commit or by an accepted external request.
	OnIndexChange func(index int)
}

// DefaultOptions returns options with every tunable at its default.
func DefaultOptions() Options {
	return Options{
		Gesture: gesture.DefaultParams(),
		Pinning: pinning.DefaultParams(),
		Media:   media.DefaultParams(),
		Orbit:   orbit.DefaultParams(),
		Layout:  DefaultLayout(),
	}
}

// mediaReport is what the rendering surface has told us about one card's
// media: whether it is ready and its natural aspect.
type mediaReport struct {
	aspect float64
	known  bool
	ready  bool
}

// Carousel is one onboarding carousel instance.
type Carousel struct {
	mu sync.Mutex

	deck   card.Deck
	theme  Theme
	layout Layout

	engine *gesture.Engine
	pins   *pinning.Controller
	media  *media.Orchestrator
	ring   *orbit.Ring
	bus    *signal.Bus

	viewport pinning.Viewport
	reports  map[string]*mediaReport

	transforms   []CardTransform
	mediaChanges []media.Change

	// stepNow is the timestamp of the frame currently being stepped, used
	// by commit callbacks that fire from inside Step.
	stepNow time.Time

	// pendingNotify queues the user callback for delivery after the mutex
	// is released; the callback may call back into the carousel.
	pendingNotify bool
	pendingIndex  int

	onIndexChange func(int)
}

// New creates a carousel over a deck. An empty deck yields a valid but
// inert instance: no layout, no gesture processing.
func New(deck card.Deck, opts Options) *Carousel {
	c := &Carousel{
		deck:          deck,
		theme:         opts.Theme,
		layout:        opts.Layout,
		bus:           signal.NewBus(),
		media:         media.New(opts.Media),
		ring:          orbit.NewRing(opts.Orbit, opts.Tokens),
		reports:       make(map[string]*mediaReport),
		onIndexChange: opts.OnIndexChange,
	}

	c.engine = gesture.New(opts.Gesture, deck.Len())
	c.engine.SetDisabled(opts.Disabled)
	c.engine.OnSignal(c.bus.Publish)
	c.engine.OnCommit(func(prev, next int) {
		c.trackActiveCard(c.stepNow)
		c.pendingNotify = true
		c.pendingIndex = next
	})

	c.pins = pinning.NewController(opts.Pinning, func(s signal.Signal) {
		// The ring consumes the pin directly on the same cooperative
		// turn; the bus carries it to external listeners.
		if p, ok := s.(signal.Pinned); ok {
			c.ring.ApplyPin(pinning.Pin{Width: p.Width, Height: p.Height, Active: true})
		}
		c.bus.Publish(s)
	})

	return c
}

// Bus returns the broadcast bus for external subscribers.
func (c *Carousel) Bus() *signal.Bus { return c.bus }

// Deck returns the card sequence.
func (c *Carousel) Deck() card.Deck { return c.deck }

// Theme returns the rendering descriptor.
func (c *Carousel) Theme() Theme { return c.theme }

// --- Input surface -------------------------------------------------------

// PointerDown feeds a pointer press.
func (c *Carousel) PointerDown(x, y float64, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engine.PointerDown(x, y, now)
}

// PointerMove feeds pointer movement.
func (c *Carousel) PointerMove(x, y float64, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engine.PointerMove(x, y, now)
}

// PointerUp feeds a pointer release.
func (c *Carousel) PointerUp(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engine.PointerUp(now)
}

// TouchStart feeds a touch start.
func (c *Carousel) TouchStart(x, y float64, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engine.TouchStart(x, y, now)
}

// TouchMove feeds touch movement.
func (c *Carousel) TouchMove(x, y float64, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engine.TouchMove(x, y, now)
}

// TouchEnd feeds a touch end.
func (c *Carousel) TouchEnd(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engine.TouchEnd(now)
}

// Wheel feeds a wheel tick over the carousel.
func (c *Carousel) Wheel(deltaY float64, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engine.Wheel(deltaY, now)
}

// OrbitWheel feeds a wheel tick over an orbit token. pointerX is in
// viewport coordinates; the ring resolves the tangential sign from which
// side of the carousel center it is on.
func (c *Carousel) OrbitWheel(deltaY, pointerX float64, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ring.Wheel(deltaY, pointerX, c.viewport.Width/2, now)
}

// OrbitHoverStart pauses the orbit's natural rotation.
func (c *Carousel) OrbitHoverStart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ring.HoverStart()
}

// OrbitHoverEnd resumes the orbit after the grace period.
func (c *Carousel) OrbitHoverEnd(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ring.HoverEnd(now)
}

// OrbitDragStart begins a token drag.
func (c *Carousel) OrbitDragStart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ring.DragStart()
}

// OrbitDrag applies a token drag delta in radians.
func (c *Carousel) OrbitDrag(deltaRad float64, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ring.Drag(deltaRad, now)
}

// OrbitDragEnd releases a token drag into a free spin.
func (c *Carousel) OrbitDragEnd(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ring.DragEnd(now)
}

// SetViewport applies a resize/orientation event. While the viewport
// chrome is still resizing, gestures abort and re-pinning waits.
func (c *Carousel) SetViewport(vp pinning.Viewport, resizing bool, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewport = vp
	c.engine.SetViewportResizing(resizing)
	if !resizing {
		c.pins.SetViewport(vp, now)
	}
}

// SetVisibility reports the carousel's visible fraction.
func (c *Carousel) SetVisibility(fraction float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engine.SetVisibility(fraction)
}

// SetIndex applies an externally requested index change. Requests inside
// the post-commit guard window are ignored.
func (c *Carousel) SetIndex(index int, now time.Time) bool {
	c.mu.Lock()
	applied := c.engine.SetExternalIndex(index, now)
	if applied {
		c.trackActiveCard(now)
	}
	notify := c.takeNotify()
	c.mu.Unlock()

	notify()
	return applied
}

// SetDisabled toggles the disabled flag.
func (c *Carousel) SetDisabled(disabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engine.SetDisabled(disabled)
}

// ReportMedia records what the rendering surface knows about a card's
// media: readiness and natural aspect ratio.
func (c *Carousel) ReportMedia(cardID string, aspect float64, ready bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rep, ok := c.reports[cardID]
	if !ok {
		rep = &mediaReport{}
		c.reports[cardID] = rep
	}
	rep.ready = ready
	if aspect > 0 {
		rep.aspect = aspect
		rep.known = true
	}
}

// Start performs the initial pin sequence for the active card.
func (c *Carousel) Start(vp pinning.Viewport, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewport = vp
	c.trackActiveCard(now)
	c.pins.SetViewport(vp, now)
}

// --- Frame step ----------------------------------------------------------

// Step advances one frame: gesture tweens, pin waits, orbit rotation, then
// transforms and the media plan. Returns true while anything still
// animates.
func (c *Carousel) Step(now time.Time) bool {
	c.mu.Lock()

	if c.deck.Len() == 0 {
		c.mu.Unlock()
		return false
	}
	c.stepNow = now

	engineBusy := c.engine.Step(now)
	pinsBusy := c.pins.Step(now)
	ringBusy := c.ring.Step(now)

	c.recomputeTransforms()

	st := c.engine.State()
	_, c.mediaChanges = c.media.Plan(
		c.deck.Len(),
		c.engine.FractionalPosition(),
		st.Phase == gesture.Dragging,
		c.activeReady(),
	)

	notify := c.takeNotify()
	c.mu.Unlock()

	notify()
	return engineBusy || pinsBusy || ringBusy
}

// takeNotify dequeues the pending index-change callback. Called with the
// mutex held; the returned func is invoked after it is released so the
// callback is free to call back into the carousel.
func (c *Carousel) takeNotify() func() {
	if !c.pendingNotify || c.onIndexChange == nil {
		c.pendingNotify = false
		return func() {}
	}
	c.pendingNotify = false
	idx := c.pendingIndex
	fn := c.onIndexChange
	return func() { fn(idx) }
}

// trackActiveCard points the pin controller at the new active card's
// media. Medialess cards pin immediately at the default aspect.
func (c *Carousel) trackActiveCard(now time.Time) {
	if c.deck.Len() == 0 {
		return
	}
	active := c.deck.At(c.engine.State().ActiveIndex)
	if !active.HasMedia() {
		c.pins.TrackCard(nil, now)
		return
	}
	c.pins.TrackCard(&cardAspect{c: c, card: active}, now)
}

// activeReady reports whether the active card's media is known ready.
// Medialess cards count as ready.
func (c *Carousel) activeReady() bool {
	active := c.deck.At(c.engine.State().ActiveIndex)
	if !active.HasMedia() {
		return true
	}
	if rep, ok := c.reports[active.ID]; ok {
		return rep.ready
	}
	return false
}

func (c *Carousel) recomputeTransforms() {
	pin := c.pins.Pin()
	pos := c.engine.FractionalPosition()
	window := c.media.Params().WindowRadius

	c.transforms = c.transforms[:0]
	seen := make(map[int]bool, 2*window+1)
	active := c.engine.State().ActiveIndex
	for offset := -window; offset <= window; offset++ {
		idx := c.deck.Wrap(active + offset)
		if seen[idx] {
			continue
		}
		seen[idx] = true
		// The card's signed offset from the fractional active position.
		d := -c.deck.Distance(idx, pos)
		height := pin.Height
		if !pin.Active {
			height = 0
		}
		c.transforms = append(c.transforms, CardTransform{
			Index:      idx,
			CardID:     c.deck.At(idx).ID,
			Position:   d,
			TranslateY: d * height * c.layout.Spacing,
			Scale:      1 / (1 + c.layout.ScaleFalloff*abs(d)),
			Opacity:    clamp01(1 - c.layout.OpacityFalloff*abs(d)),
		})
	}
}

// cardAspect adapts the carousel's media reports (and any profile-supplied
// aspect) to the pinning AspectSource contract for one card.
type cardAspect struct {
	c    *Carousel
	card card.Card
}

func (a *cardAspect) Aspect() (float64, bool) {
	if m := a.card.PrimaryMedia(); m.Aspect > 0 {
		return m.Aspect, true
	}
	if rep, ok := a.c.reports[a.card.ID]; ok && rep.known {
		return rep.aspect, true
	}
	return 0, false
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
