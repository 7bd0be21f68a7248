// Package gesture implements the drag/inertia/snap state machine that
// advances the carousel one card at a time.
//
// The engine owns one State per carousel. Input handlers (pointer, touch,
// wheel) only mutate that state; Step is the single place animated values
// advance. Both run on the same cooperative turn sequence, so there is no
// locking inside the engine itself.
package gesture

import (
	"math"
	"time"

	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/pkg/frame"
	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/pkg/signal"
)

// Source identifies what kind of input claimed the current gesture.
type Source int

const (
	SourceNone Source = iota
	SourcePointer
	SourceTouch
	SourceWheel
)

// CommitFunc is invoked when a commit advances the active index.
type CommitFunc func(prev, next int)

// EmitFunc receives engine broadcasts (Stable, Rejected).
type EmitFunc func(signal.Signal)

type snapTween struct {
	active bool
	from   float64
	to     float64
	step   int // -1, 0 or +1; 0 is a cancel
	start  time.Time
	dur    time.Duration
}

// Engine is the gesture progress engine for one carousel.
type Engine struct {
	params  Params
	deckLen int

	st       State
	disabled bool

	// Pointer/touch gesture tracking
	tracking bool // down received, intent not yet decided
	claimed  bool // intent decided in our favor
	source   Source
	anchorX  float64
	anchorY  float64
	lastAt   time.Time

	tween     snapTween
	wheelIdle frame.Deadline

	visibility   float64
	viewportBusy bool
	rejected     bool // Rejected already emitted for the current gesture

	onCommit CommitFunc
	emit     EmitFunc
}

// New creates an engine over a sequence of deckLen cards.
func New(params Params, deckLen int) *Engine {
	return &Engine{
		params:     params,
		deckLen:    deckLen,
		visibility: 1,
	}
}

// OnCommit sets the index-change callback.
func (e *Engine) OnCommit(fn CommitFunc) { e.onCommit = fn }

// OnSignal sets the broadcast sink for Stable and Rejected signals.
func (e *Engine) OnSignal(fn EmitFunc) { e.emit = fn }

// State returns a copy of the interaction state.
func (e *Engine) State() State { return e.st }

// Params returns the current tuning parameters.
func (e *Engine) Params() Params { return e.params }

// SetParams replaces the tuning parameters.
func (e *Engine) SetParams(p Params) { e.params = p }

// SetDeckLen updates the sequence length. A shrinking deck clamps the
// active index back into range.
func (e *Engine) SetDeckLen(n int) {
	e.deckLen = n
	if n <= 0 {
		e.st.ActiveIndex = 0
		return
	}
	if e.st.ActiveIndex >= n {
		e.st.ActiveIndex = n - 1
	}
}

// SetDisabled toggles the disabled flag. Gestures on a disabled engine
// emit Rejected instead of navigating.
func (e *Engine) SetDisabled(disabled bool) { e.disabled = disabled }

// Disabled reports the disabled flag.
func (e *Engine) Disabled() bool { return e.disabled }

// FractionalPosition returns the mid-drag active position,
// activeIndex + progress.
func (e *Engine) FractionalPosition() float64 {
	return float64(e.st.ActiveIndex) + e.st.Progress
}

// Dragging reports whether a gesture currently owns the carousel.
func (e *Engine) Dragging() bool { return e.st.Phase == Dragging }

// PointerDown begins tracking a potential pointer gesture. The gesture is
// not claimed until movement passes the intent threshold.
func (e *Engine) PointerDown(x, y float64, now time.Time) {
	e.press(SourcePointer, x, y, now)
}

// TouchStart begins tracking a potential touch gesture.
func (e *Engine) TouchStart(x, y float64, now time.Time) {
	e.press(SourceTouch, x, y, now)
}

func (e *Engine) press(src Source, x, y float64, now time.Time) {
	if e.deckLen == 0 {
		return
	}
	// A running snap tween finishes before a new gesture may claim the
	// carousel; two concurrent tweens on one state are never allowed.
	if e.st.Phase == Snapping {
		return
	}
	e.tracking = true
	e.claimed = false
	e.source = src
	e.anchorX = x
	e.anchorY = y
	e.lastAt = now
	e.rejected = false
}

// PointerMove feeds pointer movement. Before intent is claimed it decides
// between claiming the gesture (vertical dominance) and releasing the
// input back to default scrolling (horizontal dominance).
func (e *Engine) PointerMove(x, y float64, now time.Time) {
	e.move(x, y, now)
}

// TouchMove feeds touch movement.
func (e *Engine) TouchMove(x, y float64, now time.Time) {
	e.move(x, y, now)
}

func (e *Engine) move(x, y float64, now time.Time) {
	if !e.tracking {
		return
	}

	if !e.claimed {
		dx := math.Abs(x - e.anchorX)
		dy := math.Abs(y - e.anchorY)
		if dy < e.params.IntentThresholdPx && dx < e.params.IntentThresholdPx {
			return // still ambiguous
		}
		if dx >= dy {
			// Diagonal or horizontal: not ours, release to the page.
			e.tracking = false
			return
		}
		if e.disabled {
			e.reject()
			e.tracking = false
			return
		}
		e.claim(now)
	}

	raw := (e.anchorY - y) / (e.params.ThresholdPx * e.params.SlowdownFactor)
	e.applyProgress(raw, now)
}

// PointerUp ends a pointer gesture and runs the commit decision if the
// gesture was claimed.
func (e *Engine) PointerUp(now time.Time) {
	e.release(now)
}

// TouchEnd ends a touch gesture.
func (e *Engine) TouchEnd(now time.Time) {
	e.release(now)
}

func (e *Engine) release(now time.Time) {
	if !e.tracking {
		return
	}
	e.tracking = false
	if !e.claimed {
		return
	}
	e.claimed = false
	e.decide(now)
}

// Wheel feeds a wheel tick. Deltas accumulate into progress like drag
// deltas; the commit decision is deferred to a single evaluation after the
// burst goes idle.
func (e *Engine) Wheel(deltaY float64, now time.Time) {
	if e.deckLen == 0 || e.st.Phase == Snapping {
		return
	}
	if e.disabled {
		e.reject()
		e.wheelIdle.Arm(now.Add(e.params.WheelIdle))
		return
	}

	if e.st.Phase == Idle {
		e.claim(now)
		e.source = SourceWheel
	}

	raw := e.rawProgress() + deltaY/(e.params.ThresholdPx*e.params.SlowdownFactor)
	e.applyProgress(raw, now)
	e.wheelIdle.Arm(now.Add(e.params.WheelIdle))
}

// SetVisibility reports the visible fraction of the carousel. Dropping
// below the guard threshold aborts any in-progress gesture on the next
// Step without a commit.
func (e *Engine) SetVisibility(fraction float64) {
	e.visibility = fraction
}

// SetViewportResizing flags that viewport chrome is actively resizing
// (mobile browser toolbar). Gestures abort while the flag is set.
func (e *Engine) SetViewportResizing(busy bool) {
	e.viewportBusy = busy
}

// SetExternalIndex applies an externally requested index change. It is
// ignored inside the post-commit guard window and while a gesture or tween
// is in flight. Reports whether the change was applied.
func (e *Engine) SetExternalIndex(index int, now time.Time) bool {
	if e.deckLen == 0 {
		return false
	}
	if now.Before(e.st.GuardUntil) {
		return false
	}
	if e.st.Phase != Idle {
		return false
	}
	prev := e.st.ActiveIndex
	e.st.ActiveIndex = wrap(index, e.deckLen)
	if e.st.ActiveIndex != prev && e.onCommit != nil {
		e.onCommit(prev, e.st.ActiveIndex)
	}
	e.emitSignal(signal.Stable{Index: e.st.ActiveIndex})
	return true
}

// Step advances the wheel-idle timer and any running snap tween. It
// returns true while the engine still needs frames.
func (e *Engine) Step(now time.Time) bool {
	if e.viewportBusy || e.visibility < e.params.MinVisibility {
		e.abort()
	}

	if e.wheelIdle.Fire(now) {
		e.rejected = false
		if e.st.Phase == Dragging && e.source == SourceWheel {
			e.decide(now)
		}
	}

	if e.tween.active {
		e.advanceTween(now)
	}

	return e.st.Phase != Idle || e.wheelIdle.Armed()
}

// claim marks the gesture as owning the carousel.
func (e *Engine) claim(now time.Time) {
	e.claimed = true
	e.st.Phase = Dragging
	e.st.GestureID++
	e.st.Velocity = 0
	e.lastAt = now
}

// applyProgress soft-caps and stores a new progress value and updates the
// velocity EMA.
func (e *Engine) applyProgress(raw float64, now time.Time) {
	p := e.params.softCap(raw)

	if dt := now.Sub(e.lastAt).Seconds(); dt > 0 {
		sample := (p - e.st.Progress) / dt
		blend := e.params.VelocityBlend
		e.st.Velocity = (1-blend)*e.st.Velocity + blend*sample
	}
	e.st.Progress = p
	e.lastAt = now
}

// rawProgress inverts the soft cap so wheel deltas can keep accumulating
// past the soft bound without sticking.
func (e *Engine) rawProgress() float64 {
	return e.params.softCapInverse(e.st.Progress)
}

// decide runs the one-step commit decision and starts the snap tween.
func (e *Engine) decide(now time.Time) {
	p := e.st.Progress
	s := p + e.params.VelocityGain*e.st.Velocity

	step := 0
	switch {
	case e.deckLen <= 1:
		// Flip decision disabled: always snap back.
	case math.Abs(p) < e.params.DeadZone:
		// Dead zone: cancel.
	case math.Abs(s) >= e.params.CommitThreshold && math.Abs(p) >= e.params.MinCommitDistance:
		if s > 0 {
			step = 1
		} else {
			step = -1
		}
	}

	to := float64(step)
	e.st.Phase = Snapping
	e.tween = snapTween{
		active: true,
		from:   p,
		to:     to,
		step:   step,
		start:  now,
		dur:    e.params.SnapDuration,
	}
}

// advanceTween moves the snap tween forward and settles it at completion.
func (e *Engine) advanceTween(now time.Time) {
	t := 1.0
	if e.tween.dur > 0 {
		t = now.Sub(e.tween.start).Seconds() / e.tween.dur.Seconds()
	}
	if t < 1 {
		if t < 0 {
			t = 0
		}
		e.st.Progress = e.tween.from + (e.tween.to-e.tween.from)*easeOutCubic(t)
		return
	}

	// Settle. Exactly one step per commit regardless of gesture energy.
	step := e.tween.step
	e.tween = snapTween{}
	e.st.Progress = 0
	e.st.Velocity = 0
	e.st.Phase = Idle

	if step != 0 {
		prev := e.st.ActiveIndex
		e.st.ActiveIndex = wrap(prev+step, e.deckLen)
		e.st.GuardUntil = now.Add(e.params.GuardWindow)
		if e.onCommit != nil {
			e.onCommit(prev, e.st.ActiveIndex)
		}
	}
	e.emitSignal(signal.Stable{Index: e.st.ActiveIndex})
}

// abort force-resets an in-progress gesture without a commit.
func (e *Engine) abort() {
	if e.st.Phase == Idle && !e.tracking {
		return
	}
	e.tracking = false
	e.claimed = false
	e.rejected = false
	e.tween = snapTween{}
	e.wheelIdle.Cancel()
	e.st.Progress = 0
	e.st.Velocity = 0
	e.st.Phase = Idle
}

func (e *Engine) reject() {
	if e.rejected {
		return
	}
	e.rejected = true
	e.emitSignal(signal.Rejected{})
}

func (e *Engine) emitSignal(s signal.Signal) {
	if e.emit != nil {
		e.emit(s)
	}
}

// softCap hard-clamps raw progress and applies a rational ease above the
// soft bound so the last stretch of travel decelerates instead of
// hard-stopping. The eased value approaches but never reaches MaxProgress.
func (p Params) softCap(raw float64) float64 {
	a := math.Abs(raw)
	if a <= p.SoftCapStart {
		return raw
	}
	span := p.MaxProgress - p.SoftCapStart
	excess := a - p.SoftCapStart
	capped := p.SoftCapStart + span*excess/(excess+span)
	if capped > p.MaxProgress {
		capped = p.MaxProgress
	}
	return math.Copysign(capped, raw)
}

// softCapInverse maps a capped progress value back to raw travel.
func (p Params) softCapInverse(capped float64) float64 {
	a := math.Abs(capped)
	if a <= p.SoftCapStart {
		return capped
	}
	span := p.MaxProgress - p.SoftCapStart
	over := a - p.SoftCapStart
	if over >= span {
		over = span - 1e-9
	}
	raw := p.SoftCapStart + span*over/(span-over)
	return math.Copysign(raw, capped)
}

func easeOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

func wrap(i, n int) int {
	if n <= 0 {
		return 0
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
