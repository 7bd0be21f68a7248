// Package orbit positions satellite tokens on an ellipse around the pinned
// carousel box and animates their rotation.
//
// The rotation has two additive components: a natural offset that advances
// at constant speed, and a user offset driven by drag/wheel interaction
// that decays like a damped free spin. When the spin dies out the residual
// user offset folds into the natural offset instead of springing back, so
// the orbit keeps its continuously-drifting feel.
package orbit

import (
	"math"
	"time"

	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/pkg/frame"
	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/pkg/pinning"
)

// Token is one satellite marker. Fill and color are externally supplied
// presentation values; the engine never interprets them.
type Token struct {
	Fill  float64 `json:"fill"` // 0-100
	Color string  `json:"color"`
}

// Placement is a token's computed screen position for one frame, relative
// to the pinned box center.
type Placement struct {
	Angle float64 `json:"angle"` // radians
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Fill  float64 `json:"fill"`
	Color string  `json:"color"`
}

// Ring owns the orbit state for one carousel.
type Ring struct {
	params Params
	tokens []Token

	natural float64
	user    float64
	userVel float64

	pin pinning.Pin

	hovered    bool
	dragging   bool
	paused     bool
	hoverGrace frame.Deadline

	lastStep time.Time
}

// NewRing creates a ring with the given tokens laid out at equal angular
// spacing.
func NewRing(params Params, tokens []Token) *Ring {
	return &Ring{params: params, tokens: tokens}
}

// Params returns the current tunables.
func (r *Ring) Params() Params { return r.params }

// SetParams replaces the tunables.
func (r *Ring) SetParams(p Params) { r.params = p }

// NaturalOffset returns the constant-speed rotation component.
func (r *Ring) NaturalOffset() float64 { return r.natural }

// UserOffset returns the interaction-driven rotation component.
func (r *Ring) UserOffset() float64 { return r.user }

// UserVelocity returns the current free-spin velocity.
func (r *Ring) UserVelocity() float64 { return r.userVel }

// ApplyPin consumes a pinning broadcast to size the ellipse. The ring
// never measures layout itself.
func (r *Ring) ApplyPin(pin pinning.Pin) {
	r.pin = pin
}

// SetTokenFill updates one token's fill percentage, clamped to 0-100.
func (r *Ring) SetTokenFill(i int, fill float64) {
	if i < 0 || i >= len(r.tokens) {
		return
	}
	r.tokens[i].Fill = math.Max(0, math.Min(100, fill))
}

// HoverStart pauses natural rotation immediately.
func (r *Ring) HoverStart() {
	r.hovered = true
	r.paused = true
	r.hoverGrace.Cancel()
}

// HoverEnd schedules the resume after a short grace period, so rapid hover
// toggling does not flicker the rotation.
func (r *Ring) HoverEnd(now time.Time) {
	r.hovered = false
	r.hoverGrace.Arm(now.Add(r.params.HoverGrace))
}

// DragStart marks the beginning of a token drag; natural rotation pauses
// for its duration.
func (r *Ring) DragStart() {
	r.dragging = true
	r.paused = true
}

// Drag applies an angular drag delta and updates the spin velocity.
func (r *Ring) Drag(deltaRad float64, now time.Time) {
	if !r.dragging {
		return
	}
	r.user += deltaRad
	if dt := now.Sub(r.lastStep).Seconds(); dt > 0 {
		blend := r.params.VelocityBlend
		r.userVel = (1-blend)*r.userVel + blend*deltaRad/dt
	}
}

// DragEnd releases the drag; the accumulated velocity free-spins out.
func (r *Ring) DragEnd(now time.Time) {
	r.dragging = false
	r.hoverGrace.Arm(now.Add(r.params.HoverGrace))
}

// Wheel applies a wheel tick over a token. The tangential sign is resolved
// by which side of the center the pointer is on, so scrolling rotates the
// orbit the same visual way regardless of where it was grabbed.
func (r *Ring) Wheel(deltaY, pointerX, centerX float64, now time.Time) {
	sign := 1.0
	if pointerX < centerX {
		sign = -1.0
	}
	delta := sign * deltaY * r.params.WheelGain
	r.user += delta
	if dt := now.Sub(r.lastStep).Seconds(); dt > 0 {
		blend := r.params.VelocityBlend
		r.userVel = (1-blend)*r.userVel + blend*delta/dt
	}
}

// Step advances the rotation by the elapsed time. Returns true while the
// ring still animates (it normally always does; only a paused, spun-down
// ring goes quiet).
func (r *Ring) Step(now time.Time) bool {
	if r.lastStep.IsZero() {
		r.lastStep = now
		return true
	}
	dt := now.Sub(r.lastStep).Seconds()
	r.lastStep = now
	if dt <= 0 || dt > 0.5 {
		// Startup or a stalled frame; skip rather than jump.
		return true
	}

	if r.hoverGrace.Fire(now) && !r.hovered && !r.dragging {
		r.paused = false
	}

	if !r.paused {
		r.natural += r.params.Speed * dt
	}

	if !r.dragging {
		r.userVel *= 1 - r.params.Friction*dt
		if math.Abs(r.userVel) < r.params.StopEpsilon {
			r.userVel = 0
			if r.user != 0 {
				// Fold the residual offset in instead of springing back.
				r.natural += r.user
				r.user = 0
			}
		} else {
			r.user += r.userVel * dt
		}
	}

	return !r.paused || r.userVel != 0 || r.hoverGrace.Armed()
}

// Positions lays the tokens out at even angular spacing plus the combined
// offset, on an ellipse sized from the latest pin broadcast. A ring with
// no active pin returns nil.
func (r *Ring) Positions() []Placement {
	if !r.pin.Active || len(r.tokens) == 0 {
		return nil
	}
	rx := r.pin.Width * r.params.RadiusScaleX
	ry := r.pin.Height * r.params.RadiusScaleY
	step := 2 * math.Pi / float64(len(r.tokens))

	placements := make([]Placement, len(r.tokens))
	for i, tok := range r.tokens {
		angle := r.natural + r.user + float64(i)*step
		placements[i] = Placement{
			Angle: angle,
			X:     rx * math.Cos(angle),
			Y:     ry * math.Sin(angle),
			Fill:  tok.Fill,
			Color: tok.Color,
		}
	}
	return placements
}
