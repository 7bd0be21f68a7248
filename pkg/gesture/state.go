package gesture

import "time"

// Phase is the gesture state machine phase.
type Phase int

const (
	// Idle means no gesture is active; progress is exactly 0.
	Idle Phase = iota
	// Dragging means a pointer, touch or wheel gesture owns the carousel.
	Dragging
	// Snapping means a commit or cancel tween is running.
	Snapping
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Snapping:
		return "snapping"
	default:
		return "unknown"
	}
}

// State is the interaction state of one carousel instance. It is owned by
// the Engine and only mutated through its event methods and Step.
type State struct {
	// Progress is the signed fractional distance toward a neighboring
	// card. Positive values move toward the next card.
	Progress float64 `json:"progress"`

	// Velocity is the exponentially smoothed d(progress)/dt in units/s.
	Velocity float64 `json:"velocity"`

	// Phase is the current state machine phase.
	Phase Phase `json:"phase"`

	// ActiveIndex is the card anchored at progress 0.
	ActiveIndex int `json:"active_index"`

	// GuardUntil suppresses external index changes until this instant,
	// preventing races right after a self-initiated commit.
	GuardUntil time.Time `json:"-"`

	// GestureID increases monotonically each time a gesture claims the
	// carousel; stale callbacks from a previous gesture compare against it.
	GestureID uint64 `json:"gesture_id"`
}
