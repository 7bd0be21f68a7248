package gesture

import "time"

// Params holds all tunable constants of the gesture state machine. The
// numeric values are aesthetic choices for a specific feel, not correctness
// constraints, so everything is named and overridable at runtime via the
// tuning API.
type Params struct {
	// Intent detection
	IntentThresholdPx float64 `json:"intent_threshold_px"` // Movement needed to claim a gesture
	// Progress mapping
	ThresholdPx    float64 `json:"threshold_px"`    // Drag pixels for one progress unit
	SlowdownFactor float64 `json:"slowdown_factor"` // Extra drag resistance multiplier

	// Progress bounds
	MaxProgress  float64 `json:"max_progress"`   // Hard cap (|progress| never exceeds this)
	SoftCapStart float64 `json:"soft_cap_start"` // Easing kicks in above this

	// Velocity estimation
	VelocityBlend float64 `json:"velocity_blend"` // EMA weight of the newest sample
	VelocityGain  float64 `json:"velocity_gain"`  // k in s = progress + k*velocity

	// Commit decision
	CommitThreshold   float64 `json:"commit_threshold"`    // |s| needed to flip
	DeadZone          float64 `json:"dead_zone"`           // Always cancel below this
	MinCommitDistance float64 `json:"min_commit_distance"` // Velocity alone never commits

	// Timing
	SnapDuration time.Duration `json:"-"` // Ease-out tween length
	WheelIdle    time.Duration `json:"-"` // Wheel burst coalescing window
	GuardWindow  time.Duration `json:"-"` // External index changes ignored after a commit

	// Visibility guard
	MinVisibility float64 `json:"min_visibility"` // Abort gestures below this fraction
}

// DefaultParams returns the tuned parameter set.
func DefaultParams() Params {
	return Params{
		IntentThresholdPx: 8,

		ThresholdPx:    160,
		SlowdownFactor: 1.35,

		MaxProgress:  0.99,
		SoftCapStart: 0.85,

		VelocityBlend: 0.4,
		VelocityGain:  0.25,

		CommitThreshold:   0.58,
		DeadZone:          0.08,
		MinCommitDistance: 0.08,

		SnapDuration: 200 * time.Millisecond,
		WheelIdle:    110 * time.Millisecond,
		GuardWindow:  350 * time.Millisecond,

		MinVisibility: 0.85,
	}
}
