package orbit

import "time"

// Params holds the orbit feel tunables. Like the gesture constants these
// are aesthetic choices, named and overridable rather than inlined.
type Params struct {
	Speed       float64 `json:"speed"`        // Natural rotation, rad/s
	Friction    float64 `json:"friction"`     // Free-spin decay, 1/s
	StopEpsilon float64 `json:"stop_epsilon"` // Velocity below this folds in, rad/s

	WheelGain     float64 `json:"wheel_gain"`     // Wheel px to radians
	VelocityBlend float64 `json:"velocity_blend"` // EMA weight of new samples

	// Ellipse radii as fractions of the pinned box.
	RadiusScaleX float64 `json:"radius_scale_x"`
	RadiusScaleY float64 `json:"radius_scale_y"`

	HoverGrace time.Duration `json:"-"` // Resume delay after hover ends
}

// DefaultParams returns the tuned orbit parameters.
func DefaultParams() Params {
	return Params{
		Speed:         0.3,
		Friction:      1.8,
		StopEpsilon:   0.003,
		WheelGain:     0.0045,
		VelocityBlend: 0.5,
		RadiusScaleX:  0.72,
		RadiusScaleY:  0.62,
		HoverGrace:    150 * time.Millisecond,
	}
}
