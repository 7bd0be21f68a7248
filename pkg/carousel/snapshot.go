package carousel

import (
	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/pkg/gesture"
	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/pkg/media"
	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/pkg/orbit"
	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/pkg/pinning"
)

// OrbitState is the orbit rotation snapshot.
type OrbitState struct {
	NaturalOffset float64 `json:"natural_offset"`
	UserOffset    float64 `json:"user_offset"`
	UserVelocity  float64 `json:"user_velocity"`
}

// Snapshot is a read-only view of the whole carousel for one frame. It is
// what the web surface broadcasts and what the status API reports.
type Snapshot struct {
	State      gesture.State     `json:"state"`
	Pin        pinning.Pin       `json:"pin"`
	Orbit      OrbitState        `json:"orbit"`
	Transforms []CardTransform   `json:"transforms"`
	Tokens     []orbit.Placement `json:"tokens"`
	Media      []media.Change    `json:"media,omitempty"`
	Theme      Theme             `json:"theme"`
	Disabled   bool              `json:"disabled"`
}

// Snapshot captures the current frame state.
func (c *Carousel) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	transforms := make([]CardTransform, len(c.transforms))
	copy(transforms, c.transforms)

	return Snapshot{
		State: c.engine.State(),
		Pin:   c.pins.Pin(),
		Orbit: OrbitState{
			NaturalOffset: c.ring.NaturalOffset(),
			UserOffset:    c.ring.UserOffset(),
			UserVelocity:  c.ring.UserVelocity(),
		},
		Transforms: transforms,
		Tokens:     c.ring.Positions(),
		Media:      c.mediaChanges,
		Theme:      c.theme,
		Disabled:   c.engine.Disabled(),
	}
}

// ActiveIndex returns the current active card index.
func (c *Carousel) ActiveIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.State().ActiveIndex
}

// Tuning is the runtime-adjustable parameter set exposed by the tuning
// API. Zero-valued sections are left untouched on apply.
type Tuning struct {
	Gesture *gesture.Params `json:"gesture,omitempty"`
	Pinning *pinning.Params `json:"pinning,omitempty"`
	Media   *media.Params   `json:"media,omitempty"`
	Orbit   *orbit.Params   `json:"orbit,omitempty"`
	Layout  *Layout         `json:"layout,omitempty"`
}

// GetTuning returns the live parameter sets.
func (c *Carousel) GetTuning() Tuning {
	c.mu.Lock()
	defer c.mu.Unlock()

	g := c.engine.Params()
	p := c.pins.Params()
	m := c.media.Params()
	o := c.ring.Params()
	l := c.layout
	return Tuning{Gesture: &g, Pinning: &p, Media: &m, Orbit: &o, Layout: &l}
}

// SetTuning applies the non-nil sections.
func (c *Carousel) SetTuning(t Tuning) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t.Gesture != nil {
		c.engine.SetParams(*t.Gesture)
	}
	if t.Pinning != nil {
		c.pins.SetParams(*t.Pinning)
	}
	if t.Media != nil {
		c.media.SetParams(*t.Media)
	}
	if t.Orbit != nil {
		c.ring.SetParams(*t.Orbit)
	}
	if t.Layout != nil {
		c.layout = *t.Layout
	}
}
