// Package media decides playback, mute and preload priority for the cards
// around the active position. Decisions are a pure function of the
// (possibly fractional, mid-drag) distance from the active card; the
// orchestrator's only state is the previous frame's plan, kept so that
// transitions are surfaced exactly when a decision actually changes.
package media

import (
	"math"
	"sort"
)

// Preload is a card's media preload priority.
type Preload string

const (
	PreloadMetadata Preload = "metadata"
	PreloadAuto     Preload = "auto"
)

// Params holds the orchestration tunables.
type Params struct {
	PlayRadius     float64 `json:"play_radius"`      // Play below this distance
	DragPlayRadius float64 `json:"drag_play_radius"` // Wider while dragging (pre-roll)
	AutoRadius     float64 `json:"auto_radius"`      // Preload auto once active is ready
	WindowRadius   int     `json:"window_radius"`    // Cards considered at all
}

// DefaultParams returns the tuned orchestration parameters.
func DefaultParams() Params {
	return Params{
		PlayRadius:     0.5,
		DragPlayRadius: 1.2,
		AutoRadius:     2,
		WindowRadius:   3,
	}
}

// Decision is the per-card playback decision for one frame.
type Decision struct {
	Index   int     `json:"index"`
	Play    bool    `json:"play"`
	Muted   bool    `json:"muted"`
	Preload Preload `json:"preload"`
}

// Plan maps card index to its current decision.
type Plan map[int]Decision

// Change is a decision that differs from the previous frame.
type Change struct {
	Decision
	// Entered is true when the card just came into the window; false for
	// an in-window transition. Cards leaving the window are reported with
	// a zero-value Decision apart from the index.
	Entered bool
	Left    bool
}

// Orchestrator tracks decision diffs for one carousel.
type Orchestrator struct {
	params Params
	prev   Plan
}

// New creates an orchestrator.
func New(params Params) *Orchestrator {
	return &Orchestrator{params: params, prev: Plan{}}
}

// Params returns the current tunables.
func (o *Orchestrator) Params() Params { return o.params }

// SetParams replaces the tunables.
func (o *Orchestrator) SetParams(p Params) { o.params = p }

// Plan computes the decisions for one frame and returns only the changes
// against the previous frame. activePos is the fractional active position;
// activeReady reports whether the active card's media is known ready.
func (o *Orchestrator) Plan(deckLen int, activePos float64, dragging, activeReady bool) (Plan, []Change) {
	plan := Plan{}
	if deckLen > 0 {
		active := int(math.Round(activePos))
		for offset := -o.params.WindowRadius; offset <= o.params.WindowRadius; offset++ {
			idx := wrap(active+offset, deckLen)
			if _, dup := plan[idx]; dup {
				continue // small decks: window wraps onto itself
			}
			d := cyclicDistance(idx, activePos, deckLen)
			plan[idx] = o.decide(idx, d, active == idx, dragging, activeReady)
		}
	}

	changes := o.diff(plan)
	o.prev = plan
	return plan, changes
}

// decide is the pure per-card decision.
func (o *Orchestrator) decide(idx int, d float64, isActive, dragging, activeReady bool) Decision {
	playRadius := o.params.PlayRadius
	if dragging {
		playRadius = o.params.DragPlayRadius
	}

	preload := PreloadMetadata
	if isActive || (activeReady && d <= o.params.AutoRadius) {
		preload = PreloadAuto
	}

	return Decision{
		Index: idx,
		Play:  d < playRadius,
		// Exactly one card is ever unmuted.
		Muted:   !isActive,
		Preload: preload,
	}
}

// diff reports decisions that changed since the previous frame, ordered by
// index so consumers see a stable sequence.
func (o *Orchestrator) diff(plan Plan) []Change {
	var changes []Change
	for idx, d := range plan {
		prev, seen := o.prev[idx]
		if !seen {
			changes = append(changes, Change{Decision: d, Entered: true})
		} else if prev != d {
			changes = append(changes, Change{Decision: d})
		}
	}
	for idx := range o.prev {
		if _, still := plan[idx]; !still {
			changes = append(changes, Change{Decision: Decision{Index: idx, Muted: true, Preload: PreloadMetadata}, Left: true})
		}
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].Index < changes[j].Index })
	return changes
}

// cyclicDistance is the absolute shortest distance between a card index and
// the fractional active position on a cyclic deck.
func cyclicDistance(idx int, activePos float64, n int) float64 {
	diff := math.Mod(float64(idx)-activePos, float64(n))
	if diff > float64(n)/2 {
		diff -= float64(n)
	} else if diff < -float64(n)/2 {
		diff += float64(n)
	}
	return math.Abs(diff)
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
