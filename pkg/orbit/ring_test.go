package orbit

import (
	"math"
	"testing"
	"time"

	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/pkg/pinning"
)

func fourTokens() []Token {
	return []Token{
		{Fill: 25, Color: "#ff5a5f"},
		{Fill: 50, Color: "#ffb400"},
		{Fill: 75, Color: "#00d1b2"},
		{Fill: 100, Color: "#7a5cff"},
	}
}

// run advances the ring at a fixed frame interval for the given duration.
func run(r *Ring, from time.Time, d, interval time.Duration) time.Time {
	now := from
	for elapsed := time.Duration(0); elapsed < d; elapsed += interval {
		now = now.Add(interval)
		r.Step(now)
	}
	return now
}

func TestNaturalRotationRate(t *testing.T) {
	r := NewRing(DefaultParams(), fourTokens())
	base := time.Unix(0, 0)

	r.Step(base) // prime lastStep
	run(r, base, 2*time.Second, 10*time.Millisecond)

	want := DefaultParams().Speed * 2.0
	if got := r.NaturalOffset(); math.Abs(got-want) > 1e-9 {
		t.Errorf("natural offset after 2s = %v, want %v", got, want)
	}
}

func TestSpinDecaysAndFoldsIn(t *testing.T) {
	r := NewRing(DefaultParams(), fourTokens())
	base := time.Unix(0, 0)
	r.Step(base)

	// A drag that leaves residual velocity.
	r.DragStart()
	r.Drag(0.4, base.Add(50*time.Millisecond))
	r.DragEnd(base.Add(60 * time.Millisecond))

	if r.UserOffset() == 0 {
		t.Fatal("setup: drag applied no offset")
	}

	run(r, base, 5*time.Second, 10*time.Millisecond)

	if got := r.UserVelocity(); got != 0 {
		t.Errorf("user velocity = %v after spin-down, want 0", got)
	}
	if got := r.UserOffset(); got != 0 {
		t.Errorf("user offset = %v after spin-down, want 0 (folded into natural)", got)
	}
	// The folded offset is preserved: total rotation includes the drag.
	if r.NaturalOffset() < 0.4 {
		t.Errorf("natural offset = %v, want residual drag folded in", r.NaturalOffset())
	}
}

func TestHoverPausesImmediately(t *testing.T) {
	r := NewRing(DefaultParams(), fourTokens())
	base := time.Unix(0, 0)
	r.Step(base)

	r.HoverStart()
	run(r, base, time.Second, 10*time.Millisecond)

	if got := r.NaturalOffset(); got != 0 {
		t.Errorf("natural offset advanced %v while hovered, want 0", got)
	}
}

func TestHoverGraceDelaysResume(t *testing.T) {
	r := NewRing(DefaultParams(), fourTokens())
	base := time.Unix(0, 0)
	r.Step(base)

	r.HoverStart()
	now := run(r, base, time.Second, 10*time.Millisecond)
	r.HoverEnd(now)

	// Within the grace period rotation stays paused.
	now = run(r, now, 100*time.Millisecond, 10*time.Millisecond)
	if got := r.NaturalOffset(); got != 0 {
		t.Errorf("natural offset advanced %v inside hover grace, want 0", got)
	}

	// Past the grace period it resumes.
	run(r, now, time.Second, 10*time.Millisecond)
	if r.NaturalOffset() == 0 {
		t.Error("rotation never resumed after hover grace")
	}
}

func TestHoverToggleDoesNotFlicker(t *testing.T) {
	r := NewRing(DefaultParams(), fourTokens())
	base := time.Unix(0, 0)
	r.Step(base)

	// Rapid out-and-back within the grace window.
	r.HoverStart()
	now := run(r, base, 200*time.Millisecond, 10*time.Millisecond)
	r.HoverEnd(now)
	now = run(r, now, 50*time.Millisecond, 10*time.Millisecond)
	r.HoverStart()
	run(r, now, time.Second, 10*time.Millisecond)

	if got := r.NaturalOffset(); got != 0 {
		t.Errorf("natural offset advanced %v across hover toggle, want 0", got)
	}
}

func TestWheelSignDependsOnSide(t *testing.T) {
	base := time.Unix(0, 0)

	right := NewRing(DefaultParams(), fourTokens())
	right.Step(base)
	right.Wheel(120, 900, 600, base.Add(10*time.Millisecond))

	left := NewRing(DefaultParams(), fourTokens())
	left.Step(base)
	left.Wheel(120, 300, 600, base.Add(10*time.Millisecond))

	if right.UserOffset() <= 0 {
		t.Errorf("right-side wheel offset = %v, want > 0", right.UserOffset())
	}
	if left.UserOffset() >= 0 {
		t.Errorf("left-side wheel offset = %v, want < 0", left.UserOffset())
	}
	if math.Abs(right.UserOffset()+left.UserOffset()) > 1e-12 {
		t.Errorf("side asymmetry: %v vs %v", right.UserOffset(), left.UserOffset())
	}
}

func TestPositionsOnEllipse(t *testing.T) {
	p := DefaultParams()
	r := NewRing(p, fourTokens())

	if r.Positions() != nil {
		t.Error("positions computed without an active pin")
	}

	r.ApplyPin(pinning.Pin{Width: 400, Height: 500, Active: true})
	placements := r.Positions()
	if len(placements) != 4 {
		t.Fatalf("placements = %d, want 4", len(placements))
	}

	rx := 400 * p.RadiusScaleX
	ry := 500 * p.RadiusScaleY
	for i, pl := range placements {
		// Every token sits on the ellipse.
		e := (pl.X/rx)*(pl.X/rx) + (pl.Y/ry)*(pl.Y/ry)
		if math.Abs(e-1) > 1e-9 {
			t.Errorf("token %d off the ellipse: %v", i, e)
		}
	}

	// Equal angular spacing.
	step := placements[1].Angle - placements[0].Angle
	if math.Abs(step-math.Pi/2) > 1e-9 {
		t.Errorf("angular step = %v, want pi/2", step)
	}

	// Presentation values pass through untouched.
	if placements[2].Fill != 75 || placements[3].Color != "#7a5cff" {
		t.Error("token presentation values not carried into placements")
	}
}

func TestSetTokenFillClamps(t *testing.T) {
	r := NewRing(DefaultParams(), fourTokens())
	r.ApplyPin(pinning.Pin{Width: 400, Height: 400, Active: true})

	r.SetTokenFill(0, 150)
	r.SetTokenFill(1, -10)
	r.SetTokenFill(99, 50) // out of range, ignored

	pl := r.Positions()
	if pl[0].Fill != 100 {
		t.Errorf("fill = %v, want clamped to 100", pl[0].Fill)
	}
	if pl[1].Fill != 0 {
		t.Errorf("fill = %v, want clamped to 0", pl[1].Fill)
	}
}

func TestStalledFrameDoesNotJump(t *testing.T) {
	r := NewRing(DefaultParams(), fourTokens())
	base := time.Unix(0, 0)
	r.Step(base)

	// A multi-second stall (tab in background) must not advance rotation
	// by the full gap.
	r.Step(base.Add(5 * time.Second))
	if got := r.NaturalOffset(); got != 0 {
		t.Errorf("natural offset = %v after stalled frame, want 0", got)
	}
}
