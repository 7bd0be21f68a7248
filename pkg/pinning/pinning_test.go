package pinning

import (
	"math"
	"testing"
	"time"

	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/pkg/signal"
)

type aspectStub struct {
	aspect float64
	known  bool
}

func (a *aspectStub) Aspect() (float64, bool) { return a.aspect, a.known }

func newTestController() (*Controller, *[]signal.Pinned) {
	var pins []signal.Pinned
	c := NewController(DefaultParams(), func(s signal.Signal) {
		if p, ok := s.(signal.Pinned); ok {
			pins = append(pins, p)
		}
	})
	return c, &pins
}

func TestPinFormula(t *testing.T) {
	tests := []struct {
		name       string
		vp         Viewport
		aspect     float64
		wantW      float64
		wantH      float64
	}{
		// Landscape viewport, square media: height is the limiting side.
		{"square media", Viewport{1200, 800}, 1.0, 400, 400},
		// Wide media relaxes the height constraint until width limits.
		{"wide media", Viewport{1200, 800}, 16.0 / 9.0, 600, 337.5},
		// Portrait media: height constraint dominates hard.
		{"portrait media", Viewport{1200, 800}, 0.5625, 225, 400},
		// Tiny viewport clamps to the minimum width.
		{"min clamp", Viewport{400, 300}, 1.0, 220, 220},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestController()
			c.TrackCard(&aspectStub{tt.aspect, true}, time.Unix(0, 0))
			c.SetViewport(tt.vp, time.Unix(0, 0))

			pin := c.Pin()
			if !pin.Active {
				t.Fatal("pin not active")
			}
			if math.Abs(pin.Width-tt.wantW) > 0.01 {
				t.Errorf("width = %v, want %v", pin.Width, tt.wantW)
			}
			if math.Abs(pin.Height-tt.wantH) > 0.01 {
				t.Errorf("height = %v, want %v", pin.Height, tt.wantH)
			}
		})
	}
}

func TestJitterUnderThresholdIgnored(t *testing.T) {
	c, pins := newTestController()
	base := time.Unix(0, 0)

	c.TrackCard(nil, base)
	c.SetViewport(Viewport{1200, 800}, base)
	w := c.Pin().Width
	n := len(*pins)

	// 1% viewport wobble stays under the 3% re-pin threshold.
	c.SetViewport(Viewport{1208, 804}, base.Add(time.Second))
	if c.Pin().Width != w {
		t.Errorf("pin moved on sub-threshold jitter: %v -> %v", w, c.Pin().Width)
	}
	if len(*pins) != n {
		t.Error("sub-threshold jitter broadcast a pin")
	}

	// A real resize re-pins.
	c.SetViewport(Viewport{900, 700}, base.Add(2*time.Second))
	if c.Pin().Width == w {
		t.Error("pin unchanged on material resize")
	}
}

func TestDoubleBroadcast(t *testing.T) {
	c, pins := newTestController()
	base := time.Unix(0, 0)

	c.TrackCard(nil, base)
	c.SetViewport(Viewport{1200, 800}, base)

	if len(*pins) != 1 {
		t.Fatalf("broadcasts after pin = %d, want 1 immediate", len(*pins))
	}

	c.Step(base.Add(16 * time.Millisecond))
	if len(*pins) != 2 {
		t.Fatalf("broadcasts after next frame = %d, want 2", len(*pins))
	}
	if (*pins)[0] != (*pins)[1] {
		t.Errorf("second broadcast differs: %+v vs %+v", (*pins)[0], (*pins)[1])
	}

	// No third.
	c.Step(base.Add(32 * time.Millisecond))
	if len(*pins) != 2 {
		t.Errorf("broadcasts = %d after settling, want 2", len(*pins))
	}
}

func TestAspectWaitResolves(t *testing.T) {
	c, _ := newTestController()
	base := time.Unix(0, 0)

	src := &aspectStub{known: false}
	c.TrackCard(src, base)
	c.SetViewport(Viewport{1200, 800}, base)

	if c.Pin().Active {
		t.Fatal("pinned while waiting for the aspect")
	}
	if !c.Step(base.Add(16 * time.Millisecond)) {
		t.Fatal("controller stopped requesting frames while waiting for aspect")
	}

	src.aspect = 16.0 / 9.0
	src.known = true
	c.Step(base.Add(32 * time.Millisecond))

	pin := c.Pin()
	if math.Abs(pin.Width-600) > 0.01 {
		t.Errorf("width = %v after aspect resolved, want 600", pin.Width)
	}
}

func TestAspectTimeoutFallsBackToDefault(t *testing.T) {
	c, _ := newTestController()
	base := time.Unix(0, 0)

	c.TrackCard(&aspectStub{known: false}, base)
	c.SetViewport(Viewport{1200, 800}, base)

	// Before the timeout the wait is still pending.
	c.Step(base.Add(100 * time.Millisecond))
	if c.Pin().Active {
		t.Fatal("pinned before the timeout")
	}

	c.Step(base.Add(400 * time.Millisecond))
	pin := c.Pin()
	if math.Abs(pin.Width-400) > 0.01 || math.Abs(pin.Height-400) > 0.01 {
		t.Errorf("pin = %+v after timeout, want 400x400 default-aspect box", pin)
	}
}

func TestMedialessCardPinsImmediately(t *testing.T) {
	c, _ := newTestController()
	base := time.Unix(0, 0)
	c.SetViewport(Viewport{1200, 800}, base)

	c.TrackCard(nil, base)
	pin := c.Pin()
	if !pin.Active {
		t.Fatal("no pin for medialess card")
	}
	if math.Abs(pin.Width-400) > 0.01 {
		t.Errorf("width = %v, want 400 (default aspect)", pin.Width)
	}
}

func TestZeroViewportNeverPins(t *testing.T) {
	c, pins := newTestController()
	base := time.Unix(0, 0)

	c.TrackCard(nil, base)
	if c.Pin().Active {
		t.Error("pinned with no viewport")
	}
	if len(*pins) != 0 {
		t.Error("broadcast with no viewport")
	}
}

func TestBadAspectUsesDefault(t *testing.T) {
	c, _ := newTestController()
	base := time.Unix(0, 0)
	c.SetViewport(Viewport{1200, 800}, base)

	c.TrackCard(&aspectStub{aspect: -2, known: true}, base)
	if got := c.Pin().Width; math.Abs(got-400) > 0.01 {
		t.Errorf("width = %v with invalid aspect, want 400", got)
	}
}
