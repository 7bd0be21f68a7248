// Package signal carries the cross-component broadcasts of the carousel
// engine as a closed set of typed variants. There are no stringly-typed
// event names: a consumer switches on the concrete signal type and the
// compiler knows every payload shape.
package signal

// Signal is one of the engine broadcast variants: Pinned, Stable or
// Rejected. The interface is sealed — only types in this package satisfy it.
type Signal interface {
	isSignal()
}

// Pinned is broadcast by the dimension pinning protocol whenever the
// carousel box size is (re)computed.
type Pinned struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Stable is broadcast once a commit or cancel has fully settled.
type Stable struct {
	Index int `json:"index"`
}

// Rejected is broadcast when a gesture lands on a disabled carousel.
type Rejected struct{}

func (Pinned) isSignal()   {}
func (Stable) isSignal()   {}
func (Rejected) isSignal() {}
