// Package protocol defines the WebSocket message types between the
// carousel engine and its rendering surface. The browser sends raw input
// events; the engine streams back per-frame transforms and the pin /
// stability / rejection broadcasts.
package protocol

import (
	"encoding/json"
	"fmt"
	"time"
)

// MessageType identifies the type of WebSocket message
type MessageType string

const (
	// Client → Engine messages
	TypePointer    MessageType = "pointer"    // Pointer down/move/up
	TypeTouch      MessageType = "touch"      // Touch start/move/end
	TypeWheel      MessageType = "wheel"      // Wheel tick
	TypeOrbit      MessageType = "orbit"      // Token hover/drag events
	TypeViewport   MessageType = "viewport"   // Resize / orientation
	TypeVisibility MessageType = "visibility" // Visible fraction
	TypeMedia      MessageType = "media"      // Media readiness / aspect
	TypeSetIndex   MessageType = "set_index"  // External index request

	// Engine → Client messages
	TypeFrame    MessageType = "frame"    // Per-frame transforms
	TypePinned   MessageType = "pinned"   // Pin broadcast
	TypeStable   MessageType = "stable"   // Commit/cancel settled
	TypeRejected MessageType = "rejected" // Gesture on a disabled carousel

	// Bidirectional
	TypePing MessageType = "ping"
	TypePong MessageType = "pong"
)

// Message is the base wrapper for all WebSocket messages
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp int64           `json:"ts,omitempty"` // Unix milliseconds
	Data      json.RawMessage `json:"data,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(msgType MessageType, data interface{}) (*Message, error) {
	var rawData json.RawMessage
	if data != nil {
		var err error
		rawData, err = json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal message data: %w", err)
		}
	}

	return &Message{
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
		Data:      rawData,
	}, nil
}

// ParseData unmarshals the message data into the provided struct
func (m *Message) ParseData(v interface{}) error {
	if m.Data == nil {
		return nil
	}
	return json.Unmarshal(m.Data, v)
}

// Bytes returns the JSON-encoded message
func (m *Message) Bytes() ([]byte, error) {
	return json.Marshal(m)
}

// ParseMessage parses a JSON message from bytes
func ParseMessage(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}
	return &msg, nil
}

// =============================================================================
// Client → Engine Message Types
// =============================================================================

// PointerPhase is the phase of a pointer or touch event.
type PointerPhase string

const (
	PhaseDown PointerPhase = "down"
	PhaseMove PointerPhase = "move"
	PhaseUp   PointerPhase = "up"
)

// PointerData carries one pointer event.
type PointerData struct {
	Phase PointerPhase `json:"phase"`
	X     float64      `json:"x"`
	Y     float64      `json:"y"`
}

// TouchData carries one single-touch event.
type TouchData struct {
	Phase PointerPhase `json:"phase"`
	X     float64      `json:"x"`
	Y     float64      `json:"y"`
}

// WheelData carries one wheel tick. OverToken routes the tick to the orbit
// ring instead of the carousel.
type WheelData struct {
	DeltaY    float64 `json:"delta_y"`
	X         float64 `json:"x"` // pointer x, viewport coordinates
	OverToken bool    `json:"over_token,omitempty"`
}

// OrbitPhase is an orbit interaction kind.
type OrbitPhase string

const (
	OrbitHoverStart OrbitPhase = "hover_start"
	OrbitHoverEnd   OrbitPhase = "hover_end"
	OrbitDragStart  OrbitPhase = "drag_start"
	OrbitDragMove   OrbitPhase = "drag_move"
	OrbitDragEnd    OrbitPhase = "drag_end"
)

// OrbitData carries a token hover or drag event.
type OrbitData struct {
	Phase    OrbitPhase `json:"phase"`
	DeltaRad float64    `json:"delta_rad,omitempty"` // drag_move only
}

// ViewportData carries a resize/orientation event. Resizing marks the
// window chrome as still settling (mobile browser toolbar).
type ViewportData struct {
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Resizing bool    `json:"resizing,omitempty"`
}

// VisibilityData carries the visible fraction of the carousel.
type VisibilityData struct {
	Fraction float64 `json:"fraction"`
}

// MediaData reports a card media's readiness and natural aspect ratio.
type MediaData struct {
	CardID string  `json:"card_id"`
	Aspect float64 `json:"aspect,omitempty"` // width/height, 0 if unknown
	Ready  bool    `json:"ready"`
}

// SetIndexData requests an external index change.
type SetIndexData struct {
	Index int `json:"index"`
}

// =============================================================================
// Engine → Client Message Types
// =============================================================================

// PinnedData mirrors the pin broadcast.
type PinnedData struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// StableData mirrors the stability broadcast.
type StableData struct {
	Index int `json:"index"`
}

// =============================================================================
// Bidirectional Message Types
// =============================================================================

// PingData contains ping information
type PingData struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"ts"`
}

// PongData contains pong response
type PongData struct {
	ID        string `json:"id"`
	PingTS    int64  `json:"ping_ts"`
	PongTS    int64  `json:"pong_ts"`
	LatencyMs int64  `json:"latency_ms"`
}
