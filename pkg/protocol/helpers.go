package protocol

// =============================================================================
// Helper functions for creating messages
// =============================================================================

// NewPointerMessage creates a pointer event message
func NewPointerMessage(phase PointerPhase, x, y float64) (*Message, error) {
	return NewMessage(TypePointer, PointerData{Phase: phase, X: x, Y: y})
}

// NewTouchMessage creates a touch event message
func NewTouchMessage(phase PointerPhase, x, y float64) (*Message, error) {
	return NewMessage(TypeTouch, TouchData{Phase: phase, X: x, Y: y})
}

// NewWheelMessage creates a wheel tick message
func NewWheelMessage(deltaY, x float64, overToken bool) (*Message, error) {
	return NewMessage(TypeWheel, WheelData{DeltaY: deltaY, X: x, OverToken: overToken})
}

// NewOrbitMessage creates an orbit interaction message
func NewOrbitMessage(phase OrbitPhase, deltaRad float64) (*Message, error) {
	return NewMessage(TypeOrbit, OrbitData{Phase: phase, DeltaRad: deltaRad})
}

// NewViewportMessage creates a viewport resize message
func NewViewportMessage(width, height float64, resizing bool) (*Message, error) {
	return NewMessage(TypeViewport, ViewportData{Width: width, Height: height, Resizing: resizing})
}

// NewVisibilityMessage creates a visibility message
func NewVisibilityMessage(fraction float64) (*Message, error) {
	return NewMessage(TypeVisibility, VisibilityData{Fraction: fraction})
}

// NewMediaMessage creates a media readiness report message
func NewMediaMessage(cardID string, aspect float64, ready bool) (*Message, error) {
	return NewMessage(TypeMedia, MediaData{CardID: cardID, Aspect: aspect, Ready: ready})
}

// NewSetIndexMessage creates an external index request message
func NewSetIndexMessage(index int) (*Message, error) {
	return NewMessage(TypeSetIndex, SetIndexData{Index: index})
}

// NewPinnedMessage creates a pin broadcast message
func NewPinnedMessage(width, height float64) (*Message, error) {
	return NewMessage(TypePinned, PinnedData{Width: width, Height: height})
}

// NewStableMessage creates a stability broadcast message
func NewStableMessage(index int) (*Message, error) {
	return NewMessage(TypeStable, StableData{Index: index})
}

// NewRejectedMessage creates a rejection broadcast message
func NewRejectedMessage() (*Message, error) {
	return NewMessage(TypeRejected, nil)
}

// NewPingMessage creates a ping message
func NewPingMessage(id string) (*Message, error) {
	return NewMessage(TypePing, PingData{
		ID:        id,
		Timestamp: 0, // Will be set by NewMessage
	})
}

// NewPongMessage creates a pong response message
func NewPongMessage(id string, pingTS, pongTS int64) (*Message, error) {
	return NewMessage(TypePong, PongData{
		ID:        id,
		PingTS:    pingTS,
		PongTS:    pongTS,
		LatencyMs: pongTS - pingTS,
	})
}

// =============================================================================
// Helper functions for parsing messages
// =============================================================================

// GetPointerData extracts pointer data from a message
func (m *Message) GetPointerData() (*PointerData, error) {
	var data PointerData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetTouchData extracts touch data from a message
func (m *Message) GetTouchData() (*TouchData, error) {
	var data TouchData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetWheelData extracts wheel data from a message
func (m *Message) GetWheelData() (*WheelData, error) {
	var data WheelData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetOrbitData extracts orbit interaction data from a message
func (m *Message) GetOrbitData() (*OrbitData, error) {
	var data OrbitData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetViewportData extracts viewport data from a message
func (m *Message) GetViewportData() (*ViewportData, error) {
	var data ViewportData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetVisibilityData extracts visibility data from a message
func (m *Message) GetVisibilityData() (*VisibilityData, error) {
	var data VisibilityData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetMediaData extracts a media readiness report from a message
func (m *Message) GetMediaData() (*MediaData, error) {
	var data MediaData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetSetIndexData extracts an index request from a message
func (m *Message) GetSetIndexData() (*SetIndexData, error) {
	var data SetIndexData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetStableData extracts stability data from a message
func (m *Message) GetStableData() (*StableData, error) {
	var data StableData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetPingData extracts ping data from a message
func (m *Message) GetPingData() (*PingData, error) {
	var data PingData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetPongData extracts pong data from a message
func (m *Message) GetPongData() (*PongData, error) {
	var data PongData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}
