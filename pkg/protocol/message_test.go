package protocol

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewMessage(t *testing.T) {
	tests := []struct {
		name    string
		msgType MessageType
		data    interface{}
		wantErr bool
	}{
		{
			name:    "pointer message",
			msgType: TypePointer,
			data:    PointerData{Phase: PhaseDown, X: 120, Y: 480},
			wantErr: false,
		},
		{
			name:    "wheel message",
			msgType: TypeWheel,
			data:    WheelData{DeltaY: -53, X: 300},
			wantErr: false,
		},
		{
			name:    "stable message",
			msgType: TypeStable,
			data:    StableData{Index: 2},
			wantErr: false,
		},
		{
			name:    "nil data",
			msgType: TypeRejected,
			data:    nil,
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := NewMessage(tt.msgType, tt.data)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewMessage() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if msg == nil && !tt.wantErr {
				t.Error("NewMessage() returned nil message")
				return
			}
			if msg.Type != tt.msgType {
				t.Errorf("NewMessage() type = %v, want %v", msg.Type, tt.msgType)
			}
			if msg.Timestamp == 0 {
				t.Error("NewMessage() timestamp should be set")
			}
		})
	}
}

func TestMessageRoundTrip(t *testing.T) {
	original := ViewportData{Width: 1280, Height: 720, Resizing: true}

	msg, err := NewViewportMessage(original.Width, original.Height, original.Resizing)
	if err != nil {
		t.Fatalf("NewViewportMessage() error = %v", err)
	}

	raw, err := msg.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}

	parsed, err := ParseMessage(raw)
	if err != nil {
		t.Fatalf("ParseMessage() error = %v", err)
	}
	if parsed.Type != TypeViewport {
		t.Errorf("parsed type = %v, want %v", parsed.Type, TypeViewport)
	}

	got, err := parsed.GetViewportData()
	if err != nil {
		t.Fatalf("GetViewportData() error = %v", err)
	}
	if *got != original {
		t.Errorf("round trip = %+v, want %+v", *got, original)
	}
}

func TestParseMessage_Invalid(t *testing.T) {
	if _, err := ParseMessage([]byte("{not json")); err == nil {
		t.Error("ParseMessage() should fail on malformed input")
	}
}

func TestParseData_Nil(t *testing.T) {
	msg := &Message{Type: TypeRejected}

	var data StableData
	if err := msg.ParseData(&data); err != nil {
		t.Errorf("ParseData() on nil data should be a no-op, got %v", err)
	}
}

func TestPongLatency(t *testing.T) {
	pingTS := time.Now().UnixMilli()
	pongTS := pingTS + 42

	msg, err := NewPongMessage("abc", pingTS, pongTS)
	if err != nil {
		t.Fatalf("NewPongMessage() error = %v", err)
	}

	pong, err := msg.GetPongData()
	if err != nil {
		t.Fatalf("GetPongData() error = %v", err)
	}
	if pong.LatencyMs != 42 {
		t.Errorf("LatencyMs = %d, want 42", pong.LatencyMs)
	}
}

func TestWheelDataJSON(t *testing.T) {
	raw := []byte(`{"delta_y":-12.5,"x":640,"over_token":true}`)

	var data WheelData
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if data.DeltaY != -12.5 || !data.OverToken {
		t.Errorf("unexpected wheel data: %+v", data)
	}
}
