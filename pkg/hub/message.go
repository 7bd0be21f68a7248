// Package hub provides a thread-safe websocket broadcast hub for the
// engine's render stream, using the idiomatic Go channel-based fan-out
// pattern. Every viewer of a carousel subscribes here and receives frame,
// pin and stability messages as they are produced.
package hub

// Message is a pre-encoded payload to broadcast to clients. Frames are
// encoded once per broadcast, not once per client.
type Message struct {
	Data []byte
}

// NewMessage wraps pre-encoded JSON bytes.
func NewMessage(data []byte) Message {
	return Message{Data: data}
}
