package hub

import (
	"sync"
	"testing"
	"time"
)

// slowClient builds a registered client whose send channel has no reader,
// so every broadcast to it takes the drop branch.
func slowClient(h *Hub) *Client {
	c := &Client{hub: h, send: make(chan Message)}
	h.register <- c
	return c
}

func TestSlowClientDropWhileCountingClients(t *testing.T) {
	h := New("test")
	go h.Run()

	for i := 0; i < 8; i++ {
		slowClient(h)
	}

	// Poll ClientCount concurrently with broadcasts, like the status
	// endpoint does while the frame loop streams. Run with -race.
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		deadline := time.Now().Add(200 * time.Millisecond)
		for time.Now().Before(deadline) {
			h.ClientCount()
		}
	}()

	for i := 0; i < 16; i++ {
		h.Broadcast(NewMessage([]byte(`{"type":"frame"}`)))
		time.Sleep(5 * time.Millisecond)
	}
	wg.Wait()

	deadline := time.Now().Add(time.Second)
	for h.ClientCount() > 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if n := h.ClientCount(); n != 0 {
		t.Errorf("%d slow clients still registered, want 0", n)
	}
}

func TestRegisterUnregister(t *testing.T) {
	h := New("test")
	go h.Run()

	c := slowClient(h)

	deadline := time.Now().Add(time.Second)
	for h.ClientCount() != 1 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if n := h.ClientCount(); n != 1 {
		t.Fatalf("client count = %d after register, want 1", n)
	}

	h.unregister <- c
	deadline = time.Now().Add(time.Second)
	for h.ClientCount() != 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if n := h.ClientCount(); n != 0 {
		t.Errorf("client count = %d after unregister, want 0", n)
	}
}
