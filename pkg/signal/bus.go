package signal

import (
	"errors"
	"sync"
	"sync/atomic"
)

var (
	// ErrBusClosed is returned when subscribing to a closed bus.
	ErrBusClosed = errors.New("signal bus closed")

	// ErrSubscriberExists is returned when a subscriber id is already taken.
	ErrSubscriberExists = errors.New("subscriber already registered")

	// ErrNilChannel is returned when subscribing with a nil channel.
	ErrNilChannel = errors.New("nil subscriber channel")
)

// SubscriberStats counts delivery outcomes for one subscriber.
type SubscriberStats struct {
	Sent    uint64
	Dropped uint64
}

type subscriber struct {
	id    string
	ch    chan<- Signal
	stats *SubscriberStats
}

// Bus fans signals out to subscribers. Publish never blocks: a subscriber
// whose channel is full simply misses that broadcast — consumers read the
// latest value, there is no back-pressure toward the engine.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string]*subscriber
	published   uint64
	closed      bool
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subscribers: make(map[string]*subscriber)}
}

// Subscribe registers a channel under an id.
func (b *Bus) Subscribe(id string, ch chan<- Signal) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBusClosed
	}
	if ch == nil {
		return ErrNilChannel
	}
	if _, exists := b.subscribers[id]; exists {
		return ErrSubscriberExists
	}

	b.subscribers[id] = &subscriber{id: id, ch: ch, stats: &SubscriberStats{}}
	return nil
}

// Unsubscribe removes a subscriber. Unknown ids are ignored.
func (b *Bus) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subscribers, id)
}

// Publish delivers a signal to every subscriber without blocking.
func (b *Bus) Publish(s Signal) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}
	atomic.AddUint64(&b.published, 1)

	for _, sub := range b.subscribers {
		select {
		case sub.ch <- s:
			atomic.AddUint64(&sub.stats.Sent, 1)
		default:
			atomic.AddUint64(&sub.stats.Dropped, 1)
		}
	}
}

// Stats returns a copy of a subscriber's delivery counters.
func (b *Bus) Stats(id string) (SubscriberStats, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	sub, ok := b.subscribers[id]
	if !ok {
		return SubscriberStats{}, false
	}
	return SubscriberStats{
		Sent:    atomic.LoadUint64(&sub.stats.Sent),
		Dropped: atomic.LoadUint64(&sub.stats.Dropped),
	}, true
}

// Published returns the total number of publish calls.
func (b *Bus) Published() uint64 {
	return atomic.LoadUint64(&b.published)
}

// Close marks the bus closed; further publishes are discarded and further
// subscribes fail.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
}
