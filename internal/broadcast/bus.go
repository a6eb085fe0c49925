// Package broadcast fans the engine's event stream out to every
// connected observer. Delivery is best-effort per observer: a stalled
// subscriber is dropped, the rest keep receiving in emission order.
package broadcast

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starrypad/internal/game"
)

// subscriberBuffer is how many events an observer may fall behind before
// it is dropped.
const subscriberBuffer = 64

// Subscriber is one observer's handle on the event stream. Its channel
// closes when the subscription ends: Unsubscribe, a drop for falling
// behind, or bus shutdown.
type Subscriber struct {
	id int
	ch chan game.Event
}

// Events returns the channel events arrive on, in emission order.
func (s *Subscriber) Events() <-chan game.Event {
	return s.ch
}

// Bus consumes the engine's events in one goroutine and fans out to a
// changing set of subscribers.
type Bus struct {
	source   <-chan game.Event
	snapshot func() game.Event
	logger   *log.Logger

	// mu guards the subscriber set and every channel close. Fan-out
	// sends are non-blocking, so holding it across publish is cheap and
	// makes close-versus-send races impossible.
	mu     sync.Mutex
	subs   map[int]*Subscriber
	next   int
	closed bool
}

// New creates a bus over the given event source. snapshot, if non-nil,
// supplies the first event delivered to each new subscriber (the
// current leaderboard, so UIs are never blank on connect).
func New(source <-chan game.Event, snapshot func() game.Event, logger *log.Logger) *Bus {
	return &Bus{
		source:   source,
		snapshot: snapshot,
		logger:   logger,
		subs:     make(map[int]*Subscriber),
	}
}

// Run pumps events from the source to all subscribers until ctx is
// cancelled or the source closes.
func (b *Bus) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			b.closeAll()
			return
		case ev, ok := <-b.source:
			if !ok {
				b.closeAll()
				return
			}
			b.publish(ev)
		}
	}
}

// Subscribe registers a new observer. The current snapshot is queued as
// its first event before it can see any live ones. After shutdown the
// returned subscription is already closed, so late observers see an
// immediate end of stream instead of a silent hang.
func (b *Bus) Subscribe() *Subscriber {
	s := &Subscriber{ch: make(chan game.Event, subscriberBuffer)}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(s.ch)
		return s
	}
	if b.snapshot != nil {
		s.ch <- b.snapshot()
	}
	s.id = b.next
	b.next++
	b.subs[s.id] = s
	return s
}

// Unsubscribe ends an observer's subscription and closes its channel,
// so a consumer ranging over Events always terminates. Safe to call for
// a subscriber that was already dropped or shut down.
func (b *Bus) Unsubscribe(s *Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[s.id]; ok {
		delete(b.subs, s.id)
		close(s.ch)
	}
}

// Count returns the number of current subscribers.
func (b *Bus) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// publish delivers one event to every subscriber. A full buffer means
// the observer stalled; it is dropped on the spot so it cannot block
// the rest.
func (b *Bus) publish(ev game.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, s := range b.subs {
		select {
		case s.ch <- ev:
		default:
			b.logger.Warn("dropping slow observer", "id", id)
			delete(b.subs, id)
			close(s.ch)
		}
	}
}

// closeAll ends every subscription on shutdown and marks the bus dead
// for future Subscribe calls.
func (b *Bus) closeAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	for id, s := range b.subs {
		delete(b.subs, id)
		close(s.ch)
	}
}
