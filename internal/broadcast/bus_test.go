package broadcast

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starrypad/internal/game"
	"github.com/vovakirdan/starrypad/internal/leaderboard"
)

func newTestBus(source chan game.Event) (*Bus, context.CancelFunc) {
	logger := log.New(io.Discard)
	snapshot := func() game.Event {
		return game.LeaderboardUpdatedEvent{Board: leaderboard.Board{{Name: "Ann", Score: 3}}}
	}
	bus := New(source, snapshot, logger)
	ctx, cancel := context.WithCancel(context.Background())
	go bus.Run(ctx)
	return bus, cancel
}

func recv(t *testing.T, ch <-chan game.Event) game.Event {
	t.Helper()
	select {
	case ev, ok := <-ch:
		if !ok {
			t.Fatal("subscriber channel closed unexpectedly")
		}
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
	return nil
}

func TestSnapshotIsFirstEvent(t *testing.T) {
	source := make(chan game.Event)
	bus, cancel := newTestBus(source)
	defer cancel()

	sub := bus.Subscribe()
	defer bus.Unsubscribe(sub)

	first, ok := recv(t, sub.Events()).(game.LeaderboardUpdatedEvent)
	if !ok {
		t.Fatalf("first event should be the leaderboard snapshot, got %T", first)
	}
	if len(first.Board) != 1 || first.Board[0].Name != "Ann" {
		t.Errorf("unexpected snapshot board: %v", first.Board)
	}
}

func TestDeliveryPreservesOrder(t *testing.T) {
	source := make(chan game.Event)
	bus, cancel := newTestBus(source)
	defer cancel()

	sub := bus.Subscribe()
	defer bus.Unsubscribe(sub)
	recv(t, sub.Events()) // snapshot

	for i := 0; i < 10; i++ {
		source <- game.ScoreChangedEvent{Score: i}
	}
	for i := 0; i < 10; i++ {
		ev, ok := recv(t, sub.Events()).(game.ScoreChangedEvent)
		if !ok || ev.Score != i {
			t.Fatalf("event %d out of order: %+v", i, ev)
		}
	}
}

func TestFanOutToAllSubscribers(t *testing.T) {
	source := make(chan game.Event)
	bus, cancel := newTestBus(source)
	defer cancel()

	a := bus.Subscribe()
	b := bus.Subscribe()
	recv(t, a.Events())
	recv(t, b.Events())

	source <- game.PhaseChangedEvent{Phase: game.PhasePlaying}

	for _, sub := range []*Subscriber{a, b} {
		ev, ok := recv(t, sub.Events()).(game.PhaseChangedEvent)
		if !ok || ev.Phase != game.PhasePlaying {
			t.Errorf("subscriber missed event: %+v", ev)
		}
	}
}

func TestSlowSubscriberDropped(t *testing.T) {
	source := make(chan game.Event)
	bus, cancel := newTestBus(source)
	defer cancel()

	slow := bus.Subscribe()
	fast := bus.Subscribe()
	recv(t, fast.Events())

	// Never read from slow; overflow its buffer (snapshot occupies one
	// slot already).
	for i := 0; i < subscriberBuffer+1; i++ {
		source <- game.ScoreChangedEvent{Score: i}
	}

	// The fast subscriber must still receive everything, in order.
	for i := 0; i < subscriberBuffer+1; i++ {
		ev, ok := recv(t, fast.Events()).(game.ScoreChangedEvent)
		if !ok || ev.Score != i {
			t.Fatalf("fast subscriber missed event %d: %+v", i, ev)
		}
	}

	if bus.Count() != 1 {
		t.Errorf("slow subscriber should have been dropped, count = %d", bus.Count())
	}

	// The slow subscriber's channel ends with a close after its buffered
	// backlog.
	drained := 0
	for range slow.Events() {
		drained++
		if drained > subscriberBuffer+1 {
			t.Fatal("slow subscriber channel never closed")
		}
	}
}

func TestUnsubscribeClosesSubscription(t *testing.T) {
	source := make(chan game.Event)
	bus, cancel := newTestBus(source)
	defer cancel()

	sub := bus.Subscribe()
	recv(t, sub.Events()) // snapshot

	// A consumer ranging over the subscription, the way the websocket
	// write pump does, must terminate once the observer unsubscribes.
	done := make(chan struct{})
	go func() {
		for range sub.Events() {
		}
		close(done)
	}()

	bus.Unsubscribe(sub)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("consumer still ranging after Unsubscribe; channel never closed")
	}

	if bus.Count() != 0 {
		t.Errorf("subscriber still registered, count = %d", bus.Count())
	}

	// Events published afterwards go nowhere and must not panic.
	source <- game.ScoreChangedEvent{Score: 1}

	// A second Unsubscribe of the same handle is a no-op.
	bus.Unsubscribe(sub)
}

func TestSubscribeAfterShutdown(t *testing.T) {
	source := make(chan game.Event)
	bus, cancel := newTestBus(source)

	first := bus.Subscribe()
	recv(t, first.Events())
	cancel()

	// The existing subscription closing proves shutdown completed.
	select {
	case _, ok := <-first.Events():
		if ok {
			t.Fatal("expected channel close, got event")
		}
	case <-time.After(time.Second):
		t.Fatal("shutdown did not close the existing subscription")
	}

	// A late subscriber gets an immediately closed subscription rather
	// than a channel nothing will ever close.
	late := bus.Subscribe()
	select {
	case _, ok := <-late.Events():
		if ok {
			t.Error("late subscriber should see end of stream, got event")
		}
	case <-time.After(time.Second):
		t.Fatal("late subscriber channel not closed")
	}
}

func TestShutdownClosesSubscribers(t *testing.T) {
	source := make(chan game.Event)
	bus, cancel := newTestBus(source)

	sub := bus.Subscribe()
	recv(t, sub.Events())

	cancel()

	select {
	case _, ok := <-sub.Events():
		if ok {
			t.Error("expected channel close, got event")
		}
	case <-time.After(time.Second):
		t.Fatal("subscriber channel not closed on shutdown")
	}
}
