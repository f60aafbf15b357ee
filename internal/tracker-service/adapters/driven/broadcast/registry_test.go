package broadcast

import (
	"errors"
	"sync"
	"testing"

	"bus-tracker/internal/metrics"
	"bus-tracker/internal/mylogger"
	websocketdto "bus-tracker/internal/tracker-service/core/domain/websocket_dto"
)

type fakeSubscriber struct {
	id   string
	full bool

	mu     sync.Mutex
	events []websocketdto.Event
}

func (s *fakeSubscriber) ID() string { return s.id }

func (s *fakeSubscriber) Send(event websocketdto.Event) error {
	if s.full {
		return errors.New("egress full")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *fakeSubscriber) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func newTestRegistry(t *testing.T) *RouteRegistry {
	t.Helper()
	mylog, err := mylogger.New(mylogger.LevelError)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return NewRouteRegistry(mylog, metrics.NewCollector())
}

func testEvent(t *testing.T) websocketdto.Event {
	t.Helper()
	event, err := websocketdto.NewEvent(websocketdto.EventTripStatus, websocketdto.TripStatus{
		RouteNumber: "R10",
		IsActive:    true,
	})
	if err != nil {
		t.Fatalf("failed to build event: %v", err)
	}
	return event
}

func TestPublishReachesRouteSubscribers(t *testing.T) {
	r := newTestRegistry(t)
	a := &fakeSubscriber{id: "a"}
	b := &fakeSubscriber{id: "b"}

	r.Subscribe(a, "R10")
	r.Subscribe(b, "R10")

	r.Publish("R10", testEvent(t))

	if a.count() != 1 || b.count() != 1 {
		t.Fatalf("expected one delivery each, got a=%d b=%d", a.count(), b.count())
	}
}

func TestRouteIsolation(t *testing.T) {
	r := newTestRegistry(t)
	a := &fakeSubscriber{id: "a"}
	r.Subscribe(a, "R10")

	r.Publish("R20", testEvent(t))

	if a.count() != 0 {
		t.Fatalf("subscriber of R10 received an event published to R20")
	}
}

func TestResubscribeSameRouteIsIdempotent(t *testing.T) {
	r := newTestRegistry(t)
	a := &fakeSubscriber{id: "a"}

	r.Subscribe(a, "R10")
	r.Subscribe(a, "R10")

	r.Publish("R10", testEvent(t))

	if a.count() != 1 {
		t.Fatalf("expected exactly one delivery after re-subscribe, got %d", a.count())
	}
}

func TestSubscribeNewRouteReplacesOld(t *testing.T) {
	r := newTestRegistry(t)
	a := &fakeSubscriber{id: "a"}

	r.Subscribe(a, "R10")
	r.Subscribe(a, "R20")

	r.Publish("R10", testEvent(t))
	if a.count() != 0 {
		t.Fatalf("subscriber still attached to the old route")
	}

	r.Publish("R20", testEvent(t))
	if a.count() != 1 {
		t.Fatalf("subscriber not attached to the new route")
	}
}

func TestUnsubscribeThenPublish(t *testing.T) {
	r := newTestRegistry(t)
	a := &fakeSubscriber{id: "a"}

	r.Subscribe(a, "R10")
	r.Unsubscribe(a)

	// must not panic and must not deliver
	r.Publish("R10", testEvent(t))

	if a.count() != 0 {
		t.Fatalf("unsubscribed connection received an event")
	}
}

func TestUnsubscribeUnknownIsSilent(t *testing.T) {
	r := newTestRegistry(t)
	r.Unsubscribe(&fakeSubscriber{id: "ghost"})
}

func TestSlowSubscriberDoesNotBlockOthers(t *testing.T) {
	r := newTestRegistry(t)
	slow := &fakeSubscriber{id: "slow", full: true}
	ok := &fakeSubscriber{id: "ok"}

	r.Subscribe(slow, "R10")
	r.Subscribe(ok, "R10")

	r.Publish("R10", testEvent(t))

	if ok.count() != 1 {
		t.Fatalf("healthy subscriber missed delivery because another was full")
	}
	if slow.count() != 0 {
		t.Fatalf("full subscriber unexpectedly received delivery")
	}
}

func TestBroadcastAllCrossesRoutes(t *testing.T) {
	r := newTestRegistry(t)
	a := &fakeSubscriber{id: "a"}
	b := &fakeSubscriber{id: "b"}

	r.Subscribe(a, "R10")
	r.Subscribe(b, "R20")

	r.BroadcastAll(testEvent(t))

	if a.count() != 1 || b.count() != 1 {
		t.Fatalf("broadcast missed subscribers, got a=%d b=%d", a.count(), b.count())
	}
}

func TestChannelDestroyedWhenLastSubscriberLeaves(t *testing.T) {
	r := newTestRegistry(t)
	a := &fakeSubscriber{id: "a"}

	r.Subscribe(a, "R10")
	r.Unsubscribe(a)

	r.mu.RLock()
	_, exists := r.channels["R10"]
	r.mu.RUnlock()

	if exists {
		t.Fatalf("empty route channel was not destroyed")
	}
}
