package broadcast

import (
	"sync"

	"bus-tracker/internal/metrics"
	"bus-tracker/internal/mylogger"
	websocketdto "bus-tracker/internal/tracker-service/core/domain/websocket_dto"
	"bus-tracker/internal/tracker-service/core/ports/driven"
)

// RouteRegistry is the in-memory fan-out index: route number -> set of
// subscribers. It owns membership only. Nothing here is persisted and the
// whole index rebuilds naturally as connections come and go. The registry
// is constructed at the composition root and injected, no package state.
type RouteRegistry struct {
	mylog mylogger.Logger
	mtr   *metrics.Collector

	mu       sync.RWMutex
	channels map[string]map[driven.Subscriber]struct{}
	routeOf  map[driven.Subscriber]string
}

func NewRouteRegistry(mylog mylogger.Logger, mtr *metrics.Collector) *RouteRegistry {
	return &RouteRegistry{
		mylog:    mylog,
		mtr:      mtr,
		channels: make(map[string]map[driven.Subscriber]struct{}),
		routeOf:  make(map[driven.Subscriber]string),
	}
}

// Subscribe attaches sub to the route channel. Re-subscribing to the same
// route is a no-op; a different route replaces the old membership, one
// route interest per connection.
func (r *RouteRegistry) Subscribe(sub driven.Subscriber, routeNumber string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.routeOf[sub]; ok {
		if current == routeNumber {
			return
		}
		r.detach(sub, current)
	}

	ch, ok := r.channels[routeNumber]
	if !ok {
		ch = make(map[driven.Subscriber]struct{})
		r.channels[routeNumber] = ch
	}
	ch[sub] = struct{}{}
	r.routeOf[sub] = routeNumber
	r.mtr.ActiveRoutes.Set(float64(len(r.channels)))

	r.mylog.Debug("subscriber joined route channel", "subscriber", sub.ID(), "route_number", routeNumber)
}

// Unsubscribe detaches sub from whatever channel it belongs to. Unknown
// subscribers are ignored, disconnect is not an error condition.
func (r *RouteRegistry) Unsubscribe(sub driven.Subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()

	routeNumber, ok := r.routeOf[sub]
	if !ok {
		return
	}
	r.detach(sub, routeNumber)
	r.mtr.ActiveRoutes.Set(float64(len(r.channels)))
}

// detach removes sub from the channel and destroys the channel when the
// last subscriber leaves. Caller holds the lock.
func (r *RouteRegistry) detach(sub driven.Subscriber, routeNumber string) {
	delete(r.routeOf, sub)
	if ch, ok := r.channels[routeNumber]; ok {
		delete(ch, sub)
		if len(ch) == 0 {
			delete(r.channels, routeNumber)
		}
	}
}

// Publish delivers event to every current subscriber of the route, in
// arbitrary order, at most once each. Delivery is best-effort: a slow or
// gone subscriber just misses this one. The lock is released before any
// delivery happens so fan-out never blocks membership changes.
func (r *RouteRegistry) Publish(routeNumber string, event websocketdto.Event) {
	r.mu.RLock()
	subs := make([]driven.Subscriber, 0, len(r.channels[routeNumber]))
	for sub := range r.channels[routeNumber] {
		subs = append(subs, sub)
	}
	r.mu.RUnlock()

	for _, sub := range subs {
		if err := sub.Send(event); err != nil {
			r.mtr.DeliveriesDropped.Inc()
			r.mylog.Debug("delivery dropped", "subscriber", sub.ID(), "event_type", event.Type)
		}
	}
}

// BroadcastAll delivers event to every subscriber on every channel.
func (r *RouteRegistry) BroadcastAll(event websocketdto.Event) {
	r.mu.RLock()
	subs := make([]driven.Subscriber, 0, len(r.routeOf))
	for sub := range r.routeOf {
		subs = append(subs, sub)
	}
	r.mu.RUnlock()

	for _, sub := range subs {
		if err := sub.Send(event); err != nil {
			r.mtr.DeliveriesDropped.Inc()
		}
	}
}
