package driven

import (
	websocketdto "bus-tracker/internal/tracker-service/core/domain/websocket_dto"
)

// Subscriber is one connected client. Send must not block; a subscriber
// that cannot take the event right now just misses it.
type Subscriber interface {
	ID() string
	Send(event websocketdto.Event) error
}

// IRouteRegistry fans events out to the subscribers of a route channel.
// Membership only, nothing persisted, delivery best-effort at-most-once.
type IRouteRegistry interface {
	// Subscribe is idempotent. Subscribing to a new route replaces the
	// previous subscription, one route interest per connection.
	Subscribe(sub Subscriber, routeNumber string)
	// Unsubscribe is a no-op for unknown subscribers.
	Unsubscribe(sub Subscriber)
	Publish(routeNumber string, event websocketdto.Event)
	// BroadcastAll delivers to every subscriber regardless of route.
	BroadcastAll(event websocketdto.Event)
}
