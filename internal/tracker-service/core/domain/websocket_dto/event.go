package websocketdto

import (
	"encoding/json"
	"time"
)

// Inbound event types
const (
	EventSubscribe      = "subscribe"
	EventReportLocation = "report_location"
	EventTripStatus     = "trip_status"
)

// Outbound event types
const (
	EventBootstrap      = "bootstrap"
	EventLocationUpdate = "location_update"
	EventAnnouncement   = "announcement"
	EventError          = "error"
)

type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// NewEvent marshals payload into the event envelope.
func NewEvent(eventType string, payload any) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{Type: eventType, Data: data}, nil
}

type SubscribeMessage struct {
	RouteNumber string `json:"route_number"`
}

type ReportLocationMessage struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Accuracy float64 `json:"accuracy"`
}

type TripStatusMessage struct {
	BusID    int64 `json:"bus_id"`
	IsActive bool  `json:"is_active"`
}

type Location struct {
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Timestamp time.Time `json:"timestamp"`
}

type LocationUpdate struct {
	RouteNumber string   `json:"route_number"`
	Location    Location `json:"location"`
}

type TripStatus struct {
	RouteNumber string `json:"route_number"`
	IsActive    bool   `json:"is_active"`
}

// BusSnapshot is the bootstrap payload a subscriber receives right after
// joining a route channel.
type BusSnapshot struct {
	BusID        int64     `json:"bus_id"`
	BusNumber    string    `json:"bus_number"`
	RouteNumber  string    `json:"route_number"`
	IsTripActive bool      `json:"is_trip_active"`
	Location     *Location `json:"location,omitempty"`
}

type AnnouncementMessage struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
