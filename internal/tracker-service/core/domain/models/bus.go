package models

import "time"

// Bus is the durable record of one campus bus. Trip flag and last position
// are written only through the tracker service.
type Bus struct {
	ID           int64
	BusNumber    string
	RouteID      *int64
	RouteNumber  *string
	DriverUID    *string
	DriverName   *string
	IsTripActive bool
	Lat          *float64
	Lng          *float64
	LastUpdate   *time.Time
}

// LocationSample is one reported GPS fix. It is never stored as-is, only
// folded into Bus last position once accepted.
type LocationSample struct {
	Lat        float64
	Lng        float64
	Accuracy   float64
	CapturedAt time.Time
}
