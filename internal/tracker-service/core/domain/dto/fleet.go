package dto

import (
	"encoding/json"
	"time"
)

type CreateRouteRequest struct {
	RouteNumber string          `json:"routeNumber"`
	Stops       json.RawMessage `json:"stops"`
}

type RouteResponse struct {
	ID          int64           `json:"id"`
	RouteNumber string          `json:"routeNumber"`
	Stops       json.RawMessage `json:"stops"`
}

type CreateBusRequest struct {
	BusNumber string `json:"busNumber"`
}

// BusDetailResponse mirrors the joined bus view the dashboards render.
type BusDetailResponse struct {
	BusID        int64      `json:"busId"`
	BusNumber    string     `json:"busNumber"`
	RouteNumber  *string    `json:"routeNumber"`
	DriverUID    *string    `json:"driverUid"`
	DriverName   *string    `json:"driverName"`
	IsTripActive bool       `json:"isTripActive"`
	Lat          *float64   `json:"lat"`
	Lng          *float64   `json:"lng"`
	LastUpdate   *time.Time `json:"lastUpdate"`
}

type DriverResponse struct {
	UID       string  `json:"uid"`
	Name      string  `json:"name"`
	CollegeID *string `json:"collegeId"`
}

type AssignRequest struct {
	DriverUID   string `json:"driverUid"`
	BusID       int64  `json:"busId"`
	RouteNumber string `json:"routeNumber"`
}
