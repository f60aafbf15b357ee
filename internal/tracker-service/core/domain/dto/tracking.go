package dto

import "time"

type UpdateLocationRequest struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Accuracy float64 `json:"accuracy"`
}

type LocationAck struct {
	BusID       int64     `json:"busId"`
	RouteNumber string    `json:"routeNumber"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type TripStatusRequest struct {
	BusID        int64 `json:"busId"`
	IsTripActive bool  `json:"isTripActive"`
}

type TripStatusAck struct {
	BusID        int64   `json:"busId"`
	IsTripActive bool    `json:"isTripActive"`
	RouteNumber  *string `json:"routeNumber"`
	Published    bool    `json:"published"`
}
