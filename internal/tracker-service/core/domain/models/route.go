package models

import "encoding/json"

type Route struct {
	ID          int64
	RouteNumber string
	Stops       json.RawMessage
}
