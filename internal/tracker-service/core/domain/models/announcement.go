package models

import "time"

type Announcement struct {
	ID        int64
	Title     string
	Message   string
	CreatedAt time.Time
}
