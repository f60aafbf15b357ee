package dto

import "time"

type CreateAnnouncementRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

type AnnouncementResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
