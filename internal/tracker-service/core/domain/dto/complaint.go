package dto

import "time"

type CreateComplaintRequest struct {
	UserID      int64  `json:"userId"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

type UpdateComplaintStatusRequest struct {
	Status string `json:"status"`
}

type ComplaintResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	UserName    string    `json:"userName"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}
