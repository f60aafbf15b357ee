package models

import "time"

const (
	ComplaintStatusPending    = "Pending"
	ComplaintStatusInProgress = "In Progress"
	ComplaintStatusResolved   = "Resolved"
)

type Complaint struct {
	ID          int64
	UserID      int64
	UserName    string
	Category    string
	Description string
	Status      string
	CreatedAt   time.Time
}
