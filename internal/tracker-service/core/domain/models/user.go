package models

import "time"

type User struct {
	ID           int64
	UID          string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	CollegeID    *string
	RouteNumber  *string
	RouteID      *int64
	CreatedAt    time.Time
}
