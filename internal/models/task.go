package models

import "time"

// StatusPending is the status a task is created with
// when the request doesn't specify one.
const StatusPending = "pending"

type Task struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
