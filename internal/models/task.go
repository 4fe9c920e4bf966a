package models

import "time"

// Task statuses. Stored as plain strings in the tasks table.
const (
	TaskStatusOpen       = "open"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
)

// Task is a unit of work assigned to a user.
type Task struct {
	// ID is a globally unique identifier (uuid).
	ID             string
	Title          string
	Description    string
	Status         string
	AssignedUserID int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
