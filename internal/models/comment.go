package models

import "time"

// Comment is a note left on a task by a user.
type Comment struct {
	ID        string
	TaskID    string
	AuthorID  int64
	Text      string
	CreatedAt time.Time
}
