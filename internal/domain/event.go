package domain

import "time"

// Recipient identifies who a reminder is addressed to.
type Recipient struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ReminderEvent is one firing decision produced by a scan. It is not
// persisted itself; only its effect on the task's reminded_windows is.
// Assignee is nil for unassigned tasks.
type ReminderEvent struct {
	TaskID   string
	Title    string
	DueDate  time.Time
	Priority Priority
	Status   Status
	Window   Window
	FiredAt  time.Time
	Assignee *Recipient
}
