package domain

import "time"

// Status is the task lifecycle state.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

func (s Status) String() string {
	return string(s)
}

// Task is the slice of the task record the reminder scan works with.
// Tasks without a due date are never scanned; done tasks are excluded
// at query time.
type Task struct {
	ID              string
	Title           string
	DueDate         *time.Time
	Priority        Priority
	Status          Status
	AssigneeID      *string
	RemindedWindows []Window
}

// SentWindows returns the already-sent windows as a lookup set.
func (t *Task) SentWindows() map[Window]bool {
	sent := make(map[Window]bool, len(t.RemindedWindows))
	for _, w := range t.RemindedWindows {
		sent[w] = true
	}
	return sent
}
