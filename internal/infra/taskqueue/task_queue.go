package taskqueue

import "context"

//go:generate mockgen -source=task_queue.go -destination=mock.go -package=taskqueue

// TaskQueue hands fired reminders to the notification delivery queue.
// Delivery itself (push, email) happens downstream; registration is the
// scan's hand-off point.
type TaskQueue interface {
	RegisterNotification(ctx context.Context, task *NotificationTask) (*TaskResponse, error)
}
