package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=task_repository.go -destination=task_repository_mock.go -package=domain

type TaskRepository interface {
	// FindDueSoon returns tasks with a non-null due date inside
	// [from, to] whose status is not done.
	FindDueSoon(ctx context.Context, from, to time.Time) ([]*Task, error)

	// AppendRemindedWindows unions the given windows into the task's
	// reminded_windows set. The update is scoped to a single task so a
	// failure on one task never touches another.
	AppendRemindedWindows(ctx context.Context, taskID string, windows []Window) error

	// ResetRemindedWindows clears reminded state so windows become
	// eligible again. With all set, every task is affected; otherwise
	// only the listed task ids. When window is non-nil only that one
	// window is removed, otherwise the whole set is cleared. Returns
	// the number of tasks changed.
	ResetRemindedWindows(ctx context.Context, taskIDs []string, all bool, window *Window) (int64, error)
}
