package scan

import (
	"time"

	"github.com/KasumiMercury/primind-reminder-scan/internal/domain"
)

// Result is the outcome of one complete scan pass.
type Result struct {
	Events            []domain.ReminderEvent
	TasksScanned      int
	WritebackFailures int
	From              time.Time
	To                time.Time
}

// ResetRequest clears reminded state so windows become eligible again.
// Either All or TaskIDs selects the affected tasks; a non-nil Window
// removes only that window instead of the whole set.
type ResetRequest struct {
	TaskIDs []string
	All     bool
	Window  *domain.Window
}
