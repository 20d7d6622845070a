package repository

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/KasumiMercury/primind-reminder-scan/internal/domain"
)

// rawJSON carries a jsonb column without committing to a shape at scan
// time; decoding stays in the mapping layer so a malformed payload can
// degrade instead of failing the whole query.
type rawJSON []byte

func (j rawJSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}

func (j *rawJSON) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*j = nil
	case []byte:
		*j = slices.Clone(v)
	case string:
		*j = []byte(v)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
	return nil
}

func (rawJSON) GormDataType() string {
	return "jsonb"
}

type taskRecord struct {
	ID              string     `gorm:"column:id;primaryKey"`
	Title           string     `gorm:"column:title"`
	DueDate         *time.Time `gorm:"column:due_date;index"`
	Priority        string     `gorm:"column:priority"`
	Status          string     `gorm:"column:status"`
	AssigneeID      *string    `gorm:"column:assignee_id"`
	RemindedWindows rawJSON    `gorm:"column:reminded_windows"`
}

func (taskRecord) TableName() string {
	return "tasks"
}

type userRecord struct {
	ID       string  `gorm:"column:id;primaryKey"`
	Email    string  `gorm:"column:email"`
	Name     string  `gorm:"column:name"`
	Settings rawJSON `gorm:"column:settings"`
}

func (userRecord) TableName() string {
	return "users"
}

func decodeWindows(payload rawJSON) []domain.Window {
	if len(payload) == 0 {
		return nil
	}

	var names []string
	if err := json.Unmarshal(payload, &names); err != nil {
		slog.Warn("malformed reminded_windows payload, treating as empty",
			slog.String("error", err.Error()),
		)
		return nil
	}

	windows := make([]domain.Window, 0, len(names))
	for _, name := range names {
		w, err := domain.ParseWindow(name)
		if err != nil {
			slog.Warn("skipping unknown window name in reminded_windows",
				slog.String("window", name),
			)
			continue
		}
		windows = append(windows, w)
	}

	return windows
}

func encodeWindows(windows []domain.Window) (rawJSON, error) {
	names := make([]string, 0, len(windows))
	for _, w := range windows {
		names = append(names, w.String())
	}
	payload, err := json.Marshal(names)
	if err != nil {
		return nil, fmt.Errorf("failed to encode reminded_windows: %w", err)
	}
	return payload, nil
}

func taskToDomain(rec *taskRecord) *domain.Task {
	return &domain.Task{
		ID:              rec.ID,
		Title:           rec.Title,
		DueDate:         rec.DueDate,
		Priority:        domain.Priority(rec.Priority),
		Status:          domain.Status(rec.Status),
		AssigneeID:      rec.AssigneeID,
		RemindedWindows: decodeWindows(rec.RemindedWindows),
	}
}

func userToDomain(rec *userRecord) *domain.User {
	user := &domain.User{
		ID:    rec.ID,
		Email: rec.Email,
		Name:  rec.Name,
	}

	if len(rec.Settings) > 0 {
		var settings domain.UserSettings
		if err := json.Unmarshal(rec.Settings, &settings); err != nil {
			// A broken settings blob must not break the scan for this
			// user; defaults apply instead.
			slog.Warn("malformed user settings, falling back to defaults",
				slog.String("user_id", rec.ID),
				slog.String("error", err.Error()),
			)
		} else {
			user.Settings = &settings
		}
	}

	return user
}
