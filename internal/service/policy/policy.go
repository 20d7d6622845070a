package policy

import (
	"github.com/KasumiMercury/primind-reminder-scan/internal/domain"
)

// Policy resolves which reminder windows apply to a task, combining the
// task's priority tier with the owning user's settings. Defaults are
// injected so tests can run against alternate configurations.
type Policy struct {
	defaults domain.ReminderSettings
}

func New(defaults domain.ReminderSettings) *Policy {
	if defaults == nil {
		defaults = domain.DefaultReminderSettings()
	}
	return &Policy{defaults: defaults}
}

// Applicable returns the candidate windows for the priority under the
// given settings, in definition order. A nil settings value means the
// user has no override and the defaults apply. Unrecognized priorities
// fall back to the 24h window alone.
func (p *Policy) Applicable(priority domain.Priority, settings domain.ReminderSettings) []domain.Window {
	tier := priority.Normalize()
	if tier == domain.TierUnrecognized {
		return []domain.Window{domain.Window24h}
	}

	enabled, ok := settings[tier]
	if !ok {
		enabled = p.defaults[tier]
	}

	windows := make([]domain.Window, 0, len(enabled))
	for _, w := range domain.AllWindows {
		if enabled[w] {
			windows = append(windows, w)
		}
	}

	return windows
}
