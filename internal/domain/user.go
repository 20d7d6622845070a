package domain

// ReminderSettings maps a priority tier to the windows enabled for it.
// A user record may carry an override; absent tiers fall back to the
// injected defaults at policy level.
type ReminderSettings map[Tier]map[Window]bool

// DefaultReminderSettings returns a fresh copy of the system default
// window configuration. Callers get an owned value so per-user
// mutation can never leak into the defaults.
func DefaultReminderSettings() ReminderSettings {
	return ReminderSettings{
		TierHigh: {
			Window24h: true,
			Window6h:  true,
			Window1h:  true,
		},
		TierMedium: {
			Window24h: true,
		},
		TierLow: {
			WindowDayOf: true,
		},
	}
}

// Enabled reports whether the window is turned on for the tier.
func (s ReminderSettings) Enabled(tier Tier, w Window) bool {
	windows, ok := s[tier]
	if !ok {
		return false
	}
	return windows[w]
}

// UserSettings is the persisted per-user settings payload. Only the
// reminders section is relevant here; other sections are ignored.
type UserSettings struct {
	Reminders ReminderSettings `json:"reminders,omitempty"`
}

// User is the slice of the user record the scan needs to address and
// configure reminders.
type User struct {
	ID       string
	Email    string
	Name     string
	Settings *UserSettings
}

// ReminderSettings returns the user's reminder override, or nil when
// the user has none configured.
func (u *User) ReminderSettings() ReminderSettings {
	if u == nil || u.Settings == nil {
		return nil
	}
	return u.Settings.Reminders
}
