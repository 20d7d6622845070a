package config

import (
	"os"
	"strconv"
	"time"
)

const (
	scanHorizonHoursEnv   = "SCAN_HORIZON_HOURS"
	scanLockTTLSecondsEnv = "SCAN_LOCK_TTL_SECONDS"
	dayOfHourEnv          = "REMINDER_DAY_OF_HOUR"
	dayOfTZEnv            = "REMINDER_DAY_OF_TZ"

	defaultScanHorizonHours   = 48
	defaultScanLockTTLSeconds = 240
	defaultDayOfHour          = 9
)

type ReminderConfig struct {
	ScanHorizonHours   int
	ScanLockTTLSeconds int
	DayOfHour          int
	DayOfTZ            string
}

func LoadReminderConfig() (*ReminderConfig, error) {
	horizon := defaultScanHorizonHours
	if v := os.Getenv(scanHorizonHoursEnv); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return nil, ErrInvalidScanHorizon
		}
		horizon = parsed
	}

	lockTTL := defaultScanLockTTLSeconds
	if v := os.Getenv(scanLockTTLSecondsEnv); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return nil, ErrInvalidScanLockTTL
		}
		lockTTL = parsed
	}

	dayOfHour := defaultDayOfHour
	if v := os.Getenv(dayOfHourEnv); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 || parsed > 23 {
			return nil, ErrInvalidDayOfHour
		}
		dayOfHour = parsed
	}

	tz := os.Getenv(dayOfTZEnv)
	if tz != "" {
		if _, err := time.LoadLocation(tz); err != nil {
			return nil, ErrInvalidDayOfTZ
		}
	}

	return &ReminderConfig{
		ScanHorizonHours:   horizon,
		ScanLockTTLSeconds: lockTTL,
		DayOfHour:          dayOfHour,
		DayOfTZ:            tz,
	}, nil
}

func (c *ReminderConfig) ScanHorizon() time.Duration {
	return time.Duration(c.ScanHorizonHours) * time.Hour
}

func (c *ReminderConfig) ScanLockTTL() time.Duration {
	return time.Duration(c.ScanLockTTLSeconds) * time.Second
}

// Location resolves the timezone used for same-day reminder checks.
// An unset value keeps the host timezone.
func (c *ReminderConfig) Location() *time.Location {
	if c.DayOfTZ == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.DayOfTZ)
	if err != nil {
		return time.Local
	}
	return loc
}
