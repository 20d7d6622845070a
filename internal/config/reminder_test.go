package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoadReminderConfig_Defaults(t *testing.T) {
	t.Setenv(scanHorizonHoursEnv, "")
	t.Setenv(scanLockTTLSecondsEnv, "")
	t.Setenv(dayOfHourEnv, "")
	t.Setenv(dayOfTZEnv, "")

	cfg, err := LoadReminderConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ScanHorizonHours != defaultScanHorizonHours {
		t.Errorf("ScanHorizonHours = %d, want %d", cfg.ScanHorizonHours, defaultScanHorizonHours)
	}
	if cfg.ScanLockTTLSeconds != defaultScanLockTTLSeconds {
		t.Errorf("ScanLockTTLSeconds = %d, want %d", cfg.ScanLockTTLSeconds, defaultScanLockTTLSeconds)
	}
	if cfg.DayOfHour != defaultDayOfHour {
		t.Errorf("DayOfHour = %d, want %d", cfg.DayOfHour, defaultDayOfHour)
	}
	if got := cfg.ScanHorizon(); got != time.Duration(defaultScanHorizonHours)*time.Hour {
		t.Errorf("ScanHorizon() = %v", got)
	}
}

func TestLoadReminderConfig_Overrides(t *testing.T) {
	t.Setenv(scanHorizonHoursEnv, "72")
	t.Setenv(scanLockTTLSecondsEnv, "60")
	t.Setenv(dayOfHourEnv, "7")
	t.Setenv(dayOfTZEnv, "Asia/Tokyo")

	cfg, err := LoadReminderConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ScanHorizonHours != 72 {
		t.Errorf("ScanHorizonHours = %d, want 72", cfg.ScanHorizonHours)
	}
	if cfg.ScanLockTTL() != time.Minute {
		t.Errorf("ScanLockTTL() = %v, want 1m", cfg.ScanLockTTL())
	}
	if cfg.DayOfHour != 7 {
		t.Errorf("DayOfHour = %d, want 7", cfg.DayOfHour)
	}
	if cfg.Location().String() != "Asia/Tokyo" {
		t.Errorf("Location() = %v, want Asia/Tokyo", cfg.Location())
	}
}

func TestLoadReminderConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		value   string
		wantErr error
	}{
		{"non-numeric horizon", scanHorizonHoursEnv, "soon", ErrInvalidScanHorizon},
		{"zero horizon", scanHorizonHoursEnv, "0", ErrInvalidScanHorizon},
		{"negative horizon", scanHorizonHoursEnv, "-48", ErrInvalidScanHorizon},
		{"non-numeric lock ttl", scanLockTTLSecondsEnv, "4m", ErrInvalidScanLockTTL},
		{"zero lock ttl", scanLockTTLSecondsEnv, "0", ErrInvalidScanLockTTL},
		{"non-numeric day-of hour", dayOfHourEnv, "nine", ErrInvalidDayOfHour},
		{"out-of-range day-of hour", dayOfHourEnv, "24", ErrInvalidDayOfHour},
		{"unknown timezone", dayOfTZEnv, "Mars/Olympus", ErrInvalidDayOfTZ},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)

			_, err := LoadReminderConfig()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadReminderConfig() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadRedisConfig_InvalidDB(t *testing.T) {
	t.Setenv(redisDBEnv, "two")

	if _, err := LoadRedisConfig(); !errors.Is(err, ErrInvalidRedisDB) {
		t.Errorf("LoadRedisConfig() error = %v, want %v", err, ErrInvalidRedisDB)
	}
}
