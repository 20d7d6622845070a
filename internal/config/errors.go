package config

import "errors"

var (
	ErrRedisAddrMissing   = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB     = errors.New("REDIS_DB must be a valid integer")
	ErrPostgresDSNMissing = errors.New("POSTGRES_DSN is required")
	ErrInvalidScanHorizon = errors.New("SCAN_HORIZON_HOURS must be a positive integer")
	ErrInvalidScanLockTTL = errors.New("SCAN_LOCK_TTL_SECONDS must be a positive integer")
	ErrInvalidDayOfHour   = errors.New("REMINDER_DAY_OF_HOUR must be an hour between 0 and 23")
	ErrInvalidDayOfTZ     = errors.New("REMINDER_DAY_OF_TZ must be a valid IANA timezone name")
)
