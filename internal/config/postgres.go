package config

import (
	"os"
)

const (
	postgresDSNEnv         = "POSTGRES_DSN"
	postgresAutoMigrateEnv = "POSTGRES_AUTO_MIGRATE"
)

type PostgresConfig struct {
	DSN         string
	AutoMigrate bool
}

func LoadPostgresConfig() *PostgresConfig {
	return &PostgresConfig{
		DSN:         os.Getenv(postgresDSNEnv),
		AutoMigrate: os.Getenv(postgresAutoMigrateEnv) == "true",
	}
}

func (c *PostgresConfig) Validate() error {
	if c == nil || c.DSN == "" {
		return ErrPostgresDSNMissing
	}
	return nil
}
