package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/KasumiMercury/primind-reminder-scan/internal/domain"
)

const (
	pgUndefinedTable  = "42P01"
	pgUndefinedColumn = "42703"
)

// mapSchemaErr surfaces missing-schema failures as the configuration
// error the caller can act on; anything else passes through untouched.
func mapSchemaErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgUndefinedTable || pgErr.Code == pgUndefinedColumn {
			return fmt.Errorf("%w: %v", domain.ErrSchemaMissing, err)
		}
	}
	return err
}
