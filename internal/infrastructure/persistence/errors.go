package persistence

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/sitebuild/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes that indicate a retryable condition
var transientPgCodes = map[string]bool{
	"40001": true, // serialization_failure
	"40P01": true, // deadlock_detected
	"57P01": true, // admin_shutdown
	"57P03": true, // cannot_connect_now
	"53300": true, // too_many_connections
}

// translateError maps driver and gorm errors onto the domain taxonomy.
// Errors that are already domain errors pass through untouched.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var de *shared.DomainError
	if errors.As(err, &de) {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.NewDomainError(shared.CodeNotFound, "record not found").WithCause(err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.NewConflictError("operation conflicts with related records").WithCause(err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.NewConflictError("record already exists").WithCause(err)
	case isTransient(err):
		return shared.NewTransientStorageError(err)
	}
	return err
}

// isTransient reports whether err is worth retrying by the caller.
func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, driver.ErrBadConn) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Class 08: connection exception
		if len(pgErr.Code) == 5 && pgErr.Code[:2] == "08" {
			return true
		}
		return transientPgCodes[pgErr.Code]
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code == sqlite3.ErrBusy || liteErr.Code == sqlite3.ErrLocked
	}

	return false
}
