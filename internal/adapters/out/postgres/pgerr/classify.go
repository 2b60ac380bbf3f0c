// Package pgerr maps PostgreSQL driver failures onto the errs taxonomy so
// that callers can tell a lost race from an unreachable store.
package pgerr

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"shipping/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation      = "23505"
	serializationFailure = "40001"
	deadlockDetected     = "40P01"
)

// Classify wraps err as a conflict or store-unavailable error when its cause
// calls for it and returns every other error unchanged. subject and id name
// the object for conflicts; operation names the failed store call.
func Classify(err error, operation, subject string, id any) error {
	switch {
	case err == nil:
		return nil
	case IsUnavailable(err):
		return errs.NewStoreUnavailableError(operation, err)
	case IsConflict(err):
		return errs.NewConflictErrorWithCause(subject, id, err)
	default:
		return err
	}
}

// IsConflict reports unique violations, serialization failures and deadlocks.
func IsConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case uniqueViolation, serializationFailure, deadlockDetected:
		return true
	default:
		return false
	}
}

// IsUnavailable reports timeouts, cancelled requests and lost connections.
func IsUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, driver.ErrBadConn) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// class 08: connection exception, 57P0x: operator intervention
		return strings.HasPrefix(pgErr.Code, "08") || strings.HasPrefix(pgErr.Code, "57P0")
	}

	return pgconn.Timeout(err)
}
