package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrInvalidTransition   = errors.New("invalid state transition")
	ErrNoAvailablePartner  = errors.New("no available partner")
)

type OpError struct {
	Op       string
	Resource string
	ID       int64
	Err      error
}

func (e *OpError) Error() string {
	if e == nil {
		return ""
	}
	if e.ID > 0 {
		return fmt.Sprintf("%s %s %d: %v", e.Op, e.Resource, e.ID, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Resource, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// classify maps driver errors onto the package sentinels, keeping the
// driver error in the chain for logging.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return ErrNotFound
	case isUniqueViolation(err):
		return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: referenced row missing: %v", ErrNotFound, err)
	}
	return err
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23503"
	}
	return false
}

func wrapErr(op, resource string, id int64, err error) error {
	if err == nil {
		return nil
	}
	var opErr *OpError
	if errors.As(err, &opErr) {
		return err
	}
	return &OpError{Op: op, Resource: resource, ID: id, Err: classify(err)}
}

func wrapMemberErr(op string, id int64, err error) error {
	return wrapErr(op, "member", id, err)
}

func wrapSprintErr(op string, id int64, err error) error {
	return wrapErr(op, "sprint", id, err)
}

func wrapSubmissionErr(op string, id int64, err error) error {
	return wrapErr(op, "submission", id, err)
}

func wrapPairingErr(op string, id int64, err error) error {
	return wrapErr(op, "pairing", id, err)
}

func wrapTaskErr(op string, id int64, err error) error {
	return wrapErr(op, "task", id, err)
}

func wrapRecognitionErr(op string, id int64, err error) error {
	return wrapErr(op, "recognition", id, err)
}
