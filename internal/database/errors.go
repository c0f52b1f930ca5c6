package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Error kinds. Every *Error matches exactly one of these via errors.Is.
var (
	ErrNotFound            = errors.New("not found")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrDuplicateEmail      = fmt.Errorf("%w: duplicate email", ErrConstraintViolation)
	ErrForeignKey          = fmt.Errorf("%w: foreign key", ErrConstraintViolation)
	ErrRelationshipWrite   = errors.New("relationship write failed")
	ErrTransient           = errors.New("transient datastore error")
)

// Error describes a failed datastore operation
type Error struct {
	Op    string // Operation that failed, e.g. "create", "get", "assign"
	Table string
	ID    string // Entity id when known
	Kind  error  // One of the sentinel kinds, nil when unclassified
	Err   error  // Underlying driver error
}

func (e *Error) Error() string {
	parts := []string{e.Op}
	if e.Table != "" {
		parts = append(parts, e.Table)
	}
	if e.ID != "" {
		parts = append(parts, e.ID)
	}

	msg := strings.Join(parts, " ")
	switch {
	case e.Kind != nil && e.Err != nil && e.Err != e.Kind:
		return fmt.Sprintf("%s: %v: %v", msg, e.Kind, e.Err)
	case e.Kind != nil:
		return fmt.Sprintf("%s: %v", msg, e.Kind)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// wrap classifies err and attaches operation context. nil stays nil.
func wrap(err error, op, table, id string) error {
	if err == nil {
		return nil
	}

	var existing *Error
	if errors.As(err, &existing) {
		return err
	}

	return &Error{Op: op, Table: table, ID: id, Kind: classify(err), Err: err}
}

// notFound builds the error returned when a keyed write or read matched no row
func notFound(op, table, id string) error {
	return &Error{Op: op, Table: table, ID: id, Kind: ErrNotFound}
}

// classify maps a driver or context error onto one of the sentinel kinds
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return ErrNotFound
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone):
		return ErrTransient
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return classifyPostgres(pqErr)
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return classifySQLite(liteErr)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return ErrTransient
	}

	return nil
}

func classifyPostgres(err *pq.Error) error {
	switch {
	case err.Code == "23505" && strings.Contains(err.Constraint, "email"):
		return ErrDuplicateEmail
	case err.Code == "23503":
		return ErrForeignKey
	case err.Code.Class() == "23":
		return ErrConstraintViolation
	case err.Code == "40001", err.Code == "40P01":
		return ErrTransient
	case err.Code == "22P02":
		// only lookups get here; services reject malformed ids before writing
		return ErrNotFound
	}

	switch err.Code.Class() {
	case "08", "53", "57":
		return ErrTransient
	}
	return nil
}

func classifySQLite(err *sqlite.Error) error {
	msg := err.Error()

	switch err.Code() & 0xff {
	case sqlite3.SQLITE_CONSTRAINT:
		switch {
		case strings.Contains(msg, "FOREIGN KEY"):
			return ErrForeignKey
		case strings.Contains(msg, "UNIQUE") && strings.Contains(msg, "email"):
			return ErrDuplicateEmail
		}
		return ErrConstraintViolation
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return ErrTransient
	}
	return nil
}

// Assignment write phases
const (
	PhaseBegin  = "begin"
	PhaseDelete = "delete"
	PhaseInsert = "insert"
	PhaseCommit = "commit"
)

// AssignmentError reports a failed full replace of a todo's assignment set.
// RolledBack tells whether the previous set is still in place.
type AssignmentError struct {
	TodoID     string
	Phase      string
	RolledBack bool
	Err        error
}

func (e *AssignmentError) Error() string {
	state := "todo left with no assignments"
	if e.RolledBack || e.Phase == PhaseBegin || e.Phase == PhaseDelete {
		state = "assignments unchanged"
	}
	return fmt.Sprintf("assign todo %s: %s failed (%s): %v", e.TodoID, e.Phase, state, e.Err)
}

func (e *AssignmentError) Unwrap() []error {
	return []error{ErrRelationshipWrite, e.Err}
}

// IsTransient reports whether err is worth retrying
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}
