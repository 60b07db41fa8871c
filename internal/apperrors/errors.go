// Package apperrors defines the failure taxonomy shared by the stores
// and controllers: NotFound, Conflict, InvalidState, Unauthorized and
// StorageError. Controllers map kinds to HTTP codes; stores never leak
// raw driver errors.
package apperrors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Kind int

const (
	NotFound Kind = iota + 1
	Conflict
	InvalidState
	Unauthorized
	StorageError
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...interface{}) *Error {
	return New(NotFound, format, args...)
}

func Conflictf(format string, args ...interface{}) *Error {
	return New(Conflict, format, args...)
}

func InvalidStatef(format string, args ...interface{}) *Error {
	return New(InvalidState, format, args...)
}

func Unauthorizedf(format string, args ...interface{}) *Error {
	return New(Unauthorized, format, args...)
}

// KindOf returns the kind carried by err, or 0 for plain errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return 0
}

// IsDuplicate reports whether err is a uniqueness violation. gorm
// translates these on postgres; the sqlite driver used in tests still
// surfaces the raw constraint message, hence the string probe.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint") || strings.Contains(msg, "duplicate key")
}

// FromDB translates a storage failure: uniqueness violations become a
// Conflict with the given message, anything else a StorageError.
func FromDB(err error, conflictMsg string) *Error {
	if IsDuplicate(err) {
		return &Error{Kind: Conflict, Message: conflictMsg, Err: err}
	}
	return &Error{Kind: StorageError, Message: err.Error(), Err: err}
}
