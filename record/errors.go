// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package record

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every typed error below unwraps to one of these, so
// callers can branch with errors.Is and still print the full context.
var (
	ErrNoMatchingID     = errors.New("no matching id")
	ErrNoMatchingSeq    = errors.New("no matching seq")
	ErrMismatchedIDSeq  = errors.New("id and seq refer to different rows")
	ErrForeignKey       = errors.New("foreign key error")
	ErrListLength       = errors.New("list length mismatch")
	ErrEmptyValue       = errors.New("empty value")
	ErrValueNotFound    = errors.New("value not found")
	ErrDuplicateID      = errors.New("duplicate id")
	ErrInvalidID        = errors.New("invalid id")
	ErrValueType        = errors.New("unsupported value type")
	ErrBlankIDConflict  = errors.New("more than one blank id")
	ErrPlaceholderSpace = errors.New("no free placeholder id")
)

// NoMatchingIDError reports a lookup by id that found nothing.
type NoMatchingIDError struct {
	Table string
	ID    string
}

func (e *NoMatchingIDError) Error() string {
	return fmt.Sprintf("no row in %s with id %q", e.Table, e.ID)
}

func (e *NoMatchingIDError) Unwrap() error { return ErrNoMatchingID }

// NoMatchingSeqError reports a lookup by seq that found nothing.
type NoMatchingSeqError struct {
	Table string
	Seq   int64
}

func (e *NoMatchingSeqError) Error() string {
	return fmt.Sprintf("no row in %s with seq %d", e.Table, e.Seq)
}

func (e *NoMatchingSeqError) Unwrap() error { return ErrNoMatchingSeq }

// MismatchedIDSeqError reports an id and seq that do not name the same row.
type MismatchedIDSeqError struct {
	Table string
	ID    string
	Seq   int64
}

func (e *MismatchedIDSeqError) Error() string {
	return fmt.Sprintf("id %q and seq %d do not refer to the same row in %s", e.ID, e.Seq, e.Table)
}

func (e *MismatchedIDSeqError) Unwrap() error { return ErrMismatchedIDSeq }

// ForeignKeyError reports a required foreign key that is missing or malformed.
type ForeignKeyError struct {
	Table  string
	Column string
	Reason string
}

func (e *ForeignKeyError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("foreign key %s.%s: %s", e.Table, e.Column, e.Reason)
	}
	return fmt.Sprintf("foreign key on %s: %s", e.Table, e.Reason)
}

func (e *ForeignKeyError) Unwrap() error { return ErrForeignKey }

// NoMatchingParentKeyError reports a foreign key value absent from its parent table.
type NoMatchingParentKeyError struct {
	Table  string
	Column string
	Parent string
	Value  any
}

func (e *NoMatchingParentKeyError) Error() string {
	return fmt.Sprintf("%s.%s: value %v does not exist in %s", e.Table, e.Column, e.Value, e.Parent)
}

func (e *NoMatchingParentKeyError) Unwrap() error { return ErrForeignKey }

// ListLengthError reports queued values whose count disagrees with the
// number of rows or keys in the same operation.
type ListLengthError struct {
	Table  string
	Column string
	Want   int
	Got    int
}

func (e *ListLengthError) Error() string {
	return fmt.Sprintf("%s.%s: expected %d values, got %d", e.Table, e.Column, e.Want, e.Got)
}

func (e *ListLengthError) Unwrap() error { return ErrListLength }

// EmptyValueError reports an insert or update with nothing queued.
type EmptyValueError struct {
	Table  string
	Column string
}

func (e *EmptyValueError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("no columns queued for %s", e.Table)
	}
	return fmt.Sprintf("no value queued for %s.%s", e.Table, e.Column)
}

func (e *EmptyValueError) Unwrap() error { return ErrEmptyValue }

// ValueNotFoundError reports an update target value that no row holds.
type ValueNotFoundError struct {
	Table  string
	Column string
	Value  any
	Key    *Key
}

func (e *ValueNotFoundError) Error() string {
	if e.Key != nil {
		return fmt.Sprintf("%s.%s: row %s does not hold value %v", e.Table, e.Column, e.Key, e.Value)
	}
	return fmt.Sprintf("%s.%s: value %v not found", e.Table, e.Column, e.Value)
}

func (e *ValueNotFoundError) Unwrap() error { return ErrValueNotFound }

// DuplicateIDError reports an id that already exists in the table or the queue.
type DuplicateIDError struct {
	Table string
	ID    string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("id %q already exists in %s", e.ID, e.Table)
}

func (e *DuplicateIDError) Unwrap() error { return ErrDuplicateID }

// InvalidIDError reports an id outside the 1-7 character range.
type InvalidIDError struct {
	Table string
	ID    string
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid id %q for %s: must be 1-7 characters", e.ID, e.Table)
}

func (e *InvalidIDError) Unwrap() error { return ErrInvalidID }

// ValueTypeError reports a value that cannot be stored in the column.
type ValueTypeError struct {
	Table  string
	Column string
	Value  any
	Err    error
}

func (e *ValueTypeError) Error() string {
	msg := fmt.Sprintf("%s.%s: cannot store %v (%T)", e.Table, e.Column, e.Value, e.Value)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ValueTypeError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrValueType, e.Err}
	}
	return []error{ErrValueType}
}

// BlankIDConflictError reports a table holding more than one blank id,
// which makes the next foreign-key insert ambiguous.
type BlankIDConflictError struct {
	Table string
	Count int
}

func (e *BlankIDConflictError) Error() string {
	return fmt.Sprintf("%s has %d rows with a blank id", e.Table, e.Count)
}

func (e *BlankIDConflictError) Unwrap() error { return ErrBlankIDConflict }

// StatementError is a failed SQL statement inside a multi-statement
// operation. It does not stop the statements that follow.
type StatementError struct {
	Table  string
	Column string
	Row    int
	Query  string
	Err    error
}

func (e *StatementError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s.%s row %d: %v", e.Table, e.Column, e.Row, e.Err)
	}
	return fmt.Sprintf("%s row %d: %v", e.Table, e.Row, e.Err)
}

func (e *StatementError) Unwrap() error { return e.Err }
