// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package record

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
)

// Result reports the rows an insert or update touched and the statements
// that failed. A non-empty Failures means the operation was partial.
type Result struct {
	// Op correlates the log lines of one operation.
	Op         string
	Table      string
	Keys       []Key
	Seqs       []int64
	Statements int
	Failures   []*StatementError
}

func newResult(table string) *Result {
	return &Result{Op: uuid.NewString(), Table: table}
}

// Err joins every statement failure, or returns nil.
func (r *Result) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// IDs returns the string ids of the touched rows.
func (r *Result) IDs() []string {
	var ids []string
	for _, k := range r.Keys {
		if k.Column() == "id" {
			ids = append(ids, k.ID())
		}
	}
	return ids
}

func (r *Result) fail(column string, row int, query string, err error) {
	r.Failures = append(r.Failures, &StatementError{
		Table:  r.Table,
		Column: column,
		Row:    row,
		Query:  query,
		Err:    err,
	})
	slog.Error("statement failed", "op", r.Op, "table", r.Table, "column", column, "row", row, "error", err)
}

// run executes one statement of the operation. A failure is recorded and
// reported as false; it never aborts the operation.
func (s *Store) run(ctx context.Context, r *Result, column string, row int, query string, args ...any) bool {
	r.Statements++
	if _, err := s.exec(ctx, query, args...); err != nil {
		r.fail(column, row, s.dialect.Rebind(query), err)
		return false
	}
	return true
}
