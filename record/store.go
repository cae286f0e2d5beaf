// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package record

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/danielhkuo/coastcamdb/db"
	"github.com/danielhkuo/coastcamdb/schema"
)

// Store runs the engine against one database connection. It is not safe
// for concurrent use: blank-id reservation and MAX(seq) read-back are
// read-then-act sequences.
type Store struct {
	conn    *sql.DB
	dialect db.Dialect

	// placeholder draws candidate placeholder ids.
	placeholder func() string
}

func NewStore(conn *sql.DB, dialect db.Dialect) *Store {
	return &Store{
		conn:    conn,
		dialect: dialect,
		placeholder: func() string {
			return strconv.Itoa(rand.IntN(10_000_000))
		},
	}
}

func (s *Store) Conn() *sql.DB { return s.conn }

func (s *Store) Dialect() db.Dialect { return s.dialect }

func (s *Store) quote(ident string) string { return s.dialect.Quote(ident) }

func (s *Store) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	query = s.dialect.Rebind(query)
	slog.Debug("exec", "query", query, "args", args)
	return s.conn.ExecContext(ctx, query, args...)
}

func (s *Store) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	query = s.dialect.Rebind(query)
	slog.Debug("query", "query", query, "args", args)
	return s.conn.QueryContext(ctx, query, args...)
}

func (s *Store) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	query = s.dialect.Rebind(query)
	slog.Debug("query", "query", query, "args", args)
	return s.conn.QueryRowContext(ctx, query, args...)
}

// MaxSeq returns the most recently assigned seq of table. ok is false when
// the table is empty.
func (s *Store) MaxSeq(ctx context.Context, table string) (seq int64, ok bool, err error) {
	if _, err := schema.Lookup(table); err != nil {
		return 0, false, err
	}

	var max sql.NullInt64
	err = s.queryRow(ctx, fmt.Sprintf("SELECT MAX(%s) FROM %s", s.quote("seq"), s.quote(table))).Scan(&max)
	if err != nil {
		return 0, false, fmt.Errorf("failed to read max seq of %s: %w", table, err)
	}
	return max.Int64, max.Valid, nil
}

// count returns how many rows of table have column = value.
func (s *Store) count(ctx context.Context, table, column string, value any) (int, error) {
	var n int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = ?", s.quote(table), s.quote(column))
	if err := s.queryRow(ctx, query, value).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s.%s: %w", table, column, err)
	}
	return n, nil
}

func (s *Store) exists(ctx context.Context, table, column string, value any) (bool, error) {
	var one int
	query := fmt.Sprintf("SELECT 1 FROM %s WHERE %s = ? LIMIT 1", s.quote(table), s.quote(column))
	err := s.queryRow(ctx, query, value).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up %s.%s: %w", table, column, err)
	}
	return true, nil
}

// placeholders returns "?, ?, ?" for n arguments.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func (s *Store) quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = s.quote(n)
	}
	return strings.Join(quoted, ", ")
}
