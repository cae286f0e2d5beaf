// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package record

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/coastcamdb/schema"
)

// maxPlaceholderAttempts bounds the collision retries of AllocatePlaceholderID.
const maxPlaceholderAttempts = 64

func (s *Store) idTable(table string) error {
	def, err := schema.Lookup(table)
	if err != nil {
		return err
	}
	if !def.HasID() {
		return &schema.UnknownColumnError{Table: table, Column: "id"}
	}
	return nil
}

// IsDuplicateID reports whether id already exists in table.
func (s *Store) IsDuplicateID(ctx context.Context, table, id string) (bool, error) {
	if err := s.idTable(table); err != nil {
		return false, err
	}
	return s.exists(ctx, table, "id", id)
}

// BlankIDCount returns how many rows of table have an empty id.
func (s *Store) BlankIDCount(ctx context.Context, table string) (int, error) {
	if err := s.idTable(table); err != nil {
		return 0, err
	}
	return s.count(ctx, table, "id", "")
}

// HasBlankID reports whether a row of table is reserved with an empty id.
// More than one such row is reported as *BlankIDConflictError.
func (s *Store) HasBlankID(ctx context.Context, table string) (bool, error) {
	n, err := s.BlankIDCount(ctx, table)
	if err != nil {
		return false, err
	}
	if n > 1 {
		return true, &BlankIDConflictError{Table: table, Count: n}
	}
	return n == 1, nil
}

// AllocatePlaceholderID draws random numeric ids until one is unused in table.
func (s *Store) AllocatePlaceholderID(ctx context.Context, table string) (string, error) {
	for attempt := 0; attempt < maxPlaceholderAttempts; attempt++ {
		id := s.placeholder()
		if err := validateID(table, id); err != nil {
			return "", err
		}
		dup, err := s.IsDuplicateID(ctx, table, id)
		if err != nil {
			return "", err
		}
		if !dup {
			return id, nil
		}
		slog.Debug("placeholder id collision", "table", table, "id", id)
	}
	return "", fmt.Errorf("%s: %w after %d attempts", table, ErrPlaceholderSpace, maxPlaceholderAttempts)
}

// ReleaseBlankID renames the reserved blank-id row of table, if any, to a
// fresh placeholder id so a new row can take the blank. It returns the
// placeholder, or "" when nothing was reserved.
func (s *Store) ReleaseBlankID(ctx context.Context, table string) (string, error) {
	blank, err := s.HasBlankID(ctx, table)
	if err != nil || !blank {
		return "", err
	}

	id, err := s.AllocatePlaceholderID(ctx, table)
	if err != nil {
		return "", err
	}

	query := fmt.Sprintf("UPDATE %s SET %s = ? WHERE %s = ?", s.quote(table), s.quote("id"), s.quote("id"))
	if _, err := s.exec(ctx, query, id, ""); err != nil {
		return "", fmt.Errorf("failed to release blank id of %s: %w", table, err)
	}

	slog.Warn("blank id released to placeholder", "table", table, "id", id)
	return id, nil
}
