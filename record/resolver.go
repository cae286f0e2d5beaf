// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package record

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/danielhkuo/coastcamdb/schema"
)

// ValidateLinkedKey checks that value exists as the parent key that
// table.fkColumn references: the parent id, or geometry.seq for
// usedgcp.geometrySequence.
func (s *Store) ValidateLinkedKey(ctx context.Context, table, fkColumn string, value any) error {
	def, err := schema.Lookup(table)
	if err != nil {
		return err
	}
	fk, ok := def.ForeignKey(fkColumn)
	if !ok {
		return &schema.UnknownColumnError{Table: table, Column: fkColumn}
	}

	if value == nil || value == "" {
		return &ForeignKeyError{Table: table, Column: fkColumn, Reason: "value is empty"}
	}

	key, err := parentKey(table, fk, value)
	if err != nil {
		return err
	}

	found, err := s.exists(ctx, fk.Parent, key.Column(), key.Value())
	if err != nil {
		return err
	}
	if !found {
		return &NoMatchingParentKeyError{Table: table, Column: fkColumn, Parent: fk.Parent, Value: key.Value()}
	}
	return nil
}

// parentKey converts a foreign key value into the parent's key type.
func parentKey(table string, fk schema.ForeignKey, value any) (Key, error) {
	if fk.ParentKey == schema.KeyID {
		id, err := idString(table, value)
		if err != nil {
			return Key{}, err
		}
		return IDKey(id), nil
	}

	seq, err := seqValue(table, fk.Column, value)
	if err != nil {
		return Key{}, err
	}
	return SeqKey(seq), nil
}

func seqValue(table, column string, value any) (int64, error) {
	if n, ok := toInt64(value); ok {
		return n, nil
	}
	if text, ok := value.(string); ok {
		if n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, &ValueTypeError{Table: table, Column: column, Value: value}
}

// ResolveForeignKeyFor locates a row by key and returns its first foreign
// key column and value, used to qualify updates of child tables.
func (s *Store) ResolveForeignKeyFor(ctx context.Context, table string, key Key) (string, any, error) {
	def, err := schema.Lookup(table)
	if err != nil {
		return "", nil, err
	}
	if def.IsRoot() {
		return "", nil, &ForeignKeyError{Table: table, Reason: "table has no foreign key"}
	}
	if key.Kind() == schema.KeyID && !def.HasID() {
		return "", nil, key.notFound(table)
	}

	fk := def.ForeignKeys[0]
	colDef, _ := def.Column(fk.Column)
	dest := scanTarget(colDef)

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?",
		s.quote(fk.Column), s.quote(table), s.quote(key.Column()))
	err = s.queryRow(ctx, query, key.Value()).Scan(dest)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil, key.notFound(table)
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to resolve foreign key of %s %s: %w", table, key, err)
	}

	return fk.Column, scanned(dest), nil
}

// ResolveGeometrySequence returns the geometry seq a usedgcp row links to.
// A seq that exists is kept. Otherwise the most recent geometry wins; on an
// empty geometry table a sentinel row with seq 0 is inserted first.
func (s *Store) ResolveGeometrySequence(ctx context.Context, value any) (int64, error) {
	seq, err := seqValue(schema.UsedGCP, schema.GeometrySequence, value)
	if err != nil {
		return 0, err
	}

	found, err := s.exists(ctx, schema.Geometry, "seq", seq)
	if err != nil {
		return 0, err
	}
	if found {
		return seq, nil
	}

	latest, ok, err := s.MaxSeq(ctx, schema.Geometry)
	if err != nil {
		return 0, err
	}
	if !ok {
		query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (?)", s.quote(schema.Geometry), s.quote("seq"))
		if _, err := s.exec(ctx, query, 0); err != nil {
			return 0, fmt.Errorf("failed to insert geometry sentinel: %w", err)
		}
		slog.Warn("geometry table empty, inserted sentinel row")

		if latest, _, err = s.MaxSeq(ctx, schema.Geometry); err != nil {
			return 0, err
		}
	}

	slog.Warn("geometry sequence reassigned to latest", "requested", seq, "seq", latest)
	return latest, nil
}
