// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package record

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/coastcamdb/schema"
)

// Update writes the values queued on col to the rows named by keys, value
// i to keys[i]. Rows of child tables are located through their foreign key
// as well as their own key. Every value, foreign key and key is validated
// before the first UPDATE. The queue of col is cleared in every case.
//
// Updating the id column renames rows; see UpdateID.
func (s *Store) Update(ctx context.Context, col *Column, keys []Key) (*Result, error) {
	if col.Kind() == IDColumn {
		old := make([]string, len(keys))
		for i, k := range keys {
			if k.Kind() != schema.KeyID {
				col.queue.Clear()
				return nil, &ValueTypeError{Table: col.Table().Name(), Column: "id", Value: k.String()}
			}
			old[i] = k.ID()
		}
		return s.UpdateID(ctx, col, old)
	}

	defer col.queue.Clear()

	t := col.Table()
	table := t.Name()
	def := t.Def()

	if col.Len() == 0 {
		return nil, &EmptyValueError{Table: table, Column: col.Name()}
	}
	if len(keys) != col.Len() {
		return nil, &ListLengthError{Table: table, Column: col.Name(), Want: len(keys), Got: col.Len()}
	}

	values := make([]any, col.Len())
	for i, v := range col.Values() {
		norm, err := normalize(table, col.Def(), v)
		if err != nil {
			return nil, err
		}
		if col.Kind() == ForeignKeyColumn {
			if err := s.ValidateLinkedKey(ctx, table, col.Name(), norm); err != nil {
				return nil, err
			}
		}
		values[i] = norm
	}

	for _, k := range keys {
		if err := s.checkKey(ctx, def, k); err != nil {
			return nil, err
		}
	}

	res := newResult(table)
	for i, k := range keys {
		if def.IsRoot() {
			query := fmt.Sprintf("UPDATE %s SET %s = ? WHERE %s = ?",
				s.quote(table), s.quote(col.Name()), s.quote(k.Column()))
			if !s.run(ctx, res, col.Name(), i, query, values[i], k.Value()) {
				continue
			}
		} else {
			fkCol, fkVal, err := s.ResolveForeignKeyFor(ctx, table, k)
			if err != nil {
				res.fail(col.Name(), i, "", err)
				continue
			}

			fkCond := s.quote(fkCol) + " = ?"
			args := []any{values[i], fkVal, k.Value()}
			if fkVal == nil {
				fkCond = s.quote(fkCol) + " IS NULL"
				args = []any{values[i], k.Value()}
			}
			query := fmt.Sprintf("UPDATE %s SET %s = ? WHERE %s AND %s = ?",
				s.quote(table), s.quote(col.Name()), fkCond, s.quote(k.Column()))
			if !s.run(ctx, res, col.Name(), i, query, args...) {
				continue
			}
		}
		res.Keys = append(res.Keys, k)
	}

	slog.Info("update finished",
		"op", res.Op,
		"table", table,
		"column", col.Name(),
		"rows", len(keys),
		"failed", len(res.Failures),
	)
	return res, nil
}

func (s *Store) checkKey(ctx context.Context, def schema.TableDef, k Key) error {
	if k.Kind() == schema.KeyID && !def.HasID() {
		return k.notFound(def.Name)
	}
	found, err := s.exists(ctx, def.Name, k.Column(), k.Value())
	if err != nil {
		return err
	}
	if !found {
		return k.notFound(def.Name)
	}
	return nil
}

// UpdateID renames the rows whose ids are oldIDs to the ids queued on col,
// which must be the id column. A blank old id names the reserved row.
// Child rows referencing a renamed id follow the rename.
func (s *Store) UpdateID(ctx context.Context, col *Column, oldIDs []string) (*Result, error) {
	defer col.queue.Clear()

	table := col.Table().Name()
	if col.Kind() != IDColumn {
		return nil, fmt.Errorf("%s.%s is not an id column", table, col.Name())
	}
	if col.Len() == 0 {
		return nil, &EmptyValueError{Table: table, Column: "id"}
	}
	if len(oldIDs) != col.Len() {
		return nil, &ListLengthError{Table: table, Column: "id", Want: len(oldIDs), Got: col.Len()}
	}

	newIDs := make([]string, col.Len())
	seen := make(map[string]bool, col.Len())
	for i, v := range col.Values() {
		id, err := idString(table, v)
		if err != nil {
			return nil, err
		}
		if err := validateID(table, id); err != nil {
			return nil, err
		}
		if seen[id] {
			return nil, &DuplicateIDError{Table: table, ID: id}
		}
		seen[id] = true

		dup, err := s.IsDuplicateID(ctx, table, id)
		if err != nil {
			return nil, err
		}
		if dup {
			return nil, &DuplicateIDError{Table: table, ID: id}
		}
		newIDs[i] = id
	}

	for _, old := range oldIDs {
		if err := s.CheckID(ctx, table, old); err != nil {
			return nil, err
		}
	}

	res := newResult(table)
	for i, old := range oldIDs {
		query := fmt.Sprintf("UPDATE %s SET %s = ? WHERE %s = ?", s.quote(table), s.quote("id"), s.quote("id"))
		if !s.run(ctx, res, "id", i, query, newIDs[i], old) {
			continue
		}
		res.Keys = append(res.Keys, IDKey(newIDs[i]))

		if old == "" {
			continue
		}
		for _, child := range schema.Definitions() {
			for _, fk := range child.ForeignKeys {
				if fk.Parent != table || fk.ParentKey != schema.KeyID {
					continue
				}
				query := fmt.Sprintf("UPDATE %s SET %s = ? WHERE %s = ?",
					s.quote(child.Name), s.quote(fk.Column), s.quote(fk.Column))
				s.run(ctx, res, child.Name+"."+fk.Column, i, query, newIDs[i], old)
			}
		}
	}

	slog.Info("id update finished", "op", res.Op, "table", table, "rows", len(oldIDs), "failed", len(res.Failures))
	return res, nil
}

// Candidates returns the keys of the rows whose column holds value, in
// insertion order. A nil value matches NULL. No match is reported as
// *ValueNotFoundError.
func (s *Store) Candidates(ctx context.Context, table, column string, value any) ([]Key, error) {
	def, err := schema.Lookup(table)
	if err != nil {
		return nil, err
	}
	colDef, err := def.Column(column)
	if err != nil {
		return nil, err
	}
	norm, err := normalize(table, colDef, value)
	if err != nil {
		return nil, err
	}

	cond := s.quote(column) + " = ?"
	var args []any
	if norm == nil {
		cond = s.quote(column) + " IS NULL"
	} else {
		args = append(args, norm)
	}

	identity := def.Identity.Column()
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY %s",
		s.quote(identity), s.quote(table), cond, s.quote("seq"))
	rows, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find %s.%s candidates: %w", table, column, err)
	}
	defer rows.Close()

	var keys []Key
	for rows.Next() {
		if def.HasID() {
			var id string
			if err := rows.Scan(&id); err != nil {
				return nil, fmt.Errorf("failed to scan %s id: %w", table, err)
			}
			keys = append(keys, IDKey(id))
		} else {
			var seq int64
			if err := rows.Scan(&seq); err != nil {
				return nil, fmt.Errorf("failed to scan %s seq: %w", table, err)
			}
			keys = append(keys, SeqKey(seq))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s candidates: %w", table, err)
	}

	if len(keys) == 0 {
		return nil, &ValueNotFoundError{Table: table, Column: column, Value: value}
	}
	return keys, nil
}

// UpdateMatching replaces old with the single value queued on col, in the
// row chosen among the Candidates for old. Several rows may hold the same
// value, so the caller must pick one; a chosen key outside the candidates
// is rejected before any UPDATE runs.
func (s *Store) UpdateMatching(ctx context.Context, col *Column, old any, chosen Key) (*Result, error) {
	table := col.Table().Name()

	candidates, err := s.Candidates(ctx, table, col.Name(), old)
	if err != nil {
		col.queue.Clear()
		return nil, err
	}

	for _, c := range candidates {
		if c == chosen {
			return s.Update(ctx, col, []Key{chosen})
		}
	}

	col.queue.Clear()
	return nil, &ValueNotFoundError{Table: table, Column: col.Name(), Value: old, Key: &chosen}
}
