// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package record

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/danielhkuo/coastcamdb/schema"
)

// insertPlan is a validated Table: normalized values per column and the
// ids to assign, ready to be written row by row.
type insertPlan struct {
	rows   int
	fks    []*Column
	id     *Column
	plain  []*Column
	values map[*Column][]any
	ids    []string
}

// Insert writes the rows queued on t. Validation runs first and writes
// nothing, except the geometry sentinel a usedgcp insert may need; a
// validation failure is returned as err.
//
// Each row is then built in order: foreign keys, id, remaining columns.
// Statement failures do not stop later rows; they are collected in the
// Result. A row whose creating insert fails skips its other statements.
// The queues of t are cleared in every case.
func (s *Store) Insert(ctx context.Context, t *Table) (*Result, error) {
	defer t.Clear()

	p, err := s.planInsert(ctx, t)
	if err != nil {
		slog.Warn("insert rejected", "table", t.Name(), "error", err)
		return nil, err
	}

	res := newResult(t.Name())
	for i := 0; i < p.rows; i++ {
		s.insertRow(ctx, t, p, i, res)
	}

	slog.Info("insert finished",
		"op", res.Op,
		"table", res.Table,
		"rows", p.rows,
		"statements", res.Statements,
		"failed", len(res.Failures),
	)
	return res, nil
}

func (s *Store) planInsert(ctx context.Context, t *Table) (*insertPlan, error) {
	table := t.Name()
	def := t.Def()
	cols := t.Columns()

	if len(cols) == 0 {
		return nil, &EmptyValueError{Table: table}
	}

	p := &insertPlan{
		fks:    t.ForeignKeyColumns(),
		id:     t.IDColumn(),
		plain:  t.PlainColumns(),
		values: make(map[*Column][]any, len(cols)),
	}

	p.rows = cols[0].Len()
	if len(p.fks) > 0 {
		p.rows = p.fks[0].Len()
		for _, c := range p.fks[1:] {
			if c.Len() != p.rows {
				return nil, &ForeignKeyError{
					Table:  table,
					Column: c.Name(),
					Reason: fmt.Sprintf("has %d values but %s has %d", c.Len(), p.fks[0].Name(), p.rows),
				}
			}
		}
	}
	// an empty foreign key list among non-empty ones is a ForeignKeyError
	for _, c := range cols {
		if c.Len() == 0 {
			return nil, &EmptyValueError{Table: table, Column: c.Name()}
		}
	}
	for _, c := range cols {
		if c.Len() != p.rows {
			return nil, &ListLengthError{Table: table, Column: c.Name(), Want: p.rows, Got: c.Len()}
		}
	}

	if !def.IsRoot() {
		for _, fk := range def.ForeignKeys {
			if _, ok := t.Column(fk.Column); !ok {
				return nil, &ForeignKeyError{Table: table, Column: fk.Column, Reason: "required foreign key not given"}
			}
		}
	} else if p.id == nil {
		return nil, &EmptyValueError{Table: table, Column: "id"}
	}

	for _, c := range cols {
		vals := make([]any, p.rows)
		for i := range vals {
			v, err := normalize(table, c.Def(), c.Queue().At(i))
			if err != nil {
				return nil, err
			}
			vals[i] = v
		}
		p.values[c] = vals
	}

	if p.id != nil {
		seen := make(map[string]bool, p.rows)
		for _, v := range p.values[p.id] {
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
			p.ids = append(p.ids, id)
		}
	}

	var geomSeq *Column
	for _, c := range p.fks {
		fk, _ := c.ForeignKey()
		if fk.ParentKey == schema.KeySeq {
			geomSeq = c
			continue
		}
		for _, v := range p.values[c] {
			if err := s.ValidateLinkedKey(ctx, table, c.Name(), v); err != nil {
				return nil, err
			}
		}
	}

	// Last, since resolving may insert the geometry sentinel.
	if geomSeq != nil {
		vals := p.values[geomSeq]
		for i, v := range vals {
			if v == nil {
				return nil, &ForeignKeyError{Table: table, Column: geomSeq.Name(), Reason: "value is empty"}
			}
			seq, err := s.ResolveGeometrySequence(ctx, v)
			if err != nil {
				return nil, err
			}
			vals[i] = seq
		}
	}

	return p, nil
}

func (s *Store) insertRow(ctx context.Context, t *Table, p *insertPlan, i int, res *Result) {
	table := t.Name()

	var id string
	if p.id != nil {
		id = p.ids[i]
	}

	if len(p.fks) > 0 {
		if t.Def().HasID() {
			if _, err := s.ReleaseBlankID(ctx, table); err != nil {
				res.fail("id", i, "", err)
				return
			}
		}

		names, args := p.foreignKeys(i)
		query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			s.quote(table), s.quoteAll(names), placeholders(len(names)))
		if !s.run(ctx, res, strings.Join(names, ","), i, query, args...) {
			return
		}
	} else {
		query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (?)", s.quote(table), s.quote("id"))
		if !s.run(ctx, res, "id", i, query, id) {
			return
		}
	}

	seq, _, err := s.MaxSeq(ctx, table)
	if err != nil {
		res.fail("seq", i, "", err)
		return
	}

	key := SeqKey(seq)
	if p.id != nil {
		if len(p.fks) > 0 && !s.assignID(ctx, t, p, i, res) {
			return
		}
		key = IDKey(id)
	}

	for _, c := range p.plain {
		query := fmt.Sprintf("UPDATE %s SET %s = ? WHERE %s = ?",
			s.quote(table), s.quote(c.Name()), s.quote(key.Column()))
		s.run(ctx, res, c.Name(), i, query, p.values[c][i], key.Value())
	}

	res.Keys = append(res.Keys, key)
	res.Seqs = append(res.Seqs, seq)
	slog.Debug("row inserted", "op", res.Op, "table", table, "key", key.String(), "seq", seq)
}

// assignID gives row i its id: the blank-id row holding the same foreign
// keys is rewritten if it exists, otherwise a new row is inserted.
func (s *Store) assignID(ctx context.Context, t *Table, p *insertPlan, i int, res *Result) bool {
	table := t.Name()
	names, args := p.foreignKeys(i)

	conds := make([]string, 0, len(names)+1)
	for _, n := range names {
		conds = append(conds, s.quote(n)+" = ?")
	}
	conds = append(conds, s.quote("id")+" = ?")
	where := strings.Join(conds, " AND ")

	var reserved int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", s.quote(table), where)
	if err := s.queryRow(ctx, countQuery, append(args, "")...).Scan(&reserved); err != nil {
		res.fail("id", i, countQuery, err)
		return false
	}

	if reserved > 0 {
		query := fmt.Sprintf("UPDATE %s SET %s = ? WHERE %s", s.quote(table), s.quote("id"), where)
		return s.run(ctx, res, "id", i, query, append([]any{p.ids[i]}, append(args, "")...)...)
	}

	names = append(names, "id")
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		s.quote(table), s.quoteAll(names), placeholders(len(names)))
	return s.run(ctx, res, "id", i, query, append(args, p.ids[i])...)
}

func (p *insertPlan) foreignKeys(i int) ([]string, []any) {
	names := make([]string, len(p.fks))
	args := make([]any, len(p.fks))
	for j, c := range p.fks {
		names[j] = c.Name()
		args[j] = p.values[c][i]
	}
	return names, args
}
