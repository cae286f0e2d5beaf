// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package record

import (
	"github.com/danielhkuo/coastcamdb/schema"
)

// ColumnKind partitions the columns of a Table for the inserter.
type ColumnKind int

const (
	PlainColumn ColumnKind = iota
	IDColumn
	ForeignKeyColumn
)

func (k ColumnKind) String() string {
	switch k {
	case IDColumn:
		return "id"
	case ForeignKeyColumn:
		return "foreign key"
	default:
		return "plain"
	}
}

// Column is a named column of a Table and the values queued for it.
type Column struct {
	table *Table
	def   schema.ColumnDef
	kind  ColumnKind
	fk    schema.ForeignKey
	queue ValueQueue
}

func (c *Column) Name() string { return c.def.Name }

func (c *Column) Kind() ColumnKind { return c.kind }

func (c *Column) Table() *Table { return c.table }

func (c *Column) Queue() *ValueQueue { return &c.queue }

// Def returns the schema definition of the column.
func (c *Column) Def() schema.ColumnDef { return c.def }

// LinkedTable is the parent table of a foreign-key column, or "".
func (c *Column) LinkedTable() string {
	if c.kind != ForeignKeyColumn {
		return ""
	}
	return c.fk.Parent
}

// ForeignKey returns the schema link of a foreign-key column.
func (c *Column) ForeignKey() (schema.ForeignKey, bool) {
	return c.fk, c.kind == ForeignKeyColumn
}

// Push queues values for the next rows.
func (c *Column) Push(values ...any) *Column {
	c.queue.Push(values...)
	return c
}

func (c *Column) Len() int { return c.queue.Len() }

func (c *Column) Values() []any { return c.queue.Values() }

// Table is a set of rows being assembled for one schema table. Columns
// keep the order they were added in, which is the order their statements
// run in.
type Table struct {
	def     schema.TableDef
	columns []*Column
	index   map[string]*Column
}

// NewTable starts a row set for a schema table.
func NewTable(name string) (*Table, error) {
	def, err := schema.Lookup(name)
	if err != nil {
		return nil, err
	}
	return &Table{def: def, index: make(map[string]*Column)}, nil
}

func (t *Table) Name() string { return t.def.Name }

func (t *Table) Def() schema.TableDef { return t.def }

// AddColumn returns the named column, creating it on first use, and
// queues values on it.
func (t *Table) AddColumn(name string, values ...any) (*Column, error) {
	if c, ok := t.index[name]; ok {
		return c.Push(values...), nil
	}

	def, err := t.def.Column(name)
	if err != nil {
		return nil, err
	}
	if name == "seq" {
		return nil, &schema.UnknownColumnError{Table: t.def.Name, Column: name}
	}

	c := &Column{table: t, def: def}
	switch fk, ok := t.def.ForeignKey(name); {
	case ok:
		c.kind = ForeignKeyColumn
		c.fk = fk
	case name == "id":
		c.kind = IDColumn
	}

	t.columns = append(t.columns, c)
	t.index[name] = c
	return c.Push(values...), nil
}

// MustColumn is AddColumn for names known to be valid.
func (t *Table) MustColumn(name string, values ...any) *Column {
	c, err := t.AddColumn(name, values...)
	if err != nil {
		panic(err)
	}
	return c
}

// Column looks up an added column.
func (t *Table) Column(name string) (*Column, bool) {
	c, ok := t.index[name]
	return c, ok
}

// Columns returns the added columns in insertion order.
func (t *Table) Columns() []*Column {
	out := make([]*Column, len(t.columns))
	copy(out, t.columns)
	return out
}

func (t *Table) columnsOfKind(kind ColumnKind) []*Column {
	var out []*Column
	for _, c := range t.columns {
		if c.kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// IDColumn returns the id column if one was added.
func (t *Table) IDColumn() *Column {
	if c := t.columnsOfKind(IDColumn); len(c) > 0 {
		return c[0]
	}
	return nil
}

func (t *Table) ForeignKeyColumns() []*Column { return t.columnsOfKind(ForeignKeyColumn) }

func (t *Table) PlainColumns() []*Column { return t.columnsOfKind(PlainColumn) }

// Clear empties every queue. Columns stay attached.
func (t *Table) Clear() {
	for _, c := range t.columns {
		c.queue.Clear()
	}
}
