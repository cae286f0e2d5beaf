// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrUnknownTable  = errors.New("unknown table")
	ErrUnknownColumn = errors.New("unknown column")
	ErrBadText       = errors.New("text does not fit column type")
)

// UnknownTableError reports a table name that is not part of the schema graph.
type UnknownTableError struct {
	Table string
}

func (e *UnknownTableError) Error() string {
	return fmt.Sprintf("unknown table %q", e.Table)
}

func (e *UnknownTableError) Unwrap() error { return ErrUnknownTable }

// UnknownColumnError reports a column name that the table does not declare.
type UnknownColumnError struct {
	Table  string
	Column string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("table %q has no column %q", e.Table, e.Column)
}

func (e *UnknownColumnError) Unwrap() error { return ErrUnknownColumn }

// KeyKind says how a row is identified: by its string id or by its seq.
type KeyKind int

const (
	KeyID KeyKind = iota
	KeySeq
)

func (k KeyKind) String() string {
	if k == KeySeq {
		return "seq"
	}
	return "id"
}

// Column returns the column name backing the key kind.
func (k KeyKind) Column() string { return k.String() }

// ColumnType is the storage type of a column.
type ColumnType int

const (
	Text ColumnType = iota
	Integer
	Real
	// Matrix columns hold a numeric array serialized by the matrix package.
	Matrix
)

type ColumnDef struct {
	Name string
	Type ColumnType
}

// ForeignKey links Column of a child table to the key of Parent.
type ForeignKey struct {
	Column    string
	Parent    string
	ParentKey KeyKind
}

// TableDef describes one table of the fixed schema.
type TableDef struct {
	Name        string
	Identity    KeyKind
	ForeignKeys []ForeignKey
	// Columns excludes seq, which every table carries.
	Columns []ColumnDef
}

// IsRoot reports whether the table has no parent.
func (d TableDef) IsRoot() bool { return len(d.ForeignKeys) == 0 }

// HasID reports whether the table carries a string id column.
func (d TableDef) HasID() bool { return d.Identity == KeyID }

// Column looks up a column definition by name.
func (d TableDef) Column(name string) (ColumnDef, error) {
	for _, c := range d.Columns {
		if c.Name == name {
			return c, nil
		}
	}
	if name == "seq" {
		return ColumnDef{Name: "seq", Type: Integer}, nil
	}
	return ColumnDef{}, &UnknownColumnError{Table: d.Name, Column: name}
}

// ForeignKey returns the foreign key declared on column, if any.
func (d TableDef) ForeignKey(column string) (ForeignKey, bool) {
	for _, fk := range d.ForeignKeys {
		if fk.Column == column {
			return fk, true
		}
	}
	return ForeignKey{}, false
}

// ColumnNames lists the declared columns in catalogue order, seq first.
func (d TableDef) ColumnNames() []string {
	names := make([]string, 0, len(d.Columns)+1)
	names = append(names, "seq")
	for _, c := range d.Columns {
		names = append(names, c.Name)
	}
	return names
}

// Lookup returns the definition of table.
func Lookup(table string) (TableDef, error) {
	def, ok := byName[table]
	if !ok {
		return TableDef{}, &UnknownTableError{Table: table}
	}
	return def, nil
}

// ForeignKeysOf returns the foreign keys the table requires, in declaration order.
func ForeignKeysOf(table string) ([]ForeignKey, error) {
	def, err := Lookup(table)
	if err != nil {
		return nil, err
	}
	out := make([]ForeignKey, len(def.ForeignKeys))
	copy(out, def.ForeignKeys)
	return out, nil
}

// ParentKeyKind returns which parent column (id or seq) fkColumn references.
func ParentKeyKind(table, fkColumn string) (KeyKind, error) {
	fk, err := foreignKey(table, fkColumn)
	if err != nil {
		return KeyID, err
	}
	return fk.ParentKey, nil
}

// LinkedTable returns the parent table fkColumn references.
func LinkedTable(table, fkColumn string) (string, error) {
	fk, err := foreignKey(table, fkColumn)
	if err != nil {
		return "", err
	}
	return fk.Parent, nil
}

// IdentityOf returns the row identity kind of table.
func IdentityOf(table string) (KeyKind, error) {
	def, err := Lookup(table)
	if err != nil {
		return KeyID, err
	}
	return def.Identity, nil
}

// IsForeignKey reports whether column is a foreign key of table.
func IsForeignKey(table, column string) bool {
	def, ok := byName[table]
	if !ok {
		return false
	}
	_, ok = def.ForeignKey(column)
	return ok
}

// Tables returns every table name in insert order: parents before children.
func Tables() []string {
	out := make([]string, len(tables))
	for i, t := range tables {
		out[i] = t.Name
	}
	return out
}

// Definitions returns every table definition in insert order.
func Definitions() []TableDef {
	out := make([]TableDef, len(tables))
	copy(out, tables)
	return out
}

func foreignKey(table, fkColumn string) (ForeignKey, error) {
	def, err := Lookup(table)
	if err != nil {
		return ForeignKey{}, err
	}
	fk, ok := def.ForeignKey(fkColumn)
	if !ok {
		return ForeignKey{}, &UnknownColumnError{Table: table, Column: fkColumn}
	}
	return fk, nil
}

// ParseText converts command-line or query text into the Go type of
// table.column: int64 for integers, float64 for reals, the text itself
// otherwise. Matrix text is returned unparsed.
func ParseText(table, column, text string) (any, error) {
	def, err := Lookup(table)
	if err != nil {
		return nil, err
	}
	col, err := def.Column(column)
	if err != nil {
		return nil, err
	}

	s := strings.TrimSpace(text)
	switch col.Type {
	case Integer:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s.%s wants an integer, got %q", ErrBadText, table, column, text)
		}
		return n, nil
	case Real:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s.%s wants a number, got %q", ErrBadText, table, column, text)
		}
		return f, nil
	}
	return text, nil
}
