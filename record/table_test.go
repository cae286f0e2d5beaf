// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/coastcamdb/schema"
)

func TestNewTableUnknown(t *testing.T) {
	_, err := NewTable("lighthouse")
	assert.ErrorIs(t, err, schema.ErrUnknownTable)
}

func TestAddColumnKinds(t *testing.T) {
	tbl, err := NewTable(schema.Camera)
	require.NoError(t, err)

	tbl.MustColumn("x", 1.0)
	tbl.MustColumn("stationID", "1234567")
	tbl.MustColumn("id", "cam1")
	tbl.MustColumn("li_IP", "ip1")

	var names []string
	for _, c := range tbl.Columns() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"x", "stationID", "id", "li_IP"}, names, "insertion order is kept")

	assert.Equal(t, "cam1", tbl.IDColumn().Values()[0])
	assert.Len(t, tbl.ForeignKeyColumns(), 2)
	assert.Len(t, tbl.PlainColumns(), 1)

	c, ok := tbl.Column("li_IP")
	require.True(t, ok)
	assert.Equal(t, ForeignKeyColumn, c.Kind())
	assert.Equal(t, schema.IP, c.LinkedTable())
	assert.Same(t, tbl, c.Table())
}

func TestAddColumnAppendsToQueue(t *testing.T) {
	tbl, err := NewTable(schema.Site)
	require.NoError(t, err)

	tbl.MustColumn("id", "a")
	_, err = tbl.AddColumn("id", "b", "c")
	require.NoError(t, err)

	assert.Len(t, tbl.Columns(), 1)
	assert.Equal(t, []any{"a", "b", "c"}, tbl.IDColumn().Values())

	tbl.Clear()
	assert.Equal(t, 0, tbl.IDColumn().Len())
}

func TestAddColumnRejects(t *testing.T) {
	geom, err := NewTable(schema.Geometry)
	require.NoError(t, err)

	_, err = geom.AddColumn("id", "x")
	assert.ErrorIs(t, err, schema.ErrUnknownColumn, "geometry has no id")

	_, err = geom.AddColumn("seq", 1)
	assert.ErrorIs(t, err, schema.ErrUnknownColumn, "seq is assigned by the database")
}

func TestValueQueue(t *testing.T) {
	var q ValueQueue
	q.Push(1, "two")
	q.Push(nil)
	require.Equal(t, 3, q.Len())
	assert.Equal(t, "two", q.At(1))

	v, ok := q.Pop()
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, []any{"two", nil}, q.Values())

	q.Clear()
	_, ok = q.Pop()
	assert.False(t, ok)
}

func TestKey(t *testing.T) {
	k := IDKey("cam1")
	assert.Equal(t, "id", k.Column())
	assert.Equal(t, "cam1", k.Value())

	k = SeqKey(42)
	assert.Equal(t, "seq", k.Column())
	assert.Equal(t, int64(42), k.Value())

	parsed, err := ParseKey(schema.KeySeq, "42")
	require.NoError(t, err)
	assert.Equal(t, k, parsed)

	_, err = ParseKey(schema.KeySeq, "forty")
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	def := func(table, column string) schema.ColumnDef {
		d, err := schema.Lookup(table)
		require.NoError(t, err)
		c, err := d.Column(column)
		require.NoError(t, err)
		return c
	}

	tests := []struct {
		name   string
		table  string
		column string
		in     any
		want   any
	}{
		{"int id becomes text", schema.Site, "id", 7654321, "7654321"},
		{"integer from float", schema.Camera, "cameraNumber", 2.0, int64(2)},
		{"integer from text", schema.Camera, "timeIN", " 1600000000", int64(1600000000)},
		{"real from int", schema.Camera, "x", 5, 5.0},
		{"nil stays nil", schema.Camera, "x", nil, nil},
		{"matrix from rows", schema.Camera, "K", [][]float64{{1, 0}, {0, 1}}, "[[1 0], [0 1]]"},
		{"matrix from yaml lists", schema.Camera, "kc", []any{0.1, -0.2, 3}, "[0.1 -0.2 3]"},
		{"matrix text kept", schema.Geometry, "m", "[1 2 3]", "[1 2 3]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalize(tt.table, def(tt.table, tt.column), tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := normalize(schema.Camera, def(schema.Camera, "cameraNumber"), 2.5)
	assert.ErrorIs(t, err, ErrValueType)

	_, err = normalize(schema.Camera, def(schema.Camera, "K"), "[[1 2], [3]]")
	assert.ErrorIs(t, err, ErrValueType)

	_, err = normalize(schema.Camera, def(schema.Camera, "x"), struct{}{})
	var typeErr *ValueTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "x", typeErr.Column)
}
