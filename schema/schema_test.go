// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForeignKeysOf(t *testing.T) {
	tests := []struct {
		table   string
		columns []string
	}{
		{Site, nil},
		{CameraModel, nil},
		{LensModel, nil},
		{IP, nil},
		{Station, []string{"siteID"}},
		{GCP, []string{"siteID"}},
		{Camera, []string{"stationID", "modelID", "lensmodelID", "li_IP"}},
		{Geometry, []string{"cameraID"}},
		{UsedGCP, []string{"gcpID", GeometrySequence}},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			fks, err := ForeignKeysOf(tt.table)
			require.NoError(t, err)

			var got []string
			for _, fk := range fks {
				got = append(got, fk.Column)
			}
			assert.Equal(t, tt.columns, got)
		})
	}
}

func TestOnlyGeometrySequenceReferencesSeq(t *testing.T) {
	for _, def := range Definitions() {
		for _, fk := range def.ForeignKeys {
			kind, err := ParentKeyKind(def.Name, fk.Column)
			require.NoError(t, err)

			if def.Name == UsedGCP && fk.Column == GeometrySequence {
				assert.Equal(t, KeySeq, kind)
			} else {
				assert.Equal(t, KeyID, kind, "%s.%s", def.Name, fk.Column)
			}
		}
	}
}

func TestLinkedTable(t *testing.T) {
	parent, err := LinkedTable(Camera, "li_IP")
	require.NoError(t, err)
	assert.Equal(t, IP, parent)

	parent, err = LinkedTable(UsedGCP, GeometrySequence)
	require.NoError(t, err)
	assert.Equal(t, Geometry, parent)

	_, err = LinkedTable(Camera, "cameraSN")
	var colErr *UnknownColumnError
	require.ErrorAs(t, err, &colErr)
	assert.Equal(t, "cameraSN", colErr.Column)
}

func TestUnknownTable(t *testing.T) {
	_, err := ForeignKeysOf("lighthouse")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownTable))

	var tableErr *UnknownTableError
	require.ErrorAs(t, err, &tableErr)
	assert.Equal(t, "lighthouse", tableErr.Table)

	_, err = ParentKeyKind("lighthouse", "siteID")
	assert.ErrorIs(t, err, ErrUnknownTable)
}

func TestRootsHaveNoForeignKeys(t *testing.T) {
	roots := map[string]bool{Site: true, CameraModel: true, LensModel: true, IP: true}
	for _, def := range Definitions() {
		assert.Equal(t, roots[def.Name], def.IsRoot(), def.Name)
	}
}

func TestInsertOrderPutsParentsFirst(t *testing.T) {
	position := map[string]int{}
	for i, name := range Tables() {
		position[name] = i
	}

	for _, def := range Definitions() {
		for _, fk := range def.ForeignKeys {
			assert.Less(t, position[fk.Parent], position[def.Name], "%s before %s", fk.Parent, def.Name)
		}
	}
}

func TestIdentity(t *testing.T) {
	for _, name := range Tables() {
		kind, err := IdentityOf(name)
		require.NoError(t, err)

		def, _ := Lookup(name)
		_, idErr := def.Column("id")
		if name == Geometry || name == UsedGCP {
			assert.Equal(t, KeySeq, kind)
			assert.Error(t, idErr)
		} else {
			assert.Equal(t, KeyID, kind)
			assert.NoError(t, idErr)
		}
	}
}

func TestForeignKeyColumnsAreDeclared(t *testing.T) {
	for _, def := range Definitions() {
		for _, fk := range def.ForeignKeys {
			_, err := def.Column(fk.Column)
			assert.NoError(t, err, "%s.%s", def.Name, fk.Column)
			assert.True(t, IsForeignKey(def.Name, fk.Column))
		}
	}
	assert.False(t, IsForeignKey(Camera, "x"))
}

func TestParseText(t *testing.T) {
	v, err := ParseText(Camera, "cameraNumber", " 2")
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)

	v, err = ParseText(Camera, "x", "410843.97")
	require.NoError(t, err)
	assert.Equal(t, 410843.97, v)

	v, err = ParseText(Camera, "cameraSN", "21217390")
	require.NoError(t, err)
	assert.Equal(t, "21217390", v)

	v, err = ParseText(Geometry, "seq", "3")
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)

	_, err = ParseText(Camera, "timeIN", "later")
	assert.ErrorIs(t, err, ErrBadText)

	_, err = ParseText(Camera, "nosuch", "1")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}
