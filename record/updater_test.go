// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package record

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/coastcamdb/schema"
	"github.com/danielhkuo/coastcamdb/testutil"
)

func column(t *testing.T, table, name string, values ...any) *Column {
	t.Helper()
	tbl, err := NewTable(table)
	require.NoError(t, err)
	c, err := tbl.AddColumn(name, values...)
	require.NoError(t, err)
	return c
}

func TestUpdateListLength(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	f := testutil.SeedSite(t, s.Conn())

	col := column(t, schema.Camera, "x", 1.0, 2.0)
	_, err := s.Update(ctx, col, []Key{IDKey(f.CameraIDs[0])})

	var lenErr *ListLengthError
	require.ErrorAs(t, err, &lenErr)
	assert.Equal(t, 1, lenErr.Want)
	assert.Equal(t, 2, lenErr.Got)

	x, err := s.Value(ctx, schema.Camera, "x", IDKey(f.CameraIDs[0]))
	require.NoError(t, err)
	assert.Equal(t, 410843.97, x, "nothing written")
}

func TestUpdateEmpty(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Update(context.Background(), column(t, schema.Site, "name"), nil)
	assert.ErrorIs(t, err, ErrEmptyValue)
}

func TestUpdateRootTable(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	f := testutil.SeedSite(t, s.Conn())

	res, err := s.Update(ctx, column(t, schema.CameraModel, "make", "Teledyne"), []Key{IDKey(f.CameraModelID)})
	require.NoError(t, err)
	require.NoError(t, res.Err())
	assert.Equal(t, 1, res.Statements)

	got, err := s.Value(ctx, schema.CameraModel, "make", IDKey(f.CameraModelID))
	require.NoError(t, err)
	assert.Equal(t, "Teledyne", got)
}

func TestUpdateChildTable(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	f := testutil.SeedSite(t, s.Conn())

	res, err := s.Update(ctx, column(t, schema.Camera, "z", 30.5), []Key{IDKey(f.CameraIDs[0])})
	require.NoError(t, err)
	require.NoError(t, res.Err())

	z, err := s.Value(ctx, schema.Camera, "z", IDKey(f.CameraIDs[0]))
	require.NoError(t, err)
	assert.Equal(t, 30.5, z)

	z, err = s.Value(ctx, schema.Camera, "z", IDKey(f.CameraIDs[1]))
	require.NoError(t, err)
	assert.Equal(t, 27.3, z, "other camera untouched")
}

func TestUpdateBySeq(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	f := testutil.SeedSite(t, s.Conn())

	first := SeqKey(f.GeometrySeqs[0])
	res, err := s.Update(ctx, column(t, schema.Geometry, "m", "[[1 0 0 0], [0 1 0 0], [0 0 1 0]]"), []Key{first})
	require.NoError(t, err)
	require.NoError(t, res.Err())

	row, err := s.Row(ctx, schema.Geometry, first)
	require.NoError(t, err)
	assert.Equal(t, "[[1 0 0 0], [0 1 0 0], [0 0 1 0]]", row.String("m"))
	assert.Equal(t, f.CameraIDs[0], row.String("cameraID"))
}

func TestUpdateUnknownKeys(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	testutil.SeedSite(t, s.Conn())

	_, err := s.Update(ctx, column(t, schema.Camera, "x", 1.0), []Key{IDKey("nosuch")})
	var idErr *NoMatchingIDError
	require.ErrorAs(t, err, &idErr)
	assert.Equal(t, "nosuch", idErr.ID)

	_, err = s.Update(ctx, column(t, schema.Geometry, "tilt", 1.0), []Key{SeqKey(99)})
	assert.ErrorIs(t, err, ErrNoMatchingSeq)

	_, err = s.Update(ctx, column(t, schema.Geometry, "tilt", 1.0), []Key{IDKey("cam1")})
	assert.ErrorIs(t, err, ErrNoMatchingID, "geometry has no ids")
}

func TestUpdateForeignKeyValidated(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	f := testutil.SeedSite(t, s.Conn())

	_, err := s.Update(ctx, column(t, schema.Camera, "li_IP", "nosuch"), []Key{IDKey(f.CameraIDs[0])})
	var parentErr *NoMatchingParentKeyError
	require.ErrorAs(t, err, &parentErr)
	assert.Equal(t, schema.IP, parentErr.Parent)

	testutil.MustExec(t, s.Conn(), `INSERT INTO "ip" ("id") VALUES ('ip2')`)
	res, err := s.Update(ctx, column(t, schema.Camera, "li_IP", "ip2"), []Key{IDKey(f.CameraIDs[0])})
	require.NoError(t, err)
	require.NoError(t, res.Err())

	got, err := s.Value(ctx, schema.Camera, "li_IP", IDKey(f.CameraIDs[0]))
	require.NoError(t, err)
	assert.Equal(t, "ip2", got)
}

func TestUpdateID(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	f := testutil.SeedSite(t, s.Conn())

	res, err := s.UpdateID(ctx, column(t, schema.Camera, "id", "cam9"), []string{f.CameraIDs[0]})
	require.NoError(t, err)
	require.NoError(t, res.Err())

	require.NoError(t, s.CheckID(ctx, schema.Camera, "cam9"))
	assert.ErrorIs(t, s.CheckID(ctx, schema.Camera, f.CameraIDs[0]), ErrNoMatchingID)

	cameraID, err := s.Value(ctx, schema.Geometry, "cameraID", SeqKey(f.GeometrySeqs[0]))
	require.NoError(t, err)
	assert.Equal(t, "cam9", cameraID, "child rows follow the rename")
}

func TestUpdateIDCollision(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	f := testutil.SeedSite(t, s.Conn())

	_, err := s.UpdateID(ctx, column(t, schema.Camera, "id", f.CameraIDs[1]), []string{f.CameraIDs[0]})
	var dupErr *DuplicateIDError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, f.CameraIDs[1], dupErr.ID)

	// through Update with id keys
	_, err = s.Update(ctx, column(t, schema.Camera, "id", f.CameraIDs[1]), []Key{IDKey(f.CameraIDs[0])})
	assert.ErrorIs(t, err, ErrDuplicateID)

	_, err = s.UpdateID(ctx, column(t, schema.Camera, "id", "cam7"), []string{"nosuch"})
	assert.ErrorIs(t, err, ErrNoMatchingID)
}

func TestUpdateIDFillsReservedRow(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	f := testutil.SeedSite(t, s.Conn())

	insertRows(t, s, schema.Station, "siteID", vals(f.SiteID))

	res, err := s.UpdateID(ctx, column(t, schema.Station, "id", "st2"), []string{""})
	require.NoError(t, err)
	require.NoError(t, res.Err())

	blank, err := s.HasBlankID(ctx, schema.Station)
	require.NoError(t, err)
	assert.False(t, blank)
	assert.NoError(t, s.CheckID(ctx, schema.Station, "st2"))
}

func TestCandidatesAndUpdateMatching(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	f := testutil.SeedSite(t, s.Conn())

	keys, err := s.Candidates(ctx, schema.Camera, "x", 410843.97)
	require.NoError(t, err)
	assert.Equal(t, []Key{IDKey(f.CameraIDs[0]), IDKey(f.CameraIDs[1])}, keys)

	res, err := s.UpdateMatching(ctx, column(t, schema.Camera, "x", 1.5), 410843.97, IDKey(f.CameraIDs[1]))
	require.NoError(t, err)
	require.NoError(t, res.Err())

	x0, _ := s.Value(ctx, schema.Camera, "x", IDKey(f.CameraIDs[0]))
	x1, _ := s.Value(ctx, schema.Camera, "x", IDKey(f.CameraIDs[1]))
	assert.Equal(t, 410843.97, x0)
	assert.Equal(t, 1.5, x1)
}

func TestUpdateMatchingRejects(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	f := testutil.SeedSite(t, s.Conn())

	_, err := s.UpdateMatching(ctx, column(t, schema.Camera, "x", 1.5), 5.0, IDKey(f.CameraIDs[0]))
	var notFound *ValueNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "x", notFound.Column)
	assert.Nil(t, notFound.Key)

	chosen := IDKey("cam7")
	_, err = s.UpdateMatching(ctx, column(t, schema.Camera, "x", 1.5), 410843.97, chosen)
	require.ErrorAs(t, err, &notFound)
	require.NotNil(t, notFound.Key)
	assert.Equal(t, chosen, *notFound.Key)

	for _, id := range f.CameraIDs {
		x, err := s.Value(ctx, schema.Camera, "x", IDKey(id))
		require.NoError(t, err)
		assert.Equal(t, 410843.97, x, "no UPDATE ran")
	}
}

func TestCandidatesNull(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	testutil.SeedSite(t, s.Conn())

	keys, err := s.Candidates(ctx, schema.Geometry, "fov", nil)
	require.NoError(t, err)
	assert.Len(t, keys, 2)
	assert.Equal(t, schema.KeySeq, keys[0].Kind())
}
