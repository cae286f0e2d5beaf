// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package record

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/coastcamdb/schema"
	"github.com/danielhkuo/coastcamdb/testutil"
)

func TestMatchIDSeq(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	f := testutil.SeedSite(t, s.Conn())

	require.NoError(t, s.MatchIDSeq(ctx, schema.Camera, f.CameraIDs[0], 1))

	err := s.MatchIDSeq(ctx, schema.Camera, f.CameraIDs[0], 2)
	var mismatch *MismatchedIDSeqError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, int64(2), mismatch.Seq)

	assert.ErrorIs(t, s.MatchIDSeq(ctx, schema.Camera, f.CameraIDs[0], 77), ErrNoMatchingSeq)
	assert.ErrorIs(t, s.MatchIDSeq(ctx, schema.Camera, "nosuch", 1), ErrNoMatchingID)
}

func TestHasBlankValue(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	testutil.SeedSite(t, s.Conn())

	blank, err := s.HasBlankValue(ctx, schema.Camera, "syncsToID")
	require.NoError(t, err)
	assert.True(t, blank)

	blank, err = s.HasBlankValue(ctx, schema.Camera, "cameraSN")
	require.NoError(t, err)
	assert.False(t, blank)

	_, err = s.HasBlankValue(ctx, schema.Camera, "nosuch")
	assert.ErrorIs(t, err, schema.ErrUnknownColumn)
}

func TestLinkedKeys(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	f := testutil.SeedSite(t, s.Conn())

	keys, err := s.LinkedKeys(ctx, schema.Camera, "stationID")
	require.NoError(t, err)
	assert.Equal(t, []Key{IDKey(f.StationID)}, keys)

	keys, err = s.LinkedKeys(ctx, schema.UsedGCP, schema.GeometrySequence)
	require.NoError(t, err)
	assert.Equal(t, []Key{SeqKey(f.GeometrySeqs[0]), SeqKey(f.GeometrySeqs[1])}, keys)

	values, err := s.ForeignKeyValues(ctx, schema.Camera, "stationID")
	require.NoError(t, err)
	assert.Equal(t, []any{f.StationID}, values)
}

func TestRowsAndValues(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	f := testutil.SeedSite(t, s.Conn())

	rows, err := s.Rows(ctx, schema.Camera, "stationID", f.StationID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, IDKey(f.CameraIDs[0]), rows[0].Key())
	assert.Equal(t, int64(2), rows[1].Int("cameraNumber"))
	assert.Equal(t, testutil.SeedK, rows[0].String("K"))

	k, err := rows[0].Matrix("K")
	require.NoError(t, err)
	assert.InDelta(t, 1223.9, k.At(0, 2), 1e-9)

	all, err := s.Rows(ctx, schema.Geometry, "", nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, SeqKey(f.GeometrySeqs[1]), all[1].Key())

	_, err = s.Value(ctx, schema.Camera, "x", IDKey("nosuch"))
	assert.ErrorIs(t, err, ErrNoMatchingID)

	v, err := s.Value(ctx, schema.Camera, "syncsToID", IDKey(f.CameraIDs[0]))
	require.NoError(t, err)
	assert.Nil(t, v)

	data, err := json.Marshal(rows[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"cameraSN":"21217390"`)
}

func TestSite(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	f := testutil.SeedSite(t, s.Conn())

	insertRows(t, s, schema.UsedGCP, "gcpID", vals(f.GCPID), schema.GeometrySequence, vals(f.GeometrySeqs[0]))

	// rows of another site stay out
	testutil.MustExec(t, s.Conn(), `INSERT INTO "site" ("id") VALUES ('other')`)
	testutil.MustExec(t, s.Conn(), `INSERT INTO "gcp" ("id", "siteID") VALUES ('g2', 'other')`)

	rec, err := s.Site(ctx, f.SiteID)
	require.NoError(t, err)

	var order []string
	for _, tr := range rec.Tables {
		order = append(order, tr.Table)
	}
	assert.Equal(t, []string{
		schema.Site, schema.Station, schema.Camera,
		schema.CameraModel, schema.LensModel, schema.IP,
		schema.GCP, schema.Geometry, schema.UsedGCP,
	}, order)

	counts := map[string]int{}
	for _, tr := range rec.Tables {
		counts[tr.Table] = len(tr.Rows)
	}
	assert.Equal(t, map[string]int{
		schema.Site: 1, schema.Station: 1, schema.Camera: 2,
		schema.CameraModel: 1, schema.LensModel: 1, schema.IP: 1,
		schema.GCP: 1, schema.Geometry: 2, schema.UsedGCP: 1,
	}, counts)

	_, err = s.Site(ctx, "nosuch")
	assert.ErrorIs(t, err, ErrNoMatchingID)
}
