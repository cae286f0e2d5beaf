// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/coastcamdb/db"
	"github.com/danielhkuo/coastcamdb/record"
	"github.com/danielhkuo/coastcamdb/schema"
	"github.com/danielhkuo/coastcamdb/testutil"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func setup(t *testing.T) (*record.Store, testutil.Fixture) {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	f := testutil.SeedSite(t, conn)
	return record.NewStore(conn, db.SQLite), f
}

func TestColumn(t *testing.T) {
	store, _ := setup(t)
	dir := t.TempDir()

	path, err := Column(context.Background(), store, dir, schema.Camera, "cameraSN")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "columns", "camera_cameraSN.csv"), path)
	assert.Equal(t, [][]string{{"cameraSN"}, {"21217390"}, {"21217391"}}, readCSV(t, path))

	_, err = Column(context.Background(), store, dir, schema.Camera, "nosuch")
	assert.ErrorIs(t, err, schema.ErrUnknownColumn)
}

func TestTable(t *testing.T) {
	store, f := setup(t)
	dir := t.TempDir()

	path, err := Table(context.Background(), store, dir, schema.Camera)
	require.NoError(t, err)

	records := readCSV(t, path)
	require.Len(t, records, 3)
	def, _ := schema.Lookup(schema.Camera)
	assert.Equal(t, def.ColumnNames(), records[0])

	row := map[string]string{}
	for i, c := range records[0] {
		row[c] = records[1][i]
	}
	assert.Equal(t, f.CameraIDs[0], row["id"])
	assert.Equal(t, "410843.97", row["x"])
	assert.Equal(t, testutil.SeedK, row["K"], "matrix text survives quoting")
	assert.Equal(t, "", row["syncsToID"], "NULL is empty")

	_, err = Table(context.Background(), store, dir, "lighthouse")
	assert.ErrorIs(t, err, schema.ErrUnknownTable)
}

func TestSite(t *testing.T) {
	store, f := setup(t)
	dir := t.TempDir()

	paths, err := Site(context.Background(), store, dir, f.SiteID)
	require.NoError(t, err)

	var names []string
	for _, p := range paths {
		assert.Equal(t, filepath.Join(dir, "sites", f.SiteID, "tables"), filepath.Dir(p))
		names = append(names, filepath.Base(p))
	}
	assert.Equal(t, []string{
		"site.csv", "station.csv", "camera.csv", "cameramodel.csv",
		"lensmodel.csv", "ip.csv", "gcp.csv", "geometry.csv",
	}, names, "empty usedgcp is skipped")

	geometry := readCSV(t, filepath.Join(dir, "sites", f.SiteID, "tables", "geometry.csv"))
	assert.Len(t, geometry, 3)

	_, err = Site(context.Background(), store, dir, "nosuch")
	assert.ErrorIs(t, err, record.ErrNoMatchingID)
}
