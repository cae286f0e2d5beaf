// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package yamlout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/coastcamdb/models"
)

func testParams() *models.StationParams {
	seq := int64(2)
	return &models.StationParams{
		StationID: "1234567",
		ShortName: "head of meadow",
		Time:      1_700_000_000,
		Cameras: []models.CameraParams{
			{
				CameraID: "cam1",
				Metadata: models.Metadata{
					Name:             "Cape Cod Head of the Meadow",
					SerialNumber:     "21217390",
					CameraNumber:     1,
					CalibrationDate:  1_600_000_000,
					CoordinateSystem: models.CoordGeo,
				},
				Intrinsics: models.Intrinsics{
					NU: 2448, NV: 2048, Fx: 1450.5, Fy: 1451.2, C0U: 1223.9, C0V: 1024.1,
					D1: -0.2, D2: 0.15, D3: 0.001, T1: -0.0007, T2: 0.0003,
				},
				Extrinsics:  models.Extrinsics{X: 410843.97, Y: 4640881.2, Z: 27.3, A: 101.5, T: 81, R: 0.5},
				GeometrySeq: &seq,
			},
			{
				CameraID: "cam2",
				Metadata: models.Metadata{CameraNumber: 2, CoordinateSystem: models.CoordGeo},
			},
		},
		LocalOrigin: models.LocalOrigin{X: 410000.5, Y: 4640000.25, Angd: 12.5},
	}
}

func TestWriteFormat(t *testing.T) {
	dir := t.TempDir()

	path, err := Write(dir, "caco_C1_extr", testParams().Cameras[0].Extrinsics.Fields())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "caco_C1_extr.yaml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `x: 410843.97
y: 4640881.2
z: 27.3
a: 101.5
t: 81.0
r: 0.5
#x - x location of camera
#y - y location of camera
#z - z location of camera
#a - camera azimuth orientation
#t - camera tilt orientation
#r - camera roll orientation
`, string(data))
}

func TestWriteStation(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	paths, err := WriteStation(dir, testParams())
	require.NoError(t, err)

	var names []string
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}
	assert.Equal(t, []string{
		"head_of_meadow_C1_extr.yaml",
		"head_of_meadow_C1_intr.yaml",
		"head_of_meadow_C1_metadata.yaml",
		"head_of_meadow_C2_extr.yaml",
		"head_of_meadow_C2_intr.yaml",
		"head_of_meadow_C2_metadata.yaml",
		"head_of_meadow_localOrigin.yaml",
	}, names)

	for _, p := range paths {
		assert.FileExists(t, p)
	}
}

func TestReadBack(t *testing.T) {
	dir := t.TempDir()
	p := testParams()

	path, err := Write(dir, "meta", p.Cameras[0].Metadata.Fields())
	require.NoError(t, err)

	fields, err := Read(path)
	require.NoError(t, err)
	require.Len(t, fields, 5)

	assert.Equal(t, "name", fields[0].Name)
	assert.Equal(t, "Cape Cod Head of the Meadow", fields[0].Value)
	assert.Equal(t, "21217390", fields[1].Value, "numeric-looking strings stay strings")
	assert.Equal(t, 1, fields[2].Value)
	assert.Equal(t, `coordinate system for extrinsic parameters. Either "geo" or "xyz"`, fields[4].Description)

	path, err = Write(dir, "intr", p.Cameras[0].Intrinsics.Fields())
	require.NoError(t, err)
	fields, err = Read(path)
	require.NoError(t, err)

	byName := map[string]any{}
	for _, f := range fields {
		byName[f.Name] = f.Value
	}
	assert.Equal(t, 2448, byName["NU"])
	assert.Equal(t, 1450.5, byName["fx"])
	assert.Equal(t, 0.0003, byName["t2"])
	assert.Equal(t, "fx", fields[2].Name, "file order kept")
}

func TestReadRejects(t *testing.T) {
	dir := t.TempDir()

	list := filepath.Join(dir, "list.yaml")
	require.NoError(t, os.WriteFile(list, []byte("- 1\n- 2\n"), 0o644))
	_, err := Read(list)
	assert.ErrorIs(t, err, ErrNotMapping)

	nested := filepath.Join(dir, "nested.yaml")
	require.NoError(t, os.WriteFile(nested, []byte("x:\n  y: 1\n"), 0o644))
	_, err = Read(nested)
	assert.ErrorIs(t, err, ErrNotMapping)

	_, err = Read(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{int64(2448), "2448"},
		{81.0, "81.0"},
		{-0.0007, "-0.0007"},
		{1e-7, "1e-07"},
		{"geo", "geo"},
		{"21217390", `"21217390"`},
		{nil, "null"},
	}
	for _, tt := range tests {
		got, err := formatValue(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := formatValue([]int{1})
	assert.Error(t, err)
}
