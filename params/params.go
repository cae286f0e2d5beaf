// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package params

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/danielhkuo/coastcamdb/models"
	"github.com/danielhkuo/coastcamdb/record"
	"github.com/danielhkuo/coastcamdb/schema"
)

var (
	ErrNoStationMatch = errors.New("no station short name in filename")
	ErrBadFilename    = errors.New("filename does not start with a unix time")
)

// ForStation builds the parameter bundle of every camera installed at
// stationID at unixTime. Cameras are ordered by camera number.
func ForStation(ctx context.Context, store *record.Store, stationID string, unixTime int64) (*models.StationParams, error) {
	station, err := store.Row(ctx, schema.Station, record.IDKey(stationID))
	if err != nil {
		return nil, err
	}

	out := &models.StationParams{
		StationID: stationID,
		ShortName: station.String("shortName"),
		SiteID:    station.String("siteID"),
		Time:      unixTime,
		Cameras:   []models.CameraParams{},
	}

	site, err := store.Row(ctx, schema.Site, record.IDKey(out.SiteID))
	if err != nil {
		return nil, fmt.Errorf("station %s: %w", stationID, err)
	}
	out.LocalOrigin = models.LocalOrigin{
		X:    site.Float("UTMEasting"),
		Y:    site.Float("UTMNorthing"),
		Angd: site.Float("degFromN"),
	}

	cameras, err := store.Rows(ctx, schema.Camera, "stationID", stationID)
	if err != nil {
		return nil, err
	}
	cameras = slices.DeleteFunc(cameras, func(r record.Row) bool {
		return !installedAt(r, unixTime)
	})
	slices.SortStableFunc(cameras, func(a, b record.Row) int {
		return cmp.Compare(a.Int("cameraNumber"), b.Int("cameraNumber"))
	})

	name := station.String("name")
	for _, cam := range cameras {
		cp, err := cameraParams(ctx, store, cam, name)
		if err != nil {
			return nil, err
		}
		out.Cameras = append(out.Cameras, cp)
	}

	slog.Debug("parameters assembled",
		"station", stationID,
		"time", unixTime,
		"cameras", len(out.Cameras),
	)
	return out, nil
}

// FromFilename parses the unix time leading an image filename and builds
// the bundle of the first station whose short name occurs in it.
func FromFilename(ctx context.Context, store *record.Store, filename string) (*models.StationParams, error) {
	base := filepath.Base(filename)
	unixTime, err := strconv.ParseInt(strings.Split(base, ".")[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadFilename, base)
	}

	stations, err := store.Rows(ctx, schema.Station, "", nil)
	if err != nil {
		return nil, err
	}
	for _, st := range stations {
		short := st.String("shortName")
		if short == "" || !strings.Contains(base, short) {
			continue
		}
		slog.Info("station matched", "short_name", short, "filename", base)
		return ForStation(ctx, store, st.String("id"), unixTime)
	}
	return nil, fmt.Errorf("%w: %q", ErrNoStationMatch, base)
}

// installedAt reports timeIN <= t <= timeOUT. NULL bounds never match.
func installedAt(cam record.Row, t int64) bool {
	in, _ := cam.Get("timeIN")
	out, _ := cam.Get("timeOUT")
	if in == nil || out == nil {
		return false
	}
	return cam.Int("timeIN") <= t && cam.Int("timeOUT") >= t
}

func cameraParams(ctx context.Context, store *record.Store, cam record.Row, stationName string) (models.CameraParams, error) {
	id := cam.String("id")
	cp := models.CameraParams{
		CameraID: id,
		Metadata: models.Metadata{
			Name:             stationName,
			SerialNumber:     cam.String("cameraSN"),
			CameraNumber:     cam.Int("cameraNumber"),
			CalibrationDate:  cam.Int("timeIN"),
			CoordinateSystem: models.CoordGeo,
		},
	}

	ip, err := store.Row(ctx, schema.IP, record.IDKey(cam.String("li_IP")))
	if err != nil {
		return cp, fmt.Errorf("camera %s: %w", id, err)
	}
	cp.Intrinsics.NU = ip.Int("width")
	cp.Intrinsics.NV = ip.Int("height")

	k, err := cam.Matrix("K")
	if err != nil {
		return cp, fmt.Errorf("camera %s: %w", id, err)
	}
	if r, c := k.Dims(); r < 2 || c < 3 {
		return cp, fmt.Errorf("camera %s: K is %dx%d, want 3x3", id, r, c)
	}
	cp.Intrinsics.Fx = k.At(0, 0)
	cp.Intrinsics.Fy = k.At(1, 1)
	cp.Intrinsics.C0U = k.At(0, 2)
	cp.Intrinsics.C0V = k.At(1, 2)

	kc, err := cam.Matrix("kc")
	if err != nil {
		return cp, fmt.Errorf("camera %s: %w", id, err)
	}
	d, err := coefficients(kc, 5)
	if err != nil {
		return cp, fmt.Errorf("camera %s: kc: %w", id, err)
	}
	cp.Intrinsics.D1, cp.Intrinsics.D2, cp.Intrinsics.D3 = d[0], d[1], d[2]
	cp.Intrinsics.T1, cp.Intrinsics.T2 = d[3], d[4]

	cp.Extrinsics = models.Extrinsics{
		X: cam.Float("x"),
		Y: cam.Float("y"),
		Z: cam.Float("z"),
	}
	geoms, err := store.Rows(ctx, schema.Geometry, "cameraID", id)
	if err != nil {
		return cp, err
	}
	if len(geoms) > 0 {
		latest := geoms[len(geoms)-1]
		cp.Extrinsics.A = latest.Float("azimuth")
		cp.Extrinsics.T = latest.Float("tilt")
		cp.Extrinsics.R = latest.Float("roll")
		seq := latest.Key().Seq()
		cp.GeometrySeq = &seq
	} else {
		slog.Warn("camera has no geometry", "camera", id)
	}

	return cp, nil
}

// coefficients flattens a row or column vector of at least n elements.
func coefficients(m mat.Matrix, n int) ([]float64, error) {
	r, c := m.Dims()
	if r != 1 && c != 1 {
		return nil, fmt.Errorf("want a vector, got %dx%d", r, c)
	}
	if r*c < n {
		return nil, fmt.Errorf("want %d coefficients, got %d", n, r*c)
	}
	out := make([]float64, r*c)
	for i := range out {
		if r == 1 {
			out[i] = m.At(0, i)
		} else {
			out[i] = m.At(i, 0)
		}
	}
	return out, nil
}
