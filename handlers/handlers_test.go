// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/coastcamdb/db"
	"github.com/danielhkuo/coastcamdb/models"
	"github.com/danielhkuo/coastcamdb/record"
	"github.com/danielhkuo/coastcamdb/testutil"
)

func setup(t *testing.T) (*record.Store, testutil.Fixture) {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	f := testutil.SeedSite(t, conn)
	return record.NewStore(conn, db.SQLite), f
}

func TestListSites(t *testing.T) {
	store, f := setup(t)
	h := NewSiteHandler(store, testutil.GetTestConfig())

	w := httptest.NewRecorder()
	h.ListSites(w, testutil.MakeRequest("GET", "/sites", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	var sites []models.SiteSummary
	testutil.AssertJSON(t, w, &sites)
	assert.Equal(t, []models.SiteSummary{{ID: f.SiteID, Name: "Cape Cod"}}, sites)
}

func TestListSitesEmpty(t *testing.T) {
	store := record.NewStore(testutil.SetupTestDB(t), db.SQLite)
	h := NewSiteHandler(store, testutil.GetTestConfig())

	w := httptest.NewRecorder()
	h.ListSites(w, testutil.MakeRequest("GET", "/sites", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGetSite(t *testing.T) {
	store, f := setup(t)
	h := NewSiteHandler(store, testutil.GetTestConfig())

	req := testutil.MakeRequest("GET", "/sites/"+f.SiteID, nil, nil)
	req.SetPathValue("id", f.SiteID)
	w := httptest.NewRecorder()
	h.GetSite(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var rec struct {
		SiteID string `json:"site_id"`
		Tables []struct {
			Table string           `json:"table"`
			Rows  []map[string]any `json:"rows"`
		} `json:"tables"`
	}
	testutil.AssertJSON(t, w, &rec)
	assert.Equal(t, f.SiteID, rec.SiteID)
	require.NotEmpty(t, rec.Tables)
	assert.Equal(t, "site", rec.Tables[0].Table)
	assert.Equal(t, "19T", rec.Tables[0].Rows[0]["UTMZone"])
	assert.Equal(t, "camera", rec.Tables[2].Table)
	assert.Len(t, rec.Tables[2].Rows, 2)
}

func TestGetSiteMissingID(t *testing.T) {
	store, _ := setup(t)
	h := NewSiteHandler(store, testutil.GetTestConfig())

	w := httptest.NewRecorder()
	h.GetSite(w, testutil.MakeRequest("GET", "/sites/", nil, nil))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestGetStationParams(t *testing.T) {
	store, f := setup(t)
	h := NewParamsHandler(store, testutil.GetTestConfig())

	req := testutil.MakeRequest("GET", "/stations/"+f.StationID+"/params?time=1700000000", nil, nil)
	req.SetPathValue("id", f.StationID)
	w := httptest.NewRecorder()
	h.GetStationParams(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var p models.StationParams
	testutil.AssertJSON(t, w, &p)
	assert.Equal(t, f.ShortName, p.ShortName)
	require.Len(t, p.Cameras, 2)
	assert.Equal(t, 1450.5, p.Cameras[0].Intrinsics.Fx)
	assert.Equal(t, 101.5, p.Cameras[0].Extrinsics.A)
	assert.Equal(t, 12.5, p.LocalOrigin.Angd)
}

func TestGetStationParamsUnknownStation(t *testing.T) {
	store, _ := setup(t)
	h := NewParamsHandler(store, testutil.GetTestConfig())

	req := testutil.MakeRequest("GET", "/stations/nosuch/params?time=1", nil, nil)
	req.SetPathValue("id", "nosuch")
	w := httptest.NewRecorder()
	h.GetStationParams(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	assert.Equal(t, "Not Found", resp.Error)
}

func TestGetFilenameParams(t *testing.T) {
	store, f := setup(t)
	h := NewParamsHandler(store, testutil.GetTestConfig())

	w := httptest.NewRecorder()
	h.GetFilenameParams(w, testutil.MakeRequest("GET", "/params?filename=1700000000.Tue.caco.c2.snap.jpg", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	var p models.StationParams
	testutil.AssertJSON(t, w, &p)
	assert.Equal(t, f.StationID, p.StationID)
	assert.Equal(t, int64(1_700_000_000), p.Time)
}

func TestGetRow(t *testing.T) {
	store, f := setup(t)
	h := NewTableHandler(store, testutil.GetTestConfig())

	req := testutil.MakeRequest("GET", "/tables/camera/"+f.CameraIDs[1], nil, nil)
	req.SetPathValue("table", "camera")
	req.SetPathValue("key", f.CameraIDs[1])
	w := httptest.NewRecorder()
	h.GetRow(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var row map[string]any
	testutil.AssertJSON(t, w, &row)
	assert.Equal(t, "21217391", row["cameraSN"])
	assert.Equal(t, testutil.SeedK, row["K"])
	assert.Nil(t, row["syncsToID"])
}

func TestListRowsFiltered(t *testing.T) {
	store, f := setup(t)
	h := NewTableHandler(store, testutil.GetTestConfig())

	req := testutil.MakeRequest("GET", "/tables/geometry?column=cameraID&value="+f.CameraIDs[1], nil, nil)
	req.SetPathValue("table", "geometry")
	w := httptest.NewRecorder()
	h.ListRows(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	assert.JSONEq(t, `[]`, w.Body.String(), "second camera has no geometry")
}
