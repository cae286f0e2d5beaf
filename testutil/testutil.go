// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/coastcamdb/cliparse"
	"github.com/danielhkuo/coastcamdb/db"
)

// TestDBURL is the connection string for the test database
const TestDBURL = ":memory:"

// SetupTestDB creates a fresh in-memory database with the full schema.
// It is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.SQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, db.SQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseType: string(db.SQLite),
		DatabaseURL:  TestDBURL,
	}
}

// MustExec runs a statement written with ? placeholders or fails the test.
func MustExec(t *testing.T, conn *sql.DB, query string, args ...any) {
	t.Helper()
	if _, err := conn.Exec(query, args...); err != nil {
		t.Fatalf("Failed to exec %q: %v", query, err)
	}
}

// Fixture names the rows created by SeedSite.
type Fixture struct {
	SiteID        string
	StationID     string
	ShortName     string
	CameraModelID string
	LensModelID   string
	IPID          string
	CameraIDs     []string
	GCPID         string
	// GeometrySeqs are the geometry rows of the first camera, oldest first.
	GeometrySeqs []int64
	StationTime  int64
}

// Camera calibration of the first seeded camera.
const (
	SeedK  = "[[1450.5 0 1223.9], [0 1451.2 1024.1], [0 0 1]]"
	SeedKC = "[-0.2 0.15 0.001 -0.0007 0.0003]"
)

// SeedSite writes a complete site: one station with two cameras, their
// models, two geometries for the first camera, and a ground control point.
func SeedSite(t *testing.T, conn *sql.DB) Fixture {
	t.Helper()

	f := Fixture{
		SiteID:        "7654321",
		StationID:     "1234567",
		ShortName:     "caco",
		CameraModelID: "cm1",
		LensModelID:   "lm1",
		IPID:          "ip1",
		CameraIDs:     []string{"cam1", "cam2"},
		GCPID:         "gcp1",
		StationTime:   1_700_000_000,
	}

	MustExec(t, conn, `INSERT INTO "site" ("id", "siteID", "name", "lat", "lon", "UTMEasting", "UTMNorthing", "UTMZone", "degFromN")
		VALUES (?, 'CACO', 'Cape Cod', 41.9, -70.0, 410000.5, 4640000.25, '19T', 12.5)`, f.SiteID)
	MustExec(t, conn, `INSERT INTO "station" ("id", "shortName", "name", "siteID", "stationID", "timeIN", "timeOUT")
		VALUES (?, ?, 'Cape Cod Head of the Meadow', ?, 'CACO-01', 1500000000, 2000000000)`, f.StationID, f.ShortName, f.SiteID)
	MustExec(t, conn, `INSERT INTO "cameramodel" ("id", "make", "model") VALUES (?, 'FLIR', 'BFS-PGE-50S5C')`, f.CameraModelID)
	MustExec(t, conn, `INSERT INTO "lensmodel" ("id", "make", "model", "f") VALUES (?, 'Fujinon', 'HF8XA', 8)`, f.LensModelID)
	MustExec(t, conn, `INSERT INTO "ip" ("id", "make", "model", "name", "width", "height") VALUES (?, 'Sony', 'IMX264', 'IMX264', 2448, 2048)`, f.IPID)

	for i, id := range f.CameraIDs {
		MustExec(t, conn, `INSERT INTO "camera" ("id", "stationID", "modelID", "lensmodelID", "li_IP", "cameraSN", "cameraNumber",
				"timeIN", "timeOUT", "x", "y", "z", "K", "kc")
			VALUES (?, ?, ?, ?, ?, ?, ?, 1600000000, 1900000000, 410843.97, 4640881.2, 27.3, ?, ?)`,
			id, f.StationID, f.CameraModelID, f.LensModelID, f.IPID, "2121739"+string(rune('0'+i)), i+1, SeedK, SeedKC)
	}

	MustExec(t, conn, `INSERT INTO "geometry" ("cameraID", "azimuth", "tilt", "roll") VALUES (?, 100, 80, 1)`, f.CameraIDs[0])
	MustExec(t, conn, `INSERT INTO "geometry" ("cameraID", "azimuth", "tilt", "roll") VALUES (?, 101.5, 81, 0.5)`, f.CameraIDs[0])
	MustExec(t, conn, `INSERT INTO "gcp" ("id", "name", "siteID", "x", "y", "z") VALUES (?, 'pole', ?, 410850, 4640890, 3.1)`, f.GCPID, f.SiteID)

	rows, err := conn.Query(`SELECT "seq" FROM "geometry" ORDER BY "seq"`)
	if err != nil {
		t.Fatalf("Failed to read geometry seqs: %v", err)
	}
	defer rows.Close()
	for rows.Next() {
		var seq int64
		if err := rows.Scan(&seq); err != nil {
			t.Fatalf("Failed to scan geometry seq: %v", err)
		}
		f.GeometrySeqs = append(f.GeometrySeqs, seq)
	}

	return f
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
