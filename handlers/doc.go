// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the CoastCam
calibration API. The API is read-only; writes go through the command
line.

# Handler Types

Each handler is a struct with store and config dependencies:

  - SiteHandler: health, site list, full site dump
  - ParamsHandler: rectification parameters by station and time or by filename
  - TableHandler: raw rows by table and key

Handlers are created via constructor functions that accept a *record.Store
and Config:

	siteHandler := handlers.NewSiteHandler(store, cfg)

# Endpoints

	GET /health                         → Health
	GET /sites                          → ListSites
	GET /sites/{id}                     → GetSite
	GET /stations/{id}/params?time=     → GetStationParams
	GET /params?filename=               → GetFilenameParams
	GET /tables/{table}?column=&value=  → ListRows
	GET /tables/{table}/{key}           → GetRow

# Errors

Unknown tables, columns, ids and seqs answer 404. Malformed times,
filenames and keys answer 400. Other failures are logged and answer 500.
*/
package handlers
