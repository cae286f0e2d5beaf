// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the CoastCam calibration API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(store, cfg)

# Endpoints

Health:

	GET /health

Sites:

	GET /sites      - List sites
	GET /sites/{id} - Every row of one site, grouped by table

Parameters:

	GET /stations/{id}/params?time= - Cameras of a station at a unix time
	GET /params?filename=           - Same, from an image filename

Rows:

	GET /tables/{table}       - All rows, or those matching ?column=&value=
	GET /tables/{table}/{key} - One row by id (seq for geometry and usedgcp)

All routes except /health are wrapped with middleware.WithLogging.
*/
package router
