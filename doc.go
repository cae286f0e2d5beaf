// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for coastcamdb.

coastcamdb maintains the CoastCam camera calibration database: sites,
stations, cameras with their models, lenses and image processors, ground
control points and camera geometries. It inserts rows while keeping their
foreign keys consistent, edits and renames them, and turns the stored
calibration into the YAML files the rectification tools read.

# Connecting

The database is chosen by flags, environment variables or a credentials
file:

	coastcamdb -t sqlite -d calibration.db read table site
	DATABASE_TYPE=postgres DATABASE_URL=postgres://... coastcamdb serve
	COASTCAM_CREDENTIALS=creds.csv coastcamdb -t mysql shell

A .env file in the working directory is loaded first.

# Architecture

  - schema: table and column definitions, foreign keys
  - db: drivers, dialect placeholders and schema creation
  - matrix: text encoding of matrix columns
  - record: row assembly, inserts, updates and reads
  - params: calibration parameters of a station at a time
  - yamlout: calibration YAML files
  - export: CSV snapshots
  - handlers, router, middleware, models: the read-only HTTP API
  - cliparse: configuration parsing
  - cmd: the command line

See package documentation for each component.
*/
package main
