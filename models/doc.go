// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the calibration parameter types and the API
response types.

# Parameter Bundle

A StationParams holds, for one station and one unix time, every camera
that was installed at that time:

  - Metadata: name, serial_number, camera_number, calibration_date, coordinate_system
  - Intrinsics: NU, NV, fx, fy, c0U, c0V, d1, d2, d3, t1, t2
  - Extrinsics: x, y, z, a, t, r
  - LocalOrigin: x, y, angd (one per station, taken from its site)

Each group lists its entries with Fields, in file order and with the
description written next to the value in calibration YAML files.

# Response Types

  - HealthResponse: status, database
  - SiteSummary: id, name
  - ErrorResponse: error, message
*/
package models
