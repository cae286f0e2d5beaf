// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package params assembles the rectification parameters of a station.

ForStation selects the cameras of a station whose timeIN/timeOUT window
contains the requested unix time and reads, per camera:

  - metadata from the station and camera rows
  - NU and NV from the image processor (ip) row
  - fx, fy, c0U and c0V from the K matrix
  - d1, d2, d3, t1 and t2 from the kc vector
  - x, y and z from the camera, and azimuth, tilt and roll from the
    camera's latest geometry

The local origin comes from the station's site (UTMEasting, UTMNorthing,
degFromN).

FromFilename accepts an image name such as

	1700000000.Tue.Nov.14_22_13_20.GMT.2023.caco.c1.timex.jpg

and uses the leading unix time and the first station whose short name
occurs in the name.
*/
package params
