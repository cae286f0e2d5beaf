// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package matrix serializes small numeric arrays into the TEXT columns that
hold camera calibration matrices (camera.K, camera.kc, geometry.m).

# Format

	[1.1 2.2 3.3]                  1-D
	[[1 0 320], [0 1 240], [0 0 1]] 2-D

Elements are rounded to four decimals on encode. The rounding is part of
the stored format, so Decode(Encode(m)) equals m only to within 1e-4;
encoding a decoded value again is stable.

Decode also accepts the numpy array2string text already present in older
rows, including commas inside long 1-D arrays.
*/
package matrix
