// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package yamlout writes calibration parameters as small YAML files.

Each file lists its values in a fixed order and then repeats every name
as a comment with its description:

	x: 410843.97
	y: 4640881.2
	z: 27.3
	a: 101.5
	t: 81.0
	r: 0.5
	#x - x location of camera
	#y - y location of camera
	...

For a station with short name "caco", WriteStation produces
caco_C1_extr.yaml, caco_C1_intr.yaml and caco_C1_metadata.yaml for every
camera (numbered by camera number) plus caco_localOrigin.yaml.
*/
package yamlout
