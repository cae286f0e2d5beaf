// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package schema is the static description of the CoastCam database.

The schema is fixed and hand-encoded: table names, columns, and the
foreign-key graph never come from the database.

# Hierarchy

	site 1──* station 1──* camera 1──* geometry 1──* usedgcp
	site 1──* gcp 1──* usedgcp
	cameramodel, lensmodel, ip 1──* camera

site, cameramodel, lensmodel and ip are roots and have no foreign keys.

# Row Identity

Most tables are identified by a string id of at most seven characters.
geometry and usedgcp have no id and are identified by their auto-increment
seq. Every foreign key references a parent id, except
usedgcp.geometrySequence which references geometry.seq:

	kind, _ := schema.ParentKeyKind("usedgcp", "geometrySequence") // KeySeq

# Lookups

	fks, err := schema.ForeignKeysOf("camera")
	parent, err := schema.LinkedTable("camera", "li_IP") // "ip"

Unrecognized names return *UnknownTableError or *UnknownColumnError.
*/
package schema
