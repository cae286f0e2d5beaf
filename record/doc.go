// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package record assembles rows of the CoastCam schema and writes them while
keeping foreign keys consistent.

# Building Rows

A Table collects queued values per column. Value i of every column
belongs to row i:

	cam, _ := record.NewTable("camera")
	cam.MustColumn("stationID", "1234567")
	cam.MustColumn("modelID", "cm1")
	cam.MustColumn("lensmodelID", "lm1")
	cam.MustColumn("li_IP", "ip1")
	cam.MustColumn("id", "cam1")
	cam.MustColumn("K", [][]float64{{1450, 0, 1224}, {0, 1450, 1024}, {0, 0, 1}})

	res, err := store.Insert(ctx, cam)

Matrix columns accept mat.Matrix, []float64, [][]float64, nested lists
decoded from YAML, or already encoded text.

# Insert Order

Insert validates everything first: queue lengths, the presence of every
foreign key the table requires, parent keys, ids and value types. A
validation failure is returned before any statement runs. Then each row
is built in three steps:

 1. One INSERT holding all foreign keys of the row. The new row starts
    with a blank id, and its seq is read back with MAX(seq).
 2. The id is written onto that blank row.
 3. Every remaining column is written with an UPDATE keyed by id, or by
    seq for geometry and usedgcp.

Root tables (site, cameramodel, lensmodel, ip) start with an INSERT of
the id instead.

Rows are not written in a transaction. A failed statement is recorded in
Result.Failures and the remaining statements still run, so a partial row
is possible; Result.Err reports it.

# Blank Ids

At most one row per table holds the blank id. Before a foreign-key insert
creates a new blank row, an existing one is renamed to a random numeric
placeholder id (AllocatePlaceholderID). The database schema carries a
unique index on id; HasBlankID also reports *BlankIDConflictError when
more than one blank is found.

# Geometry Sequence

usedgcp.geometrySequence references geometry.seq rather than an id. A seq
that does not exist is replaced with the latest geometry seq. If geometry
is empty, a sentinel row with seq 0 is inserted first.

# Updates

Update writes one column for rows named by Key. Rows of child tables are
matched on their foreign key and their key. UpdateID renames ids and
rejects collisions. When several rows hold the value being replaced,
Candidates lists them and UpdateMatching applies the change to the one the
caller picked:

	keys, err := store.Candidates(ctx, "camera", "x", 410843.97)
	res, err := store.UpdateMatching(ctx, xCol, 410843.97, keys[1])

# Errors

Validation errors are typed and carry the table, column and value at
fault. Match them with errors.Is against the Err* sentinels or errors.As
against the types.

# Concurrency

A Store is meant for a single caller. Blank-id reservation and MAX(seq)
read-back are not atomic.
*/
package record
