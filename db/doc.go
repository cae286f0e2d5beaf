// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens CoastCam database connections and creates the schema.

# Dialects

Three dialects are supported, each with its registered driver:

  - mysql: github.com/go-sql-driver/mysql (the production database)
  - postgres: github.com/lib/pq
  - sqlite: modernc.org/sqlite (local files and tests)

Queries are written once with ? placeholders and passed through
Dialect.Rebind, which emits $1, $2, ... for Postgres. Table and column
names are quoted with Dialect.Quote and only ever come from the schema
package.

	d, err := db.ParseDialect(cfg.DatabaseType)
	conn, err := db.Open(d, cfg.DatabaseURL)

# Schema Creation

CreateSchema generates the DDL from the schema package:

	if err := db.CreateSchema(conn, d); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

Every table carries an auto-increment seq primary key. Tables identified by
a string id also get

	id VARCHAR(7) NOT NULL DEFAULT ''

with a unique index. New rows created by a foreign-key insert start with
the blank id, and the index guarantees at most one such row per table.

No FOREIGN KEY constraints are declared. Rows are assembled column by
column, so referential integrity is enforced by the record package
instead of the database.
*/
package db
