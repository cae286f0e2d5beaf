// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/danielhkuo/coastcamdb/schema"
)

// CreateSchema creates every CoastCam table for the dialect.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(conn *sql.DB, d Dialect) error {
	for _, stmt := range Statements(d) {
		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

// Statements returns the DDL for the dialect, one statement per element,
// in schema insert order.
func Statements(d Dialect) []string {
	var stmts []string
	for _, def := range schema.Definitions() {
		stmts = append(stmts, createTable(d, def))
		if def.HasID() && d != MySQL {
			stmts = append(stmts, fmt.Sprintf(
				"CREATE UNIQUE INDEX IF NOT EXISTS %s ON %s (%s)",
				d.Quote(indexName(def.Name)), d.Quote(def.Name), d.Quote("id"),
			))
		}
	}
	return stmts
}

func createTable(d Dialect, def schema.TableDef) string {
	lines := []string{d.Quote("seq") + " " + seqType(d)}
	for _, c := range def.Columns {
		lines = append(lines, d.Quote(c.Name)+" "+columnType(d, def, c))
	}

	// The unique id index also limits each table to a single blank id.
	if def.HasID() && d == MySQL {
		lines = append(lines, fmt.Sprintf("UNIQUE KEY %s (%s)", d.Quote(indexName(def.Name)), d.Quote("id")))
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n    %s\n)",
		d.Quote(def.Name), strings.Join(lines, ",\n    "))
}

func indexName(table string) string {
	return "idx_" + table + "_id"
}

func seqType(d Dialect) string {
	switch d {
	case MySQL:
		return "INT NOT NULL AUTO_INCREMENT PRIMARY KEY"
	case Postgres:
		return "SERIAL PRIMARY KEY"
	default:
		return "INTEGER PRIMARY KEY AUTOINCREMENT"
	}
}

func columnType(d Dialect, def schema.TableDef, c schema.ColumnDef) string {
	if c.Name == "id" {
		return fmt.Sprintf("VARCHAR(%d) NOT NULL DEFAULT ''", schema.MaxIDLength)
	}
	if fk, ok := def.ForeignKey(c.Name); ok && fk.ParentKey == schema.KeyID {
		return fmt.Sprintf("VARCHAR(%d)", schema.MaxIDLength)
	}

	switch c.Type {
	case schema.Integer:
		if d == SQLite {
			return "INTEGER"
		}
		return "BIGINT"
	case schema.Real:
		switch d {
		case MySQL:
			return "DOUBLE"
		case Postgres:
			return "DOUBLE PRECISION"
		default:
			return "REAL"
		}
	default:
		return "TEXT"
	}
}
