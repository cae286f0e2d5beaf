// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package record

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/danielhkuo/coastcamdb/matrix"
	"github.com/danielhkuo/coastcamdb/schema"
)

// Row is one stored row, columns in catalogue order with seq first.
// Matrix columns hold their encoded text.
type Row struct {
	Table   string
	Columns []string
	Values  []any
}

// Get returns the value of column, nil for NULL.
func (r Row) Get(column string) (any, bool) {
	for i, c := range r.Columns {
		if c == column {
			return r.Values[i], true
		}
	}
	return nil, false
}

// String returns a text column, "" for NULL or a missing column.
func (r Row) String(column string) string {
	v, _ := r.Get(column)
	s, _ := v.(string)
	return s
}

// Int returns an integer column, 0 for NULL.
func (r Row) Int(column string) int64 {
	v, _ := r.Get(column)
	n, _ := toInt64(v)
	return n
}

// Float returns a numeric column, 0 for NULL.
func (r Row) Float(column string) float64 {
	v, _ := r.Get(column)
	f, _ := toFloat64(v)
	return f
}

// Matrix decodes a matrix column.
func (r Row) Matrix(column string) (mat.Matrix, error) {
	text := r.String(column)
	if text == "" {
		return nil, &EmptyValueError{Table: r.Table, Column: column}
	}
	return matrix.Decode(text)
}

// Key returns the identity of the row.
func (r Row) Key() Key {
	if id, ok := r.Get("id"); ok {
		s, _ := id.(string)
		return IDKey(s)
	}
	return SeqKey(r.Int("seq"))
}

func (r Row) Map() map[string]any {
	m := make(map[string]any, len(r.Columns))
	for i, c := range r.Columns {
		m[c] = r.Values[i]
	}
	return m
}

func (r Row) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Map())
}

// Value reads one column of one row. Matrix columns are decoded into a
// mat.Matrix; NULL is returned as nil.
func (s *Store) Value(ctx context.Context, table, column string, key Key) (any, error) {
	def, err := schema.Lookup(table)
	if err != nil {
		return nil, err
	}
	colDef, err := def.Column(column)
	if err != nil {
		return nil, err
	}
	if key.Kind() == schema.KeyID && !def.HasID() {
		return nil, key.notFound(table)
	}

	dest := scanTarget(colDef)
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?", s.quote(column), s.quote(table), s.quote(key.Column()))
	err = s.queryRow(ctx, query, key.Value()).Scan(dest)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, key.notFound(table)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s.%s: %w", table, column, err)
	}

	v := scanned(dest)
	if colDef.Type == schema.Matrix && v != nil && v != "" {
		m, err := matrix.Decode(v.(string))
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s.%s: %w", table, column, err)
		}
		return m, nil
	}
	return v, nil
}

// Row reads every column of one row.
func (s *Store) Row(ctx context.Context, table string, key Key) (Row, error) {
	def, err := schema.Lookup(table)
	if err != nil {
		return Row{}, err
	}
	if key.Kind() == schema.KeyID && !def.HasID() {
		return Row{}, key.notFound(table)
	}

	rows, err := s.selectRows(ctx, def, s.quote(key.Column())+" = ?", key.Value())
	if err != nil {
		return Row{}, err
	}
	if len(rows) == 0 {
		return Row{}, key.notFound(table)
	}
	return rows[0], nil
}

// Rows reads the rows of table whose column equals value, or every row
// when column is "".
func (s *Store) Rows(ctx context.Context, table, column string, value any) ([]Row, error) {
	def, err := schema.Lookup(table)
	if err != nil {
		return nil, err
	}
	if column == "" {
		return s.selectRows(ctx, def, "")
	}
	if _, err := def.Column(column); err != nil {
		return nil, err
	}
	return s.selectRows(ctx, def, s.quote(column)+" = ?", value)
}

// RowsIn reads the rows of table whose column is one of values.
func (s *Store) RowsIn(ctx context.Context, table, column string, values []any) ([]Row, error) {
	def, err := schema.Lookup(table)
	if err != nil {
		return nil, err
	}
	if _, err := def.Column(column); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, nil
	}
	return s.selectRows(ctx, def, fmt.Sprintf("%s IN (%s)", s.quote(column), placeholders(len(values))), values...)
}

func (s *Store) selectRows(ctx context.Context, def schema.TableDef, where string, args ...any) ([]Row, error) {
	names := def.ColumnNames()
	query := fmt.Sprintf("SELECT %s FROM %s", s.quoteAll(names), s.quote(def.Name))
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY " + s.quote("seq")

	rows, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", def.Name, err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		dests := make([]any, len(names))
		for i, n := range names {
			colDef, _ := def.Column(n)
			dests[i] = scanTarget(colDef)
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", def.Name, err)
		}

		r := Row{Table: def.Name, Columns: names, Values: make([]any, len(names))}
		for i, d := range dests {
			r.Values[i] = scanned(d)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", def.Name, err)
	}
	return out, nil
}

// Seqs lists every seq of table in insertion order.
func (s *Store) Seqs(ctx context.Context, table string) ([]int64, error) {
	if _, err := schema.Lookup(table); err != nil {
		return nil, err
	}
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s", s.quote("seq"), s.quote(table), s.quote("seq"))
	rows, err := s.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s seqs: %w", table, err)
	}
	defer rows.Close()

	var seqs []int64
	for rows.Next() {
		var seq int64
		if err := rows.Scan(&seq); err != nil {
			return nil, fmt.Errorf("failed to scan %s seq: %w", table, err)
		}
		seqs = append(seqs, seq)
	}
	return seqs, rows.Err()
}

// IDs lists every id of table in insertion order, including a blank id.
func (s *Store) IDs(ctx context.Context, table string) ([]string, error) {
	if err := s.idTable(table); err != nil {
		return nil, err
	}
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s", s.quote("id"), s.quote(table), s.quote("seq"))
	rows, err := s.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s ids: %w", table, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan %s id: %w", table, err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CheckID returns *NoMatchingIDError unless id exists in table.
func (s *Store) CheckID(ctx context.Context, table, id string) error {
	def, err := schema.Lookup(table)
	if err != nil {
		return err
	}
	return s.checkKey(ctx, def, IDKey(id))
}

// CheckSeq returns *NoMatchingSeqError unless seq exists in table.
func (s *Store) CheckSeq(ctx context.Context, table string, seq int64) error {
	def, err := schema.Lookup(table)
	if err != nil {
		return err
	}
	return s.checkKey(ctx, def, SeqKey(seq))
}

// MatchIDSeq checks that id and seq name the same row.
func (s *Store) MatchIDSeq(ctx context.Context, table, id string, seq int64) error {
	if err := s.CheckID(ctx, table, id); err != nil {
		return err
	}
	if err := s.CheckSeq(ctx, table, seq); err != nil {
		return err
	}

	got, err := s.Value(ctx, table, "seq", IDKey(id))
	if err != nil {
		return err
	}
	if n, _ := toInt64(got); n != seq {
		return &MismatchedIDSeqError{Table: table, ID: id, Seq: seq}
	}
	return nil
}

// HasBlankValue reports whether any row of table has column NULL or empty.
func (s *Store) HasBlankValue(ctx context.Context, table, column string) (bool, error) {
	def, err := schema.Lookup(table)
	if err != nil {
		return false, err
	}
	colDef, err := def.Column(column)
	if err != nil {
		return false, err
	}

	cond := s.quote(column) + " IS NULL"
	var args []any
	if colDef.Type == schema.Text || colDef.Type == schema.Matrix {
		cond += " OR " + s.quote(column) + " = ?"
		args = append(args, "")
	}

	var one int
	query := fmt.Sprintf("SELECT 1 FROM %s WHERE %s LIMIT 1", s.quote(table), cond)
	err = s.queryRow(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check %s.%s for blanks: %w", table, column, err)
	}
	return true, nil
}

// LinkedKeys lists the parent keys a value of table.fkColumn may take.
func (s *Store) LinkedKeys(ctx context.Context, table, fkColumn string) ([]Key, error) {
	def, err := schema.Lookup(table)
	if err != nil {
		return nil, err
	}
	fk, ok := def.ForeignKey(fkColumn)
	if !ok {
		return nil, &schema.UnknownColumnError{Table: table, Column: fkColumn}
	}

	if fk.ParentKey == schema.KeySeq {
		seqs, err := s.Seqs(ctx, fk.Parent)
		if err != nil {
			return nil, err
		}
		keys := make([]Key, len(seqs))
		for i, seq := range seqs {
			keys[i] = SeqKey(seq)
		}
		return keys, nil
	}

	ids, err := s.IDs(ctx, fk.Parent)
	if err != nil {
		return nil, err
	}
	keys := make([]Key, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			keys = append(keys, IDKey(id))
		}
	}
	return keys, nil
}

// ForeignKeyValues lists the distinct values table.fkColumn currently holds.
func (s *Store) ForeignKeyValues(ctx context.Context, table, fkColumn string) ([]any, error) {
	def, err := schema.Lookup(table)
	if err != nil {
		return nil, err
	}
	if _, ok := def.ForeignKey(fkColumn); !ok {
		return nil, &schema.UnknownColumnError{Table: table, Column: fkColumn}
	}
	rows, err := s.selectRows(ctx, def, s.quote(fkColumn)+" IS NOT NULL")
	if err != nil {
		return nil, err
	}
	return distinct(rows, fkColumn), nil
}

func distinct(rows []Row, column string) []any {
	seen := make(map[any]bool)
	var out []any
	for _, r := range rows {
		v, _ := r.Get(column)
		if v == nil || v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// TableRows is the slice of one table that belongs to a site.
type TableRows struct {
	Table string `json:"table"`
	Rows  []Row  `json:"rows"`
}

// SiteRecord is every row reachable from one site, tables in dump order.
type SiteRecord struct {
	SiteID string      `json:"site_id"`
	Tables []TableRows `json:"tables"`
}

// Rows returns the rows of table within the record.
func (r *SiteRecord) Rows(table string) []Row {
	for _, t := range r.Tables {
		if t.Table == table {
			return t.Rows
		}
	}
	return nil
}

// Site collects the site row and every row that descends from it or that
// its cameras reference.
func (s *Store) Site(ctx context.Context, siteID string) (*SiteRecord, error) {
	rec := &SiteRecord{SiteID: siteID}
	add := func(table string, rows []Row) {
		rec.Tables = append(rec.Tables, TableRows{Table: table, Rows: rows})
	}

	site, err := s.Row(ctx, schema.Site, IDKey(siteID))
	if err != nil {
		return nil, err
	}
	add(schema.Site, []Row{site})

	stations, err := s.Rows(ctx, schema.Station, "siteID", siteID)
	if err != nil {
		return nil, err
	}
	add(schema.Station, stations)

	stationIDs := distinct(stations, "id")
	cameras, err := s.RowsIn(ctx, schema.Camera, "stationID", stationIDs)
	if err != nil {
		return nil, err
	}
	add(schema.Camera, cameras)

	for _, ref := range []struct{ table, column string }{
		{schema.CameraModel, "modelID"},
		{schema.LensModel, "lensmodelID"},
		{schema.IP, "li_IP"},
	} {
		ids := distinct(cameras, ref.column)
		rows, err := s.RowsIn(ctx, ref.table, "id", ids)
		if err != nil {
			return nil, err
		}
		add(ref.table, rows)
	}

	gcps, err := s.Rows(ctx, schema.GCP, "siteID", siteID)
	if err != nil {
		return nil, err
	}
	add(schema.GCP, gcps)

	cameraIDs := distinct(cameras, "id")
	geometries, err := s.RowsIn(ctx, schema.Geometry, "cameraID", cameraIDs)
	if err != nil {
		return nil, err
	}
	add(schema.Geometry, geometries)

	geomSeqs := distinct(geometries, "seq")
	used, err := s.RowsIn(ctx, schema.UsedGCP, schema.GeometrySequence, geomSeqs)
	if err != nil {
		return nil, err
	}
	add(schema.UsedGCP, used)

	return rec, nil
}
