// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/danielhkuo/coastcamdb/record"
	"github.com/danielhkuo/coastcamdb/schema"
)

// Column writes one column of every row to dir/columns/<table>_<column>.csv.
func Column(ctx context.Context, store *record.Store, dir, table, column string) (string, error) {
	def, err := schema.Lookup(table)
	if err != nil {
		return "", err
	}
	if _, err := def.Column(column); err != nil {
		return "", err
	}
	rows, err := store.Rows(ctx, table, "", nil)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, "columns", table+"_"+column+".csv")
	return path, writeCSV(path, []string{column}, rows)
}

// Table writes every row of table to dir/tables/<table>.csv.
func Table(ctx context.Context, store *record.Store, dir, table string) (string, error) {
	def, err := schema.Lookup(table)
	if err != nil {
		return "", err
	}
	rows, err := store.Rows(ctx, table, "", nil)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, "tables", table+".csv")
	return path, writeCSV(path, def.ColumnNames(), rows)
}

// Site writes one file per non-empty table reachable from siteID into
// dir/sites/<siteID>/tables/.
func Site(ctx context.Context, store *record.Store, dir, siteID string) ([]string, error) {
	rec, err := store.Site(ctx, siteID)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, tr := range rec.Tables {
		if len(tr.Rows) == 0 {
			continue
		}
		def, err := schema.Lookup(tr.Table)
		if err != nil {
			return paths, err
		}
		path := filepath.Join(dir, "sites", siteID, "tables", tr.Table+".csv")
		if err := writeCSV(path, def.ColumnNames(), tr.Rows); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeCSV(path string, header []string, rows []record.Row) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range rows {
		out := make([]string, len(header))
		for i, c := range header {
			v, _ := r.Get(c)
			out[i] = formatCSVValue(v)
		}
		if err := w.Write(out); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	slog.Info("saved csv file", "path", path, "rows", len(rows))
	return f.Close()
}

func formatCSVValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", value)
	}
}
