// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/coastcamdb/record"
	"github.com/danielhkuo/coastcamdb/schema"
)

// rowSpec is one YAML document of an add file. Columns holds one list of
// values per column; Rows holds one mapping per row.
type rowSpec struct {
	Table   string           `yaml:"table"`
	Columns map[string][]any `yaml:"columns"`
	Rows    []map[string]any `yaml:"rows"`
}

// readRowSpecs decodes every document of r and orders them parents first.
func readRowSpecs(r io.Reader) ([]rowSpec, error) {
	dec := yaml.NewDecoder(r)
	var specs []rowSpec
	for {
		var s rowSpec
		err := dec.Decode(&s)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse row file: %w", err)
		}
		if s.Table == "" && len(s.Columns) == 0 && len(s.Rows) == 0 {
			continue
		}
		if s.Table == "" {
			return nil, fmt.Errorf("document %d: table is required", len(specs)+1)
		}
		if len(s.Columns) > 0 && len(s.Rows) > 0 {
			return nil, fmt.Errorf("document %d: use columns or rows, not both", len(specs)+1)
		}
		if _, err := schema.Lookup(s.Table); err != nil {
			return nil, fmt.Errorf("document %d: %w", len(specs)+1, err)
		}
		specs = append(specs, s)
	}

	order := schema.Tables()
	sort.SliceStable(specs, func(i, j int) bool {
		return slices.Index(order, specs[i].Table) < slices.Index(order, specs[j].Table)
	})
	return specs, nil
}

// table queues the values of the document. Columns are added in name order.
func (s rowSpec) table() (*record.Table, error) {
	t, err := record.NewTable(s.Table)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(s.Columns))
	for name := range s.Columns {
		names = append(names, name)
	}
	for _, row := range s.Rows {
		for name := range row {
			if !slices.Contains(names, name) {
				names = append(names, name)
			}
		}
	}
	slices.Sort(names)

	for _, name := range names {
		values := slices.Clone(s.Columns[name])
		for _, row := range s.Rows {
			values = append(values, row[name])
		}
		if _, err := t.AddColumn(name, values...); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (a *app) addCmd() *cobra.Command {
	var file string
	add := &cobra.Command{
		Use:   "add -f rows.yaml",
		Short: "Insert rows described in a YAML file",
		Long: `Insert rows described in a YAML file. Each document names a table and
gives its values either per column or per row:

  table: camera
  columns:
    id: [cam1, cam2]
    stationID: ["1234567", "1234567"]
  ---
  table: geometry
  rows:
    - {cameraID: cam1, azimuth: 100.2, m: [[1, 0, 0, 0], [0, 1, 0, 0], [0, 0, 1, 0]]}

Documents are applied parents first whatever their order in the file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			specs, err := readRowSpecs(in)
			if err != nil {
				return err
			}

			var errs []error
			for _, spec := range specs {
				t, err := spec.table()
				if err != nil {
					return err
				}
				res, err := a.store.Insert(cmd.Context(), t)
				if err != nil {
					return fmt.Errorf("%s: %w", spec.Table, err)
				}
				if err := report(cmd.OutOrStdout(), "inserted", res); err != nil {
					errs = append(errs, err)
				}
			}
			return errors.Join(errs...)
		},
	}
	add.Flags().StringVarP(&file, "file", "f", "", "Row file, - for stdin")
	add.MarkFlagRequired("file")
	return add
}
