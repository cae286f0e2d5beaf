// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/danielhkuo/coastcamdb/matrix"
	"github.com/danielhkuo/coastcamdb/record"
	"github.com/danielhkuo/coastcamdb/schema"
)

func (a *app) readCmd() *cobra.Command {
	read := &cobra.Command{
		Use:   "read",
		Short: "Print sites, tables, columns or single values",
	}

	read.AddCommand(&cobra.Command{
		Use:   "site <siteID>",
		Short: "Print every row of a site as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := a.store.Site(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rec)
		},
	})

	var column, value string
	table := &cobra.Command{
		Use:   "table <table>",
		Short: "Print the rows of a table as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var v any
			if column != "" {
				var err error
				if v, err = schema.ParseText(args[0], column, value); err != nil {
					return err
				}
			}
			rows, err := a.store.Rows(cmd.Context(), args[0], column, v)
			if err != nil {
				return err
			}
			if rows == nil {
				rows = []record.Row{}
			}
			return printJSON(cmd.OutOrStdout(), rows)
		},
	}
	table.Flags().StringVar(&column, "column", "", "Only rows whose column equals --value")
	table.Flags().StringVar(&value, "value", "", "Value matched against --column")
	read.AddCommand(table)

	read.AddCommand(&cobra.Command{
		Use:   "column <table> <column>",
		Short: "Print one column of every row, one value per line",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := schema.Lookup(args[0])
			if err != nil {
				return err
			}
			if _, err := def.Column(args[1]); err != nil {
				return err
			}
			rows, err := a.store.Rows(cmd.Context(), args[0], "", nil)
			if err != nil {
				return err
			}
			for _, r := range rows {
				v, _ := r.Get(args[1])
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", keyString(r.Key()), formatValue(v))
			}
			return nil
		},
	})

	read.AddCommand(&cobra.Command{
		Use:   "value <table> <column> <key>",
		Short: "Print one value; the key is an id, or a seq for geometry and usedgcp",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseKey(args[0], args[2])
			if err != nil {
				return err
			}
			v, err := a.store.Value(cmd.Context(), args[0], args[1], key)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatValue(v))
			return nil
		},
	})

	return read
}

func parseKey(table, s string) (record.Key, error) {
	kind, err := schema.IdentityOf(table)
	if err != nil {
		return record.Key{}, err
	}
	return record.ParseKey(kind, s)
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case mat.Matrix:
		return matrix.Encode(x)
	}
	return fmt.Sprint(v)
}
