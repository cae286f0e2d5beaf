// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/coastcamdb/export"
)

func (a *app) exportCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Save columns, tables or sites as CSV files",
	}
	cmd.PersistentFlags().StringVarP(&outDir, "out", "o", "saved_csv", "Directory the files are written under")

	cmd.AddCommand(&cobra.Command{
		Use:   "column <table> <column>",
		Short: "Save one column to <out>/columns/<table>_<column>.csv",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := export.Column(cmd.Context(), a.store, outDir, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "table <table>",
		Short: "Save a table to <out>/tables/<table>.csv",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := export.Table(cmd.Context(), a.store, outDir, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "site <siteID>",
		Short: "Save every table of a site under <out>/sites/<siteID>/tables/",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := export.Site(cmd.Context(), a.store, outDir, args[0])
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return err
		},
	})

	return cmd
}
