// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/coastcamdb/models"
	"github.com/danielhkuo/coastcamdb/params"
	"github.com/danielhkuo/coastcamdb/yamlout"
)

func (a *app) yamlCmd() *cobra.Command {
	var (
		unixTime int64
		filename string
		outDir   string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "yaml [stationID]",
		Short: "Write the calibration YAML files of a station",
		Long: `Write extrinsic, intrinsic and metadata files for every camera of a
station at a unix time, plus the station's local origin file. The station
and time come either from the arguments:

  coastcamdb yaml 1234567 --time 1700000000 --out ./yaml_files

or from an image filename holding the time and the station short name:

  coastcamdb yaml --filename 1700000000.Tue.Nov.14_22_13_20.GMT.2023.caco.c1.timex.jpg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				p   *models.StationParams
				err error
			)
			switch {
			case filename != "":
				p, err = params.FromFilename(cmd.Context(), a.store, filename)
			case len(args) == 1 && cmd.Flags().Changed("time"):
				p, err = params.ForStation(cmd.Context(), a.store, args[0], unixTime)
			default:
				return errors.New("give a stationID with --time, or --filename")
			}
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), p)
			}
			if len(p.Cameras) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no cameras at station %s at %d\n", p.StationID, p.Time)
			}
			paths, err := yamlout.WriteStation(outDir, p)
			for _, path := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return err
		},
	}
	cmd.Flags().Int64Var(&unixTime, "time", 0, "Unix time the cameras must be installed at")
	cmd.Flags().StringVar(&filename, "filename", "", "Image filename holding the time and station short name")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "Directory the files are written to")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the parameters as JSON instead of writing files")
	cmd.MarkFlagsMutuallyExclusive("time", "filename")
	return cmd
}
