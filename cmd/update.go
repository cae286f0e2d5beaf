// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/coastcamdb/record"
	"github.com/danielhkuo/coastcamdb/schema"
)

var ErrAmbiguousMatch = errors.New("several rows hold the value")

func (a *app) updateCmd() *cobra.Command {
	var (
		ids   []string
		seqs  []int64
		match string
		pick  string
	)

	update := &cobra.Command{
		Use:   "update <table> <column> <value>...",
		Short: "Change a column of rows named by id, seq or current value",
		Long: `Change a column of existing rows. Name the rows with --id or --seq, one
value per key in the same order:

  coastcamdb update camera z 30.5 31 --id cam1 --id cam2

or by the value they hold now. When several rows hold it, the candidates
are listed and one is chosen with --pick:

  coastcamdb update camera x 410844.1 --match 410843.97 --pick cam2`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, column, texts := args[0], args[1], args[2:]
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			t, err := record.NewTable(table)
			if err != nil {
				return err
			}
			col, err := t.AddColumn(column)
			if err != nil {
				return err
			}
			for _, text := range texts {
				v, err := schema.ParseText(table, column, text)
				if err != nil {
					return err
				}
				col.Push(v)
			}

			if cmd.Flags().Changed("match") {
				old, err := schema.ParseText(table, column, match)
				if err != nil {
					return err
				}
				chosen, err := a.pickCandidate(cmd, table, column, old, pick)
				if err != nil {
					return err
				}
				res, err := a.store.UpdateMatching(ctx, col, old, chosen)
				if err != nil {
					return err
				}
				return report(out, "updated", res)
			}

			var keys []record.Key
			for _, id := range ids {
				keys = append(keys, record.IDKey(id))
			}
			for _, seq := range seqs {
				keys = append(keys, record.SeqKey(seq))
			}
			if len(keys) == 0 {
				return errors.New("name the rows with --id, --seq or --match")
			}

			res, err := a.store.Update(ctx, col, keys)
			if err != nil {
				return err
			}
			return report(out, "updated", res)
		},
	}
	update.Flags().StringSliceVar(&ids, "id", nil, "Id of a row to change (repeatable)")
	update.Flags().Int64SliceVar(&seqs, "seq", nil, "Seq of a row to change (repeatable)")
	update.Flags().StringVar(&match, "match", "", "Change the row whose column holds this value")
	update.Flags().StringVar(&pick, "pick", "", "Id or seq chosen among several --match candidates")
	update.MarkFlagsMutuallyExclusive("id", "seq", "match")
	return update
}

// pickCandidate returns the row to change among those holding old. A
// single candidate is taken as is; several require pick.
func (a *app) pickCandidate(cmd *cobra.Command, table, column string, old any, pick string) (record.Key, error) {
	if pick != "" {
		return parseKey(table, pick)
	}

	keys, err := a.store.Candidates(cmd.Context(), table, column, old)
	if err != nil {
		return record.Key{}, err
	}
	if len(keys) == 1 {
		return keys[0], nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d rows of %s hold %s = %v:\n", len(keys), table, column, old)
	for _, k := range keys {
		fmt.Fprintf(out, "  %s\n", keyString(k))
	}
	return record.Key{}, fmt.Errorf("%w; choose one with --pick", ErrAmbiguousMatch)
}

func (a *app) updateIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update-id <table> <old> <new>",
		Short: "Rename a row id and the foreign keys that point at it",
		Long: `Rename a row id. Child rows referencing the old id follow the rename.
Pass "" as old to name the row reserved by the last insert.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := record.NewTable(args[0])
			if err != nil {
				return err
			}
			col, err := t.AddColumn("id", args[2])
			if err != nil {
				return err
			}
			res, err := a.store.UpdateID(cmd.Context(), col, []string{args[1]})
			if err != nil {
				return err
			}
			return report(cmd.OutOrStdout(), "renamed", res)
		},
	}
}

// keyString prints keys the way --pick accepts them.
func keyString(k record.Key) string {
	if k.Kind() == schema.KeySeq {
		return strconv.FormatInt(k.Seq(), 10)
	}
	return k.ID()
}
