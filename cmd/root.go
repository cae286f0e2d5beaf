// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cmd

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/coastcamdb/cliparse"
	"github.com/danielhkuo/coastcamdb/db"
	"github.com/danielhkuo/coastcamdb/record"
)

// app is the state shared by one command tree and, in the shell, by every
// tree built for a line of input.
type app struct {
	cfg     cliparse.Config
	dialect db.Dialect
	conn    *sql.DB
	store   *record.Store
	inShell bool
}

func (a *app) open(cmd *cobra.Command, _ []string) error {
	if a.store != nil {
		return nil
	}

	cfg, err := cliparse.Resolve(a.cfg)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if cfg.Verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	d, err := db.ParseDialect(cfg.DatabaseType)
	if err != nil {
		return err
	}
	conn, err := db.Open(d, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if err := db.CreateSchema(conn, d); err != nil {
		conn.Close()
		return fmt.Errorf("schema creation failed: %w", err)
	}

	a.dialect = d
	a.conn = conn
	a.store = record.NewStore(conn, d)
	slog.Debug("database ready", "type", d)
	return nil
}

func (a *app) close() {
	if a.conn != nil {
		a.conn.Close()
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "coastcamdb",
		Short:             "Maintain the CoastCam camera calibration database",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.open,
	}
	cliparse.BindFlags(root.PersistentFlags(), &a.cfg)

	root.AddCommand(
		a.readCmd(),
		a.addCmd(),
		a.updateCmd(),
		a.updateIDCmd(),
		a.yamlCmd(),
		a.exportCmd(),
		a.serveCmd(),
		a.shellCmd(),
		quitCmd(),
	)
	return root
}

// quitCmd ends the session. The shell stops on it before dispatch; on the
// command line it does nothing and needs no database.
func quitCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "quit",
		Aliases:           []string{"exit"},
		Short:             "Leave without doing anything",
		Args:              cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE:              func(*cobra.Command, []string) error { return nil },
	}
}

// Run executes the command line args with the given streams.
func Run(args []string, in io.Reader, out io.Writer) error {
	a := &app{}
	defer a.close()

	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(out)
	return root.Execute()
}

// Execute runs the root command against the process arguments.
func Execute() error {
	return Run(os.Args[1:], os.Stdin, os.Stdout)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// report prints what an operation touched and returns its failures.
func report(w io.Writer, verb string, res *record.Result) error {
	fmt.Fprintf(w, "%s %d %s row(s) in %d statement(s)", verb, len(res.Keys), res.Table, res.Statements)
	if ids := res.IDs(); len(ids) > 0 {
		fmt.Fprintf(w, ", ids %v", ids)
	}
	if len(res.Seqs) > 0 {
		fmt.Fprintf(w, ", seqs %v", res.Seqs)
	}
	fmt.Fprintln(w)

	for _, f := range res.Failures {
		fmt.Fprintf(w, "  failed: %v\n", f)
	}
	if err := res.Err(); err != nil {
		return fmt.Errorf("%s: %d statement(s) failed: %w", res.Table, len(res.Failures), err)
	}
	return nil
}
