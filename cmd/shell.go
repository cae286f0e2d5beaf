// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

const shellPrompt = "coastcamdb> "

var errUnterminatedQuote = errors.New("unterminated quote")

func (a *app) shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run commands interactively over one connection",
		Long: `Read commands line by line and run them over the same database
connection, for example "read table site". Enter quit or exit to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.inShell {
				return errors.New("already in the shell")
			}
			a.inShell = true
			defer func() { a.inShell = false }()

			out := cmd.OutOrStdout()
			sc := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(out, shellPrompt)
				if !sc.Scan() {
					fmt.Fprintln(out)
					return sc.Err()
				}

				line := strings.TrimSpace(sc.Text())
				switch line {
				case "":
					continue
				case "quit", "exit":
					return nil
				}

				words, err := splitWords(line)
				if err != nil {
					fmt.Fprintf(out, "error: %v\n", err)
					continue
				}

				// binding flags resets cfg to its defaults
				cfg := a.cfg
				sub := a.rootCmd()
				a.cfg = cfg
				sub.SetArgs(words)
				sub.SetIn(cmd.InOrStdin())
				sub.SetOut(out)
				sub.SetErr(out)
				if err := sub.ExecuteContext(cmd.Context()); err != nil {
					fmt.Fprintf(out, "error: %v\n", err)
				}
			}
		},
	}
}

// splitWords splits a line on blanks. Single or double quotes group words
// and may hold an empty word.
func splitWords(line string) ([]string, error) {
	var (
		words  []string
		cur    strings.Builder
		quote  rune
		inWord bool
	)
	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			cur.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				words = append(words, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}
	if quote != 0 {
		return nil, errUnterminatedQuote
	}
	if inWord {
		words = append(words, cur.String())
	}
	return words, nil
}
