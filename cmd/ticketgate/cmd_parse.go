/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"chainguard.dev/ticketgate/overrides"
	"chainguard.dev/ticketgate/ticketref"
)

var parseCmd = &cobra.Command{
	Use:   "parse [TEXT]",
	Short: "Show the ticket reference and override flags found in text",
	Long: `Parse prints the ticket reference at the start of TEXT and every override
flag found in it. Without TEXT, standard input is read, which makes it easy
to check a pull request description:

  gh pr view 42 --json body -q .body | ticketgate parse`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	var text string
	if len(args) == 1 {
		text = args[0]
	} else {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		text = string(b)
	}
	return writeParse(cmd.OutOrStdout(), text)
}

func writeParse(w io.Writer, text string) error {
	var sb strings.Builder
	if ticket, ok := ticketref.Parse(text); ok {
		fmt.Fprintf(&sb, "ticket: %s\n", ticket)
	} else {
		sb.WriteString("ticket: none\n")
	}

	flags := overrides.Parse(text)
	for _, k := range flags.Keys() {
		v := flags[k]
		fmt.Fprintf(&sb, "override %s = %s (%s, enabled=%t)\n", k, v, v.Kind(), v.Truthy())
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
