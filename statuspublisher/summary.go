/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package statuspublisher

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"chainguard.dev/ticketgate/pullrequest"
)

// WriteSummary renders reports as a markdown table, in the format GitHub
// Actions accepts for GITHUB_STEP_SUMMARY.
func WriteSummary(w io.Writer, pr pullrequest.PullRequest, reports []Report) error {
	if _, err := fmt.Fprintf(w, "### Ticket checks for %s\n\n", pr); err != nil {
		return err
	}
	if len(reports) == 0 {
		_, err := fmt.Fprintln(w, "No statuses were published.")
		return err
	}

	table := newSummaryTable(w, []string{"Check", "Result", "Details"})
	for _, r := range reports {
		result := "✅ pass"
		if !r.Pass {
			result = "❌ fail"
		}
		_ = table.Append([]string{r.Context, result, r.Message})
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering summary: %w", err)
	}
	return nil
}

func newSummaryTable(w io.Writer, headers []string) *tablewriter.Table {
	cfg := tablewriter.Config{
		Header: tw.CellConfig{
			Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			Formatting: tw.CellFormatting{AutoFormat: tw.Off},
		},
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
		Behavior: tw.Behavior{TrimSpace: tw.Off},
	}
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(cfg),
		tablewriter.WithHeader(headers),
		tablewriter.WithRenderer(renderer.NewBlueprint()),
		tablewriter.WithRendition(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleMarkdown),
			Borders: tw.Border{
				Left:   tw.On,
				Top:    tw.Off,
				Right:  tw.On,
				Bottom: tw.Off,
			},
		}),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
	)
}
