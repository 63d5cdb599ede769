package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/registry"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the campaign levels",
	Long:  `Shows every level of the campaign with its board size, target score and move limit.`,
	Args:  cobra.NoArgs,
	Run:   runLevels,
}

func runLevels(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()

	// Calculate column widths
	maxIDLen, maxNameLen := 2, 4 // "ID", "Name" headers
	for _, lvl := range campaign {
		maxIDLen = max(maxIDLen, len(lvl.ID))
		maxNameLen = max(maxNameLen, len(lvl.Title()))
	}

	printer.Fprintf(out, "  %-*s  %-*s  %-5s  %6s  %8s  %5s\n", maxIDLen, "ID", maxNameLen, "Name", "Size", "Cells", "Target", "Moves")
	printer.Fprintf(out, "  %-*s  %-*s  %-5s  %6s  %8s  %5s\n", maxIDLen, "--", maxNameLen, "----", "----", "-----", "------", "-----")

	for _, lvl := range campaign {
		size := printer.Sprintf("%dx%d", lvl.Width, lvl.Height)
		printer.Fprintf(out, "  %-*s  %-*s  %-5s  %6d  %8d  %5d\n",
			maxIDLen, lvl.ID, maxNameLen, lvl.Title(), size, lvl.PlayableCells(), lvl.TargetScore, lvl.Moves)
	}

	printer.Fprintln(out)
	printer.Fprintln(out, "Modes:")
	for _, g := range registry.List() {
		printer.Fprintf(out, "  %-16s  %s\n", g.ID, g.Title)
	}

	printer.Fprintln(out)
	printer.Fprintln(out, "Run 'match3 play <id>' to start from a level.")
}
