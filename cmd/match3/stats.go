package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/storage"
)

var flagClear bool

var statsCmd = &cobra.Command{
	Use:   "stats [level]",
	Short: "Show stored simulation statistics",
	Long: `Display statistics of simulations stored with 'match3 simulate --save'.

Without a level, a summary line is printed for every simulated level.
With a level, its ten best runs are listed as well.

Examples:
  match3 stats
  match3 stats level_01
  match3 stats level_01 --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the stored runs of the level")
}

func runStats(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		all, err := store.AllLevelStats()
		if err != nil {
			return err
		}
		if len(all) == 0 {
			printer.Fprintln(out, "No simulations recorded yet.")
			printer.Fprintln(out, "Run 'match3 simulate <level> --save' to record some.")
			return nil
		}

		ids := make([]string, 0, len(all))
		for id := range all {
			ids = append(ids, id)
		}
		slices.Sort(ids)

		printer.Fprintf(out, "  %-12s  %6s  %8s  %10s  %7s  %5s\n", "Level", "Runs", "Best", "Average", "Cleared", "Chain")
		printer.Fprintf(out, "  %-12s  %6s  %8s  %10s  %7s  %5s\n", "-----", "----", "----", "-------", "-------", "-----")
		for _, id := range ids {
			st := all[id]
			printer.Fprintf(out, "  %-12s  %6d  %8d  %10.1f  %6.1f%%  %5d\n",
				id, st.Runs, st.BestScore, st.AvgScore, st.ClearRate()*100, st.MaxChain)
		}
		return nil
	}

	levelID := args[0]
	if flagClear {
		if err := store.ClearRuns(levelID); err != nil {
			return err
		}
		printer.Fprintf(out, "Cleared runs of %s\n", levelID)
		return nil
	}

	st, err := store.LevelStats(levelID)
	if err != nil {
		return err
	}
	if st.Runs == 0 {
		printer.Fprintf(out, "No simulations recorded for %s.\n", levelID)
		return nil
	}

	printer.Fprintf(out, "Simulations - %s\n\n", levelID)
	printer.Fprintf(out, "  Runs         %d\n", st.Runs)
	printer.Fprintf(out, "  Best score   %d\n", st.BestScore)
	printer.Fprintf(out, "  Average      %.1f\n", st.AvgScore)
	printer.Fprintf(out, "  Avg moves    %.1f\n", st.AvgMoves)
	printer.Fprintf(out, "  Clear rate   %.1f%%\n", st.ClearRate()*100)
	printer.Fprintf(out, "  Best chain   %d\n", st.MaxChain)
	printer.Fprintf(out, "  Last run     %s\n\n", st.LastRun.Format("2006-01-02 15:04"))

	runs, err := store.RunsForLevel(levelID, 10)
	if err != nil {
		return err
	}
	printer.Fprintf(out, "  %-4s  %-8s  %8s  %5s  %5s  %s\n", "Rank", "Strategy", "Score", "Moves", "Chain", "Seed")
	printer.Fprintf(out, "  %-4s  %-8s  %8s  %5s  %5s  %s\n", "----", "--------", "-----", "-----", "-----", "----")
	for i, r := range runs {
		printer.Fprintf(out, "  %-4d  %-8s  %8d  %5d  %5d  %s\n", i+1, r.Strategy, r.Score, r.Moves, r.MaxChain, fmt.Sprint(r.Seed))
	}
	return nil
}
