package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/sim"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var (
	flagGames      int
	flagWorkers    int
	flagStrategy   string
	flagBins       int
	flagSave       bool
	flagSimEndless bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <level>",
	Short: "Autoplay a level many times and report score statistics",
	Long: `Play the level with an automatic player and summarize the scores.

Strategies:
  first   - Always make the first legal swap (bottom-left first)
  random  - Make a random legal swap
  greedy  - Make the swap that scores the most on its first pass

Each game uses seed --seed + its index, so results are reproducible.

Examples:
  match3 simulate level_01
  match3 simulate level_04 --games 5000 --workers 8 --strategy random
  match3 simulate level_02 --save --db ./runs.db`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVarP(&flagGames, "games", "n", 200, "Number of games to play")
	simulateCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Parallel games (0 = number of CPUs)")
	simulateCmd.Flags().StringVar(&flagStrategy, "strategy", "greedy", "Autoplay strategy: first, random, greedy")
	simulateCmd.Flags().IntVar(&flagBins, "bins", 12, "Histogram buckets")
	simulateCmd.Flags().BoolVar(&flagSave, "save", false, "Store every run in the simulation database")
	simulateCmd.Flags().BoolVar(&flagSimEndless, "endless", false, "Play endless sessions capped at 100 moves")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	lvl, err := findLevel(args[0])
	if err != nil {
		return err
	}
	strategy, err := match3.ParseStrategy(flagStrategy)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	baseSeed := seed()
	report, err := sim.Run(ctx, sim.Options{
		Level:    lvl,
		Games:    flagGames,
		Workers:  flagWorkers,
		Seed:     baseSeed,
		Strategy: strategy,
		Config:   appConfig,
		Endless:  flagSimEndless,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printer.Fprintf(out, "Level %s (%s), %d games, strategy %s, seeds %d..%d\n\n",
		lvl.ID, lvl.Title(), len(report.Results), report.Strategy, baseSeed, baseSeed+int64(flagGames)-1)
	printer.Fprintf(out, "  Mean score   %.1f\n", report.Mean)
	printer.Fprintf(out, "  Std dev      %.1f\n", report.StdDev)
	printer.Fprintf(out, "  Min / Max    %d / %d\n", report.Min, report.Max)
	if !flagSimEndless {
		printer.Fprintf(out, "  Target       %d\n", lvl.TargetScore)
		printer.Fprintf(out, "  Clear rate   %.1f%%\n", report.ClearRate*100)
	}
	printer.Fprintf(out, "  Best chain   %d\n\n", report.MaxCombo)

	if err := report.Histogram(out, flagBins); err != nil {
		return err
	}

	if flagSave {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := report.Save(store); err != nil {
			return err
		}
		printer.Fprintf(out, "\nSaved %d runs to %s\n", len(report.Results), flagDBPath)
	}
	return nil
}
