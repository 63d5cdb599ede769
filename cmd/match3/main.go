// match3 is a terminal match-three puzzle with a headless simulator.
//
// Usage:
//
//	match3 levels              - List campaign levels
//	match3 play [level]        - Play the campaign, optionally from a level
//	match3 menu                - Pick a level interactively, then play
//	match3 simulate <level>    - Autoplay a level many times and report scores
//	match3 stats [level]       - Show stored simulation statistics
//	match3 shell [level]       - Interactive text shell over a session
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: 60)
//	--seed <value>    - Set RNG seed for reproducible gameplay
//	--config <path>   - Custom config YAML
//	--levels <dir>    - Directory of level files replacing the builtin campaign
//	--db <path>       - Simulation database path (default: ~/.match3/runs.db)
//	--verbose         - Debug logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagConfig  string
	flagLevels  string
	flagDBPath  string
	flagVerbose bool
)

// Loaded once by the root command before any subcommand runs.
var (
	logger    *log.Logger
	appConfig config.Match3Config
	campaign  []levels.Level
)

var printer = message.NewPrinter(language.English)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "match3",
	Short: "Match Three - a match-three puzzle in your terminal",
	Long: `Match Three is a terminal match-three puzzle. Swap adjacent tokens to
line up three or more of a kind, chain cascades, and reach each level's
target score before the moves run out.

Available commands:
  levels    - Show the campaign levels
  play      - Play the campaign
  menu      - Interactive level picker
  simulate  - Autoplay a level and report score statistics
  stats     - Show stored simulation statistics
  shell     - Text shell for inspecting a session

Examples:
  match3 play
  match3 play level_03 --endless
  match3 simulate level_01 --games 1000 --strategy greedy
  match3 shell level_02 --seed 42`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Directory of level files (default: builtin campaign)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.match3/runs.db", "Path to simulation database")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(shellCmd)
}

// setup builds the logger, loads the configuration and the levels, and
// hands them to the game package.
func setup(_ *cobra.Command, _ []string) error {
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "match3",
		Level:           log.WarnLevel,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.LoadMatch3(flagConfig)
	if err != nil {
		return err
	}
	appConfig = cfg

	loader := levels.Builtin()
	if flagLevels != "" {
		loader = levels.NewDirLoader(flagLevels)
	}
	loader.Logger = logger
	lvls, err := loader.LoadAll()
	if err != nil {
		return fmt.Errorf("cannot load levels: %w", err)
	}
	if len(lvls) == 0 {
		return fmt.Errorf("no valid levels found in %s", flagLevels)
	}
	campaign = lvls
	logger.Debug("levels loaded", "count", len(campaign))

	match3.SetConfig(appConfig)
	match3.SetLevels(campaign)
	match3.SetLogger(logger)
	return nil
}

// findLevel returns the campaign level with the given ID.
func findLevel(id string) (levels.Level, error) {
	for _, lvl := range campaign {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return levels.Level{}, fmt.Errorf("%w: %s (run 'match3 levels' to list them)", levels.ErrLevelNotFound, id)
}

// seed returns the --seed flag, or a time-based seed when unset.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return timeSeed()
}
