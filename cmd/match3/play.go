package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

var (
	flagEndless bool
	flagMode    string
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play the campaign",
	Long: `Start playing the campaign, optionally from the given level.

Controls:
  Arrows/WASD/HJKL  - Move the cursor (or swap with the selected token)
  Space/Enter       - Select a token, or swap with the selected one
  ?                 - Show a hint
  Esc/B             - Drop the selection
  P                 - Pause
  R                 - Restart the level (or the game after it ends)
  Ctrl+S            - Save a screenshot to ~/.match3/screenshots
  Q/Ctrl+C          - Quit

Examples:
  match3 play
  match3 play level_03
  match3 play level_02 --endless
  match3 play --mode match3_endless
  match3 play --levels ./my-levels --config ./match3.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagEndless, "endless", false, "Endless mode: no target and no move limit")
	playCmd.Flags().StringVar(&flagMode, "mode", "", "Game mode ID (see 'match3 levels'); overrides --endless")
}

func runPlay(_ *cobra.Command, args []string) error {
	levelID := ""
	if len(args) == 1 {
		if _, err := findLevel(args[0]); err != nil {
			return err
		}
		levelID = args[0]
	}
	gameID, err := resolveMode(flagMode, flagEndless)
	if err != nil {
		return err
	}
	return playLevel(terminalConfig(), levelID, gameID)
}

// resolveMode picks the registered game to run. An empty mode selects the
// campaign, or endless play when endless is set.
func resolveMode(mode string, endless bool) (string, error) {
	if mode == "" {
		mode = "match3"
		if endless {
			mode = "match3_endless"
		}
	}
	if !registry.Exists(mode) {
		ids := lo.Map(registry.List(), func(g registry.GameInfo, _ int) string { return g.ID })
		return "", fmt.Errorf("unknown mode %q (available: %s)", mode, strings.Join(ids, ", "))
	}
	return mode, nil
}

// playLevel runs the game in the terminal until the player quits.
func playLevel(cfg core.RuntimeConfig, levelID, gameID string) error {
	match3.SetStartLevel(levelID)

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	logger.Debug("starting game", "game", gameID, "level", levelID, "seed", cfg.Seed)
	if err := tui.Run(game, cfg); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}

// terminalConfig builds the runtime config from the terminal size and the
// global flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func timeSeed() int64 {
	return time.Now().UnixNano()
}
