package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a level from a list, then play",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play the campaign from the
highlighted level, E to play it in endless mode. After the game ends you
return to the list. When simulations were stored with 'match3 simulate
--save', the best simulated score of each level is shown.

Controls:
  Up/Down/j/k  - Navigate
  Enter/Space  - Play from the level
  E            - Play the level in endless mode
  Q/Esc        - Quit

Examples:
  match3 menu
  match3 menu --fps 30`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open simulation database", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	for {
		cfg := terminalConfig()
		sel, ok, err := tui.RunPicker(campaign, store, cfg.ScreenW, cfg.ScreenH)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		gameID, err := resolveMode("", sel.Endless)
		if err != nil {
			return err
		}
		if err := playLevel(cfg, sel.LevelID, gameID); err != nil {
			return err
		}
	}
}
