package match3

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
)

// Package-level settings read by games created through the registry.
var (
	settingsMu sync.RWMutex
	gameConfig = config.DefaultMatch3Config()
	levelSet   []levels.Level
	startLevel string
	gameLogger *log.Logger
)

// SetConfig sets the configuration used by new games.
func SetConfig(cfg config.Match3Config) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	gameConfig = cfg
}

// SetLevels replaces the campaign levels used by new games. An empty slice
// restores the builtin campaign.
func SetLevels(lvls []levels.Level) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	levelSet = lvls
}

// SetStartLevel selects the level the next game starts on. An empty ID
// starts from the first level.
func SetStartLevel(id string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	startLevel = id
}

// GetStartLevel returns the currently selected start level ID.
func GetStartLevel() string {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return startLevel
}

// SetLogger sets the logger passed to engines of new games.
func SetLogger(l *log.Logger) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	gameLogger = l
}

// currentSettings returns a consistent copy of the package settings.
func currentSettings() (config.Match3Config, []levels.Level, string, *log.Logger) {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return gameConfig, levelSet, startLevel, gameLogger
}

// EngineConfig converts the scoring and generation sections of cfg into an
// engine configuration.
func EngineConfig(cfg config.Match3Config, seed int64, logger *log.Logger) core.EngineConfig {
	return core.EngineConfig{
		Seed: seed,
		Scoring: core.Scoring{
			BasePoints:      cfg.Scoring.BasePoints,
			LMultiplier:     cfg.Scoring.LMultiplier,
			TMultiplier:     cfg.Scoring.TMultiplier,
			CrossMultiplier: cfg.Scoring.CrossMultiplier,
		},
		MaxShuffleAttempts: cfg.Generation.MaxShuffleAttempts,
		MaxTokenAttempts:   cfg.Generation.MaxTokenAttempts,
		Logger:             logger,
	}
}
