package config

import (
	_ "embed"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultMatch3Config returns the default match3 configuration.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Scoring: ScoringConfig{
			BasePoints:      60,
			LMultiplier:     2,
			TMultiplier:     2,
			CrossMultiplier: 3,
		},
		Generation: GenerationConfig{
			MaxShuffleAttempts: 200,
			MaxTokenAttempts:   64,
		},
		Animation: AnimationConfig{
			SwapTicks:       4,
			InvalidTicks:    6,
			ClearTicks:      6,
			FallTicksPerRow: 2,
			RefillTicks:     4,
		},
		Gameplay: GameplayConfig{
			HintAfterTicks: 300,
			Campaign:       true,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "match3", "match3_endless":
		return defaultMatch3YAML
	default:
		return nil
	}
}
