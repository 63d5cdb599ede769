// Package config provides YAML-based configuration loading for the match3
// engine and its terminal front end.
package config

// Match3Config contains all configuration for the match3 game.
type Match3Config struct {
	Scoring    ScoringConfig    `yaml:"scoring"`
	Generation GenerationConfig `yaml:"generation"`
	Animation  AnimationConfig  `yaml:"animation"`
	Gameplay   GameplayConfig   `yaml:"gameplay"`
}

// ScoringConfig defines the constants of the scoring formula.
type ScoringConfig struct {
	BasePoints      int `yaml:"base_points"`
	LMultiplier     int `yaml:"l_multiplier"`
	TMultiplier     int `yaml:"t_multiplier"`
	CrossMultiplier int `yaml:"cross_multiplier"`
}

// GenerationConfig bounds the board generation loops.
type GenerationConfig struct {
	MaxShuffleAttempts int `yaml:"max_shuffle_attempts"`
	MaxTokenAttempts   int `yaml:"max_token_attempts"`
}

// AnimationConfig defines how many ticks each animation phase lasts.
type AnimationConfig struct {
	SwapTicks       int `yaml:"swap_ticks"`
	InvalidTicks    int `yaml:"invalid_ticks"`
	ClearTicks      int `yaml:"clear_ticks"`
	FallTicksPerRow int `yaml:"fall_ticks_per_row"`
	RefillTicks     int `yaml:"refill_ticks"`
}

// GameplayConfig holds front-end behaviour toggles.
type GameplayConfig struct {
	HintAfterTicks int  `yaml:"hint_after_ticks"` // 0 disables the idle hint
	Campaign       bool `yaml:"campaign"`         // Advance to the next level on completion
}

// Validate replaces zero or negative values with their defaults so a
// partially written config file stays usable.
func (c *Match3Config) Validate() {
	d := DefaultMatch3Config()
	fix := func(v *int, def int) {
		if *v <= 0 {
			*v = def
		}
	}
	fix(&c.Scoring.BasePoints, d.Scoring.BasePoints)
	fix(&c.Scoring.LMultiplier, d.Scoring.LMultiplier)
	fix(&c.Scoring.TMultiplier, d.Scoring.TMultiplier)
	fix(&c.Scoring.CrossMultiplier, d.Scoring.CrossMultiplier)
	fix(&c.Generation.MaxShuffleAttempts, d.Generation.MaxShuffleAttempts)
	fix(&c.Generation.MaxTokenAttempts, d.Generation.MaxTokenAttempts)
	fix(&c.Animation.SwapTicks, d.Animation.SwapTicks)
	fix(&c.Animation.InvalidTicks, d.Animation.InvalidTicks)
	fix(&c.Animation.ClearTicks, d.Animation.ClearTicks)
	fix(&c.Animation.FallTicksPerRow, d.Animation.FallTicksPerRow)
	fix(&c.Animation.RefillTicks, d.Animation.RefillTicks)
	if c.Gameplay.HintAfterTicks < 0 {
		c.Gameplay.HintAfterTicks = 0
	}
}
