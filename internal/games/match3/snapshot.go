package match3

import "github.com/vovakirdan/tui-match3/internal/games/match3/core"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateAnimating    GameStateType = "animating"
	StateLevelCleared GameStateType = "level_cleared"
	StateGameOver     GameStateType = "game_over"
	StateWin          GameStateType = "win"
	StatePaused       GameStateType = "paused"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick       uint64
	Mode       string // "campaign" or "endless"
	LevelID    string
	Level      int // Current level (1-indexed for display)
	Target     int
	MovesLeft  int
	Score      int // Score on the current level
	TotalScore int
	Board      string // Rendered with core.Board.String
	Cursor     core.Coord
	Selected   *core.Coord
	Phase      AnimationPhase
	State      GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.levelCleared:
		state = StateLevelCleared
	case g.paused:
		state = StatePaused
	case len(g.frames) > 0:
		state = StateAnimating
	}

	snap := Snapshot{
		Tick:       g.tick,
		Mode:       string(g.mode),
		Level:      g.levelIndex + 1,
		TotalScore: g.State().Score,
		Cursor:     g.cursor,
		State:      state,
	}
	if f, ok := g.currentFrame(); ok {
		snap.Phase = f.phase
	}
	if g.selected != nil {
		c := *g.selected
		snap.Selected = &c
	}
	if g.session != nil {
		lvl := g.session.Level()
		snap.LevelID = lvl.ID
		snap.Target = lvl.TargetScore
		snap.MovesLeft = g.session.MovesLeft()
		snap.Score = g.session.Score()
		snap.Board = g.session.Board().String()
	}
	return snap
}
