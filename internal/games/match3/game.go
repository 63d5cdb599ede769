package match3

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/config"
	platformcore "github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

const (
	levelClearDuration = 120 // ~2s at 60fps
	messageDuration    = 90
)

// Game implements the match-three puzzle for the terminal platform.
type Game struct {
	mode   Mode
	cfg    config.Match3Config
	logger *log.Logger
	seed   int64
	tick   uint64

	levels     []levels.Level
	levelIndex int
	session    *Session
	totalScore int // Points banked from cleared levels

	// Cursor and selection, in board coordinates (row 0 at the bottom)
	cursor    core.Coord
	selected  *core.Coord
	hint      *core.Swap
	idleTicks int

	// Animation queue
	frames     []frame
	frameTicks int

	// Screen dimensions
	screenW int
	screenH int

	// Game state flags
	gameOver        bool
	won             bool
	paused          bool
	tooSmall        bool
	levelCleared    bool
	levelClearTicks int

	message      string
	messageTicks int
}

func init() {
	registry.Register("match3", func() registry.Game {
		return New()
	})
	registry.Register("match3_endless", func() registry.Game {
		return NewEndless()
	})
}

// New creates a new campaign mode game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates a new endless mode game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "match3_endless"
	}
	return "match3"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Match Three (Endless)"
	}
	return "Match Three"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	gameCfg, lvls, start, logger := currentSettings()
	g.cfg = gameCfg
	g.logger = logger
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	g.seed = cfg.Seed
	g.tick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.totalScore = 0
	g.gameOver = false
	g.won = false
	g.paused = false
	g.levelCleared = false
	g.levelClearTicks = 0

	g.levels = lvls
	if len(g.levels) == 0 {
		builtin, err := levels.Builtin().LoadAll()
		if err != nil || len(builtin) == 0 {
			g.logger.Error("cannot load builtin levels", "err", err)
			builtin = []levels.Level{fallbackLevel()}
		}
		g.levels = builtin
	}

	g.levelIndex = 0
	if start != "" {
		for i, lvl := range g.levels {
			if lvl.ID == start {
				g.levelIndex = i
			}
		}
		SetStartLevel("") // Reset after use
	}

	g.startLevel()
}

// fallbackLevel is an open 9×9 board used when no level can be loaded.
func fallbackLevel() levels.Level {
	mask := make([][]bool, core.DefaultHeight)
	for row := range mask {
		mask[row] = make([]bool, core.DefaultWidth)
		for col := range mask[row] {
			mask[row][col] = true
		}
	}
	return levels.Level{
		ID:          "open",
		Name:        "Open Board",
		Width:       core.DefaultWidth,
		Height:      core.DefaultHeight,
		Mask:        mask,
		TargetScore: 1000,
		Moves:       20,
	}
}

// startLevel begins a fresh session on the current level.
func (g *Game) startLevel() {
	lvl := g.levels[g.levelIndex]
	g.frames = nil
	g.frameTicks = 0
	g.selected = nil
	g.hint = nil
	g.idleTicks = 0
	g.message = ""

	session, err := NewSession(lvl, Options{
		Seed:    g.seed + int64(g.levelIndex),
		Config:  g.cfg,
		Endless: g.mode == ModeEndless,
		Logger:  g.logger,
	})
	if err == nil {
		err = session.Begin()
	}
	if err != nil {
		g.logger.Error("cannot start level", "level", lvl.ID, "err", err)
		g.session = nil
		g.gameOver = true
		g.showMessage("Level is unplayable")
		return
	}
	g.session = session
	g.cursor = g.centerCell()
	g.checkScreenSize()
}

// centerCell returns the playable cell closest to the middle of the board.
func (g *Game) centerCell() core.Coord {
	b := g.session.Board()
	mid := core.C(b.W/2, b.H/2)
	best, bestDist := mid, -1
	for row := 0; row < b.H; row++ {
		for col := 0; col < b.W; col++ {
			if !b.MaskedAt(col, row) {
				continue
			}
			d := platformcore.Abs(col-mid.Col) + platformcore.Abs(row-mid.Row)
			if bestDist < 0 || d < bestDist {
				best, bestDist = core.C(col, row), d
			}
		}
	}
	return best
}

// Resize updates the screen size without restarting the level.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	if g.session == nil {
		g.tooSmall = false
		return
	}
	w, h := g.layoutSize()
	g.tooSmall = g.screenW < w || g.screenH < h
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++
	if g.messageTicks > 0 {
		g.messageTicks--
		if g.messageTicks == 0 {
			g.message = ""
		}
	}

	if g.tooSmall || g.session == nil {
		return platformcore.StepResult{State: g.State()}
	}

	// Handle pause
	if in.Has(platformcore.ActionPause) && !g.gameOver && !g.won {
		g.paused = !g.paused
	}
	if g.paused {
		return platformcore.StepResult{State: g.State()}
	}

	// Restart after game over is handled by the platform
	if g.gameOver || g.won {
		return platformcore.StepResult{State: g.State()}
	}

	if g.levelCleared {
		g.levelClearTicks++
		if g.levelClearTicks >= levelClearDuration {
			g.advanceLevel()
		}
		return platformcore.StepResult{State: g.State()}
	}

	if g.updateAnimation() {
		return platformcore.StepResult{State: g.State()}
	}
	if g.session.Over() {
		g.settle()
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionRestart) {
		g.seed += int64(g.tick)
		g.startLevel()
		return platformcore.StepResult{State: g.State()}
	}

	g.handleInput(in)
	return platformcore.StepResult{State: g.State()}
}

// handleInput applies cursor, selection and hint actions.
func (g *Game) handleInput(in platformcore.InputFrame) {
	b := g.session.Board()
	dir, moved := direction(in)

	switch {
	case moved && g.selected != nil:
		from := *g.selected
		to := core.C(from.Col+dir.Col, from.Row+dir.Row)
		g.selected = nil
		if b.InBounds(to.Col, to.Row) {
			g.cursor = to
			g.trySwap(from, to)
		}
	case moved:
		g.cursor = core.C(
			platformcore.Wrap(g.cursor.Col+dir.Col, b.W),
			platformcore.Wrap(g.cursor.Row+dir.Row, b.H),
		)
	case in.Has(platformcore.ActionConfirm):
		g.confirm()
	case in.Has(platformcore.ActionBack):
		g.selected = nil
	case in.Has(platformcore.ActionHint):
		g.showHint()
	}

	if in.Has(platformcore.ActionConfirm) || moved {
		g.idleTicks = 0
		g.hint = nil
		return
	}
	g.idleTicks++
	if after := g.cfg.Gameplay.HintAfterTicks; after > 0 && g.idleTicks >= after && g.hint == nil {
		g.showHint()
	}
}

// direction maps movement actions to a board offset. Up is towards higher rows.
func direction(in platformcore.InputFrame) (core.Coord, bool) {
	switch {
	case in.Has(platformcore.ActionUp):
		return core.C(0, 1), true
	case in.Has(platformcore.ActionDown):
		return core.C(0, -1), true
	case in.Has(platformcore.ActionLeft):
		return core.C(-1, 0), true
	case in.Has(platformcore.ActionRight):
		return core.C(1, 0), true
	}
	return core.Coord{}, false
}

// confirm selects the token under the cursor, swaps it with an adjacent
// selection, or clears the selection when pressed twice.
func (g *Game) confirm() {
	b := g.session.Board()
	occupied := b.TokenAt(g.cursor.Col, g.cursor.Row) != nil

	switch {
	case g.selected == nil:
		if occupied {
			c := g.cursor
			g.selected = &c
		}
	case *g.selected == g.cursor:
		g.selected = nil
	case g.selected.Adjacent(g.cursor):
		from := *g.selected
		g.selected = nil
		g.trySwap(from, g.cursor)
	case occupied:
		c := g.cursor
		g.selected = &c
	}
}

func (g *Game) showHint() {
	if sw, ok := g.session.Hint(); ok {
		g.hint = &sw
	}
}

// trySwap submits a swap to the session and queues its animation.
func (g *Game) trySwap(a, b core.Coord) {
	board := g.session.Board().Types()
	turn, err := g.session.TrySwap(a, b)
	switch {
	case errors.Is(err, ErrIllegalSwap):
		if g.session.Board().TokenAt(a.Col, a.Row) != nil && g.session.Board().TokenAt(b.Col, b.Row) != nil {
			g.frames = invalidFrames(board, a, b, g.cfg.Animation)
			g.frameTicks = 0
		}
		return
	case err != nil:
		g.logger.Error("turn failed", "err", err)
		g.showMessage("No moves left")
	}

	g.hint = nil
	g.idleTicks = 0
	g.frames = turnFrames(turn, g.cfg.Animation)
	g.frameTicks = 0
	if turn.Chain > 1 {
		g.showMessage(comboMessage(turn.Chain))
	}
	if turn.Reshuffled {
		g.showMessage("No moves left - reshuffled")
	}
}

func comboMessage(chain int) string {
	switch {
	case chain >= 5:
		return "Incredible!"
	case chain >= 4:
		return "Amazing!"
	case chain >= 3:
		return "Great!"
	default:
		return "Nice!"
	}
}

func (g *Game) showMessage(msg string) {
	g.message = msg
	g.messageTicks = messageDuration
}

// settle reacts to the session outcome once the last turn has played out.
func (g *Game) settle() {
	switch g.session.Status() {
	case StatusLevelComplete:
		if g.mode == ModeCampaign && g.cfg.Gameplay.Campaign && g.levelIndex < len(g.levels)-1 {
			g.levelCleared = true
			g.levelClearTicks = 0
			return
		}
		g.won = true
	case StatusGameOver:
		g.gameOver = true
	}
}

// advanceLevel moves to the next level, banking the current score.
func (g *Game) advanceLevel() {
	g.levelCleared = false
	g.levelClearTicks = 0
	g.totalScore += g.session.Score()
	g.levelIndex++
	g.startLevel()
}

// Session returns the session of the current level.
func (g *Game) Session() *Session {
	return g.session
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	score := g.totalScore
	if g.session != nil {
		score += g.session.Score()
	}
	return platformcore.GameState{
		Score:    score,
		GameOver: g.gameOver || g.won,
		Won:      g.won,
		Paused:   g.paused || g.tooSmall || g.levelCleared,
		Busy:     len(g.frames) > 0,
	}
}
