// Package match3 provides the match-three puzzle game for the terminal:
// a headless Session driving the rule engine turn by turn, autoplay
// strategies, and a registry.Game with cursor input and phase animation.
package match3

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
)

var (
	// ErrIllegalSwap is returned when a requested swap is not in the legal set.
	ErrIllegalSwap = errors.New("illegal swap")

	// ErrSessionOver is returned when a swap is requested after the level ended.
	ErrSessionOver = errors.New("session is over")
)

// Status is the outcome state of a session.
type Status int

const (
	StatusPlaying Status = iota
	StatusLevelComplete
	StatusGameOver
)

// String returns the string representation of a status.
func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusLevelComplete:
		return "level_complete"
	case StatusGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Options configures a Session.
type Options struct {
	Seed    int64
	Config  config.Match3Config
	Endless bool        // Ignore target score and move limit
	Logger  *log.Logger // nil discards session logs
}

// Step is one resolve, compact and refill pass of a turn, with the board as
// it looked at each stage. Token pointers in Falls and Fills keep moving in
// later passes; the coordinate lists are fixed when the pass ran.
type Step struct {
	Shapes      []*core.Shape
	Points      int
	Falls       []core.ColumnFall
	Fills       []core.ColumnFill
	Cleared     []core.Coord
	Landed      []core.Coord // where falling tokens came to rest
	Created     []core.Coord
	MaxFall     int
	Before      [][]core.TokenType // board the shapes were found on
	AfterClear  [][]core.TokenType
	AfterFall   [][]core.TokenType
	AfterRefill [][]core.TokenType
}

// Turn describes everything that happened in one accepted swap.
type Turn struct {
	Swap       core.Swap
	Swapped    [][]core.TokenType // board right after the exchange
	Steps      []Step
	Points     int
	Chain      int // number of shapes scored this turn
	Reshuffled bool
	Status     Status
}

// Session plays one level: it owns the engine and tracks score, moves and
// outcome. A Session is not safe for concurrent use.
type Session struct {
	level  levels.Level
	engine *core.Engine
	opts   Options
	log    *log.Logger

	score      int
	movesLeft  int
	movesMade  int
	maxChain   int
	reshuffles int
	status     Status
}

// NewSession creates a session for level. Call Begin before the first swap.
func NewSession(level levels.Level, opts Options) (*Session, error) {
	if opts.Config == (config.Match3Config{}) {
		opts.Config = config.DefaultMatch3Config()
	}
	engine, err := level.NewEngine(EngineConfig(opts.Config, opts.Seed, opts.Logger))
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", level.ID, err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{
		level:  level,
		engine: engine,
		opts:   opts,
		log:    logger.With("level", level.ID),
	}, nil
}

// Begin shuffles a fresh board and resets score, moves and combo.
func (s *Session) Begin() error {
	if _, err := s.engine.Initialize(); err != nil {
		return fmt.Errorf("level %s: %w", s.level.ID, err)
	}
	s.engine.ResetComboMultiplier()
	s.score = 0
	s.movesLeft = s.level.Moves
	s.movesMade = 0
	s.maxChain = 0
	s.reshuffles = 0
	s.status = StatusPlaying
	s.log.Debug("session started", "moves", s.movesLeft, "target", s.level.TargetScore)
	return nil
}

// TrySwap exchanges the tokens at a and b if the swap is legal, then runs
// the cascade to completion. An illegal swap leaves the board and the move
// count unchanged and returns ErrIllegalSwap.
func (s *Session) TrySwap(a, b core.Coord) (Turn, error) {
	if s.status != StatusPlaying {
		return Turn{}, ErrSessionOver
	}
	board := s.engine.Board()
	if !board.InBounds(a.Col, a.Row) || !board.InBounds(b.Col, b.Row) || !a.Adjacent(b) {
		return Turn{}, fmt.Errorf("%w: %s and %s are not adjacent cells", ErrIllegalSwap, a, b)
	}
	ta, tb := board.TokenAt(a.Col, a.Row), board.TokenAt(b.Col, b.Row)
	if !s.engine.IsLegalSwap(ta, tb) {
		return Turn{}, fmt.Errorf("%w: %s", ErrIllegalSwap, core.NewSwap(a, b))
	}

	turn := Turn{Swap: core.NewSwap(a, b)}
	s.engine.ResetComboMultiplier()
	s.engine.ApplySwap(ta, tb)
	turn.Swapped = board.Types()

	for {
		before := board.Types()
		shapes := s.engine.ResolveMatches()
		if len(shapes) == 0 {
			break
		}
		step := Step{
			Shapes:     shapes,
			Points:     core.TotalScore(shapes),
			Before:     before,
			AfterClear: board.Types(),
		}
		for _, sh := range shapes {
			step.Cleared = append(step.Cleared, sh.Positions()...)
		}
		step.Falls = s.engine.Compact()
		step.AfterFall = board.Types()
		for _, cf := range step.Falls {
			for _, f := range cf.Falls {
				step.Landed = append(step.Landed, f.Token.Pos())
				step.MaxFall = max(step.MaxFall, f.Distance)
			}
		}
		step.Fills = s.engine.Refill()
		step.AfterRefill = board.Types()
		for _, cf := range step.Fills {
			for _, t := range cf.Tokens {
				step.Created = append(step.Created, t.Pos())
			}
		}

		turn.Steps = append(turn.Steps, step)
		turn.Points += step.Points
		turn.Chain += len(shapes)
	}

	s.engine.RecomputeLegalSwaps()
	s.score += turn.Points
	s.movesMade++
	s.maxChain = max(s.maxChain, turn.Chain)
	if !s.opts.Endless {
		s.movesLeft--
		switch {
		case s.score >= s.level.TargetScore:
			s.status = StatusLevelComplete
		case s.movesLeft <= 0:
			s.status = StatusGameOver
		}
	}

	s.log.Debug("turn", "swap", turn.Swap, "points", turn.Points, "chain", turn.Chain, "score", s.score)

	if s.status == StatusPlaying && len(s.engine.LegalSwaps()) == 0 {
		if err := s.reshuffle(); err != nil {
			s.status = StatusGameOver
			turn.Status = s.status
			return turn, err
		}
		turn.Reshuffled = true
	}
	turn.Status = s.status
	return turn, nil
}

// Shuffle replaces the board with a fresh arrangement without spending a move.
func (s *Session) Shuffle() error {
	if s.status != StatusPlaying {
		return ErrSessionOver
	}
	return s.reshuffle()
}

func (s *Session) reshuffle() error {
	s.reshuffles++
	s.log.Info("no legal swaps left, reshuffling", "count", s.reshuffles)
	if _, err := s.engine.Initialize(); err != nil {
		return fmt.Errorf("level %s: %w", s.level.ID, err)
	}
	return nil
}

// Level returns the level being played.
func (s *Session) Level() levels.Level {
	return s.level
}

// Engine returns the underlying engine for read-only inspection.
func (s *Session) Engine() *core.Engine {
	return s.engine
}

// Board returns the current board.
func (s *Session) Board() *core.Board {
	return s.engine.Board()
}

// Score returns the points scored so far.
func (s *Session) Score() int {
	return s.score
}

// MovesLeft returns the remaining moves. Endless sessions never count down.
func (s *Session) MovesLeft() int {
	return s.movesLeft
}

// MovesMade returns the number of accepted swaps.
func (s *Session) MovesMade() int {
	return s.movesMade
}

// MaxChain returns the most shapes scored in a single turn.
func (s *Session) MaxChain() int {
	return s.maxChain
}

// Reshuffles returns how many times the board was reshuffled for lack of moves.
func (s *Session) Reshuffles() int {
	return s.reshuffles
}

// Status returns the session outcome state.
func (s *Session) Status() Status {
	return s.status
}

// Endless reports whether the session ignores target and move limit.
func (s *Session) Endless() bool {
	return s.opts.Endless
}

// Over reports whether no further swaps are accepted.
func (s *Session) Over() bool {
	return s.status != StatusPlaying
}

// LegalSwaps returns the current legal swaps in stable order.
func (s *Session) LegalSwaps() []core.Swap {
	return s.engine.LegalSwaps()
}

// Hint returns a legal swap to suggest to the player.
func (s *Session) Hint() (core.Swap, bool) {
	return s.engine.Hint()
}
