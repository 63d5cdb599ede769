package core

import (
	"errors"
	"fmt"
	"io"

	"github.com/avast/retry-go/v4"
	"github.com/charmbracelet/log"
)

// DefaultMaxShuffleAttempts bounds how many boards Initialize generates.
const DefaultMaxShuffleAttempts = 200

var (
	errNoLegalSwap    = errors.New("board has no legal swap")
	errSpontaneousRun = errors.New("board has a run")
)

// EngineConfig contains the tunables of an Engine.
type EngineConfig struct {
	Seed               int64
	Scoring            Scoring
	MaxShuffleAttempts int
	MaxTokenAttempts   int
	Logger             *log.Logger // nil discards engine logs
}

// DefaultEngineConfig returns an EngineConfig with standard values.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Scoring:            DefaultScoring(),
		MaxShuffleAttempts: DefaultMaxShuffleAttempts,
		MaxTokenAttempts:   DefaultMaxTokenAttempts,
	}
}

// Engine owns one board and exposes the turn operations a host drives:
// validate and apply a swap, then resolve, compact and refill until a pass
// finds no shape. An Engine is not safe for concurrent use.
type Engine struct {
	board       *Board
	gen         *TokenGenerator
	scoring     Scoring
	combo       int
	swaps       SwapSet
	maxShuffles int
	log         *log.Logger
}

// NewEngine creates an engine over an empty board built from mask, indexed
// mask[row][col] with row 0 at the bottom.
func NewEngine(mask [][]bool, cfg EngineConfig) (*Engine, error) {
	b, err := NewBoard(mask)
	if err != nil {
		return nil, err
	}
	if b.MaskedCount() == 0 {
		return nil, fmt.Errorf("%w: no playable cells", ErrInvalidLevelData)
	}
	return NewEngineWithBoard(b, cfg), nil
}

// NewEngineWithBoard creates an engine over an existing board, keeping its
// tokens. Legal swaps are computed immediately.
func NewEngineWithBoard(b *Board, cfg EngineConfig) *Engine {
	if cfg.Scoring == (Scoring{}) {
		cfg.Scoring = DefaultScoring()
	}
	if cfg.MaxShuffleAttempts <= 0 {
		cfg.MaxShuffleAttempts = DefaultMaxShuffleAttempts
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	e := &Engine{
		board:       b,
		gen:         NewTokenGenerator(cfg.Seed, cfg.MaxTokenAttempts),
		scoring:     cfg.Scoring,
		combo:       1,
		maxShuffles: cfg.MaxShuffleAttempts,
		log:         logger,
	}
	e.RecomputeLegalSwaps()
	return e
}

// Board returns the engine's board. Callers must not mutate it directly.
func (e *Engine) Board() *Board {
	return e.board
}

// Scoring returns the scoring constants in use.
func (e *Engine) Scoring() Scoring {
	return e.scoring
}

// TokenAt returns the token at (col,row) or nil. Panics when out of range.
func (e *Engine) TokenAt(col, row int) *Token {
	return e.board.TokenAt(col, row)
}

// TileMaskedAt reports whether (col,row) is playable. Panics when out of range.
func (e *Engine) TileMaskedAt(col, row int) bool {
	return e.board.MaskedAt(col, row)
}

// Initialize fills the board with a fresh arrangement that has no run and
// at least one legal swap, returning the placed tokens in raster order.
// Returns ErrUnplayableLevel when no such board is found within the
// configured number of attempts; the board is left empty in that case.
func (e *Engine) Initialize() ([]*Token, error) {
	err := retry.Do(
		func() error {
			e.fill()
			if h, v := DetectRuns(e.board); len(h)+len(v) > 0 {
				return errSpontaneousRun
			}
			e.RecomputeLegalSwaps()
			if len(e.swaps) == 0 {
				return errNoLegalSwap
			}
			return nil
		},
		retry.Attempts(uint(e.maxShuffles)),
		retry.Delay(0),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			e.log.Debug("regenerating board", "attempt", n+1, "reason", err)
		}),
	)
	if err != nil {
		e.board.Clear()
		e.swaps = make(SwapSet)
		return nil, fmt.Errorf("%w: %v after %d attempts", ErrUnplayableLevel, err, e.maxShuffles)
	}
	return e.board.Tokens(), nil
}

// fill clears the board and places a generated token in every masked cell.
func (e *Engine) fill() {
	e.board.Clear()
	for row := 0; row < e.board.H; row++ {
		for col := 0; col < e.board.W; col++ {
			if !e.board.MaskedAt(col, row) {
				continue
			}
			e.board.Place(&Token{Col: col, Row: row, Type: e.gen.Generate(e.board, col, row)})
		}
	}
}

// RecomputeLegalSwaps refreshes the legal swap set from the current board.
func (e *Engine) RecomputeLegalSwaps() {
	e.swaps = DetectPossibleSwaps(e.board)
}

// LegalSwaps returns the current legal swaps in a stable order.
func (e *Engine) LegalSwaps() []Swap {
	return e.swaps.Sorted()
}

// IsLegalSwap reports whether exchanging a and b is in the legal swap set.
// The answer does not depend on argument order.
func (e *Engine) IsLegalSwap(a, b *Token) bool {
	if a == nil || b == nil {
		return false
	}
	return e.swaps.Contains(a.Pos(), b.Pos())
}

// ApplySwap exchanges two adjacent tokens. Legality is not checked.
func (e *Engine) ApplySwap(a, b *Token) {
	e.board.Swap(a.Pos(), b.Pos())
}

// ResolveMatches performs one detection pass: it finds and merges runs,
// scores the shapes under the running combo and removes their tokens.
// An empty result ends the cascade.
func (e *Engine) ResolveMatches() []*Shape {
	shapes := DetectShapes(e.board)
	if len(shapes) == 0 {
		return nil
	}
	points := e.scoring.ScoreShapes(shapes, &e.combo)
	for _, s := range shapes {
		for _, t := range s.Tokens {
			e.board.Remove(t.Col, t.Row)
		}
	}
	e.log.Debug("resolved shapes", "count", len(shapes), "points", points, "combo", e.combo)
	return shapes
}

// Compact lets tokens fall into emptied cells.
func (e *Engine) Compact() []ColumnFall {
	return Compact(e.board)
}

// Refill tops up every column with new tokens.
func (e *Engine) Refill() []ColumnFill {
	return TopUp(e.board, e.gen)
}

// ResetComboMultiplier sets the combo back to 1. Hosts call it at the start
// of each player turn.
func (e *Engine) ResetComboMultiplier() {
	e.combo = 1
}

// Combo returns the multiplier the next shape will score with.
func (e *Engine) Combo() int {
	return e.combo
}

// Intn exposes the engine's random stream for hosts that need choices
// reproducible under the same seed.
func (e *Engine) Intn(n int) int {
	return e.gen.Intn(n)
}

// Hint returns the first legal swap in stable order.
func (e *Engine) Hint() (Swap, bool) {
	swaps := e.LegalSwaps()
	if len(swaps) == 0 {
		return Swap{}, false
	}
	return swaps[0], true
}

// PreviewSwap returns the points the first resolve pass would award after
// the swap at a combo of 1. The board is unchanged on return.
func (e *Engine) PreviewSwap(sw Swap) int {
	return withSwapped(e.board, sw.A, sw.B, func() int {
		combo := 1
		return e.scoring.ScoreShapes(DetectShapes(e.board), &combo)
	})
}

// CascadeStep records one resolve, compact and refill pass.
type CascadeStep struct {
	Shapes []*Shape
	Points int
	Falls  []ColumnFall
	Fills  []ColumnFill
}

// Cascade runs resolve, compact and refill passes until a pass finds no
// shape. It does not reset the combo or recompute legal swaps.
func (e *Engine) Cascade() []CascadeStep {
	var steps []CascadeStep
	for {
		shapes := e.ResolveMatches()
		if len(shapes) == 0 {
			return steps
		}
		steps = append(steps, CascadeStep{
			Shapes: shapes,
			Points: TotalScore(shapes),
			Falls:  e.Compact(),
			Fills:  e.Refill(),
		})
	}
}
