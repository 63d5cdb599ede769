package match3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
)

// fixedRows has exactly one scoring swap on the bottom row that completes
// a vertical run of rubies in column 0.
var fixedRows = []string{
	"PATS",
	"RSEP",
	"RETA",
	"SRAT",
}

// fixedSession creates a session in play on the board given by rows,
// skipping the random shuffle of Begin.
func fixedSession(t *testing.T, rows []string, target, moves int, endless bool) *Session {
	t.Helper()
	b, err := core.ParseBoard(rows...)
	require.NoError(t, err)

	mask := make([][]bool, b.H)
	for row := range mask {
		mask[row] = make([]bool, b.W)
		for col := range mask[row] {
			mask[row][col] = b.MaskedAt(col, row)
		}
	}
	lvl := levels.Level{ID: "fixed", Width: b.W, Height: b.H, Mask: mask, TargetScore: target, Moves: moves}

	s, err := NewSession(lvl, Options{Seed: 1, Endless: endless})
	require.NoError(t, err)
	s.engine = core.NewEngineWithBoard(b, EngineConfig(s.opts.Config, 1, nil))
	s.movesLeft = moves
	s.status = StatusPlaying
	return s
}

func builtinLevel(t *testing.T, id string) levels.Level {
	t.Helper()
	lvl, err := levels.Builtin().LoadByID(id)
	require.NoError(t, err)
	return lvl
}

func TestSessionBegin(t *testing.T) {
	lvl := builtinLevel(t, "level_02")
	s, err := NewSession(lvl, Options{Seed: 4})
	require.NoError(t, err)
	require.NoError(t, s.Begin())

	assert.Equal(t, lvl.Moves, s.MovesLeft())
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, StatusPlaying, s.Status())
	assert.NotEmpty(t, s.LegalSwaps())
	assert.Len(t, s.Board().Tokens(), lvl.PlayableCells())
}

func TestTrySwapRejectsIllegal(t *testing.T) {
	s := fixedSession(t, fixedRows, 1000, 10, false)
	before := s.Board().String()

	tests := []struct {
		name string
		a, b core.Coord
	}{
		{"not adjacent", core.C(0, 0), core.C(2, 0)},
		{"diagonal", core.C(0, 0), core.C(1, 1)},
		{"out of range", core.C(3, 0), core.C(4, 0)},
		{"no run formed", core.C(2, 3), core.C(3, 3)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.TrySwap(tc.a, tc.b)
			require.ErrorIs(t, err, ErrIllegalSwap)
		})
	}

	assert.Equal(t, before, s.Board().String(), "illegal swaps leave the board unchanged")
	assert.Equal(t, 10, s.MovesLeft(), "illegal swaps do not spend a move")
	assert.Equal(t, 0, s.MovesMade())
}

func TestTrySwapPlaysTurn(t *testing.T) {
	s := fixedSession(t, fixedRows, 1000, 10, false)

	turn, err := s.TrySwap(core.C(1, 0), core.C(0, 0))
	require.NoError(t, err)

	assert.Equal(t, core.NewSwap(core.C(0, 0), core.C(1, 0)), turn.Swap)
	require.NotEmpty(t, turn.Steps)
	first := turn.Steps[0]
	require.Len(t, first.Shapes, 1)
	assert.Equal(t, core.ShapeVertical, first.Shapes[0].Kind)
	assert.Equal(t, 60, first.Points)
	assert.ElementsMatch(t, []core.Coord{core.C(0, 0), core.C(0, 1), core.C(0, 2)}, first.Cleared)
	assert.Equal(t, []core.Coord{core.C(0, 0)}, first.Landed, "the pearl above the run falls to the bottom")
	assert.Equal(t, 3, first.MaxFall)
	assert.Len(t, first.Created, 3)

	assert.Equal(t, core.TypeRuby, turn.Swapped[0][0])
	assert.Equal(t, core.TypeUnknown, first.AfterClear[0][0])
	assert.Equal(t, core.TypePearl, first.AfterFall[0][0])

	assert.Equal(t, turn.Points, s.Score())
	assert.GreaterOrEqual(t, turn.Chain, len(turn.Steps))
	assert.Equal(t, 9, s.MovesLeft())
	assert.Equal(t, 1, s.MovesMade())
	assert.Equal(t, StatusPlaying, turn.Status)
	assert.Empty(t, core.DetectShapes(s.Board()), "turn ends on a settled board")
	if !turn.Reshuffled {
		assert.Equal(t, turn.Steps[len(turn.Steps)-1].AfterRefill, s.Board().Types())
	}
}

func TestTrySwapCompletesLevel(t *testing.T) {
	s := fixedSession(t, fixedRows, 60, 5, false)

	turn, err := s.TrySwap(core.C(0, 0), core.C(1, 0))
	require.NoError(t, err)
	assert.Equal(t, StatusLevelComplete, turn.Status)
	assert.True(t, s.Over())

	_, err = s.TrySwap(core.C(0, 0), core.C(1, 0))
	require.ErrorIs(t, err, ErrSessionOver)
}

func TestTrySwapRunsOutOfMoves(t *testing.T) {
	s := fixedSession(t, fixedRows, 1_000_000, 1, false)

	turn, err := s.TrySwap(core.C(0, 0), core.C(1, 0))
	require.NoError(t, err)
	assert.Equal(t, StatusGameOver, turn.Status)
	assert.Equal(t, 0, s.MovesLeft())
}

func TestEndlessIgnoresLimits(t *testing.T) {
	s := fixedSession(t, fixedRows, 60, 1, true)

	turn, err := s.TrySwap(core.C(0, 0), core.C(1, 0))
	require.NoError(t, err)
	assert.Equal(t, StatusPlaying, turn.Status)
	assert.Equal(t, 1, s.MovesLeft(), "endless sessions do not count moves down")
	assert.Equal(t, 1, s.MovesMade())
	assert.True(t, s.Endless())
}

func TestShuffleKeepsMoves(t *testing.T) {
	s, err := NewSession(builtinLevel(t, "level_01"), Options{Seed: 9})
	require.NoError(t, err)
	require.NoError(t, s.Begin())
	before := s.Board().String()

	require.NoError(t, s.Shuffle())
	assert.NotEqual(t, before, s.Board().String())
	assert.Equal(t, 1, s.Reshuffles())
	assert.Equal(t, s.Level().Moves, s.MovesLeft())
	assert.NotEmpty(t, s.LegalSwaps())
}

func TestNewSessionRejectsEmptyLevel(t *testing.T) {
	_, err := NewSession(levels.Level{ID: "empty", Mask: [][]bool{{false}}}, Options{})
	require.ErrorIs(t, err, core.ErrInvalidLevelData)
}
