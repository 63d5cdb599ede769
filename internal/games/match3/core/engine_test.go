package core_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// holedMask is a 9×9 mask with the four corners and a centre cell removed.
func holedMask() [][]bool {
	mask := fullMask(core.DefaultWidth, core.DefaultHeight)
	for _, c := range []core.Coord{core.C(0, 0), core.C(8, 0), core.C(0, 8), core.C(8, 8), core.C(4, 4)} {
		mask[c.Row][c.Col] = false
	}
	return mask
}

func TestInitializeInvariants(t *testing.T) {
	for seed := int64(0); seed < 40; seed++ {
		e, err := core.NewEngine(holedMask(), core.EngineConfig{Seed: seed})
		require.NoError(t, err)

		tokens, err := e.Initialize()
		require.NoError(t, err, "seed %d", seed)

		b := e.Board()
		assert.Len(t, tokens, b.MaskedCount(), "one token per masked cell")
		for _, tok := range tokens {
			assert.True(t, e.TileMaskedAt(tok.Col, tok.Row))
			assert.Same(t, tok, e.TokenAt(tok.Col, tok.Row))
		}
		h, v := core.DetectRuns(b)
		assert.Empty(t, h, "seed %d", seed)
		assert.Empty(t, v, "seed %d", seed)
		assert.NotEmpty(t, e.LegalSwaps(), "seed %d", seed)
		assert.Equal(t, core.CellUnusable, b.State(4, 4))
	}
}

func TestInitializeDeterministic(t *testing.T) {
	boardFor := func(seed int64) string {
		e, err := core.NewEngine(holedMask(), core.EngineConfig{Seed: seed})
		require.NoError(t, err)
		_, err = e.Initialize()
		require.NoError(t, err)
		return e.Board().String()
	}

	assert.Equal(t, boardFor(7), boardFor(7))
	assert.NotEqual(t, boardFor(7), boardFor(8))
}

func TestInitializeUnplayable(t *testing.T) {
	e, err := core.NewEngine([][]bool{{true, true}}, core.EngineConfig{MaxShuffleAttempts: 5})
	require.NoError(t, err)

	tokens, err := e.Initialize()
	require.ErrorIs(t, err, core.ErrUnplayableLevel)
	assert.Nil(t, tokens)
	assert.Empty(t, e.Board().Tokens(), "board is left empty")
	assert.Empty(t, e.LegalSwaps())
}

func TestNewEngineRejectsEmptyMask(t *testing.T) {
	_, err := core.NewEngine([][]bool{{false, false}}, core.DefaultEngineConfig())
	require.ErrorIs(t, err, core.ErrInvalidLevelData)
}

// columnRunBoard has a single legal swap that completes a vertical run of
// three rubies in column 0.
func columnRunBoard(t *testing.T) *core.Engine {
	t.Helper()
	b, err := core.ParseBoard(
		"RSE",
		"RET",
		"SRA",
	)
	require.NoError(t, err)
	return core.NewEngineWithBoard(b, core.EngineConfig{Seed: 1})
}

func TestTurnVerticalRunInFirstColumn(t *testing.T) {
	e := columnRunBoard(t)

	a, b := e.TokenAt(0, 0), e.TokenAt(1, 0)
	require.True(t, e.IsLegalSwap(a, b))
	require.True(t, e.IsLegalSwap(b, a))

	e.ResetComboMultiplier()
	e.ApplySwap(a, b)
	assert.Equal(t, core.C(1, 0), a.Pos())

	shapes := e.ResolveMatches()
	require.Len(t, shapes, 1)
	assert.Equal(t, core.ShapeVertical, shapes[0].Kind)
	assert.Equal(t, core.TypeRuby, shapes[0].Type)
	assert.Equal(t, 60, shapes[0].Score)
	assert.Equal(t, 2, e.Combo())
	for row := 0; row < 3; row++ {
		assert.Equal(t, core.CellEmpty, e.Board().State(0, row))
	}

	// Nothing sits above the cleared column, so nothing falls.
	assert.Empty(t, e.Compact())

	fills := e.Refill()
	require.Len(t, fills, 1)
	assert.Equal(t, 0, fills[0].Col)
	assert.Len(t, fills[0].Tokens, 3)
	assert.Len(t, e.Board().Tokens(), 9)
}

func TestIsLegalSwapRejectsNil(t *testing.T) {
	e := columnRunBoard(t)
	assert.False(t, e.IsLegalSwap(nil, e.TokenAt(0, 0)))
	assert.False(t, e.IsLegalSwap(e.TokenAt(0, 0), nil))
	assert.False(t, e.IsLegalSwap(e.TokenAt(2, 2), e.TokenAt(2, 1)))
}

func TestCascadeSettlesBoard(t *testing.T) {
	e := columnRunBoard(t)
	e.ApplySwap(e.TokenAt(0, 0), e.TokenAt(1, 0))

	steps := e.Cascade()
	require.NotEmpty(t, steps)
	assert.Equal(t, 60, steps[0].Points)

	b := e.Board()
	assert.Empty(t, core.DetectShapes(b), "cascade ends with no shape on the board")
	assert.Len(t, b.Tokens(), b.MaskedCount())
	assert.GreaterOrEqual(t, e.Combo(), len(steps)+1, "every pass bumps the combo at least once")
}

func TestPreviewSwapLeavesBoard(t *testing.T) {
	e := columnRunBoard(t)
	before := e.Board().String()

	hint, ok := e.Hint()
	require.True(t, ok)
	assert.Equal(t, core.NewSwap(core.C(0, 0), core.C(1, 0)), hint)
	assert.Equal(t, 60, e.PreviewSwap(hint))
	assert.Equal(t, before, e.Board().String())
	assert.Equal(t, 1, e.Combo(), "preview does not touch the combo")
}

func TestIsLegalSwapSymmetric(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		e, err := core.NewEngine(holedMask(), core.EngineConfig{Seed: seed})
		require.NoError(t, err)
		_, err = e.Initialize()
		require.NoError(t, err)

		b := e.Board()
		legal := e.LegalSwaps()
		found := 0
		for _, tok := range b.Tokens() {
			for _, d := range []core.Coord{core.C(1, 0), core.C(0, 1)} {
				col, row := tok.Col+d.Col, tok.Row+d.Row
				if !b.InBounds(col, row) {
					continue
				}
				other := b.TokenAt(col, row)
				if other == nil {
					continue
				}
				forward, backward := e.IsLegalSwap(tok, other), e.IsLegalSwap(other, tok)
				require.Equal(t, forward, backward, "seed %d: %s and %s", seed, tok, other)
				assert.Equal(t, forward, slices.Contains(legal, core.NewSwap(tok.Pos(), other.Pos())),
					"seed %d: %s and %s", seed, tok, other)
				if forward {
					found++
				}
			}
		}
		assert.Equal(t, len(legal), found, "seed %d", seed)
	}
}

func TestConservationOverManyTurns(t *testing.T) {
	e, err := core.NewEngine(holedMask(), core.EngineConfig{Seed: 99})
	require.NoError(t, err)
	_, err = e.Initialize()
	require.NoError(t, err)

	b := e.Board()
	for turn := 0; turn < 30; turn++ {
		swaps := e.LegalSwaps()
		if len(swaps) == 0 {
			break
		}
		sw := swaps[e.Intn(len(swaps))]
		e.ResetComboMultiplier()
		e.ApplySwap(b.TokenAt(sw.A.Col, sw.A.Row), b.TokenAt(sw.B.Col, sw.B.Row))
		steps := e.Cascade()
		require.NotEmpty(t, steps, "a legal swap always resolves at least one shape")
		e.RecomputeLegalSwaps()

		require.Len(t, b.Tokens(), b.MaskedCount(), "turn %d", turn)
		for _, tok := range b.Tokens() {
			require.Same(t, tok, b.TokenAt(tok.Col, tok.Row))
		}
	}
}
