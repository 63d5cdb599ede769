package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

func TestDetectRuns(t *testing.T) {
	tests := []struct {
		name       string
		rows       []string
		horizontal []int // run lengths in detection order
		vertical   []int
	}{
		{
			name:       "single horizontal run",
			rows:       []string{"SEPSE", "ESPES", "RRRSP"},
			horizontal: []int{3},
		},
		{
			name:       "greedy run of five",
			rows:       []string{"RRRRR"},
			horizontal: []int{5},
		},
		{
			name:       "two runs in one row",
			rows:       []string{"RRRERRR"},
			horizontal: []int{3, 3},
		},
		{
			name:     "vertical run",
			rows:     []string{"R..", "R..", "R.."},
			vertical: []int{3},
		},
		{
			name: "empty cell breaks run",
			rows: []string{"RR.RR"},
		},
		{
			name: "unusable cell breaks run",
			rows: []string{"RR#RR"},
		},
		{
			name: "pair is not a run",
			rows: []string{"RRE", "EER"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := core.ParseBoard(tc.rows...)
			require.NoError(t, err)

			h, v := core.DetectRuns(b)
			assert.Equal(t, tc.horizontal, runLengths(h), "horizontal")
			assert.Equal(t, tc.vertical, runLengths(v), "vertical")
		})
	}
}

func TestDetectRunsOrdering(t *testing.T) {
	b, err := core.ParseBoard(
		"SSS.",
		"...E",
		"RRRE",
		"...E",
	)
	require.NoError(t, err)

	h, v := core.DetectRuns(b)
	require.Len(t, h, 2)
	require.Len(t, v, 1)

	// Bottom row first.
	assert.Equal(t, core.C(0, 1), h[0].First())
	assert.Equal(t, core.C(2, 1), h[0].Last())
	assert.Equal(t, core.C(0, 3), h[1].First())

	// Vertical tokens ordered by increasing row.
	assert.Equal(t, core.C(3, 0), v[0].First())
	assert.Equal(t, core.C(3, 2), v[0].Last())
	assert.Equal(t, core.TypeEmerald, v[0].Type())
	assert.Equal(t, core.Vertical, v[0].Orientation)
}

func TestHasRunThrough(t *testing.T) {
	b, err := core.ParseBoard(
		"E..",
		"E..",
		"ERR",
		"RRE",
	)
	require.NoError(t, err)

	assert.True(t, core.HasRunThrough(b, 0, 1))
	assert.True(t, core.HasRunThrough(b, 0, 3))
	assert.False(t, core.HasRunThrough(b, 1, 1))
	assert.False(t, core.HasRunThrough(b, 0, 0))
	assert.False(t, core.HasRunThrough(b, 1, 3), "empty cell")
}

func runLengths(runs []core.Run) []int {
	if len(runs) == 0 {
		return nil
	}
	lengths := make([]int, len(runs))
	for i, r := range runs {
		lengths[i] = r.Len()
	}
	return lengths
}
