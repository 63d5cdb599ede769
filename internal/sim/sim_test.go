package sim_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/sim"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

func level(t *testing.T, id string) levels.Level {
	t.Helper()
	lvl, err := levels.Builtin().LoadByID(id)
	require.NoError(t, err)
	return lvl
}

func TestRunReport(t *testing.T) {
	report, err := sim.Run(context.Background(), sim.Options{
		Level:    level(t, "level_01"),
		Games:    12,
		Workers:  4,
		Seed:     100,
		Strategy: match3.StrategyGreedy,
	})
	require.NoError(t, err)

	require.Len(t, report.Results, 12)
	assert.Equal(t, "level_01", report.LevelID)
	assert.Equal(t, match3.StrategyGreedy, report.Strategy)

	for i, res := range report.Results {
		assert.Equal(t, int64(100+i), res.Seed, "results are ordered by game index")
		assert.Positive(t, res.Score)
		assert.LessOrEqual(t, res.Moves, 15)
		if !res.Cleared {
			assert.Equal(t, 15, res.Moves, "a failed run uses every move")
		}
	}

	scores := report.Scores()
	assert.Equal(t, scores[0], report.Min)
	assert.Equal(t, scores[len(scores)-1], report.Max)
	assert.GreaterOrEqual(t, report.Mean, float64(report.Min))
	assert.LessOrEqual(t, report.Mean, float64(report.Max))
	assert.GreaterOrEqual(t, report.StdDev, 0.0)
	assert.GreaterOrEqual(t, report.ClearRate, 0.0)
	assert.LessOrEqual(t, report.ClearRate, 1.0)
	assert.GreaterOrEqual(t, report.MaxCombo, 1)
}

func TestRunIsReproducible(t *testing.T) {
	opts := sim.Options{
		Level:    level(t, "level_02"),
		Games:    8,
		Seed:     7,
		Strategy: match3.StrategyRandom,
	}

	opts.Workers = 1
	serial, err := sim.Run(context.Background(), opts)
	require.NoError(t, err)

	opts.Workers = 8
	parallel, err := sim.Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, serial.Results, parallel.Results)
	assert.Equal(t, serial.Mean, parallel.Mean)
}

func TestRunEndless(t *testing.T) {
	report, err := sim.Run(context.Background(), sim.Options{
		Level:    level(t, "level_01"),
		Games:    3,
		Seed:     1,
		Strategy: match3.StrategyFirst,
		Endless:  true,
	})
	require.NoError(t, err)

	for _, res := range report.Results {
		assert.Equal(t, sim.EndlessTurns, res.Moves)
		assert.False(t, res.Cleared)
	}
	assert.Zero(t, report.ClearRate)
}

func TestRunSingleGameHasZeroStdDev(t *testing.T) {
	report, err := sim.Run(context.Background(), sim.Options{
		Level: level(t, "level_03"),
		Games: 1,
		Seed:  5,
	})
	require.NoError(t, err)
	assert.Zero(t, report.StdDev)
	assert.Equal(t, float64(report.Results[0].Score), report.Mean)
	assert.Equal(t, match3.StrategyGreedy, report.Strategy, "greedy is the default")
}

func TestRunErrors(t *testing.T) {
	_, err := sim.Run(context.Background(), sim.Options{Level: level(t, "level_01")})
	require.ErrorIs(t, err, sim.ErrNoGames)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = sim.Run(ctx, sim.Options{Level: level(t, "level_01"), Games: 4})
	require.ErrorIs(t, err, context.Canceled)
}

func TestReportHistogram(t *testing.T) {
	report, err := sim.Run(context.Background(), sim.Options{
		Level:    level(t, "level_01"),
		Games:    20,
		Seed:     3,
		Strategy: match3.StrategyRandom,
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.Histogram(&buf, 5))
	assert.NotEmpty(t, buf.String())

	var empty bytes.Buffer
	require.NoError(t, sim.Report{}.Histogram(&empty, 5))
	assert.Empty(t, empty.String())
}

func TestReportSave(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer store.Close()

	report, err := sim.Run(context.Background(), sim.Options{
		Level: level(t, "level_01"),
		Games: 6,
		Seed:  42,
	})
	require.NoError(t, err)
	require.NoError(t, report.Save(store))

	stats, err := store.LevelStats("level_01")
	require.NoError(t, err)
	assert.Equal(t, 6, stats.Runs)
	assert.Equal(t, report.Max, stats.BestScore)
	assert.InDelta(t, report.Mean, stats.AvgScore, 1e-9)
	assert.InDelta(t, report.ClearRate, stats.ClearRate(), 1e-9)

	runs, err := store.RunsForLevel("level_01", 10)
	require.NoError(t, err)
	require.Len(t, runs, 6)
	assert.Equal(t, "greedy", runs[0].Strategy)
}
