// Package sim plays many autoplayed sessions of a level in parallel and
// summarizes how the level scores.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"runtime"
	"slices"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// EndlessTurns caps the length of an endless-mode run.
const EndlessTurns = 100

// progressEvery is how many finished games trigger a progress log line.
const progressEvery = 100

// ErrNoGames is returned when a simulation is asked to play nothing.
var ErrNoGames = errors.New("sim: number of games must be positive")

// Options configures a simulation.
type Options struct {
	Level    levels.Level
	Games    int
	Workers  int // Defaults to GOMAXPROCS
	Seed     int64
	Strategy match3.Strategy
	Config   config.Match3Config
	Endless  bool
	Logger   *log.Logger
}

// Result is the outcome of one simulated game.
type Result struct {
	Seed       int64
	Score      int
	Moves      int
	MaxChain   int
	Reshuffles int
	Cleared    bool
}

// Report summarizes a simulation.
type Report struct {
	LevelID   string
	Strategy  match3.Strategy
	Results   []Result // Ordered by game index
	Mean      float64
	StdDev    float64
	Min       int
	Max       int
	ClearRate float64
	MaxCombo  int
}

// Run plays opts.Games sessions, at most opts.Workers at a time. Game i uses
// seed opts.Seed+i for both the board and the autoplayer, so a report is
// reproducible regardless of scheduling.
func Run(ctx context.Context, opts Options) (Report, error) {
	if opts.Games <= 0 {
		return Report{}, ErrNoGames
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Strategy == "" {
		opts.Strategy = match3.StrategyGreedy
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.With("level", opts.Level.ID, "strategy", opts.Strategy)

	results := make([]Result, opts.Games)
	done := make(chan struct{}, opts.Games)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	// Progress is reported from a single goroutine.
	progress := make(chan struct{})
	go func() {
		defer close(progress)
		finished := 0
		for range done {
			finished++
			if finished%progressEvery == 0 {
				logger.Info("simulating", "done", finished, "of", opts.Games)
			}
		}
	}()

	for i := 0; i < opts.Games; i++ {
		seed := opts.Seed + int64(i)
		g.Go(func() error {
			r, err := playOne(gctx, opts, seed)
			if err != nil {
				return err
			}
			results[i] = r
			done <- struct{}{}
			return nil
		})
	}
	err := g.Wait()
	close(done)
	<-progress
	if err != nil {
		return Report{}, fmt.Errorf("sim: %s: %w", opts.Level.ID, err)
	}

	report := summarize(results)
	report.LevelID = opts.Level.ID
	report.Strategy = opts.Strategy
	logger.Debug("simulation finished", "games", opts.Games, "mean", report.Mean, "clear_rate", report.ClearRate)
	return report, nil
}

// playOne runs a single autoplayed session.
func playOne(ctx context.Context, opts Options, seed int64) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	s, err := match3.NewSession(opts.Level, match3.Options{
		Seed:    seed,
		Config:  opts.Config,
		Endless: opts.Endless,
	})
	if err != nil {
		return Result{}, err
	}
	if err := s.Begin(); err != nil {
		return Result{}, err
	}

	maxTurns := 0
	if opts.Endless {
		maxTurns = EndlessTurns
	}
	player := match3.NewAutoplayer(opts.Strategy, seed)
	if err := player.Play(ctx, s, maxTurns); err != nil && !s.Over() {
		return Result{}, err
	}

	return Result{
		Seed:       seed,
		Score:      s.Score(),
		Moves:      s.MovesMade(),
		MaxChain:   s.MaxChain(),
		Reshuffles: s.Reshuffles(),
		Cleared:    s.Status() == match3.StatusLevelComplete,
	}, nil
}

func summarize(results []Result) Report {
	r := Report{Results: results}
	if len(results) == 0 {
		return r
	}

	scores := make([]float64, len(results))
	cleared := 0
	r.Min, r.Max = results[0].Score, results[0].Score
	for i, res := range results {
		scores[i] = float64(res.Score)
		r.Min = min(r.Min, res.Score)
		r.Max = max(r.Max, res.Score)
		r.MaxCombo = max(r.MaxCombo, res.MaxChain)
		if res.Cleared {
			cleared++
		}
	}
	r.Mean, r.StdDev = stat.MeanStdDev(scores, nil)
	if len(scores) < 2 || math.IsNaN(r.StdDev) {
		r.StdDev = 0
	}
	r.ClearRate = float64(cleared) / float64(len(results))
	return r
}

// Scores returns the score of every game, sorted ascending.
func (r Report) Scores() []int {
	scores := make([]int, len(r.Results))
	for i, res := range r.Results {
		scores[i] = res.Score
	}
	slices.Sort(scores)
	return scores
}

// Histogram prints the score distribution over bins buckets.
func (r Report) Histogram(w io.Writer, bins int) error {
	if len(r.Results) == 0 {
		return nil
	}
	data := make([]float64, len(r.Results))
	for i, res := range r.Results {
		data[i] = float64(res.Score)
	}
	hist := histogram.Hist(bins, data)
	return histogram.Fprintf(w, hist, histogram.Linear(40), func(v float64) string {
		return fmt.Sprintf("%.0f", v)
	})
}

// Save stores every result of the report as a run.
func (r Report) Save(store *storage.Store) error {
	for _, res := range r.Results {
		_, err := store.SaveRun(storage.Run{
			LevelID:    r.LevelID,
			Strategy:   string(r.Strategy),
			Seed:       res.Seed,
			Score:      res.Score,
			Moves:      res.Moves,
			MaxChain:   res.MaxChain,
			Reshuffles: res.Reshuffles,
			Cleared:    res.Cleared,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
