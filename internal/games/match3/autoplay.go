package match3

import (
	"context"
	"fmt"
	"strings"

	"lukechampine.com/frand"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// Strategy names an autoplay policy.
type Strategy string

const (
	StrategyFirst  Strategy = "first"  // First legal swap in stable order
	StrategyRandom Strategy = "random" // Uniformly random legal swap
	StrategyGreedy Strategy = "greedy" // Legal swap with the best first-pass score
)

// Strategies returns every known strategy.
func Strategies() []Strategy {
	return []Strategy{StrategyFirst, StrategyRandom, StrategyGreedy}
}

// ParseStrategy converts a name to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	for _, s := range Strategies() {
		if strings.EqualFold(name, string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown strategy %q (expected first, random or greedy)", name)
}

// Autoplayer picks swaps for a session according to a strategy.
type Autoplayer struct {
	strategy Strategy
	rng      *frand.RNG
}

// NewAutoplayer creates an autoplayer. The seed drives the random strategy.
func NewAutoplayer(strategy Strategy, seed int64) *Autoplayer {
	return &Autoplayer{
		strategy: strategy,
		rng:      core.NewRNG(seed),
	}
}

// Strategy returns the autoplayer's strategy.
func (a *Autoplayer) Strategy() Strategy {
	return a.strategy
}

// Choose returns the swap the strategy would make on the session's board.
func (a *Autoplayer) Choose(s *Session) (core.Swap, bool) {
	swaps := s.LegalSwaps()
	if len(swaps) == 0 {
		return core.Swap{}, false
	}

	switch a.strategy {
	case StrategyRandom:
		return swaps[a.rng.Intn(len(swaps))], true
	case StrategyGreedy:
		best, bestPoints := swaps[0], -1
		for _, sw := range swaps {
			if p := s.Engine().PreviewSwap(sw); p > bestPoints {
				best, bestPoints = sw, p
			}
		}
		return best, true
	default:
		return swaps[0], true
	}
}

// PlayTurn makes one chosen swap.
func (a *Autoplayer) PlayTurn(s *Session) (Turn, error) {
	sw, ok := a.Choose(s)
	if !ok {
		return Turn{}, fmt.Errorf("%w: no legal swap available", ErrIllegalSwap)
	}
	return s.TrySwap(sw.A, sw.B)
}

// Play makes swaps until the session ends, maxTurns swaps were made, or ctx
// is cancelled. maxTurns <= 0 means no limit, which never ends an endless
// session.
func (a *Autoplayer) Play(ctx context.Context, s *Session, maxTurns int) error {
	for turns := 0; !s.Over() && (maxTurns <= 0 || turns < maxTurns); turns++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := a.PlayTurn(s); err != nil {
			return err
		}
	}
	return nil
}
