package match3

import (
	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// AnimationPhase represents the current phase of animation.
type AnimationPhase int

const (
	PhaseNone AnimationPhase = iota
	PhaseSwap
	PhaseInvalid
	PhaseClear
	PhaseFall
	PhaseRefill
)

// String returns the string representation of a phase.
func (p AnimationPhase) String() string {
	switch p {
	case PhaseSwap:
		return "swap"
	case PhaseInvalid:
		return "invalid"
	case PhaseClear:
		return "clear"
	case PhaseFall:
		return "fall"
	case PhaseRefill:
		return "refill"
	default:
		return "none"
	}
}

// frame is one timed picture of the board shown while a turn plays out.
type frame struct {
	phase  AnimationPhase
	board  [][]core.TokenType
	marked map[core.Coord]bool
	ticks  int
}

func markSet(coords ...core.Coord) map[core.Coord]bool {
	m := make(map[core.Coord]bool, len(coords))
	for _, c := range coords {
		m[c] = true
	}
	return m
}

// turnFrames converts an accepted turn into the frames that replay it.
func turnFrames(turn Turn, anim config.AnimationConfig) []frame {
	frames := []frame{{
		phase:  PhaseSwap,
		board:  turn.Swapped,
		marked: markSet(turn.Swap.A, turn.Swap.B),
		ticks:  anim.SwapTicks,
	}}
	for _, step := range turn.Steps {
		frames = append(frames,
			frame{
				phase:  PhaseClear,
				board:  step.Before,
				marked: markSet(step.Cleared...),
				ticks:  anim.ClearTicks,
			},
			frame{
				phase:  PhaseFall,
				board:  step.AfterFall,
				marked: markSet(step.Landed...),
				ticks:  anim.FallTicksPerRow * max(step.MaxFall, 1),
			},
			frame{
				phase:  PhaseRefill,
				board:  step.AfterRefill,
				marked: markSet(step.Created...),
				ticks:  anim.RefillTicks,
			},
		)
	}
	return frames
}

// invalidFrames shows the two tokens exchanged and then bouncing back.
func invalidFrames(board [][]core.TokenType, a, b core.Coord, anim config.AnimationConfig) []frame {
	swapped := make([][]core.TokenType, len(board))
	for row := range board {
		swapped[row] = append([]core.TokenType(nil), board[row]...)
	}
	swapped[a.Row][a.Col], swapped[b.Row][b.Col] = swapped[b.Row][b.Col], swapped[a.Row][a.Col]

	half := max(anim.InvalidTicks/2, 1)
	return []frame{
		{phase: PhaseInvalid, board: swapped, marked: markSet(a, b), ticks: half},
		{phase: PhaseInvalid, board: board, marked: markSet(a, b), ticks: max(anim.InvalidTicks-half, 1)},
	}
}

// updateAnimation advances the frame queue by one tick.
// Returns true if animation is still in progress.
func (g *Game) updateAnimation() bool {
	if len(g.frames) == 0 {
		return false
	}
	g.frameTicks++
	if g.frameTicks >= g.frames[0].ticks {
		g.frames = g.frames[1:]
		g.frameTicks = 0
	}
	return len(g.frames) > 0
}

// currentFrame returns the frame being shown, if any.
func (g *Game) currentFrame() (frame, bool) {
	if len(g.frames) == 0 {
		return frame{}, false
	}
	return g.frames[0], true
}
