package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

func TestGenerateNeverCompletesRun(t *testing.T) {
	for seed := int64(0); seed < 100; seed++ {
		b := core.NewFullBoard(core.DefaultWidth, core.DefaultHeight)
		gen := core.NewTokenGenerator(seed, 1)
		for row := 0; row < b.H; row++ {
			for col := 0; col < b.W; col++ {
				b.Place(&core.Token{Col: col, Row: row, Type: gen.Generate(b, col, row)})
			}
		}
		h, v := core.DetectRuns(b)
		if len(h)+len(v) > 0 {
			t.Fatalf("seed %d produced a run:\n%s", seed, b)
		}
	}
}

func TestRefillExcludesPrevious(t *testing.T) {
	gen := core.NewTokenGenerator(3, 0)
	for _, exclude := range core.AllTypes() {
		for range 200 {
			got := gen.Refill(exclude)
			if got == exclude {
				t.Fatalf("Refill(%v) returned the excluded type", exclude)
			}
			if !got.Live() {
				t.Fatalf("Refill returned non-live type %v", got)
			}
		}
	}
}

func TestRefillUnknownExcludesNothing(t *testing.T) {
	gen := core.NewTokenGenerator(5, 0)
	seen := make(map[core.TokenType]bool)
	for range 1000 {
		seen[gen.Refill(core.TypeUnknown)] = true
	}
	assert.Len(t, seen, len(core.AllTypes()))
}

func TestGeneratorDeterministic(t *testing.T) {
	a := core.NewTokenGenerator(42, 0)
	b := core.NewTokenGenerator(42, 0)
	c := core.NewTokenGenerator(43, 0)

	var sa, sb, sc []core.TokenType
	for range 64 {
		sa = append(sa, a.Refill(core.TypeUnknown))
		sb = append(sb, b.Refill(core.TypeUnknown))
		sc = append(sc, c.Refill(core.TypeUnknown))
	}
	assert.Equal(t, sa, sb)
	assert.NotEqual(t, sa, sc)
}
