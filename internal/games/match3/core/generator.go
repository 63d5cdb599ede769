package core

import (
	"encoding/binary"

	"lukechampine.com/frand"
)

// DefaultMaxTokenAttempts bounds the rejection loop in Generate.
const DefaultMaxTokenAttempts = 64

// NewRNG creates a deterministic ChaCha8 generator from an integer seed.
func NewRNG(seed int64) *frand.RNG {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], uint64(seed))
	// Spread the seed so nearby seeds do not share most of the key.
	binary.LittleEndian.PutUint64(key[8:16], uint64(seed)*0x9E3779B97F4A7C15)
	binary.LittleEndian.PutUint64(key[16:24], ^uint64(seed))
	return frand.NewCustom(key[:], 1024, 8)
}

// TokenGenerator picks token types under local no-run constraints.
type TokenGenerator struct {
	rng         *frand.RNG
	types       []TokenType
	maxAttempts int
}

// NewTokenGenerator creates a generator seeded for deterministic output.
func NewTokenGenerator(seed int64, maxAttempts int) *TokenGenerator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxTokenAttempts
	}
	return &TokenGenerator{
		rng:         NewRNG(seed),
		types:       AllTypes(),
		maxAttempts: maxAttempts,
	}
}

// Intn returns a random int in [0, n) from the generator's stream.
func (g *TokenGenerator) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return g.rng.Intn(n)
}

// Generate returns a type for the cell at (col,row) that does not complete a
// run with the two cells to its left or the two cells below it. After
// maxAttempts rejected draws the first acceptable type in enumeration order
// is returned.
func (g *TokenGenerator) Generate(b *Board, col, row int) TokenType {
	for range g.maxAttempts {
		t := g.types[g.rng.Intn(len(g.types))]
		if !completesRun(b, col, row, t) {
			return t
		}
	}
	for _, t := range g.types {
		if !completesRun(b, col, row, t) {
			return t
		}
	}
	// At most two types can be rejected, so this is unreachable with six types.
	return g.types[0]
}

// Refill returns a type uniformly chosen among live types other than exclude.
// TypeUnknown excludes nothing.
func (g *TokenGenerator) Refill(exclude TokenType) TokenType {
	candidates := make([]TokenType, 0, len(g.types))
	for _, t := range g.types {
		if t != exclude {
			candidates = append(candidates, t)
		}
	}
	return candidates[g.rng.Intn(len(candidates))]
}

// completesRun reports whether placing t at (col,row) would match the two
// cells to the left or the two cells below.
func completesRun(b *Board, col, row int, t TokenType) bool {
	if col >= 2 && b.TypeAt(col-1, row) == t && b.TypeAt(col-2, row) == t {
		return true
	}
	if row >= 2 && b.TypeAt(col, row-1) == t && b.TypeAt(col, row-2) == t {
		return true
	}
	return false
}
