package core

import (
	"fmt"
	"slices"
)

// Swap is an unordered pair of adjacent positions. NewSwap normalizes the
// pair so that Swap values compare equal regardless of argument order.
type Swap struct {
	A Coord
	B Coord
}

// NewSwap returns the normalized swap between a and b.
func NewSwap(a, b Coord) Swap {
	if b.Less(a) {
		a, b = b, a
	}
	return Swap{A: a, B: b}
}

// String returns a string representation of the swap.
func (s Swap) String() string {
	return fmt.Sprintf("%s<->%s", s.A, s.B)
}

// SwapSet is a set of legal swaps.
type SwapSet map[Swap]struct{}

// Contains reports whether the swap between a and b is in the set.
func (s SwapSet) Contains(a, b Coord) bool {
	_, ok := s[NewSwap(a, b)]
	return ok
}

// Sorted returns the swaps ordered by their first and then second position.
func (s SwapSet) Sorted() []Swap {
	result := make([]Swap, 0, len(s))
	for sw := range s {
		result = append(result, sw)
	}
	slices.SortFunc(result, compareSwaps)
	return result
}

func compareSwaps(x, y Swap) int {
	switch {
	case x.A != y.A:
		if x.A.Less(y.A) {
			return -1
		}
		return 1
	case x.B != y.B:
		if x.B.Less(y.B) {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// withSwapped exchanges a and b, calls fn, and swaps them back on every
// exit path, including a panic inside fn.
func withSwapped[T any](b *Board, a, c Coord, fn func() T) T {
	b.Swap(a, c)
	defer b.Swap(a, c)
	return fn()
}

// DetectPossibleSwaps returns every swap of two adjacent occupied cells that
// would create a run through either cell. The board is unchanged on return.
func DetectPossibleSwaps(b *Board) SwapSet {
	set := make(SwapSet)
	for row := 0; row < b.H; row++ {
		for col := 0; col < b.W; col++ {
			if b.TokenAt(col, row) == nil {
				continue
			}
			here := C(col, row)
			for _, next := range []Coord{C(col+1, row), C(col, row+1)} {
				if !b.InBounds(next.Col, next.Row) || b.TokenAt(next.Col, next.Row) == nil {
					continue
				}
				if wouldMatch(b, here, next) {
					set[NewSwap(here, next)] = struct{}{}
				}
			}
		}
	}
	return set
}

// wouldMatch reports whether exchanging a and c creates a run through either cell.
func wouldMatch(b *Board, a, c Coord) bool {
	return withSwapped(b, a, c, func() bool {
		return HasRunThrough(b, a.Col, a.Row) || HasRunThrough(b, c.Col, c.Row)
	})
}
