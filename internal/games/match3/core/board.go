package core

import (
	"fmt"
	"strings"
)

// Default board dimensions.
const (
	DefaultWidth  = 9
	DefaultHeight = 9
)

// Board is a fixed-size grid of cell masks and the tokens occupying them.
// Cells are stored in row-major order: index = row*W + col, row 0 at the bottom.
// The mask is fixed at construction and never mutated.
type Board struct {
	W      int
	H      int
	mask   []bool
	tokens []*Token
}

// NewBoard creates an empty board from a tile mask indexed mask[row][col],
// row 0 being the bottom row.
func NewBoard(mask [][]bool) (*Board, error) {
	if len(mask) == 0 || len(mask[0]) == 0 {
		return nil, fmt.Errorf("%w: empty tile mask", ErrInvalidLevelData)
	}
	h := len(mask)
	w := len(mask[0])
	b := &Board{
		W:      w,
		H:      h,
		mask:   make([]bool, w*h),
		tokens: make([]*Token, w*h),
	}
	for row, line := range mask {
		if len(line) != w {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrInvalidLevelData, row, len(line), w)
		}
		for col, m := range line {
			b.mask[row*w+col] = m
		}
	}
	return b, nil
}

// NewFullBoard creates a w×h board with every cell masked.
func NewFullBoard(w, h int) *Board {
	mask := make([][]bool, h)
	for row := range mask {
		mask[row] = make([]bool, w)
		for col := range mask[row] {
			mask[row][col] = true
		}
	}
	b, err := NewBoard(mask)
	if err != nil {
		panic(err)
	}
	return b
}

// index converts a coordinate to a flat array index, panicking when the
// coordinate is outside the board.
func (b *Board) index(col, row int) int {
	if !b.InBounds(col, row) {
		panic(fmt.Sprintf("core: coordinate (%d,%d) out of range for %dx%d board", col, row, b.W, b.H))
	}
	return row*b.W + col
}

// InBounds returns true if the coordinate is within the board boundaries.
func (b *Board) InBounds(col, row int) bool {
	return col >= 0 && col < b.W && row >= 0 && row < b.H
}

// TokenAt returns the token at the given cell, or nil if the cell is empty.
// Panics on out-of-range coordinates.
func (b *Board) TokenAt(col, row int) *Token {
	return b.tokens[b.index(col, row)]
}

// MaskedAt reports whether the cell is part of the playable area.
// Panics on out-of-range coordinates.
func (b *Board) MaskedAt(col, row int) bool {
	return b.mask[b.index(col, row)]
}

// TypeAt returns the type at the given cell, or TypeUnknown when the cell
// is empty or out of range.
func (b *Board) TypeAt(col, row int) TokenType {
	if !b.InBounds(col, row) {
		return TypeUnknown
	}
	t := b.tokens[row*b.W+col]
	if t == nil {
		return TypeUnknown
	}
	return t.Type
}

// State returns the state of the given cell.
func (b *Board) State(col, row int) CellState {
	i := b.index(col, row)
	switch {
	case !b.mask[i]:
		return CellUnusable
	case b.tokens[i] == nil:
		return CellEmpty
	default:
		return CellOccupied
	}
}

// Place puts a token into the cell named by its coordinates.
func (b *Board) Place(t *Token) {
	i := b.index(t.Col, t.Row)
	if !b.mask[i] {
		panic(fmt.Sprintf("core: cannot place token at unmasked cell (%d,%d)", t.Col, t.Row))
	}
	b.tokens[i] = t
}

// Remove empties the cell and returns the token that occupied it, if any.
func (b *Board) Remove(col, row int) *Token {
	i := b.index(col, row)
	t := b.tokens[i]
	b.tokens[i] = nil
	return t
}

// Swap exchanges the contents of two cells, updating both tokens' coordinates.
func (b *Board) Swap(a, c Coord) {
	ia := b.index(a.Col, a.Row)
	ic := b.index(c.Col, c.Row)
	b.tokens[ia], b.tokens[ic] = b.tokens[ic], b.tokens[ia]
	if t := b.tokens[ia]; t != nil {
		t.Col, t.Row = a.Col, a.Row
	}
	if t := b.tokens[ic]; t != nil {
		t.Col, t.Row = c.Col, c.Row
	}
}

// move relocates the token at from into the empty cell to.
func (b *Board) move(from, to Coord) {
	fi := b.index(from.Col, from.Row)
	ti := b.index(to.Col, to.Row)
	t := b.tokens[fi]
	b.tokens[fi] = nil
	b.tokens[ti] = t
	t.Col, t.Row = to.Col, to.Row
}

// Clear removes every token from the board.
func (b *Board) Clear() {
	for i := range b.tokens {
		b.tokens[i] = nil
	}
}

// Tokens returns all tokens in raster order, bottom row first.
func (b *Board) Tokens() []*Token {
	result := make([]*Token, 0, len(b.tokens))
	for _, t := range b.tokens {
		if t != nil {
			result = append(result, t)
		}
	}
	return result
}

// MaskedCount returns the number of playable cells.
func (b *Board) MaskedCount() int {
	n := 0
	for _, m := range b.mask {
		if m {
			n++
		}
	}
	return n
}

// Types returns a copy of the board's token types indexed [row][col].
func (b *Board) Types() [][]TokenType {
	grid := make([][]TokenType, b.H)
	for row := range grid {
		grid[row] = make([]TokenType, b.W)
		for col := range grid[row] {
			grid[row][col] = b.TypeAt(col, row)
		}
	}
	return grid
}

// Fill places tokens of the given types, indexed [row][col]. TypeUnknown
// leaves the cell empty. Used to set up known positions.
func (b *Board) Fill(types [][]TokenType) {
	b.Clear()
	for row := 0; row < b.H && row < len(types); row++ {
		for col := 0; col < b.W && col < len(types[row]); col++ {
			if types[row][col].Live() && b.MaskedAt(col, row) {
				b.Place(&Token{Col: col, Row: row, Type: types[row][col]})
			}
		}
	}
}

// String renders the board as text, top row first. Unusable cells are
// blank and empty cells are dots.
func (b *Board) String() string {
	var sb strings.Builder
	for row := b.H - 1; row >= 0; row-- {
		for col := 0; col < b.W; col++ {
			switch b.State(col, row) {
			case CellUnusable:
				sb.WriteRune(' ')
			case CellEmpty:
				sb.WriteRune('.')
			default:
				sb.WriteRune(b.TokenAt(col, row).Type.Char())
			}
		}
		if row > 0 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

// ParseBoard builds a fully masked board from text rows, top row first,
// using token characters, '.' for empty and ' ' or '#' for unusable cells.
// Intended for tests and the interactive shell.
func ParseBoard(rows ...string) (*Board, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidLevelData)
	}
	h := len(rows)
	mask := make([][]bool, h)
	types := make([][]TokenType, h)
	for i, line := range rows {
		row := h - 1 - i
		runes := []rune(line)
		mask[row] = make([]bool, len(runes))
		types[row] = make([]TokenType, len(runes))
		for col, r := range runes {
			switch r {
			case ' ', '#':
			case '.':
				mask[row][col] = true
			default:
				tt, ok := ParseTokenType(string(r))
				if !ok {
					return nil, fmt.Errorf("%w: unknown token %q", ErrInvalidLevelData, r)
				}
				mask[row][col] = true
				types[row][col] = tt
			}
		}
	}
	b, err := NewBoard(mask)
	if err != nil {
		return nil, err
	}
	b.Fill(types)
	return b, nil
}
