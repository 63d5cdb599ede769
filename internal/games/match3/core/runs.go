package core

// MinRunLength is the shortest sequence of identical tokens that counts as a run.
const MinRunLength = 3

// Orientation tells whether a run lies along a row or a column.
type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

// String returns the string representation of an orientation.
func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Run is a maximal sequence of at least MinRunLength same-type tokens in one
// row or column. Tokens are ordered by increasing column (horizontal) or
// increasing row (vertical).
type Run struct {
	Orientation Orientation
	Tokens      []*Token
}

// Len returns the number of tokens in the run.
func (r Run) Len() int {
	return len(r.Tokens)
}

// Type returns the token type shared by the run.
func (r Run) Type() TokenType {
	if len(r.Tokens) == 0 {
		return TypeUnknown
	}
	return r.Tokens[0].Type
}

// First returns the position of the first token.
func (r Run) First() Coord {
	return r.Tokens[0].Pos()
}

// Last returns the position of the last token.
func (r Run) Last() Coord {
	return r.Tokens[len(r.Tokens)-1].Pos()
}

// indexOf returns the index of the token at c, or -1 if c is not in the run.
func (r Run) indexOf(c Coord) int {
	first := r.First()
	var i int
	switch r.Orientation {
	case Horizontal:
		if c.Row != first.Row {
			return -1
		}
		i = c.Col - first.Col
	default:
		if c.Col != first.Col {
			return -1
		}
		i = c.Row - first.Row
	}
	if i < 0 || i >= len(r.Tokens) {
		return -1
	}
	return i
}

// DetectRuns scans the board for all maximal runs. Horizontal runs are
// returned in row-major order (bottom row first, left to right), vertical runs
// in column-major order (left column first, bottom to top).
func DetectRuns(b *Board) (horizontal, vertical []Run) {
	for row := 0; row < b.H; row++ {
		col := 0
		for col < b.W-2 {
			t := b.TypeAt(col, row)
			if t != TypeUnknown && b.TypeAt(col+1, row) == t && b.TypeAt(col+2, row) == t {
				run := Run{Orientation: Horizontal}
				for col < b.W && b.TypeAt(col, row) == t {
					run.Tokens = append(run.Tokens, b.TokenAt(col, row))
					col++
				}
				horizontal = append(horizontal, run)
				continue
			}
			col++
		}
	}

	for col := 0; col < b.W; col++ {
		row := 0
		for row < b.H-2 {
			t := b.TypeAt(col, row)
			if t != TypeUnknown && b.TypeAt(col, row+1) == t && b.TypeAt(col, row+2) == t {
				run := Run{Orientation: Vertical}
				for row < b.H && b.TypeAt(col, row) == t {
					run.Tokens = append(run.Tokens, b.TokenAt(col, row))
					row++
				}
				vertical = append(vertical, run)
				continue
			}
			row++
		}
	}
	return horizontal, vertical
}

// HasRunThrough reports whether the occupied cell at (col,row) is part of a
// horizontal or vertical run.
func HasRunThrough(b *Board, col, row int) bool {
	t := b.TypeAt(col, row)
	if t == TypeUnknown {
		return false
	}

	n := 1
	for i := col - 1; i >= 0 && b.TypeAt(i, row) == t; i-- {
		n++
	}
	for i := col + 1; i < b.W && b.TypeAt(i, row) == t; i++ {
		n++
	}
	if n >= MinRunLength {
		return true
	}

	n = 1
	for i := row - 1; i >= 0 && b.TypeAt(col, i) == t; i-- {
		n++
	}
	for i := row + 1; i < b.H && b.TypeAt(col, i) == t; i++ {
		n++
	}
	return n >= MinRunLength
}
