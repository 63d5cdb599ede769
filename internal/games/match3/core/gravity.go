package core

// Fall records one token moving down its column.
type Fall struct {
	Token    *Token
	FromRow  int
	Distance int
}

// ColumnFall lists the tokens that moved in one column, lowest first.
type ColumnFall struct {
	Col   int
	Falls []Fall
}

// Compact moves every token down into the lowest empty masked cells of its
// column, skipping over unmasked cells. Columns without movement are omitted.
func Compact(b *Board) []ColumnFall {
	var result []ColumnFall
	for col := 0; col < b.W; col++ {
		var falls []Fall
		for row := 0; row < b.H; row++ {
			if !b.MaskedAt(col, row) || b.TokenAt(col, row) != nil {
				continue
			}
			for above := row + 1; above < b.H; above++ {
				t := b.TokenAt(col, above)
				if t == nil {
					continue
				}
				b.move(C(col, above), C(col, row))
				falls = append(falls, Fall{Token: t, FromRow: above, Distance: above - row})
				break
			}
		}
		if len(falls) > 0 {
			result = append(result, ColumnFall{Col: col, Falls: falls})
		}
	}
	return result
}
