package core

// ColumnFill lists the tokens created in one column, top to bottom.
type ColumnFill struct {
	Col    int
	Tokens []*Token
}

// TopUp fills each column from the top row downward until it reaches an
// occupied cell. Consecutive new tokens in a column never share a type.
// Columns without new tokens are omitted.
func TopUp(b *Board, gen *TokenGenerator) []ColumnFill {
	var result []ColumnFill
	for col := 0; col < b.W; col++ {
		var created []*Token
		previous := TypeUnknown
		for row := b.H - 1; row >= 0 && b.TokenAt(col, row) == nil; row-- {
			if !b.MaskedAt(col, row) {
				continue
			}
			t := &Token{Col: col, Row: row, Type: gen.Refill(previous)}
			b.Place(t)
			created = append(created, t)
			previous = t.Type
		}
		if len(created) > 0 {
			result = append(result, ColumnFill{Col: col, Tokens: created})
		}
	}
	return result
}
