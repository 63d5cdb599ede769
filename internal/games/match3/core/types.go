// Package core implements the match-three rule engine: board state, token
// generation, run detection, shape merging, scoring, gravity and refill.
// This package is UI-agnostic and deterministic for a given seed.
package core

import (
	"fmt"
	"strings"
)

// TokenType identifies the kind of a token. TypeUnknown is a sentinel and is
// never assigned to a live token.
type TokenType uint8

const (
	TypeUnknown TokenType = iota
	TypeRuby
	TypeEmerald
	TypeSapphire
	TypeTopaz
	TypeAmethyst
	TypePearl
	typeCount // Sentinel value for iteration
)

// String returns the lowercase name of the token type.
func (t TokenType) String() string {
	switch t {
	case TypeRuby:
		return "ruby"
	case TypeEmerald:
		return "emerald"
	case TypeSapphire:
		return "sapphire"
	case TypeTopaz:
		return "topaz"
	case TypeAmethyst:
		return "amethyst"
	case TypePearl:
		return "pearl"
	default:
		return "unknown"
	}
}

// Char returns a single character representation for ASCII rendering.
func (t TokenType) Char() rune {
	switch t {
	case TypeRuby:
		return 'R'
	case TypeEmerald:
		return 'E'
	case TypeSapphire:
		return 'S'
	case TypeTopaz:
		return 'T'
	case TypeAmethyst:
		return 'A'
	case TypePearl:
		return 'P'
	default:
		return '?'
	}
}

// Live reports whether t may be assigned to a token on the board.
func (t TokenType) Live() bool {
	return t > TypeUnknown && t < typeCount
}

// ParseTokenType converts a name or single-letter code to a TokenType.
// Returns TypeUnknown and false if the string is not recognized.
func ParseTokenType(s string) (TokenType, bool) {
	switch strings.ToLower(s) {
	case "ruby", "r":
		return TypeRuby, true
	case "emerald", "e":
		return TypeEmerald, true
	case "sapphire", "s":
		return TypeSapphire, true
	case "topaz", "t":
		return TypeTopaz, true
	case "amethyst", "a":
		return TypeAmethyst, true
	case "pearl", "p":
		return TypePearl, true
	default:
		return TypeUnknown, false
	}
}

// AllTypes returns every live token type in enumeration order.
func AllTypes() []TokenType {
	return []TokenType{TypeRuby, TypeEmerald, TypeSapphire, TypeTopaz, TypeAmethyst, TypePearl}
}

// Coord is a board position. Row 0 is the bottom row.
type Coord struct {
	Col int
	Row int
}

// C is a convenience constructor for Coord.
func C(col, row int) Coord {
	return Coord{Col: col, Row: row}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Adjacent reports whether c and o are one orthogonal step apart.
func (c Coord) Adjacent(o Coord) bool {
	dc := c.Col - o.Col
	dr := c.Row - o.Row
	return (dc == 0 && (dr == 1 || dr == -1)) || (dr == 0 && (dc == 1 || dc == -1))
}

// Less orders coordinates bottom row first, then left to right.
func (c Coord) Less(o Coord) bool {
	if c.Row != o.Row {
		return c.Row < o.Row
	}
	return c.Col < o.Col
}

// Token is a typed piece occupying one board cell. Its position changes on
// swap and fall; its type never changes. Two tokens are the same token iff
// they occupy the same position.
type Token struct {
	Col  int
	Row  int
	Type TokenType
}

// Pos returns the token's current position.
func (t *Token) Pos() Coord {
	return Coord{Col: t.Col, Row: t.Row}
}

// String returns a string representation of the token.
func (t *Token) String() string {
	return fmt.Sprintf("%s@(%d,%d)", t.Type, t.Col, t.Row)
}

// CellState describes what occupies a board cell.
type CellState uint8

const (
	CellUnusable CellState = iota // Not part of the level mask
	CellEmpty
	CellOccupied
)

// String returns the string representation of a cell state.
func (s CellState) String() string {
	switch s {
	case CellUnusable:
		return "unusable"
	case CellEmpty:
		return "empty"
	case CellOccupied:
		return "occupied"
	default:
		return "unknown"
	}
}
