// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// Level represents a parsed and validated level ready for use.
// Mask is in engine orientation: Mask[row][col] with row 0 at the bottom.
type Level struct {
	ID          string
	Name        string
	Width       int
	Height      int
	Mask        [][]bool
	TargetScore int
	Moves       int
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".json", ".yaml", ".yml"}
}

// build validates raw level fields shared by every format. Tile rows are
// given top row first, as they appear in the file.
func build(id, name string, tiles [][]int, target, moves int) (Level, error) {
	if len(tiles) == 0 || len(tiles[0]) == 0 {
		return Level{}, fmt.Errorf("%w: missing tiles", core.ErrInvalidLevelData)
	}
	if target <= 0 {
		return Level{}, fmt.Errorf("%w: target score must be positive, got %d", core.ErrInvalidLevelData, target)
	}
	if moves <= 0 {
		return Level{}, fmt.Errorf("%w: moves must be positive, got %d", core.ErrInvalidLevelData, moves)
	}

	h, w := len(tiles), len(tiles[0])
	mask := make([][]bool, h)
	playable := 0
	for i, line := range tiles {
		if len(line) != w {
			return Level{}, fmt.Errorf("%w: tile row %d has %d cells, expected %d", core.ErrInvalidLevelData, i, len(line), w)
		}
		row := h - 1 - i
		mask[row] = make([]bool, w)
		for col, v := range line {
			switch v {
			case 0:
			case 1:
				mask[row][col] = true
				playable++
			default:
				return Level{}, fmt.Errorf("%w: tile (%d,%d) has value %d, expected 0 or 1", core.ErrInvalidLevelData, col, row, v)
			}
		}
	}
	if playable == 0 {
		return Level{}, fmt.Errorf("%w: no playable tiles", core.ErrInvalidLevelData)
	}

	return Level{
		ID:          id,
		Name:        name,
		Width:       w,
		Height:      h,
		Mask:        mask,
		TargetScore: target,
		Moves:       moves,
	}, nil
}
