package formats

import (
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// JSONLevel represents the JSON structure for a level file.
type JSONLevel struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name,omitempty"`
	Tiles       [][]int `json:"tiles"`
	TargetScore int     `json:"targetScore"`
	Moves       int     `json:"moves"`
}

// ParseJSON parses a JSON level file.
func ParseJSON(data []byte) (Level, error) {
	var jl JSONLevel
	if err := json.Unmarshal(data, &jl); err != nil {
		return Level{}, fmt.Errorf("%w: json unmarshal: %v", core.ErrInvalidLevelData, err)
	}
	return build(jl.ID, jl.Name, jl.Tiles, jl.TargetScore, jl.Moves)
}
