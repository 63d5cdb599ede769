package formats

import (
	"fmt"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Tiles       [][]int `yaml:"tiles"`
	TargetScore int     `yaml:"target_score"`
	Moves       int     `yaml:"moves"`
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("%w: yaml unmarshal: %v", core.ErrInvalidLevelData, err)
	}
	return build(yl.ID, yl.Name, yl.Tiles, yl.TargetScore, yl.Moves)
}
