// Package levels provides level loading functionality for match3.
// This package depends on core but core does not depend on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels/formats"
)

//go:embed builtin/*.json
var builtinFS embed.FS

// ErrLevelNotFound is returned when no level has the requested ID.
var ErrLevelNotFound = errors.New("level not found")

// Level represents a complete level definition.
type Level struct {
	ID          string
	Name        string
	Width       int
	Height      int
	Mask        [][]bool // Mask[row][col], row 0 at the bottom
	TargetScore int
	Moves       int
	FilePath    string
}

// Title returns the display name of the level, falling back to its ID.
func (l *Level) Title() string {
	if l.Name != "" {
		return l.Name
	}
	return l.ID
}

// PlayableCells returns the number of masked cells.
func (l *Level) PlayableCells() int {
	n := 0
	for _, row := range l.Mask {
		for _, m := range row {
			if m {
				n++
			}
		}
	}
	return n
}

// NewEngine creates an engine over this level's tile mask.
func (l *Level) NewEngine(cfg core.EngineConfig) (*core.Engine, error) {
	return core.NewEngine(l.Mask, cfg)
}

// Loader handles loading levels from a file system.
type Loader struct {
	FS     fs.FS
	Root   string      // Shown in file paths and errors
	Logger *log.Logger // Receives skipped-file warnings; nil discards them
}

// NewLoader creates a level loader over fsys.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{FS: fsys}
}

// NewDirLoader creates a level loader for a directory on disk.
func NewDirLoader(root string) *Loader {
	return &Loader{FS: os.DirFS(root), Root: root}
}

// Builtin returns a loader for the embedded campaign levels.
func Builtin() *Loader {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(err)
	}
	return &Loader{FS: sub, Root: "builtin"}
}

func (l *Loader) logger() *log.Logger {
	if l.Logger == nil {
		return log.New(io.Discard)
	}
	return l.Logger
}

func (l *Loader) display(name string) string {
	if l.Root == "" {
		return name
	}
	return filepath.Join(l.Root, filepath.FromSlash(name))
}

// LoadAll recursively scans and loads all level files.
// Invalid files are skipped. Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.FS, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(path.Ext(name))
		if !slices.Contains(formats.FormatExtensions(), ext) {
			return nil
		}

		level, err := l.LoadFile(name)
		if err != nil {
			l.logger().Warn("skipping level file", "path", l.display(name), "err", err)
			return nil
		}

		levels = append(levels, level)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.display("."), err)
	}

	// Sort by ID for determinism
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// LoadFile loads a single level file. The level ID defaults to the file name
// without its extension.
func (l *Loader) LoadFile(name string) (Level, error) {
	data, err := fs.ReadFile(l.FS, name)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", l.display(name), err)
	}

	ext := strings.ToLower(path.Ext(name))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", l.display(name), err)
	}

	id := parsed.ID
	if id == "" {
		id = strings.TrimSuffix(path.Base(name), path.Ext(name))
	}

	return Level{
		ID:          id,
		Name:        parsed.Name,
		Width:       parsed.Width,
		Height:      parsed.Height,
		Mask:        parsed.Mask,
		TargetScore: parsed.TargetScore,
		Moves:       parsed.Moves,
		FilePath:    l.display(name),
	}, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("%w: %s", ErrLevelNotFound, id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".json":
		return formats.ParseJSON(data)
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
