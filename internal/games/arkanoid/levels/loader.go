// Package levels loads arkanoid brick layouts from YAML files, either the
// set embedded in the binary or a directory on disk.
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/vovakirdan/tui-arkanoid/internal/games/arkanoid/levels/formats"
	"github.com/vovakirdan/tui-arkanoid/internal/games/arkanoid/sim"
)

// Layout limits. A full row of MaxColumns bricks fits the default playfield.
const (
	MaxColumns = 12
	MaxRows    = 12
)

//go:embed data/*.yaml
var embedded embed.FS

// Level represents a complete level definition.
type Level struct {
	ID       string
	Name     string
	Grid     [][]int
	Metadata map[string]string
	FilePath string
}

// Breakable returns the number of bricks that must be destroyed to clear the level.
func (l *Level) Breakable() int {
	n := 0
	for _, row := range l.Grid {
		for _, code := range row {
			if code != sim.CodeEmpty && code != sim.CodeIndestructible {
				n++
			}
		}
	}
	return n
}

// Validate reports why the level cannot be played, if it cannot.
func (l *Level) Validate() error {
	if err := sim.ValidateGrid(l.Grid); err != nil {
		return err
	}
	switch {
	case len(l.Grid) > MaxRows:
		return fmt.Errorf("levels: %s has %d rows, max %d: %w", l.ID, len(l.Grid), MaxRows, sim.ErrInvalidLevel)
	case len(l.Grid[0]) > MaxColumns:
		return fmt.Errorf("levels: %s has %d columns, max %d: %w", l.ID, len(l.Grid[0]), MaxColumns, sim.ErrInvalidLevel)
	case l.Breakable() == 0:
		return fmt.Errorf("levels: %s has no breakable bricks: %w", l.ID, sim.ErrInvalidLevel)
	}
	return nil
}

// Loader handles loading levels from a file system.
type Loader struct {
	fsys fs.FS
	root string
}

// NewLoader creates a loader over a directory on disk.
func NewLoader(dir string) *Loader {
	return &Loader{fsys: os.DirFS(dir), root: "."}
}

// Embedded creates a loader over the levels compiled into the binary.
func Embedded() *Loader {
	return &Loader{fsys: embedded, root: "data"}
}

// LoadAll scans and loads all level files.
// Returns levels sorted by ID for deterministic ordering. Any malformed
// file fails the whole load, since a missing level would silently change
// the campaign.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.fsys, l.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			return err
		}
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking %s: %w", l.root, err)
	}

	slices.SortFunc(levels, func(a, b Level) int {
		return strings.Compare(a.ID, b.ID)
	})
	for i := 1; i < len(levels); i++ {
		if levels[i].ID == levels[i-1].ID {
			return nil, fmt.Errorf("levels: duplicate id %q: %w", levels[i].ID, sim.ErrInvalidLevel)
		}
	}
	return levels, nil
}

// LoadFile loads and validates a single level file.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading %s: %w", p, err)
	}

	parsed, err := formats.ParseYAML(data)
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing %s: %w: %w", p, err, sim.ErrInvalidLevel)
	}

	level := Level{
		ID:       parsed.ID,
		Name:     parsed.Name,
		Grid:     parsed.Grid,
		Metadata: parsed.Metadata,
		FilePath: p,
	}
	if err := level.Validate(); err != nil {
		return Level{}, fmt.Errorf("levels: %s: %w", p, err)
	}
	return level, nil
}

func isSupportedExtension(ext string) bool {
	return slices.Contains(formats.FormatExtensions(), ext)
}

// Set is an ordered campaign of levels. It implements sim.LevelSource.
type Set struct {
	levels []Level
}

// Load returns the levels in dir, or the embedded campaign if dir is empty.
func Load(dir string) (*Set, error) {
	loader := Embedded()
	if dir != "" {
		loader = NewLoader(dir)
	}
	all, err := loader.LoadAll()
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("levels: no level files found: %w", sim.ErrInvalidLevel)
	}
	return &Set{levels: all}, nil
}

// Grid returns a copy of the layout of level index.
func (s *Set) Grid(index int) ([][]int, error) {
	if index < 0 || index >= len(s.levels) {
		return nil, fmt.Errorf("levels: index %d out of range [0, %d): %w", index, len(s.levels), sim.ErrInvalidLevel)
	}
	src := s.levels[index].Grid
	grid := make([][]int, len(src))
	for i, row := range src {
		grid[i] = slices.Clone(row)
	}
	return grid, nil
}

// Count returns the number of levels.
func (s *Set) Count() int {
	return len(s.levels)
}

// Levels returns the levels in play order.
func (s *Set) Levels() []Level {
	return s.levels
}

// Name returns the display name of level index.
func (s *Set) Name(index int) string {
	if index < 0 || index >= len(s.levels) {
		return ""
	}
	return s.levels[index].Name
}
