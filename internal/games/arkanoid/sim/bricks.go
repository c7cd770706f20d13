package sim

import (
	"fmt"

	"github.com/vovakirdan/tui-arkanoid/internal/config"
)

// Layout codes.
const (
	CodeEmpty          = 0
	CodeMaxHealth      = 8
	CodeIndestructible = 9
)

// LevelSource supplies brick layouts by zero-based index.
type LevelSource interface {
	// Grid returns the layout rows for level index.
	Grid(index int) ([][]int, error)
	// Count returns the number of levels.
	Count() int
}

// StaticLevels is a LevelSource over in-memory grids.
type StaticLevels [][][]int

// Grid returns the layout for level index.
func (l StaticLevels) Grid(index int) ([][]int, error) {
	if index < 0 || index >= len(l) {
		return nil, fmt.Errorf("sim: level %d out of range [0, %d): %w", index, len(l), ErrInvalidLevel)
	}
	return l[index], nil
}

// Count returns the number of levels.
func (l StaticLevels) Count() int {
	return len(l)
}

// ValidateGrid checks that a layout is rectangular, non-empty and uses only
// known codes.
func ValidateGrid(grid [][]int) error {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return fmt.Errorf("sim: empty layout: %w", ErrInvalidLevel)
	}
	cols := len(grid[0])
	for row, cells := range grid {
		if len(cells) != cols {
			return fmt.Errorf("sim: row %d has %d cells, expected %d: %w", row, len(cells), cols, ErrInvalidLevel)
		}
		for col, code := range cells {
			if code < CodeEmpty || code > CodeIndestructible {
				return fmt.Errorf("sim: code %d at row %d col %d: %w", code, row, col, ErrInvalidLevel)
			}
		}
	}
	return nil
}

// BricksService builds brick layouts and resolves hits.
type BricksService struct {
	cfg *config.BricksConfig
}

// NewBricksService creates a bricks service over the bricks section of cfg.
func NewBricksService(cfg *config.ArkanoidConfig) *BricksService {
	return &BricksService{cfg: &cfg.Bricks}
}

// CreateBricksFromLayout places one brick per non-zero code on the grid pitch.
func (s *BricksService) CreateBricksFromLayout(grid [][]int) ([]Brick, error) {
	if err := ValidateGrid(grid); err != nil {
		return nil, err
	}

	pitchX := s.cfg.Width + s.cfg.GapX
	pitchY := s.cfg.Height + s.cfg.GapY
	bricks := make([]Brick, 0, len(grid)*len(grid[0]))
	for row, cells := range grid {
		for col, code := range cells {
			if code == CodeEmpty {
				continue
			}
			bricks = append(bricks, Brick{
				X:              s.cfg.OffsetX + float64(col)*pitchX,
				Y:              s.cfg.OffsetY + float64(row)*pitchY,
				Width:          s.cfg.Width,
				Height:         s.cfg.Height,
				Health:         code,
				Indestructible: code == CodeIndestructible,
			})
		}
	}
	return bricks, nil
}

// CreateBricksFromResource loads level index from src and builds its bricks.
func (s *BricksService) CreateBricksFromResource(src LevelSource, index int) ([]Brick, error) {
	grid, err := src.Grid(index)
	if err != nil {
		return nil, fmt.Errorf("sim: load level %d: %w", index, err)
	}
	return s.CreateBricksFromLayout(grid)
}

// HandleBrickHit applies one hit. It returns true iff this hit destroyed
// the brick. Indestructible and already destroyed bricks are unchanged.
func (s *BricksService) HandleBrickHit(b *Brick) bool {
	if b.Indestructible || b.Health <= 0 {
		return false
	}
	b.Health--
	return b.Health <= 0
}

// RecalculateBricksRemaining counts breakable bricks still standing.
func (s *BricksService) RecalculateBricksRemaining(bricks []Brick) int {
	n := 0
	for i := range bricks {
		if !bricks[i].Indestructible && bricks[i].Health > 0 {
			n++
		}
	}
	return n
}

// AllBricksCleared reports whether every breakable brick is destroyed.
// Indestructible bricks never block clearance.
func (s *BricksService) AllBricksCleared(bricks []Brick) bool {
	return s.RecalculateBricksRemaining(bricks) == 0
}

// firstBrickHit returns the index of the first standing brick for which hit
// reports contact, or -1.
func firstBrickHit(bricks []Brick, hit func(*Brick) bool) int {
	for i := range bricks {
		if bricks[i].Destroyed() {
			continue
		}
		if hit(&bricks[i]) {
			return i
		}
	}
	return -1
}
