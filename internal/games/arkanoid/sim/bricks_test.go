package sim

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-arkanoid/internal/config"
)

func newBricksService() *BricksService {
	cfg := config.DefaultArkanoidConfig()
	return NewBricksService(&cfg)
}

func TestCreateBricksFromLayout(t *testing.T) {
	s := newBricksService()
	bricks, err := s.CreateBricksFromLayout([][]int{
		{1, 0, 9},
		{0, 3, 0},
	})
	if err != nil {
		t.Fatalf("CreateBricksFromLayout() failed: %v", err)
	}
	if len(bricks) != 3 {
		t.Fatalf("got %d bricks, expected 3", len(bricks))
	}

	// Pitch is 60+4 horizontally and 20+4 vertically from offset (16, 60)
	tests := []struct {
		x, y           float64
		health         int
		indestructible bool
	}{
		{16, 60, 1, false},
		{144, 60, 9, true},
		{80, 84, 3, false},
	}
	for i, tc := range tests {
		b := bricks[i]
		if b.X != tc.x || b.Y != tc.y || b.Health != tc.health || b.Indestructible != tc.indestructible {
			t.Errorf("brick %d = %+v, expected %+v", i, b, tc)
		}
	}
}

func TestCreateBricksRejectsInvalidLayout(t *testing.T) {
	s := newBricksService()
	tests := []struct {
		name string
		grid [][]int
	}{
		{"nil", nil},
		{"empty row", [][]int{{}}},
		{"ragged", [][]int{{1, 1}, {1}}},
		{"code above nine", [][]int{{1, 10}}},
		{"negative code", [][]int{{-1}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.CreateBricksFromLayout(tc.grid)
			if !errors.Is(err, ErrInvalidLevel) {
				t.Errorf("error = %v, expected ErrInvalidLevel", err)
			}
		})
	}
}

func TestCreateBricksFromResource(t *testing.T) {
	s := newBricksService()
	levels := StaticLevels{{{2, 2}}}

	bricks, err := s.CreateBricksFromResource(levels, 0)
	if err != nil || len(bricks) != 2 {
		t.Fatalf("CreateBricksFromResource(0) = %d bricks, %v", len(bricks), err)
	}
	if _, err := s.CreateBricksFromResource(levels, 1); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("out of range level error = %v, expected ErrInvalidLevel", err)
	}
}

func TestHandleBrickHitHealth(t *testing.T) {
	s := newBricksService()
	for initial := 1; initial <= CodeMaxHealth; initial++ {
		for hits := 0; hits <= 10; hits++ {
			b := Brick{Health: initial}
			destroyedCount := 0
			for range hits {
				if s.HandleBrickHit(&b) {
					destroyedCount++
				}
			}
			if want := max(0, initial-hits); b.Health != want {
				t.Errorf("health %d after %d hits = %d, expected %d", initial, hits, b.Health, want)
			}
			wantDestroyed := 0
			if hits >= initial {
				wantDestroyed = 1
			}
			if destroyedCount != wantDestroyed {
				t.Errorf("health %d after %d hits reported destruction %d times", initial, hits, destroyedCount)
			}
		}
	}

	b := Brick{Health: CodeIndestructible, Indestructible: true}
	for range 100 {
		if s.HandleBrickHit(&b) {
			t.Fatal("indestructible brick reported destruction")
		}
	}
	if b.Health != CodeIndestructible || b.Destroyed() {
		t.Errorf("indestructible brick changed: %+v", b)
	}
}

func TestAllBricksCleared(t *testing.T) {
	s := newBricksService()
	wall := Brick{Health: 9, Indestructible: true}

	tests := []struct {
		name      string
		bricks    []Brick
		remaining int
		cleared   bool
	}{
		{"empty list", nil, 0, true},
		{"one standing", []Brick{{Health: 1}}, 1, false},
		{"all destroyed", []Brick{{Health: 0}, {Health: 0}}, 0, true},
		{"only indestructible", []Brick{wall, wall, wall}, 0, true},
		{"destroyed plus indestructible", []Brick{{Health: 0}, wall}, 0, true},
		{"standing plus indestructible", []Brick{{Health: 2}, wall}, 1, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.RecalculateBricksRemaining(tc.bricks); got != tc.remaining {
				t.Errorf("RecalculateBricksRemaining() = %d, expected %d", got, tc.remaining)
			}
			if got := s.AllBricksCleared(tc.bricks); got != tc.cleared {
				t.Errorf("AllBricksCleared() = %v, expected %v", got, tc.cleared)
			}
		})
	}
}
