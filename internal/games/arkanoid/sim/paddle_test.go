package sim

import (
	"testing"

	"github.com/vovakirdan/tui-arkanoid/internal/config"
)

func TestPaddleMoveRightClampsToWorld(t *testing.T) {
	cfg := config.DefaultArkanoidConfig()
	s := NewPaddleService(&cfg)
	p := Paddle{X: 340, Y: 560, Width: 120, Height: 14}

	s.MoveRight(&p, 1.0, 800)
	if p.X != 680 {
		t.Errorf("X = %v, expected 680", p.X)
	}
}

func TestPaddleMoveHonorsMargins(t *testing.T) {
	cfg := config.DefaultArkanoidConfig()
	cfg.Paddle.MarginLeft = 10
	cfg.Paddle.MarginRight = 20
	s := NewPaddleService(&cfg)
	p := Paddle{X: 100, Width: 120}

	s.MoveLeft(&p, 1.0, 800)
	if p.X != 10 {
		t.Errorf("after MoveLeft X = %v, expected left margin 10", p.X)
	}

	s.MoveRight(&p, 10.0, 800)
	if p.X != 800-20-120 {
		t.Errorf("after MoveRight X = %v, expected %v", p.X, 800-20-120)
	}
}

func TestPaddleSetWidthClamps(t *testing.T) {
	cfg := config.DefaultArkanoidConfig()
	s := NewPaddleService(&cfg)

	tests := []struct {
		name  string
		x     float64
		width float64
		wantW float64
		wantX float64
	}{
		{"within range", 100, 150, 150, 100},
		{"below min", 100, 10, 60, 100},
		{"above max", 100, 1000, 240, 100},
		{"growth pushes against right wall", 700, 240, 240, 560},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := Paddle{X: tc.x, Width: 60}
			s.SetWidth(&p, tc.width, 800)
			if p.Width != tc.wantW || p.X != tc.wantX {
				t.Errorf("got width=%v x=%v, expected width=%v x=%v", p.Width, p.X, tc.wantW, tc.wantX)
			}
		})
	}
}

func TestNewPaddleCentered(t *testing.T) {
	cfg := config.DefaultArkanoidConfig()
	s := NewPaddleService(&cfg)
	p := s.NewPaddle(800, 600)

	if p.X != 340 || p.Y != 560 || p.Width != 120 {
		t.Errorf("NewPaddle() = %+v, expected X=340 Y=560 Width=120", p)
	}
}
