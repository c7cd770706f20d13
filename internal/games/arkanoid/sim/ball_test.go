package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/tui-arkanoid/internal/config"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

func newBallService() *BallService {
	cfg := config.DefaultArkanoidConfig()
	return NewBallService(&cfg)
}

func TestNewBallRejectsNonPositiveRadius(t *testing.T) {
	for _, r := range []float64{0, -1, math.NaN()} {
		_, err := NewBall(10, 10, r)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("NewBall(radius=%v) error = %v, expected ErrInvalidArgument", r, err)
		}
	}

	b, err := NewBall(10, 20, 6)
	if err != nil {
		t.Fatalf("NewBall() failed: %v", err)
	}
	if b.Moving || b.Radius != 6 {
		t.Errorf("NewBall() = %+v, expected resting ball of radius 6", b)
	}
}

func TestStepNonMovingBallUnchanged(t *testing.T) {
	s := newBallService()
	for _, dt := range []float64{0, testDT, 1, 1000} {
		b := Ball{X: 100, Y: 200, DX: 50, DY: -50, Radius: 6}
		s.Step(&b, dt)
		if b.X != 100 || b.Y != 200 {
			t.Errorf("dt=%v: resting ball moved to (%v, %v)", dt, b.X, b.Y)
		}
	}
}

func TestUpdateDockedBallUnchanged(t *testing.T) {
	g, state, _ := newTestGame(t, quietConfig(), oneBrick)
	x, y := state.Ball.X, state.Ball.Y

	for _, dt := range []float64{0, testDT, 0.5, 2} {
		g.Update(state, Input{}, dt, testWorldW, testWorldH)
		if state.Ball.X != x || state.Ball.Y != y {
			t.Fatalf("dt=%v: docked ball moved from (%v, %v) to (%v, %v)", dt, x, y, state.Ball.X, state.Ball.Y)
		}
	}
}

func TestBounceWorldPreservesSpeed(t *testing.T) {
	s := newBallService()
	tests := []struct {
		name   string
		ball   Ball
		wantDX float64
		wantDY float64
	}{
		{"left wall", Ball{X: 2, Y: 300, DX: -120, DY: 90, Radius: 6, Moving: true}, 120, 90},
		{"right wall", Ball{X: 798, Y: 300, DX: 120, DY: 90, Radius: 6, Moving: true}, -120, 90},
		{"top wall", Ball{X: 400, Y: 3, DX: 120, DY: -90, Radius: 6, Moving: true}, 120, 90},
		{"top-left corner", Ball{X: 1, Y: 1, DX: -30, DY: -40, Radius: 6, Moving: true}, 30, 40},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := tc.ball
			before := b.Speed()
			if !s.BounceWorld(&b, testWorldW, testWorldH) {
				t.Error("BounceWorld() should report a hit")
			}
			if b.DX != tc.wantDX || b.DY != tc.wantDY {
				t.Errorf("velocity = (%v, %v), expected (%v, %v)", b.DX, b.DY, tc.wantDX, tc.wantDY)
			}
			if !approxEqual(b.Speed(), before) {
				t.Errorf("speed changed from %v to %v", before, b.Speed())
			}
		})
	}

	// The bottom is open
	b := Ball{X: 400, Y: 599, DX: 0, DY: 100, Radius: 6, Moving: true}
	if s.BounceWorld(&b, testWorldW, testWorldH) {
		t.Error("bottom edge should not bounce")
	}
}

func TestBounceOffMinimumOverlap(t *testing.T) {
	s := newBallService()
	rect := core.NewRect(100, 100, 60, 20)

	tests := []struct {
		name     string
		ball     Ball
		wantAxis Axis
		wantDX   float64
		wantDY   float64
	}{
		{
			name:     "from above",
			ball:     Ball{X: 130, Y: 96, DX: 40, DY: 200, Radius: 6, Moving: true},
			wantAxis: AxisVertical,
			wantDX:   40,
			wantDY:   -200,
		},
		{
			name:     "from below",
			ball:     Ball{X: 130, Y: 124, DX: 40, DY: -200, Radius: 6, Moving: true},
			wantAxis: AxisVertical,
			wantDX:   40,
			wantDY:   200,
		},
		{
			name:     "from the left",
			ball:     Ball{X: 96, Y: 110, DX: 200, DY: 40, Radius: 6, Moving: true},
			wantAxis: AxisHorizontal,
			wantDX:   -200,
			wantDY:   40,
		},
		{
			name:     "from the right",
			ball:     Ball{X: 164, Y: 110, DX: -200, DY: 40, Radius: 6, Moving: true},
			wantAxis: AxisHorizontal,
			wantDX:   200,
			wantDY:   40,
		},
		{
			// Equal depth on both axes at the top-left corner
			name:     "corner tie",
			ball:     Ball{X: 98, Y: 98, DX: 100, DY: 100, Radius: 6, Moving: true},
			wantAxis: AxisVertical,
			wantDX:   100,
			wantDY:   -100,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := tc.ball
			if !s.CheckCollision(&b, rect) {
				t.Fatal("test ball should overlap the rect")
			}
			before := b.Speed()
			axis := s.BounceOff(&b, rect)
			if axis != tc.wantAxis {
				t.Errorf("axis = %v, expected %v", axis, tc.wantAxis)
			}
			if b.DX != tc.wantDX || b.DY != tc.wantDY {
				t.Errorf("velocity = (%v, %v), expected (%v, %v)", b.DX, b.DY, tc.wantDX, tc.wantDY)
			}
			if !approxEqual(b.Speed(), before) {
				t.Errorf("speed changed from %v to %v", before, b.Speed())
			}
			if s.CheckCollision(&b, rect) {
				t.Error("ball should be pushed out of the rect")
			}
		})
	}
}

func TestDeflectFromPaddlePreservesSpeed(t *testing.T) {
	s := newBallService()
	p := Paddle{X: 340, Y: 560, Width: 120, Height: 14}

	tests := []struct {
		name  string
		x     float64
		check func(b Ball) bool
	}{
		{"center goes straight up", 400, func(b Ball) bool { return approxEqual(b.DX, 0) && b.DY < 0 }},
		{"right edge goes right", 460, func(b Ball) bool { return b.DX > 0 && b.DY < 0 }},
		{"left half goes left", 350, func(b Ball) bool { return b.DX < 0 && b.DY < 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := Ball{X: tc.x, Y: 553, DX: 180, DY: -240, Radius: 6, Moving: true}
			s.DeflectFromPaddle(&b, &p)
			if !tc.check(b) {
				t.Errorf("unexpected velocity (%v, %v)", b.DX, b.DY)
			}
			if !approxEqual(b.Speed(), 300) {
				t.Errorf("speed = %v, expected 300", b.Speed())
			}
		})
	}
}

func TestLaunchWithinAngleRange(t *testing.T) {
	s := newBallService()
	for seed := int64(1); seed <= 50; seed++ {
		rng := NewSimpleRNG(seed)
		b := Ball{Radius: 6}
		s.Launch(&b, &rng, 1.2)

		if !b.Moving {
			t.Fatal("Launch() should set Moving")
		}
		if !approxEqual(b.Speed(), 360) {
			t.Errorf("seed %d: speed = %v, expected 300*1.2", seed, b.Speed())
		}
		angle := math.Atan2(-b.DY, b.DX) * 180 / math.Pi
		if angle < 60-1e-9 || angle > 120+1e-9 {
			t.Errorf("seed %d: launch angle %v outside [60, 120]", seed, angle)
		}
	}
}

func TestResetOnPaddleAndFellBelow(t *testing.T) {
	s := newBallService()
	p := Paddle{X: 100, Y: 560, Width: 120, Height: 14}
	b := Ball{X: 5, Y: 5, DX: 10, DY: 10, Radius: 6, Moving: true, Stuck: true}

	s.ResetOnPaddle(&b, &p)
	if b.Moving || b.Stuck || b.DX != 0 || b.DY != 0 {
		t.Errorf("ResetOnPaddle() left ball %+v", b)
	}
	if b.X != 160 || b.Y != 560-6-1 {
		t.Errorf("docked at (%v, %v), expected (160, 553)", b.X, b.Y)
	}

	if s.FellBelow(&b, 600) {
		t.Error("docked ball should not count as fallen")
	}
	b.Y = 600.5
	if !s.FellBelow(&b, 600) {
		t.Error("ball below the bottom edge should count as fallen")
	}
}
