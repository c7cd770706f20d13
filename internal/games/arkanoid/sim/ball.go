package sim

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-arkanoid/internal/config"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

// Axis names the velocity component a bounce reflected.
type Axis int

const (
	AxisHorizontal Axis = iota // DX was reflected
	AxisVertical               // DY was reflected
)

// NewBall creates a resting ball centered at (x, y).
func NewBall(x, y, radius float64) (Ball, error) {
	if radius <= 0 || math.IsNaN(radius) {
		return Ball{}, fmt.Errorf("sim: ball radius must be positive, got %v: %w", radius, ErrInvalidArgument)
	}
	return Ball{X: x, Y: y, Radius: radius}, nil
}

// BallService implements ball physics.
type BallService struct {
	cfg *config.BallConfig
}

// NewBallService creates a ball service over the ball section of cfg.
func NewBallService(cfg *config.ArkanoidConfig) *BallService {
	return &BallService{cfg: &cfg.Ball}
}

// Step integrates the position of a moving ball.
func (s *BallService) Step(b *Ball, dt float64) {
	if !b.Moving || dt <= 0 {
		return
	}
	b.X += b.DX * dt
	b.Y += b.DY * dt
}

// BounceWorld reflects the ball off the left, right and top edges.
// The bottom is open. Returns true if any edge was touched.
func (s *BallService) BounceWorld(b *Ball, worldW, worldH float64) bool {
	hit := false
	if b.X-b.Radius < 0 {
		b.X = b.Radius
		b.DX = math.Abs(b.DX)
		hit = true
	} else if b.X+b.Radius > worldW {
		b.X = worldW - b.Radius
		b.DX = -math.Abs(b.DX)
		hit = true
	}
	if b.Y-b.Radius < 0 {
		b.Y = b.Radius
		b.DY = math.Abs(b.DY)
		hit = true
	}
	return hit
}

// CheckCollision reports whether the ball's bounding box overlaps r.
func (s *BallService) CheckCollision(b *Ball, r core.Rect) bool {
	return b.Bounds().Intersects(r)
}

// BounceOff reflects the ball off r along the axis of least penetration
// and moves it out of r. Equal depths resolve to the vertical axis.
func (s *BallService) BounceOff(b *Ball, r core.Rect) Axis {
	left, right, top, bottom := b.Bounds().Penetration(r)
	horiz := math.Min(left, right)
	vert := math.Min(top, bottom)

	if horiz < vert {
		if left <= right {
			b.DX = -math.Abs(b.DX)
			b.X -= left
		} else {
			b.DX = math.Abs(b.DX)
			b.X += right
		}
		return AxisHorizontal
	}

	if top <= bottom {
		b.DY = -math.Abs(b.DY)
		b.Y -= top
	} else {
		b.DY = math.Abs(b.DY)
		b.Y += bottom
	}
	return AxisVertical
}

// DeflectFromPaddle steers a ball leaving the paddle's top face by where it
// struck: the center sends it straight up, the edges up to the configured
// deflection. Speed is preserved.
func (s *BallService) DeflectFromPaddle(b *Ball, p *Paddle) {
	if s.cfg.PaddleDeflect <= 0 || p.Width <= 0 {
		return
	}
	speed := b.Speed()
	rel := core.Clamp((b.X-p.CenterX())/(p.Width/2), -1, 1)
	angle := rel * s.cfg.PaddleDeflect * math.Pi / 180
	b.DX = speed * math.Sin(angle)
	b.DY = -speed * math.Cos(angle)
}

// ResetOnPaddle docks the ball centered above the paddle and stops it.
func (s *BallService) ResetOnPaddle(b *Ball, p *Paddle) {
	b.DX, b.DY = 0, 0
	b.Moving = false
	b.Stuck = false
	b.StuckOffset = 0
	s.FollowPaddle(b, p)
}

// FollowPaddle keeps a resting ball on the paddle. A caught ball keeps its
// offset from the paddle center, clamped so it stays over the paddle.
func (s *BallService) FollowPaddle(b *Ball, p *Paddle) {
	if b.Moving {
		return
	}
	offset := 0.0
	if b.Stuck {
		half := p.Width / 2
		b.StuckOffset = core.Clamp(b.StuckOffset, -half, half)
		offset = b.StuckOffset
	}
	b.X = p.CenterX() + offset
	b.Y = p.Y - b.Radius - s.cfg.DockOffset
}

// Catch holds a moving ball on the paddle where it touched.
func (s *BallService) Catch(b *Ball, p *Paddle) {
	b.Moving = false
	b.Stuck = true
	b.DX, b.DY = 0, 0
	b.StuckOffset = b.X - p.CenterX()
	s.FollowPaddle(b, p)
}

// Launch sends a resting ball upward at a random angle within the
// configured range, measured in degrees from the +X axis.
func (s *BallService) Launch(b *Ball, rng *SimpleRNG, speedMultiplier float64) {
	lo, hi := s.cfg.MinLaunchAngle, s.cfg.MaxLaunchAngle
	angle := lo
	if hi > lo {
		angle = rng.Range(lo, hi)
	}
	rad := angle * math.Pi / 180
	speed := s.cfg.Speed * speedMultiplier

	b.DX = math.Cos(rad) * speed
	b.DY = -math.Sin(rad) * speed
	b.Moving = true
	b.Stuck = false
	b.StuckOffset = 0
}

// FellBelow reports whether the ball center passed the bottom edge.
func (s *BallService) FellBelow(b *Ball, worldH float64) bool {
	return b.Y > worldH
}
