package sim

import (
	"github.com/vovakirdan/tui-arkanoid/internal/config"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

// PaddleService moves the paddle and enforces its width range.
type PaddleService struct {
	cfg *config.PaddleConfig
}

// NewPaddleService creates a paddle service over the paddle section of cfg.
func NewPaddleService(cfg *config.ArkanoidConfig) *PaddleService {
	return &PaddleService{cfg: &cfg.Paddle}
}

// MoveLeft moves the paddle left by speed*dt.
func (s *PaddleService) MoveLeft(p *Paddle, dt, worldW float64) {
	p.X -= s.cfg.Speed * dt
	s.Clamp(p, worldW)
}

// MoveRight moves the paddle right by speed*dt.
func (s *PaddleService) MoveRight(p *Paddle, dt, worldW float64) {
	p.X += s.cfg.Speed * dt
	s.Clamp(p, worldW)
}

// Clamp keeps the paddle within [marginLeft, worldW-marginRight-width].
func (s *PaddleService) Clamp(p *Paddle, worldW float64) {
	p.X = core.Clamp(p.X, s.cfg.MarginLeft, worldW-s.cfg.MarginRight-p.Width)
}

// SetWidth changes the paddle width within [minWidth, maxWidth] and
// re-clamps its position.
func (s *PaddleService) SetWidth(p *Paddle, width, worldW float64) {
	p.Width = core.Clamp(width, s.cfg.MinWidth, s.cfg.MaxWidth)
	s.Clamp(p, worldW)
}

// BaseWidth returns the configured width with no effect applied.
func (s *PaddleService) BaseWidth() float64 {
	return core.Clamp(s.cfg.Width, s.cfg.MinWidth, s.cfg.MaxWidth)
}

// NewPaddle creates a paddle at base width centered at the bottom of the world.
func (s *PaddleService) NewPaddle(worldW, worldH float64) Paddle {
	p := Paddle{
		Width:  s.BaseWidth(),
		Height: s.cfg.Height,
		Y:      worldH - s.cfg.BottomOffset,
	}
	p.X = (worldW - p.Width) / 2
	s.Clamp(&p, worldW)
	return p
}
