package sim

import (
	"github.com/vovakirdan/tui-arkanoid/internal/config"
)

// Impact is a bullet striking a brick.
type Impact struct {
	Brick     *Brick
	Destroyed bool
}

// BulletService fires and moves laser bullets.
type BulletService struct {
	cfg    *config.BulletsConfig
	bricks *BricksService
}

// NewBulletService creates a bullet service over the bullets section of cfg.
func NewBulletService(cfg *config.ArkanoidConfig, bricks *BricksService) *BulletService {
	return &BulletService{cfg: &cfg.Bullets, bricks: bricks}
}

// TickCooldown counts the laser cooldown down to zero.
func (s *BulletService) TickCooldown(state *GameState, dt float64) {
	state.LaserCooldown = max(0, state.LaserCooldown-dt)
}

// TryFire spawns one bullet from each paddle barrel. It does nothing and
// returns false while the cooldown is running.
func (s *BulletService) TryFire(state *GameState) bool {
	if state.LaserCooldown > 0 {
		return false
	}
	p := &state.Paddle
	y := p.Y - s.cfg.Height
	leftX := p.X + s.cfg.BarrelOffset - s.cfg.Width/2
	rightX := p.X + p.Width - s.cfg.BarrelOffset - s.cfg.Width/2

	for _, x := range [2]float64{leftX, rightX} {
		state.Bullets = append(state.Bullets, Bullet{
			X:      x,
			Y:      y,
			Width:  s.cfg.Width,
			Height: s.cfg.Height,
			DY:     -s.cfg.Speed,
		})
	}
	state.LaserCooldown = s.cfg.Cooldown
	return true
}

// Update advances every bullet, drops those outside [minY, worldH] and
// resolves brick impacts. Each bullet hits at most the first overlapping
// brick in list order and is consumed by it.
func (s *BulletService) Update(state *GameState, dt, worldH float64) []Impact {
	var impacts []Impact
	kept := state.Bullets[:0]
	for _, b := range state.Bullets {
		b.Y += b.DY * dt
		if b.Y+b.Height < s.cfg.MinY || b.Y > worldH {
			continue
		}

		bounds := b.Bounds()
		idx := firstBrickHit(state.Bricks, func(br *Brick) bool {
			return bounds.Intersects(br.Bounds())
		})
		if idx >= 0 {
			brick := &state.Bricks[idx]
			impacts = append(impacts, Impact{Brick: brick, Destroyed: s.bricks.HandleBrickHit(brick)})
			continue
		}
		kept = append(kept, b)
	}
	clear(state.Bullets[len(kept):])
	state.Bullets = kept
	return impacts
}
