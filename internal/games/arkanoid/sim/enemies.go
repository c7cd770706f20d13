package sim

import (
	"math"
	"slices"

	"github.com/vovakirdan/tui-arkanoid/internal/config"
)

// HitSource names what an enemy collided with.
type HitSource int

const (
	HitPaddle HitSource = iota
	HitBall
	HitBullet
)

// String returns the name of the hit source.
func (h HitSource) String() string {
	switch h {
	case HitPaddle:
		return "paddle"
	case HitBall:
		return "ball"
	case HitBullet:
		return "bullet"
	default:
		return "unknown"
	}
}

// MarshalText encodes the source by name.
func (h HitSource) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// EnemyHit is an enemy destroyed by a collision this tick.
type EnemyHit struct {
	Enemy  Enemy
	Source HitSource
	Ball   int // Ball index for HitBall, 0 being the primary
}

// EnemyService spawns, moves and collides enemies.
type EnemyService struct {
	cfg   *config.EnemiesConfig
	balls *BallService
}

// NewEnemyService creates an enemy service over the enemies section of cfg.
func NewEnemyService(cfg *config.ArkanoidConfig, balls *BallService) *EnemyService {
	return &EnemyService{cfg: &cfg.Enemies, balls: balls}
}

// TrySpawn advances the spawn timer and, once the interval elapses and the
// cap allows, adds an enemy of random type at a random X. Initial
// horizontal direction alternates between spawns.
func (s *EnemyService) TrySpawn(state *GameState, dt, worldW float64) (Enemy, bool) {
	if !s.cfg.Enabled || s.cfg.MaxActive <= 0 {
		return Enemy{}, false
	}
	state.EnemySpawnTimer += dt
	if state.EnemySpawnTimer < s.cfg.SpawnInterval {
		return Enemy{}, false
	}
	state.EnemySpawnTimer = 0
	if len(state.Enemies) >= s.cfg.MaxActive {
		return Enemy{}, false
	}

	e := Enemy{
		X:      state.RNG.Range(0, max(0, worldW-s.cfg.Width)),
		Y:      s.cfg.SpawnY,
		Width:  s.cfg.Width,
		Height: s.cfg.Height,
		DX:     s.cfg.SpeedX,
		DY:     s.cfg.SpeedY,
		Type:   EnemyType(state.RNG.Intn(int(EnemyTypeCount))),
	}
	if state.NextEnemyLeft {
		e.DX = -e.DX
	}
	state.NextEnemyLeft = !state.NextEnemyLeft
	state.Enemies = append(state.Enemies, e)
	return e, true
}

// Update moves every enemy and resolves its collisions. Movement runs the
// zig-zag timer, then an X pass (walls clamp and reflect, the first brick hit
// reverts X and reverses DX) and a Y pass (the first brick hit reverts Y).
// Enemies below the world vanish. The survivors test the paddle, then each
// ball, then each bullet; the first contact destroys the enemy and is
// returned. Only moving balls collide. A bullet that hits is consumed. A
// ball that hits bounces off unless the enemy is a CUBE.
func (s *EnemyService) Update(state *GameState, dt, worldW, worldH float64) []EnemyHit {
	var hits []EnemyHit
	kept := state.Enemies[:0]
	for _, e := range state.Enemies {
		s.move(state, &e, dt, worldW)
		if e.Y > worldH {
			continue
		}
		if hit, ok := s.collide(state, &e); ok {
			hits = append(hits, hit)
			continue
		}
		kept = append(kept, e)
	}
	clear(state.Enemies[len(kept):])
	state.Enemies = kept
	return hits
}

func (s *EnemyService) move(state *GameState, e *Enemy, dt, worldW float64) {
	if s.cfg.ZigZagInterval > 0 {
		e.ZigZagTimer += dt
		if e.ZigZagTimer >= s.cfg.ZigZagInterval {
			e.ZigZagTimer -= s.cfg.ZigZagInterval
			e.DX = -e.DX
		}
	}

	overlapsBrick := func() bool {
		bounds := e.Bounds()
		return firstBrickHit(state.Bricks, func(b *Brick) bool {
			return bounds.Intersects(b.Bounds())
		}) >= 0
	}

	oldX := e.X
	e.X += e.DX * dt
	if e.X < 0 {
		e.X = 0
		e.DX = math.Abs(e.DX)
	} else if e.X+e.Width > worldW {
		e.X = worldW - e.Width
		e.DX = -math.Abs(e.DX)
	}
	if overlapsBrick() {
		e.X = oldX
		e.DX = -e.DX
	}

	oldY := e.Y
	e.Y += e.DY * dt
	if overlapsBrick() {
		e.Y = oldY
	}
}

func (s *EnemyService) collide(state *GameState, e *Enemy) (EnemyHit, bool) {
	bounds := e.Bounds()
	if bounds.Intersects(state.Paddle.Bounds()) {
		return EnemyHit{Enemy: *e, Source: HitPaddle}, true
	}
	for i := range state.BallCount() {
		b := state.BallAt(i)
		if !b.Moving || !s.balls.CheckCollision(b, bounds) {
			continue
		}
		if e.Type != EnemyCube {
			s.balls.BounceOff(b, bounds)
		}
		return EnemyHit{Enemy: *e, Source: HitBall, Ball: i}, true
	}
	for i := range state.Bullets {
		if state.Bullets[i].Bounds().Intersects(bounds) {
			state.Bullets = append(state.Bullets[:i], state.Bullets[i+1:]...)
			return EnemyHit{Enemy: *e, Source: HitBullet}, true
		}
	}
	return EnemyHit{}, false
}

// ApplyEffects applies the type effect of each hit in order and returns
// how many lives the hits cost. The caller handles life loss.
//
//   - CONE costs a life.
//   - CUBE swallows the ball that struck it. If that was the only ball it
//     is docked again instead, without costing a life.
//   - MOLECULE speeds up every moving ball.
//   - PYRAMID deducts score, never below zero.
func (s *EnemyService) ApplyEffects(state *GameState, hits []EnemyHit) (livesLost int) {
	var swallowed []int
	for _, h := range hits {
		switch h.Enemy.Type {
		case EnemyCone:
			livesLost++
		case EnemyCube:
			if h.Source == HitBall {
				swallowed = append(swallowed, h.Ball)
			}
		case EnemyMolecule:
			for i := range state.BallCount() {
				b := state.BallAt(i)
				if b.Moving {
					b.DX *= s.cfg.MoleculeSpeedUp
					b.DY *= s.cfg.MoleculeSpeedUp
				}
			}
		case EnemyPyramid:
			state.Score = max(0, state.Score-s.cfg.PyramidPenalty)
		}
	}
	s.swallow(state, swallowed)
	return livesLost
}

// swallow removes the given ball indices, highest first so lower indices
// stay valid.
func (s *EnemyService) swallow(state *GameState, indices []int) {
	slices.Sort(indices)
	indices = slices.Compact(indices)
	for i := len(indices) - 1; i >= 0; i-- {
		idx := indices[i]
		if idx >= state.BallCount() {
			continue
		}
		if state.BallCount() == 1 {
			s.balls.ResetOnPaddle(&state.Ball, &state.Paddle)
			continue
		}
		state.removeBall(idx)
	}
}
