package sim

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-arkanoid/internal/config"
)

// speedEpsilon is the speed below which a ball counts as resting.
const speedEpsilon = 1e-6

// PowerUpService drops capsules, applies their effects and expires timers.
type PowerUpService struct {
	cfg     *config.PowerUpsConfig
	paddles *PaddleService
	enabled []PowerUpType
}

// NewPowerUpService creates a power-up service. Unknown names in the
// enabled list are rejected.
func NewPowerUpService(cfg *config.ArkanoidConfig, paddles *PaddleService) (*PowerUpService, error) {
	enabled := make([]PowerUpType, 0, len(cfg.PowerUps.Enabled))
	seen := [PowerUpTypeCount]bool{}
	for _, name := range cfg.PowerUps.Enabled {
		t, ok := ParsePowerUpType(name)
		if !ok {
			return nil, fmt.Errorf("sim: unknown power-up %q: %w", name, ErrInvalidArgument)
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		enabled = append(enabled, t)
	}
	return &PowerUpService{cfg: &cfg.PowerUps, paddles: paddles, enabled: enabled}, nil
}

// Enabled returns the types that can drop, in configuration order.
func (s *PowerUpService) Enabled() []PowerUpType {
	return s.enabled
}

// SpawnPowerUpIfAny rolls the drop chance for a destroyed brick and, on
// success, drops a uniformly chosen enabled capsule centered on it.
func (s *PowerUpService) SpawnPowerUpIfAny(state *GameState, brick *Brick) bool {
	if len(s.enabled) == 0 {
		return false
	}
	if state.RNG.Float64() >= s.cfg.DropChance {
		return false
	}
	t := s.enabled[state.RNG.Intn(len(s.enabled))]
	b := brick.Bounds()
	state.PowerUps = append(state.PowerUps, PowerUp{
		X:      b.CenterX() - s.cfg.Width/2,
		Y:      b.CenterY() - s.cfg.Height/2,
		Width:  s.cfg.Width,
		Height: s.cfg.Height,
		DY:     s.cfg.FallSpeed,
		Type:   t,
	})
	return true
}

// Update moves capsules down, drops those below the world and returns the
// types caught by the paddle, in list order.
func (s *PowerUpService) Update(state *GameState, dt, worldH float64) []PowerUpType {
	var collected []PowerUpType
	paddle := state.Paddle.Bounds()
	kept := state.PowerUps[:0]
	for _, p := range state.PowerUps {
		p.Y += p.DY * dt
		if p.Y > worldH {
			continue
		}
		if p.Bounds().Intersects(paddle) {
			p.Collected = true
			collected = append(collected, p.Type)
			continue
		}
		kept = append(kept, p)
	}
	clear(state.PowerUps[len(kept):])
	state.PowerUps = kept
	return collected
}

// ApplyPowerUp applies the effect of t. It returns true when the effect
// counts as newly activated: always for instant effects, and for timed
// effects only if the type was not already running. Unknown types are ignored.
func (s *PowerUpService) ApplyPowerUp(state *GameState, t PowerUpType, worldW float64) bool {
	switch t {
	case PowerUpExpandPaddle:
		return s.applyWidth(state, PowerUpExpandPaddle, PowerUpLaserPaddle, s.cfg.ExpandFactor, worldW)
	case PowerUpLaserPaddle:
		return s.applyWidth(state, PowerUpLaserPaddle, PowerUpExpandPaddle, s.cfg.LaserWidthFactor, worldW)
	case PowerUpCatchBall:
		state.Ball.Stuck = true
		return true
	case PowerUpMultiBall:
		s.SpawnMultiBall(state)
		return true
	case PowerUpExtraLife:
		state.Lives++
		return true
	case PowerUpSlowBall:
		wasActive := state.ActivePowerUps.Active(PowerUpSlowBall)
		state.TimeScale = s.cfg.SlowFactor
		state.ActivePowerUps.Set(PowerUpSlowBall, s.cfg.Duration)
		return !wasActive
	default:
		return false
	}
}

// applyWidth handles the two mutually exclusive paddle-width effects.
func (s *PowerUpService) applyWidth(state *GameState, t, other PowerUpType, factor, worldW float64) bool {
	wasActive := state.ActivePowerUps.Active(t)
	state.ActivePowerUps.Cancel(other)
	state.ActivePowerUps.Set(t, s.cfg.Duration)
	s.paddles.SetWidth(&state.Paddle, s.paddles.BaseWidth()*factor, worldW)
	return !wasActive
}

// TickActiveEffects counts timers down by dt and reverts the ones that run
// out. Each expired type is returned exactly once, in type order.
func (s *PowerUpService) TickActiveEffects(state *GameState, dt, worldW float64) []PowerUpType {
	var expired []PowerUpType
	for t := range PowerUpTypeCount {
		if !state.ActivePowerUps.Active(t) {
			continue
		}
		left := state.ActivePowerUps.Remaining(t) - dt
		if left > 0 {
			state.ActivePowerUps.Set(t, left)
			continue
		}
		state.ActivePowerUps.Cancel(t)
		s.revert(state, t, worldW)
		expired = append(expired, t)
	}
	return expired
}

// ClearEffects cancels every running effect and reverts it, without
// reporting expiry.
func (s *PowerUpService) ClearEffects(state *GameState, worldW float64) {
	for t := range PowerUpTypeCount {
		if state.ActivePowerUps.Active(t) {
			s.revert(state, t, worldW)
		}
	}
	state.ActivePowerUps.Reset()
}

func (s *PowerUpService) revert(state *GameState, t PowerUpType, worldW float64) {
	switch t {
	case PowerUpExpandPaddle, PowerUpLaserPaddle:
		s.paddles.SetWidth(&state.Paddle, s.paddles.BaseWidth(), worldW)
	case PowerUpSlowBall:
		state.TimeScale = 1.0
	case PowerUpCatchBall, PowerUpMultiBall, PowerUpExtraLife:
		// Instant effects have no timer.
	}
}

// SpawnMultiBall adds two balls at the primary ball's position, heading
// base±spread degrees. They carry the primary's speed, or the default speed
// with a straight-up heading if the primary is at rest.
func (s *PowerUpService) SpawnMultiBall(state *GameState) {
	src := state.Ball
	speed := src.Speed()
	heading := math.Atan2(src.DY, src.DX)
	if speed < speedEpsilon {
		speed = s.cfg.DefaultSpeed
		heading = -math.Pi / 2
	}
	spread := s.cfg.MultiBallSpread * math.Pi / 180

	for _, a := range [2]float64{heading - spread, heading + spread} {
		state.ExtraBalls = append(state.ExtraBalls, Ball{
			X:      src.X,
			Y:      src.Y,
			DX:     math.Cos(a) * speed,
			DY:     math.Sin(a) * speed,
			Radius: src.Radius,
			Moving: true,
		})
	}
}
