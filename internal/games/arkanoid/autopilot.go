package arkanoid

import (
	"math"

	"github.com/vovakirdan/tui-arkanoid/internal/games/arkanoid/sim"
)

// Autopilot plays the game from the state alone. It tracks the lowest
// descending ball, otherwise the lowest capsule, and hits the ball off-center
// toward the nearest standing brick. It is deterministic.
type Autopilot struct {
	launchToggle bool
}

// Input returns the control state for the next tick of dt seconds.
func (a *Autopilot) Input(state *sim.GameState, dt, paddleSpeed float64) sim.Input {
	var in sim.Input
	p := &state.Paddle

	target, docked := a.target(state)
	deadZone := math.Max(paddleSpeed*dt, 1)
	switch center := p.CenterX(); {
	case target < center-deadZone:
		in.Left = true
	case target > center+deadZone:
		in.Right = true
	}

	// Launch is edge-triggered, so release it every other tick
	if docked {
		a.launchToggle = !a.launchToggle
		in.Launch = a.launchToggle
	} else {
		a.launchToggle = false
	}

	in.Fire = state.ActivePowerUps.Active(sim.PowerUpLaserPaddle)
	return in
}

// target returns the x the paddle center should move to and whether a
// ball is waiting on the paddle.
func (a *Autopilot) target(state *sim.GameState) (float64, bool) {
	var threat *sim.Ball
	docked := false
	for i := range state.BallCount() {
		b := state.BallAt(i)
		if !b.Moving {
			docked = true
			continue
		}
		if b.DY > 0 && (threat == nil || b.Y > threat.Y) {
			threat = b
		}
	}

	if threat != nil {
		// Offset the contact so the ball leaves toward the bricks
		aim := threat.X
		if bx, ok := nearestBrickX(state, threat.X); ok {
			offset := state.Paddle.Width / 4
			if bx < threat.X {
				aim += offset
			} else {
				aim -= offset
			}
		}
		return aim, docked
	}

	var capsule *sim.PowerUp
	for i := range state.PowerUps {
		p := &state.PowerUps[i]
		if !p.Collected && (capsule == nil || p.Y > capsule.Y) {
			capsule = p
		}
	}
	if capsule != nil {
		return capsule.X + capsule.Width/2, docked
	}

	if docked {
		return state.WorldW / 2, true
	}
	return state.Paddle.CenterX(), false
}

func nearestBrickX(state *sim.GameState, x float64) (float64, bool) {
	best, found := 0.0, false
	for i := range state.Bricks {
		b := &state.Bricks[i]
		if b.Destroyed() || b.Indestructible {
			continue
		}
		cx := b.X + b.Width/2
		if !found || math.Abs(cx-x) < math.Abs(best-x) {
			best, found = cx, true
		}
	}
	return best, found
}
