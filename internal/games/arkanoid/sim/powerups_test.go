package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/tui-arkanoid/internal/config"
)

func newPowerUpService(t *testing.T, cfg *config.ArkanoidConfig) *PowerUpService {
	t.Helper()
	s, err := NewPowerUpService(cfg, NewPaddleService(cfg))
	if err != nil {
		t.Fatalf("NewPowerUpService() failed: %v", err)
	}
	return s
}

func powerUpState() *GameState {
	return &GameState{
		Ball:      Ball{X: 400, Y: 300, Radius: 6},
		Paddle:    Paddle{X: 340, Y: 560, Width: 120, Height: 14},
		Lives:     3,
		TimeScale: 1,
		RNG:       NewSimpleRNG(7),
	}
}

func TestExpandThenLaserCancelsExpand(t *testing.T) {
	cfg := config.DefaultArkanoidConfig()
	cfg.PowerUps.LaserWidthFactor = 1.25
	s := newPowerUpService(t, &cfg)
	state := powerUpState()

	s.ApplyPowerUp(state, PowerUpExpandPaddle, testWorldW)
	if state.Paddle.Width != 180 {
		t.Fatalf("expanded width = %v, expected 180", state.Paddle.Width)
	}

	s.ApplyPowerUp(state, PowerUpLaserPaddle, testWorldW)
	if state.ActivePowerUps.Active(PowerUpExpandPaddle) {
		t.Error("laser should cancel the expand timer")
	}
	if !state.ActivePowerUps.Active(PowerUpLaserPaddle) {
		t.Error("laser timer should be running")
	}
	if state.Paddle.Width != 150 {
		t.Errorf("width = %v, expected only the laser factor (150)", state.Paddle.Width)
	}
}

func TestPaddleWidthStaysInRange(t *testing.T) {
	cfg := config.DefaultArkanoidConfig()
	cfg.PowerUps.ExpandFactor = 5
	cfg.PowerUps.LaserWidthFactor = 0.1
	s := newPowerUpService(t, &cfg)
	state := powerUpState()

	for _, typ := range []PowerUpType{PowerUpExpandPaddle, PowerUpLaserPaddle, PowerUpExpandPaddle} {
		s.ApplyPowerUp(state, typ, testWorldW)
		w := state.Paddle.Width
		if w < cfg.Paddle.MinWidth || w > cfg.Paddle.MaxWidth {
			t.Errorf("after %v width %v left [%v, %v]", typ, w, cfg.Paddle.MinWidth, cfg.Paddle.MaxWidth)
		}
		if state.Paddle.X < 0 || state.Paddle.X+w > testWorldW {
			t.Errorf("after %v paddle left the world: x=%v w=%v", typ, state.Paddle.X, w)
		}
	}
}

func TestActivationReportedOnlyOnFirstApply(t *testing.T) {
	cfg := config.DefaultArkanoidConfig()
	s := newPowerUpService(t, &cfg)

	for _, typ := range []PowerUpType{PowerUpExpandPaddle, PowerUpLaserPaddle, PowerUpSlowBall} {
		state := powerUpState()
		if !s.ApplyPowerUp(state, typ, testWorldW) {
			t.Errorf("%v: first apply should report activation", typ)
		}
		s.TickActiveEffects(state, 3, testWorldW)
		if s.ApplyPowerUp(state, typ, testWorldW) {
			t.Errorf("%v: refresh should not report activation", typ)
		}
		if got := state.ActivePowerUps.Remaining(typ); got != cfg.PowerUps.Duration {
			t.Errorf("%v: refresh left %v seconds, expected full duration", typ, got)
		}
	}
}

func TestUnknownPowerUpIgnored(t *testing.T) {
	cfg := config.DefaultArkanoidConfig()
	s := newPowerUpService(t, &cfg)
	state := powerUpState()
	before := *state

	if s.ApplyPowerUp(state, PowerUpType(42), testWorldW) {
		t.Error("unknown type should not activate")
	}
	if state.Paddle != before.Paddle || state.Lives != before.Lives || state.ActivePowerUps.Len() != 0 {
		t.Error("unknown type should not change state")
	}
}

func TestInstantPowerUps(t *testing.T) {
	cfg := config.DefaultArkanoidConfig()
	s := newPowerUpService(t, &cfg)
	state := powerUpState()

	s.ApplyPowerUp(state, PowerUpExtraLife, testWorldW)
	if state.Lives != 4 {
		t.Errorf("lives = %d, expected 4", state.Lives)
	}
	s.ApplyPowerUp(state, PowerUpCatchBall, testWorldW)
	if !state.Ball.Stuck {
		t.Error("catch should mark the primary ball stuck")
	}
	if state.ActivePowerUps.Len() != 0 {
		t.Error("instant effects should not start timers")
	}
}

func TestMultiBallGeometry(t *testing.T) {
	cfg := config.DefaultArkanoidConfig()
	s := newPowerUpService(t, &cfg)

	tests := []struct {
		name        string
		dx, dy      float64
		wantSpeed   float64
		wantHeading float64 // degrees
	}{
		{"moving ball keeps its speed", 150, -200, 250, math.Atan2(-200, 150) * 180 / math.Pi},
		{"resting ball uses default speed", 0, 0, cfg.PowerUps.DefaultSpeed, -90},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			state := powerUpState()
			state.Ball.DX, state.Ball.DY = tc.dx, tc.dy
			state.Ball.Moving = tc.dx != 0 || tc.dy != 0

			s.ApplyPowerUp(state, PowerUpMultiBall, testWorldW)
			if len(state.ExtraBalls) != 2 {
				t.Fatalf("got %d extra balls, expected 2", len(state.ExtraBalls))
			}

			offsets := []float64{-15, 15}
			for i, b := range state.ExtraBalls {
				if !approxEqual(b.Speed(), tc.wantSpeed) {
					t.Errorf("ball %d speed = %v, expected %v", i, b.Speed(), tc.wantSpeed)
				}
				heading := math.Atan2(b.DY, b.DX) * 180 / math.Pi
				if math.Abs(heading-(tc.wantHeading+offsets[i])) > 1e-6 {
					t.Errorf("ball %d heading = %v, expected %v", i, heading, tc.wantHeading+offsets[i])
				}
				if b.X != state.Ball.X || b.Y != state.Ball.Y || !b.Moving {
					t.Errorf("ball %d = %+v, expected moving from the primary position", i, b)
				}
			}
		})
	}
}

func TestTickActiveEffectsExpiresOnce(t *testing.T) {
	cfg := config.DefaultArkanoidConfig()
	s := newPowerUpService(t, &cfg)
	state := powerUpState()

	s.ApplyPowerUp(state, PowerUpExpandPaddle, testWorldW)
	s.ApplyPowerUp(state, PowerUpSlowBall, testWorldW)
	if state.TimeScale != cfg.PowerUps.SlowFactor {
		t.Fatalf("time scale = %v, expected %v", state.TimeScale, cfg.PowerUps.SlowFactor)
	}

	if expired := s.TickActiveEffects(state, cfg.PowerUps.Duration-1, testWorldW); len(expired) != 0 {
		t.Fatalf("expired early: %v", expired)
	}
	expired := s.TickActiveEffects(state, 1, testWorldW)
	if len(expired) != 2 || expired[0] != PowerUpExpandPaddle || expired[1] != PowerUpSlowBall {
		t.Fatalf("expired = %v, expected [EXPAND_PADDLE SLOW_BALL]", expired)
	}
	if state.Paddle.Width != cfg.Paddle.Width || state.TimeScale != 1 {
		t.Errorf("effects not reverted: width=%v timeScale=%v", state.Paddle.Width, state.TimeScale)
	}
	if again := s.TickActiveEffects(state, 1, testWorldW); len(again) != 0 {
		t.Errorf("expiry reported twice: %v", again)
	}
}

func TestSpawnPowerUpDropChance(t *testing.T) {
	brick := Brick{X: 100, Y: 100, Width: 60, Height: 20, Health: 0}

	cfg := config.DefaultArkanoidConfig()
	cfg.PowerUps.DropChance = 0
	never := newPowerUpService(t, &cfg)
	state := powerUpState()
	for range 100 {
		never.SpawnPowerUpIfAny(state, &brick)
	}
	if len(state.PowerUps) != 0 {
		t.Errorf("drop chance 0 spawned %d capsules", len(state.PowerUps))
	}

	cfg.PowerUps.DropChance = 1
	cfg.PowerUps.Enabled = []string{"EXTRA_LIFE"}
	always := newPowerUpService(t, &cfg)
	if !always.SpawnPowerUpIfAny(state, &brick) {
		t.Fatal("drop chance 1 should always spawn")
	}
	p := state.PowerUps[0]
	if p.Type != PowerUpExtraLife {
		t.Errorf("type = %v, expected the only enabled type", p.Type)
	}
	if !approxEqual(p.X+p.Width/2, 130) || !approxEqual(p.Y+p.Height/2, 110) {
		t.Errorf("capsule at (%v, %v), expected centered on the brick", p.X, p.Y)
	}
}

func TestPowerUpUpdateCollectsAndDrops(t *testing.T) {
	cfg := config.DefaultArkanoidConfig()
	s := newPowerUpService(t, &cfg)
	state := powerUpState()
	state.PowerUps = []PowerUp{
		{X: 380, Y: 550, Width: 30, Height: 14, DY: 120, Type: PowerUpMultiBall}, // over the paddle
		{X: 10, Y: 599, Width: 30, Height: 14, DY: 120, Type: PowerUpSlowBall},   // about to fall out
		{X: 10, Y: 100, Width: 30, Height: 14, DY: 120, Type: PowerUpCatchBall},  // still falling
	}

	collected := s.Update(state, 0.1, testWorldH)
	if len(collected) != 1 || collected[0] != PowerUpMultiBall {
		t.Errorf("collected = %v, expected [MULTI_BALL]", collected)
	}
	if len(state.PowerUps) != 1 || state.PowerUps[0].Type != PowerUpCatchBall {
		t.Errorf("remaining = %+v, expected only the falling CATCH_BALL", state.PowerUps)
	}
}

func TestNewPowerUpServiceRejectsUnknownType(t *testing.T) {
	cfg := config.DefaultArkanoidConfig()
	cfg.PowerUps.Enabled = []string{"EXPAND_PADDLE", "DISRUPTION"}
	_, err := NewPowerUpService(&cfg, NewPaddleService(&cfg))
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("error = %v, expected ErrInvalidArgument", err)
	}
}
